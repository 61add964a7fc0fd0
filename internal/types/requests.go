package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// AnalyzeRequest is the JSON body accepted by the analyze endpoint.
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description,omitempty"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Document converts the request into analyzer input.
func (r *AnalyzeRequest) Document() Document {
	return Document{RawText: r.ResumeText, JobDescription: r.JobDescription}
}

// ErrorBody is the user-visible shape of a failed request.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorBody under an "error" key.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status         string `json:"status"`
	CatalogVersion string `json:"catalog_version,omitempty"`
	SkillCount     int    `json:"skill_count"`
}
