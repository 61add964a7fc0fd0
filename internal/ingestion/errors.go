package ingestion

import "fmt"

// UnsupportedFormatError represents a file whose extension is not a supported format
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file type for %q: missing extension", e.Filename)
	}
	return fmt.Sprintf("unsupported file type %q for %q", e.Extension, e.Filename)
}

// TooLargeError represents a file over the configured size limit
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file is %d bytes, limit is %d bytes", e.Size, e.Limit)
}

// ExtractionError represents a file that could not be converted to text
type ExtractionError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
