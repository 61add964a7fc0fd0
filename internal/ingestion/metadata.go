package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes an ingested file
type Metadata struct {
	Filename  string `json:"filename"`
	Format    Format `json:"format"`
	Bytes     int    `json:"bytes"`
	Hash      string `json:"hash"`      // SHA256 hex digest of the raw file
	Timestamp string `json:"timestamp"` // RFC3339 format
}

// NewMetadata creates Metadata for raw file content with the current timestamp
func NewMetadata(filename string, format Format, data []byte) *Metadata {
	return &Metadata{
		Filename:  filename,
		Format:    format,
		Bytes:     len(data),
		Hash:      computeHash(data),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
