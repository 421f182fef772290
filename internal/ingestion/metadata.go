package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where a job description came from and how it was extracted.
type Metadata struct {
	URL       string `json:"url,omitempty"`
	FetchedAt string `json:"fetched_at"` // RFC3339
	Hash      string `json:"hash"`       // SHA-256 hex digest of the text
	Title     string `json:"title,omitempty"`
	Company   string `json:"company,omitempty"`
	Location  string `json:"location,omitempty"`
	Salary    string `json:"salary,omitempty"`
	Strategy  string `json:"strategy,omitempty"` // extraction strategy that produced the text
	Browser   bool   `json:"browser,omitempty"`  // text came from a rendered page
	Length    int    `json:"length"`
}

// NewMetadata stamps content with the current time and its hash.
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:       url,
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
		Hash:      HashText(content),
		Length:    len([]rune(content)),
	}
}

// HashText returns the lowercase hex SHA-256 digest of text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
