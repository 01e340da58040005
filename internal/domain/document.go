package domain

import (
	"path"
	"strings"
	"time"
)

// MaxDocumentSize is the largest accepted document blob (10 MiB).
const MaxDocumentSize int64 = 10 << 20

type DocumentType string

const (
	DocumentTypeIDProofA DocumentType = "id_proof_a"
	DocumentTypeIDProofB DocumentType = "id_proof_b"
)

var documentTypeLabels = map[DocumentType]string{
	DocumentTypeIDProofA: "Aadhar Card",
	DocumentTypeIDProofB: "PAN Card",
}

func (t DocumentType) Valid() bool {
	_, ok := documentTypeLabels[t]
	return ok
}

// Display returns the human-readable label, or the raw value for unknown types.
func (t DocumentType) Display() string {
	if l, ok := documentTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

var allowedDocumentExtensions = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

// DocumentContentType reports the content type for filename and whether its extension is accepted.
func DocumentContentType(filename string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	ct, ok := allowedDocumentExtensions[ext]
	return ct, ok
}

// Document occupies the (user, type) slot.
// PK: user_id, SK: document_type.
type Document struct {
	DocumentID  string       `json:"id" dynamodbav:"document_id"`
	UserID      string       `json:"-" dynamodbav:"user_id"`
	Type        DocumentType `json:"document_type" dynamodbav:"document_type"`
	Object      string       `json:"-" dynamodbav:"object"`
	Filename    string       `json:"filename" dynamodbav:"filename"`
	Size        int64        `json:"file_size" dynamodbav:"size"`
	ContentType string       `json:"content_type" dynamodbav:"content_type"`
	Hash        string       `json:"-" dynamodbav:"hash"`
	Verified    bool         `json:"is_verified" dynamodbav:"verified"`
	URL         string       `json:"file_url,omitempty" dynamodbav:"-"`
	UploadedAt  time.Time    `json:"uploaded_at" dynamodbav:"uploaded_at"`
	CreatedAt   time.Time    `json:"created_at" dynamodbav:"created_at"`
}
