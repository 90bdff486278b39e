package domain

import "time"

type InputType string

const (
	InputTypeText   InputType = "text"
	InputTypeBase64 InputType = "base64"
)

// Document is the persisted integrity record for a single submission.
// The content itself is never stored, only the salted digest over it.
// Records are immutable after creation except for deletion.
type Document struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	Digest    string    `json:"digest" bson:"digest"`
	Salt      string    `json:"salt" bson:"salt"`
	InputType InputType `json:"input_type" bson:"input_type"`
	FileName  string    `json:"file_name,omitempty" bson:"file_name,omitempty"`
	FileType  string    `json:"file_type,omitempty" bson:"file_type,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type StoreDocumentRequest struct {
	Content  string `json:"content" validate:"required"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
}

type DocumentResponse struct {
	ID        string    `json:"id"`
	Digest    string    `json:"digest"`
	Salt      string    `json:"salt"`
	InputType InputType `json:"input_type"`
	FileName  string    `json:"file_name,omitempty"`
	FileType  string    `json:"file_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
