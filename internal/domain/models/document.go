package models

import (
	"time"
)

// Phase is a stage of a project's document checklist.
type Phase string

const (
	PhaseInitiation     Phase = "INITIATION"
	PhaseImplementation Phase = "IMPLEMENTATION"
	PhaseMonitoring     Phase = "MONITORING"
)

// Document is an uploaded file attached to a checklist row of a project.
// FileData and QRPin are never serialized; viewers go through the
// share-link endpoints instead.
type Document struct {
	ID             string      `json:"id" db:"id"`
	ProjectID      string      `json:"projectId" db:"project_id"`
	ProjectKind    ProjectKind `json:"projectKind" db:"project_kind"`
	Phase          Phase       `json:"phase" db:"phase"`
	TemplateItemID string      `json:"templateItemId" db:"template_item_id"`
	FileName       string      `json:"fileName" db:"file_name"`
	MimeType       string      `json:"mimeType" db:"mime_type"`
	FileData       []byte      `json:"-" db:"file_data"`
	QRPin          *string     `json:"-" db:"qr_pin"`
	UploadedBy     *string     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
}

// HasPin reports whether the document is PIN protected.
func (d *Document) HasPin() bool {
	return d.QRPin != nil && *d.QRPin != ""
}

// DocumentMeta is the payload-free view of a document used by listings
// and by the share-link existence check.
type DocumentMeta struct {
	ID             string      `json:"id"`
	ProjectID      string      `json:"projectId,omitempty"`
	ProjectKind    ProjectKind `json:"projectKind,omitempty"`
	Phase          Phase       `json:"phase,omitempty"`
	TemplateItemID string      `json:"templateItemId,omitempty"`
	FileName       string      `json:"fileName"`
	MimeType       string      `json:"mimeType"`
	HasPin         bool        `json:"hasPin"`
	UploadedBy     *string     `json:"uploadedBy,omitempty"`
	CreatedAt      time.Time   `json:"createdAt,omitzero"`
}

// Meta strips the binary payload and PIN from a document.
func (d *Document) Meta() DocumentMeta {
	return DocumentMeta{
		ID:             d.ID,
		ProjectID:      d.ProjectID,
		ProjectKind:    d.ProjectKind,
		Phase:          d.Phase,
		TemplateItemID: d.TemplateItemID,
		FileName:       d.FileName,
		MimeType:       d.MimeType,
		HasPin:         d.HasPin(),
		UploadedBy:     d.UploadedBy,
		CreatedAt:      d.CreatedAt,
	}
}
