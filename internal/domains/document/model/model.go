package model

import (
	"database/sql"
	"time"

	"autoecole/shared/model"
)

const (
	TableName  = "documents"
	EntityName = "document"

	FieldID         = "id"
	FieldTitle      = "title"
	FieldType       = "type"
	FieldCategory   = "category"
	FieldFileName   = "file_name"
	FieldOwnerID    = "owner_id"
	FieldUploadedBy = "uploaded_by"
	FieldRentalID   = "rental_id"
	FieldSessionID  = "session_id"
)

const (
	StagedTableName  = "staged_documents"
	StagedEntityName = "staged_document"

	StagedFieldTempID     = "temp_id"
	StagedFieldUploadedAt = "uploaded_at"
)

// Document types. Administrative documents never surface on the public
// tracking projection.
const (
	TypeDocument       = "document"
	TypeImage          = "image"
	TypeAdministrative = "administrative"
)

// Document is a finalized file attached to a rental or a training session.
type Document struct {
	ID         string         `db:"id"`
	Title      string         `db:"title"`
	Type       string         `db:"type"`
	Category   string         `db:"category"`
	FileName   string         `db:"file_name"`
	OwnerID    sql.NullString `db:"owner_id"`
	UploadedBy string         `db:"uploaded_by"`
	RentalID   sql.NullString `db:"rental_id"`
	SessionID  sql.NullString `db:"session_id"`
	model.Metadata
}

// StagedDocument is an uploaded file waiting in the staging area until a
// finalize call attaches it or the sweeper reclaims it.
type StagedDocument struct {
	TempID       string    `db:"temp_id"`
	Title        string    `db:"title"`
	Type         string    `db:"type"`
	Category     string    `db:"category"`
	FileName     string    `db:"file_name"`
	OriginalName string    `db:"original_name"`
	FileSize     int64     `db:"file_size"`
	UploadedBy   string    `db:"uploaded_by"`
	UploadedAt   time.Time `db:"uploaded_at"`
}
