package model

import (
	"github.com/lib/pq"
	"autoecole/shared/model"
)

const (
	TableName  = "formulas"
	EntityName = "formula"

	FieldID                = "id"
	FieldName              = "name"
	FieldDescription       = "description"
	FieldPrice             = "price"
	FieldExamCenter        = "exam_center"
	FieldRequiredDocuments = "required_documents"
	FieldIsActive          = "is_active"
)

// Formula is a training/rental package. RequiredDocuments lists the document
// categories a booking on this formula must provide before it can leave the
// awaiting_documents state.
type Formula struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Description       string         `db:"description"`
	Price             float64        `db:"price"`
	ExamCenter        string         `db:"exam_center"`
	RequiredDocuments pq.StringArray `db:"required_documents"`
	IsActive          bool           `db:"is_active"`
	model.Metadata
}

// RequiresDocuments reports whether any document category is required.
func (f *Formula) RequiresDocuments() bool {
	return len(f.RequiredDocuments) > 0
}
