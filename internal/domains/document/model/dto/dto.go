package dto

import (
	"mime/multipart"

	"autoecole/internal/domains/document/model"
	"autoecole/shared"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/timezone"
)

const (
	TargetTypeRental  = "rental"
	TargetTypeSession = "session"
)

// Finalize item outcomes.
const (
	FinalizeStatusFinalized = "finalized"
	FinalizeStatusSkipped   = "skipped"
	FinalizeStatusFailed    = "failed"
)

type StageDocumentRequest struct {
	File     *multipart.FileHeader `json:"-"        validate:"required,fileext=pdf doc docx xls xlsx ppt pptx txt jpg jpeg png gif"`
	Title    string                `json:"title"    validate:"required,max=255"`
	Category string                `json:"category" validate:"required,max=100"`
	Type     string                `json:"type"     validate:"omitempty,oneof=document image administrative"`
}

type StagedDocumentResponse struct {
	TempID       string `json:"temp_id"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	OriginalName string `json:"original_name"`
	FileSize     int64  `json:"file_size"`
	UploadedAt   string `json:"uploaded_at"`
}

func (r *StagedDocumentResponse) FromModel(staged model.StagedDocument) {
	r.TempID = staged.TempID
	r.Title = staged.Title
	r.Type = staged.Type
	r.Category = staged.Category
	r.OriginalName = staged.OriginalName
	r.FileSize = staged.FileSize
	r.UploadedAt = timezone.Format(staged.UploadedAt, constant.DateFormat)
}

type FinalizeDocumentsRequest struct {
	TempIDs    []string `json:"temp_ids"    validate:"required,min=1,dive,required"`
	TargetType string   `json:"target_type" validate:"required,oneof=rental session"`
	TargetID   string   `json:"target_id"   validate:"required,uuid4"`
}

type FinalizeItemResult struct {
	TempID     string `json:"temp_id"`
	Status     string `json:"status"`
	DocumentID string `json:"document_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type FinalizeDocumentsResponse struct {
	Results   []FinalizeItemResult `json:"results"`
	Finalized int                  `json:"finalized"`
}

type DocumentResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	FileName  string `json:"file_name"`
	OwnerID   string `json:"owner_id,omitempty"`
	RentalID  string `json:"rental_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	gDto.Metadata
}

func (r *DocumentResponse) FromModel(doc model.Document) {
	r.ID = doc.ID
	r.Title = doc.Title
	r.Type = doc.Type
	r.Category = doc.Category
	r.FileName = doc.FileName
	r.Metadata.FromModel(doc.Metadata)

	if doc.OwnerID.Valid {
		r.OwnerID = doc.OwnerID.String
	}

	if doc.RentalID.Valid {
		r.RentalID = doc.RentalID.String
	}

	if doc.SessionID.Valid {
		r.SessionID = doc.SessionID.String
	}
}

type GetDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetDocumentsResponse) FromModels(models []model.Document, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Documents = make([]DocumentResponse, len(models))
	for i, mod := range models {
		r.Documents[i].FromModel(mod)
	}
}
