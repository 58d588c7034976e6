package dto

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"autoecole/internal/domains/formula/model"
	"autoecole/shared"
	gDto "autoecole/shared/dto"
	gModel "autoecole/shared/model"
)

type CreateFormulaRequest struct {
	Name              string   `json:"name"               validate:"required,max=100"`
	Description       string   `json:"description"        validate:"omitempty"`
	Price             float64  `json:"price"              validate:"required,gte=0"`
	ExamCenter        string   `json:"exam_center"        validate:"omitempty,max=100"`
	RequiredDocuments []string `json:"required_documents" validate:"omitempty,dive,max=50"`
	IsActive          *bool    `json:"is_active"          validate:"omitempty"`
}

func (c *CreateFormulaRequest) ToModel(user string) model.Formula {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	return model.Formula{
		ID:                uuid.NewString(),
		Name:              c.Name,
		Description:       c.Description,
		Price:             c.Price,
		ExamCenter:        c.ExamCenter,
		RequiredDocuments: pq.StringArray(c.RequiredDocuments),
		IsActive:          isActive,
		Metadata:          gModel.NewMetadata(user),
	}
}

type UpdateFormulaRequest struct {
	Name              string   `db:"name"        json:"name"               validate:"omitempty,max=100"`
	Description       string   `db:"description" json:"description"        validate:"omitempty"`
	Price             *float64 `db:"price"       json:"price"              validate:"omitempty,gte=0"`
	ExamCenter        string   `db:"exam_center" json:"exam_center"        validate:"omitempty,max=100"`
	RequiredDocuments []string `json:"required_documents"                  validate:"omitempty,dive,max=50"`
	IsActive          *bool    `db:"is_active"   json:"is_active"          validate:"omitempty"`
}

type FormulaResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"`
	ExamCenter        string   `json:"exam_center"`
	RequiredDocuments []string `json:"required_documents"`
	IsActive          bool     `json:"is_active"`
	gDto.Metadata
}

func (r *FormulaResponse) FromModel(model model.Formula) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.ExamCenter = model.ExamCenter
	r.RequiredDocuments = model.RequiredDocuments
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetFormulasResponse struct {
	Formulas  []FormulaResponse `json:"formulas"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetFormulasResponse) FromModels(models []model.Formula, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Formulas = make([]FormulaResponse, len(models))
	for i, mod := range models {
		r.Formulas[i].FromModel(mod)
	}
}
