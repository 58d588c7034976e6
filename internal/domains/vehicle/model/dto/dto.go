package dto

import (
	"github.com/google/uuid"
	"autoecole/internal/domains/vehicle/model"
	"autoecole/shared"
	gDto "autoecole/shared/dto"
	gModel "autoecole/shared/model"
)

type CreateVehicleRequest struct {
	Model     string  `json:"model"      validate:"required,max=100"`
	Plate     string  `json:"plate"      validate:"required,max=20"`
	Category  string  `json:"category"   validate:"required,max=50"`
	DailyRate float64 `json:"daily_rate" validate:"required,gte=0"`
	IsActive  *bool   `json:"is_active"  validate:"omitempty"`
}

func (c *CreateVehicleRequest) ToModel(user string) model.Vehicle {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	return model.Vehicle{
		ID:        uuid.NewString(),
		Model:     c.Model,
		Plate:     c.Plate,
		Category:  c.Category,
		DailyRate: c.DailyRate,
		IsActive:  isActive,
		Metadata:  gModel.NewMetadata(user),
	}
}

type UpdateVehicleRequest struct {
	Model     string   `db:"model"      json:"model"      validate:"omitempty,max=100"`
	Plate     string   `db:"plate"      json:"plate"      validate:"omitempty,max=20"`
	Category  string   `db:"category"   json:"category"   validate:"omitempty,max=50"`
	DailyRate *float64 `db:"daily_rate" json:"daily_rate" validate:"omitempty,gte=0"`
	IsActive  *bool    `db:"is_active"  json:"is_active"  validate:"omitempty"`
}

type VehicleResponse struct {
	ID        string  `json:"id"`
	Model     string  `json:"model"`
	Plate     string  `json:"plate"`
	Category  string  `json:"category"`
	DailyRate float64 `json:"daily_rate"`
	IsActive  bool    `json:"is_active"`
	gDto.Metadata
}

func (r *VehicleResponse) FromModel(model model.Vehicle) {
	r.ID = model.ID
	r.Model = model.Model
	r.Plate = model.Plate
	r.Category = model.Category
	r.DailyRate = model.DailyRate
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetVehiclesResponse struct {
	Vehicles  []VehicleResponse `json:"vehicles"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetVehiclesResponse) FromModels(models []model.Vehicle, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Vehicles = make([]VehicleResponse, len(models))
	for i, mod := range models {
		r.Vehicles[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	VehicleID string `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}
