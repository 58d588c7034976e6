package dto

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"autoecole/internal/domains/rental/model"
	"autoecole/shared"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	gModel "autoecole/shared/model"
	"autoecole/shared/timezone"
)

type CreateRentalRequest struct {
	UserID         string `json:"user_id"         validate:"required,uuid4"`
	FormulaID      string `json:"formula_id"      validate:"required,uuid4"`
	StartDate      string `json:"start_date"      validate:"required"`
	EndDate        string `json:"end_date"        validate:"required"`
	ExamTime       string `json:"exam_time"       validate:"omitempty"`
	PickupLocation string `json:"pickup_location" validate:"omitempty,max=255"`
	ReturnLocation string `json:"return_location" validate:"omitempty,max=255"`
	Notes          string `json:"notes"           validate:"omitempty"`
}

func (c *CreateRentalRequest) ToModel(user, trackingToken string, status model.Status) (model.Rental, error) {
	startDate, err := timezone.Parse(constant.DateOnlyFormat, c.StartDate)
	if err != nil {
		return model.Rental{}, err
	}

	endDate, err := timezone.Parse(constant.DateOnlyFormat, c.EndDate)
	if err != nil {
		return model.Rental{}, err
	}

	examTime := sql.NullTime{}
	if c.ExamTime != "" {
		parsed, err := timezone.Parse(constant.DateFormat, c.ExamTime)
		if err != nil {
			return model.Rental{}, err
		}

		examTime = sql.NullTime{Time: parsed, Valid: true}
	}

	return model.Rental{
		ID:             uuid.NewString(),
		TrackingToken:  trackingToken,
		UserID:         c.UserID,
		FormulaID:      c.FormulaID,
		Status:         status,
		StartDate:      startDate,
		EndDate:        endDate,
		ExamTime:       examTime,
		PickupLocation: c.PickupLocation,
		ReturnLocation: c.ReturnLocation,
		Notes:          c.Notes,
		Metadata:       gModel.NewMetadata(user),
	}, nil
}

type UpdateRentalRequest struct {
	StartDate      string `json:"start_date"      validate:"omitempty"`
	EndDate        string `json:"end_date"        validate:"omitempty"`
	ExamTime       string `json:"exam_time"       validate:"omitempty"`
	PickupLocation string `db:"pickup_location"   json:"pickup_location" validate:"omitempty,max=255"`
	ReturnLocation string `db:"return_location"   json:"return_location" validate:"omitempty,max=255"`
	Notes          string `db:"notes"             json:"notes"           validate:"omitempty"`
	AdminNotes     string `db:"admin_notes"       json:"admin_notes"     validate:"omitempty"`
}

type UpdateStatusRequest struct {
	Status      string `json:"status"      validate:"required,oneof=pending awaiting_documents confirmed in_progress completed cancelled"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type AssignVehicleRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required,uuid4"`
}

type HistoryEntryResponse struct {
	Status      string `json:"status"`
	Label       string `json:"label"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func (r *HistoryEntryResponse) FromModel(entry model.StatusHistory) {
	r.Status = string(entry.Status)
	r.Label = entry.Status.Label()
	r.Description = entry.Description
	r.CreatedAt = timezone.Format(entry.CreatedAt, constant.DateFormat)
}

type RentalResponse struct {
	ID             string                 `json:"id"`
	TrackingToken  string                 `json:"tracking_token"`
	UserID         string                 `json:"user_id"`
	FormulaID      string                 `json:"formula_id"`
	VehicleID      string                 `json:"vehicle_id,omitempty"`
	Status         string                 `json:"status"`
	StatusLabel    string                 `json:"status_label"`
	StartDate      string                 `json:"start_date"`
	EndDate        string                 `json:"end_date"`
	ExamTime       string                 `json:"exam_time,omitempty"`
	PickupLocation string                 `json:"pickup_location"`
	ReturnLocation string                 `json:"return_location"`
	TotalPrice     *float64               `json:"total_price"`
	Notes          string                 `json:"notes"`
	AdminNotes     string                 `json:"admin_notes"`
	History        []HistoryEntryResponse `json:"history,omitempty"`
	gDto.Metadata
}

func (r *RentalResponse) FromModel(rental model.Rental) {
	r.ID = rental.ID
	r.TrackingToken = rental.TrackingToken
	r.UserID = rental.UserID
	r.FormulaID = rental.FormulaID
	r.Status = string(rental.Status)
	r.StatusLabel = rental.Status.Label()
	r.StartDate = rental.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = rental.EndDate.Format(constant.DateOnlyFormat)
	r.PickupLocation = rental.PickupLocation
	r.ReturnLocation = rental.ReturnLocation
	r.Notes = rental.Notes
	r.AdminNotes = rental.AdminNotes
	r.Metadata.FromModel(rental.Metadata)

	if rental.VehicleID.Valid {
		r.VehicleID = rental.VehicleID.String
	}

	if rental.ExamTime.Valid {
		r.ExamTime = timezone.Format(rental.ExamTime.Time, constant.DateFormat)
	}

	if rental.TotalPrice.Valid {
		price := rental.TotalPrice.Float64
		r.TotalPrice = &price
	}
}

func (r *RentalResponse) WithHistory(entries []model.StatusHistory) {
	r.History = make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		r.History[i].FromModel(entry)
	}
}

type GetRentalsResponse struct {
	Rentals   []RentalResponse `json:"rentals"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetRentalsResponse) FromModels(models []model.Rental, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rentals = make([]RentalResponse, len(models))
	for i, mod := range models {
		r.Rentals[i].FromModel(mod)
	}
}

// ParseDateRange parses the optional date fields of an update request,
// falling back to the current values when a field is not set.
func (u *UpdateRentalRequest) ParseDateRange(currentStart, currentEnd time.Time) (time.Time, time.Time, error) {
	start, end := currentStart, currentEnd

	if u.StartDate != "" {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, u.StartDate)
		if err != nil {
			return start, end, err
		}

		start = parsed
	}

	if u.EndDate != "" {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, u.EndDate)
		if err != nil {
			return start, end, err
		}

		end = parsed
	}

	return start, end, nil
}
