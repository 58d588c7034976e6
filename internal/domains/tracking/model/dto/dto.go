package dto

import (
	docModel "autoecole/internal/domains/document/model"
	rentalModel "autoecole/internal/domains/rental/model"
	vehicleModel "autoecole/internal/domains/vehicle/model"
	"autoecole/shared/constant"
	"autoecole/shared/timezone"
)

type TrackedHistoryEntry struct {
	Status      string `json:"status"`
	Label       string `json:"label"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type TrackedVehicle struct {
	Model    string `json:"model"`
	Plate    string `json:"plate"`
	Category string `json:"category"`
}

type TrackedDocument struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	AddedAt  string `json:"added_at"`
}

// TrackingResponse is the public, read-only projection of a booking. It
// carries no internal ids, no admin notes and no administrative documents.
type TrackingResponse struct {
	Status         string                `json:"status"`
	StatusLabel    string                `json:"status_label"`
	PhaseOrdinal   int                   `json:"phase_ordinal"`
	NextStep       string                `json:"next_step"`
	StartDate      string                `json:"start_date"`
	EndDate        string                `json:"end_date"`
	ExamTime       string                `json:"exam_time,omitempty"`
	PickupLocation string                `json:"pickup_location"`
	ReturnLocation string                `json:"return_location"`
	TotalPrice     *float64              `json:"total_price"`
	Vehicle        *TrackedVehicle       `json:"vehicle,omitempty"`
	History        []TrackedHistoryEntry `json:"history"`
	Documents      []TrackedDocument     `json:"documents"`
}

func (r *TrackingResponse) FromModel(rental rentalModel.Rental) {
	r.Status = string(rental.Status)
	r.StatusLabel = rental.Status.Label()
	r.PhaseOrdinal = rental.Status.PhaseOrdinal()
	r.NextStep = rental.Status.NextStep()
	r.StartDate = rental.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = rental.EndDate.Format(constant.DateOnlyFormat)
	r.PickupLocation = rental.PickupLocation
	r.ReturnLocation = rental.ReturnLocation

	if rental.ExamTime.Valid {
		r.ExamTime = timezone.Format(rental.ExamTime.Time, constant.DateFormat)
	}

	if rental.TotalPrice.Valid {
		price := rental.TotalPrice.Float64
		r.TotalPrice = &price
	}
}

func (r *TrackingResponse) WithVehicle(vehicle vehicleModel.Vehicle) {
	r.Vehicle = &TrackedVehicle{
		Model:    vehicle.Model,
		Plate:    vehicle.Plate,
		Category: vehicle.Category,
	}
}

func (r *TrackingResponse) WithHistory(entries []rentalModel.StatusHistory) {
	r.History = make([]TrackedHistoryEntry, len(entries))
	for i, entry := range entries {
		r.History[i] = TrackedHistoryEntry{
			Status:      string(entry.Status),
			Label:       entry.Status.Label(),
			Description: entry.Description,
			CreatedAt:   timezone.Format(entry.CreatedAt, constant.DateFormat),
		}
	}
}

func (r *TrackingResponse) WithDocuments(docs []docModel.Document) {
	r.Documents = make([]TrackedDocument, len(docs))
	for i, doc := range docs {
		r.Documents[i] = TrackedDocument{
			Title:    doc.Title,
			Category: doc.Category,
			AddedAt:  timezone.Format(doc.CreatedAt, constant.DateFormat),
		}
	}
}
