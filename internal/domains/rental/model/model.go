package model

import (
	"database/sql"
	"time"

	"autoecole/shared/model"
)

const (
	TableName  = "vehicle_rentals"
	EntityName = "rental"

	FieldID             = "id"
	FieldTrackingToken  = "tracking_token"
	FieldUserID         = "user_id"
	FieldFormulaID      = "formula_id"
	FieldVehicleID      = "vehicle_id"
	FieldStatus         = "status"
	FieldStartDate      = "start_date"
	FieldEndDate        = "end_date"
	FieldExamTime       = "exam_time"
	FieldPickupLocation = "pickup_location"
	FieldReturnLocation = "return_location"
	FieldTotalPrice     = "total_price"
	FieldNotes          = "notes"
	FieldAdminNotes     = "admin_notes"
)

// Rental is a vehicle booking. It is never hard-deleted; cancellation is a
// terminal status and the full status history stays queryable through the
// tracking token for the lifetime of the row.
type Rental struct {
	ID             string          `db:"id"`
	TrackingToken  string          `db:"tracking_token"`
	UserID         string          `db:"user_id"`
	FormulaID      string          `db:"formula_id"`
	VehicleID      sql.NullString  `db:"vehicle_id"`
	Status         Status          `db:"status"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        time.Time       `db:"end_date"`
	ExamTime       sql.NullTime    `db:"exam_time"`
	PickupLocation string          `db:"pickup_location"`
	ReturnLocation string          `db:"return_location"`
	TotalPrice     sql.NullFloat64 `db:"total_price"`
	Notes          string          `db:"notes"`
	AdminNotes     string          `db:"admin_notes"`
	model.Metadata
}
