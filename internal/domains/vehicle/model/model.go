package model

import (
	"autoecole/shared/model"
)

const (
	TableName  = "vehicles"
	EntityName = "vehicle"

	FieldID        = "id"
	FieldModel     = "model"
	FieldPlate     = "plate"
	FieldCategory  = "category"
	FieldDailyRate = "daily_rate"
	FieldIsActive  = "is_active"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
)

type Vehicle struct {
	ID        string  `db:"id"`
	Model     string  `db:"model"`
	Plate     string  `db:"plate"`
	Category  string  `db:"category"`
	DailyRate float64 `db:"daily_rate"`
	IsActive  bool    `db:"is_active"`
	model.Metadata
}
