package model

import "time"

const (
	HistoryTableName  = "rental_status_history"
	HistoryEntityName = "rental_history"

	HistoryFieldID        = "id"
	HistoryFieldRentalID  = "rental_id"
	HistoryFieldStatus    = "status"
	HistoryFieldCreatedAt = "created_at"
)

// StatusHistory is one append-only audit entry. Rows are never updated or
// deleted.
type StatusHistory struct {
	ID          string    `db:"id"`
	RentalID    string    `db:"rental_id"`
	Status      Status    `db:"status"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}
