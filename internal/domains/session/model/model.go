package model

import (
	"time"

	"autoecole/shared/model"
)

const (
	TableName  = "training_sessions"
	EntityName = "session"

	FieldID              = "id"
	FieldTitle           = "title"
	FieldLocation        = "location"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldMaxParticipants = "max_participants"
	FieldStatus          = "status"
)

const (
	ParticipantTableName  = "session_participants"
	ParticipantEntityName = "session_participant"

	ParticipantFieldSessionID  = "session_id"
	ParticipantFieldUserID     = "user_id"
	ParticipantFieldEnrolledAt = "enrolled_at"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// TrainingSession is a group training event with a hard participant limit.
type TrainingSession struct {
	ID              string    `db:"id"`
	Title           string    `db:"title"`
	Location        string    `db:"location"`
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	MaxParticipants int       `db:"max_participants"`
	Status          string    `db:"status"`
	model.Metadata
}

// Participant is a roster entry. The (session, user) pair is the primary key,
// a user enrolls at most once per session.
type Participant struct {
	SessionID  string    `db:"session_id"`
	UserID     string    `db:"user_id"`
	EnrolledAt time.Time `db:"enrolled_at"`
}
