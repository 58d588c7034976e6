package model

import "slices"

// Status is the rental lifecycle state. Transitions are validated against a
// closed table; anything not listed is rejected.
type Status string

const (
	StatusPending           Status = "pending"
	StatusAwaitingDocuments Status = "awaiting_documents"
	StatusConfirmed         Status = "confirmed"
	StatusInProgress        Status = "in_progress"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:           {StatusAwaitingDocuments, StatusConfirmed, StatusCancelled},
	StatusAwaitingDocuments: {StatusPending, StatusConfirmed, StatusCancelled},
	StatusConfirmed:         {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress:        {StatusCompleted, StatusCancelled},
	StatusCompleted:         {},
	StatusCancelled:         {},
}

// phase drives the public tracking display: a step ordinal, a label, and a
// hint about what happens next.
type phase struct {
	Ordinal  int
	Label    string
	NextStep string
}

var phases = map[Status]phase{
	StatusPending:           {1, "Request received", "Your request is being reviewed by our team"},
	StatusAwaitingDocuments: {2, "Documents required", "Please provide the requested documents"},
	StatusConfirmed:         {3, "Booking confirmed", "Your vehicle will be ready at the pickup location"},
	StatusInProgress:        {4, "Rental in progress", "Return the vehicle at the agreed location"},
	StatusCompleted:         {5, "Rental completed", "Thank you for renting with us"},
	StatusCancelled:         {0, "Booking cancelled", "Contact us if you want to make a new booking"},
}

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	_, ok := transitions[s]

	return ok
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]

	return ok && len(next) == 0
}

// CanTransitionTo reports whether the transition table allows moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// Label returns the human readable name shown on the tracking page.
func (s Status) Label() string {
	return phases[s].Label
}

// PhaseOrdinal returns the tracking step number. Cancelled reports 0 since it
// sits outside the linear flow.
func (s Status) PhaseOrdinal() int {
	return phases[s].Ordinal
}

// NextStep returns the tracking hint about what the customer should expect.
func (s Status) NextStep() string {
	return phases[s].NextStep
}

// InitialStatus picks the starting state for a new rental. Formulas that
// require documents start in awaiting_documents, everything else in pending.
func InitialStatus(requiresDocuments bool) Status {
	if requiresDocuments {
		return StatusAwaitingDocuments
	}

	return StatusPending
}

// DocumentsComplete reports whether every required document category is
// covered by the provided ones. An empty requirement is always complete.
func DocumentsComplete(required, provided []string) bool {
	for _, category := range required {
		if !slices.Contains(provided, category) {
			return false
		}
	}

	return true
}
