package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"autoecole/internal/domains/rental/model"
)

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    model.Status
		to      model.Status
		allowed bool
	}{
		{name: "pending to awaiting documents", from: model.StatusPending, to: model.StatusAwaitingDocuments, allowed: true},
		{name: "pending to confirmed", from: model.StatusPending, to: model.StatusConfirmed, allowed: true},
		{name: "pending to cancelled", from: model.StatusPending, to: model.StatusCancelled, allowed: true},
		{name: "pending to in progress skips confirmation", from: model.StatusPending, to: model.StatusInProgress, allowed: false},
		{name: "pending to completed skips lifecycle", from: model.StatusPending, to: model.StatusCompleted, allowed: false},
		{name: "awaiting documents back to pending", from: model.StatusAwaitingDocuments, to: model.StatusPending, allowed: true},
		{name: "awaiting documents to confirmed", from: model.StatusAwaitingDocuments, to: model.StatusConfirmed, allowed: true},
		{name: "awaiting documents to in progress", from: model.StatusAwaitingDocuments, to: model.StatusInProgress, allowed: false},
		{name: "confirmed to in progress", from: model.StatusConfirmed, to: model.StatusInProgress, allowed: true},
		{name: "confirmed to completed", from: model.StatusConfirmed, to: model.StatusCompleted, allowed: true},
		{name: "confirmed back to pending", from: model.StatusConfirmed, to: model.StatusPending, allowed: false},
		{name: "in progress to completed", from: model.StatusInProgress, to: model.StatusCompleted, allowed: true},
		{name: "in progress to cancelled", from: model.StatusInProgress, to: model.StatusCancelled, allowed: true},
		{name: "in progress back to confirmed", from: model.StatusInProgress, to: model.StatusConfirmed, allowed: false},
		{name: "completed is terminal", from: model.StatusCompleted, to: model.StatusCancelled, allowed: false},
		{name: "cancelled is terminal", from: model.StatusCancelled, to: model.StatusPending, allowed: false},
		{name: "cancelled cannot be reinstated", from: model.StatusCancelled, to: model.StatusConfirmed, allowed: false},
		{name: "self transition is rejected", from: model.StatusConfirmed, to: model.StatusConfirmed, allowed: false},
		{name: "unknown source", from: model.Status("unknown"), to: model.StatusPending, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, model.StatusCompleted.IsTerminal())
	assert.True(t, model.StatusCancelled.IsTerminal())
	assert.False(t, model.StatusPending.IsTerminal())
	assert.False(t, model.StatusAwaitingDocuments.IsTerminal())
	assert.False(t, model.StatusConfirmed.IsTerminal())
	assert.False(t, model.StatusInProgress.IsTerminal())
	assert.False(t, model.Status("unknown").IsTerminal())
}

func TestStatusValid(t *testing.T) {
	for _, status := range []model.Status{
		model.StatusPending,
		model.StatusAwaitingDocuments,
		model.StatusConfirmed,
		model.StatusInProgress,
		model.StatusCompleted,
		model.StatusCancelled,
	} {
		assert.True(t, status.Valid(), string(status))
	}

	assert.False(t, model.Status("deleted").Valid())
	assert.False(t, model.Status("").Valid())
}

func TestStatusPhases(t *testing.T) {
	// The linear flow must report strictly increasing ordinals so the
	// tracking page can render progress.
	flow := []model.Status{
		model.StatusPending,
		model.StatusAwaitingDocuments,
		model.StatusConfirmed,
		model.StatusInProgress,
		model.StatusCompleted,
	}

	previous := 0
	for _, status := range flow {
		assert.Greater(t, status.PhaseOrdinal(), previous, string(status))
		assert.NotEmpty(t, status.Label(), string(status))
		assert.NotEmpty(t, status.NextStep(), string(status))
		previous = status.PhaseOrdinal()
	}

	assert.Equal(t, 0, model.StatusCancelled.PhaseOrdinal())
	assert.NotEmpty(t, model.StatusCancelled.Label())
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, model.StatusAwaitingDocuments, model.InitialStatus(true))
	assert.Equal(t, model.StatusPending, model.InitialStatus(false))
}

func TestDocumentsComplete(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		provided []string
		complete bool
	}{
		{name: "nothing required", required: nil, provided: nil, complete: true},
		{name: "all provided", required: []string{"license", "id_card"}, provided: []string{"id_card", "license"}, complete: true},
		{name: "extra documents do not hurt", required: []string{"license"}, provided: []string{"license", "photo"}, complete: true},
		{name: "one missing", required: []string{"license", "id_card"}, provided: []string{"license"}, complete: false},
		{name: "none provided", required: []string{"license"}, provided: nil, complete: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.complete, model.DocumentsComplete(tt.required, tt.provided))
		})
	}
}
