package dto

import (
	"github.com/google/uuid"

	"autoecole/internal/domains/session/model"
	userModel "autoecole/internal/domains/user/model"
	"autoecole/shared"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	gModel "autoecole/shared/model"
	"autoecole/shared/timezone"
)

type CreateSessionRequest struct {
	Title           string `json:"title"            validate:"required,max=255"`
	Location        string `json:"location"         validate:"omitempty,max=255"`
	StartDate       string `json:"start_date"       validate:"required"`
	EndDate         string `json:"end_date"         validate:"required"`
	MaxParticipants int    `json:"max_participants" validate:"required,min=1"`
}

func (c *CreateSessionRequest) ToModel(user string) (model.TrainingSession, error) {
	startDate, err := timezone.Parse(constant.DateFormat, c.StartDate)
	if err != nil {
		return model.TrainingSession{}, err
	}

	endDate, err := timezone.Parse(constant.DateFormat, c.EndDate)
	if err != nil {
		return model.TrainingSession{}, err
	}

	return model.TrainingSession{
		ID:              uuid.NewString(),
		Title:           c.Title,
		Location:        c.Location,
		StartDate:       startDate,
		EndDate:         endDate,
		MaxParticipants: c.MaxParticipants,
		Status:          model.StatusScheduled,
		Metadata:        gModel.NewMetadata(user),
	}, nil
}

type UpdateSessionRequest struct {
	Title           string `db:"title"            json:"title"            validate:"omitempty,max=255"`
	Location        string `db:"location"         json:"location"         validate:"omitempty,max=255"`
	StartDate       string `json:"start_date"       validate:"omitempty"`
	EndDate         string `json:"end_date"         validate:"omitempty"`
	MaxParticipants int    `db:"max_participants" json:"max_participants" validate:"omitempty,min=1"`
	Status          string `db:"status"           json:"status"           validate:"omitempty,oneof=scheduled completed cancelled"`
}

type EnrollRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
}

type SessionResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Location        string `json:"location"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	MaxParticipants int    `json:"max_participants"`
	Status          string `json:"status"`
	gDto.Metadata
}

func (r *SessionResponse) FromModel(session model.TrainingSession) {
	r.ID = session.ID
	r.Title = session.Title
	r.Location = session.Location
	r.StartDate = timezone.Format(session.StartDate, constant.DateFormat)
	r.EndDate = timezone.Format(session.EndDate, constant.DateFormat)
	r.MaxParticipants = session.MaxParticipants
	r.Status = session.Status
	r.Metadata.FromModel(session.Metadata)
}

type GetSessionsResponse struct {
	Sessions  []SessionResponse `json:"sessions"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetSessionsResponse) FromModels(models []model.TrainingSession, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Sessions = make([]SessionResponse, len(models))
	for i, mod := range models {
		r.Sessions[i].FromModel(mod)
	}
}

type ParticipantResponse struct {
	UserID     string `json:"user_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	EnrolledAt string `json:"enrolled_at"`
}

type GetParticipantsResponse struct {
	SessionID    string                `json:"session_id"`
	Participants []ParticipantResponse `json:"participants"`
	Total        int                   `json:"total"`
	Remaining    int                   `json:"remaining"`
}

// FromModels merges the roster with the matching user records. Users missing
// from the lookup still appear, just without name and email.
func (r *GetParticipantsResponse) FromModels(session model.TrainingSession, participants []model.Participant, users []userModel.User) {
	byID := make(map[string]userModel.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	r.SessionID = session.ID
	r.Total = len(participants)

	r.Remaining = session.MaxParticipants - len(participants)
	if r.Remaining < 0 {
		r.Remaining = 0
	}

	r.Participants = make([]ParticipantResponse, len(participants))
	for i, p := range participants {
		r.Participants[i] = ParticipantResponse{
			UserID:     p.UserID,
			EnrolledAt: timezone.Format(p.EnrolledAt, constant.DateFormat),
		}

		if u, ok := byID[p.UserID]; ok {
			r.Participants[i].FullName = u.FullName()
			r.Participants[i].Email = u.Email
		}
	}
}
