package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"autoecole/infras/otel"
	"autoecole/internal/domains/session/model"
	"autoecole/internal/domains/session/model/dto"
	"autoecole/internal/domains/session/service"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/validator"
	"autoecole/transport/http/response"
)

type Handler struct {
	service service.Session
	otel    otel.Otel
}

func New(service service.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/sessions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSession)
		routerGroup.Get("/", handler.GetSessions)
		routerGroup.Get("/{id}", handler.GetSessionByID)
		routerGroup.Patch("/{id}", handler.UpdateSession)
		routerGroup.Delete("/{id}", handler.DeleteSession)
		routerGroup.Post("/{id}/participants", handler.EnrollParticipant)
		routerGroup.Delete("/{id}/participants/{userId}", handler.WithdrawParticipant)
		routerGroup.Get("/{id}/participants", handler.GetParticipants)
	})
}

// CreateSession handles the creation of a new training session.
// @Summary Create a new training session
// @Description Create a new training session with a participant limit.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Create Session Request"
// @Success 201 {object} response.Message "Session created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions [post]
// @Security BearerAuth
func (handler *Handler) CreateSession(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSession")
	defer scope.End()

	req := dto.CreateSessionRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create session")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Session created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Session created successfully")
}

// GetSessions retrieves all training sessions based on query parameters.
// @Summary Get all training sessions
// @Description Retrieve all training sessions with optional filtering and pagination.
// @Tags Session
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (scheduled, completed, cancelled)"
// @Param location query string false "Filter by location"
// @Success 200 {object} response.Data[dto.GetSessionsResponse] "List of sessions"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions [get]
// @Security BearerAuth
func (handler *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSessions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)
	location := r.URL.Query().Get(model.FieldLocation)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if location != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLocation,
			Operator: gDto.FilterOperatorLike,
			Value:    location,
			Table:    model.TableName,
		})
	}

	sessions, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sessions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sessions retrieved successfully")

	response.WithJSON(w, http.StatusOK, sessions)
}

// GetSessionByID retrieves a training session by its ID.
// @Summary Get a training session by ID
// @Description Retrieve a training session by its unique identifier.
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.SessionResponse] "Session details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSessionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSessionByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	session, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session retrieved successfully")

	response.WithJSON(w, http.StatusOK, session)
}

// UpdateSession updates an existing training session by its ID.
// @Summary Update a training session by ID
// @Description Update the details of an existing training session.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.UpdateSessionRequest true "Update Session Request"
// @Success 200 {object} response.Message "Session updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSession")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateSessionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update session")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Session updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Session updated successfully")
}

// DeleteSession deletes a training session by its ID.
// @Summary Delete a training session by ID
// @Description Delete a training session using its unique identifier.
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Message "Session deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSession")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete session")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Session deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Session deleted successfully")
}

// EnrollParticipant adds a user to the session roster.
// @Summary Enroll a participant
// @Description Enroll a user into a training session. Full sessions and duplicate enrollments are rejected with a conflict.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.EnrollRequest true "Enroll Request"
// @Success 201 {object} response.Message "Participant enrolled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id}/participants [post]
// @Security BearerAuth
func (handler *Handler) EnrollParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EnrollParticipant")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.EnrollRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Enroll(ctx, id, req.UserID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to enroll participant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Participant enrolled successfully")

	response.WithMessage(w, http.StatusCreated, "Participant enrolled successfully")
}

// WithdrawParticipant removes a user from the session roster.
// @Summary Withdraw a participant
// @Description Remove a user from a training session roster. Withdrawing a user who is not enrolled is rejected with a conflict.
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Param userId path string true "User ID"
// @Success 200 {object} response.Message "Participant withdrawn successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id}/participants/{userId} [delete]
// @Security BearerAuth
func (handler *Handler) WithdrawParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".WithdrawParticipant")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	userID := chi.URLParam(r, constant.RequestParamUserID)

	if err := handler.service.Withdraw(ctx, id, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to withdraw participant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Participant withdrawn successfully")

	response.WithMessage(w, http.StatusOK, "Participant withdrawn successfully")
}

// GetParticipants lists the session roster.
// @Summary Get the session roster
// @Description Retrieve the ordered roster of a training session with remaining capacity.
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.GetParticipantsResponse] "Session roster"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id}/participants [get]
// @Security BearerAuth
func (handler *Handler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetParticipants")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	roster, err := handler.service.GetParticipants(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session participants")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session roster retrieved successfully")

	response.WithJSON(w, http.StatusOK, roster)
}
