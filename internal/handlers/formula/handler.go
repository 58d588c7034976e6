package formula

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"autoecole/infras/otel"
	"autoecole/internal/domains/formula/model"
	"autoecole/internal/domains/formula/model/dto"
	"autoecole/internal/domains/formula/service"
	"autoecole/shared"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/validator"
	"autoecole/transport/http/response"
)

type Handler struct {
	service service.Formula
	otel    otel.Otel
}

func New(service service.Formula, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/formulas", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFormula)
		routerGroup.Get("/", handler.GetFormulas)
		routerGroup.Get("/{id}", handler.GetFormulaByID)
		routerGroup.Patch("/{id}", handler.UpdateFormula)
		routerGroup.Delete("/{id}", handler.DeleteFormula)
	})
}

// CreateFormula handles the creation of a new formula.
// @Summary Create a new formula
// @Description Create a new rental formula, including the document categories a booking must provide.
// @Tags Formula
// @Accept json
// @Produce json
// @Param request body dto.CreateFormulaRequest true "Create Formula Request"
// @Success 201 {object} response.Message "Formula created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/formulas [post]
// @Security BearerAuth
func (handler *Handler) CreateFormula(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFormula")
	defer scope.End()

	req := dto.CreateFormulaRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create formula")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Formula created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Formula created successfully")
}

// GetFormulas retrieves all formulas based on query parameters.
// @Summary Get all formulas
// @Description Retrieve all formulas with optional filtering and pagination.
// @Tags Formula
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetFormulasResponse] "List of formulas"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/formulas [get]
func (handler *Handler) GetFormulas(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFormulas")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	isActive := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive))

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if isActive != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *isActive,
			Table:    model.TableName,
		})
	}

	formulas, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get formulas")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Formulas retrieved successfully")

	response.WithJSON(w, http.StatusOK, formulas)
}

// GetFormulaByID retrieves a formula by its ID.
// @Summary Get a formula by ID
// @Description Retrieve a formula by its unique identifier.
// @Tags Formula
// @Produce json
// @Param id path string true "Formula ID"
// @Success 200 {object} response.Data[dto.FormulaResponse] "Formula details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/formulas/{id} [get]
func (handler *Handler) GetFormulaByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFormulaByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	formula, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get formula by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Formula retrieved successfully")

	response.WithJSON(w, http.StatusOK, formula)
}

// UpdateFormula updates an existing formula by its ID.
// @Summary Update a formula by ID
// @Description Update the details of an existing formula, including its required document categories.
// @Tags Formula
// @Accept json
// @Produce json
// @Param id path string true "Formula ID"
// @Param request body dto.UpdateFormulaRequest true "Update Formula Request"
// @Success 200 {object} response.Message "Formula updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/formulas/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateFormula(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFormula")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateFormulaRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update formula")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Formula updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Formula updated successfully")
}

// DeleteFormula deletes a formula by its ID.
// @Summary Delete a formula by ID
// @Description Remove a formula from the catalog.
// @Tags Formula
// @Produce json
// @Param id path string true "Formula ID"
// @Success 200 {object} response.Message "Formula deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/formulas/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFormula(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFormula")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete formula")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Formula deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Formula deleted successfully")
}
