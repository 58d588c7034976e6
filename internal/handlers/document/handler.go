package document

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"autoecole/infras/otel"
	"autoecole/internal/domains/document/model"
	"autoecole/internal/domains/document/model/dto"
	"autoecole/internal/domains/document/service"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/failure"
	"autoecole/shared/validator"
	"autoecole/transport/http/response"
)

type Handler struct {
	service service.Document
	otel    otel.Otel
}

func New(service service.Document, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/documents", func(routerGroup chi.Router) {
		routerGroup.Post("/temp", handler.StageDocument)
		routerGroup.Delete("/temp/{tempId}", handler.DiscardDocument)
		routerGroup.Post("/finalize", handler.FinalizeDocuments)
		routerGroup.Get("/", handler.GetDocuments)
		routerGroup.Get("/{id}", handler.GetDocumentByID)
		routerGroup.Get("/{id}/download", handler.DownloadDocument)
		routerGroup.Delete("/{id}", handler.DeleteDocument)
	})
}

// StageDocument uploads a file into the staging area.
// @Summary Stage a document upload
// @Description Upload a file to the staging area. The returned temp id is used to finalize or discard it.
// @Tags Document
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param title formData string true "Document title"
// @Param category formData string true "Document category"
// @Param type formData string false "Document type (document, image, administrative)"
// @Success 201 {object} response.Data[dto.StagedDocumentResponse] "Document staged successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/temp [post]
// @Security BearerAuth
func (handler *Handler) StageDocument(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StageDocument")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	_, header, err := request.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("missing file in multipart form")

		response.WithError(writer, failure.BadRequestFromString("file is required"))

		return
	}

	req := dto.StageDocumentRequest{
		File:     header,
		Title:    request.FormValue(constant.FormTitle),
		Category: request.FormValue(constant.FormCategory),
		Type:     request.FormValue(constant.FormType),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate staged document request")

		response.WithError(writer, err)

		return
	}

	staged, err := handler.service.Stage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to stage document")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Document staged successfully")

	response.WithJSON(writer, http.StatusCreated, staged)
}

// DiscardDocument removes a staged upload.
// @Summary Discard a staged document
// @Description Remove a staged upload. Unknown temp ids are treated as already discarded.
// @Tags Document
// @Produce json
// @Param tempId path string true "Temp ID"
// @Success 200 {object} response.Message "Staged document discarded"
// @Failure 500 {object} response.Error
// @Router /v1/documents/temp/{tempId} [delete]
// @Security BearerAuth
func (handler *Handler) DiscardDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DiscardDocument")
	defer scope.End()

	tempID := chi.URLParam(r, constant.RequestParamTempID)

	if err := handler.service.Discard(ctx, tempID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to discard staged document")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Staged document discarded")

	response.WithMessage(w, http.StatusOK, "Staged document discarded")
}

// FinalizeDocuments attaches staged uploads to a rental or session.
// @Summary Finalize staged documents
// @Description Attach staged uploads to a rental or training session. Returns a per-item report; earlier successes stand even if later items fail.
// @Tags Document
// @Accept json
// @Produce json
// @Param request body dto.FinalizeDocumentsRequest true "Finalize Documents Request"
// @Success 200 {object} response.Data[dto.FinalizeDocumentsResponse] "Finalize report"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/finalize [post]
// @Security BearerAuth
func (handler *Handler) FinalizeDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FinalizeDocuments")
	defer scope.End()

	req := dto.FinalizeDocumentsRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	report, err := handler.service.Finalize(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to finalize documents")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Documents finalized")

	response.WithJSON(w, http.StatusOK, report)
}

// GetDocuments retrieves all documents based on query parameters.
// @Summary Get all documents
// @Description Retrieve all finalized documents with optional filtering and pagination.
// @Tags Document
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param rental_id query string false "Filter by rental ID"
// @Param session_id query string false "Filter by session ID"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Data[dto.GetDocumentsResponse] "List of documents"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents [get]
// @Security BearerAuth
func (handler *Handler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocuments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	rentalID := r.URL.Query().Get(model.FieldRentalID)
	sessionID := r.URL.Query().Get(model.FieldSessionID)
	category := r.URL.Query().Get(model.FieldCategory)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if rentalID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRentalID,
			Operator: gDto.FilterOperatorEq,
			Value:    rentalID,
			Table:    model.TableName,
		})
	}

	if sessionID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSessionID,
			Operator: gDto.FilterOperatorEq,
			Value:    sessionID,
			Table:    model.TableName,
		})
	}

	if category != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
			Table:    model.TableName,
		})
	}

	documents, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get documents")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Documents retrieved successfully")

	response.WithJSON(w, http.StatusOK, documents)
}

// GetDocumentByID retrieves a document by its ID.
// @Summary Get a document by ID
// @Description Retrieve a document record by its unique identifier.
// @Tags Document
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Data[dto.DocumentResponse] "Document details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDocumentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocumentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	document, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get document by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Document retrieved successfully")

	response.WithJSON(w, http.StatusOK, document)
}

// DownloadDocument streams the document file.
// @Summary Download a document
// @Description Stream the permanent file of a finalized document.
// @Tags Document
// @Produce application/octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} binary "Document file"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/{id}/download [get]
// @Security BearerAuth
func (handler *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DownloadDocument")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	rc, document, err := handler.service.Download(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to download document")

		response.WithError(w, err)

		return
	}
	defer rc.Close()

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeOctetStream)
	w.Header().Set(constant.RequestHeaderContentDisposition, "attachment; filename="+strconv.Quote(document.FileName))

	if _, err := io.Copy(w, rc); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to stream document file")

		return
	}

	scope.AddEvent("Document downloaded successfully")
}

// DeleteDocument deletes a document and its file.
// @Summary Delete a document by ID
// @Description Delete a finalized document record and its stored file.
// @Tags Document
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Message "Document deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/documents/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDocument")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete document")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Document deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Document deleted successfully")
}
