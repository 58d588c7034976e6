package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"autoecole/config"
	"autoecole/infras/otel"
	"autoecole/infras/storage"
	"autoecole/internal/domains/document/model"
	"autoecole/internal/domains/document/model/dto"
	"autoecole/internal/domains/document/repository"
	rentalModel "autoecole/internal/domains/rental/model"
	rentalRepo "autoecole/internal/domains/rental/repository"
	sessionModel "autoecole/internal/domains/session/model"
	sessionRepo "autoecole/internal/domains/session/repository"
	"autoecole/internal/notification"
	"autoecole/shared"
	"autoecole/shared/cache"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/failure"
	gModel "autoecole/shared/model"
	"autoecole/shared/timezone"
)

const (
	cacheGetDocument    = "document:get"
	cacheGetAllDocument = "document:gets"
	cacheCountDocument  = "document:count"
)

// RentalGate re-evaluates a rental's document gating after a finalize batch.
// Implemented by the rental service; declared here so finalize can be tested
// without importing that domain.
type RentalGate interface {
	OnDocumentsFinalized(ctx context.Context, rentalID string) error
}

type Document interface {
	Stage(ctx context.Context, req dto.StageDocumentRequest) (dto.StagedDocumentResponse, error)
	Discard(ctx context.Context, tempID string) error
	Finalize(ctx context.Context, req dto.FinalizeDocumentsRequest) (dto.FinalizeDocumentsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDocumentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.DocumentResponse, error)
	Delete(ctx context.Context, id string) error
	Download(ctx context.Context, id string) (io.ReadCloser, dto.DocumentResponse, error)
	Sweep(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo     repository.Document
	rentals  rentalRepo.Rental
	sessions sessionRepo.Session
	gate     RentalGate
	storage  storage.FileStorage
	notifier notification.Notifier
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Document,
	rentals rentalRepo.Rental,
	sessions sessionRepo.Session,
	gate RentalGate,
	fileStorage storage.FileStorage,
	notifier notification.Notifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Document {
	return &serviceImpl{
		repo:     repo,
		rentals:  rentals,
		sessions: sessions,
		gate:     gate,
		storage:  fileStorage,
		notifier: notifier,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Stage writes the upload to the staging area and records a staged row keyed
// by a fresh temp id. Nothing is attached yet; the file stays retrievable by
// that temp id until a finalize call or the sweeper picks it up.
func (s *serviceImpl) Stage(ctx context.Context, req dto.StageDocumentRequest) (res dto.StagedDocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stage")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	docType := req.Type
	if docType == constant.Empty {
		docType = model.TypeDocument
	}

	maxSizeMB := s.cfg.Upload.MaxSizeMB
	if docType == model.TypeImage {
		maxSizeMB = s.cfg.Upload.ImageMaxSizeMB
	}

	if req.File.Size > int64(maxSizeMB)<<20 {
		return res, failure.BadRequestFromString(fmt.Sprintf("file must not exceed %d MB", maxSizeMB)) // nolint:wrapcheck
	}

	src, err := req.File.Open()
	if err != nil {
		log.Error().Err(err).Msg("failed to open uploaded file")

		return res, failure.IOError(err) // nolint:wrapcheck
	}
	defer src.Close()

	tempID := uuid.NewString()
	originalName := filepath.Base(req.File.Filename)
	stagedName := tempID + "_" + originalName

	if err = s.storage.Write(ctx, s.cfg.Storage.StagingDir, stagedName, src); err != nil {
		log.Error().Err(err).Str("file", stagedName).Msg("failed to write staged file")

		return res, failure.IOError(err) // nolint:wrapcheck
	}

	staged := model.StagedDocument{
		TempID:       tempID,
		Title:        req.Title,
		Type:         docType,
		Category:     req.Category,
		FileName:     stagedName,
		OriginalName: originalName,
		FileSize:     req.File.Size,
		UploadedBy:   user,
		UploadedAt:   timezone.Now(),
	}

	if err = s.repo.InsertStaged(ctx, staged); err != nil {
		log.Error().Err(err).Msg("failed to record staged document")

		if delErr := s.storage.Delete(ctx, s.cfg.Storage.StagingDir, stagedName); delErr != nil {
			log.Warn().Err(delErr).Str("file", stagedName).Msg("failed to clean up staged file")
		}

		return res, fmt.Errorf("failed to record staged document: %w", err)
	}

	res.FromModel(staged)

	return res, nil
}

// Discard removes a staged upload. Unknown temp ids and already missing files
// are no-ops so retries stay safe.
func (s *serviceImpl) Discard(ctx context.Context, tempID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Discard")
	defer scope.End()
	defer scope.TraceIfError(err)

	staged, err := s.repo.GetStaged(ctx, tempID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staged document")

		return fmt.Errorf("failed to get staged document: %w", err)
	}

	if staged.TempID == constant.Empty {
		return nil
	}

	if err = s.storage.Delete(ctx, s.cfg.Storage.StagingDir, staged.FileName); err != nil {
		log.Error().Err(err).Str("file", staged.FileName).Msg("failed to delete staged file")

		return failure.IOError(err) // nolint:wrapcheck
	}

	if err = s.repo.DeleteStaged(ctx, tempID); err != nil {
		log.Error().Err(err).Msg("failed to delete staged document")

		return fmt.Errorf("failed to delete staged document: %w", err)
	}

	return nil
}

// Finalize attaches staged uploads to a rental or session and reports the
// outcome per temp id. Each item moves its file to the permanent area before
// inserting the documents row, so a crash in between leaves a permanent file
// without a row rather than a row without a file. Items are independent:
// earlier successes stand whatever happens to later ones.
func (s *serviceImpl) Finalize(ctx context.Context, req dto.FinalizeDocumentsRequest) (res dto.FinalizeDocumentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Finalize")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkTarget(ctx, req.TargetType, req.TargetID); err != nil {
		return res, err // nolint:wrapcheck
	}

	res.Results = make([]dto.FinalizeItemResult, 0, len(req.TempIDs))

	for _, tempID := range req.TempIDs {
		result := s.finalizeOne(ctx, tempID, req.TargetType, req.TargetID, user)
		res.Results = append(res.Results, result)

		if result.Status == dto.FinalizeStatusFinalized {
			res.Finalized++
		}
	}

	if res.Finalized == 0 {
		return res, nil
	}

	if req.TargetType == dto.TargetTypeRental {
		if gateErr := s.gate.OnDocumentsFinalized(ctx, req.TargetID); gateErr != nil {
			log.Warn().Err(gateErr).Str("rentalID", req.TargetID).Msg("failed to re-evaluate document gating")
		}
	}

	s.notifier.Notify(ctx, notification.EventDocumentsFinalized, map[string]any{
		"target_type": req.TargetType,
		"target_id":   req.TargetID,
		"count":       res.Finalized,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDocument)
		shared.InvalidateCaches(c, s.cache, cacheCountDocument)
	}()

	return res, nil
}

func (s *serviceImpl) checkTarget(ctx context.Context, targetType, targetID string) error {
	switch targetType {
	case dto.TargetTypeRental:
		exist, err := s.rentals.Exist(ctx, shared.FilterByID(targetID, rentalModel.FieldID, rentalModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if rental exists")

			return fmt.Errorf("failed to check if rental exists: %w", err)
		}

		if !exist {
			return failure.NotFound("rental not found") // nolint:wrapcheck
		}
	case dto.TargetTypeSession:
		exist, err := s.sessions.Exist(ctx, shared.FilterByID(targetID, sessionModel.FieldID, sessionModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if session exists")

			return fmt.Errorf("failed to check if session exists: %w", err)
		}

		if !exist {
			return failure.NotFound("session not found") // nolint:wrapcheck
		}
	default:
		return failure.BadRequestFromString("target_type must be rental or session") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) finalizeOne(ctx context.Context, tempID, targetType, targetID, user string) dto.FinalizeItemResult {
	result := dto.FinalizeItemResult{TempID: tempID}

	staged, err := s.repo.GetStaged(ctx, tempID)
	if err != nil {
		log.Error().Err(err).Str("tempID", tempID).Msg("failed to get staged document")

		result.Status = dto.FinalizeStatusFailed
		result.Reason = "failed to load staged document"

		return result
	}

	if staged.TempID == constant.Empty {
		result.Status = dto.FinalizeStatusSkipped
		result.Reason = "unknown temp id"

		return result
	}

	permanentName := uuid.NewString() + strings.ToLower(filepath.Ext(staged.OriginalName))

	if err = s.storage.Move(ctx, s.cfg.Storage.StagingDir, staged.FileName, s.cfg.Storage.DocumentsDir, permanentName); err != nil {
		log.Error().Err(err).Str("tempID", tempID).Msg("failed to move staged file")

		result.Status = dto.FinalizeStatusFailed
		result.Reason = "failed to move file to permanent storage"

		return result
	}

	doc := model.Document{
		ID:         uuid.NewString(),
		Title:      staged.Title,
		Type:       staged.Type,
		Category:   staged.Category,
		FileName:   permanentName,
		UploadedBy: staged.UploadedBy,
		Metadata:   gModel.NewMetadata(user),
	}

	switch targetType {
	case dto.TargetTypeRental:
		doc.RentalID.String = targetID
		doc.RentalID.Valid = true
	case dto.TargetTypeSession:
		doc.SessionID.String = targetID
		doc.SessionID.Valid = true
	}

	if err = s.repo.Insert(ctx, doc); err != nil {
		log.Error().Err(err).Str("tempID", tempID).Msg("failed to insert document")

		if moveErr := s.storage.Move(ctx, s.cfg.Storage.DocumentsDir, permanentName, s.cfg.Storage.StagingDir, staged.FileName); moveErr != nil {
			log.Warn().Err(moveErr).Str("file", permanentName).Msg("failed to move file back to staging")
		}

		result.Status = dto.FinalizeStatusFailed
		result.Reason = "failed to record document"

		return result
	}

	if err = s.repo.DeleteStaged(ctx, tempID); err != nil {
		log.Warn().Err(err).Str("tempID", tempID).Msg("failed to delete staged row, sweeper will retry")
	}

	result.Status = dto.FinalizeStatusFinalized
	result.DocumentID = doc.ID

	return result
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDocumentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDocument, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for documents")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count documents")

		return res, fmt.Errorf("failed to count documents: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get documents")

		return res, fmt.Errorf("failed to get documents: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save documents to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountDocument, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for document count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count documents")

		return res, fmt.Errorf("failed to count documents: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save document count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDocument, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for document")

		return res, nil
	}

	doc, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get document")

		return res, fmt.Errorf("failed to get document: %w", err)
	}

	if doc.ID == constant.Empty {
		return res, failure.NotFound("document not found") // nolint:wrapcheck
	}

	res.FromModel(doc)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save document to cache")
		}
	}()

	return res, nil
}

// Delete removes the document row and its permanent file. The row goes first;
// an orphaned file is recoverable, a dangling row is not.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	doc, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get document")

		return fmt.Errorf("failed to get document: %w", err)
	}

	if doc.ID == constant.Empty {
		return failure.NotFound("document not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete document")

		return fmt.Errorf("failed to delete document: %w", err)
	}

	if err = s.storage.Delete(ctx, s.cfg.Storage.DocumentsDir, doc.FileName); err != nil {
		log.Warn().Err(err).Str("file", doc.FileName).Msg("failed to delete document file")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDocument, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete document from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDocument)
		shared.InvalidateCaches(c, s.cache, cacheCountDocument)
	}()

	return nil
}

// Download resolves the permanent file for a document record.
func (s *serviceImpl) Download(ctx context.Context, id string) (rc io.ReadCloser, res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Download")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.Get(ctx, id)
	if err != nil {
		return nil, res, err // nolint:wrapcheck
	}

	rc, err = s.storage.Read(ctx, s.cfg.Storage.DocumentsDir, res.FileName)
	if err != nil {
		log.Error().Err(err).Str("file", res.FileName).Msg("failed to open document file")

		return nil, res, failure.IOError(err) // nolint:wrapcheck
	}

	return rc, res, nil
}

// Sweep reclaims staged uploads older than the retention window and returns
// how many it removed. Missing files are fine: a crash between file and row
// deletion on a previous run leaves rows whose file is already gone.
func (s *serviceImpl) Sweep(ctx context.Context) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sweep")
	defer scope.End()
	defer scope.TraceIfError(err)

	cutoff := timezone.Now().Add(-time.Duration(s.cfg.Upload.RetentionHours) * time.Hour)

	staged, err := s.repo.GetStagedBefore(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("failed to list expired staged documents")

		return 0, fmt.Errorf("failed to list expired staged documents: %w", err)
	}

	for _, row := range staged {
		if delErr := s.storage.Delete(ctx, s.cfg.Storage.StagingDir, row.FileName); delErr != nil {
			log.Warn().Err(delErr).Str("file", row.FileName).Msg("failed to delete staged file, skipping row")

			continue
		}

		if delErr := s.repo.DeleteStaged(ctx, row.TempID); delErr != nil {
			log.Warn().Err(delErr).Str("tempID", row.TempID).Msg("failed to delete staged row")

			continue
		}

		count++
	}

	if count > 0 {
		log.Info().Int("count", count).Msg("swept expired staged documents")
	}

	return count, nil
}
