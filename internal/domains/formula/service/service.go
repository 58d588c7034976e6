package service

import (
	"context"
	"fmt"
	"autoecole/config"
	"autoecole/infras/otel"
	"autoecole/internal/domains/formula/model"
	"autoecole/internal/domains/formula/model/dto"
	"autoecole/internal/domains/formula/repository"
	"autoecole/shared"
	"autoecole/shared/cache"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetFormula    = "formula:get"
	cacheGetAllFormula = "formula:gets"
	cacheCountFormula  = "formula:count"
)

type Formula interface {
	Create(ctx context.Context, req dto.CreateFormulaRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFormulasResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.FormulaResponse, error)
	Update(ctx context.Context, req dto.UpdateFormulaRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Formula
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Formula, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Formula {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFormulaRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create formula")

		return fmt.Errorf("failed to create formula: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFormula)
		shared.InvalidateCaches(c, s.cache, cacheCountFormula)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFormulasResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFormula, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for formulas")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count formulas")

		return res, fmt.Errorf("failed to count formulas: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get formulas")

		return res, fmt.Errorf("failed to get formulas: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save formulas to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountFormula, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for formula count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count formulas")

		return res, fmt.Errorf("failed to count formulas: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save formula count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FormulaResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetFormula, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for formula")

		return res, nil
	}

	formula, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get formula")

		return res, fmt.Errorf("failed to get formula: %w", err)
	}

	if formula.ID == constant.Empty {
		return res, failure.NotFound("formula not found") // nolint:wrapcheck
	}

	res.FromModel(formula)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save formula to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFormulaRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if formula exists")

		return fmt.Errorf("failed to check if formula exists: %w", err)
	}

	if !exist {
		log.Error().Msg("formula not found")

		return failure.NotFound("formula not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if req.RequiredDocuments != nil {
		updatedFields[model.FieldRequiredDocuments] = pq.StringArray(req.RequiredDocuments)
	}

	if len(updatedFields) == 2 && req.RequiredDocuments == nil {
		// only the metadata stamps would change
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update formula")

		return fmt.Errorf("failed to update formula: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetFormula, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete formula from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllFormula)
		shared.InvalidateCaches(c, s.cache, cacheCountFormula)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if formula exists")

		return fmt.Errorf("failed to check if formula exists: %w", err)
	}

	if !exist {
		log.Error().Msg("formula not found")

		return failure.NotFound("formula not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete formula")

		return fmt.Errorf("failed to delete formula: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetFormula, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete formula from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllFormula)
		shared.InvalidateCaches(c, s.cache, cacheCountFormula)
	}()

	return nil
}
