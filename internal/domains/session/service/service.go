package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"autoecole/config"
	"autoecole/infras/otel"
	"autoecole/internal/domains/session/model"
	"autoecole/internal/domains/session/model/dto"
	"autoecole/internal/domains/session/repository"
	userModel "autoecole/internal/domains/user/model"
	userRepo "autoecole/internal/domains/user/repository"
	"autoecole/internal/notification"
	"autoecole/shared"
	"autoecole/shared/cache"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/failure"
	"autoecole/shared/timezone"
)

const (
	cacheGetSession          = "session:get"
	cacheGetAllSession       = "session:gets"
	cacheCountSession        = "session:count"
	cacheSessionParticipants = "session:participants"
)

type Session interface {
	Create(ctx context.Context, req dto.CreateSessionRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSessionsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.SessionResponse, error)
	Update(ctx context.Context, req dto.UpdateSessionRequest, id string) error
	Delete(ctx context.Context, id string) error
	Enroll(ctx context.Context, sessionID, userID string) error
	Withdraw(ctx context.Context, sessionID, userID string) error
	GetParticipants(ctx context.Context, sessionID string) (dto.GetParticipantsResponse, error)
}

type serviceImpl struct {
	repo     repository.Session
	users    userRepo.User
	notifier notification.Notifier
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Session,
	users userRepo.User,
	notifier notification.Notifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Session {
	return &serviceImpl{
		repo:     repo,
		users:    users,
		notifier: notifier,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSessionRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	session, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString("dates must use format YYYY-MM-DD HH:MM:SS") // nolint:wrapcheck
	}

	if session.EndDate.Before(session.StartDate) {
		return failure.BadRequestFromString("end_date must not be before start_date") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to create session")

		return fmt.Errorf("failed to create session: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSession)
		shared.InvalidateCaches(c, s.cache, cacheCountSession)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSessionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSession, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for sessions")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count sessions")

		return res, fmt.Errorf("failed to count sessions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sessions")

		return res, fmt.Errorf("failed to get sessions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save sessions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSession, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for session count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count sessions")

		return res, fmt.Errorf("failed to count sessions: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save session count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSession, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for session")

		return res, nil
	}

	session, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return res, fmt.Errorf("failed to get session: %w", err)
	}

	if session.ID == constant.Empty {
		return res, failure.NotFound("session not found") // nolint:wrapcheck
	}

	res.FromModel(session)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save session to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSessionRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateSessionRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if session exists")

		return fmt.Errorf("failed to check if session exists: %w", err)
	}

	if !exist {
		log.Error().Msg("session not found")

		return failure.NotFound("session not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.StartDate != "" {
		startDate, err := timezone.Parse(constant.DateFormat, req.StartDate)
		if err != nil {
			return failure.BadRequestFromString("start_date must use format YYYY-MM-DD HH:MM:SS") // nolint:wrapcheck
		}

		updatedFields[model.FieldStartDate] = startDate
	}

	if req.EndDate != "" {
		endDate, err := timezone.Parse(constant.DateFormat, req.EndDate)
		if err != nil {
			return failure.BadRequestFromString("end_date must use format YYYY-MM-DD HH:MM:SS") // nolint:wrapcheck
		}

		updatedFields[model.FieldEndDate] = endDate
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update session")

		return fmt.Errorf("failed to update session: %w", err)
	}

	s.invalidateSessionCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if session exists")

		return fmt.Errorf("failed to check if session exists: %w", err)
	}

	if !exist {
		log.Error().Msg("session not found")

		return failure.NotFound("session not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete session")

		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.invalidateSessionCaches(ctx, id)

	return nil
}

// Enroll adds the user to the roster. The duplicate and capacity decisions
// live in the repository under the session row lock; this layer only checks
// the user exists and fans out the side effects.
func (s *serviceImpl) Enroll(ctx context.Context, sessionID, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Enroll")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.users.Exist(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err = s.repo.Enroll(ctx, sessionID, userID); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Str("userID", userID).Msg("failed to enroll user")

		return err // nolint:wrapcheck
	}

	s.notifier.Notify(ctx, notification.EventSessionEnrolled, map[string]any{
		"session_id": sessionID,
		"user_id":    userID,
	})

	s.invalidateSessionCaches(ctx, sessionID)

	return nil
}

func (s *serviceImpl) Withdraw(ctx context.Context, sessionID, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Withdraw")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Withdraw(ctx, sessionID, userID); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Str("userID", userID).Msg("failed to withdraw user")

		return err // nolint:wrapcheck
	}

	s.notifier.Notify(ctx, notification.EventSessionWithdrawn, map[string]any{
		"session_id": sessionID,
		"user_id":    userID,
	})

	s.invalidateSessionCaches(ctx, sessionID)

	return nil
}

func (s *serviceImpl) GetParticipants(ctx context.Context, sessionID string) (res dto.GetParticipantsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetParticipants")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheSessionParticipants, sessionID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for session participants")

		return res, nil
	}

	session, err := s.repo.Get(ctx, shared.FilterByID(sessionID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return res, fmt.Errorf("failed to get session: %w", err)
	}

	if session.ID == constant.Empty {
		return res, failure.NotFound("session not found") // nolint:wrapcheck
	}

	participants, err := s.repo.GetParticipants(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get session participants")

		return res, fmt.Errorf("failed to get session participants: %w", err)
	}

	users, err := s.lookupUsers(ctx, participants)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	res.FromModels(session, participants, users)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save session participants to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) lookupUsers(ctx context.Context, participants []model.Participant) ([]userModel.User, error) {
	if len(participants) == 0 {
		return nil, nil
	}

	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.UserID
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    userModel.TableName,
			},
		},
	}

	users, err := s.users.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get roster users")

		return nil, fmt.Errorf("failed to get roster users: %w", err)
	}

	return users, nil
}

func (s *serviceImpl) invalidateSessionCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSession, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete session from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheSessionParticipants, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete session participants from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSession)
		shared.InvalidateCaches(c, s.cache, cacheCountSession)
	}()
}
