package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"autoecole/config"
	"autoecole/infras/otel"
	formulaModel "autoecole/internal/domains/formula/model"
	formulaRepo "autoecole/internal/domains/formula/repository"
	"autoecole/internal/domains/rental/model"
	"autoecole/internal/domains/rental/model/dto"
	"autoecole/internal/domains/rental/repository"
	userModel "autoecole/internal/domains/user/model"
	userRepo "autoecole/internal/domains/user/repository"
	vehicleModel "autoecole/internal/domains/vehicle/model"
	vehicleRepo "autoecole/internal/domains/vehicle/repository"
	"autoecole/internal/notification"
	"autoecole/shared"
	"autoecole/shared/cache"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/failure"
	"autoecole/shared/timezone"
	"autoecole/shared/token"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRental    = "rental:get"
	cacheGetAllRental = "rental:gets"
	cacheCountRental  = "rental:count"
	cacheGetTracking  = "tracking:get"
)

// DocumentCategories lists the finalized document categories attached to a
// rental. Implemented by the document repository; declared here so the
// document gating can be mocked without importing that domain.
type DocumentCategories interface {
	CategoriesByRental(ctx context.Context, rentalID string) ([]string, error)
}

type Rental interface {
	Create(ctx context.Context, req dto.CreateRentalRequest) (dto.RentalResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRentalsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RentalResponse, error)
	Update(ctx context.Context, req dto.UpdateRentalRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	AssignVehicle(ctx context.Context, req dto.AssignVehicleRequest, id string) error
	OnDocumentsFinalized(ctx context.Context, rentalID string) error
}

type serviceImpl struct {
	repo     repository.Rental
	formulas formulaRepo.Formula
	vehicles vehicleRepo.Vehicle
	users    userRepo.User
	docs     DocumentCategories
	notifier notification.Notifier
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Rental,
	formulas formulaRepo.Formula,
	vehicles vehicleRepo.Vehicle,
	users userRepo.User,
	docs DocumentCategories,
	notifier notification.Notifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Rental {
	return &serviceImpl{
		repo:     repo,
		formulas: formulas,
		vehicles: vehicles,
		users:    users,
		docs:     docs,
		notifier: notifier,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRentalRequest) (res dto.RentalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	userExists, err := s.users.Exist(ctx, shared.FilterByID(req.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !userExists {
		return res, failure.BadRequestFromString("user does not exist") // nolint:wrapcheck
	}

	formula, err := s.formulas.Get(ctx, shared.FilterByID(req.FormulaID, formulaModel.FieldID, formulaModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get formula")

		return res, fmt.Errorf("failed to get formula: %w", err)
	}

	if formula.ID == constant.Empty {
		return res, failure.BadRequestFromString("formula does not exist") // nolint:wrapcheck
	}

	trackingToken, err := token.NewTrackingToken()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tracking token")

		return res, fmt.Errorf("failed to generate tracking token: %w", err)
	}

	status := model.InitialStatus(formula.RequiresDocuments())

	rental, err := req.ToModel(user, trackingToken, status)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse rental request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if rental.EndDate.Before(rental.StartDate) {
		return res, failure.BadRequestFromString("end_date must not be before start_date") // nolint:wrapcheck
	}

	rental.TotalPrice.Float64 = formula.Price
	rental.TotalPrice.Valid = true

	entry := model.StatusHistory{
		ID:          uuid.NewString(),
		RentalID:    rental.ID,
		Status:      status,
		Description: "Booking request received",
		CreatedAt:   timezone.Now(),
	}

	if err = s.repo.Create(ctx, rental, entry); err != nil {
		log.Error().Err(err).Msg("failed to create rental")

		return res, fmt.Errorf("failed to create rental: %w", err)
	}

	s.notifier.Notify(ctx, notification.EventRentalCreated, map[string]any{
		"rental_id":      rental.ID,
		"tracking_token": rental.TrackingToken,
		"status":         string(status),
	})

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRental)
		shared.InvalidateCaches(c, s.cache, cacheCountRental)
	}()

	res.FromModel(rental)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRentalsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRental, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rentals")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rentals")

		return res, fmt.Errorf("failed to count rentals: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rentals")

		return res, fmt.Errorf("failed to get rentals: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rentals to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRental, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rental count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rentals")

		return res, fmt.Errorf("failed to count rentals: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rental count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RentalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRental, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rental")

		return res, nil
	}

	rental, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental")

		return res, fmt.Errorf("failed to get rental: %w", err)
	}

	if rental.ID == constant.Empty {
		return res, failure.NotFound("rental not found") // nolint:wrapcheck
	}

	history, err := s.repo.GetHistory(ctx, rental.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental history")

		return res, fmt.Errorf("failed to get rental history: %w", err)
	}

	res.FromModel(rental)
	res.WithHistory(history)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rental to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRentalRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateRentalRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.repo.Transition(ctx, id, func(current model.Rental) (repository.TransitionPlan, error) {
		if current.Status.IsTerminal() {
			return repository.TransitionPlan{}, failure.Conflict("rental can no longer be modified")
		}

		start, end, parseErr := req.ParseDateRange(current.StartDate, current.EndDate)
		if parseErr != nil {
			return repository.TransitionPlan{}, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", parseErr))
		}

		if end.Before(start) {
			return repository.TransitionPlan{}, failure.BadRequestFromString("end_date must not be before start_date")
		}

		fields := shared.TransformFields(req, user)

		datesChanged := !start.Equal(current.StartDate) || !end.Equal(current.EndDate)
		if datesChanged {
			fields[model.FieldStartDate] = start
			fields[model.FieldEndDate] = end

			if current.VehicleID.Valid {
				available, availErr := s.vehicles.IsAvailable(ctx, current.VehicleID.String, start, end, current.ID)
				if availErr != nil {
					return repository.TransitionPlan{}, fmt.Errorf("failed to check vehicle availability: %w", availErr)
				}

				if !available {
					return repository.TransitionPlan{}, failure.Conflict("assigned vehicle is not available for the new period")
				}

				price, priceErr := s.computePrice(ctx, current.FormulaID, current.VehicleID.String, start, end)
				if priceErr != nil {
					return repository.TransitionPlan{}, priceErr
				}

				fields[model.FieldTotalPrice] = price
			}
		}

		if req.ExamTime != "" {
			examTime, parseErr := timezone.Parse(constant.DateFormat, req.ExamTime)
			if parseErr != nil {
				return repository.TransitionPlan{}, failure.BadRequestFromString(fmt.Sprintf("invalid exam_time format: %v", parseErr))
			}

			fields[model.FieldExamTime] = examTime
		}

		return repository.TransitionPlan{Fields: fields}, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update rental")

		return err // nolint:wrapcheck
	}

	s.invalidateRentalCaches(ctx, id, current.TrackingToken)

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	next := model.Status(req.Status)

	current, err := s.repo.Transition(ctx, id, func(current model.Rental) (repository.TransitionPlan, error) {
		if !current.Status.CanTransitionTo(next) {
			return repository.TransitionPlan{}, failure.InvalidTransition(string(current.Status), string(next))
		}

		fields := map[string]any{
			model.FieldStatus:        next,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		// Cancelling frees the vehicle for other bookings.
		if next == model.StatusCancelled {
			fields[model.FieldVehicleID] = nil
		}

		description := req.Description
		if description == constant.Empty {
			description = next.Label()
		}

		return repository.TransitionPlan{
			Fields: fields,
			History: &model.StatusHistory{
				ID:          uuid.NewString(),
				RentalID:    current.ID,
				Status:      next,
				Description: description,
				CreatedAt:   timezone.Now(),
			},
		}, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update rental status")

		return err // nolint:wrapcheck
	}

	s.notifier.Notify(ctx, notification.EventRentalStatusMoved, map[string]any{
		"rental_id": id,
		"from":      string(current.Status),
		"to":        string(next),
	})

	s.invalidateRentalCaches(ctx, id, current.TrackingToken)

	return nil
}

func (s *serviceImpl) AssignVehicle(ctx context.Context, req dto.AssignVehicleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignVehicle")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	vehicle, err := s.vehicles.Get(ctx, shared.FilterByID(req.VehicleID, vehicleModel.FieldID, vehicleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle")

		return fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.ID == constant.Empty {
		return failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	if !vehicle.IsActive {
		return failure.Conflict("vehicle is not active") // nolint:wrapcheck
	}

	confirmed := false

	current, err := s.repo.Transition(ctx, id, func(current model.Rental) (repository.TransitionPlan, error) {
		if current.Status.IsTerminal() {
			return repository.TransitionPlan{}, failure.Conflict("cannot assign a vehicle to a finished rental")
		}

		available, availErr := s.vehicles.IsAvailable(ctx, vehicle.ID, current.StartDate, current.EndDate, current.ID)
		if availErr != nil {
			return repository.TransitionPlan{}, fmt.Errorf("failed to check vehicle availability: %w", availErr)
		}

		if !available {
			return repository.TransitionPlan{}, failure.Conflict("vehicle is not available for the rental period")
		}

		price, priceErr := s.computePrice(ctx, current.FormulaID, vehicle.ID, current.StartDate, current.EndDate)
		if priceErr != nil {
			return repository.TransitionPlan{}, priceErr
		}

		fields := map[string]any{
			model.FieldVehicleID:     vehicle.ID,
			model.FieldTotalPrice:    price,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		plan := repository.TransitionPlan{Fields: fields}

		// Assigning a vehicle to an unconfirmed booking confirms it in the
		// same step, with one combined history entry. Re-assigning on an
		// already confirmed booking changes no status and records nothing.
		if current.Status.CanTransitionTo(model.StatusConfirmed) {
			confirmed = true
			fields[model.FieldStatus] = model.StatusConfirmed
			plan.History = &model.StatusHistory{
				ID:          uuid.NewString(),
				RentalID:    current.ID,
				Status:      model.StatusConfirmed,
				Description: "Vehicle assigned and booking confirmed",
				CreatedAt:   timezone.Now(),
			}
		}

		return plan, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to assign vehicle")

		return err // nolint:wrapcheck
	}

	s.notifier.Notify(ctx, notification.EventRentalVehicleSet, map[string]any{
		"rental_id":  id,
		"vehicle_id": vehicle.ID,
		"confirmed":  confirmed,
	})

	s.invalidateRentalCaches(ctx, id, current.TrackingToken)

	return nil
}

// OnDocumentsFinalized re-evaluates the document gating after a finalize
// batch. A rental waiting on documents moves back to pending once every
// required category is covered; confirmation stays an explicit admin step.
func (s *serviceImpl) OnDocumentsFinalized(ctx context.Context, rentalID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OnDocumentsFinalized")
	defer scope.End()
	defer scope.TraceIfError(err)

	moved := false

	current, err := s.repo.Transition(ctx, rentalID, func(current model.Rental) (repository.TransitionPlan, error) {
		if current.Status != model.StatusAwaitingDocuments {
			return repository.TransitionPlan{}, nil
		}

		formula, getErr := s.formulas.Get(ctx, shared.FilterByID(current.FormulaID, formulaModel.FieldID, formulaModel.TableName))
		if getErr != nil {
			return repository.TransitionPlan{}, fmt.Errorf("failed to get formula: %w", getErr)
		}

		provided, docErr := s.docs.CategoriesByRental(ctx, current.ID)
		if docErr != nil {
			return repository.TransitionPlan{}, fmt.Errorf("failed to list rental document categories: %w", docErr)
		}

		if !model.DocumentsComplete(formula.RequiredDocuments, provided) {
			return repository.TransitionPlan{}, nil
		}

		moved = true

		return repository.TransitionPlan{
			Fields: map[string]any{
				model.FieldStatus:        model.StatusPending,
				constant.FieldModifiedAt: timezone.Now(),
			},
			History: &model.StatusHistory{
				ID:          uuid.NewString(),
				RentalID:    current.ID,
				Status:      model.StatusPending,
				Description: "All required documents received",
				CreatedAt:   timezone.Now(),
			},
		}, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to re-evaluate document gating")

		return err // nolint:wrapcheck
	}

	if moved {
		s.notifier.Notify(ctx, notification.EventRentalStatusMoved, map[string]any{
			"rental_id": rentalID,
			"from":      string(model.StatusAwaitingDocuments),
			"to":        string(model.StatusPending),
		})

		s.invalidateRentalCaches(ctx, rentalID, current.TrackingToken)
	}

	return nil
}

// computePrice recomputes the total wholesale: formula base price plus the
// vehicle daily rate over the rental days (inclusive bounds).
func (s *serviceImpl) computePrice(ctx context.Context, formulaID, vehicleID string, start, end time.Time) (float64, error) {
	formula, err := s.formulas.Get(ctx, shared.FilterByID(formulaID, formulaModel.FieldID, formulaModel.TableName))
	if err != nil {
		return 0, fmt.Errorf("failed to get formula: %w", err)
	}

	vehicle, err := s.vehicles.Get(ctx, shared.FilterByID(vehicleID, vehicleModel.FieldID, vehicleModel.TableName))
	if err != nil {
		return 0, fmt.Errorf("failed to get vehicle: %w", err)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}

	return formula.Price + vehicle.DailyRate*float64(days), nil
}

func (s *serviceImpl) invalidateRentalCaches(ctx context.Context, id, trackingToken string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRental, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete rental from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRental)
		shared.InvalidateCaches(c, s.cache, cacheCountRental)

		if trackingToken != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTracking, trackingToken)); err != nil {
				log.Error().Err(err).Msg("failed to delete tracking projection from cache")
			}
		}
	}()
}
