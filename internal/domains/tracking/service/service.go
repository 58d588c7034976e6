package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"autoecole/config"
	"autoecole/infras/otel"
	docModel "autoecole/internal/domains/document/model"
	docRepo "autoecole/internal/domains/document/repository"
	rentalModel "autoecole/internal/domains/rental/model"
	rentalRepo "autoecole/internal/domains/rental/repository"
	"autoecole/internal/domains/tracking/model/dto"
	vehicleModel "autoecole/internal/domains/vehicle/model"
	vehicleRepo "autoecole/internal/domains/vehicle/repository"
	"autoecole/shared"
	"autoecole/shared/cache"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/failure"
	"autoecole/shared/token"
)

const cacheGetTracking = "tracking:get"

// Tracking is the public booking lookup. It never mutates anything: the
// projection stays valid for the lifetime of the booking, terminal states
// included.
type Tracking interface {
	TrackByToken(ctx context.Context, trackingToken string) (dto.TrackingResponse, error)
}

type serviceImpl struct {
	rentals   rentalRepo.Rental
	vehicles  vehicleRepo.Vehicle
	documents docRepo.Document
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	rentals rentalRepo.Rental,
	vehicles vehicleRepo.Vehicle,
	documents docRepo.Document,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Tracking {
	return &serviceImpl{
		rentals:   rentals,
		vehicles:  vehicles,
		documents: documents,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) TrackByToken(ctx context.Context, trackingToken string) (res dto.TrackingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TrackByToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Malformed tokens never reach the database; the response is the same
	// 404 an unknown token gets.
	if !token.IsTrackingToken(trackingToken) {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetTracking, trackingToken)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tracking")

		return res, nil
	}

	rental, err := s.rentals.Get(ctx, shared.FilterByID(trackingToken, rentalModel.FieldTrackingToken, rentalModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental by tracking token")

		return res, fmt.Errorf("failed to get rental by tracking token: %w", err)
	}

	if rental.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(rental)

	if rental.VehicleID.Valid {
		vehicle, err := s.vehicles.Get(ctx, shared.FilterByID(rental.VehicleID.String, vehicleModel.FieldID, vehicleModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get rental vehicle")

			return res, fmt.Errorf("failed to get rental vehicle: %w", err)
		}

		if vehicle.ID != constant.Empty {
			res.WithVehicle(vehicle)
		}
	}

	history, err := s.rentals.GetHistory(ctx, rental.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental history")

		return res, fmt.Errorf("failed to get rental history: %w", err)
	}

	res.WithHistory(history)

	docs, err := s.documents.GetAll(ctx, gDto.QueryParams{}, publicDocumentsFilter(rental.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rental documents")

		return res, fmt.Errorf("failed to get rental documents: %w", err)
	}

	res.WithDocuments(docs)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tracking to cache")
		}
	}()

	return res, nil
}

// publicDocumentsFilter selects the rental's documents minus the
// administrative ones, which stay internal.
func publicDocumentsFilter(rentalID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    docModel.FieldRentalID,
				Value:    rentalID,
				Operator: gDto.FilterOperatorEq,
				Table:    docModel.TableName,
			},
			gDto.Filter{
				Field:    docModel.FieldType,
				Value:    docModel.TypeAdministrative,
				Operator: gDto.FilterOperatorNotEq,
				Table:    docModel.TableName,
			},
		},
	}
}
