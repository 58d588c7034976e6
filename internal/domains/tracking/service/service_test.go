package service_test

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"autoecole/config"
	"autoecole/infras/otel/mocks"
	documentMocks "autoecole/internal/domains/document/mocks"
	docModel "autoecole/internal/domains/document/model"
	rentalMocks "autoecole/internal/domains/rental/mocks"
	rentalModel "autoecole/internal/domains/rental/model"
	"autoecole/internal/domains/tracking/model/dto"
	"autoecole/internal/domains/tracking/service"
	vehicleMocks "autoecole/internal/domains/vehicle/mocks"
	vehicleModel "autoecole/internal/domains/vehicle/model"
	"autoecole/shared/cache"
	cacheMocks "autoecole/shared/cache/mocks"
	gDto "autoecole/shared/dto"
	"autoecole/shared/failure"
	gModel "autoecole/shared/model"
	"autoecole/shared/timezone"
)

const trackingToken = "track_0123456789abcdef0123456789abcdef1756600000"

type trackingServiceMocks struct {
	rentals   *rentalMocks.MockRental
	vehicles  *vehicleMocks.MockVehicle
	documents *documentMocks.MockDocument
	cache     *cacheMocks.MockRedisCache
}

func newTrackingService(ctrl *gomock.Controller) (service.Tracking, trackingServiceMocks) {
	m := trackingServiceMocks{
		rentals:   rentalMocks.NewMockRental(ctrl),
		vehicles:  vehicleMocks.NewMockVehicle(ctrl),
		documents: documentMocks.NewMockDocument(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache saves run on a background goroutine.
	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.rentals, m.vehicles, m.documents, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func trackedRental(status rentalModel.Status) rentalModel.Rental {
	return rentalModel.Rental{
		ID:             "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		TrackingToken:  trackingToken,
		UserID:         "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		FormulaID:      "6ba7b811-9dad-11d1-80b4-00c04fd430c8",
		Status:         status,
		StartDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		PickupLocation: "Lyon",
		ReturnLocation: "Lyon",
		TotalPrice:     sql.NullFloat64{Float64: 270, Valid: true},
	}
}

func TestTrackingService_TrackByToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTrackingService(ctrl)

	t.Run("malformed token never reaches the database", func(t *testing.T) {
		_, err := svc.TrackByToken(context.Background(), "not-a-token")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown token", func(t *testing.T) {
		m.rentals.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(rentalModel.Rental{}, nil)

		_, err := svc.TrackByToken(context.Background(), trackingToken)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("projects the booking with vehicle, history and documents", func(t *testing.T) {
		rental := trackedRental(rentalModel.StatusConfirmed)
		rental.VehicleID = sql.NullString{String: "vehicle-1", Valid: true}

		m.rentals.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(rental, nil)

		m.vehicles.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(vehicleModel.Vehicle{ID: "vehicle-1", Model: "Clio V", Plate: "AB-123-CD", Category: "B"}, nil)

		m.rentals.EXPECT().
			GetHistory(gomock.Any(), rental.ID).
			Return([]rentalModel.StatusHistory{
				{Status: rentalModel.StatusPending, Description: "Booking created", CreatedAt: timezone.Now()},
				{Status: rentalModel.StatusConfirmed, Description: "Vehicle assigned", CreatedAt: timezone.Now()},
			}, nil)

		m.documents.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]docModel.Document, error) {
				exclusion, ok := filter.Filters[1].(gDto.Filter)
				assert.True(t, ok)
				assert.Equal(t, gDto.FilterOperatorNotEq, exclusion.Operator)
				assert.Equal(t, docModel.TypeAdministrative, exclusion.Value)

				return []docModel.Document{
					{Title: "Rental contract", Category: "contract", Metadata: gModel.NewMetadata("admin")},
				}, nil
			})

		res, err := svc.TrackByToken(context.Background(), trackingToken)

		assert.NoError(t, err)
		assert.Equal(t, string(rentalModel.StatusConfirmed), res.Status)
		assert.Equal(t, rentalModel.StatusConfirmed.Label(), res.StatusLabel)
		assert.Equal(t, "2026-09-10", res.StartDate)
		assert.NotNil(t, res.TotalPrice)
		assert.Equal(t, 270.0, *res.TotalPrice)
		assert.Equal(t, "AB-123-CD", res.Vehicle.Plate)
		assert.Len(t, res.History, 2)
		assert.Len(t, res.Documents, 1)
		assert.Equal(t, "Rental contract", res.Documents[0].Title)
	})

	t.Run("cancelled booking still resolves", func(t *testing.T) {
		m.rentals.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(trackedRental(rentalModel.StatusCancelled), nil)

		m.rentals.EXPECT().
			GetHistory(gomock.Any(), gomock.Any()).
			Return([]rentalModel.StatusHistory{
				{Status: rentalModel.StatusPending, Description: "Booking created", CreatedAt: timezone.Now()},
				{Status: rentalModel.StatusCancelled, Description: "Cancelled by admin", CreatedAt: timezone.Now()},
			}, nil)

		m.documents.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		res, err := svc.TrackByToken(context.Background(), trackingToken)

		assert.NoError(t, err)
		assert.Equal(t, string(rentalModel.StatusCancelled), res.Status)
	})

	t.Run("unassigned booking has no vehicle block", func(t *testing.T) {
		m.rentals.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(trackedRental(rentalModel.StatusPending), nil)

		m.rentals.EXPECT().
			GetHistory(gomock.Any(), gomock.Any()).
			Return([]rentalModel.StatusHistory{
				{Status: rentalModel.StatusPending, Description: "Booking created", CreatedAt: timezone.Now()},
			}, nil)

		m.documents.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		res, err := svc.TrackByToken(context.Background(), trackingToken)

		assert.NoError(t, err)
		assert.Nil(t, res.Vehicle)
		assert.NotEmpty(t, res.NextStep)
	})
}

func TestTrackingService_TrackByToken_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rentals := rentalMocks.NewMockRental(ctrl)
	vehicles := vehicleMocks.NewMockVehicle(ctrl)
	documents := documentMocks.NewMockDocument(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	cached := dto.TrackingResponse{Status: string(rentalModel.StatusConfirmed)}

	redisCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			res, ok := value.(*dto.TrackingResponse)
			assert.True(t, ok)
			*res = cached

			return nil
		})

	svc := service.New(rentals, vehicles, documents, cfg, redisCache, mocks.NewOtel())

	res, err := svc.TrackByToken(context.Background(), trackingToken)

	assert.NoError(t, err)
	assert.Equal(t, cached.Status, res.Status)
}
