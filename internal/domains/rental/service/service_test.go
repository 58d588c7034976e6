package service_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"autoecole/config"
	"autoecole/infras/otel/mocks"
	formulaMocks "autoecole/internal/domains/formula/mocks"
	formulaModel "autoecole/internal/domains/formula/model"
	rentalMocks "autoecole/internal/domains/rental/mocks"
	"autoecole/internal/domains/rental/model"
	"autoecole/internal/domains/rental/model/dto"
	"autoecole/internal/domains/rental/repository"
	"autoecole/internal/domains/rental/service"
	userMocks "autoecole/internal/domains/user/mocks"
	vehicleMocks "autoecole/internal/domains/vehicle/mocks"
	vehicleModel "autoecole/internal/domains/vehicle/model"
	notificationMocks "autoecole/internal/notification/mocks"
	cacheMocks "autoecole/shared/cache/mocks"
	"autoecole/shared/constant"
	"autoecole/shared/failure"
	gModel "autoecole/shared/model"
	"autoecole/shared/timezone"
)

type rentalServiceMocks struct {
	repo     *rentalMocks.MockRental
	formulas *formulaMocks.MockFormula
	vehicles *vehicleMocks.MockVehicle
	users    *userMocks.MockUser
	docs     *rentalMocks.MockDocumentCategories
	notifier *notificationMocks.MockNotifier
	cache    *cacheMocks.MockRedisCache
}

func newRentalService(ctrl *gomock.Controller) (service.Rental, rentalServiceMocks) {
	m := rentalServiceMocks{
		repo:     rentalMocks.NewMockRental(ctrl),
		formulas: formulaMocks.NewMockFormula(ctrl),
		vehicles: vehicleMocks.NewMockVehicle(ctrl),
		users:    userMocks.NewMockUser(ctrl),
		docs:     rentalMocks.NewMockDocumentCategories(ctrl),
		notifier: notificationMocks.NewMockNotifier(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache invalidation and saves run on background goroutines.
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.repo, m.formulas, m.vehicles, m.users, m.docs, m.notifier, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func pendingRental(id string) model.Rental {
	start := timezone.Now().Truncate(24 * time.Hour)

	return model.Rental{
		ID:            id,
		TrackingToken: "trk_0123456789abcdef0123456789abcdef",
		UserID:        "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		FormulaID:     "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		Status:        model.StatusPending,
		StartDate:     start,
		EndDate:       start.Add(48 * time.Hour),
		Metadata:      gModel.NewMetadata("admin"),
	}
}

func TestRentalService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newRentalService(ctrl)

	req := dto.CreateRentalRequest{
		UserID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		FormulaID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-12",
	}

	tests := []struct {
		name       string
		req        dto.CreateRentalRequest
		setupMock  func()
		wantErr    bool
		wantCode   int
		wantStatus string
	}{
		{
			name: "starts pending when formula needs no documents",
			req:  req,
			setupMock: func() {
				m.users.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.formulas.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(formulaModel.Formula{ID: req.FormulaID, Price: 150}, nil)

				m.repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rental model.Rental, entry model.StatusHistory) error {
						assert.Equal(t, model.StatusPending, rental.Status)
						assert.NotEmpty(t, rental.TrackingToken)
						assert.Equal(t, rental.ID, entry.RentalID)
						assert.Equal(t, model.StatusPending, entry.Status)

						return nil
					})

				m.notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any(), gomock.Any())
			},
			wantStatus: string(model.StatusPending),
		},
		{
			name: "starts awaiting documents when formula requires them",
			req:  req,
			setupMock: func() {
				m.users.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.formulas.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(formulaModel.Formula{
						ID:                req.FormulaID,
						Price:             150,
						RequiredDocuments: pq.StringArray{"identity", "licence"},
					}, nil)

				m.repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any(), gomock.Any())
			},
			wantStatus: string(model.StatusAwaitingDocuments),
		},
		{
			name: "unknown user",
			req:  req,
			setupMock: func() {
				m.users.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown formula",
			req:  req,
			setupMock: func() {
				m.users.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.formulas.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(formulaModel.Formula{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "end date before start date",
			req: dto.CreateRentalRequest{
				UserID:    req.UserID,
				FormulaID: req.FormulaID,
				StartDate: "2026-09-12",
				EndDate:   "2026-09-10",
			},
			setupMock: func() {
				m.users.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.formulas.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(formulaModel.Formula{ID: req.FormulaID, Price: 150}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  req,
			setupMock: func() {
				m.users.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.formulas.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(formulaModel.Formula{ID: req.FormulaID, Price: 150}, nil)

				m.repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, res.Status)
				assert.NotEmpty(t, res.TrackingToken)
			}
		})
	}
}

func TestRentalService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newRentalService(ctrl)

	tests := []struct {
		name      string
		current   model.Rental
		req       dto.UpdateStatusRequest
		notify    bool
		wantErr   bool
		wantCode  int
		checkPlan func(t *testing.T, plan repository.TransitionPlan)
	}{
		{
			name:    "pending to confirmed records history",
			current: pendingRental("rental-1"),
			req:     dto.UpdateStatusRequest{Status: string(model.StatusConfirmed)},
			notify:  true,
			checkPlan: func(t *testing.T, plan repository.TransitionPlan) {
				assert.Equal(t, model.StatusConfirmed, plan.Fields[model.FieldStatus])
				assert.NotNil(t, plan.History)
				assert.Equal(t, model.StatusConfirmed, plan.History.Status)
				assert.Equal(t, model.StatusConfirmed.Label(), plan.History.Description)
			},
		},
		{
			name: "cancelling frees the vehicle",
			current: func() model.Rental {
				rental := pendingRental("rental-2")
				rental.Status = model.StatusInProgress
				rental.VehicleID = sql.NullString{String: "vehicle-1", Valid: true}

				return rental
			}(),
			req:    dto.UpdateStatusRequest{Status: string(model.StatusCancelled), Description: "customer no-show"},
			notify: true,
			checkPlan: func(t *testing.T, plan repository.TransitionPlan) {
				assert.Equal(t, model.StatusCancelled, plan.Fields[model.FieldStatus])
				assert.Nil(t, plan.Fields[model.FieldVehicleID])
				assert.Equal(t, "customer no-show", plan.History.Description)
			},
		},
		{
			name:     "pending to completed is rejected",
			current:  pendingRental("rental-3"),
			req:      dto.UpdateStatusRequest{Status: string(model.StatusCompleted)},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "terminal status allows nothing",
			current: func() model.Rental {
				rental := pendingRental("rental-4")
				rental.Status = model.StatusCompleted

				return rental
			}(),
			req:      dto.UpdateStatusRequest{Status: string(model.StatusCancelled)},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.repo.EXPECT().
				Transition(gomock.Any(), tt.current.ID, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, decide repository.DecideFunc) (model.Rental, error) {
					plan, err := decide(tt.current)
					if err != nil {
						return model.Rental{}, err
					}

					if tt.checkPlan != nil {
						tt.checkPlan(t, plan)
					}

					return tt.current, nil
				})

			if tt.notify {
				m.notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any(), gomock.Any())
			}

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin")
			err := svc.UpdateStatus(ctx, tt.req, tt.current.ID)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRentalService_AssignVehicle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newRentalService(ctrl)

	vehicle := vehicleModel.Vehicle{
		ID:        "3d594650-3436-11d1-b2da-00c04fd430c8",
		Model:     "Clio V",
		Plate:     "AB-123-CD",
		Category:  "B",
		DailyRate: 40,
		IsActive:  true,
	}

	req := dto.AssignVehicleRequest{VehicleID: vehicle.ID}

	t.Run("assigning confirms an unconfirmed booking", func(t *testing.T) {
		current := pendingRental("rental-1")

		m.vehicles.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(vehicle, nil)

		m.repo.EXPECT().
			Transition(gomock.Any(), current.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, decide repository.DecideFunc) (model.Rental, error) {
				m.vehicles.EXPECT().
					IsAvailable(gomock.Any(), vehicle.ID, current.StartDate, current.EndDate, current.ID).
					Return(true, nil)

				m.formulas.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(formulaModel.Formula{ID: current.FormulaID, Price: 150}, nil)

				m.vehicles.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(vehicle, nil)

				plan, err := decide(current)
				if err != nil {
					return model.Rental{}, err
				}

				assert.Equal(t, vehicle.ID, plan.Fields[model.FieldVehicleID])
				assert.Equal(t, model.StatusConfirmed, plan.Fields[model.FieldStatus])
				// 3 inclusive days at 40 on top of the 150 base price.
				assert.Equal(t, 270.0, plan.Fields[model.FieldTotalPrice])
				assert.NotNil(t, plan.History)

				return current, nil
			})

		m.notifier.EXPECT().
			Notify(gomock.Any(), gomock.Any(), gomock.Any())

		err := svc.AssignVehicle(context.Background(), req, current.ID)
		assert.NoError(t, err)
	})

	t.Run("reassigning a confirmed booking records no history", func(t *testing.T) {
		current := pendingRental("rental-2")
		current.Status = model.StatusConfirmed

		m.vehicles.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(vehicle, nil)

		m.repo.EXPECT().
			Transition(gomock.Any(), current.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, decide repository.DecideFunc) (model.Rental, error) {
				m.vehicles.EXPECT().
					IsAvailable(gomock.Any(), vehicle.ID, current.StartDate, current.EndDate, current.ID).
					Return(true, nil)

				m.formulas.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(formulaModel.Formula{ID: current.FormulaID, Price: 150}, nil)

				m.vehicles.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(vehicle, nil)

				plan, err := decide(current)
				if err != nil {
					return model.Rental{}, err
				}

				assert.Nil(t, plan.History)
				assert.NotContains(t, plan.Fields, model.FieldStatus)

				return current, nil
			})

		m.notifier.EXPECT().
			Notify(gomock.Any(), gomock.Any(), gomock.Any())

		err := svc.AssignVehicle(context.Background(), req, current.ID)
		assert.NoError(t, err)
	})

	t.Run("vehicle not found", func(t *testing.T) {
		m.vehicles.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(vehicleModel.Vehicle{}, nil)

		err := svc.AssignVehicle(context.Background(), req, "rental-3")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("inactive vehicle", func(t *testing.T) {
		inactive := vehicle
		inactive.IsActive = false

		m.vehicles.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(inactive, nil)

		err := svc.AssignVehicle(context.Background(), req, "rental-4")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("vehicle not available for the period", func(t *testing.T) {
		current := pendingRental("rental-5")

		m.vehicles.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(vehicle, nil)

		m.repo.EXPECT().
			Transition(gomock.Any(), current.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, decide repository.DecideFunc) (model.Rental, error) {
				m.vehicles.EXPECT().
					IsAvailable(gomock.Any(), vehicle.ID, current.StartDate, current.EndDate, current.ID).
					Return(false, nil)

				_, err := decide(current)

				return model.Rental{}, err
			})

		err := svc.AssignVehicle(context.Background(), req, current.ID)
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestRentalService_OnDocumentsFinalized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newRentalService(ctrl)

	t.Run("moves back to pending once every category is covered", func(t *testing.T) {
		current := pendingRental("rental-1")
		current.Status = model.StatusAwaitingDocuments

		m.repo.EXPECT().
			Transition(gomock.Any(), current.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, decide repository.DecideFunc) (model.Rental, error) {
				m.formulas.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(formulaModel.Formula{
						ID:                current.FormulaID,
						RequiredDocuments: pq.StringArray{"identity", "licence"},
					}, nil)

				m.docs.EXPECT().
					CategoriesByRental(gomock.Any(), current.ID).
					Return([]string{"licence", "identity", "extra"}, nil)

				plan, err := decide(current)
				if err != nil {
					return model.Rental{}, err
				}

				assert.Equal(t, model.StatusPending, plan.Fields[model.FieldStatus])
				assert.NotNil(t, plan.History)
				assert.Equal(t, "All required documents received", plan.History.Description)

				return current, nil
			})

		m.notifier.EXPECT().
			Notify(gomock.Any(), gomock.Any(), gomock.Any())

		err := svc.OnDocumentsFinalized(context.Background(), current.ID)
		assert.NoError(t, err)
	})

	t.Run("stays put while categories are missing", func(t *testing.T) {
		current := pendingRental("rental-2")
		current.Status = model.StatusAwaitingDocuments

		m.repo.EXPECT().
			Transition(gomock.Any(), current.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, decide repository.DecideFunc) (model.Rental, error) {
				m.formulas.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(formulaModel.Formula{
						ID:                current.FormulaID,
						RequiredDocuments: pq.StringArray{"identity", "licence"},
					}, nil)

				m.docs.EXPECT().
					CategoriesByRental(gomock.Any(), current.ID).
					Return([]string{"identity"}, nil)

				plan, err := decide(current)
				if err != nil {
					return model.Rental{}, err
				}

				assert.Empty(t, plan.Fields)
				assert.Nil(t, plan.History)

				return current, nil
			})

		err := svc.OnDocumentsFinalized(context.Background(), current.ID)
		assert.NoError(t, err)
	})

	t.Run("ignores rentals not awaiting documents", func(t *testing.T) {
		current := pendingRental("rental-3")

		m.repo.EXPECT().
			Transition(gomock.Any(), current.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, decide repository.DecideFunc) (model.Rental, error) {
				plan, err := decide(current)
				if err != nil {
					return model.Rental{}, err
				}

				assert.Empty(t, plan.Fields)

				return current, nil
			})

		err := svc.OnDocumentsFinalized(context.Background(), current.ID)
		assert.NoError(t, err)
	})
}
