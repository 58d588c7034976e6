package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"autoecole/infras/otel"
	"autoecole/infras/postgres"
	"autoecole/internal/domains/vehicle/model"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/logger"
	gRepo "autoecole/shared/repository"
	"time"
)

type Vehicle interface {
	Insert(ctx context.Context, model model.Vehicle) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Vehicle, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Vehicle, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	IsAvailable(ctx context.Context, vehicleID string, startDate, endDate time.Time, excludeRentalID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Vehicle]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Vehicle {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Vehicle](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// IsAvailable reports whether the vehicle has no overlapping active rental
// within the given window. Cancelled and completed rentals never block.
// excludeRentalID skips the rental being edited so it cannot conflict with
// itself.
func (repo *repositoryImpl) IsAvailable(ctx context.Context, vehicleID string, startDate, endDate time.Time, excludeRentalID string) (available bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".vehicle.IsAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT NOT EXISTS(
		SELECT 1 FROM vehicle_rentals
		WHERE vehicle_id = $1
		AND status NOT IN ('cancelled', 'completed')
		AND start_date <= $3
		AND end_date >= $2
		AND id::text != $4
	)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &available, query, vehicleID, startDate, endDate, excludeRentalID)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check vehicle availability: %w", err)
	}

	return available, nil
}
