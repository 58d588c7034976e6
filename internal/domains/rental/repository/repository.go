package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"autoecole/infras/otel"
	"autoecole/infras/postgres"
	"autoecole/internal/domains/rental/model"
	"autoecole/shared"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/failure"
	"autoecole/shared/logger"
	gRepo "autoecole/shared/repository"

	"github.com/rs/zerolog/log"
)

// TransitionPlan is what a transition decision wants applied atomically:
// column updates on the locked rental row plus at most one history entry.
type TransitionPlan struct {
	Fields  map[string]any
	History *model.StatusHistory
}

// DecideFunc inspects the locked rental and returns the plan, or an error to
// abort the transaction. It runs inside the transaction, so it must not
// block on anything slow.
type DecideFunc func(current model.Rental) (TransitionPlan, error)

type Rental interface {
	Create(ctx context.Context, rental model.Rental, entry model.StatusHistory) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Rental, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Rental, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Transition(ctx context.Context, id string, decide DecideFunc) (model.Rental, error)
	GetHistory(ctx context.Context, rentalID string) ([]model.StatusHistory, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Rental]
	history gRepo.Repository[model.StatusHistory]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Rental {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Rental](model.EntityName, model.TableName, model.FieldID, db, otel),
		history:    gRepo.NewRepository[model.StatusHistory](model.HistoryEntityName, model.HistoryTableName, model.HistoryFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Create inserts the rental and its initial history entry in one transaction.
func (repo *repositoryImpl) Create(ctx context.Context, rental model.Rental, entry model.StatusHistory) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".rental.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := sqltx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback rental create")
			}
		}
	}()

	if err = repo.InsertTx(ctx, sqltx, rental); err != nil {
		return fmt.Errorf("failed to insert rental: %w", err)
	}

	if err = repo.history.InsertTx(ctx, sqltx, entry); err != nil {
		return fmt.Errorf("failed to insert rental history: %w", err)
	}

	if err = sqltx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit rental create: %w", err)
	}

	return nil
}

// Transition locks the rental row, lets decide build a plan against the
// current state, applies the plan, and commits. The returned rental is the
// pre-transition state the decision saw.
func (repo *repositoryImpl) Transition(ctx context.Context, id string, decide DecideFunc) (current model.Rental, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".rental.Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return current, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := sqltx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback rental transition")
			}
		}
	}()

	current, err = repo.GetForUpdateTx(ctx, sqltx, filter)
	if err != nil {
		return current, fmt.Errorf("failed to lock rental: %w", err)
	}

	if current.ID == constant.Empty {
		err = failure.NotFound("rental not found")

		return current, err // nolint:wrapcheck
	}

	plan, err := decide(current)
	if err != nil {
		return current, err // nolint:wrapcheck
	}

	if len(plan.Fields) > 0 {
		if err = repo.UpdateTx(ctx, sqltx, plan.Fields, filter); err != nil {
			return current, fmt.Errorf("failed to update rental: %w", err)
		}
	}

	if plan.History != nil {
		if err = repo.history.InsertTx(ctx, sqltx, *plan.History); err != nil {
			return current, fmt.Errorf("failed to insert rental history: %w", err)
		}
	}

	if err = sqltx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return current, fmt.Errorf("failed to commit rental transition: %w", err)
	}

	return current, nil
}

// GetHistory returns the full audit trail oldest first.
func (repo *repositoryImpl) GetHistory(ctx context.Context, rentalID string) (entries []model.StatusHistory, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".rental.GetHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		SortBy:  model.HistoryFieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	entries, err = repo.history.GetAll(ctx, params, shared.FilterByID(rentalID, model.HistoryFieldRentalID, model.HistoryTableName))
	if err != nil {
		return entries, fmt.Errorf("failed to get rental history: %w", err)
	}

	return entries, nil
}
