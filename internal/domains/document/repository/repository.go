package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"autoecole/infras/otel"
	"autoecole/infras/postgres"
	"autoecole/internal/domains/document/model"
	"autoecole/shared"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/logger"
	gRepo "autoecole/shared/repository"
)

type Document interface {
	Insert(ctx context.Context, model model.Document) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Document, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Document, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	InsertStaged(ctx context.Context, staged model.StagedDocument) error
	GetStaged(ctx context.Context, tempID string) (model.StagedDocument, error)
	DeleteStaged(ctx context.Context, tempID string) error
	GetStagedBefore(ctx context.Context, cutoff time.Time) ([]model.StagedDocument, error)
	CategoriesByRental(ctx context.Context, rentalID string) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Document]
	staged gRepo.Repository[model.StagedDocument]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Document {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Document](model.EntityName, model.TableName, model.FieldID, db, otel),
		staged:     gRepo.NewRepository[model.StagedDocument](model.StagedEntityName, model.StagedTableName, model.StagedFieldTempID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) InsertStaged(ctx context.Context, staged model.StagedDocument) error {
	return repo.staged.Insert(ctx, staged) // nolint:wrapcheck
}

func (repo *repositoryImpl) GetStaged(ctx context.Context, tempID string) (model.StagedDocument, error) {
	return repo.staged.Get(ctx, shared.FilterByID(tempID, model.StagedFieldTempID, model.StagedTableName)) // nolint:wrapcheck
}

func (repo *repositoryImpl) DeleteStaged(ctx context.Context, tempID string) error {
	return repo.staged.Delete(ctx, shared.FilterByID(tempID, model.StagedFieldTempID, model.StagedTableName)) // nolint:wrapcheck
}

// GetStagedBefore lists staged rows uploaded at or before the cutoff, oldest
// first. The sweeper uses it to reclaim abandoned uploads.
func (repo *repositoryImpl) GetStagedBefore(ctx context.Context, cutoff time.Time) (staged []model.StagedDocument, err error) {
	params := gDto.QueryParams{
		SortBy:  model.StagedFieldUploadedAt,
		SortDir: gDto.SortDirAsc,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.StagedFieldUploadedAt,
				Value:    cutoff,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.StagedTableName,
			},
		},
	}

	staged, err = repo.staged.GetAll(ctx, params, filter)
	if err != nil {
		return staged, fmt.Errorf("failed to get expired staged documents: %w", err)
	}

	return staged, nil
}

// CategoriesByRental returns the distinct categories of the documents
// finalized against a rental. The rental gating check compares this set with
// the formula's required categories.
func (repo *repositoryImpl) CategoriesByRental(ctx context.Context, rentalID string) (categories []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".document.CategoriesByRental")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT DISTINCT category FROM documents WHERE rental_id = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &categories, query, rentalID)
	if err != nil {
		logger.ErrorWithStack(err)

		return categories, fmt.Errorf("failed to get document categories: %w", err)
	}

	return categories, nil
}
