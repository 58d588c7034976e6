package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"autoecole/infras/otel"
	"autoecole/infras/postgres"
	"autoecole/internal/domains/formula/model"
	gDto "autoecole/shared/dto"
	gRepo "autoecole/shared/repository"
)

type Formula interface {
	Insert(ctx context.Context, model model.Formula) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Formula, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Formula, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Formula]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Formula {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Formula](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
