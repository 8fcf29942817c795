package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/internal/domains/channelsync/model"
	gDto "staysync/shared/dto"
	gRepo "staysync/shared/repository"
)

type SyncRun interface {
	Insert(ctx context.Context, model model.SyncRun) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SyncRun, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.SyncRun]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) SyncRun {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.SyncRun](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
