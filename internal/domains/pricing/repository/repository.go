package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/internal/domains/pricing/model"
	"staysync/shared/constant"
	"staysync/shared/daterange"
	gDto "staysync/shared/dto"
	"staysync/shared/failure"
	gRepo "staysync/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type RateOverride interface {
	List(ctx context.Context, listingID string, window daterange.Range) ([]model.RateOverride, error)
	// ReplaceRange drops the listing's overrides inside window and stores rates instead.
	ReplaceRange(ctx context.Context, listingID string, window daterange.Range, rates []model.RateOverride) error
}

type repositoryImpl struct {
	gRepo.Repository[model.RateOverride]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) RateOverride {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RateOverride](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func inWindow(listingID string, window daterange.Range) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldListingID, Value: listingID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Within(model.TableName, model.FieldNight, window.Start, window.End),
		},
	}
}

func (r *repositoryImpl) List(ctx context.Context, listingID string, window daterange.Range) ([]model.RateOverride, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".pricing.List")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldNight, SortDir: gDto.SortDirAsc}

	rates, err := r.GetAll(ctx, params, inWindow(listingID, window))
	if err != nil {
		return nil, failure.Persistence(err)
	}

	return rates, nil
}

func (r *repositoryImpl) ReplaceRange(ctx context.Context, listingID string, window daterange.Range, rates []model.RateOverride) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".pricing.ReplaceRange")
	defer scope.End()

	err := r.Transaction(ctx, func(sqltx *sqlx.Tx) error {
		if err := r.DeleteTx(ctx, sqltx, inWindow(listingID, window)); err != nil {
			return err //nolint:wrapcheck
		}

		return r.InsertBulkTx(ctx, sqltx, rates) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("listing_id", listingID).Str("window", window.String()).Msg("failed to replace rate overrides")

		return failure.Persistence(fmt.Errorf("failed to replace rate overrides: %w", err))
	}

	return nil
}
