package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/internal/domains/availability/model"
	"staysync/shared"
	"staysync/shared/constant"
	"staysync/shared/daterange"
	gDto "staysync/shared/dto"
	"staysync/shared/failure"
	gRepo "staysync/shared/repository"
	"staysync/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Block interface {
	ListByListing(ctx context.Context, listingID string) ([]model.Block, error)
	ListBySource(ctx context.Context, listingID, source string) ([]model.Block, error)
	ListOverlapping(ctx context.Context, listingID string, window daterange.Range) ([]model.Block, error)
	GetInternal(ctx context.Context, bookingID string) (model.Block, error)
	// ReplaceSource swaps every block of source on the listing for blocks in one transaction.
	ReplaceSource(ctx context.Context, listingID, source string, blocks []model.Block) error
	Upsert(ctx context.Context, block model.Block) error
	DeleteBySourceReference(ctx context.Context, source, reference string) error
	// SetAuthoritative flips the flag of the listed blocks only; every other row is left untouched.
	SetAuthoritative(ctx context.Context, listingID string, promote, demote []string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Block]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Block {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Block](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func orderByStart() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.TableName + "." + model.FieldDateRangeStart, SortDir: gDto.SortDirAsc}
}

func (r *repositoryImpl) ListByListing(ctx context.Context, listingID string) ([]model.Block, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.ListByListing")
	defer scope.End()

	blocks, err := r.GetAll(ctx, orderByStart(), shared.FilterByFields(model.TableName, map[string]any{
		model.FieldListingID: listingID,
	}))
	if err != nil {
		return nil, failure.Persistence(err)
	}

	return blocks, nil
}

func (r *repositoryImpl) ListBySource(ctx context.Context, listingID, source string) ([]model.Block, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.ListBySource")
	defer scope.End()

	blocks, err := r.GetAll(ctx, orderByStart(), shared.FilterByFields(model.TableName, map[string]any{
		model.FieldListingID: listingID,
		model.FieldSource:    source,
	}))
	if err != nil {
		return nil, failure.Persistence(err)
	}

	return blocks, nil
}

func (r *repositoryImpl) ListOverlapping(ctx context.Context, listingID string, window daterange.Range) ([]model.Block, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.ListOverlapping")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldListingID, Value: listingID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Overlapping(model.TableName, model.FieldDateRangeStart, model.FieldDateRangeEnd, window.Start, window.End),
		},
	}

	blocks, err := r.GetAll(ctx, orderByStart(), filter)
	if err != nil {
		return nil, failure.Persistence(err)
	}

	return blocks, nil
}

func (r *repositoryImpl) GetInternal(ctx context.Context, bookingID string) (model.Block, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.GetInternal")
	defer scope.End()

	block, err := r.Get(ctx, shared.FilterByFields(model.TableName, map[string]any{
		model.FieldSource:          model.SourceInternal,
		model.FieldSourceReference: bookingID,
	}))
	if err != nil {
		return block, failure.Persistence(err)
	}

	return block, nil
}

func (r *repositoryImpl) ReplaceSource(ctx context.Context, listingID, source string, blocks []model.Block) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.ReplaceSource")
	defer scope.End()

	filter := shared.FilterByFields(model.TableName, map[string]any{
		model.FieldListingID: listingID,
		model.FieldSource:    source,
	})

	err := r.Transaction(ctx, func(sqltx *sqlx.Tx) error {
		if err := r.DeleteTx(ctx, sqltx, filter); err != nil {
			return err //nolint:wrapcheck
		}

		return r.InsertBulkTx(ctx, sqltx, blocks) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("listing_id", listingID).Str("source", source).Msg("failed to replace blocks")

		return failure.Persistence(fmt.Errorf("failed to replace blocks: %w", err))
	}

	return nil
}

func (r *repositoryImpl) Upsert(ctx context.Context, block model.Block) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.Upsert")
	defer scope.End()

	filter := shared.FilterByFields(model.TableName, map[string]any{
		model.FieldSource:          block.Source,
		model.FieldSourceReference: block.SourceReference,
	})

	err := r.Transaction(ctx, func(sqltx *sqlx.Tx) error {
		if err := r.DeleteTx(ctx, sqltx, filter); err != nil {
			return err //nolint:wrapcheck
		}

		return r.InsertTx(ctx, sqltx, block) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("block_id", block.ID).Msg("failed to upsert block")

		return failure.Persistence(fmt.Errorf("failed to upsert block: %w", err))
	}

	return nil
}

func (r *repositoryImpl) DeleteBySourceReference(ctx context.Context, source, reference string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.DeleteBySourceReference")
	defer scope.End()

	err := r.Delete(ctx, shared.FilterByFields(model.TableName, map[string]any{
		model.FieldSource:          source,
		model.FieldSourceReference: reference,
	}))
	if err != nil {
		return failure.Persistence(err)
	}

	return nil
}

func (r *repositoryImpl) SetAuthoritative(ctx context.Context, listingID string, promote, demote []string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.SetAuthoritative")
	defer scope.End()

	now := timezone.Now()

	err := r.Transaction(ctx, func(sqltx *sqlx.Tx) error {
		for flag, ids := range map[bool][]string{true: promote, false: demote} {
			if len(ids) == 0 {
				continue
			}

			blocks := gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{Field: model.FieldListingID, Value: listingID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
					gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
				},
			}

			err := r.UpdateTx(ctx, sqltx, map[string]any{
				model.FieldAuthoritative: flag,
				constant.FieldModifiedAt: now,
			}, blocks)
			if err != nil {
				return err //nolint:wrapcheck
			}
		}

		return nil
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to persist authoritative flags")

		return failure.Persistence(fmt.Errorf("failed to persist authoritative flags: %w", err))
	}

	return nil
}
