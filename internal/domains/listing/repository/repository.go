package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/internal/domains/listing/model"
	"staysync/shared"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	"staysync/shared/failure"
	gRepo "staysync/shared/repository"
	"time"
)

type Listing interface {
	Get(ctx context.Context, id string) (model.Listing, error)
	ListChannels(ctx context.Context, listingID string) ([]model.ChannelSync, error)
	// ListActiveChannels returns every active channel with an import URL, across listings.
	ListActiveChannels(ctx context.Context) ([]model.ChannelSync, error)
	GetChannel(ctx context.Context, listingID, channelID string) (model.ChannelSync, error)
	GetChannelByToken(ctx context.Context, listingID, token string) (model.ChannelSync, error)
	UpdateSyncStatus(ctx context.Context, listingID, channelID string, status model.SyncStatus, syncErr string, at time.Time) error
}

type repositoryImpl struct {
	listings gRepo.Repository[model.Listing]
	channels gRepo.Repository[model.ChannelSync]
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Listing {
	return &repositoryImpl{
		listings: gRepo.NewRepository[model.Listing](model.EntityName, model.TableName, model.FieldID, db, otel),
		channels: gRepo.NewRepository[model.ChannelSync](model.ChannelEntityName, model.ChannelTableName, model.FieldID, db, otel),
		otel:     otel,
	}
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.Listing, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".listing.Get")
	defer scope.End()

	listing, err := r.listings.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return listing, failure.Persistence(err)
	}

	return listing, nil
}

func (r *repositoryImpl) ListChannels(ctx context.Context, listingID string) ([]model.ChannelSync, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".listing.ListChannels")
	defer scope.End()

	channels, err := r.channels.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldChannelID, SortDir: gDto.SortDirAsc},
		shared.FilterByFields(model.ChannelTableName, map[string]any{model.FieldListingID: listingID}))
	if err != nil {
		return nil, failure.Persistence(err)
	}

	return channels, nil
}

func (r *repositoryImpl) ListActiveChannels(ctx context.Context) ([]model.ChannelSync, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".listing.ListActiveChannels")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.ChannelTableName},
			gDto.Filter{Field: model.FieldImportURL, Value: constant.Empty, Operator: gDto.FilterOperatorNotEq, Table: model.ChannelTableName},
		},
	}

	channels, err := r.channels.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldListingID, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		return nil, failure.Persistence(err)
	}

	return channels, nil
}

func (r *repositoryImpl) GetChannel(ctx context.Context, listingID, channelID string) (model.ChannelSync, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".listing.GetChannel")
	defer scope.End()

	channel, err := r.channels.Get(ctx, shared.FilterByFields(model.ChannelTableName, map[string]any{
		model.FieldListingID: listingID,
		model.FieldChannelID: channelID,
	}))
	if err != nil {
		return channel, failure.Persistence(err)
	}

	return channel, nil
}

func (r *repositoryImpl) GetChannelByToken(ctx context.Context, listingID, token string) (model.ChannelSync, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".listing.GetChannelByToken")
	defer scope.End()

	channel, err := r.channels.Get(ctx, shared.FilterByFields(model.ChannelTableName, map[string]any{
		model.FieldListingID:   listingID,
		model.FieldExportToken: token,
	}))
	if err != nil {
		return channel, failure.Persistence(err)
	}

	return channel, nil
}

func (r *repositoryImpl) UpdateSyncStatus(ctx context.Context, listingID, channelID string, status model.SyncStatus, syncErr string, at time.Time) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".listing.UpdateSyncStatus")
	defer scope.End()

	err := r.channels.Update(ctx, map[string]any{
		model.FieldLastSyncedAt:   at,
		model.FieldLastSyncStatus: status,
		model.FieldLastSyncError:  syncErr,
		constant.FieldModifiedAt:  at,
		constant.FieldModifiedBy:  constant.SystemActor,
	}, shared.FilterByFields(model.ChannelTableName, map[string]any{
		model.FieldListingID: listingID,
		model.FieldChannelID: channelID,
	}))
	if err != nil {
		return failure.Persistence(err)
	}

	return nil
}
