package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/internal/domains/booking/model"
	"staysync/shared/constant"
	gDto "staysync/shared/dto"
	gRepo "staysync/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	// Transition writes fields only while the booking still has status from. It reports
	// false when another writer moved the booking first.
	Transition(ctx context.Context, id string, from model.Status, fields map[string]any) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) Transition(ctx context.Context, id string, from model.Status, fields map[string]any) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Transition")
	defer scope.End()

	// the new status is also a named arg, so the guard binds under its own name
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: string(from), Operator: gDto.FilterOperatorEq, Table: model.TableName, ArgName: "from_status"},
		},
	}

	affected, err := r.UpdateAffected(ctx, fields, filter)
	if err != nil {
		return false, fmt.Errorf("failed to transition booking: %w", err)
	}

	scope.SetAttribute("db.rows_affected", affected)

	return affected == 1, nil
}
