package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"huddle/infras/otel"
	"huddle/infras/postgres"
	"huddle/internal/domains/room/model"
	"huddle/shared"
	"huddle/shared/constant"
	"huddle/shared/dto"
	"huddle/shared/failure"
	"huddle/shared/logger"
	"huddle/shared/repository"
)

var roomQueries = struct {
	insert string
}{
	insert: `INSERT INTO rooms (name, created_at, modified_at)
		VALUES (:name, :created_at, :modified_at) RETURNING id`,
}

type Room interface {
	Create(ctx context.Context, room model.Room) (model.Room, error)
	GetByID(ctx context.Context, id int64) (model.Room, error)
	GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]model.Room, error)
	Count(ctx context.Context, filter dto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter dto.FilterGroup) (bool, error)
}

type roomImpl struct {
	repository.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otl otel.Otel) Room {
	return &roomImpl{
		Repository: repository.NewRepository[model.Room](model.EntityName, model.TableName, model.PrimaryColumn, db, otl),
		db:         db,
		otel:       otl,
	}
}

func (repo *roomImpl) Create(ctx context.Context, room model.Room) (model.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Create")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, roomQueries.insert)

	prepare, err := repo.db.Write.PrepareNamedContext(ctx, roomQueries.insert)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return room, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &room.ID, room)
	if err != nil {
		if repository.PqErrorCode(err) == constant.PqErrorCodeUniqueViolation {
			return room, failure.Conflict(fmt.Sprintf("room %q already exists", room.Name))
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return room, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return room, nil
}

func (repo *roomImpl) GetByID(ctx context.Context, id int64) (model.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetByID")
	defer scope.End()

	return repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}
