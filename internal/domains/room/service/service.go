package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"huddle/config"
	"huddle/infras/otel"
	"huddle/internal/domains/room/model"
	"huddle/internal/domains/room/model/dto"
	"huddle/internal/domains/room/repository"
	"huddle/shared"
	"huddle/shared/cache"
	"huddle/shared/constant"
	sharedDto "huddle/shared/dto"
	"huddle/shared/failure"
)

const cacheKeyPrefix = "rooms"

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetByID(ctx context.Context, id int64) (dto.RoomResponse, error)
	List(ctx context.Context, params sharedDto.QueryParams) (dto.RoomsResponse, error)
}

type roomImpl struct {
	repo   repository.Room
	cache  cache.RedisCache
	config *config.Config
	otel   otel.Otel
}

func New(repo repository.Room, redisCache cache.RedisCache, conf *config.Config, otl otel.Otel) Room {
	return &roomImpl{
		repo:   repo,
		cache:  redisCache,
		config: conf,
		otel:   otl,
	}
}

func (s *roomImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()

	var resp dto.RoomResponse

	exist, err := s.repo.Exist(ctx, filterByName(req.Name))
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	if exist {
		err = failure.Conflict(fmt.Sprintf("room %q already exists", req.Name))
		scope.TraceError(err)

		return resp, err
	}

	room, err := s.repo.Create(ctx, req.ToModel())
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheKeyPrefix)

	resp.FromModel(room)

	return resp, nil
}

func (s *roomImpl) GetByID(ctx context.Context, id int64) (dto.RoomResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetByID")
	defer scope.End()

	var resp dto.RoomResponse

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	if room.ID == 0 {
		return resp, failure.NotFound(model.EntityName)
	}

	resp.FromModel(room)

	return resp, nil
}

func (s *roomImpl) List(ctx context.Context, params sharedDto.QueryParams) (dto.RoomsResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.List")
	defer scope.End()

	// Rooms come back in name order so listings read naturally.
	if params.SortBy == "" || params.SortBy == constant.DefaultValueSortBy {
		params.SortBy = model.FieldName
		params.SortDir = sharedDto.SortDirAsc
	}

	var resp dto.RoomsResponse

	filter := sharedDto.FilterGroup{}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheKeyPrefix, params, filter)

	if err := s.cache.Get(ctx, cacheKey, &resp); err == nil {
		return resp, nil
	}

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	resp.FromModels(rooms, count, shared.CalculateTotalPage(count, params.Limit))

	go func(ctx context.Context) {
		if err := s.cache.Save(ctx, cacheKey, resp, s.config.Cache.TTL); err != nil {
			log.Error().Err(err).Str("key", cacheKey).Msg("failed to save rooms cache")
		}
	}(context.WithoutCancel(ctx))

	return resp, nil
}

func filterByName(name string) sharedDto.FilterGroup {
	return sharedDto.FilterGroup{
		Filters: []any{
			sharedDto.Filter{
				Field:    model.FieldName,
				Value:    name,
				Operator: sharedDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
