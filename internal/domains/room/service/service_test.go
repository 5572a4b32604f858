package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"huddle/config"
	otelMocks "huddle/infras/otel/mocks"
	"huddle/internal/domains/room/model"
	"huddle/internal/domains/room/model/dto"
	repositoryMocks "huddle/internal/domains/room/repository/mocks"
	"huddle/internal/domains/room/service"
	cacheMocks "huddle/shared/cache/mocks"
	sharedDto "huddle/shared/dto"
	"huddle/shared/failure"
	sharedModel "huddle/shared/model"
)

var errCacheMiss = errors.New("cache miss")

func TestRoomList(t *testing.T) {
	ctx := context.Background()

	rooms := []model.Room{
		{ID: 5, Name: "cherry blossom"},
		{ID: 1, Name: "donee"},
	}

	t.Run("cache miss hits the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repositoryMocks.NewMockRoom(ctrl)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil)
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		svc := service.New(repo, redisCache, &config.Config{}, otelMocks.NewOtel())

		resp, err := svc.List(ctx, sharedDto.QueryParams{Limit: 10})
		require.NoError(t, err)
		require.Equal(t, 2, resp.TotalData)
		require.Len(t, resp.Rooms, 2)
		require.Equal(t, "cherry blossom", resp.Rooms[0].Name)

		// the save happens off the request path
		time.Sleep(50 * time.Millisecond)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repositoryMocks.NewMockRoom(ctrl)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, value any) error {
				resp, ok := value.(*dto.RoomsResponse)
				require.True(t, ok)

				resp.Rooms = []dto.RoomResponse{{ID: 1, Name: "donee"}}
				resp.TotalData = 1

				return nil
			})

		svc := service.New(repo, redisCache, &config.Config{}, otelMocks.NewOtel())

		resp, err := svc.List(ctx, sharedDto.QueryParams{Limit: 10})
		require.NoError(t, err)
		require.Equal(t, 1, resp.TotalData)
		require.Equal(t, "donee", resp.Rooms[0].Name)
	})
}

func TestRoomCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a room and invalidates the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repositoryMocks.NewMockRoom(ctrl)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		now := time.Now().UTC()

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(model.Room{
			ID:       7,
			Name:     "peony",
			Metadata: sharedModel.Metadata{CreatedAt: now, ModifiedAt: now},
		}, nil)
		redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		svc := service.New(repo, redisCache, &config.Config{}, otelMocks.NewOtel())

		resp, err := svc.Create(ctx, dto.CreateRoomRequest{Name: "peony"})
		require.NoError(t, err)
		require.Equal(t, int64(7), resp.ID)
		require.Equal(t, "peony", resp.Name)

		time.Sleep(50 * time.Millisecond)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repositoryMocks.NewMockRoom(ctrl)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		svc := service.New(repo, cacheMocks.NewMockRedisCache(ctrl), &config.Config{}, otelMocks.NewOtel())

		_, err := svc.Create(ctx, dto.CreateRoomRequest{Name: "peony"})
		require.Error(t, err)
		require.True(t, failure.Is(err, http.StatusConflict))
	})
}

func TestRoomGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repositoryMocks.NewMockRoom(ctrl)

		repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(model.Room{ID: 1, Name: "donee"}, nil)

		svc := service.New(repo, cacheMocks.NewMockRedisCache(ctrl), &config.Config{}, otelMocks.NewOtel())

		resp, err := svc.GetByID(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, "donee", resp.Name)
	})

	t.Run("zero row means not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repositoryMocks.NewMockRoom(ctrl)

		repo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(model.Room{}, nil)

		svc := service.New(repo, cacheMocks.NewMockRedisCache(ctrl), &config.Config{}, otelMocks.NewOtel())

		_, err := svc.GetByID(ctx, 42)
		require.Error(t, err)
		require.True(t, failure.Is(err, http.StatusNotFound))
	})
}
