package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "huddle/infras/otel/mocks"
	"huddle/internal/domains/availability/model/dto"
	"huddle/internal/domains/availability/service"
	bookingModel "huddle/internal/domains/booking/model"
	bookingMocks "huddle/internal/domains/booking/repository/mocks"
	roomModel "huddle/internal/domains/room/model"
	roomMocks "huddle/internal/domains/room/repository/mocks"
	"huddle/shared/failure"
)

func TestFindAvailable(t *testing.T) {
	ctx := context.Background()

	rooms := []roomModel.Room{
		{ID: 5, Name: "cherry blossom"},
		{ID: 1, Name: "donee"},
		{ID: 3, Name: "lilac"},
	}

	t.Run("excludes rooms with overlapping bookings, keeps name order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bookingRepo := bookingMocks.NewMockBooking(ctrl)
		roomRepo := roomMocks.NewMockRoom(ctrl)

		roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil)
		bookingRepo.EXPECT().FindBookedRoomIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return([]int64{1}, nil)

		svc := service.New(bookingRepo, roomRepo, otelMocks.NewOtel())

		resp, err := svc.FindAvailable(ctx, dto.FindAvailableRequest{
			Date:      "2026-09-01",
			StartTime: "09:00",
			EndTime:   "10:00",
		})

		require.NoError(t, err)
		require.Equal(t, 2, resp.TotalAvailable)
		require.Equal(t, "cherry blossom", resp.AvailableRooms[0].Name)
		require.Equal(t, "lilac", resp.AvailableRooms[1].Name)
		require.Equal(t, "2026-09-01 09:00-10:00", resp.RequestedTime)
	})

	t.Run("fully booked window yields an empty list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bookingRepo := bookingMocks.NewMockBooking(ctrl)
		roomRepo := roomMocks.NewMockRoom(ctrl)

		roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil)
		bookingRepo.EXPECT().FindBookedRoomIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return([]int64{1, 3, 5}, nil)

		svc := service.New(bookingRepo, roomRepo, otelMocks.NewOtel())

		resp, err := svc.FindAvailable(ctx, dto.FindAvailableRequest{
			Date:      "2026-09-01",
			StartTime: "09:00",
			EndTime:   "10:00",
		})

		require.NoError(t, err)
		require.NotNil(t, resp.AvailableRooms)
		require.Zero(t, resp.TotalAvailable)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.New(bookingMocks.NewMockBooking(ctrl), roomMocks.NewMockRoom(ctrl), otelMocks.NewOtel())

		_, err := svc.FindAvailable(ctx, dto.FindAvailableRequest{
			Date:      "2026-09-01",
			StartTime: "10:00",
			EndTime:   "09:00",
		})

		require.Error(t, err)
		require.True(t, failure.Is(err, http.StatusBadRequest))
	})
}

func TestIsAvailable(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("free room is available", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bookingRepo := bookingMocks.NewMockBooking(ctrl)
		roomRepo := roomMocks.NewMockRoom(ctrl)

		roomRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(roomModel.Room{ID: 1, Name: "donee"}, nil)
		bookingRepo.EXPECT().FindConfirmedOverlapping(gomock.Any(), int64(1), start, end).Return(nil, nil)

		svc := service.New(bookingRepo, roomRepo, otelMocks.NewOtel())

		available, err := svc.IsAvailable(ctx, 1, start, end)
		require.NoError(t, err)
		require.True(t, available)
	})

	t.Run("overlapping booking makes it unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bookingRepo := bookingMocks.NewMockBooking(ctrl)
		roomRepo := roomMocks.NewMockRoom(ctrl)

		roomRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(roomModel.Room{ID: 1, Name: "donee"}, nil)
		bookingRepo.EXPECT().FindConfirmedOverlapping(gomock.Any(), int64(1), start, end).
			Return([]bookingModel.Booking{{ID: 7, RoomID: 1, StartTime: start, EndTime: end}}, nil)

		svc := service.New(bookingRepo, roomRepo, otelMocks.NewOtel())

		available, err := svc.IsAvailable(ctx, 1, start, end)
		require.NoError(t, err)
		require.False(t, available)
	})

	t.Run("unknown room is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		roomRepo := roomMocks.NewMockRoom(ctrl)

		roomRepo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(roomModel.Room{}, nil)

		svc := service.New(bookingMocks.NewMockBooking(ctrl), roomRepo, otelMocks.NewOtel())

		_, err := svc.IsAvailable(ctx, 42, start, end)
		require.Error(t, err)
		require.True(t, failure.Is(err, http.StatusNotFound))
	})
}
