package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "huddle/infras/otel/mocks"
	availabilityDto "huddle/internal/domains/availability/model/dto"
	availabilityMocks "huddle/internal/domains/availability/service/mocks"
	bookingDto "huddle/internal/domains/booking/model/dto"
	bookingMocks "huddle/internal/domains/booking/service/mocks"
	roomDto "huddle/internal/domains/room/model/dto"
	roomMocks "huddle/internal/domains/room/service/mocks"
	"huddle/internal/gateway"
	"huddle/shared/failure"
)

type dispatcherMocks struct {
	availability *availabilityMocks.MockAvailability
	booking      *bookingMocks.MockBooking
	room         *roomMocks.MockRoom
}

func newDispatcher(t *testing.T) (*gateway.Dispatcher, dispatcherMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := dispatcherMocks{
		availability: availabilityMocks.NewMockAvailability(ctrl),
		booking:      bookingMocks.NewMockBooking(ctrl),
		room:         roomMocks.NewMockRoom(ctrl),
	}

	dispatcher := gateway.NewDispatcher(mocks.availability, mocks.booking, mocks.room, otelMocks.NewOtel())

	return dispatcher, mocks
}

func TestParseOp(t *testing.T) {
	for _, name := range []string{"initialize", "list_rooms", "find_available", "book", "list_bookings", "cancel", "close"} {
		op, err := gateway.ParseOp(name)
		require.NoError(t, err)
		require.Equal(t, name, string(op))
	}

	_, err := gateway.ParseOp("reboot")
	require.Error(t, err)
	require.True(t, failure.Is(err, http.StatusBadRequest))
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("list_rooms", func(t *testing.T) {
		dispatcher, mocks := newDispatcher(t)

		mocks.room.EXPECT().List(gomock.Any(), gomock.Any()).Return(roomDto.RoomsResponse{TotalData: 6}, nil)

		result, err := dispatcher.Dispatch(ctx, gateway.OpListRooms, nil)
		require.NoError(t, err)

		resp, ok := result.(roomDto.RoomsResponse)
		require.True(t, ok)
		require.Equal(t, 6, resp.TotalData)
	})

	t.Run("find_available decodes args", func(t *testing.T) {
		dispatcher, mocks := newDispatcher(t)

		expected := availabilityDto.FindAvailableRequest{Date: "2026-09-01", StartTime: "09:00", EndTime: "10:00"}
		mocks.availability.EXPECT().FindAvailable(gomock.Any(), expected).
			Return(availabilityDto.FindAvailableResponse{TotalAvailable: 2}, nil)

		args := json.RawMessage(`{"date":"2026-09-01","start_time":"09:00","end_time":"10:00"}`)

		result, err := dispatcher.Dispatch(ctx, gateway.OpFindAvailable, args)
		require.NoError(t, err)

		resp, ok := result.(availabilityDto.FindAvailableResponse)
		require.True(t, ok)
		require.Equal(t, 2, resp.TotalAvailable)
	})

	t.Run("book passes through the service outcome", func(t *testing.T) {
		dispatcher, mocks := newDispatcher(t)

		mocks.booking.EXPECT().Book(gomock.Any(), gomock.Any()).
			Return(bookingDto.BookResponse{Success: true, BookingID: 3}, nil)

		args := json.RawMessage(`{"room_id":1,"date":"2026-09-01","start_time":"09:00","end_time":"10:00","owner_name":"Iris"}`)

		result, err := dispatcher.Dispatch(ctx, gateway.OpBook, args)
		require.NoError(t, err)

		resp, ok := result.(bookingDto.BookResponse)
		require.True(t, ok)
		require.True(t, resp.Success)
	})

	t.Run("malformed args fail validation before the service", func(t *testing.T) {
		dispatcher, _ := newDispatcher(t)

		args := json.RawMessage(`{"room_id":1,"date":"tomorrow"}`)

		_, err := dispatcher.Dispatch(ctx, gateway.OpBook, args)
		require.Error(t, err)
		require.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("cancel requires a positive booking id", func(t *testing.T) {
		dispatcher, _ := newDispatcher(t)

		_, err := dispatcher.Dispatch(ctx, gateway.OpCancel, json.RawMessage(`{"booking_id":0}`))
		require.Error(t, err)
		require.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("lifecycle ops are not dispatchable", func(t *testing.T) {
		dispatcher, _ := newDispatcher(t)

		_, err := dispatcher.Dispatch(ctx, gateway.OpInitialize, nil)
		require.Error(t, err)
		require.True(t, failure.Is(err, http.StatusBadRequest))
	})
}

func TestEnvelopes(t *testing.T) {
	t.Run("result envelope", func(t *testing.T) {
		env := gateway.ResultEnvelope(map[string]int{"total": 1})
		require.Nil(t, env.Error)
		require.NotNil(t, env.Result)
	})

	t.Run("domain failure keeps its message", func(t *testing.T) {
		env := gateway.ErrorEnvelope(failure.Conflict("donee is already booked"))
		require.Nil(t, env.Result)
		require.Equal(t, http.StatusConflict, env.Error.Code)
		require.Equal(t, "donee is already booked", env.Error.Message)
	})

	t.Run("internal errors are masked", func(t *testing.T) {
		env := gateway.ErrorEnvelope(errors.New("pq: connection refused on 10.0.0.3"))
		require.Equal(t, http.StatusInternalServerError, env.Error.Code)
		require.Equal(t, "internal error", env.Error.Message)
	})
}
