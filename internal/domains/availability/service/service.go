package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"time"

	"huddle/infras/otel"
	"huddle/internal/domains/availability/model/dto"
	bookingRepository "huddle/internal/domains/booking/repository"
	roomModel "huddle/internal/domains/room/model"
	roomRepository "huddle/internal/domains/room/repository"
	"huddle/shared/constant"
	sharedDto "huddle/shared/dto"
	"huddle/shared/failure"
)

type Availability interface {
	FindAvailable(ctx context.Context, req dto.FindAvailableRequest) (dto.FindAvailableResponse, error)
	IsAvailable(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
}

type availabilityImpl struct {
	booking bookingRepository.Booking
	room    roomRepository.Room
	otel    otel.Otel
}

func New(booking bookingRepository.Booking, room roomRepository.Room, otl otel.Otel) Availability {
	return &availabilityImpl{
		booking: booking,
		room:    room,
		otel:    otl,
	}
}

// FindAvailable returns every room with no confirmed booking overlapping
// the requested window, sorted by name. A window with no free rooms yields
// an empty list, not an error.
func (s *availabilityImpl) FindAvailable(ctx context.Context, req dto.FindAvailableRequest) (dto.FindAvailableResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.FindAvailable")
	defer scope.End()

	var resp dto.FindAvailableResponse

	start, end, err := req.Window()
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	params := sharedDto.QueryParams{SortBy: roomModel.FieldName, SortDir: sharedDto.SortDirAsc}

	rooms, err := s.room.GetAll(ctx, params, sharedDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	bookedIDs, err := s.booking.FindBookedRoomIDs(ctx, start, end)
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	booked := make(map[int64]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	available := make([]roomModel.Room, 0, len(rooms))

	for _, room := range rooms {
		if _, taken := booked[room.ID]; !taken {
			available = append(available, room)
		}
	}

	resp.FromModels(available, req.RequestedTime())

	return resp, nil
}

// IsAvailable answers for a single room with the same overlap predicate
// Book uses, so a true answer here means a booking attempt at the same
// instant would not conflict.
func (s *availabilityImpl) IsAvailable(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.IsAvailable")
	defer scope.End()

	room, err := s.room.GetByID(ctx, roomID)
	if err != nil {
		scope.TraceError(err)

		return false, err
	}

	if room.ID == 0 {
		return false, failure.NotFound(roomModel.EntityName)
	}

	overlapping, err := s.booking.FindConfirmedOverlapping(ctx, roomID, start, end)
	if err != nil {
		scope.TraceError(err)

		return false, err
	}

	return len(overlapping) == 0, nil
}
