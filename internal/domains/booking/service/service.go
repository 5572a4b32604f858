package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"huddle/config"
	"huddle/infras/otel"
	"huddle/internal/domains/booking/model"
	"huddle/internal/domains/booking/model/dto"
	"huddle/internal/domains/booking/repository"
	roomModel "huddle/internal/domains/room/model"
	roomRepository "huddle/internal/domains/room/repository"
	"huddle/internal/notify"
	"huddle/shared/constant"
	"huddle/shared/failure"
	"huddle/shared/timezone"
)

type Booking interface {
	Book(ctx context.Context, req dto.CreateBookingRequest) (dto.BookResponse, error)
	Cancel(ctx context.Context, req dto.CancelBookingRequest) (dto.CancelResponse, error)
	ListForRoomDate(ctx context.Context, req dto.ListBookingsRequest) (dto.ListBookingsResponse, error)
}

type bookingImpl struct {
	booking  repository.Booking
	room     roomRepository.Room
	notifier notify.Notifier
	locks    *roomLocker
	config   *config.Config
	otel     otel.Otel
}

func New(
	booking repository.Booking,
	room roomRepository.Room,
	notifier notify.Notifier,
	conf *config.Config,
	otl otel.Otel,
) Booking {
	return &bookingImpl{
		booking:  booking,
		room:     room,
		notifier: notifier,
		locks:    newRoomLocker(),
		config:   conf,
		otel:     otl,
	}
}

// Book creates a confirmed booking for the requested window. Creation per
// room is serialized through the room lock, so between the overlap check
// and the insert no competing request can slip in. Exactly one of two
// concurrent requests for overlapping windows wins.
func (s *bookingImpl) Book(ctx context.Context, req dto.CreateBookingRequest) (dto.BookResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Book")
	defer scope.End()

	var resp dto.BookResponse

	start, end, err := req.Window()
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	if start.Before(timezone.Now()) {
		err = failure.BadRequestFromString("cannot book a time in the past")
		scope.TraceError(err)

		return resp, err
	}

	room, err := s.room.GetByID(ctx, req.RoomID)
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	if room.ID == 0 {
		return resp, failure.NotFound(roomModel.EntityName)
	}

	unlock := s.locks.Lock(req.RoomID)
	defer unlock()

	overlapping, err := s.booking.FindConfirmedOverlapping(ctx, req.RoomID, start, end)
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	if len(overlapping) > 0 {
		taken := overlapping[0]
		err = failure.Conflict(fmt.Sprintf(
			"%s is already booked from %s to %s on %s",
			room.Name,
			timezone.Format(taken.StartTime, constant.BookingTimeLayout),
			timezone.Format(taken.EndTime, constant.BookingTimeLayout),
			timezone.Format(taken.StartTime, constant.BookingDateLayout),
		))
		scope.TraceError(err)

		return resp, err
	}

	booking, err := s.booking.Insert(ctx, req.ToModel(start, end))
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	s.notifyAsync(ctx, s.notifier.BookingCreated, booking, room.Name)

	resp = dto.BookResponse{
		Success:   true,
		BookingID: booking.ID,
		RoomName:  room.Name,
		BookedBy:  booking.OwnerName,
		BookingDetails: fmt.Sprintf(
			"%s on %s from %s to %s",
			room.Name,
			req.Date,
			req.StartTime,
			req.EndTime,
		),
		Message: fmt.Sprintf("%s booked successfully for %s", room.Name, booking.OwnerName),
	}

	return resp, nil
}

// Cancel marks a confirmed booking as cancelled. Cancelling a booking that
// is already cancelled is a conflict, not a no-op.
func (s *bookingImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest) (dto.CancelResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()

	var resp dto.CancelResponse

	booking, err := s.booking.GetByID(ctx, req.BookingID)
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	if booking.ID == 0 {
		return resp, failure.NotFound(model.EntityName)
	}

	if !booking.IsConfirmed() {
		return resp, failure.Conflict(fmt.Sprintf("booking %d is already cancelled", booking.ID))
	}

	cancelled, err := s.booking.CancelConfirmed(ctx, booking.ID)
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	// The guarded update lost a race with another cancel.
	if !cancelled {
		return resp, failure.Conflict(fmt.Sprintf("booking %d is already cancelled", booking.ID))
	}

	booking.Status = constant.BookingStatusCancelled

	roomName := ""

	room, err := s.room.GetByID(ctx, booking.RoomID)
	if err == nil {
		roomName = room.Name
	}

	s.notifyAsync(ctx, s.notifier.BookingCancelled, booking, roomName)

	var item dto.BookingItem
	item.FromModel(booking)

	resp = dto.CancelResponse{
		Success:          true,
		Message:          fmt.Sprintf("booking %d cancelled", booking.ID),
		CancelledBooking: &item,
	}

	return resp, nil
}

func (s *bookingImpl) ListForRoomDate(ctx context.Context, req dto.ListBookingsRequest) (dto.ListBookingsResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListForRoomDate")
	defer scope.End()

	var resp dto.ListBookingsResponse

	day, err := timezone.Parse(constant.BookingDateLayout, req.Date)
	if err != nil {
		err = failure.BadRequestFromString(fmt.Sprintf("invalid date %q, expected %s", req.Date, constant.BookingDateLayout))
		scope.TraceError(err)

		return resp, err
	}

	room, err := s.room.GetByID(ctx, req.RoomID)
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	if room.ID == 0 {
		return resp, failure.NotFound(roomModel.EntityName)
	}

	bookings, err := s.booking.ListConfirmedForRoom(ctx, req.RoomID, day, day.AddDate(0, 0, 1))
	if err != nil {
		scope.TraceError(err)

		return resp, err
	}

	resp.FromModels(bookings)
	resp.RoomID = room.ID
	resp.RoomName = room.Name
	resp.Date = req.Date

	return resp, nil
}

// notifyAsync publishes a booking event off the request path. Delivery
// failures are logged and swallowed; the booking outcome stands either way.
func (s *bookingImpl) notifyAsync(ctx context.Context, publish func(context.Context, notify.BookingEvent) error, booking model.Booking, roomName string) {
	event := notify.BookingEvent{
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		RoomName:  roomName,
		BookedBy:  booking.OwnerName,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		EmittedAt: timezone.Now(),
	}

	go func(ctx context.Context) {
		if err := publish(ctx, event); err != nil {
			log.Error().Err(err).Int64("booking_id", event.BookingID).Msg("failed to publish booking event")
		}
	}(context.WithoutCancel(ctx))
}
