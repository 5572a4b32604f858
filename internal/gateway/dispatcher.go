package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"huddle/infras/otel"
	availabilityDto "huddle/internal/domains/availability/model/dto"
	availabilityService "huddle/internal/domains/availability/service"
	bookingDto "huddle/internal/domains/booking/model/dto"
	bookingService "huddle/internal/domains/booking/service"
	roomService "huddle/internal/domains/room/service"
	"huddle/shared/constant"
	sharedDto "huddle/shared/dto"
	"huddle/shared/failure"
	"huddle/shared/validator"
)

type handlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Dispatcher routes protocol operations to the domain services. Session
// lifecycle ops (initialize, close) are handled by the transport; the
// dispatcher only knows the domain ops.
type Dispatcher struct {
	handlers map[Op]handlerFunc
	otel     otel.Otel
}

func NewDispatcher(
	availability availabilityService.Availability,
	booking bookingService.Booking,
	room roomService.Room,
	otl otel.Otel,
) *Dispatcher {
	d := &Dispatcher{otel: otl}

	d.handlers = map[Op]handlerFunc{
		OpListRooms:     d.listRooms(room),
		OpFindAvailable: d.findAvailable(availability),
		OpBook:          d.book(booking),
		OpListBookings:  d.listBookings(booking),
		OpCancel:        d.cancel(booking),
	}

	return d
}

// Dispatch runs one operation and returns its result. Domain failures come
// back as errors for the transport to fold into an error envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, op Op, args json.RawMessage) (any, error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Dispatch")
	defer scope.End()

	scope.SetAttribute("op", string(op))

	handler, ok := d.handlers[op]
	if !ok {
		return nil, failure.BadRequestFromString(fmt.Sprintf("operation %q is not dispatchable", op))
	}

	return handler(ctx, args)
}

func (d *Dispatcher) listRooms(service roomService.Room) handlerFunc {
	return func(ctx context.Context, _ json.RawMessage) (any, error) {
		return service.List(ctx, sharedDto.QueryParams{})
	}
}

func (d *Dispatcher) findAvailable(service availabilityService.Availability) handlerFunc {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		req, err := decodeArgs[availabilityDto.FindAvailableRequest](args)
		if err != nil {
			return nil, err
		}

		return service.FindAvailable(ctx, req)
	}
}

func (d *Dispatcher) book(service bookingService.Booking) handlerFunc {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		req, err := decodeArgs[bookingDto.CreateBookingRequest](args)
		if err != nil {
			return nil, err
		}

		return service.Book(ctx, req)
	}
}

func (d *Dispatcher) listBookings(service bookingService.Booking) handlerFunc {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		req, err := decodeArgs[bookingDto.ListBookingsRequest](args)
		if err != nil {
			return nil, err
		}

		return service.ListForRoomDate(ctx, req)
	}
}

func (d *Dispatcher) cancel(service bookingService.Booking) handlerFunc {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		req, err := decodeArgs[bookingDto.CancelBookingRequest](args)
		if err != nil {
			return nil, err
		}

		return service.Cancel(ctx, req)
	}
}

func decodeArgs[T any](args json.RawMessage) (T, error) {
	var req T

	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	if err := validator.Validate(bytes.NewReader(args), &req); err != nil {
		return req, err //nolint:wrapcheck
	}

	return req, nil
}
