package booking

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"huddle/infras/otel"
	"huddle/internal/domains/booking/model/dto"
	"huddle/internal/domains/booking/service"
	"huddle/shared/constant"
	"huddle/shared/failure"
	"huddle/shared/validator"
	"huddle/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func ProvideHandler(svc service.Booking, otl otel.Otel) Handler {
	return Handler{
		service: svc,
		otel:    otl,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.CreateBooking)
		r.Get("/", h.ListBookings)
		r.Delete("/{id}", h.CancelBooking)
	})
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := h.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.CreateBooking")
	defer scope.End()

	var req dto.CreateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	resp, err := h.service.Book(ctx, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, resp)
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := h.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.ListBookings")
	defer scope.End()

	roomID, err := strconv.ParseInt(r.URL.Query().Get("room_id"), 10, 64)
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("invalid room_id parameter"))

		return
	}

	req := dto.ListBookingsRequest{
		RoomID: roomID,
		Date:   r.URL.Query().Get("date"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(w, err)

		return
	}

	resp, err := h.service.ListForRoomDate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, resp)
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := h.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.CancelBooking")
	defer scope.End()

	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("invalid booking id"))

		return
	}

	resp, err := h.service.Cancel(ctx, dto.CancelBookingRequest{BookingID: id})
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, resp)
}
