package room

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"huddle/infras/otel"
	"huddle/internal/domains/room/model/dto"
	"huddle/internal/domains/room/service"
	"huddle/shared/constant"
	sharedDto "huddle/shared/dto"
	"huddle/shared/failure"
	"huddle/shared/validator"
	"huddle/transport/http/middleware"
	"huddle/transport/http/response"
)

type Handler struct {
	service    service.Room
	middleware middleware.App
	otel       otel.Otel
}

func ProvideHandler(svc service.Room, mw middleware.App, otl otel.Otel) Handler {
	return Handler{
		service:    svc,
		middleware: mw,
		otel:       otl,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.ListRooms)
		r.Get("/{id}", h.GetRoom)
		r.With(h.middleware.APIKey).Post("/", h.CreateRoom)
	})
}

func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := h.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".room.ListRooms")
	defer scope.End()

	var params sharedDto.QueryParams
	params.FromRequest(r, true)

	resp, err := h.service.List(ctx, params)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := h.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".room.GetRoom")
	defer scope.End()

	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("invalid room id"))

		return
	}

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := h.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".room.CreateRoom")
	defer scope.End()

	var req dto.CreateRoomRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	resp, err := h.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, resp)
}
