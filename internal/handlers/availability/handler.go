package availability

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"huddle/infras/otel"
	"huddle/internal/domains/availability/model/dto"
	"huddle/internal/domains/availability/service"
	"huddle/shared/constant"
	"huddle/shared/validator"
	"huddle/transport/http/response"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func ProvideHandler(svc service.Availability, otl otel.Otel) Handler {
	return Handler{
		service: svc,
		otel:    otl,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Route("/availability", func(r chi.Router) {
		r.Get("/", h.FindAvailable)
	})
}

func (h *Handler) FindAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := h.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".availability.FindAvailable")
	defer scope.End()

	query := r.URL.Query()

	req := dto.FindAvailableRequest{
		Date:      query.Get("date"),
		StartTime: query.Get("start_time"),
		EndTime:   query.Get("end_time"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(w, err)

		return
	}

	resp, err := h.service.FindAvailable(ctx, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, resp)
}
