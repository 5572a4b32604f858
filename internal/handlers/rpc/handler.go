package rpc

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"huddle/config"
	"huddle/infras/otel"
	"huddle/internal/gateway"
	"huddle/internal/intent"
	"huddle/internal/session"
	"huddle/shared/constant"
	"huddle/shared/failure"
	"huddle/shared/logger"
)

// Handler exposes the session-framed booking protocol. The transport is
// stateless HTTP; all conversation state lives in the session store and
// requests are tied to it through the X-Session-ID header.
type Handler struct {
	dispatcher *gateway.Dispatcher
	sessions   *session.Store
	dedup      *session.Dedup
	extractor  intent.Extractor
	config     *config.Config
	otel       otel.Otel
}

func ProvideHandler(
	dispatcher *gateway.Dispatcher,
	sessions *session.Store,
	extractor intent.Extractor,
	conf *config.Config,
	otl otel.Otel,
) Handler {
	return Handler{
		dispatcher: dispatcher,
		sessions:   sessions,
		dedup:      session.NewDedup(conf.Session.DedupCacheEntries),
		extractor:  extractor,
		config:     conf,
		otel:       otl,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Post("/rpc", h.RPC)
	r.Post("/chat", h.Chat)
}

type initializeResult struct {
	SessionID        string `json:"session_id"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}

type closeResult struct {
	Closed bool `json:"closed"`
}

// RPC runs one protocol operation. An initialize request must carry no
// session identifier and mints one; every other operation must present a
// live identifier or is rejected without touching the domain.
func (h *Handler) RPC(w http.ResponseWriter, r *http.Request) {
	ctx, scope := h.otel.NewScope(r.Context(), constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".RPC")
	defer scope.End()

	var req gateway.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, gateway.ErrorEnvelope(failure.BadRequestFromString("malformed request body")))

		return
	}

	op, err := gateway.ParseOp(req.Op)
	if err != nil {
		writeEnvelope(w, gateway.ErrorEnvelope(err))

		return
	}

	scope.SetAttribute("op", string(op))

	sessionID := r.Header.Get(constant.RequestHeaderSessionID)

	if op == gateway.OpInitialize {
		if sessionID != "" {
			writeEnvelope(w, gateway.ErrorEnvelope(failure.BadRequestFromString("initialize must not carry a session id")))

			return
		}

		sess := h.sessions.Create()

		w.Header().Set(constant.RequestHeaderSessionID, sess.ID)
		writeEnvelope(w, gateway.ResultEnvelope(initializeResult{
			SessionID:        sess.ID,
			ExpiresInMinutes: h.config.Session.TTLMinutes,
		}))

		return
	}

	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		writeEnvelope(w, gateway.ErrorEnvelope(failure.NoValidSession))

		return
	}

	sess.Touch()

	if op == gateway.OpClose {
		if err := h.sessions.Close(sess.ID); err != nil {
			writeEnvelope(w, gateway.ErrorEnvelope(failure.NoValidSession))

			return
		}

		writeEnvelope(w, gateway.ResultEnvelope(closeResult{Closed: true}))

		return
	}

	result, err := h.dispatcher.Dispatch(ctx, op, req.Args)
	if err != nil {
		scope.TraceError(err)
		writeEnvelope(w, gateway.ErrorEnvelope(err))

		return
	}

	writeEnvelope(w, gateway.ResultEnvelope(result))
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
	EventID string `json:"event_id"`
}

type chatResponse struct {
	Reply     string `json:"reply"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// Chat accepts a free-text message on an established session, extracts the
// intended operation and answers in text. Redelivered events are detected
// through the event id and answered once.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := h.otel.NewScope(r.Context(), constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Chat")
	defer scope.End()

	sess, err := h.sessions.Get(r.Header.Get(constant.RequestHeaderSessionID))
	if err != nil {
		writeEnvelope(w, gateway.ErrorEnvelope(failure.NoValidSession))

		return
	}

	sess.Touch()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeEnvelope(w, gateway.ErrorEnvelope(failure.BadRequestFromString("message is required")))

		return
	}

	// Mark-on-receipt: the event id is consumed before extraction, so a
	// redelivery is answered duplicate even when the first attempt failed.
	if h.dedup.Seen(req.EventID) {
		writeJSON(w, http.StatusOK, chatResponse{Duplicate: true})

		return
	}

	extracted, err := h.extractor.Extract(ctx, req.Message, sess.History())
	if err != nil {
		scope.TraceError(err)
		writeEnvelope(w, gateway.ErrorEnvelope(err))

		return
	}

	reply := extracted.Reply

	if reply == "" {
		reply = h.runIntent(r, extracted)
	}

	sess.AppendExchange(req.Message, reply)

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// runIntent executes an extracted operation and renders the outcome as
// text. Domain failures become the reply; the chat surface never returns
// error envelopes for them.
func (h *Handler) runIntent(r *http.Request, extracted intent.Intent) string {
	op, err := gateway.ParseOp(extracted.Op)
	if err != nil || op == gateway.OpInitialize || op == gateway.OpClose {
		return "Sorry, I could not map that to a booking operation."
	}

	result, err := h.dispatcher.Dispatch(r.Context(), op, extracted.Args)
	if err != nil {
		if failure.GetCode(err) >= http.StatusInternalServerError {
			return "Something went wrong handling that request."
		}

		return err.Error()
	}

	rendered, err := json.Marshal(result)
	if err != nil {
		logger.ErrorWithStack(err)

		return "Something went wrong handling that request."
	}

	return string(rendered)
}

// writeEnvelope mirrors the envelope outcome in the HTTP status: 200 for
// results, the failure code for errors.
func writeEnvelope(w http.ResponseWriter, envelope gateway.Response) {
	code := http.StatusOK
	if envelope.Error != nil {
		code = envelope.Error.Code
	}

	writeJSON(w, code, envelope)
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
