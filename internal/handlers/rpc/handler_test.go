package rpc_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"huddle/config"
	otelMocks "huddle/infras/otel/mocks"
	availabilityMocks "huddle/internal/domains/availability/service/mocks"
	bookingDto "huddle/internal/domains/booking/model/dto"
	bookingMocks "huddle/internal/domains/booking/service/mocks"
	roomDto "huddle/internal/domains/room/model/dto"
	roomMocks "huddle/internal/domains/room/service/mocks"
	"huddle/internal/gateway"
	rpcHandler "huddle/internal/handlers/rpc"
	"huddle/internal/intent"
	intentMocks "huddle/internal/intent/mocks"
	"huddle/internal/session"
	"huddle/shared/constant"
	"huddle/shared/failure"
)

type fixture struct {
	router    *chi.Mux
	booking   *bookingMocks.MockBooking
	room      *roomMocks.MockRoom
	extractor *intentMocks.MockExtractor
	sessions  *session.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	conf := &config.Config{}
	conf.Session.TTLMinutes = 60
	conf.Session.HistoryExchanges = 3
	conf.Session.DedupCacheEntries = 100

	f := &fixture{
		booking:   bookingMocks.NewMockBooking(ctrl),
		room:      roomMocks.NewMockRoom(ctrl),
		extractor: intentMocks.NewMockExtractor(ctrl),
		sessions:  session.NewStore(conf),
	}

	dispatcher := gateway.NewDispatcher(
		availabilityMocks.NewMockAvailability(ctrl),
		f.booking,
		f.room,
		otelMocks.NewOtel(),
	)

	handler := rpcHandler.ProvideHandler(dispatcher, f.sessions, f.extractor, conf, otelMocks.NewOtel())

	f.router = chi.NewRouter()
	handler.Router(f.router)

	return f
}

func (f *fixture) post(t *testing.T, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if sessionID != "" {
		req.Header.Set(constant.RequestHeaderSessionID, sessionID)
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)

	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) gateway.Response {
	t.Helper()

	var envelope gateway.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	return envelope
}

func initialize(t *testing.T, f *fixture) string {
	t.Helper()

	recorder := f.post(t, "/rpc", "", `{"op":"initialize"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	sessionID := recorder.Header().Get(constant.RequestHeaderSessionID)
	require.NotEmpty(t, sessionID)

	return sessionID
}

func TestRPCInitialize(t *testing.T) {
	f := newFixture(t)

	recorder := f.post(t, "/rpc", "", `{"op":"initialize"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	envelope := decodeEnvelope(t, recorder)
	require.Nil(t, envelope.Error)

	result, ok := envelope.Result.(map[string]any)
	require.True(t, ok)
	require.Equal(t, recorder.Header().Get(constant.RequestHeaderSessionID), result["session_id"])

	t.Run("initialize with a session id is rejected", func(t *testing.T) {
		sessionID := initialize(t, f)

		recorder := f.post(t, "/rpc", sessionID, `{"op":"initialize"}`)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRPCRequiresSession(t *testing.T) {
	f := newFixture(t)

	t.Run("missing session id", func(t *testing.T) {
		recorder := f.post(t, "/rpc", "", `{"op":"list_rooms"}`)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)

		envelope := decodeEnvelope(t, recorder)
		require.Equal(t, "bad request: no valid session", envelope.Error.Message)
	})

	t.Run("unknown session id", func(t *testing.T) {
		recorder := f.post(t, "/rpc", "not-a-session", `{"op":"list_rooms"}`)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("closed session id", func(t *testing.T) {
		sessionID := initialize(t, f)

		recorder := f.post(t, "/rpc", sessionID, `{"op":"close"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		recorder = f.post(t, "/rpc", sessionID, `{"op":"list_rooms"}`)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRPCDispatch(t *testing.T) {
	f := newFixture(t)
	sessionID := initialize(t, f)

	t.Run("list_rooms", func(t *testing.T) {
		f.room.EXPECT().List(gomock.Any(), gomock.Any()).Return(roomDto.RoomsResponse{TotalData: 6}, nil)

		recorder := f.post(t, "/rpc", sessionID, `{"op":"list_rooms"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		envelope := decodeEnvelope(t, recorder)
		require.Nil(t, envelope.Error)
	})

	t.Run("book success", func(t *testing.T) {
		f.booking.EXPECT().Book(gomock.Any(), gomock.Any()).
			Return(bookingDto.BookResponse{Success: true, BookingID: 1, RoomName: "donee"}, nil)

		body := `{"op":"book","args":{"room_id":1,"date":"2026-09-01","start_time":"09:00","end_time":"10:00","owner_name":"Iris"}}`

		recorder := f.post(t, "/rpc", sessionID, body)
		require.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("unknown op", func(t *testing.T) {
		recorder := f.post(t, "/rpc", sessionID, `{"op":"reboot"}`)
		require.Equal(t, http.StatusBadRequest, recorder.Code)

		envelope := decodeEnvelope(t, recorder)
		require.Contains(t, envelope.Error.Message, "unknown operation")
	})

	t.Run("malformed body", func(t *testing.T) {
		recorder := f.post(t, "/rpc", sessionID, `{"op":`)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestChat(t *testing.T) {
	t.Run("plain reply is returned and recorded", func(t *testing.T) {
		f := newFixture(t)
		sessionID := initialize(t, f)

		f.extractor.EXPECT().Extract(gomock.Any(), "hello", gomock.Any()).
			Return(intent.Intent{Reply: "Hi, ask me about rooms."}, nil)

		recorder := f.post(t, "/chat", sessionID, `{"message":"hello"}`)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Contains(t, recorder.Body.String(), "Hi, ask me about rooms.")

		sess, err := f.sessions.Get(sessionID)
		require.NoError(t, err)
		require.Len(t, sess.History(), 1)
	})

	t.Run("extracted op is dispatched", func(t *testing.T) {
		f := newFixture(t)
		sessionID := initialize(t, f)

		f.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(intent.Intent{
				Op:   "book",
				Args: json.RawMessage(`{"room_id":1,"date":"2026-09-01","start_time":"09:00","end_time":"10:00","owner_name":"Iris"}`),
			}, nil)
		f.booking.EXPECT().Book(gomock.Any(), gomock.Any()).
			Return(bookingDto.BookResponse{Success: true, RoomName: "donee"}, nil)

		recorder := f.post(t, "/chat", sessionID, `{"message":"book donee tomorrow 9-10 for Iris"}`)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Contains(t, recorder.Body.String(), "donee")
	})

	t.Run("redelivered event is answered once", func(t *testing.T) {
		f := newFixture(t)
		sessionID := initialize(t, f)

		f.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(intent.Intent{Reply: "Hello!"}, nil).Times(1)

		recorder := f.post(t, "/chat", sessionID, `{"message":"hello","event_id":"evt-1"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		recorder = f.post(t, "/chat", sessionID, `{"message":"hello","event_id":"evt-1"}`)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Contains(t, recorder.Body.String(), "duplicate")
	})

	t.Run("event id is consumed even when extraction fails", func(t *testing.T) {
		f := newFixture(t)
		sessionID := initialize(t, f)

		f.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(intent.Intent{}, failure.InternalError(errors.New("model unavailable"))).Times(1)

		recorder := f.post(t, "/chat", sessionID, `{"message":"hello","event_id":"evt-9"}`)
		require.Equal(t, http.StatusInternalServerError, recorder.Code)

		recorder = f.post(t, "/chat", sessionID, `{"message":"hello","event_id":"evt-9"}`)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Contains(t, recorder.Body.String(), "duplicate")
	})

	t.Run("chat requires a session", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.post(t, "/chat", "", `{"message":"hello"}`)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
