package intent

//go:generate go run go.uber.org/mock/mockgen -source=./intent.go -destination=./mocks/intent_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"huddle/infras/genai"
	"huddle/infras/otel"
	"huddle/internal/session"
	"huddle/shared/constant"
	"huddle/shared/failure"
)

// Intent is the structured reading of one chat message. Either Op names a
// booking operation with its decoded arguments, or Reply carries a plain
// conversational answer.
type Intent struct {
	Op    string          `json:"op"`
	Args  json.RawMessage `json:"args"`
	Reply string          `json:"reply"`
}

type Extractor interface {
	Extract(ctx context.Context, message string, history []session.Exchange) (Intent, error)
}

type geminiExtractor struct {
	client genai.Client
	otel   otel.Otel
}

func New(client genai.Client, otl otel.Otel) Extractor {
	return &geminiExtractor{
		client: client,
		otel:   otl,
	}
}

const systemPrompt = `You are a meeting room booking assistant.
Read the user's message and answer with a single JSON object, nothing else.

When the message asks for a booking operation, answer:
{"op": "<operation>", "args": {...}}

Operations and their args:
- "list_rooms": {}
- "find_available": {"date": "YYYY-MM-DD", "start_time": "HH:MM", "end_time": "HH:MM"}
- "book": {"room_id": <number>, "date": "YYYY-MM-DD", "start_time": "HH:MM", "end_time": "HH:MM", "owner_name": "<name>"}
- "list_bookings": {"room_id": <number>, "date": "YYYY-MM-DD"}
- "cancel": {"booking_id": <number>}

Rules:
- All times are UTC, 24-hour clock.
- Bookings must be in the future.
- When details are missing or the message is not about rooms, answer:
{"reply": "<short helpful answer, possibly asking for the missing detail>"}`

func (e *geminiExtractor) Extract(ctx context.Context, message string, history []session.Exchange) (Intent, error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".intent.Extract")
	defer scope.End()

	var intent Intent

	raw, err := e.client.GenerateContent(ctx, buildPrompt(message, history))
	if err != nil {
		scope.TraceError(err)

		return intent, failure.InternalError(fmt.Errorf("intent extraction failed: %w", err))
	}

	if err := json.Unmarshal([]byte(stripFences(raw)), &intent); err != nil {
		scope.TraceError(err)

		return intent, failure.InternalError(fmt.Errorf("intent extraction returned malformed JSON: %w", err))
	}

	return intent, nil
}

func buildPrompt(message string, history []session.Exchange) string {
	var sb strings.Builder

	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")

	if len(history) > 0 {
		sb.WriteString("Recent conversation:\n")

		for _, exchange := range history {
			sb.WriteString("User: ")
			sb.WriteString(exchange.UserMessage)
			sb.WriteString("\nAssistant: ")
			sb.WriteString(exchange.Reply)
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
	}

	sb.WriteString("User: ")
	sb.WriteString(message)

	return sb.String()
}

// stripFences unwraps the ```json fences models like to add.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)

	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")

	return strings.TrimSpace(raw)
}
