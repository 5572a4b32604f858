package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"huddle/shared/failure"
	"huddle/shared/validator"
)

type bookingPayload struct {
	RoomID    int64  `json:"room_id"    validate:"required,gt=0"`
	Date      string `json:"date"       validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   validate:"required,datetime=15:04"`
	OwnerName string `json:"owner_name" validate:"required,max=100"`
}

func TestValidate_OK(t *testing.T) {
	body := `{"room_id":5,"date":"2024-06-01","start_time":"14:00","end_time":"15:00","owner_name":"dana"}`

	payload := bookingPayload{}
	err := validator.Validate(strings.NewReader(body), &payload)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), payload.RoomID)
	assert.Equal(t, "14:00", payload.StartTime)
}

func TestValidate_MissingField(t *testing.T) {
	body := `{"room_id":5,"date":"2024-06-01","start_time":"14:00","end_time":"15:00"}`

	payload := bookingPayload{}
	err := validator.Validate(strings.NewReader(body), &payload)

	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "required")
}

func TestValidate_BadTimeFormat(t *testing.T) {
	body := `{"room_id":5,"date":"2024-06-01","start_time":"2pm","end_time":"15:00","owner_name":"dana"}`

	payload := bookingPayload{}
	err := validator.Validate(strings.NewReader(body), &payload)

	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestValidate_MalformedJSON(t *testing.T) {
	payload := bookingPayload{}
	err := validator.Validate(strings.NewReader("{not json"), &payload)

	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2024-06-01", "datetime=2006-01-02"))
	assert.Error(t, validator.ValidateVar("junk", "datetime=2006-01-02"))
}
