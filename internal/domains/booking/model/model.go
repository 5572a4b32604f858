package model

import (
	"time"

	"huddle/shared/constant"
	"huddle/shared/model"
)

const (
	TableName     = "bookings"
	EntityName    = "booking"
	PrimaryColumn = "id"
)

const (
	FieldID        = "id"
	FieldRoomID    = "room_id"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldStatus    = "status"
	FieldOwnerName = "owner_name"
)

// Booking holds a half-open reservation interval [StartTime, EndTime).
type Booking struct {
	ID        int64     `db:"id"         json:"id"`
	RoomID    int64     `db:"room_id"    json:"room_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time"   json:"end_time"`
	Status    string    `db:"status"     json:"status"`
	OwnerName string    `db:"owner_name" json:"owner_name"`
	model.Metadata
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == constant.BookingStatusConfirmed
}
