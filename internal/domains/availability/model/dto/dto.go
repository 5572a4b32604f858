package dto

import (
	"fmt"
	"time"

	roomModel "huddle/internal/domains/room/model"
	"huddle/shared/failure"
	"huddle/shared/timezone"
)

type FindAvailableRequest struct {
	Date      string `json:"date"       validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   validate:"required,datetime=15:04"`
}

// Window resolves the request into a half-open UTC interval.
func (r *FindAvailableRequest) Window() (start, end time.Time, err error) {
	start, end, err = timezone.Window(r.Date, r.StartTime, r.EndTime)
	if err != nil {
		return start, end, failure.BadRequestFromString(err.Error())
	}

	return start, end, nil
}

func (r *FindAvailableRequest) RequestedTime() string {
	return fmt.Sprintf("%s %s-%s", r.Date, r.StartTime, r.EndTime)
}

type AvailableRoom struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type FindAvailableResponse struct {
	AvailableRooms []AvailableRoom `json:"available_rooms"`
	TotalAvailable int             `json:"total_available"`
	RequestedTime  string          `json:"requested_time"`
}

func (r *FindAvailableResponse) FromModels(rooms []roomModel.Room, requestedTime string) {
	r.AvailableRooms = make([]AvailableRoom, 0, len(rooms))

	for _, room := range rooms {
		r.AvailableRooms = append(r.AvailableRooms, AvailableRoom{
			ID:   room.ID,
			Name: room.Name,
		})
	}

	r.TotalAvailable = len(r.AvailableRooms)
	r.RequestedTime = requestedTime
}
