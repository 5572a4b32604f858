package dto

import (
	"time"

	"huddle/internal/domains/booking/model"
	"huddle/shared/constant"
	"huddle/shared/failure"
	sharedModel "huddle/shared/model"
	"huddle/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID    int64  `json:"room_id"    validate:"required,gt=0"`
	Date      string `json:"date"       validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   validate:"required,datetime=15:04"`
	OwnerName string `json:"owner_name" validate:"required,max=100"`
}

// Window resolves the request into a half-open UTC interval.
func (r *CreateBookingRequest) Window() (start, end time.Time, err error) {
	start, end, err = timezone.Window(r.Date, r.StartTime, r.EndTime)
	if err != nil {
		return start, end, failure.BadRequestFromString(err.Error())
	}

	return start, end, nil
}

func (r *CreateBookingRequest) ToModel(start, end time.Time) model.Booking {
	now := timezone.Now()

	return model.Booking{
		RoomID:    r.RoomID,
		StartTime: start,
		EndTime:   end,
		Status:    constant.BookingStatusConfirmed,
		OwnerName: r.OwnerName,
		Metadata: sharedModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type BookResponse struct {
	Success        bool   `json:"success"`
	BookingID      int64  `json:"booking_id"`
	RoomName       string `json:"room_name"`
	BookedBy       string `json:"booked_by"`
	BookingDetails string `json:"booking_details"`
	Message        string `json:"message"`
}

type BookingItem struct {
	ID        int64  `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	BookedBy  string `json:"booked_by"`
	Status    string `json:"status"`
}

func (i *BookingItem) FromModel(booking model.Booking) {
	i.ID = booking.ID
	i.StartTime = timezone.Format(booking.StartTime, constant.BookingTimeLayout)
	i.EndTime = timezone.Format(booking.EndTime, constant.BookingTimeLayout)
	i.BookedBy = booking.OwnerName
	i.Status = booking.Status
}

type ListBookingsRequest struct {
	RoomID int64  `json:"room_id" validate:"required,gt=0"`
	Date   string `json:"date"    validate:"required,datetime=2006-01-02"`
}

type ListBookingsResponse struct {
	RoomID        int64         `json:"room_id"`
	RoomName      string        `json:"room_name"`
	Date          string        `json:"date"`
	Bookings      []BookingItem `json:"bookings"`
	TotalBookings int           `json:"total_bookings"`
}

func (r *ListBookingsResponse) FromModels(bookings []model.Booking) {
	r.Bookings = make([]BookingItem, 0, len(bookings))

	for _, booking := range bookings {
		var item BookingItem
		item.FromModel(booking)

		r.Bookings = append(r.Bookings, item)
	}

	r.TotalBookings = len(r.Bookings)
}

type CancelBookingRequest struct {
	BookingID int64 `json:"booking_id" validate:"required,gt=0"`
}

type CancelResponse struct {
	Success          bool         `json:"success"`
	Message          string       `json:"message"`
	CancelledBooking *BookingItem `json:"cancelled_booking,omitempty"`
}
