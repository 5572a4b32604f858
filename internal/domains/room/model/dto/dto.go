package dto

import (
	"huddle/internal/domains/room/model"
	"huddle/shared/dto"
	sharedModel "huddle/shared/model"
	"huddle/shared/timezone"
)

type CreateRoomRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (r *CreateRoomRequest) ToModel() model.Room {
	now := timezone.Now()

	return model.Room{
		Name: r.Name,
		Metadata: sharedModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type RoomResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	dto.Metadata
}

func (r *RoomResponse) FromModel(room model.Room) {
	r.ID = room.ID
	r.Name = room.Name
	r.Metadata.FromModel(room.Metadata)
}

type RoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalData int            `json:"total_data"`
	TotalPage int            `json:"total_page"`
}

func (r *RoomsResponse) FromModels(rooms []model.Room, totalData, totalPage int) {
	r.Rooms = make([]RoomResponse, 0, len(rooms))

	for _, room := range rooms {
		var item RoomResponse
		item.FromModel(room)

		r.Rooms = append(r.Rooms, item)
	}

	r.TotalData = totalData
	r.TotalPage = totalPage
}
