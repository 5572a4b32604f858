package model

import (
	"huddle/shared/model"
)

const (
	TableName     = "rooms"
	EntityName    = "room"
	PrimaryColumn = "id"
)

const (
	FieldID   = "id"
	FieldName = "name"
)

type Room struct {
	ID   int64  `db:"id"   json:"id"`
	Name string `db:"name" json:"name"`
	model.Metadata
}
