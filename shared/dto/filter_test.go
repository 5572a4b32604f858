package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"huddle/shared/dto"
)

func TestFilterGetWhereClause(t *testing.T) {
	tests := []struct {
		name     string
		filter   dto.Filter
		expected string
		args     map[string]any
	}{
		{
			name:     "eq",
			filter:   dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
			expected: "status = :status",
			args:     map[string]any{"status": "confirmed"},
		},
		{
			name:     "eq with table",
			filter:   dto.Filter{Table: "bookings", Field: "room_id", Value: int64(3), Operator: dto.FilterOperatorEq},
			expected: "bookings.room_id = :room_id",
			args:     map[string]any{"room_id": int64(3)},
		},
		{
			name:     "less with arg name",
			filter:   dto.Filter{ArgName: "window_end", Field: "start_time", Value: "2026-09-01T10:00:00Z", Operator: dto.FilterOperatorLess},
			expected: "start_time < :window_end",
			args:     map[string]any{"window_end": "2026-09-01T10:00:00Z"},
		},
		{
			name:     "greater with arg name",
			filter:   dto.Filter{ArgName: "window_start", Field: "end_time", Value: "2026-09-01T09:00:00Z", Operator: dto.FilterOperatorGreater},
			expected: "end_time > :window_start",
			args:     map[string]any{"window_start": "2026-09-01T09:00:00Z"},
		},
		{
			name:     "greater eq",
			filter:   dto.Filter{Field: "start_time", Value: "2026-09-01T00:00:00Z", Operator: dto.FilterOperatorGreaterEq},
			expected: "start_time >= :start_time",
			args:     map[string]any{"start_time": "2026-09-01T00:00:00Z"},
		},
		{
			name:     "not eq",
			filter:   dto.Filter{Field: "status", Value: "cancelled", Operator: dto.FilterOperatorNotEq},
			expected: "status != :status",
			args:     map[string]any{"status": "cancelled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.expected, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestFilterGetWhereClause_In(t *testing.T) {
	filter := dto.Filter{Field: "room_id", Value: []int64{1, 2}, Operator: dto.FilterOperatorIn}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "room_id IN (:room_id_0, :room_id_1) ", where)
	assert.Equal(t, map[string]any{"room_id_0": int64(1), "room_id_1": int64(2)}, args)
}

func TestFilterGroupGetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: int64(1), Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
			dto.Filter{ArgName: "window_end", Field: "start_time", Value: "b", Operator: dto.FilterOperatorLess},
			dto.Filter{ArgName: "window_start", Field: "end_time", Value: "a", Operator: dto.FilterOperatorGreater},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND status = :status AND start_time < :window_end AND end_time > :window_start)", where)
	assert.Len(t, args, 4)
}

func TestFilterGroupGetWhereClause_Empty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilterGroupGetWhereClause_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "a", Field: "room_id", Value: int64(1), Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "b", Field: "room_id", Value: int64(2), Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status AND (room_id = :a OR room_id = :b))", where)
	assert.Len(t, args, 3)
}
