package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"huddle/shared"
	"huddle/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "empty result is one page", total: 0, limit: 10, expected: 1},
		{name: "exact fit", total: 20, limit: 10, expected: 2},
		{name: "remainder adds a page", total: 21, limit: 10, expected: 3},
		{name: "zero limit is one page", total: 50, limit: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:5", shared.BuildCacheKey("room:get", "5"))
}

func TestBuildCacheKeyWithQuery_Distinct(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}

	filterA := shared.FilterByID(int64(1), "id", "rooms")
	filterB := shared.FilterByID(int64(2), "id", "rooms")

	keyA := shared.BuildCacheKeyWithQuery("room:gets", params, filterA)
	keyB := shared.BuildCacheKeyWithQuery("room:gets", params, filterB)

	assert.NotEqual(t, keyA, keyB)
	assert.Equal(t, keyA, shared.BuildCacheKeyWithQuery("room:gets", params, filterA))
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID(int64(7), "id", "bookings")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, int64(7), args["id"])
}
