package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "?page=3&limit=50", 3, 50},
		{"zero page", "?page=0&limit=10", 1, 10},
		{"negative page", "?page=-2", 1, 20},
		{"limit too large", "?limit=500", 1, 20},
		{"garbage values", "?page=abc&limit=xyz", 1, 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/leads"+tc.query, nil)
			page, limit := parsePagination(req)
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.limit, limit)
		})
	}
}

func TestPaginationMeta(t *testing.T) {
	meta := paginationMeta(2, 20, 45)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, int64(45), meta.TotalItems)
	assert.Equal(t, 3, meta.TotalPages)

	meta = paginationMeta(1, 20, 0)
	assert.Equal(t, 0, meta.TotalPages)
}
