package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/estudantes?"+query, nil)
	return c
}

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{"defaults", "", 1, 0},
		{"explicit", "page=3&limit=10", 3, 10},
		{"limit capped", "limit=9999", 1, MaxLimit},
		{"invalid page", "page=abc&limit=10", 1, 10},
		{"negative page", "page=-2", 1, 0},
		{"invalid limit ignored", "limit=zero", 1, 0},
		{"negative limit ignored", "limit=-5", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := ParsePageParams(contextWithQuery(tt.query))
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, uint64(0), PageParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, uint64(20), PageParams{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, uint64(0), PageParams{Page: 5, Limit: 0}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, PageParams{Limit: 0}.TotalPages(42))
	assert.Equal(t, 1, PageParams{Limit: 10}.TotalPages(0))
	assert.Equal(t, 5, PageParams{Limit: 10}.TotalPages(42))
	assert.Equal(t, 4, PageParams{Limit: 10}.TotalPages(40))
}
