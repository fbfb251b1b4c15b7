package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int64
		wantSkip  int64
	}{
		{"defaults", 0, 0, 1, 12, 0},
		{"negative page", -3, 20, 1, 20, 0},
		{"second page", 2, 10, 2, 10, 10},
		{"limit capped", 1, 500, 1, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit, skip := NormalizePage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantSkip, skip)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(1), TotalPages(0, 12))
	assert.Equal(t, int64(1), TotalPages(12, 12))
	assert.Equal(t, int64(2), TotalPages(13, 12))
	assert.Equal(t, int64(1), TotalPages(5, 0))
}
