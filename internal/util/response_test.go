package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		limit       int
		total       int64
		totalPages  int
		hasNextPage bool
		hasPrevPage bool
	}{
		{"first of many", 1, 10, 25, 3, true, false},
		{"middle page", 2, 10, 25, 3, true, true},
		{"last partial page", 3, 10, 25, 3, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"single page", 1, 10, 5, 1, false, false},
		{"empty result", 1, 10, 0, 0, false, false},
		{"page past the end", 5, 10, 25, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.total, p.TotalCount)
			assert.Equal(t, tt.hasNextPage, p.HasNextPage)
			assert.Equal(t, tt.hasPrevPage, p.HasPrevPage)
		})
	}
}
