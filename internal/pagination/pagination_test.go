package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boutique-backend/internal/pagination"
)

func TestNormalize(t *testing.T) {
	p := pagination.Page{Number: 0, Size: 0}.Normalize(20)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 20, p.Size)

	p = pagination.Page{Number: 3, Size: 12}.Normalize(20)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, 12, p.Size)

	p = pagination.Page{Number: -5}.Normalize(12)
	assert.Equal(t, 1, p.Number)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Page{Number: 1, Size: 20}.Offset())
	assert.Equal(t, 40, pagination.Page{Number: 3, Size: 20}.Offset())
}

func TestNewResult(t *testing.T) {
	tests := []struct {
		name       string
		page       pagination.Page
		items      int
		totalCount int
		wantMore   bool
		wantPages  int
	}{
		{"first of many", pagination.Page{Number: 1, Size: 20}, 20, 45, true, 3},
		{"middle page", pagination.Page{Number: 2, Size: 20}, 20, 45, true, 3},
		{"last short page", pagination.Page{Number: 3, Size: 20}, 5, 45, false, 3},
		{"exact boundary", pagination.Page{Number: 2, Size: 20}, 20, 40, false, 2},
		{"empty list", pagination.Page{Number: 1, Size: 12}, 0, 0, false, 0},
		{"single page", pagination.Page{Number: 1, Size: 12}, 7, 7, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.items)
			res := pagination.NewResult(items, tt.page, tt.totalCount)
			assert.Equal(t, tt.wantMore, res.HasMore)
			assert.Equal(t, tt.wantPages, res.TotalPages)
			assert.Equal(t, tt.totalCount, res.TotalCount)
			assert.Len(t, res.Items, tt.items)
		})
	}
}

func TestNewResultNilItems(t *testing.T) {
	res := pagination.NewResult[string](nil, pagination.Page{Number: 1, Size: 20}, 0)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}
