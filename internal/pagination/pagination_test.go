package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		index    int
		size     int
		want     Page
	}{
		{
			name:  "first page",
			total: 12, index: 0, size: 5,
			want: Page{Index: 0, Start: 0, End: 5, Total: 12, TotalPages: 3, HasPrev: false, HasNext: true},
		},
		{
			name:  "middle page",
			total: 12, index: 1, size: 5,
			want: Page{Index: 1, Start: 5, End: 10, Total: 12, TotalPages: 3, HasPrev: true, HasNext: true},
		},
		{
			name:  "short last page",
			total: 12, index: 2, size: 5,
			want: Page{Index: 2, Start: 10, End: 12, Total: 12, TotalPages: 3, HasPrev: true, HasNext: false},
		},
		{
			name:  "exact fit last page",
			total: 10, index: 1, size: 5,
			want: Page{Index: 1, Start: 5, End: 10, Total: 10, TotalPages: 2, HasPrev: true, HasNext: false},
		},
		{
			name:  "empty list",
			total: 0, index: 0, size: 5,
			want: Page{Index: 0, Start: 0, End: 0, Total: 0, TotalPages: 0, HasPrev: false, HasNext: false},
		},
		{
			name:  "index past end after shrink",
			total: 3, index: 4, size: 5,
			want: Page{Index: 4, Start: 3, End: 3, Total: 3, TotalPages: 1, HasPrev: true, HasNext: false},
		},
		{
			name:  "negative index treated as zero",
			total: 3, index: -1, size: 5,
			want: Page{Index: 0, Start: 0, End: 3, Total: 3, TotalPages: 1, HasPrev: false, HasNext: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.total, tt.index, tt.size))
		})
	}
}

func TestEmpty(t *testing.T) {
	assert.True(t, Compute(0, 0, 5).Empty())
	assert.True(t, Compute(3, 4, 5).Empty())
	assert.False(t, Compute(3, 0, 5).Empty())
}
