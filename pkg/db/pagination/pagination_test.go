package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Page{}.Normalize(50, 100)
	assert.Equal(t, Page{Limit: 50, Offset: 0}, p)

	p = Page{Limit: 500, Offset: -4}.Normalize(50, 100)
	assert.Equal(t, Page{Limit: 100, Offset: 0}, p)
}

func TestNoMore(t *testing.T) {
	tests := []struct {
		name  string
		page  Page
		total int64
		want  bool
	}{
		{name: "empty listing", page: Page{Limit: 10}, total: 0, want: true},
		{name: "exact fit", page: Page{Limit: 10}, total: 10, want: true},
		{name: "one more row", page: Page{Limit: 10}, total: 11, want: false},
		{name: "last page", page: Page{Limit: 10, Offset: 20}, total: 25, want: true},
		{name: "middle page", page: Page{Limit: 10, Offset: 10}, total: 25, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.NoMore(tt.total))
		})
	}
}

func TestNewResultNeverNil(t *testing.T) {
	res := NewResult[int](nil, 0, Page{Limit: 5})
	assert.NotNil(t, res.Items)
	assert.True(t, res.NoMore)
}
