package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name       string
		from, size int
		want       Page
	}{
		{"first page", 0, 10, Page{Limit: 10, Offset: 0}},
		{"second page", 10, 10, Page{Limit: 10, Offset: 10}},
		// The offset snaps down to the page boundary; from=5 with
		// size=10 still lands on the first page.
		{"mid-page from", 5, 10, Page{Limit: 10, Offset: 0}},
		{"snapped second page", 15, 10, Page{Limit: 10, Offset: 10}},
		{"size one", 3, 1, Page{Limit: 1, Offset: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := New(tc.from, tc.size)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(-1, 10)
	require.ErrorIs(t, err, ErrNegativeFrom)

	_, err = New(0, 0)
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = New(0, -3)
	require.ErrorIs(t, err, ErrInvalidSize)
}
