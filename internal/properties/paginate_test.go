package properties

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeListings(n int) []Property {
	out := make([]Property, n)
	for i := range out {
		out[i] = Property{ID: int64(i + 1)}
	}
	return out
}

func TestPaginateFirstPage(t *testing.T) {
	res := Paginate(makeListings(30), 0, 12)
	require.Len(t, res.Properties, 12)
	require.Equal(t, 0, res.CurrentPage)
	require.Equal(t, 3, res.TotalPages)
	require.Equal(t, 30, res.TotalProperties)
	require.Equal(t, 12, res.PageSize)
	require.EqualValues(t, 1, res.Properties[0].ID)
}

func TestPaginateLastPartialPage(t *testing.T) {
	res := Paginate(makeListings(30), 2, 12)
	require.Len(t, res.Properties, 6)
	require.EqualValues(t, 25, res.Properties[0].ID)
	require.Equal(t, 3, res.TotalPages)
}

func TestPaginateBeyondEndIsEmpty(t *testing.T) {
	res := Paginate(makeListings(5), 9, 12)
	require.Empty(t, res.Properties)
	require.Equal(t, 1, res.TotalPages)
	require.Equal(t, 5, res.TotalProperties)
}

func TestPaginateEmptySet(t *testing.T) {
	res := Paginate(nil, 0, 12)
	require.Empty(t, res.Properties)
	require.Zero(t, res.TotalPages)
	require.Zero(t, res.TotalProperties)
}

func TestPaginateDefaultsSize(t *testing.T) {
	res := Paginate(makeListings(20), 0, 0)
	require.Equal(t, DefaultPageSize, res.PageSize)
	require.Len(t, res.Properties, DefaultPageSize)
}
