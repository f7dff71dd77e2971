package properties

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedRepo(t *testing.T) *MemoryRepository {
	t.Helper()
	repo := NewMemoryRepository()
	for _, p := range sampleListings() {
		p.ID = 0
		_, err := repo.Create(context.Background(), &p)
		require.NoError(t, err)
	}
	return repo
}

func TestMemoryRepositoryCreateAssignsIDs(t *testing.T) {
	repo := NewMemoryRepository()
	p, err := repo.Create(context.Background(), &Property{Title: "First"})
	require.NoError(t, err)
	require.EqualValues(t, 1, p.ID)
	require.Equal(t, StatusAvailable, p.Status)
	require.False(t, p.CreatedAt.IsZero())

	p2, err := repo.Create(context.Background(), &Property{Title: "Second"})
	require.NoError(t, err)
	require.EqualValues(t, 2, p2.ID)
}

func TestMemoryRepositoryGetByIDMissingIsNil(t *testing.T) {
	repo := NewMemoryRepository()
	p, err := repo.GetByID(context.Background(), 404)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestMemoryRepositorySearchMatchesFallbackPipeline(t *testing.T) {
	repo := seedRepo(t)
	c := SearchCriteria{City: "Lalitpur", Size: 12}

	res, err := repo.Search(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalProperties)

	local := Paginate(FilterProperties(sampleListings(), c), 0, c.Size)
	require.Equal(t, local.TotalProperties, res.TotalProperties)
	require.Equal(t, local.TotalPages, res.TotalPages)
}

func TestMemoryRepositoryListSortsByPrice(t *testing.T) {
	repo := seedRepo(t)

	res, err := repo.List(context.Background(), 0, 12, "price", "ASC")
	require.NoError(t, err)
	require.Len(t, res.Properties, 5)
	for i := 1; i < len(res.Properties); i++ {
		require.LessOrEqual(t, res.Properties[i-1].Price, res.Properties[i].Price)
	}
}

func TestMemoryRepositoryAddImage(t *testing.T) {
	repo := NewMemoryRepository()
	p, err := repo.Create(context.Background(), &Property{Title: "With photos"})
	require.NoError(t, err)

	require.NoError(t, repo.AddImage(context.Background(), p.ID, PropertyImage{Filename: "front.jpg", FileURL: "http://cdn/front.jpg"}))
	require.NoError(t, repo.AddImage(context.Background(), p.ID, PropertyImage{Filename: "back.jpg", FileURL: "http://cdn/back.jpg"}))

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	require.True(t, got.Images[0].IsPrimary)
	require.False(t, got.Images[1].IsPrimary)
}
