package properties

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Repository is the server-side persistence interface for listings.
type Repository interface {
	Create(ctx context.Context, p *Property) (*Property, error)
	GetByID(ctx context.Context, id int64) (*Property, error)
	List(ctx context.Context, page, size int, sortBy, sortDirection string) (ListResult, error)
	Search(ctx context.Context, c SearchCriteria) (ListResult, error)
	AddImage(ctx context.Context, propertyID int64, img PropertyImage) error
}

// MemoryRepository is an in-memory Repository for tests and dev runs. It
// shares the filter pipeline with the client-side fallback so both produce
// identical result sets.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*Property
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[int64]*Property)}
}

func (r *MemoryRepository) Create(ctx context.Context, p *Property) (*Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	p.ID = r.nextID
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	cp := *p
	r.byID[p.ID] = &cp
	return p, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) List(ctx context.Context, page, size int, sortBy, sortDirection string) (ListResult, error) {
	all := r.snapshot(sortBy, sortDirection)
	return Paginate(all, page, size), nil
}

func (r *MemoryRepository) Search(ctx context.Context, c SearchCriteria) (ListResult, error) {
	all := r.snapshot(c.SortBy, c.SortDirection)
	filtered := FilterProperties(all, c)
	return Paginate(filtered, c.Page, c.Size), nil
}

func (r *MemoryRepository) AddImage(ctx context.Context, propertyID int64, img PropertyImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[propertyID]
	if !ok {
		return nil
	}
	img.ID = int64(len(p.Images) + 1)
	img.DisplayOrder = len(p.Images)
	img.IsPrimary = len(p.Images) == 0
	p.Images = append(p.Images, img)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// snapshot returns a sorted copy of all listings. Default order is newest
// first; price sorting is supported either direction.
func (r *MemoryRepository) snapshot(sortBy, sortDirection string) []Property {
	r.mu.RLock()
	all := make([]Property, 0, len(r.byID))
	for _, p := range r.byID {
		all = append(all, *p)
	}
	r.mu.RUnlock()

	asc := sortDirection == "ASC" || sortDirection == "asc"
	switch sortBy {
	case "price":
		sort.SliceStable(all, func(i, j int) bool {
			if asc {
				return all[i].Price < all[j].Price
			}
			return all[i].Price > all[j].Price
		})
	default:
		sort.SliceStable(all, func(i, j int) bool {
			if asc {
				return all[i].CreatedAt.Before(all[j].CreatedAt)
			}
			return all[i].CreatedAt.After(all[j].CreatedAt)
		})
	}
	return all
}
