package services

import (
	"context"
	"sync"

	"github.com/avolkov/finsync/internal/client/api"
	"github.com/avolkov/finsync/internal/client/models"
	"github.com/avolkov/finsync/internal/client/repositories/categories"
	"github.com/avolkov/finsync/internal/client/state"
	"github.com/avolkov/finsync/internal/logging"
)

// CategoriesSnapshot is the published category reference set.
type CategoriesSnapshot struct {
	Items   []models.Category
	Loading bool
	Offline bool
	Err     error
}

// CategoryService keeps the category reference set warm. Categories are
// immutable from the client's perspective, so the service only refreshes
// wholesale and answers pure lookups over the published snapshot.
type CategoryService struct {
	mu    sync.Mutex
	api   api.CategoryAPI
	store categories.Repository
	log   logging.Logger
	state *state.Value[CategoriesSnapshot]
}

func NewCategoryService(apiClient api.CategoryAPI, store categories.Repository, log logging.Logger) *CategoryService {
	return &CategoryService{
		api:   apiClient,
		store: store,
		log:   log,
		state: state.NewValue(CategoriesSnapshot{}),
	}
}

// State exposes the published snapshot container.
func (s *CategoryService) State() *state.Value[CategoriesSnapshot] {
	return s.state
}

// FetchAll refreshes the category set from the remote and stores it; when
// the remote fails the last stored set is served instead.
func (s *CategoryService) FetchAll(ctx context.Context) []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	cats, err := s.api.FetchCategories(ctx)
	if err != nil {
		s.log.Warn(ctx, "category fetch failed, serving local data", "err", err)
		local, serr := s.store.FetchAll(ctx)
		if serr != nil {
			s.log.Error(ctx, "local category fetch failed", "err", serr)
			local = s.state.Get().Items
		}
		s.publish(local, true, err)
		return local
	}

	if serr := s.store.Replace(ctx, cats); serr != nil {
		s.log.Error(ctx, "storing fetched categories failed", "err", serr)
		s.publish(cats, false, nil)
		return cats
	}
	items, serr := s.store.FetchAll(ctx)
	if serr != nil {
		s.log.Error(ctx, "reading back stored categories failed", "err", serr)
		items = cats
	}
	s.publish(items, false, nil)
	return items
}

// ByDirection filters the published set by income/outcome.
func (s *CategoryService) ByDirection(d models.Direction) []models.Category {
	var out []models.Category
	for _, c := range s.state.Get().Items {
		if c.Direction() == d {
			out = append(out, c)
		}
	}
	return out
}

// ByID returns the published category with the given id, or nil.
func (s *CategoryService) ByID(id int64) *models.Category {
	for _, c := range s.state.Get().Items {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

func (s *CategoryService) setLoading(v bool) {
	snap := s.state.Get()
	snap.Loading = v
	s.state.Set(snap)
}

func (s *CategoryService) publish(items []models.Category, offline bool, err error) {
	snap := s.state.Get()
	snap.Items = items
	snap.Offline = offline
	snap.Err = err
	s.state.Set(snap)
}
