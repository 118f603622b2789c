package service

import (
	"context"
	"sort"
	"strings"

	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/internal/domain/repository"
)

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "all"

// CatalogService manages the per-session product catalog: one bulk fetch
// when the POS view activates, full replacement on refresh, and pure
// filtering over the cached list.
type CatalogService struct {
	gateway repository.UpstreamGateway
}

// NewCatalogService creates a new catalog service
func NewCatalogService(gateway repository.UpstreamGateway) *CatalogService {
	return &CatalogService{gateway: gateway}
}

// Load fetches the catalog and replaces the session's cached copy. On
// failure the previous catalog (if any) is left untouched and the error is
// returned; the caller decides between a degraded and a blocking state.
// There is no automatic retry — a retry is a user-initiated re-invocation.
func (s *CatalogService) Load(ctx context.Context, sess *Session) ([]entity.Product, error) {
	token := sess.Context().Token

	products, err := s.gateway.FetchProducts(ctx, token)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.catalog = products
	sess.loaded = true
	sess.mu.Unlock()

	return products, nil
}

// Loaded reports whether the session has ever had a successful catalog
// fetch. Cart additions are blocked until it has.
func (s *CatalogService) Loaded(sess *Session) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.loaded
}

// Filter applies the search text and category filter to the cached
// catalog. Pure over the current snapshot: case-insensitive substring
// match on the name, exact match on the category, with CategoryAll
// disabling the category filter.
func (s *CatalogService) Filter(sess *Session, search, category string) []entity.Product {
	sess.mu.Lock()
	snapshot := sess.catalog
	sess.mu.Unlock()

	search = strings.ToLower(strings.TrimSpace(search))
	category = strings.ToLower(strings.TrimSpace(category))

	out := make([]entity.Product, 0, len(snapshot))
	for _, p := range snapshot {
		if category != "" && category != CategoryAll && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CategoryCount is one entry of the category tab bar.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories returns the distinct categories of the cached catalog with
// product counts, plus the "all" sentinel first.
func (s *CatalogService) Categories(sess *Session) []CategoryCount {
	sess.mu.Lock()
	snapshot := sess.catalog
	sess.mu.Unlock()

	counts := make(map[string]int)
	for _, p := range snapshot {
		counts[strings.ToLower(p.Category)]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]CategoryCount, 0, len(names)+1)
	out = append(out, CategoryCount{Name: CategoryAll, Count: len(snapshot)})
	for _, name := range names {
		out = append(out, CategoryCount{Name: name, Count: counts[name]})
	}
	return out
}

// find returns the cached product with the given ID.
func (s *CatalogService) find(sess *Session, productID int64) (entity.Product, bool) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	for _, p := range sess.catalog {
		if p.ID == productID {
			return p, true
		}
	}
	return entity.Product{}, false
}
