package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type memCatalog struct {
	products   map[string]entity.Product
	logs       []entity.ActionLog
	categories map[string]*entity.Category
	stores     map[string]*entity.Store
	users      map[string]*entity.User
	customers  map[string]*entity.Customer
	favorites  []entity.FavoriteProduct

	failLogCreate error
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		products:   map[string]entity.Product{},
		categories: map[string]*entity.Category{},
		stores:     map[string]*entity.Store{},
		users:      map[string]*entity.User{},
		customers:  map[string]*entity.Customer{},
	}
}

// RunCatalog ejecuta fn y, si falla, restaura productos y logs.
func (m *memCatalog) RunCatalog(ctx context.Context, fn func(products repository.ProductRepository, logs repository.ActionLogRepository) error) error {
	products := make(map[string]entity.Product, len(m.products))
	for k, v := range m.products {
		products[k] = v
	}
	logs := append([]entity.ActionLog(nil), m.logs...)
	favorites := append([]entity.FavoriteProduct(nil), m.favorites...)
	if err := fn(memProducts{m}, memLogs{m}); err != nil {
		m.products, m.logs, m.favorites = products, logs, favorites
		return err
	}
	return nil
}

type memProducts struct{ m *memCatalog }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.m.products[p.ID] = *p
	return nil
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	r.m.products[p.ID] = *p
	return nil
}

func (r memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProducts) ListByIDs(_ context.Context, ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.m.products[id]; ok {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r memProducts) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	for _, p := range r.m.products {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memProducts) ExistsByNameAndStore(_ context.Context, name, storeID, excludeID string) (bool, error) {
	for _, p := range r.m.products {
		if p.Name == name && p.StoreID == storeID && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memProducts) Search(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.m.products {
		p := p
		if f.OnlyAvailable && !p.Available {
			continue
		}
		if f.StoreID != "" && p.StoreID != f.StoreID {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch f.Sort {
		case repository.SortAvailableOldest, repository.SortAvailableNewest:
			if a.Available != b.Available {
				return a.Available
			}
			if f.Sort == repository.SortAvailableNewest {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
	total := len(out)
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			out = nil
		} else {
			out = out[f.Offset:]
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r memProducts) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.m.products[id]; ok {
			delete(r.m.products, id)
			n++
		}
	}
	kept := r.m.favorites[:0]
	for _, f := range r.m.favorites {
		if _, ok := r.m.products[f.ProductID]; ok {
			kept = append(kept, f)
		}
	}
	r.m.favorites = kept
	return n, nil
}

func (r memProducts) SetAvailability(_ context.Context, ids []string, available bool, at time.Time) (int64, error) {
	var n int64
	for _, id := range ids {
		if p, ok := r.m.products[id]; ok {
			p.Available = available
			p.UpdatedAt = at
			r.m.products[id] = p
			n++
		}
	}
	return n, nil
}

func (r memProducts) Stats(_ context.Context) (*repository.ProductStats, error) {
	st := &repository.ProductStats{}
	for _, p := range r.m.products {
		st.Total++
		if p.Available {
			st.Available++
		} else {
			st.Unavailable++
		}
	}
	return st, nil
}

type memLogs struct{ m *memCatalog }

func (r memLogs) Create(_ context.Context, l *entity.ActionLog) error {
	if r.m.failLogCreate != nil {
		return r.m.failLogCreate
	}
	r.m.logs = append(r.m.logs, *l)
	return nil
}

func (r memLogs) List(_ context.Context, limit, offset int) ([]*entity.ActionLog, int, error) {
	var out []*entity.ActionLog
	for i := len(r.m.logs) - 1; i >= 0; i-- {
		l := r.m.logs[i]
		out = append(out, &l)
	}
	total := len(out)
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

type memCategories struct{ m *memCatalog }

func (r memCategories) Create(_ context.Context, c *entity.Category) error {
	r.m.categories[c.ID] = c
	return nil
}

func (r memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	return r.m.categories[id], nil
}

func (r memCategories) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range r.m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r memCategories) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memCategories) SlugExists(ctx context.Context, slug string) (bool, error) {
	c, _ := r.GetBySlug(ctx, slug)
	return c != nil, nil
}

func (r memCategories) SearchByName(_ context.Context, q string, limit int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.m.categories {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(q)) {
			out = append(out, c)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memStores struct{ m *memCatalog }

func (r memStores) Create(_ context.Context, s *entity.Store) error {
	r.m.stores[s.ID] = s
	return nil
}

func (r memStores) GetByID(_ context.Context, id string) (*entity.Store, error) {
	s, ok := r.m.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r memStores) List(_ context.Context, f repository.StoreFilter) ([]*entity.Store, error) {
	var out []*entity.Store
	for _, s := range r.m.stores {
		if f.City != "" && s.City != f.City {
			continue
		}
		if f.OnlyActive && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Address < out[j].Address
	})
	return out, nil
}

func (r memStores) ListCities(_ context.Context) ([]string, error) {
	set := map[string]bool{}
	for _, s := range r.m.stores {
		if s.IsActive {
			set[s.City] = true
		}
	}
	var out []string
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (r memStores) SetWorkingHours(_ context.Context, storeID string, hours []entity.WorkingHours) error {
	r.m.stores[storeID].Hours = hours
	return nil
}

// memUsers solo implementa lo que usan los casos de uso de productos y favoritos.
type memUsers struct {
	repository.UserRepository
	m *memCatalog
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.m.users[id], nil
}

type memCustomers struct {
	repository.CustomerRepository
	m *memCatalog
}

func (r memCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.m.customers[id], nil
}

type memFavorites struct{ m *memCatalog }

func (r memFavorites) Add(_ context.Context, f *entity.FavoriteProduct) (bool, error) {
	for _, e := range r.m.favorites {
		if e.CustomerID == f.CustomerID && e.ProductID == f.ProductID {
			return false, nil
		}
	}
	r.m.favorites = append(r.m.favorites, *f)
	return true, nil
}

func (r memFavorites) Remove(_ context.Context, customerID, productID string) (bool, error) {
	for i, e := range r.m.favorites {
		if e.CustomerID == customerID && e.ProductID == productID {
			r.m.favorites = append(r.m.favorites[:i], r.m.favorites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r memFavorites) CountByCustomer(_ context.Context, customerID string) (int, error) {
	n := 0
	for _, e := range r.m.favorites {
		if e.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r memFavorites) ListProductIDs(_ context.Context, customerID string) ([]string, error) {
	out := []string{}
	for _, e := range r.m.favorites {
		if e.CustomerID == customerID {
			out = append(out, e.ProductID)
		}
	}
	return out, nil
}

func (r memFavorites) ListProducts(_ context.Context, customerID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for i := len(r.m.favorites) - 1; i >= 0; i-- {
		e := r.m.favorites[i]
		if e.CustomerID != customerID {
			continue
		}
		if p, ok := r.m.products[e.ProductID]; ok {
			out = append(out, &p)
		}
	}
	return out, nil
}

// memImages almacenamiento de imágenes en memoria.
type memImages struct {
	objects map[string][]byte
	deleted []string
}

func newMemImages() *memImages { return &memImages{objects: map[string][]byte{}} }

func (s *memImages) Save(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = b
	return nil
}

func (s *memImages) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memImages) URL(key string) string {
	if key == "" {
		return ""
	}
	return "/media/" + key
}
