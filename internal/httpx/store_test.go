package httpx

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/webshop/order-api/internal/catalog"
	"github.com/webshop/order-api/internal/orders"
)

// memStore backs handler tests with the same contract the Postgres repos
// honor: placement is all-or-nothing and product deletes cascade to line
// items only.
type memStore struct {
	mu       sync.Mutex
	nextProd int64
	nextOrd  int64
	nextItem int64
	products map[int64]catalog.Product
	orders   map[int64]orders.Order
}

func newMemStore() *memStore {
	return &memStore{
		products: map[int64]catalog.Product{},
		orders:   map[int64]orders.Order{},
	}
}

func (s *memStore) Add(_ context.Context, in catalog.ProductInput) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Name == in.Name {
			return catalog.Product{}, catalog.ErrDuplicateName
		}
	}
	s.nextProd++
	p := catalog.Product{
		ID:          s.nextProd,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		InStock:     in.InStock,
	}
	s.products[p.ID] = p
	return p, nil
}

func (s *memStore) List(_ context.Context) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []catalog.Product{}
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) Get(_ context.Context, id int64) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (s *memStore) Update(_ context.Context, id int64, in catalog.ProductInput) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	p := catalog.Product{ID: id, Name: in.Name, Description: in.Description, Price: in.Price, InStock: in.InStock}
	s.products[id] = p
	return p, nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(s.products, id)
	// cascade: drop line items for this product, keep the orders
	for oid, o := range s.orders {
		kept := o.Items[:0:0]
		for _, it := range o.Items {
			if it.ProductID != id {
				kept = append(kept, it)
			}
		}
		o.Items = kept
		s.orders[oid] = o
	}
	return nil
}

func (s *memStore) Place(_ context.Context, items []orders.ItemInput, status orders.Status) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := map[int64]catalog.Product{}
	lineItems := []orders.OrderItem{}
	orderID := s.nextOrd + 1

	for _, it := range items {
		p, ok := s.findByName(it.Name, staged)
		if !ok {
			return 0, orders.ProductNotFoundError{Name: it.Name}
		}
		if p.InStock < it.Amount {
			return 0, orders.InsufficientStockError{Name: it.Name, Available: p.InStock}
		}
		p.InStock -= it.Amount
		staged[p.ID] = p
		lineItems = append(lineItems, orders.OrderItem{
			ID:        s.nextItem + int64(len(lineItems)) + 1,
			OrderID:   orderID,
			ProductID: p.ID,
			Amount:    it.Amount,
		})
	}

	// commit
	s.nextOrd = orderID
	s.nextItem += int64(len(lineItems))
	for id, p := range staged {
		s.products[id] = p
	}
	s.orders[orderID] = orders.Order{
		ID:      orderID,
		Created: time.Now().UTC(),
		Status:  status,
		Items:   lineItems,
	}
	return orderID, nil
}

func (s *memStore) findByName(name string, staged map[int64]catalog.Product) (catalog.Product, bool) {
	for _, p := range staged {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range s.products {
		if p.Name == name {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func (s *memStore) GetOrder(_ context.Context, id int64) (orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return orders.Order{}, orders.ErrOrderNotFound
	}
	return o, nil
}

func (s *memStore) ListOrders(_ context.Context) ([]orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []orders.Order{}
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) UpdateStatus(_ context.Context, id int64, status orders.Status) (orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return orders.Order{}, orders.ErrOrderNotFound
	}
	o.Status = status
	s.orders[id] = o
	return o, nil
}

// ordersView renames the order-side accessors so one memStore can satisfy
// both CatalogStore and OrderStore.
type ordersView struct{ *memStore }

func (v ordersView) Get(ctx context.Context, id int64) (orders.Order, error) {
	return v.GetOrder(ctx, id)
}

func (v ordersView) List(ctx context.Context) ([]orders.Order, error) {
	return v.ListOrders(ctx)
}
