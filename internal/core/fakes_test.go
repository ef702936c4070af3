package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"groupbuy-backend-go/internal/db"
	"groupbuy-backend-go/internal/events"
	"groupbuy-backend-go/internal/models"
)

// In-memory test doubles for the repository, cache and publisher interfaces.

type fakeProductRepo struct {
	products map[string]*models.Product
	err      error
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(ctx context.Context, product *models.Product) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if product.ID == "" {
		product.ID = fmt.Sprintf("prod-%d", len(r.products)+1)
	}
	r.products[product.ID] = product
	return product.ID, nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, productID string) (*models.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[productID]
	if !ok {
		return nil, fmt.Errorf("product '%s': %w", productID, db.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListPublished(ctx context.Context) ([]*models.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.Product
	for _, p := range r.products {
		if p.IsPublished {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishAt.After(out[j].PublishAt) })
	return out, nil
}

func (r *fakeProductRepo) ListAll(ctx context.Context) ([]*models.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *models.Product) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.products[product.ID]; !ok {
		return db.ErrNotFound
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, productID string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.products[productID]; !ok {
		return db.ErrNotFound
	}
	delete(r.products, productID)
	return nil
}

func (r *fakeProductRepo) RequestEncore(ctx context.Context, productID, userID string) error {
	if r.err != nil {
		return r.err
	}
	p, ok := r.products[productID]
	if !ok {
		return db.ErrNotFound
	}
	for _, id := range p.RequesterIDs {
		if id == userID {
			return db.ErrAlreadyRequested
		}
	}
	p.RequesterIDs = append(p.RequesterIDs, userID)
	p.EncoreCount++
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
	err   error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return db.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) SetRestricted(ctx context.Context, userID string, restricted bool) error {
	u, ok := r.users[userID]
	if !ok {
		return db.ErrNotFound
	}
	u.IsRestricted = restricted
	return nil
}

func (r *fakeUserRepo) SetRole(ctx context.Context, userID string, role models.UserRole) error {
	u, ok := r.users[userID]
	if !ok {
		return db.ErrNotFound
	}
	u.Role = role
	return nil
}

// fakeOrderRepo mirrors the transactional guarantees of the Firestore
// implementation: stock checks and decrements happen with the order write,
// and a cancellation bumps the owner's no-show counter exactly once.
type fakeOrderRepo struct {
	orders      map[string]*models.Order
	productRepo *fakeProductRepo
	userRepo    *fakeUserRepo
	nextID      int
	err         error
}

func newFakeOrderRepo(pr *fakeProductRepo, ur *fakeUserRepo, orders ...*models.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{
		orders:      make(map[string]*models.Order),
		productRepo: pr,
		userRepo:    ur,
	}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (r *fakeOrderRepo) CreateWithStockReservation(ctx context.Context, order *models.Order, reservations []db.StockReservation) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	for _, res := range reservations {
		p, ok := r.productRepo.products[res.ProductID]
		if !ok {
			return "", db.ErrNotFound
		}
		if p.Stock != models.UnlimitedStock && p.Stock < res.Quantity {
			return "", fmt.Errorf("product '%s': %w", res.ProductID, db.ErrInsufficientStock)
		}
	}
	for _, res := range reservations {
		p := r.productRepo.products[res.ProductID]
		if p.Stock != models.UnlimitedStock {
			p.Stock -= res.Quantity
		}
	}
	r.nextID++
	id := fmt.Sprintf("order-%d", r.nextID)
	cp := *order
	cp.ID = id
	r.orders[id] = &cp
	return id, nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (r *fakeOrderRepo) ListRecent(ctx context.Context, limit int) ([]*models.Order, error) {
	out, _ := r.ListAll(ctx)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeOrderRepo) SearchByPhoneLast4(ctx context.Context, last4 string) ([]*models.Order, error) {
	all, _ := r.ListAll(ctx)
	var out []*models.Order
	for _, o := range all {
		if strings.HasSuffix(o.CustomerPhoneLast4, last4) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) TransitionStatus(ctx context.Context, orderID string, newStatus models.OrderStatus, validate func(current models.OrderStatus) error) (models.OrderStatus, error) {
	if r.err != nil {
		return "", r.err
	}
	o, ok := r.orders[orderID]
	if !ok {
		return "", db.ErrNotFound
	}
	previous := o.Status
	if err := validate(previous); err != nil {
		return "", err
	}
	o.Status = newStatus
	if newStatus == models.OrderStatusCancelled && previous != models.OrderStatusCancelled && o.UserID != "" {
		if u, ok := r.userRepo.users[o.UserID]; ok {
			u.NoShowCount++
		}
	}
	return previous, nil
}

// memCache is an in-memory cache.Cache for cart persistence tests.
type memCache struct {
	data   map[string]string
	setErr error
	getErr error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (m *memCache) Get(key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.data[key], nil
}

func (m *memCache) Set(key string, value interface{}, expiration time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	s, ok := value.(string)
	if !ok {
		return errors.New("memCache expects string values")
	}
	m.data[key] = s
	return nil
}

func (m *memCache) Delete(key string) error {
	delete(m.data, key)
	return nil
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	events []events.OrderEvent
	err    error
}

func (p *capturePublisher) Publish(event events.OrderEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Close() error { return nil }
