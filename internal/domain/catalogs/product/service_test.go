package product

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/audit"
)

// --- fakes ---

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeRepo struct {
	items map[id.ID]*Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[id.ID]*Product)}
}

func (r *fakeRepo) Create(_ context.Context, p *Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, productID id.ID) (*Product, error) {
	p, ok := r.items[productID]
	if !ok {
		return nil, apperror.NewNotFound("products", productID)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, productID id.ID) (*Product, error) {
	return r.GetByID(ctx, productID)
}

func (r *fakeRepo) Update(_ context.Context, p *Product) error {
	cp := *p
	cp.Version++
	r.items[p.ID] = &cp
	p.Version = cp.Version
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, productID id.ID) error {
	delete(r.items, productID)
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	var items []*Product
	for _, p := range r.items {
		if filter.Search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			cp := *p
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return domain.ListResult[*Product]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *fakeRepo) ListInStock(ctx context.Context) ([]*Product, error) {
	res, _ := r.List(ctx, domain.ListFilter{})
	var out []*Product
	for _, p := range res.Items {
		if p.InStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) DecrementStock(_ context.Context, productID id.ID, qty int) error {
	p := r.items[productID]
	if p.StockQuantity < qty {
		return apperror.NewInsufficientStock(productID.String(), qty, p.StockQuantity)
	}
	p.StockQuantity -= qty
	return nil
}

type fakeSales struct {
	counts  map[id.ID]int64
	deleted map[id.ID]int64
}

func (s *fakeSales) CountByProduct(_ context.Context, productID id.ID) (int64, error) {
	return s.counts[productID], nil
}

func (s *fakeSales) DeleteByProduct(_ context.Context, productID id.ID) (int64, error) {
	n := s.counts[productID]
	s.deleted[productID] = n
	delete(s.counts, productID)
	return n, nil
}

type recorded struct {
	entityID id.ID
	action   audit.Action
	changes  map[string]audit.Change
}

type fakeAudit struct {
	entries []recorded
}

func (a *fakeAudit) Record(_ context.Context, _ string, entityID id.ID, action audit.Action, changes map[string]audit.Change) error {
	a.entries = append(a.entries, recorded{entityID: entityID, action: action, changes: changes})
	return nil
}

func (a *fakeAudit) History(_ context.Context, _ string, entityID id.ID, _ int) ([]audit.Entry, error) {
	var out []audit.Entry
	for i := len(a.entries) - 1; i >= 0; i-- {
		if a.entries[i].entityID == entityID {
			out = append(out, audit.Entry{EntityID: entityID, Action: a.entries[i].action})
		}
	}
	return out, nil
}

type fixture struct {
	svc   *Service
	repo  *fakeRepo
	sales *fakeSales
	audit *fakeAudit
	txm   *fakeTxManager
}

func newFixture(policy DeletePolicy) *fixture {
	f := &fixture{
		repo:  newFakeRepo(),
		sales: &fakeSales{counts: map[id.ID]int64{}, deleted: map[id.ID]int64{}},
		audit: &fakeAudit{},
		txm:   &fakeTxManager{},
	}
	f.svc = NewService(ServiceConfig{
		Repo:         f.repo,
		Sales:        f.sales,
		TxManager:    f.txm,
		Audit:        f.audit,
		DeletePolicy: policy,
	})
	return f
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- tests ---

func TestService_Create(t *testing.T) {
	f := newFixture(DeleteRestrict)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, Fields{Name: "Sugar", StockQuantity: 5, BuyingPrice: money("500"), SellingPrice: money("650")})
	require.NoError(t, err)

	stored, err := f.svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sugar", stored.Name)
	assert.Equal(t, 1, f.txm.calls)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, audit.ActionCreate, f.audit.entries[0].action)
	assert.Equal(t, audit.Change{Old: nil, New: "650.00"}, f.audit.entries[0].changes["selling_price"])
}

func TestService_Create_InvalidIsRejectedBeforeTransaction(t *testing.T) {
	f := newFixture(DeleteRestrict)

	_, err := f.svc.Create(context.Background(), Fields{Name: "", StockQuantity: 1})

	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
	assert.Equal(t, 0, f.txm.calls)
	assert.Empty(t, f.repo.items)
}

func TestService_GetByID_NotFound(t *testing.T) {
	f := newFixture(DeleteRestrict)
	missing := id.New()

	_, err := f.svc.GetByID(context.Background(), missing)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	assert.Equal(t, "product not found", appErr.Message)
}

func TestService_Update_RecordsPriceDiff(t *testing.T) {
	f := newFixture(DeleteRestrict)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, Fields{Name: "Oil", StockQuantity: 3, BuyingPrice: money("800"), SellingPrice: money("1000")})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, p.ID, Fields{Name: "Oil", StockQuantity: 3, BuyingPrice: money("800"), SellingPrice: money("1200")})
	require.NoError(t, err)
	assert.Equal(t, "1200.00", updated.SellingPrice.StringFixed(2))
	assert.Equal(t, 2, updated.Version)

	require.Len(t, f.audit.entries, 2)
	last := f.audit.entries[1]
	assert.Equal(t, audit.ActionUpdate, last.action)
	assert.Equal(t, map[string]audit.Change{"selling_price": {Old: "1000.00", New: "1200.00"}}, last.changes)
}

func TestService_Update_InvalidLeavesProductUnchanged(t *testing.T) {
	f := newFixture(DeleteRestrict)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, Fields{Name: "Oil", StockQuantity: 3})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, p.ID, Fields{Name: "Oil", StockQuantity: -4})
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	stored, _ := f.repo.GetByID(ctx, p.ID)
	assert.Equal(t, 3, stored.StockQuantity)
}

func TestService_Update_Missing(t *testing.T) {
	f := newFixture(DeleteRestrict)

	_, err := f.svc.Update(context.Background(), id.New(), Fields{Name: "X"})

	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Delete_RemovesFromListing(t *testing.T) {
	f := newFixture(DeleteRestrict)
	ctx := context.Background()
	keep, _ := f.svc.Create(ctx, Fields{Name: "Beans"})
	drop, _ := f.svc.Create(ctx, Fields{Name: "Flour"})

	deleted, err := f.svc.Delete(ctx, drop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flour", deleted.Name)

	res, err := f.svc.List(ctx, domain.DefaultListFilter())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, keep.ID, res.Items[0].ID)
	assert.Equal(t, audit.ActionDelete, f.audit.entries[len(f.audit.entries)-1].action)
}

func TestService_Delete_RestrictWithSales(t *testing.T) {
	f := newFixture(DeleteRestrict)
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, Fields{Name: "Milk"})
	f.sales.counts[p.ID] = 2

	_, err := f.svc.Delete(ctx, p.ID)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
	assert.Equal(t, int64(2), appErr.Details["sales"])
	assert.Contains(t, f.repo.items, p.ID)
}

func TestService_Delete_CascadeRemovesSales(t *testing.T) {
	f := newFixture(DeleteCascade)
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, Fields{Name: "Milk"})
	f.sales.counts[p.ID] = 2

	_, err := f.svc.Delete(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), f.sales.deleted[p.ID])
	assert.NotContains(t, f.repo.items, p.ID)
}

func TestService_ListInStock(t *testing.T) {
	f := newFixture(DeleteRestrict)
	ctx := context.Background()
	_, _ = f.svc.Create(ctx, Fields{Name: "Empty", StockQuantity: 0})
	_, _ = f.svc.Create(ctx, Fields{Name: "Full", StockQuantity: 7})

	items, err := f.svc.ListInStock(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Full", items[0].Name)
}

func TestService_History(t *testing.T) {
	f := newFixture(DeleteRestrict)
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, Fields{Name: "Tea", SellingPrice: money("100")})
	_, err := f.svc.Update(ctx, p.ID, Fields{Name: "Tea", SellingPrice: money("150")})
	require.NoError(t, err)

	entries, err := f.svc.History(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, audit.ActionUpdate, entries[0].Action)
	assert.Equal(t, audit.ActionCreate, entries[1].Action)
}

func TestParseDeletePolicy(t *testing.T) {
	p, err := ParseDeletePolicy("")
	require.NoError(t, err)
	assert.Equal(t, DeleteRestrict, p)

	p, err = ParseDeletePolicy("cascade")
	require.NoError(t, err)
	assert.Equal(t, DeleteCascade, p)

	_, err = ParseDeletePolicy("nullify")
	assert.Error(t, err)
}
