package services

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/models"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/repository"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/token"
)

// fakeProductRepo keeps products in memory. Search ignores the filter's
// sort and paging beyond what the service under test needs.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
}

func (f *fakeProductRepo) Insert(_ context.Context, p *models.Product) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	cp := *p
	cp.ID = id
	f.products[id] = &cp
	return id, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.Status.IsDeleted {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) FindBySeller(_ context.Context, sellerID string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, p := range f.products {
		if p.Seller.SellerID == sellerID && !p.Status.IsDeleted {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProductRepo) Search(_ context.Context, fl repository.ProductFilter) ([]models.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Product
	for _, p := range f.products {
		if p.Status.IsDeleted || p.Status.Approval != models.ApprovalApproved {
			continue
		}
		all = append(all, *p)
	}
	_, limit, skip := fl.PageLimit()
	total := int64(len(all))
	if skip >= total {
		return nil, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

func (f *fakeProductRepo) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return 0, repository.ErrProductNotFound
	}
	if v, ok := fields["name"].(string); ok {
		p.Name = v
	}
	if v, ok := fields["brand"].(string); ok {
		p.Brand = v
	}
	if v, ok := fields["description"].(string); ok {
		p.Description = v
	}
	if v, ok := fields["pricing.basePrice"].(float64); ok {
		p.Pricing.BasePrice = v
	}
	if v, ok := fields["category.slug"].(string); ok {
		p.Category.Slug = v
	}
	return 1, nil
}

func (f *fakeProductRepo) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Status.IsDeleted = true
	p.Status.IsActive = false
	return nil
}

func (f *fakeProductRepo) IncrementMetric(_ context.Context, id primitive.ObjectID, metric string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	switch metric {
	case repository.MetricViews:
		p.Analytics.Views++
	case repository.MetricSales:
		p.Analytics.SalesCount++
	case repository.MetricWishlist:
		p.Analytics.WishlistCount++
	}
	return nil
}

func newTestProductService(t *testing.T) (*ProductService, *fakeProductRepo, *fakeClock) {
	t.Helper()
	repo := newFakeProductRepo()
	clk := newFakeClock()
	return NewProductService(repo, clk, zap.NewNop().Sugar()), repo, clk
}

func sellerClaims(id string) *token.Claims {
	return &token.Claims{ID: id, Email: id + "@x.com", Role: models.RoleSeller}
}

func TestAddProduct(t *testing.T) {
	svc, repo, clk := newTestProductService(t)
	ctx := context.Background()

	id, err := svc.Add(ctx, sellerClaims("s1"), AddProductInput{
		Name:      "Fancy Lamp",
		Brand:     "Lumen",
		BasePrice: 49.5,
	})
	require.NoError(t, err)

	oid, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)
	p, err := repo.FindByID(ctx, oid)
	require.NoError(t, err)
	assert.Equal(t, "s1", p.Seller.SellerID)
	assert.Equal(t, models.ApprovalApproved, p.Status.Approval)
	assert.True(t, p.Status.IsActive)
	assert.False(t, p.Status.IsDeleted)
	assert.Equal(t, clk.Now(), p.CreatedAt)
	assert.Regexp(t, `^fancy-lamp-\d+$`, p.Slug)
}

func TestAddProductForbiddenForCustomer(t *testing.T) {
	svc, _, _ := newTestProductService(t)

	_, err := svc.Add(context.Background(), &token.Claims{ID: "c1", Role: models.RoleCustomer}, AddProductInput{Name: "x"})
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.NotEmpty(t, forbidden.Reason)
}

func TestUpdateProductOwnership(t *testing.T) {
	svc, _, _ := newTestProductService(t)
	ctx := context.Background()

	id, err := svc.Add(ctx, sellerClaims("s1"), AddProductInput{Name: "Lamp", BasePrice: 10})
	require.NoError(t, err)

	// another seller may not touch it
	err = svc.Update(ctx, sellerClaims("s2"), id, UpdateProductInput{Name: "Stolen"})
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)

	// the owner and an admin may
	require.NoError(t, svc.Update(ctx, sellerClaims("s1"), id, UpdateProductInput{Name: "Better Lamp"}))
	admin := &token.Claims{ID: "a1", Role: models.RoleAdmin}
	require.NoError(t, svc.Update(ctx, admin, id, UpdateProductInput{Brand: "Lumen"}))

	p, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Better Lamp", p.Name)
	assert.Equal(t, "Lumen", p.Brand)
}

func TestUpdateProductNoFields(t *testing.T) {
	svc, _, _ := newTestProductService(t)
	ctx := context.Background()

	id, err := svc.Add(ctx, sellerClaims("s1"), AddProductInput{Name: "Lamp"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Update(ctx, sellerClaims("s1"), id, UpdateProductInput{}), ErrNoChanges)
}

func TestDeleteProductIsSoft(t *testing.T) {
	svc, repo, _ := newTestProductService(t)
	ctx := context.Background()

	id, err := svc.Add(ctx, sellerClaims("s1"), AddProductInput{Name: "Lamp"})
	require.NoError(t, err)
	oid, _ := primitive.ObjectIDFromHex(id)

	require.NoError(t, svc.Delete(ctx, sellerClaims("s1"), id))

	// the document is retained but hidden
	repo.mu.Lock()
	stored := repo.products[oid]
	repo.mu.Unlock()
	require.NotNil(t, stored)
	assert.True(t, stored.Status.IsDeleted)
	assert.False(t, stored.Status.IsActive)

	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// deleting again reports not found
	assert.ErrorIs(t, svc.Delete(ctx, sellerClaims("s1"), id), ErrProductNotFound)
}

func TestDeleteProductForbidden(t *testing.T) {
	svc, _, _ := newTestProductService(t)
	ctx := context.Background()

	id, err := svc.Add(ctx, sellerClaims("s1"), AddProductInput{Name: "Lamp"})
	require.NoError(t, err)

	err = svc.Delete(ctx, sellerClaims("s2"), id)
	var forbidden *ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestGetProductErrors(t *testing.T) {
	svc, _, _ := newTestProductService(t)

	_, err := svc.Get(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListPaging(t *testing.T) {
	svc, _, _ := newTestProductService(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.Add(ctx, sellerClaims("s1"), AddProductInput{Name: "Lamp", BasePrice: float64(i)})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, repository.ProductFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(7), page.TotalProducts)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Equal(t, int64(2), page.CurrentPage)
	assert.Equal(t, 3, page.Count)
}

func TestBumpMetric(t *testing.T) {
	svc, repo, _ := newTestProductService(t)
	ctx := context.Background()

	id, err := svc.Add(ctx, sellerClaims("s1"), AddProductInput{Name: "Lamp"})
	require.NoError(t, err)
	oid, _ := primitive.ObjectIDFromHex(id)

	require.NoError(t, svc.BumpMetric(ctx, id, repository.MetricViews))
	require.NoError(t, svc.BumpMetric(ctx, id, repository.MetricViews))
	require.NoError(t, svc.BumpMetric(ctx, id, repository.MetricWishlist))

	p, err := repo.FindByID(ctx, oid)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Analytics.Views)
	assert.Equal(t, int64(1), p.Analytics.WishlistCount)
	assert.Equal(t, int64(0), p.Analytics.SalesCount)
}

func TestBumpMetricRejectsUnknownName(t *testing.T) {
	svc, _, _ := newTestProductService(t)
	ctx := context.Background()

	id, err := svc.Add(ctx, sellerClaims("s1"), AddProductInput{Name: "Lamp"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.BumpMetric(ctx, id, "clicks"), ErrValidation)
	assert.ErrorIs(t, svc.BumpMetric(ctx, "garbage", repository.MetricViews), ErrInvalidID)
}
