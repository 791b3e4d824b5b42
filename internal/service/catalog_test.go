package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type stubSearcher struct {
	items []models.Product
	err   error
	calls int
}

func (s *stubSearcher) Search(ctx context.Context, text string, offset, limit int) (int64, []models.Product, error) {
	s.calls++
	if s.err != nil {
		return 0, nil, s.err
	}
	return int64(len(s.items)), s.items, nil
}

func newCatalogService(t *testing.T) (*CatalogService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return &CatalogService{Repo: newRepo(t), Publisher: pub}, pub
}

func TestProductLifecycle(t *testing.T) {
	svc, pub := newCatalogService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Kitchen"})
	require.NoError(t, err)

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Name:       "Mug",
		Price:      12.5,
		CategoryID: cat.ID,
		Stock:      3,
		Images:     []string{"https://img.example/mug.png"},
	})
	require.NoError(t, err)
	require.NotNil(t, prod.CategoryID)
	assert.Equal(t, cat.ID, *prod.CategoryID)

	stock := 9
	name := "Big mug"
	patched, err := svc.PatchProduct(ctx, prod.ID, transport.PatchProductRequest{Name: &name, Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, "Big mug", patched.Name)
	assert.Equal(t, 9, patched.Stock)
	assert.Equal(t, 12.5, patched.Price)

	got, err := svc.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example/mug.png"}, got.Images)

	require.NoError(t, svc.DeleteProduct(ctx, prod.ID))
	_, err = svc.GetProduct(ctx, prod.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.DeleteProduct(ctx, prod.ID), ErrNotFound)

	var types []string
	for _, e := range pub.Events() {
		assert.Equal(t, mykafka.TopicProducts, e.Topic)
		types = append(types, e.Event.(mykafka.ProductEvent).Type)
	}
	assert.Equal(t, []string{mykafka.ProductCreated, mykafka.ProductUpdated, mykafka.ProductDeleted}, types)
}

func TestPatchProduct_KeepsConcurrentStockAndRating(t *testing.T) {
	orders, _ := newOrderService(t)
	svc := &CatalogService{Repo: orders.Repo}
	reviews := &ReviewService{Repo: orders.Repo}
	ctx := context.Background()
	prod := seedProduct(t, orders.Repo, "Mug", 5)

	// copy read before the order reserved stock
	stale, err := orders.Repo.GetProduct(ctx, prod.ID)
	require.NoError(t, err)

	req := validOrderRequest()
	req.Items[0].ProductID = prod.ID
	order, err := orders.CreateOrder(ctx, req)
	require.NoError(t, err)
	for _, next := range []string{"processing", "shipped", "delivered"} {
		_, err = orders.UpdateStatus(ctx, order.ID, transport.UpdateOrderStatusRequest{OrderStatus: next})
		require.NoError(t, err)
	}
	_, err = reviews.CreateReview(ctx, Reviewer{UserID: "u1"}, transport.CreateReviewRequest{OrderID: order.ID, ProductID: prod.ID, Rating: 4})
	require.NoError(t, err)

	stale.Name = "Stale mug"
	require.NoError(t, orders.Repo.UpdateProduct(ctx, stale, "name"))

	got, err := orders.Repo.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stale mug", got.Name)
	assert.Equal(t, 3, got.Stock)
	assert.Equal(t, 1, got.NumReviews)
	assert.Equal(t, 4.0, got.Rating)

	name := "Big mug"
	patched, err := svc.PatchProduct(ctx, prod.ID, transport.PatchProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Big mug", patched.Name)
	assert.Equal(t, 3, patched.Stock)
	assert.Equal(t, 1, patched.NumReviews)

	_, err = svc.PatchProduct(ctx, models.NewID(), transport.PatchProductRequest{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProduct_Rejects(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Price: 1})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "A", Price: 1, Stock: -1})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "A", Price: 10, DiscountedPrice: f64(11)})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "A", Price: 10, CategoryID: models.NewID()})
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetProducts_Filters(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Garden"})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Hose", Price: 20, CategoryID: cat.ID, Featured: true})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Rake", Price: 15, CategoryID: cat.ID})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Pen", Price: 2})
	require.NoError(t, err)

	all, err := svc.GetProducts(ctx, ProductQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)

	garden, err := svc.GetProducts(ctx, ProductQuery{CategoryID: cat.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, garden.Total)

	featured := true
	top, err := svc.GetProducts(ctx, ProductQuery{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, top.Items, 1)
	assert.Equal(t, "Hose", top.Items[0].Name)

	require.NoError(t, svc.DeleteCategory(ctx, cat.ID))
	garden, err = svc.GetProducts(ctx, ProductQuery{CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Zero(t, garden.Total)
}

func TestSearchProducts(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Ceramic mug", Price: 9})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Tea pot", Description: "holds a mug of tea", Price: 30})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "Spoon", Price: 1})
	require.NoError(t, err)

	page, err := svc.SearchProducts(ctx, "MUG", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	idx := &stubSearcher{items: []models.Product{{ID: "from-index", Name: "Indexed"}}}
	svc.Searcher = idx
	page, err = svc.SearchProducts(ctx, "anything", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "from-index", page.Items[0].ID)

	idx.err = errors.New("index unavailable")
	page, err = svc.SearchProducts(ctx, "spoon", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Spoon", page.Items[0].Name)
	assert.Equal(t, 2, idx.calls)

	_, err = svc.SearchProducts(ctx, "  ", 1, 10)
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Books"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "books"})
	require.ErrorIs(t, err, ErrConflict)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)

	require.ErrorIs(t, svc.DeleteCategory(ctx, models.NewID()), ErrNotFound)
}
