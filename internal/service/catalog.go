package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

// ProductSearcher is a full-text product index.
type ProductSearcher interface {
	Search(ctx context.Context, text string, offset, limit int) (int64, []models.Product, error)
}

type CatalogService struct {
	Repo      *repo.GormRepo
	Publisher EventPublisher
	Searcher  ProductSearcher
}

type ProductQuery struct {
	Page       int
	Size       int
	CategoryID string
	Featured   *bool
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	id = models.NormalizeID(id)
	if !models.IsID(id) {
		return nil, fmt.Errorf("%w: invalid product id", ErrValidation)
	}
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return prod, err
}

func (s *CatalogService) GetProducts(ctx context.Context, q ProductQuery) (*transport.ProductPage, error) {
	page, offset, limit := util.Calculate(q.Page, q.Size)
	f := repo.ProductFilter{
		CategoryID: models.NormalizeID(q.CategoryID),
		Featured:   q.Featured,
	}

	total, items, err := s.Repo.GetProducts(ctx, f, offset, limit)
	if err != nil {
		return nil, err
	}
	return &transport.ProductPage{Items: items, Page: page, Pages: util.Pages(total, limit), Total: total}, nil
}

// SearchProducts queries the search index and falls back to the database
// when the index is not configured or unavailable.
func (s *CatalogService) SearchProducts(ctx context.Context, text string, page, size int) (*transport.ProductPage, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.search")

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: q is required", ErrValidation)
	}
	page, offset, limit := util.Calculate(page, size)

	if s.Searcher != nil {
		total, items, err := s.Searcher.Search(ctx, text, offset, limit)
		if err == nil {
			return &transport.ProductPage{Items: items, Page: page, Pages: util.Pages(total, limit), Total: total}, nil
		}
		l.Warn("search_index_failed", "reason", "falling back to database", "error", err)
	}

	total, items, err := s.Repo.SearchProducts(ctx, text, offset, limit)
	if err != nil {
		return nil, err
	}
	return &transport.ProductPage{Items: items, Page: page, Pages: util.Pages(total, limit), Total: total}, nil
}

func (s *CatalogService) checkCategory(ctx context.Context, id string) (*string, error) {
	id = models.NormalizeID(id)
	if id == "" {
		return nil, nil
	}
	if !models.IsID(id) {
		return nil, fmt.Errorf("%w: invalid categoryId", ErrValidation)
	}
	if _, err := s.Repo.GetCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %s does not exist", ErrValidation, id)
		}
		return nil, err
	}
	return &id, nil
}

func checkDiscount(price float64, discounted *float64) error {
	if discounted != nil && *discounted > price {
		return fmt.Errorf("%w: discountedPrice must not exceed price", ErrValidation)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if err := checkDiscount(req.Price, req.DiscountedPrice); err != nil {
		return nil, err
	}
	categoryID, err := s.checkCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}
	prod := &models.Product{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		Images:          images,
		CategoryID:      categoryID,
		Brand:           strings.TrimSpace(req.Brand),
		Stock:           req.Stock,
		Featured:        req.Featured,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, err
	}

	publish(ctx, s.Publisher, mykafka.TopicProducts, prod.ID, mykafka.ProductEvent{
		Type:      mykafka.ProductCreated,
		ProductID: prod.ID,
		Product:   prod,
	})
	return prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id string, req transport.PatchProductRequest) (*models.Product, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	prod, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	var cols []string
	if req.Name != nil {
		prod.Name = strings.TrimSpace(*req.Name)
		cols = append(cols, "name")
	}
	if req.Description != nil {
		prod.Description = *req.Description
		cols = append(cols, "description")
	}
	if req.Price != nil {
		prod.Price = *req.Price
		cols = append(cols, "price")
	}
	if req.DiscountedPrice != nil {
		prod.DiscountedPrice = req.DiscountedPrice
		cols = append(cols, "discounted_price")
	}
	if req.Images != nil {
		prod.Images = *req.Images
		cols = append(cols, "images")
	}
	if req.CategoryID != nil {
		if prod.CategoryID, err = s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		cols = append(cols, "category_id")
	}
	if req.Brand != nil {
		prod.Brand = strings.TrimSpace(*req.Brand)
		cols = append(cols, "brand")
	}
	if req.Stock != nil {
		prod.Stock = *req.Stock
		cols = append(cols, "stock")
	}
	if req.Featured != nil {
		prod.Featured = *req.Featured
		cols = append(cols, "featured")
	}
	if err := checkDiscount(prod.Price, prod.DiscountedPrice); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateProduct(ctx, prod, cols...); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, prod.ID)
		}
		return nil, err
	}
	if prod, err = s.GetProduct(ctx, prod.ID); err != nil {
		return nil, err
	}

	publish(ctx, s.Publisher, mykafka.TopicProducts, prod.ID, mykafka.ProductEvent{
		Type:      mykafka.ProductUpdated,
		ProductID: prod.ID,
		Product:   prod,
	})
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	id = models.NormalizeID(id)
	if !models.IsID(id) {
		return fmt.Errorf("%w: invalid product id", ErrValidation)
	}
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return err
	}

	publish(ctx, s.Publisher, mykafka.TopicProducts, id, mykafka.ProductEvent{
		Type:      mykafka.ProductDeleted,
		ProductID: id,
	})
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)

	taken, err := s.Repo.CategoryNameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, name)
	}

	c := &models.Category{Name: name, Description: strings.TrimSpace(req.Description)}
	if err := s.Repo.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, name)
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	id = models.NormalizeID(id)
	if !models.IsID(id) {
		return fmt.Errorf("%w: invalid category id", ErrValidation)
	}
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}
