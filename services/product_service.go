package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Pelito1/PrimeMarket-back/cache"
	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/repository"
)

// Listing sizes.
const (
	TopProductsLimit   = 20
	DefaultFilterSize  = 50
	DefaultPageSize    = 52
	MaxProductPageSize = 200
)

// IProductService defines the interface for the product catalog.
type IProductService interface {
	FindTop(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Search(ctx context.Context, keyword string) ([]models.Product, error)
	Filter(ctx context.Context, minPrice, maxPrice decimal.Decimal, page, size int) (*models.ProductPage, error)
	FindPage(ctx context.Context, page, size int) (*models.ProductPage, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	// Update writes the catalog fields of a product; stock is not touched.
	Update(ctx context.Context, id uint, product *models.Product) (*models.Product, error)
	// AdjustStock adds delta to the product's stock, never going below zero.
	AdjustStock(ctx context.Context, id uint, delta int) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
	// UpdateWithCategory updates the product and makes categoryID its only category.
	UpdateWithCategory(ctx context.Context, id, categoryID uint, product *models.Product) (*models.Product, error)
	// DeleteWithLinks removes the product together with its category and season links.
	DeleteWithLinks(ctx context.Context, id uint) error
}

// ProductService implements IProductService.
type ProductService struct {
	products repository.IProductRepository
	uow      repository.IUnitOfWork
	cache    cache.IProductCache
	log      *zap.Logger
}

// NewProductService creates a new ProductService instance.
func NewProductService(products repository.IProductRepository, uow repository.IUnitOfWork, productCache cache.IProductCache, log *zap.Logger) IProductService {
	if productCache == nil {
		productCache = cache.NewNoopProductCache()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{products: products, uow: uow, cache: productCache, log: log.Named("products")}
}

func validateProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return invalid("product name is required")
	}
	if p.Price.IsNegative() {
		return invalid("product price cannot be negative")
	}
	if p.Stock < 0 {
		return invalid("product stock cannot be negative")
	}
	return nil
}

func validatePage(page, size int) error {
	if page < 1 {
		return invalid("page must be at least 1, got %d", page)
	}
	if size < 1 || size > MaxProductPageSize {
		return invalid("size must be between 1 and %d, got %d", MaxProductPageSize, size)
	}
	return nil
}

func (s *ProductService) FindTop(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.FindTop(ctx, TopProductsLimit)
	return products, failed("list products", err)
}

// FindByID reads through the product cache.
func (s *ProductService) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.cache.GetOrLoad(ctx, id, func(ctx context.Context) (*models.Product, error) {
		return s.products.FindByID(ctx, id)
	})
	if err != nil {
		return nil, failed("find product", err)
	}
	return product, nil
}

func (s *ProductService) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, invalid("search keyword cannot be empty")
	}
	products, err := s.products.Search(ctx, keyword)
	return products, failed("search products", err)
}

func (s *ProductService) Filter(ctx context.Context, minPrice, maxPrice decimal.Decimal, page, size int) (*models.ProductPage, error) {
	if err := validatePage(page, size); err != nil {
		return nil, err
	}
	if minPrice.IsNegative() || maxPrice.LessThan(minPrice) {
		return nil, invalid("price range [%s, %s] is not valid", minPrice, maxPrice)
	}

	products, err := s.products.FindByPriceRange(ctx, minPrice, maxPrice, page, size)
	if err != nil {
		return nil, failed("filter products", err)
	}
	total, err := s.products.CountByPriceRange(ctx, minPrice, maxPrice)
	if err != nil {
		return nil, failed("count products", err)
	}
	return &models.ProductPage{
		Products:      nonNil(products),
		TotalProducts: total,
		HasMore:       int64(page)*int64(size) < total,
	}, nil
}

func (s *ProductService) FindPage(ctx context.Context, page, size int) (*models.ProductPage, error) {
	if err := validatePage(page, size); err != nil {
		return nil, err
	}
	products, err := s.products.FindPage(ctx, page, size)
	if err != nil {
		return nil, failed("list products", err)
	}
	total, err := s.products.CountAll(ctx)
	if err != nil {
		return nil, failed("count products", err)
	}
	return &models.ProductPage{
		Products:      nonNil(products),
		TotalProducts: total,
		HasMore:       len(products) == size,
	}, nil
}

func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	p := *product
	p.ID = 0
	p.Brand = nil
	if err := validateProduct(&p); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return nil, failed("create product", err)
	}
	return &p, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, product *models.Product) (*models.Product, error) {
	p := *product
	p.ID = id
	p.Brand = nil
	if err := validateProduct(&p); err != nil {
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, id); err != nil {
		return nil, failed("find product", err)
	}
	if err := s.products.Update(ctx, &p); err != nil {
		return nil, failed("update product", err)
	}
	s.invalidate(ctx, id)
	return s.reload(ctx, id)
}

func (s *ProductService) AdjustStock(ctx context.Context, id uint, delta int) (*models.Product, error) {
	if err := s.products.AdjustStock(ctx, id, delta); err != nil {
		return nil, failed("adjust stock", err)
	}
	s.invalidate(ctx, id)
	return s.reload(ctx, id)
}

// reload reads the stored product, bypassing the cache.
func (s *ProductService) reload(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, failed("find product", err)
	}
	return p, nil
}

// Delete removes a product that no order line references.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if err := ensureProductUnordered(ctx, repos, id); err != nil {
			return err
		}
		return failed("delete product", repos.Products.Delete(ctx, id))
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func ensureProductUnordered(ctx context.Context, repos repository.Repositories, id uint) error {
	if _, err := repos.Products.FindByID(ctx, id); err != nil {
		return failed("find product", err)
	}
	n, err := repos.OrderDetails.CountByProduct(ctx, id)
	if err != nil {
		return failed("count order details", err)
	}
	if n > 0 {
		return fmt.Errorf("product %d: %w (%d order lines)", id, models.ErrReferencedByOrders, n)
	}
	return nil
}

func (s *ProductService) UpdateWithCategory(ctx context.Context, id, categoryID uint, product *models.Product) (*models.Product, error) {
	p := *product
	p.ID = id
	p.Brand = nil
	if err := validateProduct(&p); err != nil {
		return nil, err
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Products.FindByID(ctx, id); err != nil {
			return failed("find product", err)
		}
		if _, err := repos.Categories.FindByID(ctx, categoryID); err != nil {
			return failed("find category", err)
		}
		if err := repos.Products.Update(ctx, &p); err != nil {
			return failed("update product", err)
		}
		return failed("replace product category", repos.Products.ReplaceCategory(ctx, id, categoryID))
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return s.reload(ctx, id)
}

func (s *ProductService) DeleteWithLinks(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if err := ensureProductUnordered(ctx, repos, id); err != nil {
			return err
		}
		if err := repos.Products.DeleteLinks(ctx, id); err != nil {
			return failed("delete product links", err)
		}
		return failed("delete product", repos.Products.Delete(ctx, id))
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id uint) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn("failed to invalidate product cache", zap.Uint("product_id", id), zap.Error(err))
	}
}
