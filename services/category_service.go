package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/repository"
)

// ICategoryService defines the interface for the category tree.
type ICategoryService interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindParents(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	FindSubcategories(ctx context.Context, id uint) ([]models.Category, error)
	FindProducts(ctx context.Context, id uint) ([]models.Product, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, id uint, category *models.Category) (*models.Category, error)
	// Delete removes a category, handing its products and subcategories to
	// its parent. A top-level category that still has products is refused.
	Delete(ctx context.Context, id uint) error
	LinkProduct(ctx context.Context, categoryID, productID uint) error
	UnlinkProduct(ctx context.Context, categoryID, productID uint) error
}

// CategoryService implements ICategoryService.
type CategoryService struct {
	repos repository.Repositories
	uow   repository.IUnitOfWork
	log   *zap.Logger
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(repos repository.Repositories, uow repository.IUnitOfWork, log *zap.Logger) ICategoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CategoryService{repos: repos, uow: uow, log: log.Named("categories")}
}

func (s *CategoryService) FindAll(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repos.Categories.FindAll(ctx)
	return categories, failed("list categories", err)
}

func (s *CategoryService) FindParents(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repos.Categories.FindTopLevel(ctx)
	return categories, failed("list parent categories", err)
}

func (s *CategoryService) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repos.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, failed("find category", err)
	}
	return category, nil
}

func (s *CategoryService) FindSubcategories(ctx context.Context, id uint) ([]models.Category, error) {
	if _, err := s.repos.Categories.FindByID(ctx, id); err != nil {
		return nil, failed("find category", err)
	}
	categories, err := s.repos.Categories.FindSubcategories(ctx, id)
	return categories, failed("list subcategories", err)
}

func (s *CategoryService) FindProducts(ctx context.Context, id uint) ([]models.Product, error) {
	if _, err := s.repos.Categories.FindByID(ctx, id); err != nil {
		return nil, failed("find category", err)
	}
	products, err := s.repos.Products.FindByCategory(ctx, id)
	return products, failed("list category products", err)
}

func (s *CategoryService) checkParent(ctx context.Context, categories repository.ICategoryRepository, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if _, err := categories.FindByID(ctx, *parentID); err != nil {
		return failed("find parent category", err)
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	c := models.Category{Name: strings.TrimSpace(category.Name), ParentCategoryID: category.ParentCategoryID}
	if c.Name == "" {
		return nil, invalid("category name is required")
	}
	if err := s.checkParent(ctx, s.repos.Categories, c.ParentCategoryID); err != nil {
		return nil, err
	}
	if err := s.repos.Categories.Create(ctx, &c); err != nil {
		return nil, failed("create category", err)
	}
	return &c, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, category *models.Category) (*models.Category, error) {
	c := models.Category{ID: id, Name: strings.TrimSpace(category.Name), ParentCategoryID: category.ParentCategoryID}
	if c.Name == "" {
		return nil, invalid("category name is required")
	}
	if c.ParentCategoryID != nil && *c.ParentCategoryID == id {
		return nil, invalid("category %d cannot be its own parent", id)
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Categories.FindByID(ctx, id); err != nil {
			return failed("find category", err)
		}
		if err := s.checkParent(ctx, repos.Categories, c.ParentCategoryID); err != nil {
			return err
		}
		return failed("update category", repos.Categories.Update(ctx, &c))
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		category, err := repos.Categories.FindByID(ctx, id)
		if err != nil {
			return failed("find category", err)
		}
		productIDs, err := repos.Categories.ProductIDs(ctx, id)
		if err != nil {
			return failed("list category products", err)
		}

		if category.IsTopLevel() {
			if len(productIDs) > 0 {
				return fmt.Errorf("%w: category %d has %d product(s)", models.ErrCategoryHasProducts, id, len(productIDs))
			}
		} else {
			if err := repos.Categories.LinkProducts(ctx, *category.ParentCategoryID, productIDs...); err != nil {
				return failed("move products to parent category", err)
			}
			if err := repos.Categories.UnlinkAllProducts(ctx, id); err != nil {
				return failed("unlink category products", err)
			}
		}

		// A nil parent turns the subcategories into top-level categories.
		if err := repos.Categories.Reparent(ctx, id, category.ParentCategoryID); err != nil {
			return failed("reparent subcategories", err)
		}
		return failed("delete category", repos.Categories.Delete(ctx, id))
	})
	if err != nil {
		return err
	}
	s.log.Info("category deleted", zap.Uint("category_id", id))
	return nil
}

func (s *CategoryService) LinkProduct(ctx context.Context, categoryID, productID uint) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Categories.FindByID(ctx, categoryID); err != nil {
			return failed("find category", err)
		}
		if _, err := repos.Products.FindByID(ctx, productID); err != nil {
			return failed("find product", err)
		}
		return failed("link product", repos.Categories.LinkProducts(ctx, categoryID, productID))
	})
}

func (s *CategoryService) UnlinkProduct(ctx context.Context, categoryID, productID uint) error {
	if _, err := s.repos.Categories.FindByID(ctx, categoryID); err != nil {
		return failed("find category", err)
	}
	return failed("unlink product", s.repos.Categories.UnlinkProduct(ctx, categoryID, productID))
}
