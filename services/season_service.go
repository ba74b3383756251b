package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/repository"
)

// ISeasonService defines the interface for seasonal promotions.
type ISeasonService interface {
	FindActive(ctx context.Context) ([]models.Season, error)
	FindAll(ctx context.Context) ([]models.Season, error)
	FindByID(ctx context.Context, id uint) (*models.Season, error)
	Create(ctx context.Context, season *models.Season) (*models.Season, error)
	Update(ctx context.Context, id uint, season *models.Season) (*models.Season, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Season, error)
	Delete(ctx context.Context, id uint) error
	FindProducts(ctx context.Context, id uint) ([]models.Product, error)
	AddProduct(ctx context.Context, seasonID, productID uint) error
	RemoveProduct(ctx context.Context, seasonID, productID uint) error
}

// SeasonService implements ISeasonService.
type SeasonService struct {
	repos repository.Repositories
	uow   repository.IUnitOfWork
	log   *zap.Logger
	now   func() time.Time
}

// NewSeasonService creates a new SeasonService instance.
func NewSeasonService(repos repository.Repositories, uow repository.IUnitOfWork, log *zap.Logger) ISeasonService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SeasonService{repos: repos, uow: uow, log: log.Named("seasons"), now: time.Now}
}

func validateSeasonStatus(status string) error {
	if len(status) != 1 {
		return invalid("season status must be one character, got %q", status)
	}
	return nil
}

func validateSeason(s *models.Season) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return invalid("season name is required")
	}
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return invalid("season start and end dates are required")
	}
	if s.EndDate.Before(s.StartDate) {
		return invalid("season cannot end before it starts")
	}
	if s.Status == "" {
		s.Status = models.SeasonStatusActive
	}
	if err := validateSeasonStatus(s.Status); err != nil {
		return err
	}
	s.StartDate = s.StartDate.UTC()
	s.EndDate = s.EndDate.UTC()
	return nil
}

// FindActive lists enabled seasons that have not ended yet.
func (s *SeasonService) FindActive(ctx context.Context) ([]models.Season, error) {
	seasons, err := s.repos.Seasons.FindActive(ctx, s.now())
	return seasons, failed("list active seasons", err)
}

func (s *SeasonService) FindAll(ctx context.Context) ([]models.Season, error) {
	seasons, err := s.repos.Seasons.FindAll(ctx)
	return seasons, failed("list seasons", err)
}

func (s *SeasonService) FindByID(ctx context.Context, id uint) (*models.Season, error) {
	season, err := s.repos.Seasons.FindByID(ctx, id)
	if err != nil {
		return nil, failed("find season", err)
	}
	return season, nil
}

func (s *SeasonService) Create(ctx context.Context, season *models.Season) (*models.Season, error) {
	ss := *season
	ss.ID = 0
	if err := validateSeason(&ss); err != nil {
		return nil, err
	}
	if err := s.repos.Seasons.Create(ctx, &ss); err != nil {
		return nil, failed("create season", err)
	}
	return &ss, nil
}

func (s *SeasonService) Update(ctx context.Context, id uint, season *models.Season) (*models.Season, error) {
	ss := *season
	ss.ID = id
	if err := validateSeason(&ss); err != nil {
		return nil, err
	}
	if _, err := s.repos.Seasons.FindByID(ctx, id); err != nil {
		return nil, failed("find season", err)
	}
	if err := s.repos.Seasons.Update(ctx, &ss); err != nil {
		return nil, failed("update season", err)
	}
	return &ss, nil
}

func (s *SeasonService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Season, error) {
	status = strings.TrimSpace(status)
	if err := validateSeasonStatus(status); err != nil {
		return nil, err
	}
	season, err := s.repos.Seasons.FindByID(ctx, id)
	if err != nil {
		return nil, failed("find season", err)
	}
	if err := s.repos.Seasons.UpdateStatus(ctx, id, status); err != nil {
		return nil, failed("update season status", err)
	}
	season.Status = status
	return season, nil
}

func (s *SeasonService) Delete(ctx context.Context, id uint) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Seasons.FindByID(ctx, id); err != nil {
			return failed("find season", err)
		}
		return failed("delete season", repos.Seasons.Delete(ctx, id))
	})
}

func (s *SeasonService) FindProducts(ctx context.Context, id uint) ([]models.Product, error) {
	if _, err := s.repos.Seasons.FindByID(ctx, id); err != nil {
		return nil, failed("find season", err)
	}
	products, err := s.repos.Products.FindBySeason(ctx, id)
	return products, failed("list season products", err)
}

func (s *SeasonService) AddProduct(ctx context.Context, seasonID, productID uint) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Seasons.FindByID(ctx, seasonID); err != nil {
			return failed("find season", err)
		}
		if _, err := repos.Products.FindByID(ctx, productID); err != nil {
			return failed("find product", err)
		}
		return failed("add season product", repos.Seasons.AddProduct(ctx, seasonID, productID))
	})
}

func (s *SeasonService) RemoveProduct(ctx context.Context, seasonID, productID uint) error {
	if _, err := s.repos.Seasons.FindByID(ctx, seasonID); err != nil {
		return failed("find season", err)
	}
	return failed("remove season product", s.repos.Seasons.RemoveProduct(ctx, seasonID, productID))
}
