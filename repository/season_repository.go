package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Pelito1/PrimeMarket-back/models"
)

// ISeasonRepository defines the interface for season data operations.
type ISeasonRepository interface {
	FindActive(ctx context.Context, now time.Time) ([]models.Season, error)
	FindAll(ctx context.Context) ([]models.Season, error)
	FindByID(ctx context.Context, id uint) (*models.Season, error)
	Create(ctx context.Context, season *models.Season) error
	Update(ctx context.Context, season *models.Season) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	AddProduct(ctx context.Context, seasonID, productID uint) error
	RemoveProduct(ctx context.Context, seasonID, productID uint) error
}

// SeasonRepository implements ISeasonRepository for GORM.
type SeasonRepository struct {
	DB *gorm.DB
}

// NewSeasonRepository creates a new SeasonRepository instance.
func NewSeasonRepository(db *gorm.DB) ISeasonRepository {
	return &SeasonRepository{DB: db}
}

// FindActive returns enabled seasons that have not ended at now.
func (r *SeasonRepository) FindActive(ctx context.Context, now time.Time) ([]models.Season, error) {
	var seasons []models.Season
	err := r.DB.WithContext(ctx).
		Where("status = ? AND end_date >= ?", models.SeasonStatusActive, now.UTC()).
		Order("start_date, id").
		Find(&seasons).Error
	return seasons, err
}

func (r *SeasonRepository) FindAll(ctx context.Context) ([]models.Season, error) {
	var seasons []models.Season
	err := r.DB.WithContext(ctx).Order("id").Find(&seasons).Error
	return seasons, err
}

func (r *SeasonRepository) FindByID(ctx context.Context, id uint) (*models.Season, error) {
	var season models.Season
	if err := r.DB.WithContext(ctx).First(&season, id).Error; err != nil {
		return nil, translate(err, models.ErrSeasonNotFound)
	}
	return &season, nil
}

func (r *SeasonRepository) Create(ctx context.Context, season *models.Season) error {
	return r.DB.WithContext(ctx).Create(season).Error
}

func (r *SeasonRepository) Update(ctx context.Context, season *models.Season) error {
	return r.DB.WithContext(ctx).
		Model(&models.Season{ID: season.ID}).
		Select("name", "description", "start_date", "end_date", "image", "status").
		Updates(season).Error
}

func (r *SeasonRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Season{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *SeasonRepository) Delete(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("season_id = ?", id).Delete(&models.SeasonProduct{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Season{}, id).Error
}

func (r *SeasonRepository) AddProduct(ctx context.Context, seasonID, productID uint) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.SeasonProduct{SeasonID: seasonID, ProductID: productID}).Error
}

func (r *SeasonRepository) RemoveProduct(ctx context.Context, seasonID, productID uint) error {
	return r.DB.WithContext(ctx).
		Where("season_id = ? AND product_id = ?", seasonID, productID).
		Delete(&models.SeasonProduct{}).Error
}
