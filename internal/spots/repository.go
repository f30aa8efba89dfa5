package spots

import (
	"context"
	"errors"
	"fmt"

	"spotly/internal/shared/apperrors"
	"spotly/internal/shared/database/dberrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// CreateWithSlots inserts the spot and all of its slots in one transaction
	CreateWithSlots(ctx context.Context, spot *Spot) error

	GetByName(ctx context.Context, name string) (*Spot, error)
	GetRefByName(ctx context.Context, name string) (*SpotRef, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithSlots(ctx context.Context, spot *Spot) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&Spot{}).Where("name = ?", spot.Name).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check spot name: %w", err)
		}
		if existing > 0 {
			return apperrors.ErrNameConflict
		}

		if err := tx.Omit(clause.Associations).Create(spot).Error; err != nil {
			return err
		}
		if err := tx.Create(&spot.Slots).Error; err != nil {
			return err
		}
		return nil
	})

	// A concurrent creator may win between the check and the insert
	if dberrors.IsUniqueViolation(err) && r.nameTaken(ctx, spot.Name) {
		return apperrors.ErrNameConflict
	}
	return err
}

func (r *repository) nameTaken(ctx context.Context, name string) bool {
	var count int64
	err := r.db.WithContext(ctx).Model(&Spot{}).Where("name = ?", name).Count(&count).Error
	return err == nil && count > 0
}

func (r *repository) GetByName(ctx context.Context, name string) (*Spot, error) {
	var spot Spot
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("name = ?", name).
		First(&spot).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &spot, nil
}

func (r *repository) GetRefByName(ctx context.Context, name string) (*SpotRef, error) {
	var ref SpotRef
	err := r.db.WithContext(ctx).
		Model(&Spot{}).
		Select("id, name").
		Where("name = ?", name).
		Take(&ref).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &ref, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrSpotNotFound
	}
	return err
}
