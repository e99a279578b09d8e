package repository

import (
	"context"

	"github.com/Bojom/Warehouse/internal/model"

	"gorm.io/gorm"
)

// Lookup is satisfied by the flat name/code dimension tables.
type Lookup interface {
	model.Brand | model.PartType | model.Colour
}

// LookupRepository defines CRUD operations shared by brands, part types and colours.
type LookupRepository[T Lookup] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, row *T) error
	CreateMany(ctx context.Context, rows []T) error
	Update(ctx context.Context, row *T) error
	Delete(ctx context.Context, id int64) error
}

type lookupRepo[T Lookup] struct{ db *gorm.DB }

func NewBrandRepository(db *gorm.DB) LookupRepository[model.Brand] {
	return &lookupRepo[model.Brand]{db: db}
}

func NewPartTypeRepository(db *gorm.DB) LookupRepository[model.PartType] {
	return &lookupRepo[model.PartType]{db: db}
}

func NewColourRepository(db *gorm.DB) LookupRepository[model.Colour] {
	return &lookupRepo[model.Colour]{db: db}
}

func (r *lookupRepo[T]) List(ctx context.Context) ([]T, error) {
	var list []T
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *lookupRepo[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *lookupRepo[T]) Create(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// CreateMany inserts rows in one statement and writes the generated ids back.
func (r *lookupRepo[T]) CreateMany(ctx context.Context, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// Update writes name and code only.
func (r *lookupRepo[T]) Update(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Model(row).Select("name", "code").Updates(row).Error
}

func (r *lookupRepo[T]) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, new(T), id)
}

// deleteByID removes one row and reports gorm.ErrRecordNotFound when nothing matched.
func deleteByID(ctx context.Context, db *gorm.DB, value any, id int64) error {
	res := db.WithContext(ctx).Delete(value, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
