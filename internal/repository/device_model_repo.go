package repository

import (
	"context"

	"github.com/Bojom/Warehouse/internal/model"

	"gorm.io/gorm"
)

// DeviceModelRepository defines CRUD operations for phone models.
type DeviceModelRepository interface {
	// List returns models ordered by name; brandID narrows to one brand when set.
	List(ctx context.Context, brandID *int64) ([]model.DeviceModel, error)
	FindByID(ctx context.Context, id int64) (*model.DeviceModel, error)
	Create(ctx context.Context, m *model.DeviceModel) error
	CreateMany(ctx context.Context, rows []model.DeviceModel) error
	Update(ctx context.Context, m *model.DeviceModel) error
	Delete(ctx context.Context, id int64) error
}

type deviceModelRepo struct{ db *gorm.DB }

func NewDeviceModelRepository(db *gorm.DB) DeviceModelRepository {
	return &deviceModelRepo{db: db}
}

func (r *deviceModelRepo) List(ctx context.Context, brandID *int64) ([]model.DeviceModel, error) {
	var list []model.DeviceModel
	q := r.db.WithContext(ctx)
	if brandID != nil {
		q = q.Where("brand_id = ?", *brandID)
	}
	err := q.Order("name asc").Find(&list).Error
	return list, err
}

func (r *deviceModelRepo) FindByID(ctx context.Context, id int64) (*model.DeviceModel, error) {
	var m model.DeviceModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *deviceModelRepo) Create(ctx context.Context, m *model.DeviceModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *deviceModelRepo) CreateMany(ctx context.Context, rows []model.DeviceModel) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *deviceModelRepo) Update(ctx context.Context, m *model.DeviceModel) error {
	return r.db.WithContext(ctx).Model(m).Select("name", "code", "brand_id").Updates(m).Error
}

func (r *deviceModelRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.DeviceModel{}, id)
}
