package repository

import (
	"context"
	"time"

	"github.com/Bojom/Warehouse/internal/model"

	"gorm.io/gorm"
)

// StockMovementFilter defines filters for listing stock movements.
type StockMovementFilter struct {
	PartID    *int64
	Direction string
	Page      int
	Limit     int
}

// DailyFlow holds the stock entering and leaving on one day.
type DailyFlow struct {
	Day time.Time
	In  int64
	Out int64
}

// SupplierOutbound is the quantity shipped out of parts from one supplier.
type SupplierOutbound struct {
	SupplierID   int64
	SupplierName string
	Outbound     int64
}

type StockMovementRepository interface {
	List(ctx context.Context, filter StockMovementFilter) ([]model.StockMovement, int64, error)
	// DailyFlow returns one row per UTC day with movements since the given time, oldest first.
	DailyFlow(ctx context.Context, since time.Time) ([]DailyFlow, error)
	// OutboundBySupplier returns every supplier, including those with no movements.
	OutboundBySupplier(ctx context.Context, since time.Time) ([]SupplierOutbound, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) List(ctx context.Context, filter StockMovementFilter) ([]model.StockMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{})
	if filter.PartID != nil {
		q = q.Where("part_id = ?", *filter.PartID)
	}
	if filter.Direction != "" {
		q = q.Where("direction = ?", filter.Direction)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movements []model.StockMovement
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&movements).Error
	return movements, total, err
}

func (r *stockMovementRepo) DailyFlow(ctx context.Context, since time.Time) ([]DailyFlow, error) {
	var rows []DailyFlow
	err := r.db.WithContext(ctx).Raw(`
		SELECT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day,
		       COALESCE(SUM(quantity) FILTER (WHERE direction = 'in'), 0)  AS "in",
		       COALESCE(SUM(quantity) FILTER (WHERE direction = 'out'), 0) AS "out"
		FROM stock_movements
		WHERE created_at >= ?
		GROUP BY 1
		ORDER BY 1`, since).
		Scan(&rows).Error
	return rows, err
}

func (r *stockMovementRepo) OutboundBySupplier(ctx context.Context, since time.Time) ([]SupplierOutbound, error) {
	var rows []SupplierOutbound
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.id AS supplier_id, s.name AS supplier_name,
		       COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'out' AND m.created_at >= ?), 0) AS outbound
		FROM suppliers s
		LEFT JOIN parts p ON p.supplier_id = s.id
		LEFT JOIN stock_movements m ON m.part_id = p.id
		GROUP BY s.id, s.name
		ORDER BY s.name ASC`, since).
		Scan(&rows).Error
	return rows, err
}
