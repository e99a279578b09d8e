package repository

import (
	"context"
	"fmt"

	"github.com/Bojom/Warehouse/internal/apierror"
	"github.com/Bojom/Warehouse/internal/model"
	"github.com/Bojom/Warehouse/pkg/dto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientStock is returned by AdjustStock when an outbound movement
// would take stock below zero.
var ErrInsufficientStock = apierror.Invalid("insufficient stock")

// GroupTotal is the summed stock of one composition group.
type GroupTotal struct {
	Name  string
	Total int64
}

// compositionGroups maps the accepted "by" values to their lookup table.
var compositionGroups = map[string]struct{ table, column string }{
	"part_type": {"part_types", "part_type_id"},
	"brand":     {"brands", "brand_id"},
	"supplier":  {"suppliers", "supplier_id"},
}

// PartRepository defines the data access contract for parts.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type PartRepository interface {
	Create(ctx context.Context, p *model.Part) error
	FindByID(ctx context.Context, id int64) (*model.Part, error)
	List(ctx context.Context, filter dto.PartFilter) ([]model.Part, int64, error)
	ListAll(ctx context.Context) ([]model.Part, error)
	ListLowStock(ctx context.Context) ([]model.Part, error)
	Update(ctx context.Context, p *model.Part) error
	Delete(ctx context.Context, id int64) error

	// AdjustStock locks the part row, applies the movement and records it in
	// one transaction.
	AdjustStock(ctx context.Context, id int64, direction string, quantity int, reason string) (*model.Part, *model.StockMovement, error)

	// StockByGroup sums stock per part type, brand or supplier. Parts without
	// the classification are grouped under "Unassigned".
	StockByGroup(ctx context.Context, by string) ([]GroupTotal, error)
}

type partRepo struct{ db *gorm.DB }

func NewPartRepository(db *gorm.DB) PartRepository { return &partRepo{db: db} }

func (r *partRepo) Create(ctx context.Context, p *model.Part) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *partRepo) FindByID(ctx context.Context, id int64) (*model.Part, error) {
	var p model.Part
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partRepo) List(ctx context.Context, filter dto.PartFilter) ([]model.Part, int64, error) {
	var parts []model.Part
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Part{})
	if filter.BrandID != nil {
		q = q.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.ModelID != nil {
		q = q.Where("model_id = ?", *filter.ModelID)
	}
	if filter.PartTypeID != nil {
		q = q.Where("part_type_id = ?", *filter.PartTypeID)
	}
	if filter.ColourID != nil {
		q = q.Where("colour_id = ?", *filter.ColourID)
	}
	if filter.SupplierID != nil {
		q = q.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("part_number ILIKE ? OR part_name ILIKE ?", like, like)
	}
	if filter.LowStock {
		q = q.Where("stock <= stock_min")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("part_name ASC").Limit(filter.Limit).Offset(offset).Find(&parts).Error
	return parts, total, err
}

func (r *partRepo) ListAll(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	err := r.db.WithContext(ctx).Order("id ASC").Find(&parts).Error
	return parts, err
}

func (r *partRepo) ListLowStock(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	err := r.db.WithContext(ctx).
		Where("stock <= stock_min").
		Order("(stock_min - stock) DESC, part_name ASC").
		Find(&parts).Error
	return parts, err
}

// partUpdateColumns are the columns PUT /parts/:id may write. stock is
// absent: it only changes inside AdjustStock.
var partUpdateColumns = []string{
	"part_number", "part_name", "unit", "stock_min", "stock_max", "unit_cost",
	"supplier_id", "brand_id", "model_id", "part_type_id", "colour_id", "updated_time",
}

// Update writes the editable columns and reloads p, so p.Stock reflects any
// adjustment committed since p was read.
func (r *partRepo) Update(ctx context.Context, p *model.Part) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(p).Select(partUpdateColumns).Updates(p).Error; err != nil {
		return err
	}
	return db.First(p, p.ID).Error
}

func (r *partRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Part{}, id)
}

func (r *partRepo) AdjustStock(ctx context.Context, id int64, direction string, quantity int, reason string) (*model.Part, *model.StockMovement, error) {
	var part model.Part
	var mov model.StockMovement

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&part, id).Error; err != nil {
			return err
		}
		mov = model.StockMovement{
			PartID:      part.ID,
			Direction:   direction,
			Quantity:    quantity,
			StockBefore: part.Stock,
			Reason:      reason,
		}
		mov.StockAfter = part.Stock + mov.Delta()
		if mov.StockAfter < 0 {
			return ErrInsufficientStock
		}
		if err := tx.Model(&part).Update("stock", mov.StockAfter).Error; err != nil {
			return err
		}
		part.Stock = mov.StockAfter
		return tx.Create(&mov).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &part, &mov, nil
}

func (r *partRepo) StockByGroup(ctx context.Context, by string) ([]GroupTotal, error) {
	g, ok := compositionGroups[by]
	if !ok {
		return nil, apierror.Invalid(fmt.Sprintf("unknown composition group %q", by))
	}
	var rows []GroupTotal
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT COALESCE(g.name, 'Unassigned') AS name, COALESCE(SUM(p.stock), 0) AS total
		FROM parts p
		LEFT JOIN %s g ON g.id = p.%s
		GROUP BY COALESCE(g.name, 'Unassigned')
		ORDER BY total DESC, name ASC`, g.table, g.column)).
		Scan(&rows).Error
	return rows, err
}
