package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part is a stocked replacement part. Brand, model, part type and colour are
// optional classifications; the supplier is mandatory.
// StockMin/StockMax are thresholds for alerts only, they are not enforced.
type Part struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	PartNumber string          `gorm:"uniqueIndex;not null"`
	PartName   string          `gorm:"index;not null"`
	Unit       string          `gorm:"type:varchar(50);not null;default:'pcs'"`
	Stock      int             `gorm:"not null;default:0"`
	StockMin   int             `gorm:"not null;default:0"`
	StockMax   int             `gorm:"not null;default:100"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SupplierID int64           `gorm:"not null;index"`
	BrandID    *int64          `gorm:"index"`
	ModelID    *int64          `gorm:"index"`
	PartTypeID *int64          `gorm:"index"`
	ColourID   *int64          `gorm:"index"`
	CreatedAt  time.Time       `gorm:"column:creation_time"`
	UpdatedAt  time.Time       `gorm:"column:updated_time"`
}

func (Part) TableName() string { return "parts" }

// IsLow reports whether stock has reached the minimum threshold.
func (p Part) IsLow() bool { return p.Stock <= p.StockMin }
