package model

import "time"

// Movement directions.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// StockMovement records one stock adjustment of a Part.
// Quantity is always positive; Direction tells whether it entered or left.
type StockMovement struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	PartID      int64     `gorm:"not null;index"`
	Direction   string    `gorm:"type:varchar(3);not null"`
	Quantity    int       `gorm:"not null"`
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	CreatedAt   time.Time `gorm:"index"`
}

func (StockMovement) TableName() string { return "stock_movements" }

// Delta returns the signed stock change.
func (m StockMovement) Delta() int {
	if m.Direction == DirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}
