package model

import "time"

// Supplier is the vendor a Part is purchased from.
type Supplier struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"uniqueIndex;not null"`
	ContactName *string
	Email       *string
	Phone       *string
	Address     *string
	CreatedAt   time.Time `gorm:"column:creation_time"`
	UpdatedAt   time.Time `gorm:"column:updated_time"`
}

func (Supplier) TableName() string { return "suppliers" }
