package model

// Brand is a device manufacturer. Parent of DeviceModel and Part.
type Brand struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;not null"`
	Code string `gorm:"type:varchar(10);uniqueIndex;not null"`
}

func (Brand) TableName() string { return "brands" }
