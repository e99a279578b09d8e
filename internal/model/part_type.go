package model

// PartType classifies parts (screen, battery, camera...).
type PartType struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;not null"`
	Code string `gorm:"type:varchar(10);uniqueIndex;not null"`
}

func (PartType) TableName() string { return "part_types" }
