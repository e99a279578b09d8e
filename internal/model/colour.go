package model

type Colour struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;not null"`
	Code string `gorm:"type:varchar(10);uniqueIndex;not null"`
}

func (Colour) TableName() string { return "colours" }
