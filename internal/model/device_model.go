package model

// DeviceModel is a phone/device model of one Brand. Name and code only need
// to be unique within the brand.
type DeviceModel struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Name    string `gorm:"not null;uniqueIndex:idx_models_brand_name,priority:2"`
	Code    string `gorm:"type:varchar(10);not null;uniqueIndex:idx_models_brand_code,priority:2"`
	BrandID int64  `gorm:"not null;index;uniqueIndex:idx_models_brand_name,priority:1;uniqueIndex:idx_models_brand_code,priority:1"`
}

// TableName keeps the historical "models" table name.
func (DeviceModel) TableName() string { return "models" }
