package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreatePartRequest struct {
	PartNumber string           `json:"part_number"  validate:"required,max=255"`
	PartName   string           `json:"part_name"    validate:"required,max=255"`
	Unit       string           `json:"unit"         validate:"omitempty,max=50"`
	Stock      *int             `json:"stock"        validate:"omitempty,min=0"`
	StockMin   *int             `json:"stock_min"    validate:"omitempty,min=0"`
	StockMax   *int             `json:"stock_max"    validate:"omitempty,min=0"`
	UnitCost   *decimal.Decimal `json:"unit_cost"`
	SupplierID int64            `json:"supplier_id"  validate:"required,gt=0"`
	BrandID    *int64           `json:"brand_id"     validate:"omitempty,gt=0"`
	ModelID    *int64           `json:"model_id"     validate:"omitempty,gt=0"`
	PartTypeID *int64           `json:"part_type_id" validate:"omitempty,gt=0"`
	ColourID   *int64           `json:"colour_id"    validate:"omitempty,gt=0"`
}

// UpdatePartRequest deliberately has no stock field: stock only changes
// through POST /parts/:id/stock so every change leaves a movement.
type UpdatePartRequest struct {
	PartNumber *string          `json:"part_number"  validate:"omitempty,min=1,max=255"`
	PartName   *string          `json:"part_name"    validate:"omitempty,min=1,max=255"`
	Unit       *string          `json:"unit"         validate:"omitempty,min=1,max=50"`
	StockMin   *int             `json:"stock_min"    validate:"omitempty,min=0"`
	StockMax   *int             `json:"stock_max"    validate:"omitempty,min=0"`
	UnitCost   *decimal.Decimal `json:"unit_cost"`
	SupplierID *int64           `json:"supplier_id"  validate:"omitempty,gt=0"`
	BrandID    *int64           `json:"brand_id"     validate:"omitempty,gt=0"`
	ModelID    *int64           `json:"model_id"     validate:"omitempty,gt=0"`
	PartTypeID *int64           `json:"part_type_id" validate:"omitempty,gt=0"`
	ColourID   *int64           `json:"colour_id"    validate:"omitempty,gt=0"`
}

type AdjustStockRequest struct {
	Direction string `json:"direction" validate:"required,oneof=in out"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0"`
	Reason    string `json:"reason"    validate:"max=255"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type PartFilter struct {
	BrandID    *int64 `form:"brand_id"     validate:"omitempty,gt=0"`
	ModelID    *int64 `form:"model_id"     validate:"omitempty,gt=0"`
	PartTypeID *int64 `form:"part_type_id" validate:"omitempty,gt=0"`
	ColourID   *int64 `form:"colour_id"    validate:"omitempty,gt=0"`
	SupplierID *int64 `form:"supplier_id"  validate:"omitempty,gt=0"`
	Query      string `form:"q"`
	LowStock   bool   `form:"low_stock"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PartResponse struct {
	ID           int64           `json:"id"`
	PartNumber   string          `json:"part_number"`
	PartName     string          `json:"part_name"`
	Unit         string          `json:"unit"`
	Stock        int             `json:"stock"`
	StockMin     int             `json:"stock_min"`
	StockMax     int             `json:"stock_max"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	SupplierID   int64           `json:"supplier_id"`
	BrandID      *int64          `json:"brand_id"`
	ModelID      *int64          `json:"model_id"`
	PartTypeID   *int64          `json:"part_type_id"`
	ColourID     *int64          `json:"colour_id"`
	CreationTime time.Time       `json:"creation_time"`
	UpdatedTime  time.Time       `json:"updated_time"`
}

type PartListResponse struct {
	Data       []PartResponse `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

type StockMovementResponse struct {
	ID          int64     `json:"id"`
	PartID      int64     `json:"part_id"`
	Direction   string    `json:"direction"`
	Quantity    int       `json:"quantity"`
	StockBefore int       `json:"stock_before"`
	StockAfter  int       `json:"stock_after"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

type AdjustStockResponse struct {
	Part     PartResponse          `json:"part"`
	Movement StockMovementResponse `json:"movement"`
}

// StockAlertResponse lists a part at or below its minimum stock.
type StockAlertResponse struct {
	PartID     int64  `json:"part_id"`
	PartNumber string `json:"part_number"`
	PartName   string `json:"part_name"`
	Stock      int    `json:"stock"`
	StockMin   int    `json:"stock_min"`
	Shortfall  int    `json:"shortfall"`
	SupplierID int64  `json:"supplier_id"`
}

// PartCSVRow is one line of the GET /parts/export CSV.
type PartCSVRow struct {
	ID         int64  `csv:"id"`
	PartNumber string `csv:"part_number"`
	PartName   string `csv:"part_name"`
	Unit       string `csv:"unit"`
	Stock      int    `csv:"stock"`
	StockMin   int    `csv:"stock_min"`
	StockMax   int    `csv:"stock_max"`
	UnitCost   string `csv:"unit_cost"`
	SupplierID int64  `csv:"supplier_id"`
	BrandID    string `csv:"brand_id"`
	ModelID    string `csv:"model_id"`
	PartTypeID string `csv:"part_type_id"`
	ColourID   string `csv:"colour_id"`
}

// PartImportRow is one line of a POST /parts/import CSV. Numeric columns stay
// strings so a bad value fails its own row instead of the whole file.
type PartImportRow struct {
	PartNumber string `csv:"part_number"`
	PartName   string `csv:"part_name"`
	Unit       string `csv:"unit"`
	Stock      string `csv:"stock"`
	StockMin   string `csv:"stock_min"`
	StockMax   string `csv:"stock_max"`
	UnitCost   string `csv:"unit_cost"`
	SupplierID string `csv:"supplier_id"`
	BrandID    string `csv:"brand_id"`
	ModelID    string `csv:"model_id"`
	PartTypeID string `csv:"part_type_id"`
	ColourID   string `csv:"colour_id"`
}

type PartImportResponse struct {
	TotalRows int              `json:"total_rows"`
	Created   int              `json:"created"`
	Errors    int              `json:"errors"`
	Details   []ImportErrorRow `json:"details"`
}

type ImportErrorRow struct {
	Row        int    `json:"row"` // 1-based line number, header is line 1
	PartNumber string `json:"part_number,omitempty"`
	ErrorCode  string `json:"error_code"` // ROW_FORMAT|INVALID|CONFLICT
	Reason     string `json:"reason"`
}
