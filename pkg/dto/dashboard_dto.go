package dto

import "github.com/Bojom/Warehouse/pkg/chart"

// DashboardFilter is bound from the dashboard query string.
type DashboardFilter struct {
	Days int    `form:"days,default=30"   validate:"min=1,max=365"`
	By   string `form:"by,default=part_type" validate:"oneof=part_type brand supplier"`
}

// DailyStockFlow is the total stock in and out on one calendar day.
type DailyStockFlow struct {
	Day string `json:"day"` // YYYY-MM-DD
	In  int64  `json:"in"`
	Out int64  `json:"out"`
}

type SupplierAnomaly struct {
	SupplierID   int64   `json:"supplier_id"`
	SupplierName string  `json:"supplier_name"`
	Outbound     int64   `json:"outbound"`
	Score        float64 `json:"score"`
}

// TrendResponse pairs the raw series with the ready-to-render chart option.
type TrendResponse struct {
	Data   []DailyStockFlow `json:"data"`
	Option chart.Option     `json:"option"`
}

type CompositionResponse struct {
	By     string          `json:"by"`
	Data   []chart.PieItem `json:"data"`
	Option chart.Option    `json:"option"`
}

type AnomalyResponse struct {
	Data   []SupplierAnomaly `json:"data"`
	Option chart.Option      `json:"option"`
}
