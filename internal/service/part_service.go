package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Bojom/Warehouse/internal/apierror"
	"github.com/Bojom/Warehouse/internal/infra"
	"github.com/Bojom/Warehouse/internal/model"
	"github.com/Bojom/Warehouse/internal/repository"
	"github.com/Bojom/Warehouse/internal/worker"
	"github.com/Bojom/Warehouse/pkg/dto"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Part defaults applied when the create payload omits them.
const (
	defaultUnit     = "pcs"
	defaultStockMax = 100
)

// AlertEnqueuer queues low-stock notifications. *worker.Dispatcher satisfies it.
type AlertEnqueuer interface {
	EnqueueStockAlert(ctx context.Context, payload worker.StockAlertPayload) error
}

// PartService defines the business logic contract for parts and their stock.
type PartService interface {
	Create(ctx context.Context, req dto.CreatePartRequest) (*dto.PartResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.PartResponse, error)
	List(ctx context.Context, filter dto.PartFilter) (*dto.PartListResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdatePartRequest) (*dto.PartResponse, error)
	Delete(ctx context.Context, id int64) error

	AdjustStock(ctx context.Context, id int64, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error)
	ListMovements(ctx context.Context, id int64, page, limit int) ([]dto.StockMovementResponse, error)
	Alerts(ctx context.Context) ([]dto.StockAlertResponse, error)
	AlertsPDF(ctx context.Context, w io.Writer) error
	ExportCSV(ctx context.Context, w io.Writer) error
	ImportCSV(ctx context.Context, data []byte) (*dto.PartImportResponse, error)
}

type partService struct {
	repo      repository.PartRepository
	movements repository.StockMovementRepository
	alerts    AlertEnqueuer
	cache     *infra.Cache
	now       func() time.Time
}

func NewPartService(repo repository.PartRepository, movements repository.StockMovementRepository, alerts AlertEnqueuer, cache *infra.Cache) PartService {
	return &partService{repo: repo, movements: movements, alerts: alerts, cache: cache, now: time.Now}
}

func mapPart(p model.Part) dto.PartResponse {
	return dto.PartResponse{
		ID:           p.ID,
		PartNumber:   p.PartNumber,
		PartName:     p.PartName,
		Unit:         p.Unit,
		Stock:        p.Stock,
		StockMin:     p.StockMin,
		StockMax:     p.StockMax,
		UnitCost:     p.UnitCost,
		SupplierID:   p.SupplierID,
		BrandID:      p.BrandID,
		ModelID:      p.ModelID,
		PartTypeID:   p.PartTypeID,
		ColourID:     p.ColourID,
		CreationTime: p.CreatedAt,
		UpdatedTime:  p.UpdatedAt,
	}
}

func mapMovement(m model.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:          m.ID,
		PartID:      m.PartID,
		Direction:   m.Direction,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
}

func checkUnitCost(cost *decimal.Decimal) error {
	if cost != nil && cost.IsNegative() {
		return apierror.Invalid("unit_cost cannot be negative")
	}
	return nil
}

func (s *partService) Create(ctx context.Context, req dto.CreatePartRequest) (*dto.PartResponse, error) {
	number, name := strings.TrimSpace(req.PartNumber), strings.TrimSpace(req.PartName)
	if number == "" || name == "" {
		return nil, apierror.Invalid("part_number and part_name are required")
	}
	if err := checkUnitCost(req.UnitCost); err != nil {
		return nil, err
	}

	p := &model.Part{
		PartNumber: number,
		PartName:   name,
		Unit:       defaultUnit,
		StockMax:   defaultStockMax,
		SupplierID: req.SupplierID,
		BrandID:    req.BrandID,
		ModelID:    req.ModelID,
		PartTypeID: req.PartTypeID,
		ColourID:   req.ColourID,
	}
	if u := strings.TrimSpace(req.Unit); u != "" {
		p.Unit = u
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.StockMin != nil {
		p.StockMin = *req.StockMin
	}
	if req.StockMax != nil {
		p.StockMax = *req.StockMax
	}
	if req.UnitCost != nil {
		p.UnitCost = *req.UnitCost
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.FromDB("Part", err)
	}
	invalidate(ctx, s.cache)
	resp := mapPart(*p)
	return &resp, nil
}

func (s *partService) GetByID(ctx context.Context, id int64) (*dto.PartResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromDB("Part", err)
	}
	resp := mapPart(*p)
	return &resp, nil
}

func (s *partService) List(ctx context.Context, filter dto.PartFilter) (*dto.PartListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	parts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PartResponse, 0, len(parts))
	for _, p := range parts {
		data = append(data, mapPart(p))
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.PartListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *partService) Update(ctx context.Context, id int64, req dto.UpdatePartRequest) (*dto.PartResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromDB("Part", err)
	}
	if err := checkUnitCost(req.UnitCost); err != nil {
		return nil, err
	}

	if req.PartNumber != nil {
		v := strings.TrimSpace(*req.PartNumber)
		if v == "" {
			return nil, apierror.Invalid("part_number cannot be blank")
		}
		p.PartNumber = v
	}
	if req.PartName != nil {
		v := strings.TrimSpace(*req.PartName)
		if v == "" {
			return nil, apierror.Invalid("part_name cannot be blank")
		}
		p.PartName = v
	}
	if req.Unit != nil {
		p.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.StockMin != nil {
		p.StockMin = *req.StockMin
	}
	if req.StockMax != nil {
		p.StockMax = *req.StockMax
	}
	if req.UnitCost != nil {
		p.UnitCost = *req.UnitCost
	}
	if req.SupplierID != nil {
		p.SupplierID = *req.SupplierID
	}
	if req.BrandID != nil {
		p.BrandID = req.BrandID
	}
	if req.ModelID != nil {
		p.ModelID = req.ModelID
	}
	if req.PartTypeID != nil {
		p.PartTypeID = req.PartTypeID
	}
	if req.ColourID != nil {
		p.ColourID = req.ColourID
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.FromDB("Part", err)
	}
	invalidate(ctx, s.cache)
	resp := mapPart(*p)
	return &resp, nil
}

func (s *partService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.FromDB("Part", err)
	}
	invalidate(ctx, s.cache)
	return nil
}

// AdjustStock applies one stock movement. An outbound movement that leaves
// the part at or below its minimum queues a low-stock alert.
func (s *partService) AdjustStock(ctx context.Context, id int64, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if req.Direction != model.DirectionIn && req.Direction != model.DirectionOut {
		return nil, apierror.Invalid("direction must be in or out")
	}
	if req.Quantity <= 0 {
		return nil, apierror.Invalid("quantity must be positive")
	}

	part, mov, err := s.repo.AdjustStock(ctx, id, req.Direction, req.Quantity, strings.TrimSpace(req.Reason))
	if err != nil {
		return nil, apierror.FromDB("Part", err)
	}
	invalidate(ctx, s.cache)

	if req.Direction == model.DirectionOut && part.IsLow() && s.alerts != nil {
		payload := worker.StockAlertPayload{
			PartID:     part.ID,
			PartNumber: part.PartNumber,
			PartName:   part.PartName,
			Stock:      part.Stock,
			StockMin:   part.StockMin,
			SupplierID: part.SupplierID,
		}
		if err := s.alerts.EnqueueStockAlert(ctx, payload); err != nil {
			log.Error().Err(err).Int64("part_id", part.ID).Msg("failed to enqueue stock alert")
		}
	}

	return &dto.AdjustStockResponse{Part: mapPart(*part), Movement: mapMovement(*mov)}, nil
}

func (s *partService) ListMovements(ctx context.Context, id int64, page, limit int) ([]dto.StockMovementResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.FromDB("Part", err)
	}
	list, _, err := s.movements.List(ctx, repository.StockMovementFilter{PartID: &id, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}
	result := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		result = append(result, mapMovement(m))
	}
	return result, nil
}

func (s *partService) Alerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	parts, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.StockAlertResponse, 0, len(parts))
	for _, p := range parts {
		result = append(result, dto.StockAlertResponse{
			PartID:     p.ID,
			PartNumber: p.PartNumber,
			PartName:   p.PartName,
			Stock:      p.Stock,
			StockMin:   p.StockMin,
			Shortfall:  p.StockMin - p.Stock,
			SupplierID: p.SupplierID,
		})
	}
	return result, nil
}

// AlertsPDF renders the current low-stock list as a PDF report.
func (s *partService) AlertsPDF(ctx context.Context, w io.Writer) error {
	alerts, err := s.Alerts(ctx)
	if err != nil {
		return err
	}
	return infra.RenderStockAlertReport(w, alerts, s.now())
}

// ExportCSV writes every part as CSV with a header row.
func (s *partService) ExportCSV(ctx context.Context, w io.Writer) error {
	parts, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	rows := make([]*dto.PartCSVRow, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, &dto.PartCSVRow{
			ID:         p.ID,
			PartNumber: p.PartNumber,
			PartName:   p.PartName,
			Unit:       p.Unit,
			Stock:      p.Stock,
			StockMin:   p.StockMin,
			StockMax:   p.StockMax,
			UnitCost:   p.UnitCost.StringFixed(2),
			SupplierID: p.SupplierID,
			BrandID:    optionalID(p.BrandID),
			ModelID:    optionalID(p.ModelID),
			PartTypeID: optionalID(p.PartTypeID),
			ColourID:   optionalID(p.ColourID),
		})
	}
	return gocsv.Marshal(rows, w)
}

func optionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

// Import error codes reported per row.
const (
	importRowFormat = "ROW_FORMAT"
	importInvalid   = "INVALID"
	importConflict  = "CONFLICT"
)

var importRequiredColumns = []string{"part_number", "part_name", "supplier_id"}

// ImportCSV creates one part per CSV row, using the export's column names.
// Bad rows are reported and skipped; the file as a whole is rejected only when
// it is empty, binary or missing a required column.
func (s *partService) ImportCSV(ctx context.Context, data []byte) (*dto.PartImportResponse, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, apierror.Invalid("csv file is empty")
	}
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return nil, apierror.Invalid("invalid csv file: binary content")
	}

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, apierror.Invalid("invalid csv header")
	}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.ToLower(strings.TrimSpace(h))] = true
	}
	for _, col := range importRequiredColumns {
		if !present[col] {
			return nil, apierror.Invalid(fmt.Sprintf("missing required column %q", col))
		}
	}

	var rows []*dto.PartImportRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, apierror.Invalid("invalid csv file: " + err.Error())
	}

	resp := &dto.PartImportResponse{TotalRows: len(rows), Details: []dto.ImportErrorRow{}}
	for i, row := range rows {
		line := i + 2
		req, reason := parseImportRow(row)
		if reason != "" {
			resp.Details = append(resp.Details, dto.ImportErrorRow{Row: line, PartNumber: row.PartNumber, ErrorCode: importRowFormat, Reason: reason})
			continue
		}
		if _, err := s.Create(ctx, req); err != nil {
			code := importInvalid
			switch {
			case errors.Is(err, apierror.ErrConflict):
				code = importConflict
			case !apierror.IsClientError(err):
				return nil, err
			}
			resp.Details = append(resp.Details, dto.ImportErrorRow{Row: line, PartNumber: row.PartNumber, ErrorCode: code, Reason: err.Error()})
			continue
		}
		resp.Created++
	}
	resp.Errors = len(resp.Details)

	log.Info().Int("rows", resp.TotalRows).Int("created", resp.Created).Int("errors", resp.Errors).Msg("parts csv import finished")
	return resp, nil
}

// parseImportRow converts a CSV row to a create request. A non-empty reason
// means the row is malformed.
func parseImportRow(row *dto.PartImportRow) (dto.CreatePartRequest, string) {
	req := dto.CreatePartRequest{
		PartNumber: strings.TrimSpace(row.PartNumber),
		PartName:   strings.TrimSpace(row.PartName),
		Unit:       strings.TrimSpace(row.Unit),
	}

	supplierID, err := strconv.ParseInt(strings.TrimSpace(row.SupplierID), 10, 64)
	if err != nil || supplierID <= 0 {
		return req, "supplier_id must be a positive integer"
	}
	req.SupplierID = supplierID

	ints := []struct {
		name string
		raw  string
		dst  **int
	}{
		{"stock", row.Stock, &req.Stock},
		{"stock_min", row.StockMin, &req.StockMin},
		{"stock_max", row.StockMax, &req.StockMax},
	}
	for _, f := range ints {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return req, f.name + " must be a non-negative integer"
		}
		*f.dst = &n
	}

	ids := []struct {
		name string
		raw  string
		dst  **int64
	}{
		{"brand_id", row.BrandID, &req.BrandID},
		{"model_id", row.ModelID, &req.ModelID},
		{"part_type_id", row.PartTypeID, &req.PartTypeID},
		{"colour_id", row.ColourID, &req.ColourID},
	}
	for _, f := range ids {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return req, f.name + " must be a positive integer"
		}
		*f.dst = &n
	}

	if raw := strings.TrimSpace(row.UnitCost); raw != "" {
		cost, err := decimal.NewFromString(raw)
		if err != nil {
			return req, "unit_cost must be a number"
		}
		req.UnitCost = &cost
	}
	return req, ""
}
