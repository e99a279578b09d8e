package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Bojom/Warehouse/internal/model"
	"github.com/Bojom/Warehouse/internal/repository"
	"github.com/Bojom/Warehouse/internal/worker"
	"github.com/Bojom/Warehouse/pkg/dto"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// ── In-memory LookupRepository stub ──────────────────────────────────────────

type stubLookupRepo[T repository.Lookup] struct {
	rows   map[int64]*T
	nextID int64
	fields func(*T) (id *int64, name, code *string)
}

func newStubLookupRepo[T repository.Lookup](fields func(*T) (*int64, *string, *string)) *stubLookupRepo[T] {
	return &stubLookupRepo[T]{rows: make(map[int64]*T), fields: fields}
}

func brandFields(b *model.Brand) (*int64, *string, *string)       { return &b.ID, &b.Name, &b.Code }
func partTypeFields(p *model.PartType) (*int64, *string, *string) { return &p.ID, &p.Name, &p.Code }
func colourFields(c *model.Colour) (*int64, *string, *string)     { return &c.ID, &c.Name, &c.Code }

func (r *stubLookupRepo[T]) conflict(row *T) error {
	id, name, code := r.fields(row)
	for _, existing := range r.rows {
		eid, ename, ecode := r.fields(existing)
		if *eid == *id {
			continue
		}
		if *ename == *name {
			return uniqueViolation("name")
		}
		if *ecode == *code {
			return uniqueViolation("code")
		}
	}
	return nil
}

func (r *stubLookupRepo[T]) List(_ context.Context) ([]T, error) {
	out := make([]T, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		_, ni, _ := r.fields(&out[i])
		_, nj, _ := r.fields(&out[j])
		return *ni < *nj
	})
	return out, nil
}

func (r *stubLookupRepo[T]) FindByID(_ context.Context, id int64) (*T, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *stubLookupRepo[T]) Create(_ context.Context, row *T) error {
	if err := r.conflict(row); err != nil {
		return err
	}
	r.nextID++
	id, _, _ := r.fields(row)
	*id = r.nextID
	cp := *row
	r.rows[r.nextID] = &cp
	return nil
}

func (r *stubLookupRepo[T]) CreateMany(ctx context.Context, rows []T) error {
	for i := range rows {
		if err := r.Create(ctx, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubLookupRepo[T]) Update(_ context.Context, row *T) error {
	if err := r.conflict(row); err != nil {
		return err
	}
	id, _, _ := r.fields(row)
	cp := *row
	r.rows[*id] = &cp
	return nil
}

func (r *stubLookupRepo[T]) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

// ── In-memory DeviceModelRepository stub ─────────────────────────────────────

type stubModelRepo struct {
	rows   map[int64]*model.DeviceModel
	nextID int64
}

func newStubModelRepo() *stubModelRepo {
	return &stubModelRepo{rows: make(map[int64]*model.DeviceModel)}
}

func (r *stubModelRepo) conflict(m *model.DeviceModel) error {
	for _, e := range r.rows {
		if e.ID == m.ID || e.BrandID != m.BrandID {
			continue
		}
		if e.Name == m.Name {
			return uniqueViolation("idx_models_brand_name")
		}
		if e.Code == m.Code {
			return uniqueViolation("idx_models_brand_code")
		}
	}
	return nil
}

func (r *stubModelRepo) List(_ context.Context, brandID *int64) ([]model.DeviceModel, error) {
	out := make([]model.DeviceModel, 0, len(r.rows))
	for _, m := range r.rows {
		if brandID != nil && m.BrandID != *brandID {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubModelRepo) FindByID(_ context.Context, id int64) (*model.DeviceModel, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubModelRepo) Create(_ context.Context, m *model.DeviceModel) error {
	if err := r.conflict(m); err != nil {
		return err
	}
	r.nextID++
	m.ID = r.nextID
	cp := *m
	r.rows[m.ID] = &cp
	return nil
}

func (r *stubModelRepo) CreateMany(ctx context.Context, rows []model.DeviceModel) error {
	for i := range rows {
		if err := r.Create(ctx, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubModelRepo) Update(_ context.Context, m *model.DeviceModel) error {
	if err := r.conflict(m); err != nil {
		return err
	}
	cp := *m
	r.rows[m.ID] = &cp
	return nil
}

func (r *stubModelRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

// ── In-memory SupplierRepository stub ────────────────────────────────────────

type stubSupplierRepo struct {
	rows   map[int64]*model.Supplier
	nextID int64
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{rows: make(map[int64]*model.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	for _, e := range r.rows {
		if e.Name == s.Name {
			return uniqueViolation("idx_suppliers_name")
		}
	}
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id int64) (*model.Supplier, error) {
	s, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	out := make([]model.Supplier, 0, len(r.rows))
	for _, s := range r.rows {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *stubSupplierRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

// ── In-memory PartRepository / StockMovementRepository stubs ─────────────────

type stubPartRepo struct {
	rows      map[int64]*model.Part
	nextID    int64
	movements *stubMovementRepo
	groups    []repository.GroupTotal
	// beforeUpdate runs at the start of Update, standing in for a concurrent request.
	beforeUpdate func()
}

func newStubPartRepo(movements *stubMovementRepo) *stubPartRepo {
	return &stubPartRepo{rows: make(map[int64]*model.Part), movements: movements}
}

func (r *stubPartRepo) Create(_ context.Context, p *model.Part) error {
	for _, e := range r.rows {
		if e.PartNumber == p.PartNumber {
			return uniqueViolation("idx_parts_part_number")
		}
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *stubPartRepo) FindByID(_ context.Context, id int64) (*model.Part, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPartRepo) List(_ context.Context, filter dto.PartFilter) ([]model.Part, int64, error) {
	all, _ := r.ListAll(context.Background())
	var matched []model.Part
	for _, p := range all {
		if filter.SupplierID != nil && p.SupplierID != *filter.SupplierID {
			continue
		}
		if filter.LowStock && !p.IsLow() {
			continue
		}
		if q := strings.ToLower(filter.Query); q != "" &&
			!strings.Contains(strings.ToLower(p.PartName), q) &&
			!strings.Contains(strings.ToLower(p.PartNumber), q) {
			continue
		}
		matched = append(matched, p)
	}
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubPartRepo) ListAll(_ context.Context) ([]model.Part, error) {
	out := make([]model.Part, 0, len(r.rows))
	for _, p := range r.rows {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPartRepo) ListLowStock(ctx context.Context) ([]model.Part, error) {
	all, _ := r.ListAll(ctx)
	var out []model.Part
	for _, p := range all {
		if p.IsLow() {
			out = append(out, p)
		}
	}
	return out, nil
}

// Update mirrors the GORM repo: stock is not written and p is reloaded.
func (r *stubPartRepo) Update(_ context.Context, p *model.Part) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	stored, ok := r.rows[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Stock = stored.Stock
	r.rows[p.ID] = &cp
	*p = cp
	return nil
}

func (r *stubPartRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *stubPartRepo) AdjustStock(_ context.Context, id int64, direction string, quantity int, reason string) (*model.Part, *model.StockMovement, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	mov := model.StockMovement{PartID: id, Direction: direction, Quantity: quantity, Reason: reason, StockBefore: p.Stock}
	after := p.Stock + mov.Delta()
	if after < 0 {
		return nil, nil, repository.ErrInsufficientStock
	}
	p.Stock = after
	mov.StockAfter = after
	mov.CreatedAt = time.Now()
	r.movements.add(&mov)
	cp := *p
	return &cp, &mov, nil
}

func (r *stubPartRepo) StockByGroup(_ context.Context, _ string) ([]repository.GroupTotal, error) {
	return r.groups, nil
}

type stubMovementRepo struct {
	rows     []model.StockMovement
	daily    []repository.DailyFlow
	outbound []repository.SupplierOutbound
	calls    int
}

func (r *stubMovementRepo) add(m *model.StockMovement) {
	m.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, *m)
}

func (r *stubMovementRepo) List(_ context.Context, filter repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	var out []model.StockMovement
	for i := len(r.rows) - 1; i >= 0; i-- {
		m := r.rows[i]
		if filter.PartID != nil && m.PartID != *filter.PartID {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovementRepo) DailyFlow(_ context.Context, _ time.Time) ([]repository.DailyFlow, error) {
	r.calls++
	return r.daily, nil
}

func (r *stubMovementRepo) OutboundBySupplier(_ context.Context, _ time.Time) ([]repository.SupplierOutbound, error) {
	r.calls++
	return r.outbound, nil
}

// ── Alert enqueuer stub ──────────────────────────────────────────────────────

type stubEnqueuer struct {
	payloads []worker.StockAlertPayload
	err      error
}

func (e *stubEnqueuer) EnqueueStockAlert(_ context.Context, p worker.StockAlertPayload) error {
	e.payloads = append(e.payloads, p)
	return e.err
}
