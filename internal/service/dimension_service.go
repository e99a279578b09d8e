package service

import (
	"context"
	"fmt"

	"github.com/Bojom/Warehouse/internal/apierror"
	"github.com/Bojom/Warehouse/internal/infra"
	"github.com/Bojom/Warehouse/internal/model"
	"github.com/Bojom/Warehouse/internal/repository"
	"github.com/Bojom/Warehouse/pkg/dto"
)

// DimensionService defines the CRUD operations on the lookup tables used to
// classify parts: brands, models, part types and colours.
type DimensionService interface {
	ListBrands(ctx context.Context) ([]dto.BrandResponse, error)
	CreateBrand(ctx context.Context, req dto.CreateLookupRequest) (*dto.BrandResponse, error)
	UpdateBrand(ctx context.Context, id int64, req dto.UpdateLookupRequest) (*dto.BrandResponse, error)
	DeleteBrand(ctx context.Context, id int64) error

	ListModels(ctx context.Context, brandID *int64) ([]dto.ModelResponse, error)
	CreateModel(ctx context.Context, req dto.CreateModelRequest) (*dto.ModelResponse, error)
	UpdateModel(ctx context.Context, id int64, req dto.UpdateModelRequest) (*dto.ModelResponse, error)
	DeleteModel(ctx context.Context, id int64) error

	ListPartTypes(ctx context.Context) ([]dto.PartTypeResponse, error)
	CreatePartType(ctx context.Context, req dto.CreateLookupRequest) (*dto.PartTypeResponse, error)
	UpdatePartType(ctx context.Context, id int64, req dto.UpdateLookupRequest) (*dto.PartTypeResponse, error)
	DeletePartType(ctx context.Context, id int64) error

	ListColours(ctx context.Context) ([]dto.ColourResponse, error)
	CreateColour(ctx context.Context, req dto.CreateLookupRequest) (*dto.ColourResponse, error)
	UpdateColour(ctx context.Context, id int64, req dto.UpdateLookupRequest) (*dto.ColourResponse, error)
	DeleteColour(ctx context.Context, id int64) error
}

type dimensionService struct {
	brands    *lookupCRUD[model.Brand, dto.BrandResponse]
	partTypes *lookupCRUD[model.PartType, dto.PartTypeResponse]
	colours   *lookupCRUD[model.Colour, dto.ColourResponse]
	models    repository.DeviceModelRepository
	cache     *infra.Cache
}

func NewDimensionService(
	brandRepo repository.LookupRepository[model.Brand],
	modelRepo repository.DeviceModelRepository,
	partTypeRepo repository.LookupRepository[model.PartType],
	colourRepo repository.LookupRepository[model.Colour],
	cache *infra.Cache,
) DimensionService {
	return &dimensionService{
		brands: &lookupCRUD[model.Brand, dto.BrandResponse]{
			entity: "Brand", repo: brandRepo, cache: cache,
			fields: func(b *model.Brand) (*string, *string) { return &b.Name, &b.Code },
			toResp: mapBrand,
		},
		partTypes: &lookupCRUD[model.PartType, dto.PartTypeResponse]{
			entity: "Part Type", repo: partTypeRepo, cache: cache,
			fields: func(p *model.PartType) (*string, *string) { return &p.Name, &p.Code },
			toResp: mapPartType,
		},
		colours: &lookupCRUD[model.Colour, dto.ColourResponse]{
			entity: "Colour", repo: colourRepo, cache: cache,
			fields: func(c *model.Colour) (*string, *string) { return &c.Name, &c.Code },
			toResp: mapColour,
		},
		models: modelRepo,
		cache:  cache,
	}
}

func mapBrand(b model.Brand) dto.BrandResponse {
	return dto.BrandResponse{ID: b.ID, Name: b.Name, Code: b.Code}
}

func mapPartType(p model.PartType) dto.PartTypeResponse {
	return dto.PartTypeResponse{ID: p.ID, Name: p.Name, Code: p.Code}
}

func mapColour(c model.Colour) dto.ColourResponse {
	return dto.ColourResponse{ID: c.ID, Name: c.Name, Code: c.Code}
}

func mapModel(m model.DeviceModel) dto.ModelResponse {
	return dto.ModelResponse{ID: m.ID, Name: m.Name, Code: m.Code, BrandID: m.BrandID}
}

// ── Brands ────────────────────────────────────────────────────────────────────

func (s *dimensionService) ListBrands(ctx context.Context) ([]dto.BrandResponse, error) {
	return s.brands.list(ctx)
}

func (s *dimensionService) CreateBrand(ctx context.Context, req dto.CreateLookupRequest) (*dto.BrandResponse, error) {
	return s.brands.create(ctx, req)
}

func (s *dimensionService) UpdateBrand(ctx context.Context, id int64, req dto.UpdateLookupRequest) (*dto.BrandResponse, error) {
	return s.brands.update(ctx, id, req)
}

func (s *dimensionService) DeleteBrand(ctx context.Context, id int64) error {
	return s.brands.delete(ctx, id)
}

// ── Models ────────────────────────────────────────────────────────────────────

func (s *dimensionService) ListModels(ctx context.Context, brandID *int64) ([]dto.ModelResponse, error) {
	rows, err := s.models.List(ctx, brandID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ModelResponse, 0, len(rows))
	for _, m := range rows {
		resp = append(resp, mapModel(m))
	}
	return resp, nil
}

func (s *dimensionService) CreateModel(ctx context.Context, req dto.CreateModelRequest) (*dto.ModelResponse, error) {
	name, code, err := cleanNameCode(req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	if req.BrandID <= 0 {
		return nil, apierror.Invalid("brand_id is required")
	}
	m := &model.DeviceModel{Name: name, Code: code, BrandID: req.BrandID}
	if err := s.models.Create(ctx, m); err != nil {
		return nil, apierror.FromDB("Model", err)
	}
	invalidate(ctx, s.cache)
	resp := mapModel(*m)
	return &resp, nil
}

func (s *dimensionService) UpdateModel(ctx context.Context, id int64, req dto.UpdateModelRequest) (*dto.ModelResponse, error) {
	m, err := s.models.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromDB("Model", err)
	}
	if err := applyNameCode(&m.Name, &m.Code, req.Name, req.Code); err != nil {
		return nil, err
	}
	if req.BrandID != nil {
		if *req.BrandID <= 0 {
			return nil, apierror.Invalid(fmt.Sprintf("invalid brand_id %d", *req.BrandID))
		}
		m.BrandID = *req.BrandID
	}
	if err := s.models.Update(ctx, m); err != nil {
		return nil, apierror.FromDB("Model", err)
	}
	invalidate(ctx, s.cache)
	resp := mapModel(*m)
	return &resp, nil
}

func (s *dimensionService) DeleteModel(ctx context.Context, id int64) error {
	if err := s.models.Delete(ctx, id); err != nil {
		return apierror.FromDB("Model", err)
	}
	invalidate(ctx, s.cache)
	return nil
}

// ── Part types ────────────────────────────────────────────────────────────────

func (s *dimensionService) ListPartTypes(ctx context.Context) ([]dto.PartTypeResponse, error) {
	return s.partTypes.list(ctx)
}

func (s *dimensionService) CreatePartType(ctx context.Context, req dto.CreateLookupRequest) (*dto.PartTypeResponse, error) {
	return s.partTypes.create(ctx, req)
}

func (s *dimensionService) UpdatePartType(ctx context.Context, id int64, req dto.UpdateLookupRequest) (*dto.PartTypeResponse, error) {
	return s.partTypes.update(ctx, id, req)
}

func (s *dimensionService) DeletePartType(ctx context.Context, id int64) error {
	return s.partTypes.delete(ctx, id)
}

// ── Colours ───────────────────────────────────────────────────────────────────

func (s *dimensionService) ListColours(ctx context.Context) ([]dto.ColourResponse, error) {
	return s.colours.list(ctx)
}

func (s *dimensionService) CreateColour(ctx context.Context, req dto.CreateLookupRequest) (*dto.ColourResponse, error) {
	return s.colours.create(ctx, req)
}

func (s *dimensionService) UpdateColour(ctx context.Context, id int64, req dto.UpdateLookupRequest) (*dto.ColourResponse, error) {
	return s.colours.update(ctx, id, req)
}

func (s *dimensionService) DeleteColour(ctx context.Context, id int64) error {
	return s.colours.delete(ctx, id)
}
