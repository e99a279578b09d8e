package service

import (
	"context"
	"strings"

	"github.com/Bojom/Warehouse/internal/apierror"
	"github.com/Bojom/Warehouse/internal/infra"
	"github.com/Bojom/Warehouse/internal/model"
	"github.com/Bojom/Warehouse/internal/repository"
	"github.com/Bojom/Warehouse/pkg/dto"
)

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error)
	List(ctx context.Context) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Delete(ctx context.Context, id int64) error
}

type supplierService struct {
	repo  repository.SupplierRepository
	cache *infra.Cache
}

func NewSupplierService(repo repository.SupplierRepository, cache *infra.Cache) SupplierService {
	return &supplierService{repo: repo, cache: cache}
}

func mapSupplier(s model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		ContactName:  s.ContactName,
		Email:        s.Email,
		Phone:        s.Phone,
		Address:      s.Address,
		CreationTime: s.CreatedAt,
		UpdatedTime:  s.UpdatedAt,
	}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apierror.Invalid("name is required")
	}
	sup := &model.Supplier{
		Name:        name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, apierror.FromDB("Supplier", err)
	}
	invalidate(ctx, s.cache)
	resp := mapSupplier(*sup)
	return &resp, nil
}

func (s *supplierService) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromDB("Supplier", err)
	}
	resp := mapSupplier(*sup)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SupplierResponse, 0, len(list))
	for _, sup := range list {
		result = append(result, mapSupplier(sup))
	}
	return result, nil
}

func (s *supplierService) Update(ctx context.Context, id int64, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.FromDB("Supplier", err)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apierror.Invalid("name cannot be blank")
		}
		sup.Name = name
	}
	if req.ContactName != nil {
		sup.ContactName = req.ContactName
	}
	if req.Email != nil {
		sup.Email = req.Email
	}
	if req.Phone != nil {
		sup.Phone = req.Phone
	}
	if req.Address != nil {
		sup.Address = req.Address
	}
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, apierror.FromDB("Supplier", err)
	}
	invalidate(ctx, s.cache)
	resp := mapSupplier(*sup)
	return &resp, nil
}

func (s *supplierService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.FromDB("Supplier", err)
	}
	invalidate(ctx, s.cache)
	return nil
}
