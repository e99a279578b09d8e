package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CreateLookupRequest is the create payload shared by brands, part types and colours.
type CreateLookupRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Code string `json:"code" validate:"required,max=10"`
}

// UpdateLookupRequest only carries the mutable columns; id and unknown keys are ignored.
type UpdateLookupRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
	Code *string `json:"code" validate:"omitempty,min=1,max=10"`
}

type CreateModelRequest struct {
	Name    string `json:"name"     validate:"required,max=255"`
	Code    string `json:"code"     validate:"required,max=10"`
	BrandID int64  `json:"brand_id" validate:"required,gt=0"`
}

type UpdateModelRequest struct {
	Name    *string `json:"name"     validate:"omitempty,min=1,max=255"`
	Code    *string `json:"code"     validate:"omitempty,min=1,max=10"`
	BrandID *int64  `json:"brand_id" validate:"omitempty,gt=0"`
}

// ModelFilter is bound from the GET /dimensions/models query string.
type ModelFilter struct {
	BrandID *int64 `form:"brand_id" validate:"omitempty,gt=0"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type BrandResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type PartTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type ColourResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type ModelResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	BrandID int64  `json:"brand_id"`
}
