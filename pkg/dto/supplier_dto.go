package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name        string  `json:"name"         validate:"required,min=2,max=255"`
	ContactName *string `json:"contact_name" validate:"omitempty,max=255"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Phone       *string `json:"phone"        validate:"omitempty,max=50"`
	Address     *string `json:"address"`
}

type UpdateSupplierRequest struct {
	Name        *string `json:"name"         validate:"omitempty,min=2,max=255"`
	ContactName *string `json:"contact_name" validate:"omitempty,max=255"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Phone       *string `json:"phone"        validate:"omitempty,max=50"`
	Address     *string `json:"address"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SupplierResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContactName  *string   `json:"contact_name"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	CreationTime time.Time `json:"creation_time"`
	UpdatedTime  time.Time `json:"updated_time"`
}
