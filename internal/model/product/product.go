// Package product holds the product entity and its request payloads.
package product

import (
	"github.com/deppfellow/miwebservice/internal/model"
	"github.com/deppfellow/miwebservice/internal/validation"
)

// Product is a row of the productos table. It is also the API representation.
type Product struct {
	ID     string  `json:"id" db:"id"`
	Nombre string  `json:"nombre" db:"nombre"`
	Precio float64 `json:"precio" db:"precio"`
	Stock  int     `json:"stock" db:"stock"`
}

// ProductInput is the body shared by create and update.
//
// Precio is a pointer so that an omitted price fails "required" while 0 passes.
// Stock defaults to 0 when omitted and accepts integral numbers such as 5.0.
type ProductInput struct {
	Nombre string      `json:"nombre" validate:"required,min=1,max=100"`
	Precio *float64    `json:"precio" validate:"required,gte=0"`
	Stock  model.Count `json:"stock" validate:"gte=0"`
}

// Price returns the validated price.
func (p *ProductInput) Price() float64 {
	if p.Precio == nil {
		return 0
	}
	return *p.Precio
}

// ----------------------------------------------------------------------------

type CreateProductRequest struct {
	ProductInput
}

func (r *CreateProductRequest) Validate() error {
	return validation.Struct(r)
}

// ----------------------------------------------------------------------------

type UpdateProductRequest struct {
	ID string `param:"id" json:"-"`
	ProductInput
}

func (r *UpdateProductRequest) Validate() error {
	return validation.Struct(r)
}

// ----------------------------------------------------------------------------

type GetProductRequest struct {
	ID string `param:"id"`
}

func (r *GetProductRequest) Validate() error {
	return nil
}

// ----------------------------------------------------------------------------

type DeleteProductRequest struct {
	ID string `param:"id"`
}

func (r *DeleteProductRequest) Validate() error {
	return nil
}
