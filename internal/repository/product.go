package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/deppfellow/miwebservice/internal/database"
	"github.com/deppfellow/miwebservice/internal/model/product"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) CreateProduct(ctx context.Context, q database.Querier, p *product.Product) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO productos (id, nombre, precio, stock) VALUES (?, ?, ?, ?)`,
		p.ID, p.Nombre, p.Precio, p.Stock,
	)
	if err != nil {
		return errors.Wrapf(err, "table:productos:insert %s", p.ID)
	}
	return nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, q database.Querier, id string) (*product.Product, error) {
	var p product.Product
	err := q.GetContext(ctx, &p,
		`SELECT id, nombre, precio, stock FROM productos WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "table:productos:get %s", id)
	}
	return &p, nil
}

// GetProducts returns every product in the store's natural order.
func (r *ProductRepository) GetProducts(ctx context.Context, q database.Querier) ([]product.Product, error) {
	products := []product.Product{}
	if err := q.SelectContext(ctx, &products, `SELECT id, nombre, precio, stock FROM productos`); err != nil {
		return nil, errors.Wrap(err, "table:productos:list")
	}
	return products, nil
}

// UpdateProduct replaces name, price and stock. It returns sql.ErrNoRows
// when no product has the given id.
func (r *ProductRepository) UpdateProduct(ctx context.Context, q database.Querier, p *product.Product) error {
	result, err := q.ExecContext(ctx,
		`UPDATE productos SET nombre = ?, precio = ?, stock = ? WHERE id = ?`,
		p.Nombre, p.Precio, p.Stock, p.ID,
	)
	if err != nil {
		return errors.Wrapf(err, "table:productos:update %s", p.ID)
	}
	return requireAffected(result, "table:productos:update "+p.ID)
}

// DeleteProduct removes a product. It returns sql.ErrNoRows when no product has the given id.
func (r *ProductRepository) DeleteProduct(ctx context.Context, q database.Querier, id string) error {
	result, err := q.ExecContext(ctx, `DELETE FROM productos WHERE id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "table:productos:delete %s", id)
	}
	return requireAffected(result, "table:productos:delete "+id)
}

func requireAffected(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if n == 0 {
		return errors.Wrap(sql.ErrNoRows, op)
	}
	return nil
}
