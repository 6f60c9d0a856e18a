package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/miwebservice/internal/database"
	"github.com/deppfellow/miwebservice/internal/errs"
	"github.com/deppfellow/miwebservice/internal/model/product"
	"github.com/deppfellow/miwebservice/internal/repository"
	"github.com/deppfellow/miwebservice/internal/server"
)

type ProductService struct {
	server      *server.Server
	productRepo *repository.ProductRepository
}

func NewProductService(s *server.Server, productRepo *repository.ProductRepository) *ProductService {
	return &ProductService{
		server:      s,
		productRepo: productRepo,
	}
}

func productNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Product not found", nil)
	}
	return err
}

// CreateProduct assigns a fresh UUID, inserts and commits.
func (s *ProductService) CreateProduct(ctx context.Context, session *database.Session, payload *product.CreateProductRequest) (*product.Product, error) {
	logger := zerolog.Ctx(ctx)

	item := &product.Product{
		ID:     uuid.NewString(),
		Nombre: payload.Nombre,
		Precio: payload.Price(),
		Stock:  int(payload.Stock),
	}

	if err := s.productRepo.CreateProduct(ctx, session, item); err != nil {
		logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	if err := session.Commit(); err != nil {
		logger.Error().Err(err).Msg("failed to commit product")
		return nil, err
	}

	logger.Info().
		Str("event", "product_created").
		Str("product_id", item.ID).
		Msg("Product created successfully")

	return item, nil
}

func (s *ProductService) GetProduct(ctx context.Context, session *database.Session, id string) (*product.Product, error) {
	item, err := s.productRepo.GetProductByID(ctx, session, id)
	if err != nil {
		return nil, productNotFound(err)
	}
	return item, nil
}

func (s *ProductService) GetProducts(ctx context.Context, session *database.Session) ([]product.Product, error) {
	return s.productRepo.GetProducts(ctx, session)
}

// UpdateProduct fully replaces name, price and stock of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, session *database.Session, payload *product.UpdateProductRequest) (*product.Product, error) {
	logger := zerolog.Ctx(ctx)

	item := &product.Product{
		ID:     payload.ID,
		Nombre: payload.Nombre,
		Precio: payload.Price(),
		Stock:  int(payload.Stock),
	}

	if err := s.productRepo.UpdateProduct(ctx, session, item); err != nil {
		return nil, productNotFound(err)
	}

	if err := session.Commit(); err != nil {
		logger.Error().Err(err).Msg("failed to commit product update")
		return nil, err
	}

	logger.Info().
		Str("event", "product_updated").
		Str("product_id", item.ID).
		Msg("Product updated successfully")

	return item, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, session *database.Session, id string) error {
	logger := zerolog.Ctx(ctx)

	if err := s.productRepo.DeleteProduct(ctx, session, id); err != nil {
		return productNotFound(err)
	}

	if err := session.Commit(); err != nil {
		logger.Error().Err(err).Msg("failed to commit product deletion")
		return err
	}

	logger.Info().
		Str("event", "product_deleted").
		Str("product_id", id).
		Msg("Product deleted successfully")

	return nil
}
