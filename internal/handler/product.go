package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/miwebservice/internal/middleware"
	"github.com/deppfellow/miwebservice/internal/model"
	"github.com/deppfellow/miwebservice/internal/model/product"
	"github.com/deppfellow/miwebservice/internal/response"
	"github.com/deppfellow/miwebservice/internal/server"
	"github.com/deppfellow/miwebservice/internal/service"
)

type ProductHandler struct {
	Handler
	productService *service.ProductService
}

func NewProductHandler(s *server.Server, productService *service.ProductService) *ProductHandler {
	return &ProductHandler{
		Handler:        NewHandler(s),
		productService: productService,
	}
}

func (h *ProductHandler) CreateProduct(c echo.Context, payload *product.CreateProductRequest) (*product.Product, error) {
	return h.productService.CreateProduct(c.Request().Context(), middleware.GetSession(c), payload)
}

func (h *ProductHandler) GetProducts(c echo.Context, _ *model.EmptyRequest) ([]product.Product, error) {
	return h.productService.GetProducts(c.Request().Context(), middleware.GetSession(c))
}

func (h *ProductHandler) GetProductByID(c echo.Context, payload *product.GetProductRequest) (*product.Product, error) {
	return h.productService.GetProduct(c.Request().Context(), middleware.GetSession(c), payload.ID)
}

func (h *ProductHandler) UpdateProduct(c echo.Context, payload *product.UpdateProductRequest) (*product.Product, error) {
	return h.productService.UpdateProduct(c.Request().Context(), middleware.GetSession(c), payload)
}

func (h *ProductHandler) DeleteProduct(c echo.Context, payload *product.DeleteProductRequest) (response.Envelope[any], error) {
	if err := h.productService.DeleteProduct(c.Request().Context(), middleware.GetSession(c), payload.ID); err != nil {
		return response.Envelope[any]{}, err
	}
	return response.OK[any]("Deleted", nil), nil
}
