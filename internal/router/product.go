package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/miwebservice/internal/handler"
	"github.com/deppfellow/miwebservice/internal/middleware"
)

// Session is attached per route. Group middleware registers catch-all routes,
// and those answer a wrong method with 404 instead of 405.
func registerProductRoutes(api *echo.Group, h *handler.Handlers, session *middleware.SessionMiddleware) {
	products := api.Group("/productos")
	withSession := session.Session()

	products.GET("", handler.Handle(h.Product.GetProducts, http.StatusOK), withSession)
	products.POST("", handler.Handle(h.Product.CreateProduct, http.StatusCreated), withSession)
	products.GET("/:id", handler.Handle(h.Product.GetProductByID, http.StatusOK), withSession)
	products.PUT("/:id", handler.Handle(h.Product.UpdateProduct, http.StatusOK), withSession)
	products.DELETE("/:id", handler.Handle(h.Product.DeleteProduct, http.StatusOK), withSession)
}
