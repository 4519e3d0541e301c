package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
	"github.com/marketsquare/marketplace-api/internal/core/view"
)

// ProductHandler handles HTTP requests for product operations. Relation ids
// travel as query params (adminId, sellerId, clientId); scalar fields in
// the JSON body. Mutations run through the role constraint pipeline and
// report expected failures as 400/404 with a reason envelope.
type ProductHandler struct {
	products  ports.ProductService
	assembly  ports.AssemblyService
	projector *view.Projector
}

func NewProductHandler(products ports.ProductService, assembly ports.AssemblyService, projector *view.Projector) *ProductHandler {
	return &ProductHandler{products: products, assembly: assembly, projector: projector}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c echo.Context) error {
	return h.listAt(c, view.ProductSummary)
}

// ListBasic handles GET /api/products/basic.
func (h *ProductHandler) ListBasic(c echo.Context) error {
	return h.listAt(c, view.ProductBasic)
}

// ListCatalog handles GET /api/products/catalog.
func (h *ProductHandler) ListCatalog(c echo.Context) error {
	return h.listAt(c, view.ProductCatalog)
}

// ListWithUsers handles GET /api/products/with-users.
func (h *ProductHandler) ListWithUsers(c echo.Context) error {
	return h.listAt(c, view.ProductSummary)
}

func (h *ProductHandler) listAt(c echo.Context, name view.Name) error {
	products, err := h.products.List(c.Request().Context())
	if err != nil {
		return err
	}
	out, err := h.projector.Products(c.Request().Context(), products, name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/products/:id at the detail tier.
func (h *ProductHandler) Get(c echo.Context) error {
	return h.getAt(c, view.ProductDetail)
}

// GetEntity handles GET /api/products/entity/:id.
func (h *ProductHandler) GetEntity(c echo.Context) error {
	return h.getAt(c, view.ProductSummary)
}

// GetEntityDetail handles GET /api/products/entity/:id/detail.
func (h *ProductHandler) GetEntityDetail(c echo.Context) error {
	return h.getAt(c, view.ProductDetail)
}

func (h *ProductHandler) getAt(c echo.Context, name view.Name) error {
	product, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	out, err := h.projector.Product(c.Request().Context(), product, name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ListByAdmin handles GET /api/products/admin/:userId.
func (h *ProductHandler) ListByAdmin(c echo.Context) error {
	products, err := h.products.ListByAdmin(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return h.renderList(c, products)
}

// ListBySeller handles GET /api/products/seller/:userId.
func (h *ProductHandler) ListBySeller(c echo.Context) error {
	products, err := h.products.ListBySeller(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return h.renderList(c, products)
}

// ListByClient handles GET /api/products/client/:userId.
func (h *ProductHandler) ListByClient(c echo.Context) error {
	products, err := h.products.ListByClient(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return h.renderList(c, products)
}

func (h *ProductHandler) renderList(c echo.Context, products []*domain.Product) error {
	out, err := h.projector.Products(c.Request().Context(), products, view.ProductSummary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/products?adminId=&sellerId=&clientId=.
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	created, res, err := h.products.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		AdminID:     c.QueryParam("adminId"),
		SellerID:    c.QueryParam("sellerId"),
		ClientID:    c.QueryParam("clientId"),
	})
	if err != nil {
		return err
	}
	if !res.Valid() {
		return c.JSON(resultStatus(res), errorResponse{Error: res.Reason()})
	}

	out, err := h.projector.Product(c.Request().Context(), created, view.ProductDetail)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

// Update handles PUT /api/products/:id. Absent relation params keep the
// current assignments; an empty clientId clears the client.
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	input := ports.UpdateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		AdminID:     queryParamPtr(c, "adminId"),
		SellerID:    queryParamPtr(c, "sellerId"),
		ClientID:    queryParamPtr(c, "clientId"),
	}

	updated, res, err := h.products.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	if !res.Valid() {
		return c.JSON(resultStatus(res), errorResponse{Error: res.Reason()})
	}

	out, err := h.projector.Product(c.Request().Context(), updated, view.ProductDetail)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /api/products/:id. Deleting a product never touches
// its users.
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Available handles GET /api/products/available.
func (h *ProductHandler) Available(c echo.Context) error {
	out, err := h.assembly.AvailableProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// AssignClient handles POST /api/products/:id/assign-client?clientId=.
// A product that already has a client answers 409.
func (h *ProductHandler) AssignClient(c echo.Context) error {
	clientID := c.QueryParam("clientId")
	if clientID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "clientId is required"})
	}

	product, res, err := h.products.AssignClient(c.Request().Context(), c.Param("id"), clientID)
	if err != nil {
		return err
	}
	if !res.Valid() {
		return c.JSON(resultStatus(res), errorResponse{Error: res.Reason()})
	}

	out, err := h.projector.Product(c.Request().Context(), product, view.ProductDetail)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// RemoveClient handles POST /api/products/:id/remove-client. Idempotent;
// the response always carries client: null.
func (h *ProductHandler) RemoveClient(c echo.Context) error {
	product, err := h.products.RemoveClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	out, err := h.projector.Product(c.Request().Context(), product, view.ProductDetail)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// RoleView handles GET /api/products/role-view/:userId.
func (h *ProductHandler) RoleView(c echo.Context) error {
	out, err := h.assembly.RoleBasedProducts(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// BusinessSummary handles GET /api/products/business-summary.
func (h *ProductHandler) BusinessSummary(c echo.Context) error {
	summary, err := h.assembly.BusinessSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// queryParamPtr returns nil when the param is absent, distinguishing
// "keep current" from "set empty".
func queryParamPtr(c echo.Context, name string) *string {
	if !c.QueryParams().Has(name) {
		return nil
	}
	v := c.QueryParam(name)
	return &v
}
