package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
	"github.com/marketsquare/marketplace-api/internal/core/view"
)

// UserHandler handles HTTP requests for user operations. Responses are
// rendered through the view registry; no handler ever serializes a domain
// entity directly, which is what keeps the password out of every payload.
type UserHandler struct {
	users     ports.UserService
	products  ports.ProductService
	projector *view.Projector
}

func NewUserHandler(users ports.UserService, products ports.ProductService, projector *view.Projector) *UserHandler {
	return &UserHandler{users: users, products: products, projector: projector}
}

// List handles GET /api/users.
func (h *UserHandler) List(c echo.Context) error {
	return h.listAt(c, view.UserList)
}

// ListBasic handles GET /api/users/basic.
func (h *UserHandler) ListBasic(c echo.Context) error {
	return h.listAt(c, view.UserBasic)
}

// ListSummary handles GET /api/users/summary and /api/users/with-role.
func (h *UserHandler) ListSummary(c echo.Context) error {
	return h.listAt(c, view.UserSummary)
}

// ListView handles GET /api/users/list-view.
func (h *UserHandler) ListView(c echo.Context) error {
	return h.listAt(c, view.UserList)
}

func (h *UserHandler) listAt(c echo.Context, name view.Name) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	out, err := h.projector.Users(c.Request().Context(), users, name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/users/:id, rendered at the detail tier with the
// derived product collections.
func (h *UserHandler) Get(c echo.Context) error {
	return h.getAt(c, view.UserDetail)
}

// GetEntity handles GET /api/users/entity/:id.
func (h *UserHandler) GetEntity(c echo.Context) error {
	return h.getAt(c, view.UserSummary)
}

// GetEntityBasic handles GET /api/users/entity/:id/basic.
func (h *UserHandler) GetEntityBasic(c echo.Context) error {
	return h.getAt(c, view.UserBasic)
}

func (h *UserHandler) getAt(c echo.Context, name view.Name) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	out, err := h.projector.User(c.Request().Context(), user, name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ListByRole handles GET /api/users/role/:roleId.
func (h *UserHandler) ListByRole(c echo.Context) error {
	users, err := h.users.ListByRole(c.Request().Context(), c.Param("roleId"))
	if err != nil {
		return err
	}
	out, err := h.projector.Users(c.Request().Context(), users, view.UserSummary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// AdminProducts handles GET /api/users/:id/admin-products.
func (h *UserHandler) AdminProducts(c echo.Context) error {
	products, err := h.products.ListByAdmin(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.renderProducts(c, products)
}

// SellerProducts handles GET /api/users/:id/seller-products.
func (h *UserHandler) SellerProducts(c echo.Context) error {
	products, err := h.products.ListBySeller(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.renderProducts(c, products)
}

// ClientProducts handles GET /api/users/:id/client-products.
func (h *UserHandler) ClientProducts(c echo.Context) error {
	products, err := h.products.ListByClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.renderProducts(c, products)
}

func (h *UserHandler) renderProducts(c echo.Context, products []*domain.Product) error {
	out, err := h.projector.Products(c.Request().Context(), products, view.ProductSummary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/users?roleId=... An unknown role id is a caller
// mistake on a create, so it reads as 400 rather than 404.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	created, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		RoleID:   c.QueryParam("roleId"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "role not found"})
		}
		return err
	}

	out, err := h.projector.User(c.Request().Context(), created, view.UserSummary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

// Update handles PUT /api/users/:id?roleId=... The roleId param is
// three-state: absent keeps the current role, empty clears it, anything
// else reassigns. The password never changes through this endpoint.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	input := ports.UpdateUserInput{Email: req.Email}
	if c.QueryParams().Has("roleId") {
		roleID := c.QueryParam("roleId")
		input.RoleID = &roleID
	}

	updated, err := h.users.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}

	out, err := h.projector.User(c.Request().Context(), updated, view.UserSummary)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
