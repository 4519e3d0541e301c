package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/marketplace-api/internal/core/ports"
	"github.com/marketsquare/marketplace-api/internal/core/view"
)

// RoleHandler handles HTTP requests for role operations.
type RoleHandler struct {
	roles     ports.RoleService
	users     ports.UserService
	projector *view.Projector
}

func NewRoleHandler(roles ports.RoleService, users ports.UserService, projector *view.Projector) *RoleHandler {
	return &RoleHandler{roles: roles, users: users, projector: projector}
}

// List handles GET /api/roles.
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roles.List(c.Request().Context())
	if err != nil {
		return err
	}
	out, err := h.projector.Roles(c.Request().Context(), roles, view.RoleBasic)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/roles/:id, rendered with the member user list.
func (h *RoleHandler) Get(c echo.Context) error {
	role, err := h.roles.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	out, err := h.projector.Role(c.Request().Context(), role, view.RoleWithUsers)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Users handles GET /api/roles/:roleId/users.
func (h *RoleHandler) Users(c echo.Context) error {
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

// Create handles POST /api/roles.
func (h *RoleHandler) Create(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	created, err := h.roles.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	out, err := h.projector.Role(c.Request().Context(), created, view.RoleBasic)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

// Update handles PUT /api/roles/:id.
func (h *RoleHandler) Update(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	updated, err := h.roles.Update(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	out, err := h.projector.Role(c.Request().Context(), updated, view.RoleBasic)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /api/roles/:id. With the role-cascade policy on,
// member users and their admin/seller products go with the role.
func (h *RoleHandler) Delete(c echo.Context) error {
	if err := h.roles.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
