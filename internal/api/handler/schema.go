package handler

import (
	"net/http"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// resultStatus maps an expected business-rule failure to its HTTP status:
// dangling references read as 404, everything else as 400.
func resultStatus(res domain.Result) int {
	if res.Kind() == domain.FailureNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// --- User request types ---

type createUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type updateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// --- Role request types ---

type roleRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

// --- Product request types ---

type productRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Price       float64 `json:"price"       validate:"required,gte=0.01,lte=99999.99"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Stock       int     `json:"stock"       validate:"gte=0"`
}
