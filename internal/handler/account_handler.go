package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todoapi/internal/service"
)

// AccountHandler handles registration and login endpoints.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"notblank" example:"alice"`
	Password string `json:"password" validate:"notblank" example:"s3cret"`
	Email    string `json:"email" validate:"notblank" example:"alice@example.com"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"notblank" example:"alice"`
	Password string `json:"password" validate:"notblank" example:"s3cret"`
}

// Register godoc
// @Summary Register a new user
// @Tags account
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} UserIDResponse
// @Failure 400 {object} errors.ErrorResponse "missing field or username/email taken"
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accountService.Register(c.Request().Context(), req.Username, req.Password, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, UserIDResponse{
		Response: success(http.StatusCreated, "User registered successfully"),
		UserID:   user.ID,
	})
}

// Login godoc
// @Summary Login user
// @Description Checks the credentials and returns the user id. No token is issued;
// @Description callers pass userId on later requests.
// @Tags account
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} UserIDResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accountService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, UserIDResponse{
		Response: success(http.StatusOK, "Login successful"),
		UserID:   user.ID,
	})
}
