package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /users.
//
// @Summary      Register a user on first sign-in
// @Description  Repeat registrations return exists=true and change nothing.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "User profile"
// @Success      200   {object}  insertedResponse
// @Success      200   {object}  userExistsResponse
// @Failure      400   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.Register(c.Request().Context(), ports.RegisterUserInput{
		Email: req.Email,
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		return err
	}
	if res.AlreadyExists {
		return c.JSON(http.StatusOK, userExistsResponse{
			Success: true,
			Exists:  true,
			Email:   res.Email,
			Message: "user already exists",
		})
	}
	return c.JSON(http.StatusOK, insertedResponse{Success: true, InsertedID: res.InsertedID})
}

// List handles GET /users.
//
// @Summary      List users other than the caller
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}
	users, err := h.service.ListUsers(c.Request().Context(), email)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// GetRole handles GET /users/role/:email.
//
// @Summary      Get a user's role
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  roleResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/role/{email} [get]
func (h *UserHandler) GetRole(c echo.Context) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	role, err := h.service.GetRole(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleResponse{Success: true, Role: string(role)})
}

// TouchLastLogin handles PATCH /users/:email.
//
// @Summary      Record a sign-in
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        email  path      string            true   "User email"
// @Param        body   body      lastLoginRequest  false  "Sign-in time, defaults to now"
// @Success      200    {object}  modifiedResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/{email} [patch]
func (h *UserHandler) TouchLastLogin(c echo.Context) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	var req lastLoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	var at time.Time
	if req.LastLoginTime != nil {
		at = *req.LastLoginTime
	}

	modified, err := h.service.TouchLastLogin(c.Request().Context(), email, at)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, modifiedResponse{Success: true, Modified: modified})
}

// UpdateRole handles PATCH /users/role/:id.
//
// @Summary      Change a user's role
// @Description  Also marks the user as verified.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string             true  "User id (ObjectID hex)"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  modifiedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/role/{id} [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	modified, err := h.service.UpdateRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, modifiedResponse{Success: true, Modified: modified})
}

// RequestSeller handles PATCH /users/request-seller/:email.
//
// @Summary      Ask to become a seller
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  modifiedResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /users/request-seller/{email} [patch]
func (h *UserHandler) RequestSeller(c echo.Context) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	modified, err := h.service.RequestSeller(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, modifiedResponse{Success: true, Modified: modified})
}
