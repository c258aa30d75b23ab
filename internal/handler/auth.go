package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/auth"
	"github.com/iliyamo/cinema-ticket-booking/internal/inventory"
	"github.com/iliyamo/cinema-ticket-booking/internal/middleware"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// AuthHandler implements registration, login and identity lookup
// against the users registry.
type AuthHandler struct {
	Users        *inventory.Users
	JWTSecret    string
	AccessTTLMin int
	BcryptCost   int
}

// NewAuthHandler constructs an AuthHandler.  Users must be non-nil.
func NewAuthHandler(users *inventory.Users, jwtSecret string, accessTTLMin, bcryptCost int) *AuthHandler {
	if users == nil {
		panic("nil users registry passed to NewAuthHandler")
	}
	return &AuthHandler{Users: users, JWTSecret: jwtSecret, AccessTTLMin: accessTTLMin, BcryptCost: bcryptCost}
}

// Register handles POST /v1/auth/register.  The body carries name,
// password and role (ADMIN or CUSTOMER, defaulting to CUSTOMER).
// Passwords are stored as bcrypt hashes only.
func (h *AuthHandler) Register(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must not be empty"})
	}
	if body.Role == "" {
		body.Role = model.RoleCustomer
	}
	hash, err := auth.HashPassword(body.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to hash password"})
	}
	user, err := h.Users.Register(body.Name, hash, body.Role)
	switch {
	case errors.Is(err, inventory.ErrUserExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
	case errors.Is(err, inventory.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, inventory.ErrPersistence):
		// The account is registered; the flush failure is a warning.
		c.Logger().Warnf("users store flush failed after registering %s", user.ID)
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": user.ID, "name": user.Name, "role": user.Role})
}

// Login handles POST /v1/auth/login and issues an access token when
// the credentials match a registered user.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	user, err := h.Users.FindByName(body.Name)
	if err != nil || !auth.VerifyPassword(user.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	token, err := auth.NewAccessToken(h.JWTSecret, auth.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token.Token,
		"expires_at":   token.Exp.Format(time.RFC3339),
		"role":         user.Role,
	})
}

// Me handles GET /v1/me and returns the authenticated user's info.
func (h *AuthHandler) Me(c echo.Context) error {
	id, _ := c.Get(middleware.CtxUserID).(string)
	user, err := h.Users.FindByID(id)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": user.ID, "name": user.Name, "role": user.Role})
}
