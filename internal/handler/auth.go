package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kevinwu/room-reservation/internal/config"
	"github.com/kevinwu/room-reservation/internal/repository"
	"github.com/kevinwu/room-reservation/internal/utils"
)

// AuthHandler bundles dependencies for the signup/login endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup creates a user and returns a token immediately (auto-login).
func (h *AuthHandler) Signup(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Username, req.Password, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrUsernameExists {
			return c.JSON(http.StatusConflict, echo.Map{"msg": "username already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "registration failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, req.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "issue token failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"msg":          "registration successful",
		"access_token": access.Token,
	})
}

// Login verifies credentials and returns a fresh access token. Unknown
// usernames and wrong passwords produce the same 401 so the endpoint does
// not leak which usernames exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"access_token": access.Token})
}

// Protected is a simple authenticated probe returning the caller identity.
func (h *AuthHandler) Protected(c echo.Context) error {
	username, err := usernameFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"logged_in_as": username,
		"msg":          "Welcome to the protected route!",
	})
}
