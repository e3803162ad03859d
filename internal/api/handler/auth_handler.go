package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ValiCoder/courseboard/internal/api/middleware"
	"github.com/ValiCoder/courseboard/internal/core/domain"
	"github.com/ValiCoder/courseboard/internal/core/ports"
)

// AuthHandler serves the registration, login, and logout routes. These sit
// outside the API prefix and answer browser form posts with the redirect
// flow; callers that speak JSON get JSON back.
type AuthHandler struct {
	authService ports.AuthService
	codec       *middleware.CookieCodec
}

func NewAuthHandler(authService ports.AuthService, codec *middleware.CookieCodec) *AuthHandler {
	return &AuthHandler{authService: authService, codec: codec}
}

type registerRequest struct {
	Name     string `json:"name"     form:"name"     validate:"required"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Role     string `json:"role"     form:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type authResponse struct {
	User userResponse `json:"user"`
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			if wantsJSON(c) {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "user already exists"})
			}
			return c.HTML(http.StatusBadRequest, `User already exists. <a href="/login">Login here</a>`)
		}
		return err
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusCreated, authResponse{User: toUserResponse(user)})
	}
	return c.HTML(http.StatusOK, `Registration successful! <a href="/login">Login now</a>`)
}

// Login authenticates a user and establishes a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			if wantsJSON(c) {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
			}
			return c.HTML(http.StatusUnauthorized, `Invalid email or password. <a href="/login">Try again</a>`)
		}
		return err
	}

	if err := h.setSessionCookie(c, sess); err != nil {
		return err
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, authResponse{User: toUserResponse(user)})
	}
	return c.Redirect(http.StatusFound, "/user?id="+user.ID)
}

// Logout destroys the session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      302
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if sessionID, err := h.codec.Decode(cookie.Value); err == nil {
			_ = h.authService.Logout(c.Request().Context(), sessionID)
		}
	}
	clearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) setSessionCookie(c echo.Context, sess *domain.Session) error {
	value, err := h.codec.Encode(sess.ID)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
