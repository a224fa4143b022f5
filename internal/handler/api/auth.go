package api

import (
	"errors"
	"net/http"

	"go-shop/internal/domain/user"
	reqdto "go-shop/internal/handler/dto/request"
	resdto "go-shop/internal/handler/dto/response"
	"go-shop/internal/handler/httperr"
	"go-shop/internal/handler/middleware"
	"go-shop/internal/pkg/config"
	"go-shop/internal/pkg/cookie"
	"go-shop/internal/pkg/jwt"
	"go-shop/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	jwtService  *jwt.Service
	cookieCfg   config.CookieConfig
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, jwtService *jwt.Service, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		jwtService:  jwtService,
		cookieCfg:   cookieCfg,
	}
}

// @Summary Sign up
// @Description Register a new customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.SignupRequest true "Signup request"
// @Success 201 {object} resdto.SignupResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req reqdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
		return
	}

	id, err := h.authUseCase.Signup(c.Request.Context(), credentials)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Signup failed", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSignup(id))
}

// @Summary Log in
// @Description Authenticate and receive an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		return
	}

	token, userView, err := h.authUseCase.Login(c.Request.Context(), credentials)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) || errors.Is(err, usecase.ErrInvalidCredentials) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Login failed", nil)
		return
	}

	cookie.SetAccessTokenCookie(c, h.cookieCfg, token, h.jwtService.TokenDuration())
	c.JSON(http.StatusOK, resdto.FromLogin(token, userView))
}

// @Summary Log out
// @Description Clear the access token cookie
// @Tags auth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessTokenCookie(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Current user
// @Description Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, usecase.ErrAuthenticationFailed, "Unauthorized", nil)
		return
	}

	userView, err := h.authUseCase.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Unauthorized", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserView(userView))
}

// @Summary Request password reset
// @Description Issue a password reset token and enqueue the reset email
// @Tags auth
// @Accept json
// @Param request body reqdto.PasswordResetRequest true "Password reset request"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req reqdto.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	email, err := user.NewEmail(req.Email)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid email", nil)
		return
	}

	if err := h.authUseCase.RequestPasswordReset(c.Request.Context(), email); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "No account for that email", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Password reset request failed", nil)
		return
	}

	c.Status(http.StatusAccepted)
}

// @Summary Reset password
// @Description Set a new password using a reset token
// @Tags auth
// @Accept json
// @Param token path string true "Reset token"
// @Param request body reqdto.ResetPasswordRequest true "Reset password request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /auth/reset/{token} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, usecase.ErrInvalidResetToken, "Missing reset token", nil)
		return
	}

	var req reqdto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	newPassword, err := user.NewPassword(req.Password)
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
		return
	}

	if err := h.authUseCase.ResetPassword(c.Request.Context(), token, newPassword); err != nil {
		if errors.Is(err, usecase.ErrInvalidResetToken) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid or expired reset token", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Password reset failed", nil)
		return
	}

	c.Status(http.StatusNoContent)
}
