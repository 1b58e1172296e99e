package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/epiwatch/backend/internal/application/usecase/auth"
	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/entrypoint/dto"
)

// AuthController handles account and session endpoints.
type AuthController struct {
	register *auth.RegisterUseCase
	login    *auth.LoginUseCase
	refresh  *auth.RefreshUseCase
	logout   *auth.LogoutUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	register *auth.RegisterUseCase,
	login *auth.LoginUseCase,
	refresh *auth.RefreshUseCase,
	logout *auth.LogoutUseCase,
) *AuthController {
	return &AuthController{register: register, login: login, refresh: refresh, logout: logout}
}

// Register handles POST /auth/register.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "email, name and password are required", string(domainerror.ErrCodeMissingFields))
		return
	}

	out, err := c.register.Execute(ctx.Request.Context(), auth.RegisterInput{
		Email:         req.Email,
		Name:          req.Name,
		Password:      req.Password,
		TermsAccepted: req.TermsAccepted,
	})
	respondSession(ctx, http.StatusCreated, out, err)
}

// Login handles POST /auth/login.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "email and password are required", string(domainerror.ErrCodeMissingFields))
		return
	}

	out, err := c.login.Execute(ctx.Request.Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	respondSession(ctx, http.StatusOK, out, err)
}

// Refresh handles POST /auth/refresh.
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "refresh_token is required", string(domainerror.ErrCodeMissingToken))
		return
	}

	out, err := c.refresh.Execute(ctx.Request.Context(), req.RefreshToken)
	respondSession(ctx, http.StatusOK, out, err)
}

// Logout handles POST /auth/logout. It answers 200 even without a body.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshRequest
	if ctx.ShouldBindJSON(&req) == nil {
		c.logout.Execute(ctx.Request.Context(), req.RefreshToken)
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}

func respondSession(ctx *gin.Context, status int, out *auth.SessionOutput, err error) {
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(status, dto.ToSessionResponse(out))
}
