package controller

import (
	"errors"
	"healthlearn_backend/internal/service"
	"healthlearn_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService  *service.AuthService
	ResetService *service.PasswordResetService
}

func NewAuthController(authService *service.AuthService, resetService *service.PasswordResetService) *AuthController {
	return &AuthController{
		AuthService:  authService,
		ResetService: resetService,
	}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates a buyer account; trusted emails become sellers directly
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration form"
// @Success 201 {object} util.Response "Account created"
// @Failure 400 {object} util.Response "Invalid form"
// @Failure 409 {object} util.Response "Email already registered"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, http.StatusConflict, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID, "role": user.Role})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in
// @Description Exchanges credentials for a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response "Token"
// @Failure 401 {object} util.Response "Wrong credentials"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.Error(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// Me godoc
// @Summary Current user
// @Description Returns the authenticated user with their professional profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}

// CompleteProfile godoc
// @Summary Complete the professional profile
// @Description Saves the professional profile form and marks the profile complete
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProfileInput true "Profile form"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 422 {object} util.Response "Field errors"
// @Router /api/auth/complete-profile [post]
func (c *AuthController) CompleteProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var in service.ProfileInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if fieldErrs := in.Validate(); len(fieldErrs) > 0 {
		ctx.JSON(http.StatusUnprocessableEntity, util.Response{
			Code:    http.StatusUnprocessableEntity,
			Message: "Formulario incompleto",
			Detail:  "Formulario incompleto",
			Data:    gin.H{"errors": fieldErrs},
		})
		return
	}

	user, err := c.AuthService.CompleteProfile(claims.UserID, in)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type resetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordReset godoc
// @Summary Request a password-reset code
// @Description Mails a one-time code; the response is identical for unknown emails
// @Tags auth
// @Accept json
// @Produce json
// @Param body body resetRequest true "Account email"
// @Success 200 {object} util.Response
// @Router /api/auth/request-password-reset [post]
func (c *AuthController) RequestPasswordReset(ctx *gin.Context) {
	var req resetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ResetService.RequestReset(ctx.Request.Context(), req.Email); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"sent": true})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// VerifyOTP godoc
// @Summary Verify a password-reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body verifyOTPRequest true "Email and code"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "Wrong or expired code"
// @Router /api/auth/verify-otp [post]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req verifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ResetService.VerifyOTP(ctx.Request.Context(), req.Email, req.Code); err != nil {
		util.Error(ctx, http.StatusUnauthorized, err.Error())
		return
	}
	util.Success(ctx, gin.H{"valid": true})
}

type resetFinalRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ResetPassword godoc
// @Summary Set a new password with a verified code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body resetFinalRequest true "Email, code and new password"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "Wrong or expired code"
// @Router /api/auth/reset-password-final [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req resetFinalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ResetService.ResetPassword(ctx.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		if errors.Is(err, util.ErrInvalidOTP) {
			util.Error(ctx, http.StatusUnauthorized, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"reset": true})
}
