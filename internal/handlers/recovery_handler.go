package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vesta-storefront/internal/gateway"
	"vesta-storefront/pkg/validator"
)

type RecoveryGateway interface {
	ForgotPassword(ctx context.Context, email, method string) (string, error)
	CheckRecoveryMethods(ctx context.Context, email string) (*gateway.RecoveryMethods, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}

// RecoveryHandler drives the password-recovery flow: discover the available
// channels, request a reset, redeem the reset code.
type RecoveryHandler struct {
	gateway RecoveryGateway
}

func NewRecoveryHandler(gw RecoveryGateway) *RecoveryHandler {
	return &RecoveryHandler{gateway: gw}
}

type forgotPasswordRequest struct {
	Email  string `json:"email"`
	Method string `json:"method"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *RecoveryHandler) CheckRecoveryMethods(c *gin.Context) {
	var req emailOnlyRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El correo electrónico es obligatorio"})
		return
	}

	methods, err := h.gateway.CheckRecoveryMethods(c.Request.Context(), validator.TrimSpaces(req.Email))
	if err != nil {
		respondGatewayError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, methods)
}

func (h *RecoveryHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Solicitud inválida."})
		return
	}

	req.Email = validator.TrimSpaces(req.Email)
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El correo electrónico es obligatorio"})
		return
	}

	// Email is the default recovery channel when the client does not pick one.
	method := validator.TrimSpaces(req.Method)
	if method == "" {
		method = "email"
	}

	msg, err := h.gateway.ForgotPassword(c.Request.Context(), req.Email, method)
	if err != nil {
		respondGatewayError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *RecoveryHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Solicitud inválida."})
		return
	}

	if strings.TrimSpace(req.Token) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El código de verificación es obligatorio"})
		return
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "La nueva contraseña es obligatoria"})
		return
	}

	msg, err := h.gateway.ResetPassword(c.Request.Context(), validator.TrimSpaces(req.Token), req.NewPassword)
	if err != nil {
		respondGatewayError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
