package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"vesta-storefront/internal/gateway"
	"vesta-storefront/pkg/validator"
)

type RegisterGateway interface {
	Register(ctx context.Context, req gateway.RegisterRequest) error
}

type RegisterHandler struct {
	gateway RegisterGateway
}

func NewRegisterHandler(gw RegisterGateway) *RegisterHandler {
	return &RegisterHandler{gateway: gw}
}

type registerRequest struct {
	FullName string `json:"nombreCompleto" binding:"required,no_html"`
	Email    string `json:"correoElectronico" binding:"required,email"`
	Phone    string `json:"movil"`
	Password string `json:"contrasena" binding:"required"`

	// Consent flags are enforced here and never forwarded to the API.
	AcceptsTerms     bool `json:"aceptaTerminos"`
	AcceptsPrivacy   bool `json:"aceptaPrivacidad"`
	AcceptsMarketing bool `json:"aceptaMarketing"`
}

func (h *RegisterHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Revise los datos del formulario."})
		return
	}

	if !req.AcceptsTerms || !req.AcceptsPrivacy {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Debes aceptar los Términos y la Política de Privacidad."})
		return
	}

	if ok, reason := validator.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": reason})
		return
	}

	err := h.gateway.Register(c.Request.Context(), gateway.RegisterRequest{
		FullName: validator.SanitizeString(validator.TrimSpaces(req.FullName)),
		Email:    validator.TrimSpaces(req.Email),
		Phone:    validator.TrimSpaces(req.Phone),
		Password: req.Password,
		UserType: "USUARIO",
	})
	if err != nil {
		respondGatewayError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registro exitoso"})
}
