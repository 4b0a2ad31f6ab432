package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vesta-storefront/internal/gateway"
	"vesta-storefront/internal/middleware"
	"vesta-storefront/internal/session"
	"vesta-storefront/pkg/logger"
	"vesta-storefront/pkg/validator"
)

// AuthGateway is the slice of the gateway client the auth handler uses.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*gateway.AuthResponse, error)
	ResendConfirmation(ctx context.Context, email string) (string, error)
}

type AuthHandler struct {
	gateway  AuthGateway
	sessions session.Store
}

func NewAuthHandler(gw AuthGateway, sessions session.Store) *AuthHandler {
	return &AuthHandler{gateway: gw, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"correoElectronico"`
	Password string `json:"contrasena"`
}

type emailOnlyRequest struct {
	Email string `json:"email"`
}

// Login authenticates against the API and binds the returned identity to the
// session. Responds with the role-based redirect URL the frontend follows.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Solicitud inválida."})
		return
	}

	req.Email = validator.TrimSpaces(req.Email)
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El correo electrónico es obligatorio"})
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "La contraseña es obligatoria"})
		return
	}

	auth, err := h.gateway.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondGatewayError(c, err, http.StatusUnauthorized)
		return
	}

	identity := session.Identity{
		Token:    auth.Token,
		Role:     auth.Role,
		UserName: validator.SanitizeString(auth.Name),
		UserID:   auth.ID,
	}

	sid := middleware.SessionID(c)
	if err := session.SaveIdentity(c.Request.Context(), h.sessions, sid, identity); err != nil {
		logger.Error(err, "Failed to persist session identity", map[string]interface{}{"email": req.Email})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al procesar el login."})
		return
	}

	redirectURL := "/cliente/dashboard"
	if identity.IsAdmin() {
		redirectURL = "/admin/dashboard"
	}

	logger.Info("Session created", map[string]interface{}{
		"user_id": identity.UserID,
		"rol":     identity.Role,
	})

	c.JSON(http.StatusOK, gin.H{
		"token":       auth.Token,
		"rol":         auth.Role,
		"nombre":      identity.UserName,
		"id":          auth.ID,
		"redirectUrl": redirectURL,
	})
}

// Logout destroys the session and returns to the landing page.
func (h *AuthHandler) Logout(c *gin.Context) {
	sid := middleware.SessionID(c)
	if err := h.sessions.Destroy(c.Request.Context(), sid); err != nil {
		logger.Error(err, "Failed to destroy session", nil)
	}

	c.Redirect(http.StatusFound, "/")
}

// ResendConfirmation forwards a confirmation-email resend request.
func (h *AuthHandler) ResendConfirmation(c *gin.Context) {
	var req emailOnlyRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El email es obligatorio"})
		return
	}

	msg, err := h.gateway.ResendConfirmation(c.Request.Context(), validator.TrimSpaces(req.Email))
	if err != nil {
		respondGatewayError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
