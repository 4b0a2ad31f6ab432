package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"vesta-storefront/internal/gateway"
	"vesta-storefront/internal/middleware"
)

// ListingGateway provides the three best-effort administrative reads. Each
// returns an empty slice instead of failing, so the dashboard always renders.
type ListingGateway interface {
	ListOrders(ctx context.Context, token string) []gateway.Order
	ListDataSubjectRequests(ctx context.Context, token string) []gateway.DataSubjectRequest
	ListClaims(ctx context.Context, token string) []gateway.Claim
}

type AdminHandler struct {
	gateway ListingGateway
}

func NewAdminHandler(gw ListingGateway) *AdminHandler {
	return &AdminHandler{gateway: gw}
}

// Dashboard aggregates orders, data-subject requests and claims for the
// administrative view.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, gin.H{
		"ordenes":       h.gateway.ListOrders(ctx, identity.Token),
		"solicitudes":   h.gateway.ListDataSubjectRequests(ctx, identity.Token),
		"siniestros":    h.gateway.ListClaims(ctx, identity.Token),
		"nombreUsuario": identity.UserName,
	})
}
