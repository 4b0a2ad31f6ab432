package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"vesta-storefront/internal/cart"
	"vesta-storefront/internal/checkout"
	"vesta-storefront/internal/gateway"
	"vesta-storefront/internal/middleware"
	"vesta-storefront/pkg/logger"
	"vesta-storefront/pkg/validator"
)

// CartHandler owns the session cart routes. Add and remove mutate the cart
// directly; checkout goes through the orchestrator, the only path that talks
// to the gateway on the sales side.
type CartHandler struct {
	carts        *cart.Store
	orchestrator *checkout.Orchestrator
}

func NewCartHandler(carts *cart.Store, orchestrator *checkout.Orchestrator) *CartHandler {
	return &CartHandler{carts: carts, orchestrator: orchestrator}
}

type addItemRequest struct {
	ProductID string `json:"seguroId" binding:"required"`
	Name      string `json:"nombre"`
	UnitPrice string `json:"precio"`
	ImageURL  string `json:"imagenUrl"`
}

// View renders the cart page data: items in insertion order plus the total.
func (h *CartHandler) View(c *gin.Context) {
	sid := middleware.SessionID(c)
	identity, _ := middleware.CurrentIdentity(c)

	items, err := h.carts.Items(c.Request.Context(), sid)
	if err != nil {
		logger.Error(err, "Failed to load cart", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "No se pudo cargar el carrito."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"carrito":       items,
		"total":         cart.Total(items).StringFixed(2),
		"nombreUsuario": identity.UserName,
	})
}

// Add puts one unit of a product in the cart. Called via fetch from the
// catalog page; replies with a bare "OK" like the original endpoint.
func (h *CartHandler) Add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Solicitud inválida."})
		return
	}

	price, err := decimalFromString(req.UnitPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Precio inválido."})
		return
	}

	item := cart.LineItem{
		ProductID: req.ProductID,
		Name:      validator.SanitizeString(req.Name),
		UnitPrice: price,
		ImageURL:  validator.TrimSpaces(req.ImageURL),
	}

	sid := middleware.SessionID(c)
	if err := h.carts.Add(c.Request.Context(), sid, item); err != nil {
		logger.Error(err, "Failed to add cart item", map[string]interface{}{"product_id": req.ProductID})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "No se pudo actualizar el carrito."})
		return
	}

	c.String(http.StatusOK, "OK")
}

// Remove drops the item at a display position and returns to the cart page.
// An out-of-bounds index leaves the cart unchanged.
func (h *CartHandler) Remove(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Redirect(http.StatusFound, "/cliente/carrito")
		return
	}

	sid := middleware.SessionID(c)
	if err := h.carts.Remove(c.Request.Context(), sid, index); err != nil {
		logger.Error(err, "Failed to remove cart item", map[string]interface{}{"index": index})
	}

	c.Redirect(http.StatusFound, "/cliente/carrito")
}

// Checkout finalizes the purchase. The cart is cleared only on confirmed
// success; every failure leaves it untouched.
func (h *CartHandler) Checkout(c *gin.Context) {
	sid := middleware.SessionID(c)
	identity, _ := middleware.CurrentIdentity(c)

	err := h.orchestrator.Submit(c.Request.Context(), sid, identity.UserID)
	if err == nil {
		c.Redirect(http.StatusFound, "/cliente/dashboard?success=checkout")
		return
	}

	var gerr *gateway.Error
	if errors.As(err, &gerr) && gerr.Kind == gateway.KindValidationFailed {
		c.Redirect(http.StatusFound, "/cliente/carrito?error=empty")
		return
	}

	logger.Error(err, "Checkout failed", map[string]interface{}{"user_id": identity.UserID})
	c.Redirect(http.StatusFound, "/cliente/carrito?error=api_fail")
}

func decimalFromString(s string) (decimal.Decimal, error) {
	s = validator.TrimSpaces(s)
	if s == "" {
		return decimal.Zero, nil
	}

	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if price.IsNegative() {
		return decimal.Zero, errors.New("negative price")
	}
	return price, nil
}
