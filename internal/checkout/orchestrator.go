package checkout

import (
	"context"
	"errors"

	"vesta-storefront/internal/cart"
	"vesta-storefront/internal/gateway"
	"vesta-storefront/pkg/logger"
)

// ErrEmptyCart is the validation failure for a checkout attempt against an
// empty cart. No network call is made in that case.
var ErrEmptyCart = &gateway.Error{
	Kind:    gateway.KindValidationFailed,
	Message: "El carrito está vacío.",
}

// Gateway is the single remote operation the orchestrator needs.
type Gateway interface {
	SubmitCheckout(ctx context.Context, req gateway.CheckoutRequest) error
}

// Cart is the slice of the cart store the orchestrator reads and clears.
type Cart interface {
	Items(ctx context.Context, sessionID string) ([]cart.LineItem, error)
	Clear(ctx context.Context, sessionID string) error
}

// Orchestrator finalizes a purchase. Three terminal outcomes per attempt:
// rejected-empty, submitted-failed (cart untouched), submitted-succeeded
// (cart cleared, strictly after the remote call returned).
type Orchestrator struct {
	carts   Cart
	gateway Gateway
}

func NewOrchestrator(carts Cart, gw Gateway) *Orchestrator {
	return &Orchestrator{carts: carts, gateway: gw}
}

// Submit validates the cart, posts the checkout and clears the cart on
// confirmed success. A gateway failure propagates verbatim and leaves the
// cart exactly as it was.
func (o *Orchestrator) Submit(ctx context.Context, sessionID string, buyerID int64) error {
	items, err := o.carts.Items(ctx, sessionID)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return ErrEmptyCart
	}

	req := gateway.CheckoutRequest{
		BuyerID: buyerID,
		Items:   make([]gateway.CheckoutItem, 0, len(items)),
	}
	for _, item := range items {
		req.Items = append(req.Items, gateway.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := o.gateway.SubmitCheckout(ctx, req); err != nil {
		var gerr *gateway.Error
		if errors.As(err, &gerr) {
			logger.Warn("Checkout rejected by gateway", map[string]interface{}{
				"buyer_id": buyerID,
				"kind":     gerr.Kind,
			})
		}
		return err
	}

	if err := o.carts.Clear(ctx, sessionID); err != nil {
		// The order is already placed; report success and leave the stale
		// cart to the session TTL.
		logger.Error(err, "Failed to clear cart after checkout", map[string]interface{}{
			"buyer_id": buyerID,
		})
		return nil
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"buyer_id": buyerID,
		"items":    len(items),
	})
	return nil
}
