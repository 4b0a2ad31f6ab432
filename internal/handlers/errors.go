package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vesta-storefront/internal/gateway"
)

// respondGatewayError writes a classified gateway failure as JSON.
// rejectedStatus is the code used for ClientRejected and ValidationFailed,
// since login maps a rejection to 401 while the other flows use 400.
func respondGatewayError(c *gin.Context, err error, rejectedStatus int) {
	var gerr *gateway.Error
	if !errors.As(err, &gerr) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ocurrió un error inesperado."})
		return
	}

	switch gerr.Kind {
	case gateway.KindClientRejected, gateway.KindValidationFailed:
		c.JSON(rejectedStatus, gin.H{"message": gerr.Message})
	case gateway.KindUnreachable:
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": gerr.Message})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"message": gerr.Message})
	}
}
