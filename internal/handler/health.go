package handler

import (
	"context"
	"net/http"
	"time"

	"renove/internal/infra"

	"github.com/gin-gonic/gin"
)

// StoreProbe is what the health check needs from the persistence layer.
type StoreProbe interface {
	Ping(ctx context.Context) error
	State() infra.CBState
}

// Health returns a JSON health check response.
// Checks store connectivity; never exposes credentials or internals.
//
// @Summary Estado del servicio
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func Health(store StoreProbe, driver string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storeStatus := "connected"
		if store.Ping(ctx) != nil {
			storeStatus = "error"
		}

		status := http.StatusOK
		if storeStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"driver":  driver,
			"store":   storeStatus,
			"breaker": store.State().String(),
		})
	}
}
