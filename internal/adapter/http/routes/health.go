package routes

import (
	"net/http"

	response "cardapio_pix/internal/adapter/http/dto/response"
	"cardapio_pix/internal/infrastructure/payments"

	"github.com/gin-gonic/gin"
)

const serviceName = "cardapio-pix"

func addHealthRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, response.HealthResponse{
			OK:       true,
			Service:  serviceName,
			MockMode: payments.MockModeEnabled(),
		})
	})
}
