package routes

import (
	"log"
	"os"
	"strconv"

	_ "cardapio_pix/docs" // generated by swag
	"cardapio_pix/internal/adapter/http/handlers"
	"cardapio_pix/internal/adapter/persistence/repository"
	"cardapio_pix/internal/infrastructure/database"
	"cardapio_pix/internal/infrastructure/payments"
	"cardapio_pix/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run wires dependencies and starts the server. Missing mandatory
// credentials (processor token, database credentials) terminate the process
// before the listener opens.
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()
	orderRepo := repository.NewOrderDynamoRepository(ddb)

	gateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Fatalf("Mercado Pago gateway not configured: %v", err)
	}

	pixUseCase := usecase.NewPixChargeUseCase(orderRepo, gateway)
	webhookUseCase := usecase.NewWebhookUseCase(orderRepo, gateway)

	pixHandler := handlers.NewPixChargeHandler(pixUseCase)
	webhookHandler := handlers.NewWebhookHandler(webhookUseCase, os.Getenv("WEBHOOK_SECRET"))

	addHealthRoutes(router)
	addPixRoutes(router, pixHandler, webhookHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
	router.Use(requestID())
}

// requestID tags every request so the [area][layer] logs can be correlated.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}
