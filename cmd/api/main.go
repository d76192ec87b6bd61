package main

import (
	_ "cardapio_pix/docs"
	"cardapio_pix/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Cardapio PIX API
// @version         1.0
// @description     PIX charge service (Mercado Pago + DynamoDB order mirrors).

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /

func main() {
	routes.Run()
}
