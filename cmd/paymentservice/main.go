// The payment service opens a pending payment for every created order and
// settles it through the payment gateway's callbacks, announcing the
// outcome on the bus.
package main

import (
	"parceldelivery/cmd"
	"parceldelivery/internal/adapters/out/postgres/paymentrepo"
	"parceldelivery/internal/adapters/out/rabbit"

	"github.com/labstack/gommon/log"
)

func main() {
	config := cmd.LoadConfig()
	logger := cmd.NewLogger("payment-service")

	db, err := cmd.OpenDatabase(config, &paymentrepo.PaymentDTO{})
	if err != nil {
		log.Fatalf("database setup failed: %v", err)
	}

	broker := rabbit.NewClient(config.RabbitURL, logger)
	cmd.ConnectBroker(broker, logger)

	root := cmd.NewCompositionRoot(config, db, broker, logger)

	if err = root.CreateOrderEventsConsumer().Register(broker); err != nil {
		log.Fatalf("failed to register order consumer: %v", err)
	}

	e := cmd.NewEcho()
	root.CreatePaymentServer().RegisterRoutes(e)

	cmd.RunServer(e, config.HTTPPort, logger, func() {
		_ = broker.Close()
	})
}
