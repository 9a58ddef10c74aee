// The notification service listens to order and payment milestones and
// notifies customers. It keeps no database of its own.
package main

import (
	"parceldelivery/cmd"
	"parceldelivery/internal/adapters/out/rabbit"

	"github.com/labstack/gommon/log"
)

func main() {
	config := cmd.LoadConfig()
	logger := cmd.NewLogger("notification-service")

	broker := rabbit.NewClient(config.RabbitURL, logger)
	cmd.ConnectBroker(broker, logger)

	root := cmd.NewCompositionRoot(config, nil, broker, logger)

	if err := root.CreateNotificationConsumer().Register(broker); err != nil {
		log.Fatalf("failed to register notification consumer: %v", err)
	}

	e := cmd.NewEcho()

	cmd.RunServer(e, config.HTTPPort, logger, func() {
		_ = broker.Close()
	})
}
