// The order service owns delivery orders: it exposes the order REST API,
// confirms orders on payment outcomes, assigns couriers and records
// delivery progress.
package main

import (
	"parceldelivery/cmd"
	"parceldelivery/internal/adapters/out/postgres/assignmentrepo"
	"parceldelivery/internal/adapters/out/postgres/orderrepo"
	"parceldelivery/internal/adapters/out/rabbit"

	"github.com/labstack/gommon/log"
)

func main() {
	config := cmd.LoadConfig()
	logger := cmd.NewLogger("order-service")

	db, err := cmd.OpenDatabase(config,
		&orderrepo.OrderDTO{},
		&orderrepo.AddressDTO{},
		&orderrepo.ParcelDTO{},
		&orderrepo.TrackingEventDTO{},
		&assignmentrepo.AssignmentDTO{},
	)
	if err != nil {
		log.Fatalf("database setup failed: %v", err)
	}

	broker := rabbit.NewClient(config.RabbitURL, logger)
	cmd.ConnectBroker(broker, logger)

	root := cmd.NewCompositionRoot(config, db, broker, logger)

	if err = root.CreatePaymentEventsConsumer().Register(broker); err != nil {
		log.Fatalf("failed to register payment consumer: %v", err)
	}
	if err = root.CreateUserEventsConsumer().Register(broker); err != nil {
		log.Fatalf("failed to register user consumer: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}

	e := cmd.NewEcho()
	root.CreateOrderServer().RegisterRoutes(e)

	cmd.RunServer(e, config.HTTPPort, logger, func() {
		jobManager.StopAll()
		_ = broker.Close()
	})
}
