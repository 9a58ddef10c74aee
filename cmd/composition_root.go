package cmd

import (
	"log/slog"

	httpin "parceldelivery/internal/adapters/in/http"
	"parceldelivery/internal/adapters/in/queue"
	"parceldelivery/internal/adapters/out/notify"
	"parceldelivery/internal/adapters/out/postgres"
	"parceldelivery/internal/adapters/out/rabbit"
	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/application/usecases/queries"
	"parceldelivery/internal/core/domain/services"
	"parceldelivery/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot builds the object graph of one service process. Which
// parts are used depends on the service's main package.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	broker     *rabbit.Client
	logger     *slog.Logger
}

// NewCompositionRoot creates the root. gormDB may be nil for services
// without persistence (the notification service).
func NewCompositionRoot(config Config, gormDB *gorm.DB, broker *rabbit.Client, logger *slog.Logger) CompositionRoot {
	root := CompositionRoot{
		config: config,
		gormDB: gormDB,
		broker: broker,
		logger: logger,
	}
	if gormDB != nil {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	}
	return root
}

// Broker exposes the broker client for lifecycle management.
func (c *CompositionRoot) Broker() *rabbit.Client {
	return c.broker
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

// CreateOrderProducer builds the order service's event publisher.
func (c *CompositionRoot) CreateOrderProducer() *rabbit.OrderProducer {
	return rabbit.NewOrderProducer(c.broker)
}

// CreatePaymentProducer builds the payment service's event publisher.
func (c *CompositionRoot) CreatePaymentProducer() *rabbit.PaymentProducer {
	return rabbit.NewPaymentProducer(c.broker)
}

// CreateCreateOrderCommandHandler builds the order creation handler.
func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.CreateOrderProducer(), c.logger)
}

// CreateConfirmOrderCommandHandler builds the order confirmation handler.
func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.CreateOrderProducer(), c.logger)
}

// CreateFailOrderCommandHandler builds the order failure handler.
func (c *CompositionRoot) CreateFailOrderCommandHandler() commands.FailOrderCommandHandler {
	return commands.NewFailOrderCommandHandler(c.dispatchUoWFactory(), c.CreateOrderProducer(), c.logger)
}

// CreateAssignCourierCommandHandler builds the manual assignment handler.
func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.dispatchUoWFactory(), c.CreateOrderProducer(), c.logger)
}

// CreateAutoAssignOrderCommandHandler builds the automatic assignment
// handler with the experience-based courier policy.
func (c *CompositionRoot) CreateAutoAssignOrderCommandHandler() commands.AutoAssignOrderCommandHandler {
	picker := services.NewExperiencedCourierPolicy(c.uowFactory.Create().AssignmentRepository())
	return commands.NewAutoAssignOrderCommandHandler(
		c.dispatchUoWFactory(), picker, c.CreateOrderProducer(), c.logger,
	)
}

// CreateUpdateOrderStatusCommandHandler builds the courier progress handler.
func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.dispatchUoWFactory(), c.CreateOrderProducer(), c.logger)
}

// CreateCreatePaymentCommandHandler builds the payment creation handler.
func (c *CompositionRoot) CreateCreatePaymentCommandHandler() commands.CreatePaymentCommandHandler {
	return commands.NewCreatePaymentCommandHandler(c.paymentUoWFactory(), c.logger)
}

// CreateCompletePaymentCommandHandler builds the payment capture handler.
func (c *CompositionRoot) CreateCompletePaymentCommandHandler() commands.CompletePaymentCommandHandler {
	return commands.NewCompletePaymentCommandHandler(c.paymentUoWFactory(), c.CreatePaymentProducer(), c.logger)
}

// CreateFailPaymentCommandHandler builds the payment denial handler.
func (c *CompositionRoot) CreateFailPaymentCommandHandler() commands.FailPaymentCommandHandler {
	return commands.NewFailPaymentCommandHandler(c.paymentUoWFactory(), c.CreatePaymentProducer(), c.logger)
}

// CreateGetOrderQueryHandler builds the single-order query handler.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// CreateGetUncompletedOrdersQueryHandler builds the active orders query
// handler.
func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

// CreateOrderServer builds the order service's HTTP API.
func (c *CompositionRoot) CreateOrderServer() *httpin.OrderServer {
	return httpin.NewOrderServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetUncompletedOrdersQueryHandler(),
	)
}

// CreatePaymentServer builds the payment service's HTTP API.
func (c *CompositionRoot) CreatePaymentServer() *httpin.PaymentServer {
	return httpin.NewPaymentServer(
		c.CreateCompletePaymentCommandHandler(),
		c.CreateFailPaymentCommandHandler(),
	)
}

// CreatePaymentEventsConsumer builds the order service's payment consumer.
func (c *CompositionRoot) CreatePaymentEventsConsumer() *queue.PaymentEventsConsumer {
	confirm := c.CreateConfirmOrderCommandHandler()
	fail := c.CreateFailOrderCommandHandler()
	autoAssign := c.CreateAutoAssignOrderCommandHandler()
	return queue.NewPaymentEventsConsumer(confirm, fail, autoAssign, c.config.DispatchDelay, c.logger)
}

// CreateUserEventsConsumer builds the order service's user event consumer.
func (c *CompositionRoot) CreateUserEventsConsumer() *queue.UserEventsConsumer {
	return queue.NewUserEventsConsumer(c.logger)
}

// CreateOrderEventsConsumer builds the payment service's order consumer.
func (c *CompositionRoot) CreateOrderEventsConsumer() *queue.OrderEventsConsumer {
	createPayment := c.CreateCreatePaymentCommandHandler()
	return queue.NewOrderEventsConsumer(createPayment, c.logger)
}

// CreateJobManager builds the order service's background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.orderUoWFactory(), c.CreateAutoAssignOrderCommandHandler(), c.logger)
}

// CreateNotificationConsumer builds the notification service's consumer.
func (c *CompositionRoot) CreateNotificationConsumer() *queue.NotificationConsumer {
	notifier := notify.NewLogNotifier(c.logger)
	return queue.NewNotificationConsumer(notifier, c.logger)
}

// FuncOrderUoWFactory adapts a closure to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create implements commands.OrderUoWFactory.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncDispatchUoWFactory adapts a closure to commands.DispatchUoWFactory.
type FuncDispatchUoWFactory func() commands.DispatchUoW

// Create implements commands.DispatchUoWFactory.
func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

// FuncPaymentUoWFactory adapts a closure to commands.PaymentUoWFactory.
type FuncPaymentUoWFactory func() commands.PaymentUoW

// Create implements commands.PaymentUoWFactory.
func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}
