// Package queue contains the inbound message consumers of every service.
// Each consumer owns its queue bindings and translates raw event payloads
// into application commands.
//
// Consumers follow one settlement rule: payloads that can never be processed
// (malformed JSON, missing identifiers, references to entities that do not
// exist) are logged and dropped; everything else propagates to the broker
// layer, which retries with backoff and eventually dead-letters.
package queue

// Queue names. Each service owns its queues; names are part of the broker
// topology and must stay stable across deployments.
const (
	QueuePaymentServiceOrderCreated = "payment_service_order_created"

	QueueOrderServicePayment             = "order_service_payment_queue"
	QueueOrderServicePaymentFailed       = "order_service_payment_failed_queue"
	QueueOrderServiceUser                = "order_service_user_queue"
	QueueOrderServiceCourierAvailability = "order_service_courier_availability_queue"

	QueueNotificationOrderCreated       = "notification_service_order_created"
	QueueNotificationOrderStatusChanged = "notification_service_order_status_changed"
	QueueNotificationOrderCompleted     = "notification_service_order_completed"
	QueueNotificationPaymentCompleted   = "notification_service_payment_completed"
	QueueNotificationPaymentFailed      = "notification_service_payment_failed"
)
