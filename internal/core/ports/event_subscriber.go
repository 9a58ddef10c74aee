package ports

import "context"

// MessageHandler processes one raw message body.
//
// Contract: a nil return acknowledges the message. Unparseable payloads and
// payloads missing required identifiers are permanent data errors: the
// handler logs and returns nil so the message is dropped, not retried. Any
// other error must propagate so the broker layer's bounded retry (and
// eventual dead-lettering) engages; handlers never retry themselves.
type MessageHandler func(ctx context.Context, body []byte) error

// EventSubscriber binds queues to routing keys on the shared topic exchange.
// Implementations provision the queue's dead-letter pair and apply the retry
// policy around handler invocation.
type EventSubscriber interface {
	Subscribe(routingKey, queueName string, handler MessageHandler) error
}
