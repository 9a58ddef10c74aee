// Package rabbit implements the RabbitMQ transport: a reconnecting broker
// client plus typed producers for the order and payment event contracts.
package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"parceldelivery/internal/contracts"
	"parceldelivery/internal/core/ports"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DeadLetterExchange receives messages whose processing retries were
// exhausted. Each queue owns a matching "<queue>.dlq" parked there.
const DeadLetterExchange = contracts.Exchange + ".dlx"

const (
	maxRetries        = 3
	baseRetryDelay    = 2 * time.Second
	reconnectDelay    = 3 * time.Second
	connectRetryDelay = 5 * time.Second
	retryCountHeader  = "x-retry-count"
)

var (
	// ErrNotConnected is returned by Publish while the client is not READY.
	// Callers treat it as any other publish failure: log and move on, the
	// local database remains the source of truth.
	ErrNotConnected = errors.New("rabbitmq client is not connected")

	// ErrClientClosed is returned once Close was called.
	ErrClientClosed = errors.New("rabbitmq client is closed")
)

// State is the client's connection lifecycle state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateReady
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateReady:
		return "READY"
	default:
		return "DISCONNECTED"
	}
}

type subscription struct {
	routingKey string
	queueName  string
	handler    ports.MessageHandler
}

// retryPublisher is the slice of *amqp.Channel the settlement path needs to
// republish a failed delivery for its next attempt.
type retryPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Client is a reconnecting RabbitMQ connection shared by one service
// process. It owns a single channel with prefetch 1, so each subscribed
// queue is consumed serially.
//
// Subscriptions are recorded and re-established after every reconnect.
// Publishing while the connection is down fails fast with ErrNotConnected
// instead of buffering.
type Client struct {
	url    string
	logger *slog.Logger

	mu    sync.Mutex
	state State
	conn  *amqp.Connection
	ch    *amqp.Channel
	subs  []subscription

	startOnce  sync.Once
	closeOnce  sync.Once
	firstReady chan struct{}
	readyOnce  sync.Once
	closed     chan struct{}

	retryDelayFn func(retryCount int) time.Duration
}

// NewClient creates a broker client for the given AMQP URL. The connection
// is established by Connect.
func NewClient(url string, logger *slog.Logger) *Client {
	return &Client{
		url:          url,
		logger:       logger.With("component", "RabbitClient"),
		firstReady:   make(chan struct{}),
		closed:       make(chan struct{}),
		retryDelayFn: retryDelay,
	}
}

// Connect establishes the connection and blocks until the client is READY,
// the context is cancelled, or the client is closed. Safe to call multiple
// times: the connection manager is started once and later calls only wait.
//
// Failed dial attempts are retried every 5 seconds. A connection lost after
// being READY is re-dialed 3 seconds after the close notification.
func (c *Client) Connect(ctx context.Context) error {
	select {
	case <-c.closed:
		return ErrClientClosed
	default:
	}

	c.startOnce.Do(func() {
		go c.run()
	})

	select {
	case <-c.firstReady:
		return nil
	case <-c.closed:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State reports the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close shuts the client down. Consumers stop, the connection is closed and
// the client cannot be reused.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
	return nil
}

// Publish marshals the event and sends it to the topic exchange as a
// persistent message. An event without an eventId gets one assigned, and
// the eventId doubles as the AMQP MessageId and CorrelationId so consumers
// can deduplicate.
//
// Returns ErrNotConnected while the connection is down.
func (c *Client) Publish(ctx context.Context, routingKey string, event contracts.Event) error {
	c.mu.Lock()
	state, ch := c.state, c.ch
	c.mu.Unlock()

	if state != StateReady || ch == nil {
		return ErrNotConnected
	}

	if event.EventID() == "" {
		event.SetEventID(uuid.NewString())
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, contracts.Exchange, routingKey, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     event.EventID(),
		CorrelationId: event.EventID(),
		Timestamp:     time.Now().UTC(),
		Body:          body,
	})
}

// Subscribe binds a durable queue to the topic exchange and consumes it with
// the given handler. The queue gets dead-letter wiring: messages rejected
// after the retry budget land in "<queueName>.dlq".
//
// The subscription is recorded and survives reconnects. Subscribing before
// the first Connect succeeds is allowed; consumption starts once READY.
//
// Handler contract: return nil to acknowledge (including permanently bad
// messages that were logged and dropped), return an error to trigger the
// redelivery cycle.
func (c *Client) Subscribe(routingKey, queueName string, handler ports.MessageHandler) error {
	sub := subscription{routingKey: routingKey, queueName: queueName, handler: handler}

	c.mu.Lock()
	c.subs = append(c.subs, sub)
	state, ch := c.state, c.ch
	c.mu.Unlock()

	if state != StateReady || ch == nil {
		return nil
	}
	return c.startSubscription(ch, sub)
}

func (c *Client) run() {
	for {
		select {
		case <-c.closed:
			return
		default:
		}

		c.setState(StateConnecting)
		conn, ch, err := c.dial()
		if err != nil {
			c.logger.Warn("connection attempt failed, retrying",
				"url", c.url, "retryIn", connectRetryDelay, "error", err)
			c.setState(StateDisconnected)
			if !c.sleep(connectRetryDelay) {
				return
			}
			continue
		}

		c.mu.Lock()
		c.conn, c.ch = conn, ch
		c.state = StateReady
		subs := make([]subscription, len(c.subs))
		copy(subs, c.subs)
		c.mu.Unlock()

		c.readyOnce.Do(func() { close(c.firstReady) })
		c.logger.Info("connected to rabbitmq", "exchange", contracts.Exchange)

		for _, sub := range subs {
			if err = c.startSubscription(ch, sub); err != nil {
				c.logger.Error("failed to start subscription",
					"queue", sub.queueName, "routingKey", sub.routingKey, "error", err)
			}
		}

		notify := conn.NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-c.closed:
			_ = ch.Close()
			_ = conn.Close()
			c.setState(StateDisconnected)
			return
		case amqpErr := <-notify:
			c.logger.Warn("connection closed, reconnecting",
				"reconnectIn", reconnectDelay, "error", amqpErr)
			c.mu.Lock()
			c.state = StateDisconnected
			c.conn, c.ch = nil, nil
			c.mu.Unlock()
			if !c.sleep(reconnectDelay) {
				return
			}
		}
	}
}

func (c *Client) dial() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	// Serial consumption per channel: one unacked message at a time.
	if err = ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}

	if err = ch.ExchangeDeclare(contracts.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}

	if err = ch.ExchangeDeclare(DeadLetterExchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}

	return conn, ch, nil
}

func (c *Client) startSubscription(ch *amqp.Channel, sub subscription) error {
	dlqName := sub.queueName + ".dlq"
	if _, err := ch.QueueDeclare(dlqName, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(dlqName, "#", DeadLetterExchange, false, nil); err != nil {
		return err
	}

	_, err := ch.QueueDeclare(sub.queueName, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    DeadLetterExchange,
		"x-dead-letter-routing-key": sub.queueName,
	})
	if err != nil {
		return err
	}

	if err = ch.QueueBind(sub.queueName, sub.routingKey, contracts.Exchange, false, nil); err != nil {
		return err
	}

	deliveries, err := ch.Consume(sub.queueName, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go c.consumeLoop(ch, sub, deliveries)

	c.logger.Info("subscribed",
		"queue", sub.queueName, "routingKey", sub.routingKey, "dlq", dlqName)
	return nil
}

func (c *Client) consumeLoop(ch *amqp.Channel, sub subscription, deliveries <-chan amqp.Delivery) {
	for delivery := range deliveries {
		c.handleDelivery(ch, sub, delivery)
	}
}

// handleDelivery runs the handler and settles the message. Handler errors
// trigger a delayed republish of the identical body onto the same queue with
// an incremented retry counter; once the counter reaches maxRetries the
// message is rejected without requeue and dead-letters to the DLQ.
func (c *Client) handleDelivery(ch retryPublisher, sub subscription, delivery amqp.Delivery) {
	err := sub.handler(context.Background(), delivery.Body)
	if err == nil {
		if ackErr := delivery.Ack(false); ackErr != nil {
			c.logger.Error("failed to ack message", "queue", sub.queueName, "error", ackErr)
		}
		return
	}

	retryCount := retryCountFrom(delivery.Headers)
	if retryCount >= maxRetries {
		c.logger.Error("retries exhausted, dead-lettering message",
			"queue", sub.queueName, "messageId", delivery.MessageId,
			"retries", retryCount, "error", err)
		if nackErr := delivery.Nack(false, false); nackErr != nil {
			c.logger.Error("failed to nack message", "queue", sub.queueName, "error", nackErr)
		}
		return
	}

	delay := c.retryDelayFn(retryCount)
	c.logger.Warn("handler failed, scheduling retry",
		"queue", sub.queueName, "messageId", delivery.MessageId,
		"attempt", retryCount+1, "delayMs", delay.Milliseconds(), "error", err)

	if !c.sleep(delay) {
		return
	}

	headers := amqp.Table{}
	for k, v := range delivery.Headers {
		headers[k] = v
	}
	headers[retryCountHeader] = int32(retryCount + 1)

	// Republish through the default exchange so the retry reaches only this
	// queue, not the other bindings of the original routing key.
	pubErr := ch.PublishWithContext(context.Background(), "", sub.queueName, false, false, amqp.Publishing{
		ContentType:   delivery.ContentType,
		DeliveryMode:  amqp.Persistent,
		MessageId:     delivery.MessageId,
		CorrelationId: delivery.CorrelationId,
		Timestamp:     delivery.Timestamp,
		Headers:       headers,
		Body:          delivery.Body,
	})
	if pubErr != nil {
		c.logger.Error("failed to republish for retry, dead-lettering message",
			"queue", sub.queueName, "messageId", delivery.MessageId, "error", pubErr)
		if nackErr := delivery.Nack(false, false); nackErr != nil {
			c.logger.Error("failed to nack message", "queue", sub.queueName, "error", nackErr)
		}
		return
	}

	if ackErr := delivery.Ack(false); ackErr != nil {
		c.logger.Error("failed to ack original after retry republish",
			"queue", sub.queueName, "error", ackErr)
	}
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// sleep waits for d unless the client is closed first. Reports whether the
// full duration elapsed.
func (c *Client) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-c.closed:
		return false
	}
}

// retryCountFrom extracts the retry counter from message headers, tolerating
// the integer type variance of AMQP table encoding.
func retryCountFrom(headers amqp.Table) int {
	if headers == nil {
		return 0
	}
	switch v := headers[retryCountHeader].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// retryDelay doubles with each attempt: 2s, 4s, 8s.
func retryDelay(retryCount int) time.Duration {
	return baseRetryDelay << retryCount
}
