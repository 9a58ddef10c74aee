// Package order contains the order aggregate and its status state machine.
//
// The aggregate is owned exclusively by the order service. Payment and
// notification services observe it only through published events; the
// payment.completed and payment.failed consumers are the only paths that
// confirm or fail an order.
package order
