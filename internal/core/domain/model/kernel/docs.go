// Package kernel contains shared value objects used across the domain model:
// UUID identifiers and geographic points attached to tracking events.
// These types follow the value-object rules of the model: immutable,
// constructor-validated, and comparable by value.
package kernel
