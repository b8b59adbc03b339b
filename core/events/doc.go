// Package events publishes order lifecycle events to RabbitMQ.
//
// The order service publishes order.created, order.updated and order.deleted
// after the store transaction commits. A failed publish is logged and never
// undoes the committed change. With no events.url configured New returns Nop.
package events
