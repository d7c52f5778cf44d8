// Package messaging publishes events to a message broker.
//
// Publishers are broker-agnostic: the same OutgoingMessage can be sent through
// NATS, NSQ, Kafka or Google Pub/Sub, chosen with NewFromDriver. A Discard
// publisher is available for deployments without a broker.
package messaging
