package mq

import "context"

// Producer publishes transaction events to a stream.
type Producer interface {
	// Publish sends payload to topic. key selects the partition so events
	// for one wallet stay ordered; empty key means any partition.
	Publish(ctx context.Context, topic string, key string, payload []byte) error

	// Close flushes and releases the producer.
	Close() error
}

// NopProducer drops every event. Used when no broker is configured.
type NopProducer struct{}

func (NopProducer) Publish(ctx context.Context, topic, key string, payload []byte) error { return nil }
func (NopProducer) Close() error                                                         { return nil }
