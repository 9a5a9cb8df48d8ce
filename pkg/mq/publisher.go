package mq

import (
	"context"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is a single outgoing delivery. ID becomes the AMQP message id so
// downstream consumers can drop duplicates.
type Message struct {
	ID   string
	Type string
	Body []byte
}

// ErrNotAcknowledged is returned when the broker nacks a confirmed publish.
var ErrNotAcknowledged = errors.New("message not acknowledged by broker")

type Publisher interface {
	Publish(ctx context.Context, exchange string, routingKey string, msg Message) error
	Close() error
}

type RabbitPublisher struct {
	ch *amqp.Channel
}

func NewRabbitPublisher(ch *amqp.Channel) Publisher { return &RabbitPublisher{ch: ch} }

// Publish blocks until the broker confirms msg when the channel is in
// confirm mode.
func (r *RabbitPublisher) Publish(ctx context.Context, exchange string, routingKey string, msg Message) error {
	confirmation, err := r.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, routingKey, false, false,
		toPublishing(msg, time.Now().UTC()))
	if err != nil {
		return err
	}

	if confirmation == nil {
		return nil
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return ErrNotAcknowledged
	}

	return nil
}

func (r *RabbitPublisher) Close() error {
	if r.ch != nil {
		return r.ch.Close()
	}

	return nil
}

func toPublishing(msg Message, now time.Time) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Type:         msg.Type,
		Timestamp:    now,
		Body:         msg.Body,
	}
}
