package mq

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const defaultHeartbeat = 10 * time.Second

var ErrConnectionClosed = errors.New("connection is closed")

type Config struct {
	URL            string        `mapstructure:"url"`
	ConnectionName string        `mapstructure:"connection_name"`
	Heartbeat      time.Duration `mapstructure:"heartbeat"`
}

// RabbitMQ owns one broker connection. Channels are opened per use and
// closed by their owner.
type RabbitMQ struct {
	conn   *amqp.Connection
	logger *zap.Logger
}

func NewConnection(cfg Config, logger *zap.Logger) (*RabbitMQ, error) {
	target := redactURL(cfg.URL)

	conn, err := amqp.DialConfig(cfg.URL, dialConfig(cfg))
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", zap.Error(err), zap.String("url", target))
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	logger.Info("Connected to RabbitMQ",
		zap.String("url", target),
		zap.String("connectionName", cfg.ConnectionName),
	)

	return &RabbitMQ{conn: conn, logger: logger}, nil
}

func dialConfig(cfg Config) amqp.Config {
	heartbeat := cfg.Heartbeat
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}

	properties := amqp.NewConnectionProperties()
	if cfg.ConnectionName != "" {
		properties.SetClientConnectionName(cfg.ConnectionName)
	}

	return amqp.Config{Heartbeat: heartbeat, Properties: properties}
}

func (r *RabbitMQ) OpenChannel() (*amqp.Channel, error) {
	if r.conn == nil || r.conn.IsClosed() {
		return nil, ErrConnectionClosed
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return ch, nil
}

// DeclareQueues declares durable queues on a short-lived channel.
func (r *RabbitMQ) DeclareQueues(queues ...string) error {
	ch, err := r.OpenChannel()
	if err != nil {
		return err
	}
	defer ch.Close()

	for _, queue := range queues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
	}

	r.logger.Info("Queues declared", zap.Strings("queues", queues))
	return nil
}

// CreatePublisher returns a publisher whose channel is in confirm mode, so
// Publish reports success only once the broker has taken the message.
func (r *RabbitMQ) CreatePublisher() (Publisher, error) {
	ch, err := r.OpenChannel()
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	return NewRabbitPublisher(ch), nil
}

func (r *RabbitMQ) Close() error {
	if r.conn == nil || r.conn.IsClosed() {
		return nil
	}

	return r.conn.Close()
}

// redactURL hides the password of an amqp url before it reaches the logs.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}

	return u.Redacted()
}
