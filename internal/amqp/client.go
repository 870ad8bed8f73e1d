package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"sales/internal/core"
)

const maxBackoff = 30 * time.Second

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

type dialFunc func(url string) (*amqp091.Connection, error)

// NewClient connects to the broker, retrying connection errors up to
// attempts times, and declares the exchange and queue reports go to.
func NewClient(ctx context.Context, url, exchangeName, queueName string, attempts int) (*Client, error) {
	conn, err := dialWithRetry(ctx, url, attempts, amqp091.Dial, sleepContext)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func dialWithRetry(ctx context.Context, url string, attempts int, dial dialFunc, sleep func(context.Context, time.Duration) error) (*amqp091.Connection, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := exponentialBackoff(attempt - 1)
			slog.WarnContext(ctx, "Retrying AMQP connection",
				"attempt", attempt+1,
				"wait", wait,
				"error", lastErr)
			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
		}
		conn, err := dial(url)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if !isConnectionError(err) {
			break
		}
	}
	return nil, lastErr
}

// exponentialBackoff doubles from one second per attempt, capped at 30s.
func exponentialBackoff(attempt int) time.Duration {
	if attempt >= 5 {
		return maxBackoff
	}
	d := time.Second << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"connection", "eof", "broken pipe", "no route to host", "i/o timeout"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) setup() error {
	// Declare exchange
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	// Declare queue
	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Bind queue to exchange
	err = c.channel.QueueBind(
		c.queueName,    // queue name
		c.queueName,    // routing key (same as queue name for direct exchange)
		c.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Name identifies the client as a report publisher.
func (c *Client) Name() string {
	return "amqp"
}

// Publish implements publish.Publisher.
func (c *Client) Publish(ctx context.Context, s core.Summary) error {
	return c.PublishReport(ctx, NewReportMessage(s))
}

// PublishReport publishes a persistent report message.
func (c *Client) PublishReport(ctx context.Context, msg *ReportMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.channel == nil {
		return fmt.Errorf("publish report: channel not open")
	}

	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.RunID,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.InfoContext(ctx, "Published sales report message",
		"run_id", msg.RunID,
		"exchange", c.exchangeName,
		"queue", c.queueName)

	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
