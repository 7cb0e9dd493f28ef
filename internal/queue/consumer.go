package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/zoesbreath/baobab-server/internal/log"
)

// MailConsumer binds the durable mail queue to the topic exchange and feeds
// decoded MailRequested events to a handler across a small worker pool.
type MailConsumer struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	q        string
	prefetch int
}

func NewMailConsumer(url, exchange, queue, key string, prefetch int) (*MailConsumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbit: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	qd, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(qd.Name, key, exchange, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	if prefetch <= 0 {
		prefetch = 50
	}
	return &MailConsumer{conn: conn, ch: ch, q: qd.Name, prefetch: prefetch}, nil
}

func (c *MailConsumer) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Consume blocks until ctx is done. Handler failures nack with requeue;
// payloads that do not decode as MailRequested are acked away so they
// cannot requeue forever.
func (c *MailConsumer) Consume(ctx context.Context, workers int, handle func(MailRequested) error) error {
	if c == nil || c.ch == nil {
		return fmt.Errorf("consumer is not initialized")
	}
	if workers <= 0 {
		workers = 1
	}

	if err := c.ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}
	msgs, err := c.ch.Consume(c.q, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case d, ok := <-msgs:
					if !ok {
						return
					}
					var m MailRequested
					if err := json.Unmarshal(d.Body, &m); err != nil {
						log.L().Error("bad mail event",
							zap.String("messageId", d.MessageId), zap.Error(err))
						d.Ack(false)
						continue
					}
					if err := handle(m); err != nil {
						d.Nack(false, true)
						continue
					}
					d.Ack(false)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	<-ctx.Done()
	wg.Wait()
	return nil
}
