// Package messaging publishes ledger events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/safar/go-lounge-pos/internal/models"
)

const publishTimeout = 5 * time.Second

// TransactionEvent is the message body for every recorded transaction.
type TransactionEvent struct {
	Event       string                 `json:"event"`
	Transaction models.Transaction     `json:"transaction"`
	Type        models.TransactionType `json:"type"`
	PublishedAt time.Time              `json:"publishedAt"`
}

// channel is the subset of *amqp091.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	IsClosed() bool
	Close() error
}

type Publisher struct {
	mu       sync.Mutex
	url      string
	exchange string
	conn     *amqp091.Connection
	ch       channel
	log      *slog.Logger
	now      func() time.Time

	// openChannel opens and prepares a channel on the current connection.
	openChannel func() (channel, error)
}

// Dial connects to the broker and declares the durable fanout exchange that
// ledger events are published to.
func Dial(url, exchange string, log *slog.Logger) (*Publisher, error) {
	p := &Publisher{url: url, exchange: exchange, log: log, now: time.Now}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp091.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}

	p.conn = conn
	p.openChannel = func() (channel, error) {
		return declareChannel(conn, p.exchange)
	}

	ch, err := p.openChannel()
	if err != nil {
		conn.Close()
		p.conn = nil
		return err
	}

	p.ch = ch
	return nil
}

func declareChannel(conn *amqp091.Connection, exchange string) (channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return ch, nil
}

// ensureChannel redials after a lost connection and reopens the channel
// after a channel-level exception, which leaves the connection open.
func (p *Publisher) ensureChannel() error {
	if p.conn != nil && p.conn.IsClosed() {
		if err := p.connect(); err != nil {
			return fmt.Errorf("reconnect: %w", err)
		}
		return nil
	}

	if p.ch == nil || p.ch.IsClosed() {
		if p.openChannel == nil {
			return fmt.Errorf("reopen channel: not connected")
		}
		ch, err := p.openChannel()
		if err != nil {
			return fmt.Errorf("reopen channel: %w", err)
		}
		p.ch = ch
		p.log.Info("broker channel reopened", slog.String("exchange", p.exchange))
	}

	return nil
}

func encodeEvent(tx models.Transaction, at time.Time) ([]byte, error) {
	return json.Marshal(TransactionEvent{
		Event:       "transaction.recorded",
		Transaction: tx,
		Type:        tx.Type,
		PublishedAt: at.UTC(),
	})
}

func (p *Publisher) PublishTransaction(ctx context.Context, tx models.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	now := p.now()
	body, err := encodeEvent(tx, now)
	if err != nil {
		return fmt.Errorf("marshal transaction event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		string(tx.Type), // routing key, ignored by fanout bindings
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    tx.ID,
			Timestamp:    now,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish transaction %s: %w", tx.ID, err)
	}

	p.log.Debug("transaction published",
		slog.String("exchange", p.exchange),
		slog.String("transaction_id", tx.ID),
		slog.Int("message_size", len(body)),
	)
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
