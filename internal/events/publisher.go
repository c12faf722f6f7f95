package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	exchangeKind          = "topic"
	defaultPublishTimeout = 5 * time.Second
)

var errPublisherClosed = errors.New("publisher is closed")

// RabbitMQPublisher публикует события журнала в topic exchange. Ошибки публикации только логируются:
// перевод к этому моменту уже зафиксирован. Оборванное соединение или канал переоткрываются при следующей
// публикации.
type RabbitMQPublisher struct {
	mu       sync.Mutex
	url      string
	conn     *amqp.Connection
	channel  *amqp.Channel
	closed   bool
	exchange string
	timeout  time.Duration
	logger   *logrus.Entry
}

func NewRabbitMQPublisher(url, exchange string, l *logrus.Logger) (*RabbitMQPublisher, error) {
	p := &RabbitMQPublisher{
		url:      url,
		exchange: exchange,
		timeout:  defaultPublishTimeout,
		logger: l.WithFields(logrus.Fields{
			"component": "events",
			"exchange":  exchange,
		}),
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// SetTimeout переопределяет таймаут одной публикации.
func (p *RabbitMQPublisher) SetTimeout(timeout time.Duration) *RabbitMQPublisher {
	p.timeout = timeout
	return p
}

// PublishTransferPosted публикует событие с ключом маршрутизации RoutingKeyTransferPosted.
func (p *RabbitMQPublisher) PublishTransferPosted(ctx context.Context, transfer *domain.Transfer) {
	event := NewTransferPostedEvent(transfer)
	if err := p.publish(ctx, RoutingKeyTransferPosted, event.TransferID, event); err != nil {
		p.logger.WithError(err).
			WithField("transfer_id", event.TransferID).
			Warn("failed to publish transfer posted event")
		return
	}
	p.logger.WithField("transfer_id", event.TransferID).Debug("transfer posted event published")
}

func (p *RabbitMQPublisher) publish(ctx context.Context, routingKey, messageID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// amqp.Channel не рассчитан на конкурентную публикацию.
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("publish %s: %w", routingKey, errPublisherClosed)
	}
	if p.channel == nil || p.channel.IsClosed() {
		p.logger.Info("rabbitmq channel is closed, reconnecting")
		if err = p.connect(); err != nil {
			return fmt.Errorf("publish %s: %w", routingKey, err)
		}
	}

	err = p.channel.PublishWithContext(pubCtx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

// connect открывает соединение (если живого нет), канал и объявляет exchange. Вызывается под p.mu либо
// до того, как публикатор стал доступен другим горутинам.
func (p *RabbitMQPublisher) connect() error {
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return fmt.Errorf("connect to rabbitmq: %w", err)
		}
		p.conn = conn
	}

	channel, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel: %w", err)
	}

	// durable, не удаляется автоматически, не internal, с ожиданием подтверждения.
	if err = channel.ExchangeDeclare(p.exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		return fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}
	p.channel = channel
	return nil
}

// Close закрывает канал и соединение. После Close публикации не переподключаются.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	if p.channel != nil && !p.channel.IsClosed() {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil && !p.conn.IsClosed() {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

// NopPublisher используется, когда брокер не настроен. Пишет событие в debug лог.
type NopPublisher struct {
	logger *logrus.Entry
}

func NewNopPublisher(l *logrus.Logger) *NopPublisher {
	return &NopPublisher{logger: l.WithField("component", "events")}
}

func (n *NopPublisher) PublishTransferPosted(_ context.Context, transfer *domain.Transfer) {
	n.logger.WithField("transfer_id", transfer.ID.String()).Debug("events disabled, transfer posted event dropped")
}
