package eventqueue

import (
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// amqpPublisher is the part of *amqp.Channel the publisher needs.
type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type submissionPublisher struct {
	ch        amqpPublisher
	queueName string
	confirms  chan amqp.Confirmation
	log       *zap.Logger
	mu        sync.Mutex
}

// NewSubmissionEventPublisher opens a channel on conn, declares the durable
// queue and enables publisher confirms.
func NewSubmissionEventPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (contracts.SubmissionEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &submissionPublisher{
		ch:        ch,
		queueName: queueName,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		log:       logger,
	}, nil
}

// PublishSubmitted publishes event as a persistent JSON message and waits for
// the broker confirm when confirms are enabled.
func (p *submissionPublisher) PublishSubmitted(ctx context.Context, event models.SubmissionEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("submissionPublisher.PublishSubmitted called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, event.DraftID),
		zap.String(constvars.LoggingQueueKey, p.queueName),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:   constvars.MIMEApplicationJSON,
		Body:          body,
		DeliveryMode:  amqp.Persistent,
		CorrelationId: requestID,
		Timestamp:     event.SubmittedAt,
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		p.log.Error("submissionPublisher.PublishSubmitted error publishing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}

	if p.confirms != nil {
		select {
		case confirmed := <-p.confirms:
			if !confirmed.Ack {
				return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), p.queueName)
			}
		case <-ctx.Done():
			return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), p.queueName)
		}
	}

	p.log.Info("submissionPublisher.PublishSubmitted succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, event.DraftID),
	)
	return nil
}
