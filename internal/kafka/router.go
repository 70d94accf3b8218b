package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/garsue/watermillzap"

	"usermgmt/internal/config"
	"usermgmt/internal/logging"
)

// EnvelopeHandler reacts to one decoded envelope.
type EnvelopeHandler func(ctx context.Context, env Envelope) error

type Router struct {
	router *message.Router
}

// NewRouter subscribes handle to the users topic. With Kafka disabled the
// router is inert and Run returns immediately.
func NewRouter(
	ctx context.Context,
	cfg config.KafkaConfig,
	baseLogger logging.Logger,
	handle EnvelopeHandler,
) (*Router, error) {
	if !cfg.Enabled {
		return &Router{router: nil}, nil
	}

	wmlogger := watermillzap.NewLogger(logging.AsZap(baseLogger))

	router, err := message.NewRouter(message.RouterConfig{}, wmlogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	subCfg := kafka.SubscriberConfig{
		Brokers:       cfg.Brokers,
		Unmarshaler:   kafka.DefaultMarshaler{},
		ConsumerGroup: cfg.GroupID,
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
		NackResendSleep:     5 * time.Second,
		ReconnectRetrySleep: 10 * time.Second,
	}

	subscriber, err := kafka.NewSubscriber(subCfg, wmlogger)
	if err != nil {
		return nil, fmt.Errorf("create kafka subscriber: %w", err)
	}

	usersTopic := UsersTopic(cfg)
	logger := baseLogger.With("component", "kafka_router", "topic", usersTopic)

	router.AddNoPublisherHandler(
		"user-events-handler",
		usersTopic,
		subscriber,
		func(msg *message.Message) error {
			return dispatch(msg.Context(), msg.Payload, handle, logger)
		},
	)

	return &Router{router: router}, nil
}

// dispatch decodes an envelope and hands it on. Undecodable messages are
// logged and acked so they are not redelivered forever.
func dispatch(ctx context.Context, payload []byte, handle EnvelopeHandler, logger logging.Logger) error {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		logger.Error("dropping undecodable message", "error", err)
		return nil
	}

	logger.Debug("received message", "type", env.Type, "message_id", env.MessageID)
	return handle(ctx, env)
}

func (r *Router) Run(ctx context.Context) error {
	if r.router == nil {
		return nil // Kafka disabled
	}
	return r.router.Run(ctx)
}

func (r *Router) Close(ctx context.Context) error {
	if r.router == nil {
		return nil
	}
	return r.router.Close()
}
