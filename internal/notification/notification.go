package notification

//go:generate go run go.uber.org/mock/mockgen -source=./notification.go -destination=./mocks/notification_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"autoecole/config"
	"autoecole/infras/kafka"
	"autoecole/infras/otel"
	"autoecole/shared/constant"
)

const (
	EventRentalCreated      = "rental.created"
	EventRentalStatusMoved  = "rental.status_changed"
	EventRentalVehicleSet   = "rental.vehicle_assigned"
	EventDocumentsFinalized = "documents.finalized"
	EventSessionEnrolled    = "session.enrolled"
	EventSessionWithdrawn   = "session.withdrawn"
)

// Notifier publishes domain events for downstream consumers (mails, admin
// feeds). Delivery is best effort: failures are logged and swallowed, a lost
// notification must never fail or roll back the operation that caused it.
type Notifier interface {
	Notify(ctx context.Context, event string, payload any)
}

// New picks the broker-backed notifier when brokers are configured and the
// noop notifier otherwise.
func New(cfg *config.Config, client kafka.Client, ot otel.Otel) Notifier {
	if len(cfg.Kafka.Brokers) == 0 {
		return NewNoopNotifier()
	}

	return NewKafkaNotifier(cfg, client, ot)
}

type kafkaNotifier struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewKafkaNotifier(cfg *config.Config, client kafka.Client, ot otel.Otel) Notifier {
	return &kafkaNotifier{
		client: client,
		topic:  cfg.Kafka.Topics.Notifications,
		otel:   ot,
	}
}

func (n *kafkaNotifier) Notify(ctx context.Context, event string, payload any) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Notify")
	defer scope.End()

	scope.SetAttribute("event", event)

	err := n.client.SendMessages(ctx, n.topic, kafka.Message{
		Key:   event,
		Value: payload,
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event", event).Msg("failed to publish notification event")
	}
}

type noopNotifier struct{}

// NewNoopNotifier returns a Notifier that drops every event. Used when no
// broker is configured.
func NewNoopNotifier() Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) Notify(_ context.Context, event string, _ any) {
	log.Debug().Str("event", event).Msg("notification dropped, no broker configured")
}
