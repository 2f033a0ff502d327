package trigger

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/pubsub"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"safymenu-backend/internal/chat/domain"
	"safymenu-backend/pkg/metrics"
)

// Handler reacts to one parsed change event.
type Handler func(ctx context.Context, ev *domain.ChangeEvent) error

// Service consumes document change events from Pub/Sub and routes each one
// to its classifier handler. Every message is acked exactly once — the
// hosting event system may redeliver on its own, but a handler failure never
// requests redelivery, since that would duplicate already-sent
// notifications.
type Service struct {
	pubsubClient *pubsub.Client
	handlers     map[string]Handler
	subscription map[string]string // event kind -> subscription name
}

func NewService(projectID string, classifier *Classifier, subscriptions map[string]string, credentialsFile string) (*Service, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	return &Service{
		pubsubClient: client,
		handlers: map[string]Handler{
			domain.EventChatMessageCreated: classifier.HandleChatMessageCreated,
			domain.EventChatUpdated:        classifier.HandleChatUpdated,
			domain.EventChatCreated:        classifier.HandleChatCreated,
		},
		subscription: subscriptions,
	}, nil
}

// Start blocks receiving on every configured subscription until ctx is
// cancelled.
func (s *Service) Start(ctx context.Context) {
	for kind, subName := range s.subscription {
		go s.receive(ctx, kind, subName)
	}
	<-ctx.Done()
}

func (s *Service) receive(ctx context.Context, kind, subName string) {
	log.Printf("[PubSub] Listening for %s events on subscription: %s", kind, subName)

	sub := s.pubsubClient.Subscription(subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		log.Printf("[PubSub] Error checking subscription %s: %v", subName, err)
		return
	}
	if !exists {
		log.Printf("[PubSub] Subscription %s does not exist, %s events disabled", subName, kind)
		return
	}

	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		s.handleMessage(ctx, msg)
		msg.Ack()
	})
	if err != nil {
		log.Printf("[PubSub] Error receiving on %s: %v", subName, err)
	}
}

func (s *Service) handleMessage(ctx context.Context, msg *pubsub.Message) {
	invocation := uuid.New().String()

	// Outermost guard of the trigger body: anything unexpected is logged
	// with full context and the invocation ends normally.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[TRIGGER] Fatal error in invocation %s: %v (payload: %s)", invocation, r, string(msg.Data))
		}
	}()

	kind := msg.Attributes["eventType"]
	handler, ok := s.handlers[kind]
	if !ok {
		log.Printf("[TRIGGER] Unknown event type %q in invocation %s, ignoring", kind, invocation)
		return
	}

	metrics.TriggerEvents.WithLabelValues(kind).Inc()
	log.Printf("[TRIGGER] Invocation %s: %s event received", invocation, kind)

	ev, err := domain.ParseChangeEvent(msg.Data)
	if err != nil {
		log.Printf("[TRIGGER] Invocation %s rejected: %v (payload: %s)", invocation, err, string(msg.Data))
		return
	}

	if err := handler(ctx, ev); err != nil {
		log.Printf("[TRIGGER] Invocation %s failed: %v", invocation, err)
	}
}
