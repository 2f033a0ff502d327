package trigger

import (
	"context"
	"log"

	"safymenu-backend/internal/chat/domain"
	"safymenu-backend/internal/notification"
	"safymenu-backend/internal/recipient"
)

// Classifier reacts to document change events and drives the
// resolve → build → dispatch pipeline. Each handler produces at most one
// outgoing dispatch and returns an error only for malformed payloads;
// everything else degrades per the delivery policy (a partially delivered
// notification is still a successful dispatch).
type Classifier struct {
	resolver       *recipient.Resolver
	builder        *notification.Builder
	dispatcher     *notification.Dispatcher
	broadcastTopic string
}

func NewClassifier(resolver *recipient.Resolver, builder *notification.Builder, dispatcher *notification.Dispatcher, broadcastTopic string) *Classifier {
	return &Classifier{
		resolver:       resolver,
		builder:        builder,
		dispatcher:     dispatcher,
		broadcastTopic: broadcastTopic,
	}
}

// HandleChatMessageCreated notifies the other side of a conversation about a
// new message under usuarios/{tenant}/chat. When the tenant itself sent the
// message the destination is a single administrator; otherwise it is the
// store's whole staff token pool.
func (c *Classifier) HandleChatMessageCreated(ctx context.Context, ev *domain.ChangeEvent) error {
	tenantID, err := ev.TenantID()
	if err != nil {
		return err
	}
	msg, err := ev.AfterMessage()
	if err != nil {
		return err
	}

	log.Printf("[TRIGGER] Chat message under tenant %s (idFrom=%s, idTo=%s)", tenantID, msg.IDFrom, msg.IDTo)

	if msg.IDTo == "" {
		log.Printf("[TRIGGER] idTo not set, skipping notification")
		return nil
	}

	var tokens []string
	if tenantID == msg.IDFrom {
		tokens = c.resolver.Resolve(ctx, recipient.Administrator, msg.IDTo)
	} else {
		tokens = c.resolver.Resolve(ctx, recipient.Store, tenantID)
	}

	push := c.builder.ChatMessage(msg, tenantID)
	c.dispatcher.DispatchToTokens(ctx, push, tokens)
	return nil
}

// HandleChatUpdated notifies the newly assigned agent when a chat is handed
// off. Fires only when the update carries a transfer marker and the assigned
// agent actually changed.
func (c *Classifier) HandleChatUpdated(ctx context.Context, ev *domain.ChangeEvent) error {
	before, err := ev.BeforeMessage()
	if err != nil {
		return err
	}
	after, err := ev.AfterMessage()
	if err != nil {
		return err
	}

	if after.TransferID == "" {
		return nil
	}
	if before.AgentID == after.AgentID || after.AgentID == "" {
		return nil
	}

	log.Printf("[TRIGGER] Chat hand-off from agent %s to agent %s", before.AgentID, after.AgentID)

	// The outgoing agent's name only personalizes the message; a profile
	// miss must not abort the hand-off notification.
	var name string
	if before.AgentID != "" {
		name, _ = c.resolver.AgentDisplayName(ctx, before.AgentID)
	}

	tokens := c.resolver.Resolve(ctx, recipient.Administrator, after.AgentID)
	push := c.builder.Handoff(name, after.CustomerID)
	c.dispatcher.DispatchToTokens(ctx, push, tokens)
	return nil
}

// HandleChatCreated broadcasts to the administrators topic when a chat is
// created without an assigned agent. No per-token resolution happens here.
func (c *Classifier) HandleChatCreated(ctx context.Context, ev *domain.ChangeEvent) error {
	msg, err := ev.AfterMessage()
	if err != nil {
		return err
	}

	if msg.AgentID != "" {
		return nil
	}

	log.Printf("[TRIGGER] Unassigned chat for customer %s, broadcasting to %s", msg.CustomerID, c.broadcastTopic)

	push := c.builder.Broadcast(msg.CustomerID)
	c.dispatcher.DispatchToTopic(ctx, push, c.broadcastTopic)
	return nil
}
