package notification

import (
	"fmt"
	"time"

	"firebase.google.com/go/v4/messaging"

	"safymenu-backend/internal/chat/domain"
)

// Category identifies which trigger produced a notification. The payload
// value doubles as the client-side tap-routing discriminator.
type Category string

const (
	CategoryChatMessage Category = "chat"     // new message in an existing conversation
	CategoryHandoff     Category = "new_chat" // chat reassigned to another agent
	CategoryBroadcast   Category = "newChat"  // unassigned chat waiting for any agent
)

// Notification channel ids registered by the Android client.
const (
	channelChat    = "chat"
	channelNewChat = "new_chat"
)

const handoffImageURL = "https://firebasestorage.googleapis.com/v0/b/atual-controle-356a9.appspot.com/o/atualControle%2Fnova_mensagem.png?alt=media&token=d0ab54f4-e4ba-4c89-99ff-fae3817c650a"

// PushMessage is the write-once value object handed to the dispatcher. It is
// built per trigger invocation and never persisted.
type PushMessage struct {
	Category Category
	Title    string
	Body     string
	ImageURL string

	// Correlation parameter the client uses to open the right conversation.
	Param string

	// Tag collapses rapid duplicate notifications on the device.
	Tag string

	// ThreadID groups related notifications on iOS; only chat messages
	// thread together.
	ThreadID string
}

// ToToken renders the message for a single device token.
func (m *PushMessage) ToToken(token string) *messaging.Message {
	msg := m.base()
	msg.Token = token
	return msg
}

// ToTopic renders the message for a topic broadcast.
func (m *PushMessage) ToTopic(topic string) *messaging.Message {
	msg := m.base()
	msg.Topic = topic
	return msg
}

func (m *PushMessage) base() *messaging.Message {
	channelID := channelNewChat
	if m.Category == CategoryChatMessage {
		channelID = channelChat
	}

	apnsHeaders := map[string]string{
		"apns-collapse-id": m.Tag,
	}
	if m.ThreadID != "" {
		apnsHeaders["thread-id"] = m.ThreadID
	}

	return &messaging.Message{
		Notification: &messaging.Notification{
			Title:    m.Title,
			Body:     m.Body,
			ImageURL: m.ImageURL,
		},
		Data: map[string]string{
			"payload":   string(m.Category),
			"parametro": m.Param,
			"tag":       m.Tag,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: channelID,
				Priority:  messaging.PriorityHigh,
				Tag:       m.Tag,
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: apnsHeaders,
		},
	}
}

// Builder constructs PushMessages. It performs no I/O; the clock is injected
// so dedupe tags are deterministic under test.
type Builder struct {
	now func() time.Time
}

func NewBuilder(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{now: now}
}

// dedupeTag derives the collapse tag from the triggering subject and a
// coarse timestamp. Second granularity is enough to fold rapid duplicates
// without colliding across conversations.
func (b *Builder) dedupeTag(subjectID string) string {
	return fmt.Sprintf("%s_%d", subjectID, b.now().Unix())
}

// ChatMessage builds the notification for a new message in a conversation
// under the given tenant.
func (b *Builder) ChatMessage(msg *domain.ChatMessage, tenantID string) PushMessage {
	tag := b.dedupeTag(tenantID)
	return PushMessage{
		Category: CategoryChatMessage,
		Title:    chatTitle(msg),
		Body:     chatBody(msg),
		ImageURL: msg.ImageURL,
		Param:    tenantID,
		Tag:      tag,
		ThreadID: tag,
	}
}

// Handoff builds the notification sent to the agent a chat was reassigned
// to. An empty outgoingAgentName falls back to a generic title.
func (b *Builder) Handoff(outgoingAgentName, customerID string) PushMessage {
	title := "Você recebeu um atendimento"
	if outgoingAgentName != "" {
		title = fmt.Sprintf("%s te enviou um atendimento", outgoingAgentName)
	}
	return PushMessage{
		Category: CategoryHandoff,
		Title:    title,
		Body:     "Dê continuidade ao atendimento.",
		ImageURL: handoffImageURL,
		Param:    customerID,
		Tag:      b.dedupeTag(customerID),
	}
}

// Broadcast builds the notification for an unassigned chat, addressed to the
// administrators topic rather than individual tokens.
func (b *Builder) Broadcast(customerID string) PushMessage {
	return PushMessage{
		Category: CategoryBroadcast,
		Title:    "Chamado na área!",
		Body:     "Alguém tá te esperando no chat pra ser atendido. 😊",
		Param:    customerID,
		Tag:      b.dedupeTag(customerID),
	}
}

func chatTitle(msg *domain.ChatMessage) string {
	if msg.SenderName != "" {
		return msg.SenderName
	}
	return "Nova mensagem"
}

func chatBody(msg *domain.ChatMessage) string {
	switch msg.Type {
	case domain.MessageText:
		if msg.Content != "" {
			return msg.Content
		}
		return "Mensagem"
	case domain.MessageImage:
		return "📷 Imagem"
	case domain.MessageAudio:
		return "🎤 Áudio"
	}
	return "Nova mensagem"
}
