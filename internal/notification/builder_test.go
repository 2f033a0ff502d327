package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safymenu-backend/internal/chat/domain"
)

func fixedClock() time.Time {
	return time.Unix(1700000000, 0)
}

func TestBuilder_ChatMessage(t *testing.T) {
	tests := []struct {
		name          string
		message       *domain.ChatMessage
		expectedTitle string
		expectedBody  string
	}{
		{
			name:          "text message uses content as body",
			message:       &domain.ChatMessage{Type: domain.MessageText, Content: "Oi", SenderName: "João"},
			expectedTitle: "João",
			expectedBody:  "Oi",
		},
		{
			name:          "empty text content falls back to generic body",
			message:       &domain.ChatMessage{Type: domain.MessageText},
			expectedTitle: "Nova mensagem",
			expectedBody:  "Mensagem",
		},
		{
			name:          "image message ignores content",
			message:       &domain.ChatMessage{Type: domain.MessageImage, Content: "should not appear"},
			expectedTitle: "Nova mensagem",
			expectedBody:  "📷 Imagem",
		},
		{
			name:          "audio message uses fixed indicator",
			message:       &domain.ChatMessage{Type: domain.MessageAudio},
			expectedTitle: "Nova mensagem",
			expectedBody:  "🎤 Áudio",
		},
		{
			name:          "unknown type falls back to generic body",
			message:       &domain.ChatMessage{Type: domain.MessageType(9)},
			expectedTitle: "Nova mensagem",
			expectedBody:  "Nova mensagem",
		},
	}

	builder := NewBuilder(fixedClock)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			push := builder.ChatMessage(tt.message, "T1")

			assert.Equal(t, CategoryChatMessage, push.Category)
			assert.Equal(t, tt.expectedTitle, push.Title)
			assert.Equal(t, tt.expectedBody, push.Body)
			assert.Equal(t, "T1", push.Param)
			assert.Equal(t, "T1_1700000000", push.Tag)
			assert.Equal(t, push.Tag, push.ThreadID)
		})
	}
}

func TestBuilder_ChatMessage_CarriesImageURL(t *testing.T) {
	builder := NewBuilder(fixedClock)
	push := builder.ChatMessage(&domain.ChatMessage{Type: domain.MessageImage, ImageURL: "https://img.example/x.png"}, "T1")
	assert.Equal(t, "https://img.example/x.png", push.ImageURL)
}

func TestBuilder_Handoff(t *testing.T) {
	builder := NewBuilder(fixedClock)

	t.Run("personalized title with outgoing agent name", func(t *testing.T) {
		push := builder.Handoff("Maria", "U1")
		assert.Equal(t, CategoryHandoff, push.Category)
		assert.Equal(t, "Maria te enviou um atendimento", push.Title)
		assert.Equal(t, "Dê continuidade ao atendimento.", push.Body)
		assert.NotEmpty(t, push.ImageURL)
		assert.Equal(t, "U1", push.Param)
		assert.Equal(t, "U1_1700000000", push.Tag)
	})

	t.Run("generic title when name unavailable", func(t *testing.T) {
		push := builder.Handoff("", "U1")
		assert.Equal(t, "Você recebeu um atendimento", push.Title)
		assert.Equal(t, "Dê continuidade ao atendimento.", push.Body)
	})
}

func TestBuilder_Broadcast(t *testing.T) {
	builder := NewBuilder(fixedClock)
	push := builder.Broadcast("U7")

	assert.Equal(t, CategoryBroadcast, push.Category)
	assert.Equal(t, "Chamado na área!", push.Title)
	assert.Equal(t, "Alguém tá te esperando no chat pra ser atendido. 😊", push.Body)
	assert.Empty(t, push.ImageURL)
	assert.Equal(t, "U7", push.Param)
	assert.Equal(t, "U7_1700000000", push.Tag)
}

func TestPushMessage_ToToken(t *testing.T) {
	builder := NewBuilder(fixedClock)
	push := builder.ChatMessage(&domain.ChatMessage{Type: domain.MessageText, Content: "Oi"}, "T1")

	msg := push.ToToken("tok123")
	require.NotNil(t, msg)

	assert.Equal(t, "tok123", msg.Token)
	assert.Empty(t, msg.Topic)
	assert.Equal(t, "Oi", msg.Notification.Body)
	assert.Equal(t, map[string]string{
		"payload":   "chat",
		"parametro": "T1",
		"tag":       "T1_1700000000",
	}, msg.Data)
	assert.Equal(t, "high", msg.Android.Priority)
	assert.Equal(t, "chat", msg.Android.Notification.ChannelID)
	assert.Equal(t, "T1_1700000000", msg.Android.Notification.Tag)
	assert.Equal(t, "T1_1700000000", msg.APNS.Headers["apns-collapse-id"])
	assert.Equal(t, "T1_1700000000", msg.APNS.Headers["thread-id"])
}

func TestPushMessage_ToTopic(t *testing.T) {
	builder := NewBuilder(fixedClock)
	push := builder.Broadcast("U7")

	msg := push.ToTopic("administradores")
	require.NotNil(t, msg)

	assert.Equal(t, "administradores", msg.Topic)
	assert.Empty(t, msg.Token)
	assert.Equal(t, "newChat", msg.Data["payload"])
	assert.Equal(t, "new_chat", msg.Android.Notification.ChannelID)
	_, hasThread := msg.APNS.Headers["thread-id"]
	assert.False(t, hasThread)
}

func TestBuilder_Handoff_ChannelID(t *testing.T) {
	builder := NewBuilder(fixedClock)
	push := builder.Handoff("Maria", "U1")
	msg := push.ToToken("tok")
	assert.Equal(t, "new_chat", msg.Android.Notification.ChannelID)
}
