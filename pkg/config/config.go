package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	GoogleProjectID     string
	FirebaseCredentials string

	// Pub/Sub subscriptions feeding the three Firestore trigger shapes.
	ChatMessageCreatedSub string
	ChatUpdatedSub        string
	ChatCreatedSub        string

	// Topic every administrator device subscribes to for unassigned chats.
	AdminBroadcastTopic string

	// Shared token for the /api/timestamp endpoint.
	TimestampToken string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		GoogleProjectID:       getEnv("GOOGLE_PROJECT_ID", ""),
		FirebaseCredentials:   getEnv("FIREBASE_CREDENTIALS", ""),
		ChatMessageCreatedSub: getEnv("CHAT_MESSAGE_CREATED_SUB", "chat-message-created-sub"),
		ChatUpdatedSub:        getEnv("CHAT_UPDATED_SUB", "chat-updated-sub"),
		ChatCreatedSub:        getEnv("CHAT_CREATED_SUB", "chat-created-sub"),
		AdminBroadcastTopic:   getEnv("ADMIN_BROADCAST_TOPIC", "administradores"),
		TimestampToken:        getEnv("TIMESTAMP_TOKEN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
