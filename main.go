package main

import (
	"context"
	"log"
	"time"

	api "safymenu-backend/cmd/api"
	"safymenu-backend/internal/chat/domain"
	"safymenu-backend/internal/notification"
	"safymenu-backend/internal/recipient"
	"safymenu-backend/internal/trigger"
	"safymenu-backend/pkg/config"
	"safymenu-backend/pkg/fcm"
	"safymenu-backend/pkg/firestore"
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx := context.Background()

	if cfg.GoogleProjectID == "" {
		log.Fatal("GOOGLE_PROJECT_ID not configured")
	}

	// Initialize Firebase app shared by the messaging and Firestore clients
	app, err := fcm.NewApp(ctx, cfg.FirebaseCredentials)
	if err != nil {
		log.Fatal("Failed to initialize Firebase app: ", err)
	}

	fcmClient, err := fcm.NewClient(ctx, app)
	if err != nil {
		log.Fatal("Failed to initialize FCM client: ", err)
	}

	storeClient, err := firestore.NewClient(ctx, app)
	if err != nil {
		log.Fatal("Failed to initialize Firestore client: ", err)
	}
	defer storeClient.Close()

	// Wire the dispatch pipeline (dependency injection)
	resolver := recipient.NewResolver(storeClient)
	builder := notification.NewBuilder(time.Now)
	dispatcher := notification.NewDispatcher(fcmClient)
	classifier := trigger.NewClassifier(resolver, builder, dispatcher, cfg.AdminBroadcastTopic)

	// Start the change-event consumer
	subscriptions := map[string]string{
		domain.EventChatMessageCreated: cfg.ChatMessageCreatedSub,
		domain.EventChatUpdated:        cfg.ChatUpdatedSub,
		domain.EventChatCreated:        cfg.ChatCreatedSub,
	}
	triggerService, err := trigger.NewService(cfg.GoogleProjectID, classifier, subscriptions, cfg.FirebaseCredentials)
	if err != nil {
		log.Fatal("Failed to initialize trigger service: ", err)
	}
	go triggerService.Start(ctx)

	// Start server
	handler := api.NewHandler(cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
