package fcm

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// ErrorClass buckets a failed send for reporting. The dispatch engine never
// retries; the class only feeds logs and counters.
type ErrorClass string

const (
	ErrInvalidToken ErrorClass = "invalid-token"
	ErrUnavailable  ErrorClass = "unavailable"
	ErrUnknown      ErrorClass = "unknown"
)

// Classify maps a provider error onto the engine's error taxonomy.
func Classify(err error) ErrorClass {
	switch {
	case messaging.IsUnregistered(err) || errorutils.IsInvalidArgument(err):
		return ErrInvalidToken
	case errorutils.IsUnavailable(err) || errorutils.IsInternal(err):
		return ErrUnavailable
	default:
		return ErrUnknown
	}
}

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates a new FCM client from an initialized Firebase app
func NewClient(ctx context.Context, app *firebase.App) (*Client, error) {
	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized successfully")
	return &Client{
		messagingClient: messagingClient,
	}, nil
}

// NewApp initializes the Firebase app shared by the messaging and Firestore clients
func NewApp(ctx context.Context, credentialsFile string) (*firebase.App, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	return app, nil
}

// Send delivers a single message (token or topic target) and returns the
// provider's response handle.
func (c *Client) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	response, err := c.messagingClient.Send(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("failed to send FCM message: %w", err)
	}
	return response, nil
}
