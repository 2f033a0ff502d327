package firestore

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Reader is the point-read contract the dispatch engine consumes from the
// document store: a path either resolves to a field map or does not exist.
type Reader interface {
	GetDocument(ctx context.Context, path string) (map[string]interface{}, bool, error)
}

// Client wraps the Firestore client behind the Reader interface
type Client struct {
	fs *firestore.Client
}

// NewClient creates a Firestore client from an initialized Firebase app
func NewClient(ctx context.Context, app *firebase.App) (*Client, error) {
	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get firestore client: %w", err)
	}

	log.Println("[Firestore] Client initialized successfully")
	return &Client{fs: fs}, nil
}

// GetDocument performs a single non-transactional point read. A missing
// document reports exists=false rather than an error.
func (c *Client) GetDocument(ctx context.Context, path string) (map[string]interface{}, bool, error) {
	doc := c.fs.Doc(path)
	if doc == nil {
		return nil, false, fmt.Errorf("invalid document path: %s", path)
	}

	snap, err := doc.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return snap.Data(), true, nil
}

// Close releases the underlying client
func (c *Client) Close() error {
	return c.fs.Close()
}
