package recipient

import (
	"context"
	"fmt"
	"log"

	"safymenu-backend/pkg/firestore"
)

// Kind selects which record type a resolution reads.
type Kind int

const (
	// Administrator records hold a single pushToken field.
	Administrator Kind = iota
	// Store records hold an fcmTokens collection, one entry per staff device.
	Store
)

const (
	adminCollection = "administradores"
	storeCollection = "lojas"
)

// Resolver turns a subject id into the device tokens that should be
// notified. It never mutates state; any read miss or failure degrades to an
// empty result so the pipeline short-circuits instead of erroring.
type Resolver struct {
	store firestore.Reader
}

func NewResolver(store firestore.Reader) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the destination tokens for the given record. The store
// token collection is returned verbatim; duplicate delivery to the same
// device is acceptable noise.
func (r *Resolver) Resolve(ctx context.Context, kind Kind, id string) []string {
	switch kind {
	case Administrator:
		return r.administrator(ctx, id)
	case Store:
		return r.storeTokens(ctx, id)
	}
	return nil
}

func (r *Resolver) administrator(ctx context.Context, id string) []string {
	data, exists, err := r.store.GetDocument(ctx, adminCollection+"/"+id)
	if err != nil {
		log.Printf("[RESOLVE] Failed to read administrator %s: %v", id, err)
		return nil
	}
	if !exists {
		log.Printf("[RESOLVE] Administrator %s not found", id)
		return nil
	}
	token, _ := data["pushToken"].(string)
	if token == "" {
		log.Printf("[RESOLVE] Administrator %s has no push token", id)
		return nil
	}
	return []string{token}
}

func (r *Resolver) storeTokens(ctx context.Context, id string) []string {
	data, exists, err := r.store.GetDocument(ctx, storeCollection+"/"+id)
	if err != nil {
		log.Printf("[RESOLVE] Failed to read store %s: %v", id, err)
		return nil
	}
	if !exists {
		log.Printf("[RESOLVE] Store %s not found", id)
		return nil
	}

	raw, ok := data["fcmTokens"].([]interface{})
	if !ok {
		log.Printf("[RESOLVE] Store %s has no token collection", id)
		return nil
	}
	tokens := make([]string, 0, len(raw))
	for _, v := range raw {
		if token, ok := v.(string); ok && token != "" {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		log.Printf("[RESOLVE] Store %s token collection is empty", id)
	}
	return tokens
}

// AgentDisplayName reads an administrator's profile name for message
// personalization. Callers must treat a miss as non-fatal.
func (r *Resolver) AgentDisplayName(ctx context.Context, id string) (string, bool) {
	path := fmt.Sprintf("%s/%s/perfil/perfilUsuario", adminCollection, id)
	data, exists, err := r.store.GetDocument(ctx, path)
	if err != nil {
		log.Printf("[RESOLVE] Failed to read profile of agent %s: %v", id, err)
		return "", false
	}
	if !exists {
		log.Printf("[RESOLVE] Profile of agent %s not found", id)
		return "", false
	}
	name, _ := data["nome"].(string)
	return name, name != ""
}
