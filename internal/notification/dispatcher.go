package notification

import (
	"context"
	"log"
	"sync"

	"firebase.google.com/go/v4/messaging"

	"safymenu-backend/pkg/fcm"
	"safymenu-backend/pkg/metrics"
)

// Sender is the one-shot delivery contract. *fcm.Client satisfies it; tests
// substitute a fake.
type Sender interface {
	Send(ctx context.Context, msg *messaging.Message) (string, error)
}

// Outcome is the settled result of one send.
type Outcome struct {
	TokenPrefix string
	Response    string
	Err         error
	Class       fcm.ErrorClass
}

// Report aggregates the outcomes of a dispatch. It is the only durable
// artifact of a dispatch and only ever reaches the logs.
type Report struct {
	Success int
	Failure int
}

// Dispatcher fans a built message out to its targets. Sends are never
// retried and a failed token never blocks the rest.
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// DispatchToTokens issues one independent send per token and waits for every
// outcome to settle before reporting. Zero tokens short-circuits without
// contacting the provider.
func (d *Dispatcher) DispatchToTokens(ctx context.Context, msg PushMessage, tokens []string) Report {
	if len(tokens) == 0 {
		log.Printf("[DISPATCH] No tokens to deliver to (category=%s), skipping", msg.Category)
		return Report{}
	}

	log.Printf("[DISPATCH] Sending to %d token(s) (category=%s)", len(tokens), msg.Category)
	metrics.DispatchesTotal.WithLabelValues(string(msg.Category)).Inc()

	outcomes := make([]Outcome, len(tokens))
	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			outcomes[i] = d.send(ctx, msg.ToToken(token), token)
		}(i, token)
	}
	wg.Wait()

	var report Report
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			report.Failure++
			log.Printf("[DISPATCH] Token %d/%d failed (%s, token=%s): %v",
				i+1, len(tokens), outcome.Class, outcome.TokenPrefix, outcome.Err)
		} else {
			report.Success++
		}
	}

	log.Printf("[DISPATCH] Result: %d sent, %d failed (category=%s)", report.Success, report.Failure, msg.Category)
	return report
}

// DispatchToTopic issues the single send a topic broadcast needs.
func (d *Dispatcher) DispatchToTopic(ctx context.Context, msg PushMessage, topic string) Report {
	log.Printf("[DISPATCH] Broadcasting to topic %s (category=%s)", topic, msg.Category)
	metrics.DispatchesTotal.WithLabelValues(string(msg.Category)).Inc()

	outcome := d.send(ctx, msg.ToTopic(topic), "")
	if outcome.Err != nil {
		log.Printf("[DISPATCH] Topic %s broadcast failed (%s): %v", topic, outcome.Class, outcome.Err)
		return Report{Failure: 1}
	}
	log.Printf("[DISPATCH] Topic %s broadcast sent: %s", topic, outcome.Response)
	return Report{Success: 1}
}

func (d *Dispatcher) send(ctx context.Context, msg *messaging.Message, token string) Outcome {
	response, err := d.sender.Send(ctx, msg)
	if err != nil {
		class := fcm.Classify(err)
		metrics.SendsTotal.WithLabelValues(string(class)).Inc()
		return Outcome{TokenPrefix: tokenPrefix(token), Err: err, Class: class}
	}
	metrics.SendsTotal.WithLabelValues("ok").Inc()
	return Outcome{TokenPrefix: tokenPrefix(token), Response: response}
}

// tokenPrefix truncates a token for diagnostics; full tokens stay out of the
// logs.
func tokenPrefix(token string) string {
	if len(token) > 12 {
		return token[:12] + "..."
	}
	return token
}
