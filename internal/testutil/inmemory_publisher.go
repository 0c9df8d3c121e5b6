package testutil

import (
	"context"
	"sync"

	"github.com/rentdesk/rentdesk/internal/types"
	webhookPublisher "github.com/rentdesk/rentdesk/internal/webhook/publisher"
	"github.com/samber/lo"
)

var _ webhookPublisher.WebhookPublisher = (*InMemoryWebhookPublisher)(nil)

// InMemoryWebhookPublisher records published events for assertions
type InMemoryWebhookPublisher struct {
	mu     sync.RWMutex
	events []*types.WebhookEvent
	// Err, when set, is returned by every publish
	Err error
}

func NewInMemoryWebhookPublisher() *InMemoryWebhookPublisher {
	return &InMemoryWebhookPublisher{}
}

func (p *InMemoryWebhookPublisher) PublishWebhook(_ context.Context, event *types.WebhookEvent) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *InMemoryWebhookPublisher) Close() error {
	return nil
}

// GetEvents returns all published events in publish order
func (p *InMemoryWebhookPublisher) GetEvents() []*types.WebhookEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	events := make([]*types.WebhookEvent, len(p.events))
	copy(events, p.events)
	return events
}

// EventNames returns the names of all published events in publish order
func (p *InMemoryWebhookPublisher) EventNames() []string {
	return lo.Map(p.GetEvents(), func(e *types.WebhookEvent, _ int) string {
		return e.EventName
	})
}

// Clear removes all recorded events
func (p *InMemoryWebhookPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.Err = nil
}
