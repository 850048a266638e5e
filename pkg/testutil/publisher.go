package testutil

import (
	"context"
	"sync"

	"github.com/quantex-lab/relayer/pkg/pubsub"
)

// MockPublisher records every published pack so tests can assert on the
// emitted telemetry.
type MockPublisher struct {
	mutex sync.Mutex
	packs map[string][]*pubsub.Pack

	PublishFunc func(ctx context.Context, topic string, pack *pubsub.Pack) error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{packs: make(map[string][]*pubsub.Pack)}
}

func (p *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if p.PublishFunc != nil {
		return p.PublishFunc(ctx, topic, pack)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.packs[topic] = append(p.packs[topic], pack)
	return nil
}

func (p *MockPublisher) Stop(ctx context.Context) error {
	return nil
}

func (p *MockPublisher) Published(topic string) []*pubsub.Pack {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]*pubsub.Pack{}, p.packs[topic]...)
}
