package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
)

type recordingSender struct {
	mu    sync.Mutex
	leads []entity.Lead
	err   error
}

func (r *recordingSender) Submit(ctx context.Context, lead entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.leads = append(r.leads, lead)
	return nil
}

func (r *recordingSender) all() []entity.Lead {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Lead(nil), r.leads...)
}

type recordingMessenger struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (r *recordingMessenger) Send(ctx context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, text)
	return nil
}

type countingNotifier struct {
	mu     sync.Mutex
	topics []string
}

func (c *countingNotifier) Publish(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = append(c.topics, topic)
}

func (c *countingNotifier) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.topics)
}

// failingStore har doim xato qaytaradi
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errStoreDown
}

func (failingStore) Set(ctx context.Context, key string, value []byte) error {
	return errStoreDown
}

func (failingStore) Delete(ctx context.Context, key string) error {
	return errStoreDown
}
