package broadcast

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPublishReachesSubscriber(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe("chat:1")
	defer cancel()

	bus.Publish("chat:1")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("signal not delivered")
	}
}

func TestPublishIsTopicScoped(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe("chat:1")
	defer cancel()

	bus.Publish("chat:2")

	select {
	case <-ch:
		t.Fatal("unexpected signal from another topic")
	default:
	}
}

func TestPublishCoalescesAndNeverBlocks(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe("cart")
	defer cancel()

	for i := 0; i < 10; i++ {
		bus.Publish("cart")
	}

	<-ch
	select {
	case <-ch:
		t.Fatal("expected signals to be coalesced")
	default:
	}
}

func TestCancelClosesChannelAndUnsubscribes(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe("cart")
	require.Equal(t, 1, bus.Subscribers("cart"))

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, bus.Subscribers("cart"))

	bus.Publish("cart")
}

func TestListenerGoroutineExitsOnCancel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe("cart")

	var wg sync.WaitGroup
	received := make(chan struct{}, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range ch {
			select {
			case received <- struct{}{}:
			default:
			}
		}
	}()

	bus.Publish("cart")
	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("listener did not observe signal")
	}

	cancel()
	wg.Wait()
}
