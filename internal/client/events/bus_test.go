package events

import (
	"sync"
	"testing"

	"github.com/acadium/dashboard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishReachesOnlyTopicSubscribers(t *testing.T) {
	bus := NewBus(logging.Nop())

	var favs, recents int
	bus.Subscribe(TopicFavoritesChanged, func(Event) { favs++ })
	bus.Subscribe(TopicRecentPagesChanged, func(Event) { recents++ })

	bus.Publish(TopicFavoritesChanged)
	bus.Publish(TopicFavoritesChanged)

	assert.Equal(t, 2, favs)
	assert.Equal(t, 0, recents)
}

func TestBus_DeliversInSubscriptionOrderSynchronously(t *testing.T) {
	bus := NewBus(logging.Nop())

	var order []string
	bus.Subscribe(TopicProfileUpdated, func(Event) { order = append(order, "sidebar") })
	bus.Subscribe(TopicProfileUpdated, func(Event) { order = append(order, "header") })

	bus.Publish(TopicProfileUpdated)

	// Publish has returned, so both handlers already ran.
	assert.Equal(t, []string{"sidebar", "header"}, order)
}

func TestBus_UnsubscribeStopsDeliveryAndIsIdempotent(t *testing.T) {
	bus := NewBus(logging.Nop())

	calls := 0
	unsubscribe := bus.Subscribe(TopicFavoritesChanged, func(Event) { calls++ })
	require.Equal(t, 1, bus.Len(TopicFavoritesChanged))

	unsubscribe()
	unsubscribe()
	bus.Publish(TopicFavoritesChanged)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, bus.Len(TopicFavoritesChanged))
}

func TestBus_UnsubscribeKeepsOtherSubscribers(t *testing.T) {
	bus := NewBus(logging.Nop())

	var got []string
	a := bus.Subscribe(TopicRecentPagesChanged, func(Event) { got = append(got, "a") })
	bus.Subscribe(TopicRecentPagesChanged, func(Event) { got = append(got, "b") })
	bus.Subscribe(TopicRecentPagesChanged, func(Event) { got = append(got, "c") })

	a()
	bus.Publish(TopicRecentPagesChanged)

	assert.Equal(t, []string{"b", "c"}, got)
}

func TestBus_HandlerMayUnsubscribeItself(t *testing.T) {
	bus := NewBus(logging.Nop())

	calls := 0
	var unsubscribe func()
	unsubscribe = bus.Subscribe(TopicProfileUpdated, func(Event) {
		calls++
		unsubscribe()
	})

	bus.Publish(TopicProfileUpdated)
	bus.Publish(TopicProfileUpdated)

	assert.Equal(t, 1, calls)
}

func TestBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus(logging.Nop())

	reached := false
	bus.Subscribe(TopicFavoritesChanged, func(Event) { panic("boom") })
	bus.Subscribe(TopicFavoritesChanged, func(Event) { reached = true })

	assert.NotPanics(t, func() { bus.Publish(TopicFavoritesChanged) })
	assert.True(t, reached)
}

func TestBus_OriginDefaultsToLocal(t *testing.T) {
	bus := NewBus(logging.Nop())

	var got []Event
	bus.Subscribe(TopicProfileUpdated, func(e Event) { got = append(got, e) })

	bus.Publish(TopicProfileUpdated)
	bus.PublishEvent(Event{Topic: TopicProfileUpdated, Origin: OriginRemote})
	bus.PublishEvent(Event{Topic: TopicProfileUpdated})

	require.Len(t, got, 3)
	assert.Equal(t, OriginLocal, got[0].Origin)
	assert.Equal(t, OriginRemote, got[1].Origin)
	assert.Equal(t, OriginLocal, got[2].Origin)
}

func TestBus_ConcurrentSubscribePublish(t *testing.T) {
	bus := NewBus(logging.Nop())

	var mu sync.Mutex
	total := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := bus.Subscribe(TopicFavoritesChanged, func(Event) {
				mu.Lock()
				total++
				mu.Unlock()
			})
			bus.Publish(TopicFavoritesChanged)
			unsub()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, bus.Len(TopicFavoritesChanged))
	assert.Positive(t, total)
}
