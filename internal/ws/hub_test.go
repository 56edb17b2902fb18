package ws

import (
	"encoding/json"
	"testing"
)

func newTestClient(buf int) *Client {
	return &Client{send: make(chan []byte, buf)}
}

func TestHubPublishReachesAllClients(t *testing.T) {
	h := NewHub()
	a := newTestClient(4)
	b := newTestClient(4)
	h.Register(a)
	h.Register(b)

	h.Publish(EventAssetSold, map[string]int64{"asset_id": 7})

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.send:
			var ev Event
			if err := json.Unmarshal(raw, &ev); err != nil {
				t.Fatalf("unmarshal event: %v", err)
			}
			if ev.Type != EventAssetSold {
				t.Errorf("event type = %q, want %q", ev.Type, EventAssetSold)
			}
		default:
			t.Fatal("client did not receive the event")
		}
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	h := NewHub()
	slow := newTestClient(1)
	h.Register(slow)

	h.Publish(EventListingCreated, nil)
	h.Publish(EventListingCreated, nil)

	if n := h.ClientCount(); n != 0 {
		t.Errorf("slow client should have been dropped, ClientCount = %d", n)
	}
	// the send channel is closed on drop
	if _, ok := <-slow.send; !ok {
		t.Fatal("expected one buffered event before close")
	}
	if _, ok := <-slow.send; ok {
		t.Error("send channel should be closed after drop")
	}
}

func TestHubUnregisterIdempotent(t *testing.T) {
	h := NewHub()
	c := newTestClient(1)
	h.Register(c)
	h.Unregister(c)
	h.Unregister(c)

	if n := h.ClientCount(); n != 0 {
		t.Errorf("ClientCount = %d, want 0", n)
	}
}
