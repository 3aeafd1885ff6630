package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBroadcastEventReachesRegisteredClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, Send: make(chan []byte, 4)}
	hub.register <- client

	hub.BroadcastEvent(EventLeadCreated, map[string]string{"lead_id": "abc"})

	select {
	case raw := <-client.Send:
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("broadcast payload is not valid JSON: %v", err)
		}
		if ev.Type != EventLeadCreated {
			t.Errorf("expected event type %q, got %q", EventLeadCreated, ev.Type)
		}
		payload, ok := ev.Payload.(map[string]interface{})
		if !ok || payload["lead_id"] != "abc" {
			t.Errorf("unexpected payload: %+v", ev.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestSlowClientIsEvicted(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Unbuffered Send with no reader: the dispatch loop must drop the
	// client instead of blocking the hub.
	client := &Client{Hub: hub, Send: make(chan []byte)}
	hub.register <- client

	hub.BroadcastEvent(EventSaleRecorded, nil)

	select {
	case _, open := <-client.Send:
		if open {
			t.Fatal("expected Send to be closed for the evicted client")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for eviction")
	}
}
