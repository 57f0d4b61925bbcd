package live

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 4), Room: "user-7", UserID: "user-7"}
	hub.register <- client

	other := &Client{Send: make(chan []byte, 4), Room: "user-9", UserID: "user-9"}
	hub.register <- other

	hub.Broadcast("user-7", Event{Action: "created", ScheduleID: "s1"})

	select {
	case data := <-client.Send:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		if ev.Action != "created" || ev.ScheduleID != "s1" {
			t.Fatalf("unexpected event: %+v", ev)
		}
		if ev.Timestamp == 0 {
			t.Fatal("timestamp should be filled in")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}

	// Other rooms must not receive the event.
	select {
	case data := <-other.Send:
		t.Fatalf("cross-room leak: %s", data)
	default:
	}

	hub.unregister <- client
	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected closed send channel after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for unregister")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// Zero-capacity send channel with no reader simulates a stalled tab.
	slow := &Client{Send: make(chan []byte), Room: "user-7", UserID: "user-7"}
	hub.register <- slow

	hub.Broadcast("user-7", Event{Action: "deleted", ScheduleID: "s1"})

	select {
	case _, ok := <-slow.Send:
		if ok {
			t.Fatal("expected closed channel for dropped client")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for slow client drop")
	}
}

func TestNotifyWithoutHubIsNoOp(t *testing.T) {
	prev := defaultHub
	defaultHub = nil
	defer func() { defaultHub = prev }()

	// Must not panic or block.
	Notify("user-7", Event{Action: "renamed", ScheduleID: "s1"})
}
