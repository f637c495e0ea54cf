package websocket

import (
	"errors"
	"sync"
	"testing"
)

type fakeConn struct {
	mu     sync.Mutex
	events []OutEvent
	fail   bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.fail {
		return errors.New("write fail")
	}
	e, ok := v.(OutEvent)
	if !ok {
		return errors.New("unexpected frame type")
	}
	f.mu.Lock()
	f.events = append(f.events, e)
	f.mu.Unlock()
	return nil
}

func (f *fakeConn) count(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.Event == event {
			n++
		}
	}
	return n
}

func (f *fakeConn) last(event string) (OutEvent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].Event == event {
			return f.events[i], true
		}
	}
	return OutEvent{}, false
}

func newTestClient(t *testing.T, hub *Hub, store ChatStore, email string) (*Client, *fakeConn) {
	t.Helper()
	conn := &fakeConn{}
	c := NewClient(hub, store, conn)
	c.Authenticate(Identity{ID: email + "-id", Email: email})
	return c, conn
}

func TestHubRoomBroadcast(t *testing.T) {
	hub := NewHub()
	a, connA := newTestClient(t, hub, nil, "a@x.com")
	b, connB := newTestClient(t, hub, nil, "b@x.com")
	_, connC := newTestClient(t, hub, nil, "c@x.com")

	hub.Join("conv-1", a)
	hub.Join("conv-1", b)

	hub.Broadcast("conv-1", OutEvent{Event: "ping", Data: nil})

	if connA.count("ping") != 1 || connB.count("ping") != 1 {
		t.Fatalf("room members should each receive the broadcast once")
	}
	if connC.count("ping") != 0 {
		t.Fatalf("non-member should not receive a room broadcast")
	}
}

func TestHubBroadcastExceptSkipsSender(t *testing.T) {
	hub := NewHub()
	a, connA := newTestClient(t, hub, nil, "a@x.com")
	b, connB := newTestClient(t, hub, nil, "b@x.com")

	hub.Join("conv-1", a)
	hub.Join("conv-1", b)

	hub.BroadcastExcept("conv-1", a, OutEvent{Event: "typing", Data: nil})

	if connA.count("typing") != 0 {
		t.Fatalf("sender should be excluded from the relay")
	}
	if connB.count("typing") != 1 {
		t.Fatalf("other members should receive the relay")
	}
}

func TestHubPresenceBroadcasts(t *testing.T) {
	hub := NewHub()
	a, connA := newTestClient(t, hub, nil, "a@x.com")

	if !hub.IsOnline("a@x.com") {
		t.Fatalf("registered identity should be online")
	}

	_, connB := newTestClient(t, hub, nil, "b@x.com")

	// a sees b come online.
	if connA.count(EventUserStatus) != 2 {
		t.Fatalf("expected 2 user_status events on connA, got %d", connA.count(EventUserStatus))
	}

	a.Close()
	if hub.IsOnline("a@x.com") {
		t.Fatalf("unregistered identity should be offline")
	}

	e, ok := connB.last(EventUserStatus)
	if !ok {
		t.Fatalf("connB should have observed a presence transition")
	}
	p := e.Data.(UserStatusPayload)
	if p.Status != StatusOffline || p.UserID != "a@x.com-id" {
		t.Fatalf("unexpected offline payload: %+v", p)
	}
}

func TestHubLastConnectedWins(t *testing.T) {
	hub := NewHub()
	first, _ := newTestClient(t, hub, nil, "a@x.com")
	_, connB := newTestClient(t, hub, nil, "b@x.com")

	// Second connection for the same identity takes over the mapping.
	second, _ := newTestClient(t, hub, nil, "a@x.com")

	before := connB.count(EventUserStatus)
	first.Close()
	if connB.count(EventUserStatus) != before {
		t.Fatalf("stale connection closing must not broadcast offline")
	}
	if !hub.IsOnline("a@x.com") {
		t.Fatalf("identity should stay online while the newer connection lives")
	}

	second.Close()
	if hub.IsOnline("a@x.com") {
		t.Fatalf("identity should be offline after the active connection closes")
	}
}

func TestHubUnregisterLeavesRooms(t *testing.T) {
	hub := NewHub()
	a, _ := newTestClient(t, hub, nil, "a@x.com")
	b, connB := newTestClient(t, hub, nil, "b@x.com")

	hub.Join("conv-1", a)
	hub.Join("conv-1", b)

	a.Close()
	hub.Broadcast("conv-1", OutEvent{Event: "ping", Data: nil})

	if connB.count("ping") != 1 {
		t.Fatalf("remaining member should still receive broadcasts")
	}

	hub.mu.RLock()
	_, stillMember := hub.rooms["conv-1"][a]
	hub.mu.RUnlock()
	if stillMember {
		t.Fatalf("closed client should have been removed from its rooms")
	}
}

func TestHubBroadcastSurvivesFailedWrite(t *testing.T) {
	hub := NewHub()
	bad := &fakeConn{fail: true}
	a := NewClient(hub, nil, bad)
	a.Authenticate(Identity{ID: "a", Email: "a@x.com"})
	b, connB := newTestClient(t, hub, nil, "b@x.com")

	hub.Join("conv-1", a)
	hub.Join("conv-1", b)

	hub.Broadcast("conv-1", OutEvent{Event: "ping", Data: nil})

	if connB.count("ping") != 1 {
		t.Fatalf("healthy member should receive the broadcast despite a failing peer")
	}
}
