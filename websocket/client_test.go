package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/athlixir/athlixir_backend/models"
	"github.com/google/uuid"
)

type fakeStore struct {
	mu            sync.Mutex
	conversations map[string]*models.Conversation
	messages      []*models.Message

	failCreate  bool
	failSummary bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{conversations: make(map[string]*models.Conversation)}
}

func (s *fakeStore) addConversation(id string, emails ...string) *models.Conversation {
	conv := &models.Conversation{ID: uuid.MustParse(id)}
	for _, e := range emails {
		conv.Participants = append(conv.Participants, models.ConversationParticipant{
			UserID: uuid.New(), Email: e, Name: e, Role: "athlete",
		})
	}
	s.mu.Lock()
	s.conversations[id] = conv
	s.mu.Unlock()
	return conv
}

func (s *fakeStore) Conversation(_ context.Context, id string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

func (s *fakeStore) IsParticipant(_ context.Context, id, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return false, ErrConversationNotFound
	}
	for _, p := range conv.Participants {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) CreateMessage(_ context.Context, msg *models.Message) error {
	if s.failCreate {
		return errors.New("store down")
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return nil
}

func (s *fakeStore) UpdateConversationSummary(_ context.Context, id, lastMessage string, at time.Time, incrementUnread bool) error {
	if s.failSummary {
		return errors.New("store down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return ErrConversationNotFound
	}
	conv.LastMessage = lastMessage
	conv.LastMessageTime = at
	if incrementUnread {
		conv.UnreadCount++
	}
	return nil
}

func (s *fakeStore) MarkConversationRead(_ context.Context, id, receiverEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return ErrConversationNotFound
	}
	for _, m := range s.messages {
		if m.ConversationID == conv.ID && m.Receiver == receiverEmail {
			m.Read = true
		}
	}
	conv.UnreadCount = 0
	return nil
}

func (s *fakeStore) messageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func frame(t *testing.T, event string, payload interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	raw, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	return raw
}

const convID = "0b9fa1dc-3a94-4f04-9a15-7c1d3f6f2a01"

func TestEventBeforeAuthenticationRejected(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	conn := &fakeConn{}
	c := NewClient(hub, store, conn)

	c.HandleEvent(context.Background(), frame(t, EventJoinConversation, JoinConversationPayload{ConversationID: convID}))

	if conn.count(EventError) != 1 {
		t.Fatalf("unauthenticated event should yield exactly one error event")
	}
	if c.State() != StateConnecting {
		t.Fatalf("state should remain Connecting")
	}
}

func TestAuthenticateJoinsPersonalRoom(t *testing.T) {
	hub := NewHub()
	_, connA := newTestClient(t, hub, newFakeStore(), "a@x.com")

	hub.Broadcast("a@x.com", OutEvent{Event: "ping", Data: nil})
	if connA.count("ping") != 1 {
		t.Fatalf("authenticated client should be in its personal inbox room")
	}
}

func TestJoinConversationRequiresMembership(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	store.addConversation(convID, "a@x.com", "b@x.com")

	outsider, connOut := newTestClient(t, hub, store, "mallory@x.com")
	outsider.HandleEvent(context.Background(), frame(t, EventJoinConversation, JoinConversationPayload{ConversationID: convID}))

	if connOut.count(EventError) != 1 || connOut.count(EventJoinedConversation) != 0 {
		t.Fatalf("non-participant join should be refused")
	}

	member, connMem := newTestClient(t, hub, store, "a@x.com")
	member.HandleEvent(context.Background(), frame(t, EventJoinConversation, JoinConversationPayload{ConversationID: convID}))

	if connMem.count(EventJoinedConversation) != 1 {
		t.Fatalf("participant join should be acknowledged")
	}

	hub.Broadcast(convID, OutEvent{Event: "ping", Data: nil})
	if connOut.count("ping") != 0 {
		t.Fatalf("refused join must not subscribe the outsider")
	}
	if connMem.count("ping") != 1 {
		t.Fatalf("acknowledged join should subscribe the member")
	}
}

func TestSendMessagePersistsAndBroadcastsToThreeRooms(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	store.addConversation(convID, "a@x.com", "b@x.com")

	sender, connA := newTestClient(t, hub, store, "a@x.com")
	_, connB := newTestClient(t, hub, store, "b@x.com")

	ts := time.Now().Add(-time.Second).UTC().Truncate(time.Millisecond)
	sender.HandleEvent(context.Background(), frame(t, EventSendMessage, SendMessagePayload{
		ConversationID: convID,
		Sender:         "a@x.com",
		Receiver:       "b@x.com",
		Content:        "hello",
		Timestamp:      ts,
	}))

	if store.messageCount() != 1 {
		t.Fatalf("expected one persisted message, got %d", store.messageCount())
	}
	msg := store.messages[0]
	if msg.Read {
		t.Fatalf("new message must be persisted unread")
	}
	if !msg.Timestamp.Equal(ts) {
		t.Fatalf("sane client timestamp should be preserved")
	}

	// Sender sits only in their personal room; receiver only in theirs.
	if connA.count(EventReceiveMessage) != 1 {
		t.Fatalf("sender room should receive the message once, got %d", connA.count(EventReceiveMessage))
	}
	if connB.count(EventReceiveMessage) != 1 {
		t.Fatalf("receiver room should receive the message once, got %d", connB.count(EventReceiveMessage))
	}

	eA, _ := connA.last(EventReceiveMessage)
	eB, _ := connB.last(EventReceiveMessage)
	if eA.Data.(*models.Message).ID != eB.Data.(*models.Message).ID {
		t.Fatalf("all rooms must receive the identical message id")
	}
}

func TestSendMessageConversationRoomDelivery(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	store.addConversation(convID, "a@x.com", "b@x.com")

	sender, connA := newTestClient(t, hub, store, "a@x.com")
	receiver, connB := newTestClient(t, hub, store, "b@x.com")
	hub.Join(convID, sender)
	hub.Join(convID, receiver)

	sender.HandleEvent(context.Background(), frame(t, EventSendMessage, SendMessagePayload{
		ConversationID: convID,
		Sender:         "a@x.com",
		Receiver:       "b@x.com",
		Content:        "hi",
		Timestamp:      time.Now(),
	}))

	// Personal room + conversation room: members subscribed to both rooms
	// see the payload twice and deduplicate by message id client-side.
	if connA.count(EventReceiveMessage) != 2 || connB.count(EventReceiveMessage) != 2 {
		t.Fatalf("expected double delivery through personal and conversation rooms")
	}
}

func TestSendMessageSenderMismatchRejected(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	store.addConversation(convID, "a@x.com", "b@x.com")

	c, conn := newTestClient(t, hub, store, "mallory@x.com")
	_, connB := newTestClient(t, hub, store, "b@x.com")

	c.HandleEvent(context.Background(), frame(t, EventSendMessage, SendMessagePayload{
		ConversationID: convID,
		Sender:         "a@x.com",
		Receiver:       "b@x.com",
		Content:        "spoofed",
		Timestamp:      time.Now(),
	}))

	if store.messageCount() != 0 {
		t.Fatalf("spoofed send must not persist")
	}
	if conn.count(EventError) != 1 {
		t.Fatalf("actor should receive exactly one error")
	}
	if connB.count(EventReceiveMessage) != 0 {
		t.Fatalf("spoofed send must not broadcast")
	}
}

func TestSendMessageMissingConversationAborts(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()

	c, conn := newTestClient(t, hub, store, "a@x.com")
	c.HandleEvent(context.Background(), frame(t, EventSendMessage, SendMessagePayload{
		ConversationID: convID,
		Sender:         "a@x.com",
		Receiver:       "b@x.com",
		Content:        "into the void",
		Timestamp:      time.Now(),
	}))

	if store.messageCount() != 0 {
		t.Fatalf("send against a missing conversation must not persist anything")
	}
	if conn.count(EventError) != 1 {
		t.Fatalf("actor should hear about the failure")
	}
}

func TestSendMessageStoreFailureUnicastsError(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	store.addConversation(convID, "a@x.com", "b@x.com")
	store.failCreate = true

	c, conn := newTestClient(t, hub, store, "a@x.com")
	_, connB := newTestClient(t, hub, store, "b@x.com")

	c.HandleEvent(context.Background(), frame(t, EventSendMessage, SendMessagePayload{
		ConversationID: convID,
		Sender:         "a@x.com",
		Receiver:       "b@x.com",
		Content:        "hello",
		Timestamp:      time.Now(),
	}))

	if conn.count(EventError) != 1 {
		t.Fatalf("persistence failure should be reported to the actor only")
	}
	if connB.count(EventReceiveMessage) != 0 {
		t.Fatalf("failed send must not broadcast")
	}
	if c.State() != StateAuthenticated {
		t.Fatalf("failures are non-fatal to the connection")
	}
}

func TestSendMessageSummaryAndUnread(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	conv := store.addConversation(convID, "a@x.com", "b@x.com")

	c, _ := newTestClient(t, hub, store, "a@x.com")
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	content := "Hello there, how is training going today"

	c.HandleEvent(context.Background(), frame(t, EventSendMessage, SendMessagePayload{
		ConversationID: convID,
		Sender:         "a@x.com",
		Receiver:       "b@x.com",
		Content:        content,
		Timestamp:      ts,
	}))

	if store.messages[0].Content != content {
		t.Fatalf("message content must never be truncated")
	}
	if conv.LastMessage != "Hello there, how is training g..." {
		t.Fatalf("unexpected summary: %q", conv.LastMessage)
	}
	if !conv.LastMessageTime.Equal(ts) {
		t.Fatalf("lastMessageTime should be the message timestamp")
	}
	if conv.UnreadCount != 1 {
		t.Fatalf("unreadCount should be 1, got %d", conv.UnreadCount)
	}
}

func TestSendMessageFutureTimestampClamped(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	store.addConversation(convID, "a@x.com", "b@x.com")

	c, _ := newTestClient(t, hub, store, "a@x.com")
	before := time.Now()
	c.HandleEvent(context.Background(), frame(t, EventSendMessage, SendMessagePayload{
		ConversationID: convID,
		Sender:         "a@x.com",
		Receiver:       "b@x.com",
		Content:        "from the future",
		Timestamp:      time.Now().Add(time.Hour),
	}))

	got := store.messages[0].Timestamp
	if got.Before(before) || got.After(time.Now()) {
		t.Fatalf("skewed timestamp should be replaced with server receipt time, got %v", got)
	}
}

func TestMarkAsReadFlipsMessagesAndResetsUnread(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	conv := store.addConversation(convID, "a@x.com", "b@x.com")

	a, _ := newTestClient(t, hub, store, "a@x.com")
	b, connB := newTestClient(t, hub, store, "b@x.com")
	hub.Join(convID, a)
	hub.Join(convID, b)

	for i := 0; i < 3; i++ {
		a.HandleEvent(context.Background(), frame(t, EventSendMessage, SendMessagePayload{
			ConversationID: convID,
			Sender:         "a@x.com",
			Receiver:       "b@x.com",
			Content:        "msg",
			Timestamp:      time.Now(),
		}))
	}
	if conv.UnreadCount != 3 {
		t.Fatalf("expected 3 unread, got %d", conv.UnreadCount)
	}

	b.HandleEvent(context.Background(), frame(t, EventMarkAsRead, MarkAsReadPayload{
		ConversationID: convID,
		UserEmail:      "b@x.com",
	}))

	for _, m := range store.messages {
		if m.Receiver == "b@x.com" && !m.Read {
			t.Fatalf("every message addressed to the acker should be read")
		}
	}
	if conv.UnreadCount != 0 {
		t.Fatalf("unreadCount should reset to 0")
	}
	if connB.count(EventMessagesRead) != 1 {
		t.Fatalf("conversation room should see exactly one messages_read")
	}

	// Idempotence: a second ack is a clean no-op.
	b.HandleEvent(context.Background(), frame(t, EventMarkAsRead, MarkAsReadPayload{
		ConversationID: convID,
		UserEmail:      "b@x.com",
	}))
	if conv.UnreadCount != 0 {
		t.Fatalf("repeat ack must not produce negative counts")
	}
	if connB.count(EventError) != 0 {
		t.Fatalf("repeat ack must not error")
	}
}

func TestMarkAsReadIdentityMismatchRejected(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	store.addConversation(convID, "a@x.com", "b@x.com")

	c, conn := newTestClient(t, hub, store, "a@x.com")
	c.HandleEvent(context.Background(), frame(t, EventMarkAsRead, MarkAsReadPayload{
		ConversationID: convID,
		UserEmail:      "b@x.com",
	}))

	if conn.count(EventError) != 1 {
		t.Fatalf("identity mismatch should be refused")
	}
}

func TestTypingRelayExcludesSender(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	store.addConversation(convID, "a@x.com", "b@x.com")

	a, connA := newTestClient(t, hub, store, "a@x.com")
	b, connB := newTestClient(t, hub, store, "b@x.com")
	hub.Join(convID, a)
	hub.Join(convID, b)

	a.HandleEvent(context.Background(), frame(t, EventTyping, TypingPayload{
		ConversationID: convID,
		UserEmail:      "a@x.com",
	}))

	if connA.count(EventTyping) != 0 {
		t.Fatalf("typing must not echo to the typist")
	}
	if connB.count(EventTyping) != 1 {
		t.Fatalf("other members should see typing")
	}

	a.HandleEvent(context.Background(), frame(t, EventStopTyping, StopTypingPayload{ConversationID: convID}))
	if connB.count(EventStopTyping) != 1 {
		t.Fatalf("other members should see stop_typing")
	}
}

func TestTypingIdentityMismatchRejected(t *testing.T) {
	hub := NewHub()
	store := newFakeStore()
	store.addConversation(convID, "a@x.com", "b@x.com")

	a, connA := newTestClient(t, hub, store, "a@x.com")
	b, connB := newTestClient(t, hub, store, "b@x.com")
	hub.Join(convID, a)
	hub.Join(convID, b)

	a.HandleEvent(context.Background(), frame(t, EventTyping, TypingPayload{
		ConversationID: convID,
		UserEmail:      "b@x.com",
	}))

	if connA.count(EventError) != 1 {
		t.Fatalf("impersonated typing should be refused")
	}
	if connB.count(EventTyping) != 0 {
		t.Fatalf("impersonated typing must not relay")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	c, _ := newTestClient(t, hub, newFakeStore(), "a@x.com")

	c.Close()
	c.Close()

	if c.State() != StateDisconnected {
		t.Fatalf("client should be in its terminal state")
	}
}

func TestSummarize(t *testing.T) {
	if got := summarize("short"); got != "short" {
		t.Fatalf("short content should pass through, got %q", got)
	}

	exactly30 := "123456789012345678901234567890"
	if got := summarize(exactly30); got != exactly30 {
		t.Fatalf("30-char content should pass through, got %q", got)
	}

	if got := summarize(exactly30 + "x"); got != exactly30+"..." {
		t.Fatalf("31-char content should truncate, got %q", got)
	}
}
