package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/athlixir/athlixir_backend/models"
	"github.com/google/uuid"
)

// ConnState is the explicit lifecycle state of a connection. Events other
// than the handshake are refused until the connection is authenticated.
type ConnState int

const (
	StateConnecting ConnState = iota
	StateAuthenticated
	StateDisconnected
)

// Conn is the minimal transport surface a client needs: the ability to push
// one JSON frame to the peer.
type Conn interface {
	WriteJSON(v interface{}) error
}

// How far ahead of the server clock a client-supplied timestamp may run
// before it is replaced with the server's receipt time.
const maxTimestampSkew = 2 * time.Minute

const summaryLimit = 30

// Client is one realtime connection. Its read loop feeds HandleEvent one
// frame at a time, so per-connection processing is serialized; cross
// connection races on shared conversation state are closed by the store's
// atomic summary operations.
type Client struct {
	hub   *Hub
	store ChatStore
	conn  Conn

	identity Identity

	mu       sync.Mutex
	state    ConnState
	typingIn string

	// writeMu serializes frames to the peer; broadcasts arrive from other
	// connections' handler goroutines.
	writeMu sync.Mutex
}

func NewClient(hub *Hub, store ChatStore, conn Conn) *Client {
	return &Client{hub: hub, store: store, conn: conn, state: StateConnecting}
}

// Authenticate attaches the verified identity, registers the client with the
// hub and auto-joins the personal inbox room named after the identity email.
func (c *Client) Authenticate(id Identity) {
	c.mu.Lock()
	c.identity = id
	c.state = StateAuthenticated
	c.mu.Unlock()

	c.hub.Register(c)
	c.hub.Join(id.Email, c)
}

// Close transitions the client to its terminal state and detaches it from
// the hub. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	if c.state == StateDisconnected {
		c.mu.Unlock()
		return
	}
	c.state = StateDisconnected
	c.typingIn = ""
	c.mu.Unlock()

	c.hub.Unregister(c)
}

func (c *Client) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) Identity() Identity {
	return c.identity
}

// HandleEvent decodes one inbound frame and applies it. Every failure is
// local to the requested action: the connection stays open and only the
// actor hears about the error.
func (c *Client) HandleEvent(ctx context.Context, raw []byte) {
	var evt Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		c.sendError("Invalid event payload")
		return
	}

	if c.State() != StateAuthenticated {
		c.sendError("Not authenticated")
		return
	}

	switch evt.Event {
	case EventJoinConversation:
		var p JoinConversationPayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			c.sendError("Invalid join_conversation payload")
			return
		}
		c.handleJoinConversation(ctx, p)
	case EventSendMessage:
		var p SendMessagePayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			c.sendError("Invalid send_message payload")
			return
		}
		c.handleSendMessage(ctx, p)
	case EventTyping:
		var p TypingPayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			c.sendError("Invalid typing payload")
			return
		}
		c.handleTyping(p)
	case EventStopTyping:
		var p StopTypingPayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			c.sendError("Invalid stop_typing payload")
			return
		}
		c.handleStopTyping(p)
	case EventMarkAsRead:
		var p MarkAsReadPayload
		if err := json.Unmarshal(evt.Data, &p); err != nil {
			c.sendError("Invalid mark_as_read payload")
			return
		}
		c.handleMarkAsRead(ctx, p)
	default:
		c.sendError(fmt.Sprintf("Unknown event: %s", evt.Event))
	}
}

// handleJoinConversation subscribes the client to a conversation room after
// verifying it is actually a participant. An outsider gets an error instead
// of a silent subscription.
func (c *Client) handleJoinConversation(ctx context.Context, p JoinConversationPayload) {
	ok, err := c.store.IsParticipant(ctx, p.ConversationID, c.identity.Email)
	if err == ErrConversationNotFound {
		c.sendError("Conversation not found")
		return
	}
	if err != nil {
		log.Printf("join_conversation store error for %s: %v", c.identity.Email, err)
		c.sendError("Failed to join conversation")
		return
	}
	if !ok {
		c.sendError("Unauthorized: not a participant in this conversation")
		return
	}

	c.hub.Join(p.ConversationID, c)
	_ = c.send(OutEvent{
		Event: EventJoinedConversation,
		Data:  JoinConversationPayload{ConversationID: p.ConversationID},
	})
}

func (c *Client) handleSendMessage(ctx context.Context, p SendMessagePayload) {
	if p.Sender != c.identity.Email {
		c.sendError("Unauthorized: sender does not match authenticated user")
		return
	}
	if p.Content == "" {
		c.sendError("Message content is required")
		return
	}

	conv, err := c.store.Conversation(ctx, p.ConversationID)
	if err == ErrConversationNotFound {
		// The whole send aborts: no orphaned message rows without a
		// matching conversation summary.
		c.sendError("Conversation not found")
		return
	}
	if err != nil {
		log.Printf("send_message lookup error for %s: %v", c.identity.Email, err)
		c.sendError("Failed to send message")
		return
	}
	if !hasParticipant(conv, p.Sender) || !hasParticipant(conv, p.Receiver) {
		c.sendError("Unauthorized: sender and receiver must both be participants")
		return
	}

	ts := p.Timestamp
	now := time.Now()
	if ts.IsZero() || ts.After(now.Add(maxTimestampSkew)) {
		ts = now
	}

	msg := &models.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Sender:         p.Sender,
		Receiver:       p.Receiver,
		Content:        p.Content,
		Timestamp:      ts,
		Read:           false,
	}
	if err := c.store.CreateMessage(ctx, msg); err != nil {
		log.Printf("send_message persist error for %s: %v", c.identity.Email, err)
		c.sendError("Failed to send message")
		return
	}

	// Self-messages never count as unread; any other message adds exactly
	// one unread for the receiver until they mark the conversation read.
	increment := p.Sender != p.Receiver
	if err := c.store.UpdateConversationSummary(ctx, p.ConversationID, summarize(p.Content), ts, increment); err != nil {
		log.Printf("send_message summary error for %s: %v", c.identity.Email, err)
		c.sendError("Failed to update conversation")
		return
	}

	out := OutEvent{Event: EventReceiveMessage, Data: msg}
	c.hub.Broadcast(p.Receiver, out)
	c.hub.Broadcast(p.Sender, out)
	c.hub.Broadcast(p.ConversationID, out)
}

func (c *Client) handleTyping(p TypingPayload) {
	if p.UserEmail != c.identity.Email {
		c.sendError("Unauthorized: userEmail does not match authenticated user")
		return
	}

	c.mu.Lock()
	c.typingIn = p.ConversationID
	c.mu.Unlock()

	c.hub.BroadcastExcept(p.ConversationID, c, OutEvent{
		Event: EventTyping,
		Data:  map[string]string{"userEmail": p.UserEmail},
	})
}

func (c *Client) handleStopTyping(p StopTypingPayload) {
	c.mu.Lock()
	c.typingIn = ""
	c.mu.Unlock()

	c.hub.BroadcastExcept(p.ConversationID, c, OutEvent{
		Event: EventStopTyping,
		Data:  map[string]string{},
	})
}

func (c *Client) handleMarkAsRead(ctx context.Context, p MarkAsReadPayload) {
	if p.UserEmail != c.identity.Email {
		c.sendError("Unauthorized: userEmail does not match authenticated user")
		return
	}

	ok, err := c.store.IsParticipant(ctx, p.ConversationID, c.identity.Email)
	if err == ErrConversationNotFound {
		c.sendError("Conversation not found")
		return
	}
	if err != nil {
		log.Printf("mark_as_read lookup error for %s: %v", c.identity.Email, err)
		c.sendError("Failed to mark conversation as read")
		return
	}
	if !ok {
		c.sendError("Unauthorized: not a participant in this conversation")
		return
	}

	if err := c.store.MarkConversationRead(ctx, p.ConversationID, c.identity.Email); err != nil {
		log.Printf("mark_as_read store error for %s: %v", c.identity.Email, err)
		c.sendError("Failed to mark conversation as read")
		return
	}

	c.hub.Broadcast(p.ConversationID, OutEvent{
		Event: EventMessagesRead,
		Data:  MessagesReadPayload{ConversationID: p.ConversationID},
	})
}

func (c *Client) send(e OutEvent) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(e)
}

func (c *Client) sendError(msg string) {
	if err := c.send(OutEvent{Event: EventError, Data: ErrorPayload{Message: msg}}); err != nil {
		log.Printf("Error sending error event to %s: %v", c.identity.Email, err)
	}
}

func hasParticipant(conv *models.Conversation, email string) bool {
	for _, p := range conv.Participants {
		if p.Email == email {
			return true
		}
	}
	return false
}

// summarize produces the denormalized lastMessage preview: the first 30
// characters of the content plus an ellipsis marker when truncated.
func summarize(content string) string {
	runes := []rune(content)
	if len(runes) <= summaryLimit {
		return content
	}
	return string(runes[:summaryLimit]) + "..."
}
