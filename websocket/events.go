package websocket

import (
	"encoding/json"
	"time"
)

// Inbound event names.
const (
	EventJoinConversation = "join_conversation"
	EventSendMessage      = "send_message"
	EventTyping           = "typing"
	EventStopTyping       = "stop_typing"
	EventMarkAsRead       = "mark_as_read"
)

// Outbound event names.
const (
	EventReceiveMessage     = "receive_message"
	EventMessagesRead       = "messages_read"
	EventUserStatus         = "user_status"
	EventJoinedConversation = "joined_conversation"
	EventError              = "error"
)

// Event is the wire envelope for inbound frames. Data is decoded per event.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutEvent is the wire envelope for outbound frames.
type OutEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type JoinConversationPayload struct {
	ConversationID string `json:"conversationId"`
}

type SendMessagePayload struct {
	ConversationID string    `json:"conversationId"`
	Sender         string    `json:"sender"`
	Receiver       string    `json:"receiver"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

type TypingPayload struct {
	ConversationID string `json:"conversationId"`
	UserEmail      string `json:"userEmail"`
}

type StopTypingPayload struct {
	ConversationID string `json:"conversationId"`
}

type MarkAsReadPayload struct {
	ConversationID string `json:"conversationId"`
	UserEmail      string `json:"userEmail"`
}

type MessagesReadPayload struct {
	ConversationID string `json:"conversationId"`
}

type UserStatusPayload struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

type ErrorPayload struct {
	Message string `json:"message"`
}
