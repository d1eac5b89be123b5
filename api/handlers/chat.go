package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/legal-connect-api/api"
	"github.com/linesmerrill/legal-connect-api/config"
	"github.com/linesmerrill/legal-connect-api/messaging"
	"github.com/linesmerrill/legal-connect-api/models"
)

var (
	errNotParticipant = errors.New("caller is not a participant of this chatroom")
	errNotSender      = errors.New("only the sender may change a message")
	errSelfChat       = errors.New("cannot start a conversation with yourself")
	errNoSession      = errors.New("no session")
	errNotAdmin       = errors.New("admin role required")
)

// Chat exposes the messaging service over http
type Chat struct {
	Service *messaging.Service
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

type editMessageRequest struct {
	Content  string `json:"content"`
	Revision *int64 `json:"revision,omitempty"`
}

// ChatroomsHandler returns the chatrooms of the caller, most recent first
func (c Chat) ChatroomsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	rooms, err := c.Service.ListChatrooms(ctx, session.UserID)
	if err != nil {
		writeChatError(w, "failed to get chatrooms", err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

// ChatroomWithHandler returns the chatroom the caller shares with receiver_id
// without creating it
func (c Chat) ChatroomWithHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}
	receiverID := mux.Vars(r)["receiver_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	room, err := c.Service.FindChatroom(ctx, session.UserID, receiverID)
	if err != nil {
		writeChatError(w, "failed to get chatroom", err)
		return
	}
	if room == nil {
		writeChatError(w, "failed to get chatroom", messaging.ErrChatroomNotFound)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// MessagesHandler returns the ordered messages of a chatroom the caller is in
func (c Chat) MessagesHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}
	chatroomID := mux.Vars(r)["chatroom_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	room, err := c.Service.Chatroom(ctx, chatroomID)
	if err != nil {
		writeChatError(w, "failed to get chatroom", err)
		return
	}
	if !room.HasParticipant(session.UserID) {
		writeChatError(w, "failed to get messages", errNotParticipant)
		return
	}

	msgs, err := c.Service.Messages(ctx, chatroomID)
	if err != nil {
		writeChatError(w, "failed to get messages", err)
		return
	}
	writeJSON(w, http.StatusOK, messaging.Update{Messages: msgs, ChatroomID: chatroomID})
}

// SendMessageHandler sends a message from the caller, creating the chatroom on
// first contact
func (c Chat) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if req.ReceiverID != "" && req.ReceiverID == session.UserID {
		config.ErrorStatus("failed to send message", http.StatusBadRequest, w, errSelfChat)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := c.Service.SendMessage(ctx, session.UserID, req.ReceiverID, req.Content, session.Role)
	if err != nil {
		writeChatError(w, "failed to send message", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// EditMessageHandler replaces the content of one of the caller's messages. With a
// revision the edit only applies if nobody changed the message since.
func (c Chat) EditMessageHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	chatroomID, messageID := vars["chatroom_id"], vars["message_id"]

	var req editMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.authorizeSender(ctx, session, chatroomID, messageID); err != nil {
		writeChatError(w, "failed to edit message", err)
		return
	}

	var err error
	if req.Revision != nil {
		err = c.Service.EditMessageAtRevision(ctx, chatroomID, messageID, req.Content, *req.Revision)
	} else {
		err = c.Service.EditMessage(ctx, chatroomID, messageID, req.Content)
	}
	if err != nil {
		writeChatError(w, "failed to edit message", err)
		return
	}

	msg, err := c.Service.Message(ctx, chatroomID, messageID)
	if err != nil {
		writeChatError(w, "failed to get message", err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// DeleteMessageHandler permanently removes one of the caller's messages
func (c Chat) DeleteMessageHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	chatroomID, messageID := vars["chatroom_id"], vars["message_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.authorizeSender(ctx, session, chatroomID, messageID); err != nil {
		writeChatError(w, "failed to delete message", err)
		return
	}
	if err := c.Service.DeleteMessage(ctx, chatroomID, messageID); err != nil {
		writeChatError(w, "failed to delete message", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c Chat) authorizeSender(ctx context.Context, session models.Session, chatroomID, messageID string) error {
	if _, err := primitive.ObjectIDFromHex(chatroomID); err != nil {
		return messaging.ErrInvalidID
	}
	msg, err := c.Service.Message(ctx, chatroomID, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != session.UserID {
		return errNotSender
	}
	return nil
}

func requireSession(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	session, ok := api.SessionFromContext(r.Context())
	if !ok || session.UserID == "" {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errNoSession)
		return models.Session{}, false
	}
	return session, true
}

// writeChatError maps messaging failures to status codes
func writeChatError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	switch cause := errors.Cause(err); {
	case cause == messaging.ErrChatroomNotFound, cause == messaging.ErrMessageNotFound:
		status = http.StatusNotFound
	case cause == messaging.ErrRevisionConflict:
		status = http.StatusConflict
	case cause == errNotParticipant, cause == errNotSender:
		status = http.StatusForbidden
	case messaging.IsValidation(err):
		status = http.StatusBadRequest
	}
	config.ErrorStatus(message, status, w, err)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
