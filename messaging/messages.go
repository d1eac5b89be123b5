package messaging

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-connect-api/models"
)

// SendResult identifies the stored message and the chatroom it landed in, so the
// caller can move to a stable conversation URL
type SendResult struct {
	ChatroomID string `json:"chatroomId"`
	MessageID  string `json:"messageId"`
}

// SendMessage stores a message from sender to receiver, creating their chatroom on
// first contact, and refreshes the chatroom's last message. The chatroom is kept
// even when the message write fails.
func (s *Service) SendMessage(ctx context.Context, senderID, receiverID, content string, senderRole models.Role) (SendResult, error) {
	if senderID == "" || receiverID == "" {
		return SendResult{}, ErrMissingParticipant
	}
	if senderRole == "" {
		return SendResult{}, ErrMissingRole
	}
	if !senderRole.Valid() {
		return SendResult{}, ErrInvalidRole
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return SendResult{}, ErrEmptyContent
	}

	room, created, err := s.resolveOrCreate(ctx, senderID, receiverID)
	if err != nil {
		return SendResult{}, err
	}
	chatroomID := room.ID.Hex()

	msg := models.Message{
		ID:         primitive.NewObjectID(),
		ChatroomID: chatroomID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		SenderRole: senderRole,
		Content:    content,
		Timestamp:  s.timestamp(),
		IsEdited:   false,
		Revision:   1,
	}
	if err := s.MDB.InsertOne(ctx, msg); err != nil {
		return SendResult{ChatroomID: chatroomID}, errors.Wrap(err, "failed to store message")
	}
	s.publish(ctx, roomTopic(chatroomID))

	if err := s.CDB.UpdateLastMessage(ctx, room.ID, content, senderID, msg.Timestamp); err != nil {
		return SendResult{ChatroomID: chatroomID}, errors.Wrap(err, "failed to update chatroom last message")
	}

	if created && s.Notifier != nil {
		go s.Notifier.FirstContact(context.WithoutCancel(ctx), *room, msg)
	}

	zap.S().Debugw("message sent", "chatroomId", chatroomID, "messageId", msg.ID.Hex(), "firstContact", created)
	return SendResult{ChatroomID: chatroomID, MessageID: msg.ID.Hex()}, nil
}

// EditMessage replaces the content of a message and marks it edited. The last
// writer wins.
func (s *Service) EditMessage(ctx context.Context, chatroomID, messageID, newContent string) error {
	return s.edit(ctx, chatroomID, messageID, newContent, 0)
}

// EditMessageAtRevision is EditMessage that only applies while the stored message is
// still at revision. A newer revision yields ErrRevisionConflict.
func (s *Service) EditMessageAtRevision(ctx context.Context, chatroomID, messageID, newContent string, revision int64) error {
	if revision <= 0 {
		return ErrInvalidRevision
	}
	return s.edit(ctx, chatroomID, messageID, newContent, revision)
}

func (s *Service) edit(ctx context.Context, chatroomID, messageID, newContent string, revision int64) error {
	if _, err := parseObjectID(chatroomID); err != nil {
		return err
	}
	oid, err := parseObjectID(messageID)
	if err != nil {
		return err
	}
	newContent = strings.TrimSpace(newContent)
	if newContent == "" {
		return ErrEmptyContent
	}

	matched, err := s.MDB.UpdateContent(ctx, chatroomID, oid, newContent, s.timestamp(), revision)
	if err != nil {
		return errors.Wrap(err, "failed to edit message")
	}
	if matched == 0 {
		if revision == 0 {
			return ErrMessageNotFound
		}
		if _, err := s.Message(ctx, chatroomID, messageID); err != nil {
			return err
		}
		return ErrRevisionConflict
	}

	s.publish(ctx, roomTopic(chatroomID))
	return nil
}

// DeleteMessage permanently removes a message
func (s *Service) DeleteMessage(ctx context.Context, chatroomID, messageID string) error {
	if _, err := parseObjectID(chatroomID); err != nil {
		return err
	}
	oid, err := parseObjectID(messageID)
	if err != nil {
		return err
	}

	deleted, err := s.MDB.DeleteOne(ctx, chatroomID, oid)
	if err != nil {
		return errors.Wrap(err, "failed to delete message")
	}
	if deleted == 0 {
		return ErrMessageNotFound
	}

	s.publish(ctx, roomTopic(chatroomID))
	return nil
}

// Message returns one message of a chatroom
func (s *Service) Message(ctx context.Context, chatroomID, messageID string) (*models.Message, error) {
	oid, err := parseObjectID(messageID)
	if err != nil {
		return nil, err
	}
	msg, err := s.MDB.FindOne(ctx, chatroomID, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get message")
	}
	return msg, nil
}

// Messages returns the current messages of a chatroom, oldest first
func (s *Service) Messages(ctx context.Context, chatroomID string) ([]models.Message, error) {
	if chatroomID == "" {
		return nil, ErrChatroomNotFound
	}
	msgs, err := s.MDB.FindByChatroom(ctx, chatroomID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messages")
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}
