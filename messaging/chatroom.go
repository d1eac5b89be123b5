package messaging

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/legal-connect-api/models"
)

// ResolveOrCreateChatroom returns the id of the chatroom shared by sender and
// receiver, creating it when the pair has never talked. Both orderings of the pair
// resolve to the same chatroom, concurrent callers included.
func (s *Service) ResolveOrCreateChatroom(ctx context.Context, senderID, receiverID string) (string, error) {
	room, _, err := s.resolveOrCreate(ctx, senderID, receiverID)
	if err != nil {
		return "", err
	}
	return room.ID.Hex(), nil
}

func (s *Service) resolveOrCreate(ctx context.Context, senderID, receiverID string) (*models.Chatroom, bool, error) {
	if senderID == "" || receiverID == "" {
		return nil, false, ErrMissingParticipant
	}
	key := PairKey(senderID, receiverID)

	room, err := s.CDB.FindByPairKey(ctx, key)
	if err == nil {
		return room, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, errors.Wrap(err, "failed to look up chatroom")
	}

	room, created, err := s.CDB.UpsertByPairKey(ctx, models.Chatroom{
		ID:           primitive.NewObjectID(),
		Participants: []string{senderID, receiverID},
		PairKey:      key,
		CreatedAt:    s.timestamp(),
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to create chatroom")
	}
	if created {
		s.publish(ctx, pairTopic(key))
	}
	return room, created, nil
}

// FindChatroom returns the chatroom shared by a and b, or nil when there is none
func (s *Service) FindChatroom(ctx context.Context, a, b string) (*models.Chatroom, error) {
	if a == "" || b == "" {
		return nil, ErrMissingParticipant
	}
	room, err := s.CDB.FindByPairKey(ctx, PairKey(a, b))
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up chatroom")
	}
	return room, nil
}

// Chatroom returns a chatroom by id
func (s *Service) Chatroom(ctx context.Context, chatroomID string) (*models.Chatroom, error) {
	oid, err := parseObjectID(chatroomID)
	if err != nil {
		return nil, err
	}
	room, err := s.CDB.FindByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrChatroomNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chatroom")
	}
	return room, nil
}

// ListChatrooms returns the chatrooms of userID, most recent activity first
func (s *Service) ListChatrooms(ctx context.Context, userID string) ([]models.Chatroom, error) {
	if userID == "" {
		return nil, ErrMissingParticipant
	}
	rooms, err := s.CDB.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list chatrooms")
	}
	if rooms == nil {
		rooms = []models.Chatroom{}
	}
	return rooms, nil
}
