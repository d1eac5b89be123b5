// Package messaging holds the conversation logic between two marketplace users:
// resolving the shared chatroom of a pair, live ordered message snapshots and the
// send, edit and delete operations.
package messaging

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-connect-api/databases"
	"github.com/linesmerrill/legal-connect-api/models"
)

// FirstContactNotifier is told when a message opened a new chatroom
type FirstContactNotifier interface {
	FirstContact(ctx context.Context, chatroom models.Chatroom, message models.Message)
}

// Service exposes the messaging operations over the chatroom and message stores
type Service struct {
	CDB  databases.ChatroomDatabase
	MDB  databases.MessageDatabase
	Feed Feed
	// Notifier is optional
	Notifier FirstContactNotifier

	now func() time.Time
}

// NewService creates a messaging service. A nil feed falls back to an in-process one.
func NewService(chatrooms databases.ChatroomDatabase, messages databases.MessageDatabase, feed Feed) *Service {
	if feed == nil {
		feed = NewMemoryFeed()
	}
	return &Service{
		CDB:  chatrooms,
		MDB:  messages,
		Feed: feed,
		now:  time.Now,
	}
}

// EnsureIndexes creates the indexes the keyed lookups and ordered reads depend on
func (s *Service) EnsureIndexes(ctx context.Context) error {
	if err := s.CDB.EnsureIndexes(ctx); err != nil {
		return err
	}
	return s.MDB.EnsureIndexes(ctx)
}

func (s *Service) timestamp() primitive.DateTime {
	return primitive.NewDateTimeFromTime(s.now())
}

// publish signals live subscriptions. The write it follows already succeeded, so a
// failure only delays delivery until the next change.
func (s *Service) publish(ctx context.Context, topic string) {
	if err := s.Feed.Publish(ctx, topic); err != nil {
		zap.S().Warnw("failed to publish change", "topic", topic, "error", err)
	}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
