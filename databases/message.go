package databases

// go generate: mockery --name MessageDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/legal-connect-api/models"
)

const messageName = "messages"

// MessageDatabase contains the methods to use with the message database
type MessageDatabase interface {
	FindOne(ctx context.Context, chatroomID string, id primitive.ObjectID) (*models.Message, error)
	FindByChatroom(ctx context.Context, chatroomID string) ([]models.Message, error)
	InsertOne(ctx context.Context, message models.Message) error
	UpdateContent(ctx context.Context, chatroomID string, id primitive.ObjectID, content string, editedAt primitive.DateTime, revision int64) (int64, error)
	DeleteOne(ctx context.Context, chatroomID string, id primitive.ObjectID) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type messageDatabase struct {
	db DatabaseHelper
}

// NewMessageDatabase initializes a new instance of message database with the provided db connection
func NewMessageDatabase(db DatabaseHelper) MessageDatabase {
	return &messageDatabase{
		db: db,
	}
}

func (m *messageDatabase) FindOne(ctx context.Context, chatroomID string, id primitive.ObjectID) (*models.Message, error) {
	msg := &models.Message{}
	err := m.db.Collection(messageName).FindOne(ctx, bson.M{"_id": id, "chatroomId": chatroomID}).Decode(&msg)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// FindByChatroom returns every message of the chatroom, oldest first
func (m *messageDatabase) FindByChatroom(ctx context.Context, chatroomID string) ([]models.Message, error) {
	var messages []models.Message
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	curr, err := m.db.Collection(messageName).Find(ctx, bson.M{"chatroomId": chatroomID}, opts)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &messages)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (m *messageDatabase) InsertOne(ctx context.Context, message models.Message) error {
	_, err := m.db.Collection(messageName).InsertOne(ctx, message)
	return err
}

// UpdateContent rewrites the content of one message and bumps its revision. A
// revision of zero matches any stored revision. It returns the matched count.
func (m *messageDatabase) UpdateContent(ctx context.Context, chatroomID string, id primitive.ObjectID, content string, editedAt primitive.DateTime, revision int64) (int64, error) {
	filter := bson.M{"_id": id, "chatroomId": chatroomID}
	if revision > 0 {
		filter["revision"] = revision
	}
	res, err := m.db.Collection(messageName).UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{
			"content":  content,
			"isEdited": true,
			"editedAt": editedAt,
		},
		"$inc": bson.M{"revision": 1},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (m *messageDatabase) DeleteOne(ctx context.Context, chatroomID string, id primitive.ObjectID) (int64, error) {
	res, err := m.db.Collection(messageName).DeleteOne(ctx, bson.M{"_id": id, "chatroomId": chatroomID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *messageDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(messageName).CreateIndexes(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "chatroomId", Value: 1}, {Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("chatroomId_timestamp"),
		},
	})
	return err
}
