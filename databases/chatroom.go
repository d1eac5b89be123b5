package databases

// go generate: mockery --name ChatroomDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/legal-connect-api/models"
)

const chatroomName = "chatrooms"

// ChatroomDatabase contains the methods to use with the chatroom database
type ChatroomDatabase interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Chatroom, error)
	FindByPairKey(ctx context.Context, pairKey string) (*models.Chatroom, error)
	FindByParticipant(ctx context.Context, userID string) ([]models.Chatroom, error)
	FindMissingPairKey(ctx context.Context, limit int64) ([]models.Chatroom, error)
	UpsertByPairKey(ctx context.Context, chatroom models.Chatroom) (*models.Chatroom, bool, error)
	UpdateLastMessage(ctx context.Context, id primitive.ObjectID, content, senderID string, at primitive.DateTime) error
	SetPairKey(ctx context.Context, id primitive.ObjectID, pairKey string) error
	EnsureIndexes(ctx context.Context) error
}

type chatroomDatabase struct {
	db DatabaseHelper
}

// NewChatroomDatabase initializes a new instance of chatroom database with the provided db connection
func NewChatroomDatabase(db DatabaseHelper) ChatroomDatabase {
	return &chatroomDatabase{
		db: db,
	}
}

func (c *chatroomDatabase) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Chatroom, error) {
	chatroom := &models.Chatroom{}
	err := c.db.Collection(chatroomName).FindOne(ctx, bson.M{"_id": id}).Decode(&chatroom)
	if err != nil {
		return nil, err
	}
	return chatroom, nil
}

func (c *chatroomDatabase) FindByPairKey(ctx context.Context, pairKey string) (*models.Chatroom, error) {
	chatroom := &models.Chatroom{}
	err := c.db.Collection(chatroomName).FindOne(ctx, bson.M{"pairKey": pairKey}).Decode(&chatroom)
	if err != nil {
		return nil, err
	}
	return chatroom, nil
}

func (c *chatroomDatabase) FindByParticipant(ctx context.Context, userID string) ([]models.Chatroom, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}, {Key: "_id", Value: -1}})
	return c.find(ctx, bson.M{"participants": userID}, opts)
}

func (c *chatroomDatabase) FindMissingPairKey(ctx context.Context, limit int64) ([]models.Chatroom, error) {
	opts := options.Find().SetLimit(limit).SetSort(bson.M{"_id": 1})
	return c.find(ctx, bson.M{"pairKey": bson.M{"$exists": false}}, opts)
}

func (c *chatroomDatabase) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Chatroom, error) {
	var chatrooms []models.Chatroom
	curr, err := c.db.Collection(chatroomName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &chatrooms)
	if err != nil {
		return nil, err
	}
	return chatrooms, nil
}

// UpsertByPairKey inserts chatroom unless one with the same pair key exists. It
// returns the stored chatroom and whether this call created it.
func (c *chatroomDatabase) UpsertByPairKey(ctx context.Context, chatroom models.Chatroom) (*models.Chatroom, bool, error) {
	filter := bson.M{"pairKey": chatroom.PairKey}
	update := bson.M{"$setOnInsert": chatroom}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	stored := &models.Chatroom{}
	err := c.db.Collection(chatroomName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if mongo.IsDuplicateKeyError(err) {
		// lost the insert race on the unique index, the winner is readable now
		stored, err = c.FindByPairKey(ctx, chatroom.PairKey)
	}
	if err != nil {
		return nil, false, err
	}
	return stored, stored.ID == chatroom.ID, nil
}

func (c *chatroomDatabase) UpdateLastMessage(ctx context.Context, id primitive.ObjectID, content, senderID string, at primitive.DateTime) error {
	_, err := c.db.Collection(chatroomName).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"lastMessage":   content,
		"lastMessageAt": at,
		"lastSenderId":  senderID,
	}})
	return err
}

func (c *chatroomDatabase) SetPairKey(ctx context.Context, id primitive.ObjectID, pairKey string) error {
	_, err := c.db.Collection(chatroomName).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"pairKey": pairKey}})
	return err
}

func (c *chatroomDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := c.db.Collection(chatroomName).CreateIndexes(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pairKey", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("pairKey_unique"),
		},
		{
			Keys:    bson.D{{Key: "participants", Value: 1}, {Key: "lastMessageAt", Value: -1}},
			Options: options.Index().SetName("participants_lastMessageAt"),
		},
	})
	return err
}
