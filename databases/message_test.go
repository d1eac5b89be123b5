package databases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/legal-connect-api/databases"
	"github.com/linesmerrill/legal-connect-api/databases/mocks"
	"github.com/linesmerrill/legal-connect-api/models"
)

func TestMessageDatabase_FindByChatroomSortsByTimestamp(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.Message)
		*arg = []models.Message{{Content: "hello"}, {Content: "world"}}
	})
	cursor.On("Close", mock.Anything).Return(nil)
	collectionHelper.On("Find", mock.Anything, bson.M{"chatroomId": "room1"}, mock.MatchedBy(func(o *options.FindOptions) bool {
		sort, ok := o.Sort.(bson.D)
		return ok && len(sort) == 2 && sort[0].Key == "timestamp" && sort[0].Value == 1 && sort[1].Key == "_id"
	})).Return(cursor, nil)
	dbHelper.On("Collection", "messages").Return(collectionHelper)

	msgs, err := databases.NewMessageDatabase(dbHelper).FindByChatroom(context.Background(), "room1")

	assert.NoError(t, err)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, "world", msgs[1].Content)
}

func TestMessageDatabase_FindByChatroomCursorError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("All", mock.Anything, mock.Anything).Return(errors.New("mocked-error"))
	cursor.On("Close", mock.Anything).Return(nil)
	collectionHelper.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor, nil)
	dbHelper.On("Collection", "messages").Return(collectionHelper)

	msgs, err := databases.NewMessageDatabase(dbHelper).FindByChatroom(context.Background(), "room1")

	assert.Nil(t, msgs)
	assert.EqualError(t, err, "mocked-error")
}

func TestMessageDatabase_InsertOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	msg := models.Message{ID: primitive.NewObjectID(), ChatroomID: "room1", Content: "hello", Revision: 1}
	collectionHelper.On("InsertOne", mock.Anything, msg).Return(insertResult, nil)
	dbHelper.On("Collection", "messages").Return(collectionHelper)

	assert.NoError(t, databases.NewMessageDatabase(dbHelper).InsertOne(context.Background(), msg))
}

func TestMessageDatabase_UpdateContentWithRevision(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	id := primitive.NewObjectID()
	editedAt := primitive.NewDateTimeFromTime(time.Now())
	collectionHelper.On("UpdateOne", mock.Anything,
		bson.M{"_id": id, "chatroomId": "room1", "revision": int64(3)},
		bson.M{
			"$set": bson.M{"content": "X", "isEdited": true, "editedAt": editedAt},
			"$inc": bson.M{"revision": 1},
		}).Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	dbHelper.On("Collection", "messages").Return(collectionHelper)

	matched, err := databases.NewMessageDatabase(dbHelper).UpdateContent(context.Background(), "room1", id, "X", editedAt, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), matched)
}

func TestMessageDatabase_UpdateContentAnyRevision(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	id := primitive.NewObjectID()
	collectionHelper.On("UpdateOne", mock.Anything, bson.M{"_id": id, "chatroomId": "room1"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	dbHelper.On("Collection", "messages").Return(collectionHelper)

	matched, err := databases.NewMessageDatabase(dbHelper).UpdateContent(context.Background(), "room1", id, "X", primitive.NewDateTimeFromTime(time.Now()), 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), matched)
}

func TestMessageDatabase_DeleteOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	id := primitive.NewObjectID()
	collectionHelper.On("DeleteOne", mock.Anything, bson.M{"_id": id, "chatroomId": "room1"}).
		Return(&mongo.DeleteResult{DeletedCount: 1}, nil)
	collectionHelper.On("DeleteOne", mock.Anything, bson.M{"_id": id, "chatroomId": "room2"}).
		Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "messages").Return(collectionHelper)

	msgDB := databases.NewMessageDatabase(dbHelper)

	deleted, err := msgDB.DeleteOne(context.Background(), "room1", id)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = msgDB.DeleteOne(context.Background(), "room2", id)
	assert.EqualError(t, err, "mocked-error")
	assert.Zero(t, deleted)
}

func TestMessageDatabase_FindOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	id := primitive.NewObjectID()
	srHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Message)
		(*arg).ID = id
		(*arg).SenderID = "u1"
	})
	collectionHelper.On("FindOne", mock.Anything, bson.M{"_id": id, "chatroomId": "room1"}).Return(srHelper)
	dbHelper.On("Collection", "messages").Return(collectionHelper)

	msg, err := databases.NewMessageDatabase(dbHelper).FindOne(context.Background(), "room1", id)

	assert.NoError(t, err)
	assert.Equal(t, "u1", msg.SenderID)
}
