package databases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/legal-connect-api/databases"
	"github.com/linesmerrill/legal-connect-api/databases/mocks"
	"github.com/linesmerrill/legal-connect-api/models"
)

func TestUserDatabase_FindByEmail(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(mongo.ErrNoDocuments)

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).Details.Email = "jane@firm.example"
		(*arg).Details.Role = models.RoleLawyer
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"user.email": "nobody@firm.example"}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"user.email": "jane@firm.example"}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "users").Return(collectionHelper)

	userDba := databases.NewUserDatabase(dbHelper)

	user, err := userDba.FindByEmail(context.Background(), "nobody@firm.example")
	assert.Empty(t, user)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	user, err = userDba.FindByEmail(context.Background(), "jane@firm.example")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleLawyer, user.Details.Role)
}

func TestUserDatabase_FindByID(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	id := primitive.NewObjectID()
	srHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).ID = id
		(*arg).Details.Name = "Jane Counsel"
	})
	collectionHelper.On("FindOne", mock.Anything, bson.M{"_id": id}).Return(srHelper)
	dbHelper.On("Collection", "users").Return(collectionHelper)

	user, err := databases.NewUserDatabase(dbHelper).FindByID(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, "Jane Counsel", user.Details.Name)
}
