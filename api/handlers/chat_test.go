package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/legal-connect-api/api"
	"github.com/linesmerrill/legal-connect-api/api/handlers"
	"github.com/linesmerrill/legal-connect-api/databases/mocks"
	"github.com/linesmerrill/legal-connect-api/messaging"
	"github.com/linesmerrill/legal-connect-api/models"
)

func withSession(req *http.Request, userID string, role models.Role) *http.Request {
	return req.WithContext(api.WithSession(req.Context(), models.Session{UserID: userID, Role: role}))
}

func newChat(t *testing.T) (handlers.Chat, *mocks.ChatroomDatabase, *mocks.MessageDatabase) {
	cdb := mocks.NewChatroomDatabase(t)
	mdb := mocks.NewMessageDatabase(t)
	return handlers.Chat{Service: messaging.NewService(cdb, mdb, nil)}, cdb, mdb
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestChat_SendMessageHandler(t *testing.T) {
	chat, cdb, mdb := newChat(t)
	room := &models.Chatroom{ID: primitive.NewObjectID(), Participants: []string{"u1", "u2"}, PairKey: "u1_u2"}

	cdb.On("FindByPairKey", mock.Anything, "u1_u2").Return(room, nil)
	mdb.On("InsertOne", mock.Anything, mock.MatchedBy(func(m models.Message) bool {
		return m.Content == "hello" && m.SenderID == "u2" && m.ReceiverID == "u1" &&
			m.SenderRole == models.RoleLawyer && m.ChatroomID == room.ID.Hex() && !m.IsEdited
	})).Return(nil)
	cdb.On("UpdateLastMessage", mock.Anything, room.ID, "hello", "u2", mock.Anything).Return(nil)

	req := httptest.NewRequest("POST", "/api/v1/messages", jsonBody(t, map[string]string{"receiverId": "u1", "content": "  hello "}))
	rr := httptest.NewRecorder()
	http.HandlerFunc(chat.SendMessageHandler).ServeHTTP(rr, withSession(req, "u2", models.RoleLawyer))

	assert.Equal(t, http.StatusCreated, rr.Code)
	var res messaging.SendResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, room.ID.Hex(), res.ChatroomID)
	assert.NotEmpty(t, res.MessageID)
}

func TestChat_SendMessageHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		userID string
		role   models.Role
		setup  func(cdb *mocks.ChatroomDatabase)
		want   int
	}{
		{"bad json", `{`, "u1", models.RoleClient, nil, http.StatusBadRequest},
		{"empty content", `{"receiverId": "u2", "content": "   "}`, "u1", models.RoleClient, nil, http.StatusBadRequest},
		{"missing receiver", `{"content": "hi"}`, "u1", models.RoleClient, nil, http.StatusBadRequest},
		{"self", `{"receiverId": "u1", "content": "hi"}`, "u1", models.RoleClient, nil, http.StatusBadRequest},
		{"no role", `{"receiverId": "u2", "content": "hi"}`, "u1", "", nil, http.StatusBadRequest},
		{"store down", `{"receiverId": "u2", "content": "hi"}`, "u1", models.RoleClient, func(cdb *mocks.ChatroomDatabase) {
			cdb.On("FindByPairKey", mock.Anything, "u1_u2").Return(nil, errors.New("mocked-error"))
		}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat, cdb, _ := newChat(t)
			if tt.setup != nil {
				tt.setup(cdb)
			}
			req := httptest.NewRequest("POST", "/api/v1/messages", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			http.HandlerFunc(chat.SendMessageHandler).ServeHTTP(rr, withSession(req, tt.userID, tt.role))
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
}

func TestChat_RequiresSession(t *testing.T) {
	chat, _, _ := newChat(t)
	for name, h := range map[string]http.HandlerFunc{
		"list":     chat.ChatroomsHandler,
		"with":     chat.ChatroomWithHandler,
		"messages": chat.MessagesHandler,
		"send":     chat.SendMessageHandler,
		"edit":     chat.EditMessageHandler,
		"delete":   chat.DeleteMessageHandler,
	} {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestChat_ChatroomsHandler(t *testing.T) {
	chat, cdb, _ := newChat(t)
	cdb.On("FindByParticipant", mock.Anything, "u1").Return(nil, nil)

	rr := httptest.NewRecorder()
	req := withSession(httptest.NewRequest("GET", "/api/v1/chatrooms", nil), "u1", models.RoleClient)
	http.HandlerFunc(chat.ChatroomsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestChat_ChatroomWithHandler(t *testing.T) {
	room := &models.Chatroom{ID: primitive.NewObjectID(), Participants: []string{"u1", "u2"}, PairKey: "u1_u2", LastMessage: "hello"}

	t.Run("found", func(t *testing.T) {
		chat, cdb, _ := newChat(t)
		cdb.On("FindByPairKey", mock.Anything, "u1_u2").Return(room, nil)

		req := httptest.NewRequest("GET", "/api/v1/chatrooms/with/u1", nil)
		req = mux.SetURLVars(withSession(req, "u2", models.RoleLawyer), map[string]string{"receiver_id": "u1"})
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.ChatroomWithHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got models.Chatroom
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, room.ID, got.ID)
		assert.Equal(t, "hello", got.LastMessage)
	})

	t.Run("none yet", func(t *testing.T) {
		chat, cdb, _ := newChat(t)
		cdb.On("FindByPairKey", mock.Anything, "u1_u2").Return(nil, mongo.ErrNoDocuments)

		req := httptest.NewRequest("GET", "/api/v1/chatrooms/with/u1", nil)
		req = mux.SetURLVars(withSession(req, "u2", models.RoleLawyer), map[string]string{"receiver_id": "u1"})
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.ChatroomWithHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestChat_MessagesHandler(t *testing.T) {
	room := &models.Chatroom{ID: primitive.NewObjectID(), Participants: []string{"u1", "u2"}}
	msgs := []models.Message{
		{ID: primitive.NewObjectID(), ChatroomID: room.ID.Hex(), SenderID: "u1", Content: "hello", Timestamp: 1},
		{ID: primitive.NewObjectID(), ChatroomID: room.ID.Hex(), SenderID: "u1", Content: "world", Timestamp: 2},
	}

	t.Run("participant", func(t *testing.T) {
		chat, cdb, mdb := newChat(t)
		cdb.On("FindByID", mock.Anything, room.ID).Return(room, nil)
		mdb.On("FindByChatroom", mock.Anything, room.ID.Hex()).Return(msgs, nil)

		req := httptest.NewRequest("GET", "/", nil)
		req = mux.SetURLVars(withSession(req, "u2", models.RoleLawyer), map[string]string{"chatroom_id": room.ID.Hex()})
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.MessagesHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got messaging.Update
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, room.ID.Hex(), got.ChatroomID)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "hello", got.Messages[0].Content)
		assert.Equal(t, "world", got.Messages[1].Content)
	})

	t.Run("outsider", func(t *testing.T) {
		chat, cdb, _ := newChat(t)
		cdb.On("FindByID", mock.Anything, room.ID).Return(room, nil)

		req := httptest.NewRequest("GET", "/", nil)
		req = mux.SetURLVars(withSession(req, "u3", models.RoleClient), map[string]string{"chatroom_id": room.ID.Hex()})
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.MessagesHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("unknown chatroom", func(t *testing.T) {
		chat, cdb, _ := newChat(t)
		cdb.On("FindByID", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

		req := httptest.NewRequest("GET", "/", nil)
		req = mux.SetURLVars(withSession(req, "u1", models.RoleClient), map[string]string{"chatroom_id": primitive.NewObjectID().Hex()})
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.MessagesHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		chat, _, _ := newChat(t)

		req := httptest.NewRequest("GET", "/", nil)
		req = mux.SetURLVars(withSession(req, "u1", models.RoleClient), map[string]string{"chatroom_id": "asdf"})
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.MessagesHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChat_EditMessageHandler(t *testing.T) {
	chatroomID := primitive.NewObjectID().Hex()
	msgID := primitive.NewObjectID()
	stored := &models.Message{ID: msgID, ChatroomID: chatroomID, SenderID: "u1", Content: "helo", Revision: 2}
	edited := &models.Message{ID: msgID, ChatroomID: chatroomID, SenderID: "u1", Content: "hello", IsEdited: true, Revision: 3}
	vars := map[string]string{"chatroom_id": chatroomID, "message_id": msgID.Hex()}

	t.Run("sender edits", func(t *testing.T) {
		chat, _, mdb := newChat(t)
		mdb.On("FindOne", mock.Anything, chatroomID, msgID).Return(stored, nil).Once()
		mdb.On("UpdateContent", mock.Anything, chatroomID, msgID, "hello", mock.Anything, int64(0)).Return(int64(1), nil)
		mdb.On("FindOne", mock.Anything, chatroomID, msgID).Return(edited, nil).Once()

		req := httptest.NewRequest("PUT", "/", jsonBody(t, map[string]string{"content": "hello"}))
		req = mux.SetURLVars(withSession(req, "u1", models.RoleClient), vars)
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.EditMessageHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var got models.Message
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.True(t, got.IsEdited)
		assert.Equal(t, "hello", got.Content)
	})

	t.Run("stale revision", func(t *testing.T) {
		chat, _, mdb := newChat(t)
		mdb.On("FindOne", mock.Anything, chatroomID, msgID).Return(stored, nil)
		mdb.On("UpdateContent", mock.Anything, chatroomID, msgID, "hello", mock.Anything, int64(1)).Return(int64(0), nil)

		req := httptest.NewRequest("PUT", "/", bytes.NewBufferString(`{"content": "hello", "revision": 1}`))
		req = mux.SetURLVars(withSession(req, "u1", models.RoleClient), vars)
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.EditMessageHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("not the sender", func(t *testing.T) {
		chat, _, mdb := newChat(t)
		mdb.On("FindOne", mock.Anything, chatroomID, msgID).Return(stored, nil)

		req := httptest.NewRequest("PUT", "/", jsonBody(t, map[string]string{"content": "hijack"}))
		req = mux.SetURLVars(withSession(req, "u2", models.RoleLawyer), vars)
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.EditMessageHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mdb.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty content", func(t *testing.T) {
		chat, _, mdb := newChat(t)
		mdb.On("FindOne", mock.Anything, chatroomID, msgID).Return(stored, nil)

		req := httptest.NewRequest("PUT", "/", jsonBody(t, map[string]string{"content": " "}))
		req = mux.SetURLVars(withSession(req, "u1", models.RoleClient), vars)
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.EditMessageHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChat_DeleteMessageHandler(t *testing.T) {
	chatroomID := primitive.NewObjectID().Hex()
	msgID := primitive.NewObjectID()
	vars := map[string]string{"chatroom_id": chatroomID, "message_id": msgID.Hex()}

	t.Run("sender deletes", func(t *testing.T) {
		chat, _, mdb := newChat(t)
		mdb.On("FindOne", mock.Anything, chatroomID, msgID).Return(&models.Message{ID: msgID, SenderID: "u1"}, nil)
		mdb.On("DeleteOne", mock.Anything, chatroomID, msgID).Return(int64(1), nil)

		req := mux.SetURLVars(withSession(httptest.NewRequest("DELETE", "/", nil), "u1", models.RoleClient), vars)
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.DeleteMessageHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("already gone", func(t *testing.T) {
		chat, _, mdb := newChat(t)
		mdb.On("FindOne", mock.Anything, chatroomID, msgID).Return(nil, mongo.ErrNoDocuments)

		req := mux.SetURLVars(withSession(httptest.NewRequest("DELETE", "/", nil), "u1", models.RoleClient), vars)
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.DeleteMessageHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("bad chatroom id", func(t *testing.T) {
		chat, _, _ := newChat(t)

		req := mux.SetURLVars(withSession(httptest.NewRequest("DELETE", "/", nil), "u1", models.RoleClient),
			map[string]string{"chatroom_id": "nope", "message_id": msgID.Hex()})
		rr := httptest.NewRecorder()
		http.HandlerFunc(chat.DeleteMessageHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
