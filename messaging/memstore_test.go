package messaging

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/legal-connect-api/models"
)

// memChatrooms is an in-memory ChatroomDatabase with the unique pair key semantics
// of the mongo collection
type memChatrooms struct {
	mu      sync.Mutex
	rooms   []models.Chatroom
	findErr error
}

func (m *memChatrooms) FindByID(_ context.Context, id primitive.ObjectID) (*models.Chatroom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memChatrooms) FindByPairKey(_ context.Context, pairKey string) (*models.Chatroom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, r := range m.rooms {
		if r.PairKey == pairKey {
			r := r
			return &r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memChatrooms) FindByParticipant(_ context.Context, userID string) ([]models.Chatroom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Chatroom
	for _, r := range m.rooms {
		if r.HasParticipant(userID) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastMessageAt > out[j].LastMessageAt })
	return out, nil
}

func (m *memChatrooms) FindMissingPairKey(_ context.Context, limit int64) ([]models.Chatroom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Chatroom
	for _, r := range m.rooms {
		if r.PairKey == "" && int64(len(out)) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memChatrooms) UpsertByPairKey(_ context.Context, chatroom models.Chatroom) (*models.Chatroom, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.PairKey == chatroom.PairKey {
			r := r
			return &r, false, nil
		}
	}
	m.rooms = append(m.rooms, chatroom)
	return &chatroom, true, nil
}

func (m *memChatrooms) UpdateLastMessage(_ context.Context, id primitive.ObjectID, content, senderID string, at primitive.DateTime) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rooms {
		if m.rooms[i].ID == id {
			m.rooms[i].LastMessage = content
			m.rooms[i].LastSenderID = senderID
			m.rooms[i].LastMessageAt = at
		}
	}
	return nil
}

func (m *memChatrooms) SetPairKey(_ context.Context, id primitive.ObjectID, pairKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rooms {
		if m.rooms[i].ID == id {
			m.rooms[i].PairKey = pairKey
		}
	}
	return nil
}

func (m *memChatrooms) EnsureIndexes(context.Context) error { return nil }

func (m *memChatrooms) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

func (m *memChatrooms) setFindErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findErr = err
}

// memMessages is an in-memory MessageDatabase ordered like the mongo query
type memMessages struct {
	mu      sync.Mutex
	msgs    []models.Message
	findErr error
}

func (m *memMessages) FindOne(_ context.Context, chatroomID string, id primitive.ObjectID) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.msgs {
		if msg.ID == id && msg.ChatroomID == chatroomID {
			msg := msg
			return &msg, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memMessages) FindByChatroom(_ context.Context, chatroomID string) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.Message
	for _, msg := range m.msgs {
		if msg.ChatroomID == chatroomID {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}

func (m *memMessages) InsertOne(_ context.Context, message models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, message)
	return nil
}

func (m *memMessages) UpdateContent(_ context.Context, chatroomID string, id primitive.ObjectID, content string, editedAt primitive.DateTime, revision int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.msgs {
		msg := &m.msgs[i]
		if msg.ID != id || msg.ChatroomID != chatroomID {
			continue
		}
		if revision > 0 && msg.Revision != revision {
			return 0, nil
		}
		msg.Content = content
		msg.IsEdited = true
		at := editedAt
		msg.EditedAt = &at
		msg.Revision++
		return 1, nil
	}
	return 0, nil
}

func (m *memMessages) DeleteOne(_ context.Context, chatroomID string, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, msg := range m.msgs {
		if msg.ID == id && msg.ChatroomID == chatroomID {
			m.msgs = append(m.msgs[:i], m.msgs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memMessages) EnsureIndexes(context.Context) error { return nil }

func (m *memMessages) setFindErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findErr = err
}

// stepClock returns a time that moves forward one millisecond per call
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Millisecond)
		return t
	}
}

func newTestService() (*Service, *memChatrooms, *memMessages, *MemoryFeed) {
	rooms := &memChatrooms{}
	msgs := &memMessages{}
	feed := NewMemoryFeed()
	svc := NewService(rooms, msgs, feed)
	svc.now = stepClock()
	return svc, rooms, msgs, feed
}
