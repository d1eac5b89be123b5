package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Chatroom holds the structure for the chatrooms collection in mongo. A chatroom is
// shared by exactly two participants and is never deleted.
type Chatroom struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Participants []string           `json:"participants" bson:"participants"`
	// PairKey is the sorted participant pair, unique across the collection.
	// Chatrooms created before keyed lookup existed have it empty until backfilled.
	PairKey       string             `json:"pairKey" bson:"pairKey,omitempty"`
	LastMessage   string             `json:"lastMessage" bson:"lastMessage"`
	LastMessageAt primitive.DateTime `json:"lastMessageAt" bson:"lastMessageAt"`
	LastSenderID  string             `json:"lastSenderId" bson:"lastSenderId"`
	CreatedAt     primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// HasParticipant reports whether userID is one of the two participants
func (c Chatroom) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Counterpart returns the participant that is not userID
func (c Chatroom) Counterpart(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return userID
}
