package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Message holds the structure for the messages collection in mongo
type Message struct {
	ID         primitive.ObjectID  `json:"_id" bson:"_id"`
	ChatroomID string              `json:"chatroomId" bson:"chatroomId"`
	SenderID   string              `json:"senderId" bson:"senderId"`
	ReceiverID string              `json:"receiverId" bson:"receiverId"`
	SenderRole Role                `json:"senderRole" bson:"senderRole"`
	Content    string              `json:"content" bson:"content"`
	Timestamp  primitive.DateTime  `json:"timestamp" bson:"timestamp"`
	IsEdited   bool                `json:"isEdited" bson:"isEdited"`
	EditedAt   *primitive.DateTime `json:"editedAt,omitempty" bson:"editedAt,omitempty"`
	Revision   int64               `json:"revision" bson:"revision"`
}
