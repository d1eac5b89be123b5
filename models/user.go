package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the user collection in mongo
type User struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details UserDetails        `json:"user" bson:"user"`
	Version int32              `json:"__v" bson:"__v"`
}

// UserDetails holds the structure for the inner user structure as defined in the user collection in mongo
type UserDetails struct {
	Email          string             `json:"email" bson:"email"`
	Name           string             `json:"name" bson:"name"`
	Password       string             `json:"password" bson:"password"`
	Role           Role               `json:"role" bson:"role"`
	ProfilePicture string             `json:"profilePicture" bson:"profilePicture"`
	IsVerified     bool               `json:"isVerified" bson:"isVerified"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Participant is the read-only view of a user exposed to conversation partners
type Participant struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Role           Role   `json:"role"`
	ProfilePicture string `json:"profilePicture"`
}

// Participant strips everything a conversation partner must not see
func (u User) Participant() Participant {
	return Participant{
		ID:             u.ID.Hex(),
		Name:           u.Details.Name,
		Role:           u.Details.Role,
		ProfilePicture: u.Details.ProfilePicture,
	}
}
