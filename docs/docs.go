// Package docs Legal Connect API.
//
// Documentation of the Legal Connect messaging API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//     - bearer
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/legal-connect-api/messaging"
	"github.com/linesmerrill/legal-connect-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/auth/token auth createToken
// Exchanges basic credentials for a session.
// responses:
//   200: sessionResponse

// The session of the logged in user, token included.
// swagger:response sessionResponse
type sessionResponseWrapper struct {
	// in:body
	Body models.Session
}

// swagger:route GET /api/v1/chatrooms chat chatrooms
// Lists the chatrooms of the caller, most recent activity first.
// responses:
//   200: chatroomsResponse

// swagger:response chatroomsResponse
type chatroomsResponseWrapper struct {
	// in:body
	Body []models.Chatroom
}

// swagger:route GET /api/v1/chatrooms/{chatroom_id}/messages chat messages
// Gets the ordered conversation of a chatroom the caller belongs to.
// responses:
//   200: conversationResponse

// A complete conversation snapshot. Websocket frames carry the same shape.
// swagger:response conversationResponse
type conversationResponseWrapper struct {
	// in:body
	Body messaging.Update
}

// swagger:route POST /api/v1/messages chat sendMessage
// Sends a message, creating the chatroom on first contact.
// responses:
//   201: sendMessageResponse

// swagger:response sendMessageResponse
type sendMessageResponseWrapper struct {
	// in:body
	Body messaging.SendResult
}

// swagger:route GET /api/v1/user/{user_id} user participant
// Gets the public profile of a conversation partner.
// responses:
//   200: participantResponse

// swagger:response participantResponse
type participantResponseWrapper struct {
	// in:body
	Body models.Participant
}
