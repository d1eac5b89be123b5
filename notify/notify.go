// Package notify sends e-mail about conversation events through SendGrid.
package notify

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-connect-api/databases"
	"github.com/linesmerrill/legal-connect-api/models"
	templates "github.com/linesmerrill/legal-connect-api/templates/html"
)

const previewLength = 280

type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// Mailer e-mails the receiver of the message that opened a chatroom
type Mailer struct {
	UDB     databases.UserDatabase
	client  mailSender
	from    *mail.Email
	baseURL string
}

// NewMailer creates a Mailer sending as fromName <fromEmail>. Links in the mail point
// below baseURL.
func NewMailer(udb databases.UserDatabase, apiKey, fromEmail, fromName, baseURL string) *Mailer {
	return &Mailer{
		UDB:     udb,
		client:  sendgrid.NewSendClient(apiKey),
		from:    mail.NewEmail(fromName, fromEmail),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FirstContact sends the first-contact mail. Failures are logged, the message itself
// is already stored.
func (m *Mailer) FirstContact(ctx context.Context, chatroom models.Chatroom, message models.Message) {
	receiver, err := m.lookup(ctx, message.ReceiverID)
	if err != nil {
		zap.S().Errorw("failed to find first contact receiver",
			"chatroomId", chatroom.ID.Hex(),
			"receiverId", message.ReceiverID,
			"error", err)
		return
	}
	if receiver.Details.Email == "" {
		zap.S().Debugw("first contact receiver has no email", "receiverId", message.ReceiverID)
		return
	}

	senderName := "Someone"
	if sender, err := m.lookup(ctx, message.SenderID); err == nil && sender.Details.Name != "" {
		senderName = sender.Details.Name
	}

	preview := truncate(message.Content, previewLength)
	link := fmt.Sprintf("%s/chat/%s", m.baseURL, message.SenderID)
	subject := fmt.Sprintf("New message from %s", senderName)
	plainText := fmt.Sprintf("%s started a conversation with you:\n\n%s\n\nReply at %s", senderName, preview, link)
	htmlContent := templates.RenderFirstContactEmail(senderName, preview, link)

	to := mail.NewEmail(receiver.Details.Name, receiver.Details.Email)
	response, err := m.client.Send(mail.NewSingleEmail(m.from, subject, to, plainText, htmlContent))
	if err != nil {
		zap.S().Errorw("failed to send first contact email", "chatroomId", chatroom.ID.Hex(), "error", err)
		return
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
		return
	}
	zap.S().Infow("first contact email sent", "chatroomId", chatroom.ID.Hex(), "statusCode", response.StatusCode)
}

func (m *Mailer) lookup(ctx context.Context, userID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	return m.UDB.FindByID(ctx, oid)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}
