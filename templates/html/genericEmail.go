package templates

import (
	"fmt"
	"html"
	"strings"
)

// RenderGenericEmail generates branded HTML for a generic email.
// The subject is displayed in the header banner, and bodyContent is plain text
// that gets HTML-escaped and has newlines converted to <br> tags.
func RenderGenericEmail(subject, bodyContent string) string {
	return renderEmail(subject, textToHTML(bodyContent), "")
}

// RenderFirstContactEmail tells a user that someone opened a conversation with them.
// preview is the first message, conversationURL where to answer it.
func RenderFirstContactEmail(senderName, preview, conversationURL string) string {
	subject := fmt.Sprintf("New message from %s", senderName)
	content := fmt.Sprintf(`<p><strong>%s</strong> started a conversation with you on Legal Connect:</p>
      <blockquote class="quote">%s</blockquote>`,
		html.EscapeString(senderName), textToHTML(preview))
	return renderEmail(subject, content, conversationURL)
}

// textToHTML escapes plain text and converts newlines to <br>
func textToHTML(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

func renderEmail(subject, htmlBody, actionURL string) string {
	safeSubject := html.EscapeString(subject)

	action := ""
	if actionURL != "" {
		action = fmt.Sprintf(`<p class="action"><a class="button" href="%s">Open conversation</a></p>`, html.EscapeString(actionURL))
	}

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%s</title>
  <style type="text/css">
    body { font-family: Georgia, 'Times New Roman', serif; margin: 0; padding: 0; background-color: #f4f1ea; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background-color: #1f3a5f; padding: 32px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 22px; font-weight: 700; }
    .content { padding: 32px 30px; color: #1f2933; line-height: 1.6; font-size: 15px; }
    .quote { margin: 16px 0; padding: 12px 16px; border-left: 4px solid #c9a227; background-color: #faf8f3; }
    .action { text-align: center; margin-top: 24px; }
    .button { background-color: #1f3a5f; color: #fff; padding: 12px 24px; border-radius: 4px; text-decoration: none; }
    .footer { padding: 24px 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
      %s
    </div>
    <div class="footer">
      <p>&copy; Legal Connect. You are receiving this because you have an account with us.</p>
    </div>
  </div>
</body>
</html>`, safeSubject, safeSubject, htmlBody, action)
}
