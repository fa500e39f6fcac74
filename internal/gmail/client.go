package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"mailmate/internal/logger"
	"mailmate/internal/model"
	"mailmate/internal/service"
)

// Gmail grants generous per-user quota; the limiter keeps bulk message gets
// from tripping per-second limits.
const (
	rateLimitPerSecond = 10
	rateLimitBurst     = 5
)

type gmailClient struct {
	limiter *rate.Limiter
	logger  *logger.Logger
}

// NewClient builds a Gmail adapter. Credentials are not held by the client;
// every call receives the user's access token explicitly.
func NewClient(logger *logger.Logger) service.GmailClient {
	return &gmailClient{
		limiter: rate.NewLimiter(rateLimitPerSecond, rateLimitBurst),
		logger:  logger,
	}
}

type oauth2Transport struct {
	token string
}

func (t *oauth2Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

func (g *gmailClient) service(ctx context.Context, accessToken string) (*gmail.Service, error) {
	httpClient := &http.Client{
		Transport: &oauth2Transport{token: accessToken},
	}
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return svc, nil
}

func (g *gmailClient) FetchMessages(ctx context.Context, accessToken, userEmail string, maxResults int64) ([]*model.Email, error) {
	svc, err := g.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	list, err := svc.Users.Messages.List("me").LabelIds("INBOX").MaxResults(maxResults).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var emails []*model.Email
	for _, msg := range list.Messages {
		if err := g.limiter.Wait(ctx); err != nil {
			return emails, err
		}

		message, err := svc.Users.Messages.Get("me", msg.Id).Format("full").Do()
		if err != nil {
			g.logger.Error("Failed to get message:", err)
			continue
		}

		emails = append(emails, g.toEmail(message, userEmail))
	}

	g.logger.Info("Fetched", len(emails), "messages from Gmail for", userEmail)
	return emails, nil
}

func (g *gmailClient) ListConversations(ctx context.Context, accessToken, userEmail, query string, maxResults int64) ([]*model.ConversationMessage, error) {
	svc, err := g.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	// Both directions of the thread: mail from the contact and mail sent to
	// them.
	search := fmt.Sprintf("from:%s OR to:%s", query, query)
	list, err := svc.Users.Messages.List("me").Q(search).MaxResults(maxResults).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}

	var messages []*model.ConversationMessage
	for _, msg := range list.Messages {
		if err := g.limiter.Wait(ctx); err != nil {
			return messages, err
		}

		message, err := svc.Users.Messages.Get("me", msg.Id).Format("full").Do()
		if err != nil {
			g.logger.Error("Failed to get message:", err)
			continue
		}

		from := headerValue(message.Payload, "From")
		to := headerValue(message.Payload, "To")
		messages = append(messages, &model.ConversationMessage{
			MessageID:  message.Id,
			Sender:     from,
			Recipient:  to,
			Subject:    headerValue(message.Payload, "Subject"),
			Snippet:    message.Snippet,
			Body:       extractBody(message.Payload),
			Direction:  direction(from, userEmail),
			ReceivedAt: time.Unix(message.InternalDate/1000, 0),
		})
	}

	g.logger.Info("Found", len(messages), "conversation messages for query:", query)
	return messages, nil
}

func (g *gmailClient) toEmail(message *gmail.Message, userEmail string) *model.Email {
	from := headerValue(message.Payload, "From")
	subject := headerValue(message.Payload, "Subject")
	if subject == "" {
		subject = message.Snippet
	}
	receivedAt := time.Unix(message.InternalDate/1000, 0)

	return model.NewEmail("", message.Id, from, subject, extractBody(message.Payload), direction(from, userEmail), receivedAt)
}

func headerValue(payload *gmail.MessagePart, name string) string {
	if payload == nil {
		return ""
	}
	for _, header := range payload.Headers {
		if strings.EqualFold(header.Name, name) {
			return header.Value
		}
	}
	return ""
}

// direction tags a message as outgoing when its From header carries the
// account's own address.
func direction(from, userEmail string) string {
	if userEmail != "" && strings.Contains(strings.ToLower(from), strings.ToLower(userEmail)) {
		return model.DirectionOutgoing
	}
	return model.DirectionIncoming
}

// extractBody walks the MIME tree and returns the message text, preferring
// text/plain parts since the result feeds the summarizer.
func extractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if len(payload.Parts) == 0 {
		return decodePart(payload)
	}

	var htmlBody string
	for _, part := range payload.Parts {
		switch {
		case part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "":
			if text := decodePart(part); text != "" {
				return text
			}
		case part.MimeType == "text/html" && part.Body != nil && part.Body.Data != "":
			if htmlBody == "" {
				htmlBody = decodePart(part)
			}
		case len(part.Parts) > 0:
			if nested := extractBody(part); nested != "" {
				return nested
			}
		}
	}
	return htmlBody
}

func decodePart(part *gmail.MessagePart) string {
	if part.Body == nil || part.Body.Data == "" {
		return ""
	}
	decoded, err := base64.URLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(decoded))
}
