package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/config"
	"github.com/taskhive/taskhive/pkg/clients"
)

// SendGridSender posts through the SendGrid v3 mail API. With no API key
// configured it is a no-op; delivery is optional everywhere it is used.
type SendGridSender struct {
	key    string
	from   string
	addr   string
	client clients.HTTPClientI
}

func NewSendGridSender(cfg *config.Config, client clients.HTTPClientI) *SendGridSender {
	if cfg.SendGridKey == "" {
		zap.L().Info("email delivery disabled: no SendGrid API key configured")
	}
	return &SendGridSender{
		key:    cfg.SendGridKey,
		from:   cfg.SendGridFrom,
		addr:   cfg.SendGridAddr,
		client: client,
	}
}

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridPayload struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress `json:"from"`
	Subject string          `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (s *SendGridSender) Send(ctx context.Context, to, subject, body string) error {
	if s.key == "" {
		return nil
	}
	if body == "" {
		body = subject
	}

	payload := sendGridPayload{
		From:    sendGridAddress{Email: s.from},
		Subject: subject,
	}
	payload.Personalizations = append(payload.Personalizations, struct {
		To []sendGridAddress `json:"to"`
	}{To: []sendGridAddress{{Email: to}}})
	payload.Content = append(payload.Content, struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{Type: "text/plain", Value: body})

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("can't marshal email payload: %w", err)
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+s.key)
	headers.Set("Content-Type", "application/json")

	status, respBody, _, err := s.client.Post(s.addr+"/v3/mail/send", headers, string(raw))
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	if status >= http.StatusMultipleChoices {
		return fmt.Errorf("email provider returned %d: %s", status, respBody)
	}
	return nil
}
