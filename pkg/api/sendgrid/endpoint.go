package sendgrid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/moltfund/backend/pkg/api"
)

type Endpoint struct {
	apiKey       string
	fromEmail    string
	fromName     string
	apiGenerator api.Generator
}

func New(apiKey, fromEmail, fromName string) *Endpoint {
	return &Endpoint{
		apiKey:       apiKey,
		fromEmail:    fromEmail,
		fromName:     fromName,
		apiGenerator: api.NewGenerator("https://api.sendgrid.com/v3"),
	}
}

func (e *Endpoint) SendMail(ctx context.Context, toEmail, subject, content string) error {
	body := api.JSON{
		"personalizations": []api.JSON{
			{"to": []api.JSON{{"email": toEmail}}},
		},
		"from":    api.JSON{"email": e.fromEmail, "name": e.fromName},
		"subject": subject,
		"content": []api.JSON{
			{"type": "text/plain", "value": content},
		},
	}

	resp, err := e.apiGenerator.New("/mail/send").
		Header("Authorization", "Bearer "+e.apiKey).
		Body(body).
		POST(ctx)
	if err != nil {
		return err
	}

	if resp.Code != http.StatusAccepted {
		return fmt.Errorf("sendgrid responded with status %d", resp.Code)
	}

	return nil
}
