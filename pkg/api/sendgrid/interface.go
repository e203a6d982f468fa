package sendgrid

import "context"

type IEndpoint interface {
	SendMail(ctx context.Context, toEmail, subject, content string) error
}
