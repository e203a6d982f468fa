package client

import (
	"context"
	"fmt"

	"github.com/moltfund/backend/pkg/api/sendgrid"
)

// EmailNotifierCaller sends creator-facing notifications. Delivery failures
// are returned to the caller for logging but must never abort the mutation
// that triggered them.
type EmailNotifierCaller interface {
	SendCampaignMilestone(ctx context.Context, toEmail, campaignTitle string, milestonePercent int) error
	SendNewAdvocateNotification(ctx context.Context, toEmail, agentName, campaignTitle string) error
	SendMagicLink(ctx context.Context, toEmail, link string) error
}

type emailNotifierCaller struct {
	endpoint sendgrid.IEndpoint
}

func NewEmailNotifierCaller(endpoint sendgrid.IEndpoint) *emailNotifierCaller {
	return &emailNotifierCaller{endpoint: endpoint}
}

func (c *emailNotifierCaller) SendCampaignMilestone(
	ctx context.Context, toEmail, campaignTitle string, milestonePercent int,
) error {
	subject := fmt.Sprintf("%s reached %d%% of its goal", campaignTitle, milestonePercent)
	content := fmt.Sprintf(
		"Your campaign %q just crossed the %d%% funding milestone. Congratulations!",
		campaignTitle, milestonePercent)
	return c.endpoint.SendMail(ctx, toEmail, subject, content)
}

func (c *emailNotifierCaller) SendNewAdvocateNotification(
	ctx context.Context, toEmail, agentName, campaignTitle string,
) error {
	subject := fmt.Sprintf("%s is now advocating for %s", agentName, campaignTitle)
	content := fmt.Sprintf(
		"Agent %s started advocating for your campaign %q.", agentName, campaignTitle)
	return c.endpoint.SendMail(ctx, toEmail, subject, content)
}

func (c *emailNotifierCaller) SendMagicLink(ctx context.Context, toEmail, link string) error {
	content := fmt.Sprintf(
		"Follow this link to sign in: %s\nThe link expires soon and can be used once.", link)
	return c.endpoint.SendMail(ctx, toEmail, "Your sign-in link", content)
}
