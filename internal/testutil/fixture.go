package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/crypto"
	"github.com/moltfund/backend/pkg/xcontext"
)

const Agent1APIKey = "agent1-api-key"

var (
	Creator1 = &entity.Creator{
		Base:      entity.Base{ID: "creator1"},
		Email:     "creator1@example.com",
		Name:      "Creator One",
		KYCStatus: entity.KYCApproved,
	}

	Creator2 = &entity.Creator{
		Base:      entity.Base{ID: "creator2"},
		Email:     "creator2@example.com",
		Name:      "Creator Two",
		KYCStatus: entity.KYCNone,
	}

	Campaign1 = &entity.Campaign{
		Base:                       entity.Base{ID: "campaign1"},
		CreatorID:                  Creator1.ID,
		Title:                      "Save the reef",
		Description:                "Restore coral on the northern reef",
		Category:                   entity.CampaignOther,
		ContactEmail:               Creator1.Email,
		GoalAmountUSDCents:         100_000,
		BTCAddress:                 "bc1-campaign1",
		ETHAddress:                 "0xcampaign1",
		Status:                     entity.CampaignActive,
		NotificationMilestonesSent: entity.Array[int]{},
	}

	Campaign2 = &entity.Campaign{
		Base:                       entity.Base{ID: "campaign2"},
		CreatorID:                  Creator1.ID,
		Title:                      "Community garden",
		Category:                   entity.CampaignCommunity,
		GoalAmountUSDCents:         50_000,
		BTCAddress:                 "bc1-campaign2",
		Status:                     entity.CampaignCancelled,
		NotificationMilestonesSent: entity.Array[int]{},
	}

	Agent1 = &entity.Agent{
		Base:       entity.Base{ID: "agent1"},
		Name:       "agent-one",
		APIKeyHash: crypto.SHA256Hex([]byte(Agent1APIKey)),
	}

	Agent2 = &entity.Agent{
		Base:       entity.Base{ID: "agent2"},
		Name:       "agent-two",
		APIKeyHash: crypto.SHA256Hex([]byte("agent2-api-key")),
	}
)

// CreateFixtureDb seeds the mock database with a deterministic baseline the
// tests share. Entities are copied so a test mutating one cannot leak into
// another test.
func CreateFixtureDb(ctx context.Context, t *testing.T) {
	creators := []*entity.Creator{Creator1, Creator2}
	for _, creator := range creators {
		record := *creator
		require.NoError(t, xcontext.DB(ctx).Create(&record).Error)
	}

	campaigns := []*entity.Campaign{Campaign1, Campaign2}
	for _, campaign := range campaigns {
		record := *campaign
		require.NoError(t, xcontext.DB(ctx).Create(&record).Error)
	}

	agents := []*entity.Agent{Agent1, Agent2}
	for _, agent := range agents {
		record := *agent
		require.NoError(t, xcontext.DB(ctx).Create(&record).Error)
	}
}
