package model

import (
	"time"

	"github.com/moltfund/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertCampaign(
	campaign *entity.Campaign,
	creator *entity.Creator,
	donationCount, donorCount int64,
) Campaign {
	if campaign == nil {
		return Campaign{}
	}

	result := Campaign{
		ID:                   campaign.ID,
		CreatedAt:            campaign.CreatedAt.Format(DefaultTimeLayout),
		Title:                campaign.Title,
		Description:          campaign.Description,
		ImageURL:             campaign.ImageURL,
		Category:             string(campaign.Category),
		ContactEmail:         campaign.ContactEmail,
		GoalAmountUSDCents:   campaign.GoalAmountUSDCents,
		CurrentTotalUSDCents: campaign.CurrentTotalUSDCents,
		BTCAddress:           campaign.BTCAddress,
		ETHAddress:           campaign.ETHAddress,
		SOLAddress:           campaign.SOLAddress,
		USDCBaseAddress:      campaign.USDCBaseAddress,
		Status:               string(campaign.Status),
		MilestonesSent:       campaign.NotificationMilestonesSent,
		CreatorID:            campaign.CreatorID,
		DonationCount:        donationCount,
		DonorCount:           donorCount,
	}

	if result.MilestonesSent == nil {
		result.MilestonesSent = []int{}
	}

	if campaign.LastBalanceCheck.Valid {
		result.LastBalanceCheck = campaign.LastBalanceCheck.Time.Format(DefaultTimeLayout)
	}

	if creator != nil {
		result.CreatorName = creator.Name
		result.IsCreatorVerified = creator.KYCStatus == entity.KYCApproved
	}

	return result
}

func ConvertCreator(creator *entity.Creator) Creator {
	if creator == nil {
		return Creator{}
	}

	return Creator{
		ID:        creator.ID,
		Email:     creator.Email,
		Name:      creator.Name,
		KYCStatus: string(creator.KYCStatus),
	}
}

func ConvertAgent(agent *entity.Agent) Agent {
	if agent == nil {
		return Agent{}
	}

	return Agent{
		ID:          agent.ID,
		Name:        agent.Name,
		Description: agent.Description,
		Karma:       agent.Karma,
	}
}

func ConvertAdvocacy(advocacy *entity.Advocacy, agentName string) Advocacy {
	if advocacy == nil {
		return Advocacy{}
	}

	return Advocacy{
		CampaignID: advocacy.CampaignID,
		AgentID:    advocacy.AgentID,
		AgentName:  agentName,
		Statement:  advocacy.Statement,
		IsActive:   advocacy.IsActive,
		CreatedAt:  advocacy.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertWarRoomPost(post *entity.WarRoomPost, agentName string) WarRoomPost {
	if post == nil {
		return WarRoomPost{}
	}

	return WarRoomPost{
		ID:           post.ID,
		CampaignID:   post.CampaignID,
		AgentID:      post.AgentID,
		AgentName:    agentName,
		ParentPostID: post.ParentPostID.String,
		Content:      post.Content,
		UpvoteCount:  post.UpvoteCount,
		CreatedAt:    post.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertDonation(donation *entity.Donation) Donation {
	if donation == nil {
		return Donation{}
	}

	return Donation{
		ID:                 donation.ID,
		CampaignID:         donation.CampaignID,
		Chain:              string(donation.Chain),
		TxHash:             donation.TxHash,
		AmountSmallestUnit: donation.AmountSmallestUnit,
		AmountUSDCents:     donation.AmountUSDCents,
		FromAddress:        donation.FromAddress,
		BlockNumber:        donation.BlockNumber,
		ConfirmedAt:        donation.ConfirmedAt.Format(DefaultTimeLayout),
	}
}

// ConvertFeedEvent tolerates dangling references; the title and name of a
// since-deleted campaign or agent stay empty.
func ConvertFeedEvent(event *entity.FeedEvent, campaignTitle, agentName string) FeedEvent {
	if event == nil {
		return FeedEvent{}
	}

	metadata := map[string]any(event.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}

	return FeedEvent{
		ID:            event.ID,
		Type:          string(event.Type),
		CampaignID:    event.CampaignID.String,
		CampaignTitle: campaignTitle,
		AgentID:       event.AgentID.String,
		AgentName:     agentName,
		Metadata:      metadata,
		CreatedAt:     event.CreatedAt.Format(DefaultTimeLayout),
	}
}
