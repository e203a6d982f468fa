package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/testutil"
)

func Test_donationRepository_Create_absorbsDuplicates(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	donationRepo := NewDonationRepository()

	donation := &entity.Donation{
		Base:               entity.Base{ID: uuid.NewString()},
		CampaignID:         testutil.Campaign1.ID,
		Chain:              entity.ChainBTC,
		TxHash:             "tx-1",
		AmountSmallestUnit: 100,
		AmountUSDCents:     500,
		FromAddress:        "donor-a",
		ConfirmedAt:        time.Now(),
	}

	inserted, err := donationRepo.Create(ctx, donation)
	require.NoError(t, err)
	require.True(t, inserted)

	// The same (campaign, tx) pair is silently absorbed.
	replay := *donation
	replay.ID = uuid.NewString()
	inserted, err = donationRepo.Create(ctx, &replay)
	require.NoError(t, err)
	require.False(t, inserted)

	count, err := donationRepo.Count(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// The same tx hash on another campaign is a distinct donation.
	other := *donation
	other.ID = uuid.NewString()
	other.CampaignID = testutil.Campaign2.ID
	inserted, err = donationRepo.Create(ctx, &other)
	require.NoError(t, err)
	require.True(t, inserted)
}

func Test_donationRepository_counts(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	donationRepo := NewDonationRepository()

	donations := []entity.Donation{
		{Base: entity.Base{ID: uuid.NewString()}, CampaignID: testutil.Campaign1.ID,
			Chain: entity.ChainBTC, TxHash: "tx-1", AmountUSDCents: 100, FromAddress: "donor-a"},
		{Base: entity.Base{ID: uuid.NewString()}, CampaignID: testutil.Campaign1.ID,
			Chain: entity.ChainBTC, TxHash: "tx-2", AmountUSDCents: 200, FromAddress: "donor-a"},
		{Base: entity.Base{ID: uuid.NewString()}, CampaignID: testutil.Campaign1.ID,
			Chain: entity.ChainETH, TxHash: "tx-3", AmountUSDCents: 300, FromAddress: "donor-b"},
	}

	for i := range donations {
		inserted, err := donationRepo.Create(ctx, &donations[i])
		require.NoError(t, err)
		require.True(t, inserted)
	}

	count, err := donationRepo.Count(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	donors, err := donationRepo.CountDistinctDonors(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, donors)

	sum, err := donationRepo.SumUSDCents(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 600, sum)

	// Donor count never exceeds donation count.
	require.LessOrEqual(t, donors, count)
}
