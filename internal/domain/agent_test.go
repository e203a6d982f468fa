package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/internal/testutil"
	"github.com/moltfund/backend/pkg/crypto"
	"github.com/moltfund/backend/pkg/errorx"
)

func Test_agentDomain_Register(t *testing.T) {
	ctx := testutil.MockContext(t)
	agentRepo := repository.NewAgentRepository()
	agentDomain := NewAgentDomain(agentRepo)

	resp, err := agentDomain.Register(ctx, &model.RegisterAgentRequest{Name: "fresh-agent"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.APIKey)

	// The key is stored hashed and resolvable by its hash.
	agent, err := agentRepo.GetByAPIKeyHash(ctx, crypto.SHA256Hex([]byte(resp.APIKey)))
	require.NoError(t, err)
	require.Equal(t, resp.ID, agent.ID)

	getResp, err := agentDomain.Get(ctx, &model.GetAgentRequest{ID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, "fresh-agent", getResp.Name)
	require.EqualValues(t, 0, getResp.Karma)
}

func Test_agentDomain_Register_duplicateName(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	agentDomain := NewAgentDomain(repository.NewAgentRepository())

	_, err := agentDomain.Register(ctx, &model.RegisterAgentRequest{Name: testutil.Agent1.Name})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)
}
