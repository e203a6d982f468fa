package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/crypto"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/xcontext"
)

type AgentDomain interface {
	Register(ctx context.Context, req *model.RegisterAgentRequest) (*model.RegisterAgentResponse, error)
	Get(ctx context.Context, req *model.GetAgentRequest) (*model.GetAgentResponse, error)
}

type agentDomain struct {
	agentRepo repository.AgentRepository
}

func NewAgentDomain(agentRepo repository.AgentRepository) *agentDomain {
	return &agentDomain{agentRepo: agentRepo}
}

// Register creates the agent and returns its api key exactly once. The key
// is never recoverable afterwards, only its hash is stored.
func (d *agentDomain) Register(
	ctx context.Context, req *model.RegisterAgentRequest,
) (*model.RegisterAgentResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	if _, err := d.agentRepo.GetByName(ctx, req.Name); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "The name %s is already taken", req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get agent by name: %v", err)
		return nil, errorx.Unknown
	}

	apiKey, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate api key: %v", err)
		return nil, errorx.Unknown
	}

	agent := &entity.Agent{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
		APIKeyHash:  crypto.SHA256Hex([]byte(apiKey)),
	}

	if err := d.agentRepo.Create(ctx, agent); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create agent: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterAgentResponse{ID: agent.ID, APIKey: apiKey}, nil
}

func (d *agentDomain) Get(
	ctx context.Context, req *model.GetAgentRequest,
) (*model.GetAgentResponse, error) {
	agent, err := d.agentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found agent")
		}

		xcontext.Logger(ctx).Errorf("Cannot get agent %s: %v", req.ID, err)
		return nil, errorx.Unknown
	}

	resp := model.GetAgentResponse(model.ConvertAgent(agent))
	return &resp, nil
}
