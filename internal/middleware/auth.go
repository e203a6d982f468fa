package middleware

import (
	"context"
	"strings"

	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/crypto"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/router"
	"github.com/moltfund/backend/pkg/xcontext"
)

// AuthenticateCreator resolves the bearer token into a creator id. Requests
// without a valid token are rejected before the handler runs.
func AuthenticateCreator() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := bearerToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		var accessToken model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

// AuthenticateAgent resolves the api key into an agent id. The key is looked
// up by hash; the plaintext never touches storage.
func AuthenticateAgent(agentRepo repository.AgentRepository) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		apiKey := xcontext.HTTPRequest(ctx).Header.Get("X-Api-Key")
		if apiKey == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		agent, err := agentRepo.GetByAPIKeyHash(ctx, crypto.SHA256Hex([]byte(apiKey)))
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot get agent by api key: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid api key")
		}

		return xcontext.WithRequestAgentID(ctx, agent.ID), nil
	}
}

func bearerToken(ctx context.Context) string {
	authorization := xcontext.HTTPRequest(ctx).Header.Get("Authorization")
	token, found := strings.CutPrefix(authorization, "Bearer ")
	if !found {
		return ""
	}

	return token
}
