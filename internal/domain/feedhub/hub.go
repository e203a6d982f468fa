package feedhub

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/pubsub"
	"github.com/moltfund/backend/pkg/xcontext"
)

// Hub is the single write path of the activity feed. Every component emits
// its events through Append; readers only ever see the append-only log.
type Hub interface {
	Append(
		ctx context.Context,
		eventType entity.FeedEventType,
		campaignID, agentID string,
		metadata entity.Map,
	) error
}

type hub struct {
	feedEventRepo repository.FeedEventRepository
	publisher     pubsub.Publisher
}

func NewHub(feedEventRepo repository.FeedEventRepository, publisher pubsub.Publisher) *hub {
	return &hub{feedEventRepo: feedEventRepo, publisher: publisher}
}

func (h *hub) Append(
	ctx context.Context,
	eventType entity.FeedEventType,
	campaignID, agentID string,
	metadata entity.Map,
) error {
	event := &entity.FeedEvent{
		Type:     eventType,
		Metadata: metadata,
	}

	if campaignID != "" {
		event.CampaignID = sql.NullString{Valid: true, String: campaignID}
	}

	if agentID != "" {
		event.AgentID = sql.NullString{Valid: true, String: agentID}
	}

	if err := h.feedEventRepo.Create(ctx, event); err != nil {
		return err
	}

	h.publish(ctx, event)
	return nil
}

// publish fans the event out to the feed topic. Broker failures only cost
// the fan-out, the database row is already the source of truth.
func (h *hub) publish(ctx context.Context, event *entity.FeedEvent) {
	if h.publisher == nil {
		return
	}

	b, err := json.Marshal(map[string]any{
		"id":          event.ID,
		"type":        event.Type,
		"campaign_id": event.CampaignID.String,
		"agent_id":    event.AgentID.String,
		"metadata":    event.Metadata,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal feed event %d: %v", event.ID, err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.FeedTopic
	pack := &pubsub.Pack{Key: []byte(event.CampaignID.String), Msg: b}
	if err := h.publisher.Publish(ctx, topic, pack); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish feed event %d: %v", event.ID, err)
	}
}
