// FILE: internal/service/indexer_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"campus-assistant-be/internal/pkg/logger"
	"campus-assistant-be/internal/repository/memory"
	"campus-assistant-be/pkg/events"
	pktNats "campus-assistant-be/pkg/nats"
	"campus-assistant-be/pkg/vectorindex"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IIndexerService interface {
	Consume(ctx context.Context) error
}

// indexerService reacts to knowledge-base changes: it drops the resolution
// cache, marks the vector index stale and kicks an eager rebuild so the
// first query after an edit does not pay the rebuild latency. Local changes
// are mirrored to NATS, and changes mirrored by other instances come back
// through the same stream so every peer invalidates too.
type indexerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	indexManager *vectorindex.Manager
	cache        *memory.ResolutionCache
	natsPub      *pktNats.Publisher
	natsSub      *pktNats.Subscriber
	instanceID   string
	logger       logger.ILogger
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	indexManager *vectorindex.Manager,
	cache *memory.ResolutionCache,
	natsPub *pktNats.Publisher,
	natsSub *pktNats.Subscriber,
	sysLogger logger.ILogger,
) IIndexerService {
	return &indexerService{
		pubSub:       pubSub,
		topicName:    topicName,
		indexManager: indexManager,
		cache:        cache,
		natsPub:      natsPub,
		natsSub:      natsSub,
		instanceID:   uuid.New().String(),
		logger:       sysLogger,
	}
}

func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	if s.natsSub != nil {
		subject := fmt.Sprintf("events.%s", events.KnowledgeBaseChangedType)
		if err := s.natsSub.Subscribe(subject, s.durableName(), s.handleRemoteEvent); err != nil {
			s.logger.Warn("indexer", "NATS subscription failed, cross-instance invalidation disabled", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return nil
}

// durableName is stable across restarts so the consumer resumes where it
// left off instead of piling up abandoned durables on the stream.
func (s *indexerService) durableName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "indexer-" + s.instanceID
	}
	return "indexer-" + strings.ReplaceAll(host, ".", "-")
}

func (s *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload KnowledgeChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("indexer", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	s.logger.Info("indexer", "Knowledge base changed", map[string]interface{}{
		"change":    payload.Change,
		"entity_id": payload.EntityId,
	})

	if s.cache != nil {
		s.cache.Flush()
	}

	s.indexManager.Invalidate()
	if _, err := s.indexManager.Rebuild(ctx); err != nil {
		// The stale flag stays set; the next query retries the rebuild.
		s.logger.Error("indexer", "Eager index rebuild failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if s.natsPub != nil {
		event := events.NewKnowledgeBaseChanged(payload.Change, payload.EntityId, s.instanceID)
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.logger.Warn("indexer", "Failed to mirror event to NATS", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}

// handleRemoteEvent reacts to knowledge-base changes mirrored by other
// instances. This instance's own events come back through the stream too;
// the origin check keeps them from triggering a second rebuild.
func (s *indexerService) handleRemoteEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	if origin, _ := payload["origin"].(string); origin == s.instanceID {
		return nil
	}

	s.logger.Info("indexer", "Knowledge base changed on another instance", map[string]interface{}{
		"change":    payload["change"],
		"entity_id": payload["entity_id"],
	})

	if s.cache != nil {
		s.cache.Flush()
	}

	s.indexManager.Invalidate()
	if _, err := s.indexManager.Rebuild(ctx); err != nil {
		// Ack anyway: the stale flag stays set and the next query retries
		// the rebuild, so a redelivery would only repeat the same failure.
		s.logger.Error("indexer", "Eager index rebuild failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return nil
}
