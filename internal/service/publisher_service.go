package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// KnowledgeChangedMessage is the in-process payload published after every
// knowledge-base mutation.
type KnowledgeChangedMessage struct {
	Change   string `json:"change"`
	EntityId string `json:"entity_id"`
}

type IPublisherService interface {
	PublishKnowledgeChanged(ctx context.Context, change, entityId string) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) PublishKnowledgeChanged(ctx context.Context, change, entityId string) error {
	payload, err := json.Marshal(KnowledgeChangedMessage{
		Change:   change,
		EntityId: entityId,
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(p.topicName, msg)
}
