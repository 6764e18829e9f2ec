package events

import "time"

// Kinds of knowledge-base mutations that invalidate the vector index.
const (
	KnowledgeBaseChangedType = "KNOWLEDGE_BASE_CHANGED"

	ChangeFAQCreated   = "faq_created"
	ChangeFAQUpdated   = "faq_updated"
	ChangeFAQDisabled  = "faq_disabled"
	ChangeDocsImported = "documents_imported"
)

// NewKnowledgeBaseChanged builds the event published after any mutation of
// FAQ entries or document chunks. Consumers treat every change kind the same
// way: mark the index stale and rebuild on the next query. The origin is the
// publishing instance's id; an instance's own events come back through the
// stream and the origin lets it skip them.
func NewKnowledgeBaseChanged(change, entityID, origin string) BaseEvent {
	return BaseEvent{
		Type: KnowledgeBaseChangedType,
		Data: map[string]interface{}{
			"change":    change,
			"entity_id": entityID,
			"origin":    origin,
		},
		OccurredAt: time.Now(),
	}
}
