package service

import (
	"context"
	"testing"
	"time"

	"campus-assistant-be/internal/repository/memory"
	"campus-assistant-be/pkg/events"
	"campus-assistant-be/pkg/rag"
	"campus-assistant-be/pkg/vectorindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordSource struct {
	records []vectorindex.Record
}

func (s *fakeRecordSource) ActiveRecords(ctx context.Context) ([]vectorindex.Record, error) {
	return s.records, nil
}

func newRemoteIndexer(t *testing.T, source vectorindex.Source) (*indexerService, *memory.ResolutionCache, *vectorindex.Manager) {
	t.Helper()

	cache := memory.NewResolutionCache(time.Minute)
	manager := vectorindex.NewManager(source, vectorindex.MetricCosine, nil)
	svc := NewIndexerService(nil, "KNOWLEDGE_BASE_CHANGED", manager, cache, nil, nil, nopLogger{}).(*indexerService)
	return svc, cache, manager
}

func TestRemoteKnowledgeEventFlushesCacheAndRebuilds(t *testing.T) {
	source := &fakeRecordSource{records: []vectorindex.Record{
		{ID: "faq:1", Embedding: []float32{1, 0}},
	}}
	svc, cache, manager := newRemoteIndexer(t, source)

	_, err := manager.Rebuild(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, manager.Snapshot().Len())

	cache.Set("cual es el horario de atencion", &rag.Result{AnswerText: "De 08h00 a 17h00."})

	// Another instance created an FAQ entry; its mirrored event must drop
	// our cache and rebuild our snapshot with the new record.
	source.records = append(source.records, vectorindex.Record{ID: "faq:2", Embedding: []float32{0, 1}})

	err = svc.handleRemoteEvent(context.Background(),
		events.NewKnowledgeBaseChanged(events.ChangeFAQCreated, "2", "other-instance"))
	require.NoError(t, err)

	_, found := cache.Get("cual es el horario de atencion")
	assert.False(t, found)
	assert.Equal(t, 2, manager.Snapshot().Len())
}

func TestRemoteKnowledgeEventSkipsOwnOrigin(t *testing.T) {
	source := &fakeRecordSource{records: []vectorindex.Record{
		{ID: "faq:1", Embedding: []float32{1, 0}},
	}}
	svc, cache, manager := newRemoteIndexer(t, source)

	_, err := manager.Rebuild(context.Background())
	require.NoError(t, err)

	cache.Set("cual es el horario de atencion", &rag.Result{AnswerText: "De 08h00 a 17h00."})
	source.records = append(source.records, vectorindex.Record{ID: "faq:2", Embedding: []float32{0, 1}})

	err = svc.handleRemoteEvent(context.Background(),
		events.NewKnowledgeBaseChanged(events.ChangeFAQUpdated, "1", svc.instanceID))
	require.NoError(t, err)

	// Our own mirrored event already triggered the local rebuild; the echo
	// from the stream must not repeat it.
	_, found := cache.Get("cual es el horario de atencion")
	assert.True(t, found)
	assert.Equal(t, 1, manager.Snapshot().Len())
}
