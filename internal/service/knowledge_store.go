package service

import (
	"context"

	"campus-assistant-be/internal/repository/unitofwork"
	"campus-assistant-be/pkg/rag"
	"campus-assistant-be/pkg/vectorindex"
)

// KnowledgeStore adapts the persistence layer to the read views the
// retrieval pipeline consumes: rag.Store for structured/lexical lookups and
// vectorindex.Source for snapshot rebuilds. FAQ entries and document chunks
// share one ID space via an origin prefix.
type KnowledgeStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewKnowledgeStore(uowFactory unitofwork.RepositoryFactory) *KnowledgeStore {
	return &KnowledgeStore{
		uowFactory: uowFactory,
	}
}

func (s *KnowledgeStore) ActiveDocuments(ctx context.Context) ([]rag.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	faqs, err := uow.FaqRepository().FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	chunks, err := uow.DocumentRepository().FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]rag.Document, 0, len(faqs)+len(chunks))
	for _, f := range faqs {
		docs = append(docs, rag.Document{
			ID:        "faq:" + f.Id.String(),
			Text:      f.EmbeddingText(),
			Origin:    rag.OriginFAQ,
			Question:  f.Question,
			Answer:    f.Answer,
			Category:  f.Category,
			Embedding: f.EmbeddingValue,
		})
	}
	for _, c := range chunks {
		docs = append(docs, rag.Document{
			ID:        "doc:" + c.Id.String(),
			Text:      c.Content,
			Origin:    rag.Origin(c.Origin),
			Category:  c.Category,
			Embedding: c.EmbeddingValue,
		})
	}
	return docs, nil
}

// ActiveRecords feeds index rebuilds. Entries without a stored embedding are
// left out here and skipped again by the snapshot builder; they remain
// reachable through the lexical paths.
func (s *KnowledgeStore) ActiveRecords(ctx context.Context) ([]vectorindex.Record, error) {
	docs, err := s.ActiveDocuments(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]vectorindex.Record, 0, len(docs))
	for _, d := range docs {
		if len(d.Embedding) == 0 {
			continue
		}
		records = append(records, vectorindex.Record{
			ID:        d.ID,
			Embedding: d.Embedding,
		})
	}
	return records, nil
}
