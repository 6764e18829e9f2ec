package unitofwork

import (
	"context"

	"campus-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	FaqRepository() contract.FaqRepository
	DocumentRepository() contract.DocumentRepository
}
