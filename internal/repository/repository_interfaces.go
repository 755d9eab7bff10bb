// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
)

// QuoteRepositoryInterface reads shipment requests by quote id.
type QuoteRepositoryInterface interface {
	FindByID(ctx context.Context, quoteID string) (*model.Quote, error)
}

// QuotationRepositoryInterface stores the confirmed quotation ledger.
type QuotationRepositoryInterface interface {
	Replace(ctx context.Context, quoteID string, rows []*model.Quotation) error
	FindByQuoteID(ctx context.Context, quoteID string) ([]model.Quotation, error)
}

// AuditEventsRepositoryInterface defines the interface for audit event storage.
type AuditEventsRepositoryInterface interface {
	Create(ctx context.Context, event *model.AuditEvent) error
	Query(ctx context.Context, opts model.AuditQueryOptions) ([]*model.AuditEvent, error)
	Count(ctx context.Context, opts model.AuditQueryOptions) (int64, error)
}

// ReferenceRepositoryInterface loads and replaces the reference tables.
type ReferenceRepositoryInterface interface {
	Load(ctx context.Context) (*model.ReferenceTables, error)
	Replace(ctx context.Context, tables *model.ReferenceTables) error
}
