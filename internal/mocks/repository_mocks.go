// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockQuoteRepositoryInterface struct {
	mock.Mock
}

func (m *MockQuoteRepositoryInterface) FindByID(ctx context.Context, quoteID string) (*model.Quote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

type MockQuotationRepositoryInterface struct {
	mock.Mock
}

func (m *MockQuotationRepositoryInterface) Replace(ctx context.Context, quoteID string, rows []*model.Quotation) error {
	args := m.Called(ctx, quoteID, rows)
	return args.Error(0)
}

func (m *MockQuotationRepositoryInterface) FindByQuoteID(ctx context.Context, quoteID string) ([]model.Quotation, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quotation), args.Error(1)
}

type MockAuditEventsRepositoryInterface struct {
	mock.Mock
}

func (m *MockAuditEventsRepositoryInterface) Create(ctx context.Context, event *model.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditEventsRepositoryInterface) Query(ctx context.Context, opts model.AuditQueryOptions) ([]*model.AuditEvent, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AuditEvent), args.Error(1)
}

func (m *MockAuditEventsRepositoryInterface) Count(ctx context.Context, opts model.AuditQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

type MockReferenceRepositoryInterface struct {
	mock.Mock
}

func (m *MockReferenceRepositoryInterface) Load(ctx context.Context) (*model.ReferenceTables, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReferenceTables), args.Error(1)
}

func (m *MockReferenceRepositoryInterface) Replace(ctx context.Context, tables *model.ReferenceTables) error {
	args := m.Called(ctx, tables)
	return args.Error(0)
}
