// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) RateQuote(ctx context.Context, req service.RateQuoteRequest) (*service.RateQuoteResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RateQuoteResult), args.Error(1)
}

func (m *MockQuoteService) Compute(ctx context.Context, req service.ComputeRequest) (*service.RateQuoteResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RateQuoteResult), args.Error(1)
}

func (m *MockQuoteService) Quotations(ctx context.Context, quoteID string) ([]model.Quotation, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quotation), args.Error(1)
}

type MockTransportRateService struct {
	mock.Mock
}

func (m *MockTransportRateService) Rates(ctx context.Context, req service.TransportRateRequest) (*service.TransportRates, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransportRates), args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) QueryEvents(ctx context.Context, opts model.AuditQueryOptions) ([]*model.AuditEvent, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AuditEvent), args.Error(1)
}

func (m *MockAuditService) CountEvents(ctx context.Context, opts model.AuditQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}
