package handler_test

import (
	"context"
	"time"

	"vdcode/internal/domain"
	"vdcode/internal/service"
	"vdcode/internal/shortcode"

	"github.com/stretchr/testify/mock"
)

// MockCodeService implements handler.CodeService for testing
type MockCodeService struct {
	mock.Mock
}

func (m *MockCodeService) Issue(ctx context.Context, p service.IssueParams) (*domain.CodeRecord, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CodeRecord), args.Error(1)
}

func (m *MockCodeService) Validate(raw string) (shortcode.Code, error) {
	args := m.Called(raw)
	return args.Get(0).(shortcode.Code), args.Error(1)
}

func (m *MockCodeService) Lookup(ctx context.Context, raw string) (*domain.CodeRecord, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CodeRecord), args.Error(1)
}

func (m *MockCodeService) Stats(ctx context.Context, raw string) (*domain.CodeRecord, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CodeRecord), args.Error(1)
}

func sampleRecord() *domain.CodeRecord {
	return &domain.CodeRecord{
		Code:      shortcode.MustParse("AB29XY"),
		Label:     "locker 12",
		CreatedAt: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		ExpiresAt: time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC),
	}
}
