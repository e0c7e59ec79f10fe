package auth

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gigledger/gigledger/pkg/email"
)

// MockCredentialStore is a mock implementation of CredentialStore.
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

// MockChallengeStore is a mock implementation of ChallengeStore.
type MockChallengeStore struct {
	mock.Mock
}

func (m *MockChallengeStore) Upsert(ctx context.Context, email, code string, ttl time.Duration) error {
	args := m.Called(ctx, email, code, ttl)
	return args.Error(0)
}

func (m *MockChallengeStore) FindActive(ctx context.Context, email, code string) (*Challenge, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Challenge), args.Error(1)
}

func (m *MockChallengeStore) Remove(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockEmailSender is a mock implementation of email.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
