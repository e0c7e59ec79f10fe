package listings

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MockStorage is a mock implementation of Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Create(ctx context.Context, l *Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockStorage) CreateMany(ctx context.Context, ls []Listing) error {
	args := m.Called(ctx, ls)
	return args.Error(0)
}

func (m *MockStorage) GetByID(ctx context.Context, id string) (*Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Listing), args.Error(1)
}

func (m *MockStorage) List(ctx context.Context, params ListParams) ([]Listing, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) Update(ctx context.Context, id string, updates bson.M) (*Listing, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Listing), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
