package mocks

import (
	"context"

	"TodoAPI/storage"

	"github.com/stretchr/testify/mock"
)

// TokenIssuerMock mocks services.TokenIssuer.
type TokenIssuerMock struct{ mock.Mock }

func (m *TokenIssuerMock) Issue(userID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

// ObjectStoreMock mocks storage.ObjectStore.
type ObjectStoreMock struct{ mock.Mock }

func (m *ObjectStoreMock) Put(ctx context.Context, objectName string, data []byte, contentType string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, objectName, data, contentType)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

// PingerMock mocks handlers.Pinger.
type PingerMock struct{ mock.Mock }

func (m *PingerMock) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
