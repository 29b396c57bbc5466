package mocks

import (
	"time"

	"TodoAPI/utils/redislog"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
)

// NewRedisLoggerWithMock constructs a real redislog.Logger over a mocked redis client,
// so tests can assert the LPUSH/LTRIM/EXPIRE sequence.
func NewRedisLoggerWithMock() (*redislog.Logger, *redis.Client, redismock.ClientMock) {
	rc, mock := redismock.NewClientMock()
	logger := redislog.New(rc, "logs:test", 100, 24*time.Hour)
	return logger, rc, mock
}
