package mocks

import (
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
)

// NewRedisMock returns a real *redis.Client plus its redismock controller.
// Tests set ExpectGet/Set/Del and check ExpectationsWereMet.
func NewRedisMock() (*redis.Client, redismock.ClientMock) {
	return redismock.NewClientMock()
}
