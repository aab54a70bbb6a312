package store

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
)

var RDB *redis.Client

// InitRedis connects the redis client and verifies the connection.
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := RDB.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	return RDB, nil
}

// CloseRedis closes the redis client connection.
func CloseRedis() {
	if RDB != nil {
		if err := RDB.Close(); err != nil {
			log.Println("failed to close redis connection: ", err)
		}
	}
}
