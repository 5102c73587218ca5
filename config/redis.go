package config

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// redisOptions accepts a host:port address or a redis:// / rediss:// URL.
// Short timeouts keep cache, revocation and rate-limit calls from stalling requests.
func redisOptions(val string) (*redis.Options, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil, errors.New("REDIS_ADDR (or REDIS_URI/REDIS_URL) environment variable is not set")
	}

	var opt *redis.Options
	if strings.HasPrefix(val, "redis://") || strings.HasPrefix(val, "rediss://") {
		parsed, err := redis.ParseURL(val)
		if err != nil {
			return nil, err
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: val}
	}

	opt.DialTimeout = 3 * time.Second
	opt.ReadTimeout = time.Second
	opt.WriteTimeout = time.Second
	return opt, nil
}

func InitRedis(val string) error {
	opt, err := redisOptions(val)
	if err != nil {
		return err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}

	RedisClient = client
	return nil
}

func CloseRedis() error {
	if RedisClient == nil {
		return nil
	}
	err := RedisClient.Close()
	RedisClient = nil
	return err
}
