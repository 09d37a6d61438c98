package config

import (
	"crypto/tls"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	redisAddrEnv      = "REDIS_ADDR"
	redisPasswordEnv  = "REDIS_PASSWORD"
	redisDBEnv        = "REDIS_DB"
	redisTLSEnv       = "REDIS_TLS"
	redisKeyPrefixEnv = "REDIS_KEY_PREFIX"

	defaultRedisAddr      = "localhost:6379"
	defaultRedisDB        = 0
	defaultRedisKeyPrefix = "schedule:"
)

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	TLS       bool
	KeyPrefix string
}

func LoadRedisConfig() (*RedisConfig, error) {
	addr := os.Getenv(redisAddrEnv)
	if addr == "" {
		addr = defaultRedisAddr
	}

	db := defaultRedisDB
	if raw := os.Getenv(redisDBEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, ErrInvalidRedisDB
		}
		db = parsed
	}

	prefix := os.Getenv(redisKeyPrefixEnv)
	if prefix == "" {
		prefix = defaultRedisKeyPrefix
	}

	return &RedisConfig{
		Addr:      addr,
		Password:  os.Getenv(redisPasswordEnv),
		DB:        db,
		TLS:       os.Getenv(redisTLSEnv) == "true",
		KeyPrefix: prefix,
	}, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}

func (c *RedisConfig) Options() *redis.Options {
	opts := &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}
	if c.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}
