package main

import (
	"context"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-publication-scheduling/internal/config"
)

func TestConnectRedis_UnreachableReturnsError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := connectRedis(ctx, &config.RedisConfig{Addr: "127.0.0.1:1"})
	if err == nil {
		t.Fatal("connectRedis() error = nil, want connection error")
	}
	if client != nil {
		t.Errorf("connectRedis() client = %v, want nil", client)
	}
}
