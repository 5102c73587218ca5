package config

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		in       string
		wantAddr string
		wantDB   int
		wantErr  bool
	}{
		{in: "localhost:6379", wantAddr: "localhost:6379"},
		{in: "redis://:pw@cache:6380/2", wantAddr: "cache:6380", wantDB: 2},
		{in: "rediss://cache:6379", wantAddr: "cache:6379"},
		{in: "   ", wantErr: true},
		{in: "redis://cache:6379/notadb", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			opt, err := redisOptions(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("redisOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if opt.Addr != tt.wantAddr || opt.DB != tt.wantDB {
				t.Errorf("addr=%q db=%d", opt.Addr, opt.DB)
			}
			if opt.ReadTimeout <= 0 || opt.DialTimeout <= 0 {
				t.Error("timeouts must be set")
			}
		})
	}
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	if err := InitRedis(mr.Addr()); err != nil {
		t.Fatalf("InitRedis() error = %v", err)
	}
	if RedisClient == nil {
		t.Fatal("client not set")
	}
	if err := CloseRedis(); err != nil {
		t.Errorf("CloseRedis() error = %v", err)
	}
	if RedisClient != nil {
		t.Error("client should be cleared")
	}
}
