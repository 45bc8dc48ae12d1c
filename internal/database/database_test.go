package database

import (
	"testing"
	"time"

	"github.com/drdeuce/health-agent/internal/config"
)

// ========== 连接池参数测试 ==========

func TestPoolSettings(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.DatabaseConfig
		wantOpen     int
		wantIdle     int
		wantLifetime time.Duration
	}{
		{
			name:         "configured values pass through",
			cfg:          config.DatabaseConfig{MaxOpenConns: 50, MaxIdleConns: 10, MaxLifetime: 600},
			wantOpen:     50,
			wantIdle:     10,
			wantLifetime: 600 * time.Second,
		},
		{
			name:         "zero values fall back to defaults",
			cfg:          config.DatabaseConfig{},
			wantOpen:     20,
			wantIdle:     5,
			wantLifetime: 300 * time.Second,
		},
		{
			name:         "negative values fall back to defaults",
			cfg:          config.DatabaseConfig{MaxOpenConns: -1, MaxIdleConns: -1, MaxLifetime: -1},
			wantOpen:     20,
			wantIdle:     5,
			wantLifetime: 300 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, idle, lifetime := poolSettings(tt.cfg)
			if open != tt.wantOpen {
				t.Errorf("open = %d, want %d", open, tt.wantOpen)
			}
			if idle != tt.wantIdle {
				t.Errorf("idle = %d, want %d", idle, tt.wantIdle)
			}
			if lifetime != tt.wantLifetime {
				t.Errorf("lifetime = %v, want %v", lifetime, tt.wantLifetime)
			}
		})
	}
}
