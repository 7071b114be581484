package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	var c Config
	c.App.HTTPAddr = ":8080"
	c.Storage.Backend = "file"
	c.Storage.Dir = "./data"
	c.Session.JWTSecret = "secret"
	return c
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid file backend", mutate: func(c *Config) {}},
		{
			name: "valid redis backend",
			mutate: func(c *Config) {
				c.Storage.Backend = "redis"
				c.Redis.Addr = "localhost:6379"
			},
		},
		{
			name:    "missing http addr",
			mutate:  func(c *Config) { c.App.HTTPAddr = "" },
			wantErr: "http_addr",
		},
		{
			name:    "file backend without dir",
			mutate:  func(c *Config) { c.Storage.Dir = "" },
			wantErr: "storage.dir",
		},
		{
			name:    "redis backend without addr",
			mutate:  func(c *Config) { c.Storage.Backend = "redis" },
			wantErr: "redis.addr",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Storage.Backend = "s3" },
			wantErr: "storage.backend",
		},
		{
			name:    "missing session secret",
			mutate:  func(c *Config) { c.Session.JWTSecret = "" },
			wantErr: "jwt_secret",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
