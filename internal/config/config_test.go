package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := New()
	cfg.Postgres.User = "postgres"
	cfg.Postgres.Password = "postgres"
	cfg.Admin.JWTSecret = "0123456789abcdef0123"
	return cfg
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("ADMIN_SESSION_TTL", "30m")
	t.Setenv("CACHE_CAPACITY", "not-a-number")

	cfg := New()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "9000", cfg.Http.Port)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Minute, cfg.Admin.SessionTTL)
	assert.Equal(t, 1000, cfg.Cache.Capacity)
	assert.Equal(t, "owner123", cfg.Admin.Username)
	assert.Equal(t, "owner1234", cfg.Admin.Password)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{
			name:   "valid",
			modify: func(c *Config) {},
		},
		{
			name:    "unknown env",
			modify:  func(c *Config) { c.Env = "dev" },
			wantErr: true,
		},
		{
			name:    "short jwt secret",
			modify:  func(c *Config) { c.Admin.JWTSecret = "short" },
			wantErr: true,
		},
		{
			name: "password hash instead of password",
			modify: func(c *Config) {
				c.Admin.Password = ""
				c.Admin.PasswordHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3gkUa8oQXv1jH5C8a8Zr0ZK"
			},
		},
		{
			name: "no password at all",
			modify: func(c *Config) {
				c.Admin.Password = ""
				c.Admin.PasswordHash = ""
			},
			wantErr: true,
		},
		{
			name:    "invalid contact phone",
			modify:  func(c *Config) { c.Contact.Phone = "phone" },
			wantErr: true,
		},
		{
			name:    "invalid broker",
			modify:  func(c *Config) { c.Kafka.Brokers = []string{"localhost"} },
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.modify(&cfg)

			err := cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
