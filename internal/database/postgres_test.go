package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	tests := []struct {
		name    string
		limits  PoolLimits
		wantMax int32
		wantMin int32
	}{
		{"configured", PoolLimits{MaxConns: 8, MinConns: 2}, 8, 2},
		{"zero keeps pgxpool defaults", PoolLimits{}, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := poolConfig("postgres://u:p@localhost:5432/data?sslmode=disable", tt.limits)
			require.NoError(t, err)

			if tt.wantMax < 0 {
				assert.Positive(t, cfg.MaxConns)
				assert.Equal(t, int32(0), cfg.MinConns)
				return
			}
			assert.Equal(t, tt.wantMax, cfg.MaxConns)
			assert.Equal(t, tt.wantMin, cfg.MinConns)
		})
	}
}

func TestPoolConfig_BadURL(t *testing.T) {
	_, err := poolConfig("postgres://%zz", PoolLimits{})
	assert.Error(t, err)
}
