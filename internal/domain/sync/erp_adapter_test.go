package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// ErpType Tests
// ---------------------------------------------------------------------------

func TestErpType_IsValid(t *testing.T) {
	assert.True(t, ErpTypeCDKDrive.IsValid())
	assert.True(t, ErpTypeReynoldsERA.IsValid())
	assert.False(t, ErpType("DEALERTRACK").IsValid())
	assert.False(t, ErpType("").IsValid())
}

func TestErpType_DisplayName(t *testing.T) {
	assert.Equal(t, "CDK Drive", ErpTypeCDKDrive.DisplayName())
	assert.Equal(t, "Reynolds & Reynolds ERA", ErpTypeReynoldsERA.DisplayName())
	// Unknown types fall back to the raw value.
	assert.Equal(t, "X", ErpType("X").DisplayName())
}

// ---------------------------------------------------------------------------
// ConnectionConfig Tests
// ---------------------------------------------------------------------------

func TestConnectionConfig_Validate(t *testing.T) {
	valid := ConnectionConfig{
		Server:   "erp.dealer.local:5432",
		Database: "dms_prod",
		Username: "reporting_ro",
		Password: "secret",
		Schema:   "cdk_drive_2020",
	}

	t.Run("Complete config", func(t *testing.T) {
		cfg := valid
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Each missing field is rejected", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*ConnectionConfig)
		}{
			{"server", func(c *ConnectionConfig) { c.Server = "" }},
			{"database", func(c *ConnectionConfig) { c.Database = "" }},
			{"username", func(c *ConnectionConfig) { c.Username = "" }},
			{"password", func(c *ConnectionConfig) { c.Password = "" }},
			{"schema", func(c *ConnectionConfig) { c.Schema = "" }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				cfg := valid
				tc.mutate(&cfg)
				err := cfg.Validate()
				assert.ErrorIs(t, err, ErrIncompleteConfig)
				assert.Contains(t, err.Error(), tc.name)
			})
		}
	})
}

// ---------------------------------------------------------------------------
// Error Classification Tests
// ---------------------------------------------------------------------------

func TestErrorClassification(t *testing.T) {
	t.Run("Configuration errors", func(t *testing.T) {
		assert.True(t, IsConfigurationError(ErrUnknownErpType))
		assert.True(t, IsConfigurationError(ErrIncompleteConfig))
		assert.True(t, IsConfigurationError(ErrConnectionInactive))
		assert.False(t, IsConfigurationError(ErrErpUnreachable))
		assert.False(t, IsConfigurationError(nil))
	})

	t.Run("Validation errors", func(t *testing.T) {
		assert.True(t, IsValidationError(ErrInvalidPeriod))
		assert.False(t, IsValidationError(ErrIncompleteConfig))
	})

	t.Run("Wrapped errors keep their class", func(t *testing.T) {
		cfg := ConnectionConfig{Server: "s"}
		assert.True(t, IsConfigurationError(cfg.Validate()))
	})
}
