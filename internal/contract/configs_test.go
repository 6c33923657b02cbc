package contract

import (
	"testing"

	"github.com/repopulse/repopulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validRawInput returns a raw input that passes validation as-is.
func validRawInput() *ConfigRawInput {
	input := &ConfigRawInput{
		RepositoryStr: "acme/widgets",
		Output:        "text",
		Color:         "yes",
		StoreBackend:  "none",
	}
	input.Analysis.ActivityPeriodDays = DefaultActivityPeriodDays
	input.Analysis.StagnationThresholdDays = DefaultStagnationThresholdDays
	input.Analysis.ChurnPeriodDays = DefaultChurnPeriodDays
	input.Analysis.HotspotLimit = DefaultHotspotLimit
	input.Analysis.MaxHighChurnFiles = DefaultMaxHighChurnFiles
	input.Analysis.ChurnPerCommitThreshold = DefaultChurnPerCommitThreshold
	input.Analysis.CoreShare = DefaultCoreShare
	input.Analysis.CloseTimeTargetDays = DefaultCloseTimeTargetDays
	input.Scoring.Weights = DefaultWeights()
	return input
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.ProcessAndValidate(validRawInput()))

	assert.Equal(t, "acme", cfg.Owner)
	assert.Equal(t, "widgets", cfg.Name)
	assert.Equal(t, "acme/widgets", cfg.Repository())
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.NoneBackend, cfg.StoreBackend)
	assert.True(t, cfg.UseColors)
	assert.InDelta(t, 1.0, cfg.Weights.Sum(), WeightTolerance)
}

func TestProcessAndValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{
			name:   "missing repo separator",
			mutate: func(in *ConfigRawInput) { in.RepositoryStr = "widgets" },
		},
		{
			name:   "empty owner",
			mutate: func(in *ConfigRawInput) { in.RepositoryStr = "/widgets" },
		},
		{
			name:   "zero activity window",
			mutate: func(in *ConfigRawInput) { in.Analysis.ActivityPeriodDays = 0 },
		},
		{
			name:   "negative churn window",
			mutate: func(in *ConfigRawInput) { in.Analysis.ChurnPeriodDays = -5 },
		},
		{
			name:   "hotspot limit too large",
			mutate: func(in *ConfigRawInput) { in.Analysis.HotspotLimit = MaxHotspotLimit + 1 },
		},
		{
			name:   "core share above one",
			mutate: func(in *ConfigRawInput) { in.Analysis.CoreShare = 1.5 },
		},
		{
			name:   "bad output mode",
			mutate: func(in *ConfigRawInput) { in.Output = "xml" },
		},
		{
			name:   "bad color flag",
			mutate: func(in *ConfigRawInput) { in.Color = "maybe" },
		},
		{
			name:   "bad store backend",
			mutate: func(in *ConfigRawInput) { in.StoreBackend = "redis" },
		},
		{
			name: "weights do not sum to one",
			mutate: func(in *ConfigRawInput) {
				in.Scoring.Weights = Weights{Activity: 0.9, IssueHealth: 0.9}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)

			err := (&Config{}).ProcessAndValidate(input)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())

	// The tolerance admits floating point drift but nothing material.
	drifted := Weights{Activity: 0.3, IssueHealth: 0.25, CodeQuality: 0.25, ContributorHealth: 0.19999999999}
	assert.NoError(t, drifted.Validate())

	short := Weights{Activity: 0.5, IssueHealth: 0.4}
	assert.Error(t, short.Validate())
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{name: "sqlite empty ok", backend: schema.SQLiteBackend, connStr: "", wantErr: false},
		{name: "none ok", backend: schema.NoneBackend, connStr: "", wantErr: false},
		{name: "mysql valid", backend: schema.MySQLBackend, connStr: "user:pw@tcp(localhost:3306)/pulse", wantErr: false},
		{name: "mysql missing tcp", backend: schema.MySQLBackend, connStr: "user:pw@localhost/pulse", wantErr: true},
		{name: "mysql empty", backend: schema.MySQLBackend, connStr: "", wantErr: true},
		{name: "postgres keyword form", backend: schema.PostgreSQLBackend, connStr: "host=localhost dbname=pulse", wantErr: false},
		{name: "postgres url form", backend: schema.PostgreSQLBackend, connStr: "postgres://user:pw@localhost/pulse", wantErr: false},
		{name: "postgres invalid", backend: schema.PostgreSQLBackend, connStr: "localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultActivityPeriodDays, cfg.ActivityPeriodDays)
	assert.Equal(t, DefaultChurnPeriodDays, cfg.ChurnPeriodDays)
	assert.NoError(t, cfg.Weights.Validate())
}
