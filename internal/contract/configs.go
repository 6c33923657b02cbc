package contract

import (
	"math"
	"strings"

	"github.com/repopulse/repopulse/schema"
)

// Default values for configuration.
const (
	DefaultActivityPeriodDays      = 30
	DefaultStagnationThresholdDays = 90
	DefaultChurnPeriodDays         = 90
	DefaultHotspotLimit            = 10
	MaxHotspotLimit                = 100
	DefaultMaxHighChurnFiles       = 10
	DefaultChurnPerCommitThreshold = 500.0
	DefaultCoreShare               = 0.05
	DefaultCloseTimeTargetDays     = 30.0
	DefaultHistoryLimit            = 20
)

// WeightTolerance is the tolerance used when checking that scoring weights
// sum to 1.0.
const WeightTolerance = 1e-6

// Weights holds the scoring weight of each sub-score. The four weights
// must sum to 1.0 within WeightTolerance.
type Weights struct {
	Activity          float64 `mapstructure:"activity" json:"activity"`
	IssueHealth       float64 `mapstructure:"issue-health" json:"issue_health"`
	CodeQuality       float64 `mapstructure:"code-quality" json:"code_quality"`
	ContributorHealth float64 `mapstructure:"contributor-health" json:"contributor_health"`
}

// DefaultWeights returns the documented default weight split.
func DefaultWeights() Weights {
	return Weights{
		Activity:          0.30,
		IssueHealth:       0.25,
		CodeQuality:       0.25,
		ContributorHealth: 0.20,
	}
}

// Sum returns the total of the four weights.
func (w Weights) Sum() float64 {
	return w.Activity + w.IssueHealth + w.CodeQuality + w.ContributorHealth
}

// Validate checks that every weight is non-negative and that the weights
// sum to 1.0 within WeightTolerance.
func (w Weights) Validate() error {
	if w.Activity < 0 || w.IssueHealth < 0 || w.CodeQuality < 0 || w.ContributorHealth < 0 {
		return NewConfigError("scoring weights must be non-negative, got %+v", w)
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > WeightTolerance {
		return NewConfigError("scoring weights must sum to 1.0, got %.6f", sum)
	}
	return nil
}

// Config holds the final, validated runtime configuration.
type Config struct {
	Owner    string // Repository owner, e.g. "golang"
	Name     string // Repository name, e.g. "go"
	Token    string // API token for the data-fetch layer (optional)
	APIURL   string // Base URL override for GitHub Enterprise (optional)

	ActivityPeriodDays      int     // Trailing window for activity metrics
	StagnationThresholdDays int     // Threshold for the stagnant-issue list
	ChurnPeriodDays         int     // Trailing window for churn metrics
	HotspotLimit            int     // Top-K size of the hotspot ranking
	MaxHighChurnFiles       int     // High-churn file count before penalties apply
	ChurnPerCommitThreshold float64 // Average churn per commit before penalties apply
	CoreShare               float64 // Contribution share that makes a contributor "core"
	CloseTimeTargetDays     float64 // Reference average close time before penalties apply
	Weights                 Weights // Sub-score weights, must sum to 1.0

	Output         schema.OutputMode
	OutputFile     string
	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
	UseColors      bool
	Advise         bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct before validation.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepositoryStr string

	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Color          string `mapstructure:"color"`
	Advise         bool   `mapstructure:"advise"`

	GitHub struct {
		Token  string `mapstructure:"token"`
		APIURL string `mapstructure:"api-url"`
	} `mapstructure:"github"`

	Analysis struct {
		ActivityPeriodDays      int     `mapstructure:"activity-period-days"`
		StagnationThresholdDays int     `mapstructure:"stagnation-threshold-days"`
		ChurnPeriodDays         int     `mapstructure:"churn-period-days"`
		HotspotLimit            int     `mapstructure:"hotspot-limit"`
		MaxHighChurnFiles       int     `mapstructure:"max-high-churn-files"`
		ChurnPerCommitThreshold float64 `mapstructure:"churn-per-commit-threshold"`
		CoreShare               float64 `mapstructure:"core-share"`
		CloseTimeTargetDays     float64 `mapstructure:"close-time-target-days"`
	} `mapstructure:"analysis"`

	Scoring struct {
		Weights Weights `mapstructure:"weights"`
	} `mapstructure:"scoring"`
}

// DefaultConfig returns a Config populated with every documented default.
// Tests and embedders start from here; the CLI path goes through Viper and
// ProcessAndValidate instead.
func DefaultConfig() *Config {
	return &Config{
		ActivityPeriodDays:      DefaultActivityPeriodDays,
		StagnationThresholdDays: DefaultStagnationThresholdDays,
		ChurnPeriodDays:         DefaultChurnPeriodDays,
		HotspotLimit:            DefaultHotspotLimit,
		MaxHighChurnFiles:       DefaultMaxHighChurnFiles,
		ChurnPerCommitThreshold: DefaultChurnPerCommitThreshold,
		CoreShare:               DefaultCoreShare,
		CloseTimeTargetDays:     DefaultCloseTimeTargetDays,
		Weights:                 DefaultWeights(),
		Output:                  schema.TextOut,
		StoreBackend:            schema.NoneBackend,
		UseColors:               true,
	}
}

// Clone returns a copy of the config safe for per-request mutation.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Repository returns the "owner/name" identifier for the configured repo.
func (c *Config) Repository() string {
	return c.Owner + "/" + c.Name
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct. It returns a ConfigError on any
// unresolvable value.
func (c *Config) ProcessAndValidate(input *ConfigRawInput) error {
	if err := c.processRepository(input); err != nil {
		return err
	}
	return c.ProcessCommonOptions(input)
}

// ProcessCommonOptions validates everything except the repository
// reference, for commands that do not target a specific repo.
func (c *Config) ProcessCommonOptions(input *ConfigRawInput) error {
	if err := c.processAnalysisOptions(input); err != nil {
		return err
	}
	if err := c.processOutputOptions(input); err != nil {
		return err
	}
	if err := c.processStoreOptions(input); err != nil {
		return err
	}

	c.Token = input.GitHub.Token
	c.APIURL = input.GitHub.APIURL
	c.Advise = input.Advise

	c.Weights = input.Scoring.Weights
	return c.Weights.Validate()
}

func (c *Config) processRepository(input *ConfigRawInput) error {
	parts := strings.Split(strings.TrimSpace(input.RepositoryStr), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return NewConfigError("repository must be in owner/name form, got %q", input.RepositoryStr)
	}
	c.Owner = parts[0]
	c.Name = parts[1]
	return nil
}

func (c *Config) processAnalysisOptions(input *ConfigRawInput) error {
	a := input.Analysis
	if a.ActivityPeriodDays <= 0 {
		return NewConfigError("activity-period-days must be positive, got %d", a.ActivityPeriodDays)
	}
	if a.StagnationThresholdDays <= 0 {
		return NewConfigError("stagnation-threshold-days must be positive, got %d", a.StagnationThresholdDays)
	}
	if a.ChurnPeriodDays <= 0 {
		return NewConfigError("churn-period-days must be positive, got %d", a.ChurnPeriodDays)
	}
	if a.HotspotLimit <= 0 || a.HotspotLimit > MaxHotspotLimit {
		return NewConfigError("hotspot-limit must be between 1 and %d, got %d", MaxHotspotLimit, a.HotspotLimit)
	}
	if a.MaxHighChurnFiles < 0 {
		return NewConfigError("max-high-churn-files must be non-negative, got %d", a.MaxHighChurnFiles)
	}
	if a.ChurnPerCommitThreshold <= 0 {
		return NewConfigError("churn-per-commit-threshold must be positive, got %g", a.ChurnPerCommitThreshold)
	}
	if a.CoreShare <= 0 || a.CoreShare > 1 {
		return NewConfigError("core-share must be in (0,1], got %g", a.CoreShare)
	}
	if a.CloseTimeTargetDays <= 0 {
		return NewConfigError("close-time-target-days must be positive, got %g", a.CloseTimeTargetDays)
	}

	c.ActivityPeriodDays = a.ActivityPeriodDays
	c.StagnationThresholdDays = a.StagnationThresholdDays
	c.ChurnPeriodDays = a.ChurnPeriodDays
	c.HotspotLimit = a.HotspotLimit
	c.MaxHighChurnFiles = a.MaxHighChurnFiles
	c.ChurnPerCommitThreshold = a.ChurnPerCommitThreshold
	c.CoreShare = a.CoreShare
	c.CloseTimeTargetDays = a.CloseTimeTargetDays
	return nil
}

func (c *Config) processOutputOptions(input *ConfigRawInput) error {
	c.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[c.Output]; !ok {
		return NewConfigError("invalid output %q. must be text, json, yaml, csv", input.Output)
	}
	c.OutputFile = input.OutputFile

	switch strings.ToLower(input.Color) {
	case "", "yes", "auto":
		c.UseColors = true
	case "no":
		c.UseColors = false
	default:
		return NewConfigError("invalid color %q. must be yes, no, auto", input.Color)
	}
	return nil
}

func (c *Config) processStoreOptions(input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return NewConfigError("invalid store backend %q. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	c.StoreBackend = backend
	c.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(c.StoreBackend, c.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return NewConfigError("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return NewConfigError("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return NewConfigError("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return NewConfigError("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return NewConfigError("PostgreSQL connection string must contain 'host=' or use a postgres:// URL")
		}
	}
	return nil
}
