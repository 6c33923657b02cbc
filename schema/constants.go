package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for report storage.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	YAMLOut OutputMode = "yaml"
	CSVOut  OutputMode = "csv"
)

// All report store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Issue and pull request states as reported by the data-fetch layer.
const (
	IssueOpen   = "open"
	IssueClosed = "closed"
)

// Component names used to attribute data-shape failures to an analyzer.
const (
	ActivityComponent    = "activity"
	IssueComponent       = "issue_health"
	ChurnComponent       = "code_quality"
	ContributorComponent = "contributor_health"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	YAMLOut: {},
	CSVOut:  {},
}

// ValidDatabaseBackends lists all valid report store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
