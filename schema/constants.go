package schema

// Custom string types for type safety.
type (
	// RiskCategory labels a file's maintainability trend.
	RiskCategory string

	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for run tracking.
	StoreBackend string
)

// All risk categories, ordered from best to worst.
const (
	Improved         RiskCategory = "improved"
	Stable           RiskCategory = "stable"
	Degraded         RiskCategory = "degraded"
	SeverelyDegraded RiskCategory = "severely_degraded"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All run-store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// AllRiskCategories returns every category in ascending severity order.
var AllRiskCategories = []RiskCategory{Improved, Stable, Degraded, SeverelyDegraded}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidStoreBackends lists all valid run-store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// CategoryForScore buckets a calibrated degradation score into a risk
// category. Boundaries are inclusive upper bounds with no overlap:
// negative scores are improvements, (0, 0.1] is stable drift, (0.1, 0.2]
// is degradation, and anything beyond is severe.
func CategoryForScore(score float64) RiskCategory {
	switch {
	case score < 0:
		return Improved
	case score <= 0.1:
		return Stable
	case score <= 0.2:
		return Degraded
	default:
		return SeverelyDegraded
	}
}
