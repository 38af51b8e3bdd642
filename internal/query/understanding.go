package query

// Intent is the closed set of analytical intent categories the
// understanding stage can produce.
type Intent string

const (
	IntentRiskIdentification       Intent = "risk_identification"
	IntentPerformanceAnalysis      Intent = "performance_analysis"
	IntentComparison               Intent = "comparison"
	IntentOptimization             Intent = "optimization"
	IntentRootCause                Intent = "root_cause"
	IntentPrediction               Intent = "prediction"
	IntentExploration              Intent = "exploration"
	IntentReporting                Intent = "reporting"
	IntentFiltering                Intent = "filtering"
	IntentAggregation              Intent = "aggregation"
	IntentCorrelation              Intent = "correlation"
	IntentTrendAnalysis            Intent = "trend_analysis"
	IntentAnomalyDetection         Intent = "anomaly_detection"
	IntentComplianceCheck          Intent = "compliance_check"
	IntentCapacityAnalysis         Intent = "capacity_analysis"
	IntentLocationAnalysis         Intent = "location_analysis"
	IntentManagerPerformance       Intent = "manager_performance"
	IntentInfrastructureAssessment Intent = "infrastructure_assessment"
	IntentMarketAnalysis           Intent = "market_analysis"
	IntentGeneralLookup            Intent = "general_lookup"

	// Degraded intents produced only by the understanding stage itself.
	IntentGeneralQuery Intent = "general_query" // service answered, parse failed
	IntentError        Intent = "error"         // service call failed
)

// Understanding is the structured descriptor the understanding stage derives
// from one natural-language question. Every field carries a documented
// default so downstream stages never see a missing value.
//
// RequiresGeospatialAnalysis is produced but consumed nowhere; it is
// reserved for a future geospatial stage.
type Understanding struct {
	Intent                     Intent   `json:"intent"`
	Entities                   []string `json:"entities"`
	RiskFactors                []string `json:"risk_factors"`
	TimeScope                  string   `json:"time_scope"`
	GraphPattern               string   `json:"graph_pattern"`
	Complexity                 string   `json:"complexity"`
	DataFocus                  []string `json:"data_focus"`
	OutputFormat               string   `json:"output_format"`
	Filters                    []string `json:"filters"`
	RequiresComparison         bool     `json:"requires_comparison"`
	RequiresAggregation        bool     `json:"requires_aggregation"`
	RequiresTemporalAnalysis   bool     `json:"requires_temporal_analysis"`
	RequiresGeospatialAnalysis bool     `json:"requires_geospatial_analysis"`
}

// DefaultUnderstanding returns the documented degraded record for the given
// intent. All boolean flags are false and all lists empty.
func DefaultUnderstanding(intent Intent) Understanding {
	return Understanding{
		Intent:       intent,
		Entities:     []string{},
		RiskFactors:  []string{},
		TimeScope:    "current",
		GraphPattern: "simple",
		Complexity:   "medium",
		DataFocus:    []string{"warehouses"},
		OutputFormat: "summary",
		Filters:      []string{},
	}
}

// applyDefaults backfills any field the service left empty, so a partial
// answer still yields a fully populated record.
func (u *Understanding) applyDefaults() {
	if u.Intent == "" {
		u.Intent = IntentGeneralQuery
	}
	if u.Entities == nil {
		u.Entities = []string{}
	}
	if u.RiskFactors == nil {
		u.RiskFactors = []string{}
	}
	if u.TimeScope == "" {
		u.TimeScope = "current"
	}
	if u.GraphPattern == "" {
		u.GraphPattern = "simple"
	}
	if u.Complexity == "" {
		u.Complexity = "medium"
	}
	if len(u.DataFocus) == 0 {
		u.DataFocus = []string{"warehouses"}
	}
	if u.OutputFormat == "" {
		u.OutputFormat = "summary"
	}
	if u.Filters == nil {
		u.Filters = []string{}
	}
}
