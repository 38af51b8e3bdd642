package schema

// NodeType enumerates the fixed set of node labels in the warehouse graph.
type NodeType string

const (
	NodeWarehouse      NodeType = "Warehouse"
	NodeManager        NodeType = "Manager"
	NodeZone           NodeType = "Zone"
	NodeRegionalZone   NodeType = "RegionalZone"
	NodeInfrastructure NodeType = "Infrastructure"
	NodeRiskEvent      NodeType = "RiskEvent"
	NodeMarketContext  NodeType = "MarketContext"
	NodeCompliance     NodeType = "Compliance"
)

// RelationType enumerates the directed edge types. VULNERABLE_TO, SERVES and
// REQUIRES_REFILL are reserved by the load job but never traversed here.
type RelationType string

const (
	RelManages           RelationType = "MANAGES"
	RelLocatedIn         RelationType = "LOCATED_IN"
	RelPartOf            RelationType = "PART_OF"
	RelHasInfrastructure RelationType = "HAS_INFRASTRUCTURE"
	RelExperienced       RelationType = "EXPERIENCED"
	RelVulnerableTo      RelationType = "VULNERABLE_TO"
	RelOperatesIn        RelationType = "OPERATES_IN"
	RelServes            RelationType = "SERVES"
	RelSubjectTo         RelationType = "SUBJECT_TO"
	RelRequiresRefill    RelationType = "REQUIRES_REFILL"
)

// WarehouseNode mirrors the Warehouse node properties written by the load
// job. RiskScore is always present and clipped to [0, 1].
type WarehouseNode struct {
	WarehouseID        string  `json:"warehouse_id"`
	CapacitySize       string  `json:"capacity_size"`
	EstablishedYear    int     `json:"established_year"`
	OwnerType          string  `json:"owner_type"`
	LocationType       string  `json:"location_type"`
	DistanceFromHub    float64 `json:"distance_from_hub"`
	WorkersCount       int     `json:"workers_count"`
	ProductShippedTons float64 `json:"product_shipped_tons"`
	RiskScore          float64 `json:"risk_score"`
}

// RiskEventNode records one recurring event class for a warehouse.
// Severity is either "medium" or "high".
type RiskEventNode struct {
	EventID         string `json:"event_id"`
	EventType       string `json:"event_type"`
	Severity        string `json:"severity"`
	OccurrenceCount int    `json:"occurrence_count"`
	TimePeriod      string `json:"time_period"`
}

// InfrastructureNode holds the per-warehouse facility flags. Exactly one
// exists per warehouse.
type InfrastructureNode struct {
	InfrastructureID  string `json:"infrastructure_id"`
	HasTempRegulation bool   `json:"has_temp_regulation"`
	HasElectricBackup bool   `json:"has_electric_backup"`
	IsFloodProof      bool   `json:"is_flood_proof"`
	CertificateType   string `json:"certificate_type"`
}

// MarketContextNode holds the per-warehouse market snapshot.
type MarketContextNode struct {
	MarketID         string `json:"market_id"`
	CompetitorCount  int    `json:"competitor_count"`
	RetailShopCount  int    `json:"retail_shop_count"`
	DistributorCount int    `json:"distributor_count"`
	IsFloodImpacted  bool   `json:"is_flood_impacted"`
}

// ComplianceNode holds the per-warehouse regulatory snapshot.
type ComplianceNode struct {
	ComplianceID      string `json:"compliance_id"`
	GovtChecksL3M     int    `json:"govt_checks_l3m"`
	CertificateType   string `json:"certificate_type"`
	RefillRequestsL3M int    `json:"refill_requests_l3m"`
}

// ClipRiskScore clamps a raw risk score to the documented [0, 1] range.
func ClipRiskScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Description is the fixed schema text embedded into the Cypher generation
// prompt. Keep it in sync with the node structs above.
const Description = `- Warehouse (warehouse_id, capacity_size, established_year, owner_type, location_type, distance_from_hub, workers_count, product_shipped_tons, risk_score)
- Manager (manager_id) -[:MANAGES]-> Warehouse
- Zone (zone_id, zone_name) <-[:PART_OF]- RegionalZone (regional_zone_id, regional_zone_name) <-[:LOCATED_IN]- Warehouse
- Infrastructure (infrastructure_id, has_temp_regulation, has_electric_backup, is_flood_proof, certificate_type) <-[:HAS_INFRASTRUCTURE]- Warehouse
- RiskEvent (event_id, event_type, occurrence_count, severity, time_period) <-[:EXPERIENCED]- Warehouse
- MarketContext (market_id, competitor_count, retail_shop_count, distributor_count, is_flood_impacted) <-[:OPERATES_IN]- Warehouse
- Compliance (compliance_id, govt_checks_l3m, certificate_type, refill_requests_l3m) <-[:SUBJECT_TO]- Warehouse`

// Constraints and Indexes are the DDL the one-time load job applies. The
// query pipeline never runs them; they are exposed for the loader tooling.
var Constraints = []string{
	"CREATE CONSTRAINT warehouse_id IF NOT EXISTS FOR (w:Warehouse) REQUIRE w.warehouse_id IS UNIQUE",
	"CREATE CONSTRAINT manager_id IF NOT EXISTS FOR (m:Manager) REQUIRE m.manager_id IS UNIQUE",
	"CREATE CONSTRAINT zone_id IF NOT EXISTS FOR (z:Zone) REQUIRE z.zone_id IS UNIQUE",
}

var Indexes = []string{
	"CREATE INDEX warehouse_capacity IF NOT EXISTS FOR (w:Warehouse) ON (w.capacity_size)",
	"CREATE INDEX risk_event_type IF NOT EXISTS FOR (r:RiskEvent) ON (r.event_type)",
	"CREATE INDEX warehouse_location IF NOT EXISTS FOR (w:Warehouse) ON (w.location_type)",
}
