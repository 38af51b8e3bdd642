package query

// Curated Cypher library. Each template covers one canonical analytical
// pattern and binds every value inside its own MATCH clauses, so lookups are
// deterministic and need no external parameters.
//
// The map from Intent to template is closed: an intent without an entry
// falls through to free-form generation.

const tmplHighRiskWarehouses = `MATCH (w:Warehouse)-[:EXPERIENCED]->(r:RiskEvent)
WHERE w.risk_score > 0.6
OPTIONAL MATCH (w)-[:HAS_INFRASTRUCTURE]->(i:Infrastructure)
OPTIONAL MATCH (w)-[:OPERATES_IN]->(m:MarketContext)
WITH w, COUNT(r) as risk_count, i, m
RETURN w.warehouse_id as warehouse_id,
       w.risk_score as risk_score,
       w.location_type as location,
       risk_count,
       i.has_electric_backup as has_backup,
       i.is_flood_proof as flood_proof,
       m.is_flood_impacted as in_flood_zone
ORDER BY w.risk_score DESC
LIMIT 10`

const tmplZoneRiskComparison = `MATCH (z:Zone)<-[:PART_OF]-(rz:RegionalZone)<-[:LOCATED_IN]-(w:Warehouse)
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
WITH z.zone_name as zone,
     COUNT(DISTINCT w) as total_warehouses,
     AVG(w.risk_score) as avg_risk_score,
     COUNT(r) as total_incidents
RETURN zone,
       total_warehouses,
       ROUND(avg_risk_score, 3) as avg_risk_score,
       total_incidents,
       ROUND(total_incidents * 1.0 / total_warehouses, 2) as incident_rate
ORDER BY avg_risk_score DESC`

const tmplInfrastructureImpact = `MATCH (w:Warehouse)-[:HAS_INFRASTRUCTURE]->(i:Infrastructure)
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
WITH i.has_temp_regulation as has_temp_reg,
     i.has_electric_backup as has_backup,
     i.is_flood_proof as flood_proof,
     COUNT(DISTINCT w) as warehouse_count,
     AVG(w.risk_score) as avg_risk,
     COUNT(r) as total_incidents
RETURN has_temp_reg, has_backup, flood_proof,
       warehouse_count,
       ROUND(avg_risk, 3) as avg_risk_score,
       total_incidents
ORDER BY avg_risk_score`

const tmplManagerPerformance = `MATCH (m:Manager)-[:MANAGES]->(w:Warehouse)
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
WITH m.manager_id as manager_id,
     COUNT(DISTINCT w) as warehouses_managed,
     AVG(w.risk_score) as avg_risk_score,
     AVG(w.product_shipped_tons) as avg_shipment,
     COUNT(r) as total_incidents
WHERE warehouses_managed > 0
RETURN manager_id,
       warehouses_managed,
       ROUND(avg_risk_score, 3) as avg_risk_score,
       ROUND(avg_shipment, 2) as avg_shipment_tons,
       total_incidents,
       ROUND(total_incidents * 1.0 / warehouses_managed, 2) as incidents_per_warehouse
ORDER BY avg_risk_score ASC, avg_shipment DESC
LIMIT 15`

const tmplVulnerableWarehouses = `MATCH (w:Warehouse)-[:HAS_INFRASTRUCTURE]->(i:Infrastructure)
WHERE i.has_electric_backup = false
  OR i.is_flood_proof = false
OPTIONAL MATCH (w)-[:OPERATES_IN]->(m:MarketContext)
WHERE m.is_flood_impacted = true
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
WITH w, i, m, COUNT(r) as incident_count
WHERE w.risk_score > 0.5 OR incident_count > 2
RETURN w.warehouse_id as warehouse_id,
       w.risk_score as risk_score,
       w.location_type as location,
       i.has_electric_backup as has_backup,
       i.is_flood_proof as flood_proof,
       m.is_flood_impacted as in_flood_zone,
       incident_count
ORDER BY w.risk_score DESC, incident_count DESC
LIMIT 10`

const tmplBreakdownPatterns = `MATCH (w:Warehouse)-[:EXPERIENCED]->(r:RiskEvent)
WHERE r.event_type = 'breakdown'
OPTIONAL MATCH (w)-[:HAS_INFRASTRUCTURE]->(i:Infrastructure)
OPTIONAL MATCH (w)-[:LOCATED_IN]->(rz:RegionalZone)
WITH w, r, i, rz
RETURN w.warehouse_id as warehouse_id,
       w.established_year as year_established,
       r.occurrence_count as breakdown_count,
       r.severity as severity,
       i.has_electric_backup as has_backup,
       i.has_temp_regulation as has_temp_control,
       rz.regional_zone_name as region
ORDER BY r.occurrence_count DESC
LIMIT 15`

const tmplExploration = `MATCH (w:Warehouse)
OPTIONAL MATCH (w)-[:LOCATED_IN]->(rz:RegionalZone)-[:PART_OF]->(z:Zone)
OPTIONAL MATCH (w)-[:HAS_INFRASTRUCTURE]->(i:Infrastructure)
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
RETURN w.warehouse_id,
       w.location_type,
       w.capacity_size,
       z.zone_name,
       rz.regional_zone_name,
       w.risk_score,
       COUNT(r) as risk_events,
       i.has_temp_regulation,
       i.has_electric_backup,
       i.is_flood_proof
ORDER BY w.warehouse_id
LIMIT 50`

const tmplCapacityAnalysis = `MATCH (w:Warehouse)
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
WITH w, COUNT(r) as incident_count
RETURN w.capacity_size,
       COUNT(w) as warehouse_count,
       AVG(w.risk_score) as avg_risk,
       AVG(w.product_shipped_tons) as avg_shipment,
       SUM(incident_count) as total_incidents,
       AVG(incident_count) as avg_incidents_per_warehouse
ORDER BY w.capacity_size`

const tmplInfrastructureGaps = `MATCH (w:Warehouse)-[:HAS_INFRASTRUCTURE]->(i:Infrastructure)
WHERE i.has_electric_backup = false
   OR i.is_flood_proof = false
   OR i.has_temp_regulation = false
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
RETURN w.warehouse_id,
       w.risk_score,
       i.has_temp_regulation,
       i.has_electric_backup,
       i.is_flood_proof,
       COUNT(r) as risk_events,
       CASE
         WHEN i.has_electric_backup = false AND i.is_flood_proof = false THEN 'Critical'
         WHEN i.has_electric_backup = false OR i.is_flood_proof = false THEN 'High'
         ELSE 'Medium'
       END as vulnerability_level
ORDER BY w.risk_score DESC
LIMIT 20`

const tmplMarketRiskCorrelation = `MATCH (w:Warehouse)-[:OPERATES_IN]->(m:MarketContext)
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
WITH m, COUNT(DISTINCT w) as warehouses_in_market,
     AVG(w.risk_score) as avg_warehouse_risk,
     COUNT(r) as total_market_risk_events,
     SUM(m.competitor_count) as total_competitors,
     SUM(m.retail_shop_count) as total_retail_shops
RETURN m.market_id,
       warehouses_in_market,
       ROUND(avg_warehouse_risk, 3) as avg_risk_score,
       total_market_risk_events,
       ROUND(total_market_risk_events * 1.0 / warehouses_in_market, 2) as risk_per_warehouse,
       total_competitors,
       total_retail_shops,
       m.is_flood_impacted
ORDER BY avg_warehouse_risk DESC`

const tmplPerformanceMetrics = `MATCH (w:Warehouse)
OPTIONAL MATCH (mgr:Manager)-[:MANAGES]->(w)
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
WITH mgr, COUNT(DISTINCT w) as warehouses_managed,
     AVG(w.risk_score) as avg_risk,
     AVG(w.product_shipped_tons) as avg_shipments,
     COUNT(r) as total_risk_events
WHERE warehouses_managed > 0
RETURN mgr.manager_id,
       warehouses_managed,
       ROUND(avg_risk, 3) as avg_warehouse_risk,
       ROUND(avg_shipments, 2) as avg_shipments_per_warehouse,
       total_risk_events,
       ROUND(total_risk_events * 1.0 / warehouses_managed, 2) as risk_events_per_warehouse
ORDER BY avg_risk ASC, avg_shipments DESC`

const tmplLocationRiskAnalysis = `MATCH (w:Warehouse)-[:LOCATED_IN]->(rz:RegionalZone)-[:PART_OF]->(z:Zone)
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
WITH z.zone_name as zone, rz.regional_zone_name as region,
     COUNT(DISTINCT w) as warehouses_in_region,
     AVG(w.risk_score) as avg_risk,
     COUNT(r) as total_incidents,
     SUM(CASE WHEN w.location_type = 'Urban' THEN 1 ELSE 0 END) as urban_count,
     SUM(CASE WHEN w.location_type = 'Rural' THEN 1 ELSE 0 END) as rural_count
RETURN zone,
       region,
       warehouses_in_region,
       ROUND(avg_risk, 3) as avg_risk_score,
       total_incidents,
       ROUND(total_incidents * 1.0 / warehouses_in_region, 2) as incidents_per_warehouse,
       urban_count,
       rural_count
ORDER BY avg_risk DESC`

const tmplTemporalRiskTrends = `MATCH (w:Warehouse)-[:EXPERIENCED]->(r:RiskEvent)
WHERE r.time_period = 'l3m'
WITH r.event_type as event_type,
     COUNT(r) as recent_events,
     AVG(r.severity) as avg_severity,
     COUNT(DISTINCT w) as affected_warehouses
RETURN event_type,
       recent_events,
       ROUND(avg_severity, 2) as avg_severity,
       affected_warehouses,
       ROUND(recent_events * 1.0 / affected_warehouses, 2) as events_per_affected_warehouse
ORDER BY recent_events DESC
LIMIT 10`

const tmplComplianceOverview = `MATCH (w:Warehouse)-[:SUBJECT_TO]->(c:Compliance)
OPTIONAL MATCH (w)-[:EXPERIENCED]->(r:RiskEvent)
WITH c, COUNT(DISTINCT w) as warehouses_under_compliance,
     AVG(w.risk_score) as avg_risk_under_compliance,
     COUNT(r) as total_risk_events,
     AVG(c.govt_checks_l3m) as avg_govt_checks,
     AVG(c.refill_requests_l3m) as avg_refill_requests
RETURN c.certificate_type,
       warehouses_under_compliance,
       ROUND(avg_risk_under_compliance, 3) as avg_risk_score,
       total_risk_events,
       ROUND(avg_govt_checks, 1) as avg_govt_checks_per_warehouse,
       ROUND(avg_refill_requests, 1) as avg_refill_requests_per_warehouse
ORDER BY avg_risk_under_compliance DESC`

// templates binds each intent that has a canonical analytical pattern to
// its hand-authored query. Intents absent here always go through free-form
// generation.
var templates = map[Intent]string{
	IntentRiskIdentification:       tmplHighRiskWarehouses,
	IntentComparison:               tmplZoneRiskComparison,
	IntentOptimization:             tmplInfrastructureImpact,
	IntentManagerPerformance:       tmplManagerPerformance,
	IntentAnomalyDetection:         tmplVulnerableWarehouses,
	IntentRootCause:                tmplBreakdownPatterns,
	IntentExploration:              tmplExploration,
	IntentGeneralLookup:            tmplExploration,
	IntentReporting:                tmplExploration,
	IntentCapacityAnalysis:         tmplCapacityAnalysis,
	IntentInfrastructureAssessment: tmplInfrastructureGaps,
	IntentMarketAnalysis:           tmplMarketRiskCorrelation,
	IntentCorrelation:              tmplMarketRiskCorrelation,
	IntentPerformanceAnalysis:      tmplPerformanceMetrics,
	IntentLocationAnalysis:         tmplLocationRiskAnalysis,
	IntentTrendAnalysis:            tmplTemporalRiskTrends,
	IntentComplianceCheck:          tmplComplianceOverview,
}

// TemplateFor returns the canonical query for intent, if one exists.
func TemplateFor(intent Intent) (string, bool) {
	tmpl, ok := templates[intent]
	return tmpl, ok
}
