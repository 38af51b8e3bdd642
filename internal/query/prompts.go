package query

// Prompt templates for the understanding and Cypher generation stages.
// The taxonomy in understandingPrompt is the contract the Understanding
// struct is parsed against; keep the two in sync.

const understandingSystemPrompt = "You are an expert in warehouse risk management."

const understandingPrompt = `
Analyze this warehouse supply chain query and extract structured information:

Query: %q

Return a JSON object with:
{
    "intent": "<one of: risk_identification, performance_analysis, comparison, optimization, root_cause, prediction, exploration, reporting, filtering, aggregation, correlation, trend_analysis, anomaly_detection, compliance_check, capacity_analysis, location_analysis, manager_performance, infrastructure_assessment, market_analysis, general_lookup>",
    "entities": ["list of entities mentioned: warehouse_id, zone, manager, region, etc"],
    "risk_factors": ["breakdown", "storage_issue", "transport_issue", "flood", "power_outage", "temp_control", etc],
    "time_scope": "<current, historical, future, last_3m, last_6m, last_1y>",
    "graph_pattern": "<simple_lookup, multi_hop, aggregation, path_finding, subgraph, complex_join>",
    "complexity": "<basic, intermediate, advanced, expert>",
    "data_focus": ["warehouses", "managers", "zones", "infrastructure", "risk_events", "compliance", "market"],
    "output_format": "<summary, detailed, comparative, ranked, statistical>",
    "filters": ["risk_score > 0.7", "location_type = 'Urban'", "has_electric_backup = false"],
    "requires_comparison": <true/false>,
    "requires_aggregation": <true/false>,
    "requires_temporal_analysis": <true/false>,
    "requires_geospatial_analysis": <true/false>
}

Be comprehensive and specific. Consider the full range of warehouse analytics questions.
Return ONLY valid JSON.
`

const cypherSystemPrompt = "You are an expert Neo4j Cypher query generator for warehouse risk management."

const cypherGenerationPrompt = `
Generate a Neo4j Cypher query for this warehouse supply chain analytics question.

Intent: %s
Query: %q
Entities: %v
Risk Factors: %v

Graph Schema:
%s

Query Understanding:
- Complexity: %s
- Graph Pattern: %s
- Data Focus: %v
- Time Scope: %s
- Requires Comparison: %t
- Requires Aggregation: %t

Guidelines:
1. Use MATCH for finding patterns, OPTIONAL MATCH for optional relationships
2. Use WHERE for filtering with appropriate conditions
3. Include ORDER BY and LIMIT for ranked results
4. Use aggregation functions (COUNT, AVG, SUM, MIN, MAX) when analyzing metrics
5. Use CASE statements for conditional logic and categorization
6. Include relevant properties with clear, descriptive aliases
7. Handle complex multi-hop relationships appropriately
8. Use parameters for dynamic values when possible
9. Ensure queries are efficient and avoid cartesian products
10. Return data in a format suitable for analysis

Return ONLY the Cypher query, no explanations or markdown formatting.
`
