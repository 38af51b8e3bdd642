package answer

import "fmt"

// Issue is one detected problem with a warehouse.
type Issue struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// IdentifyIssues derives concrete issues from a warehouse data map. The
// checks run in a fixed order: risk score, electric backup, flood proofing,
// then each recurring incident in input order.
func IdentifyIssues(data map[string]any) []Issue {
	issues := []Issue{}

	riskScore := asFloat(data["risk_score"])
	if riskScore > 0.7 {
		issues = append(issues, Issue{
			Type:        "high_risk",
			Description: fmt.Sprintf("High risk score of %.3f", riskScore),
			Severity:    "critical",
		})
	}

	infra, _ := data["infrastructure"].(map[string]any)
	if !asBool(infra["has_electric_backup"]) {
		issues = append(issues, Issue{
			Type:        "infrastructure",
			Description: "No electric backup system",
			Severity:    "high",
		})
	}
	if !asBool(infra["is_flood_proof"]) {
		issues = append(issues, Issue{
			Type:        "infrastructure",
			Description: "Not flood-proof",
			Severity:    "medium",
		})
	}

	for _, risk := range asRiskList(data["risks"]) {
		count := asInt(risk["count"])
		if count > 2 {
			issues = append(issues, Issue{
				Type:        "recurring_incident",
				Description: fmt.Sprintf("Multiple %v incidents (%d)", risk["type"], count),
				Severity:    "high",
			})
		}
	}

	return issues
}

func asRiskList(v any) []map[string]any {
	switch list := v.(type) {
	case []map[string]any:
		return list
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
