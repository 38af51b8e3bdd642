package answer

const (
	contextExtractionSystemPrompt = "You are a data analyst."
	answerSystemPrompt            = "You are a warehouse risk assessment analyst."
	riskAssessmentSystemPrompt    = "You are a risk assessment expert."
	recommendationSystemPrompt    = "You are a business consultant."
	comparisonSystemPrompt        = "You are a comparative analyst."
)

const contextExtractionPrompt = `
Extract and summarize key information from these graph query results.

Query: %q

Results:
%s

Provide a concise summary (2-3 sentences) highlighting:
- Number of results
- Key patterns or trends
- Notable outliers or anomalies
- Most important insights

Be factual and data-focused.
`

const answerGenerationPrompt = `
Generate a comprehensive answer for this warehouse analysis query.

Query: %q

Graph Query Results:
%s

Additional Context:
%s

Instructions:
1. Provide a clear, direct answer to the question
2. Include specific data points and metrics
3. Highlight key insights and patterns
4. Use bullet points for multiple items
5. Be concise but informative
6. Include risk levels when relevant (Low/Medium/High/Critical)

Format your answer professionally for a business audience.
`

const riskAssessmentPrompt = `
Provide a detailed risk assessment for this warehouse.

Warehouse ID: %s
Risk Score: %v

Incidents:
%s

Infrastructure:
%s

Market Context:
%s

Generate a comprehensive risk assessment including:
1. Overall Risk Level (Low/Medium/High/Critical)
2. Key Risk Factors
3. Infrastructure Gaps
4. Market Challenges
5. Priority Action Items

Be specific and actionable.
`

const recommendationPrompt = `
Generate actionable recommendations for warehouse improvement.

Current State:
%s

Identified Issues:
%s

Benchmark Data (Similar Warehouses):
%s

Provide:
1. Top 3-5 Priority Recommendations
2. Expected Impact (High/Medium/Low)
3. Implementation Difficulty (Easy/Medium/Hard)
4. Estimated Timeline
5. Success Metrics

Focus on practical, implementable solutions.
`

const comparisonPrompt = `
Generate a comparative analysis of these warehouses.

Warehouses Data:
%s

Comparison Metrics:
%s

Provide:
1. Key Differences
2. Performance Rankings
3. Best Practices Identified
4. Areas for Improvement
5. Recommendations for Lower Performers

Use clear comparisons and data-driven insights.
`
