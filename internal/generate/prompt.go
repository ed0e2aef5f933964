package generate

import (
	"fmt"
	"strings"
)

// DraftSystemPrompt sets the persona for the initial generation pass.
const DraftSystemPrompt = "You are a senior strategy consultant. Output ONLY valid JSON."

// PolishSystemPrompt sets the persona for the wording-polish pass. The
// schema must survive the rewrite intact.
const PolishSystemPrompt = "You are a senior editor at a consulting firm. " +
	"Polish the JSON deck for clarity, conciseness, and tone. " +
	"Keep schema identical: title, overview, slides[type,title,topics[subtitle,bullets,sources,chart,table]], conclusion. " +
	"Each topic may optionally include 'chart' or 'table'. " +
	"If included, keep data small (2-6 points). " +
	"Every topic must have 'sources'."

const deckSchema = `{
  "title": "...",
  "overview": "...",
  "slides": [
    {
      "type": "Market Trends",
      "title": "...",
      "topics": [
        {
          "subtitle": "...",
          "bullets": ["..."],
          "sources": ["..."],
          "chart": {
            "type": "bar",
            "title": "Example",
            "categories": ["2019","2020","2021"],
            "values": [2.5,3.1,4.0]
          },
          "table": {
            "headers": ["Region","Sales"],
            "rows": [["NA","1200"],["EU","950"]]
          }
        }
      ]
    }
  ],
  "conclusion": "..."
}`

// BuildDraftPrompt creates the user prompt for the initial generation
// pass, embedding the topic, any accumulated facts, and the target
// schema. depth bounds the bullets requested per topic.
func BuildDraftPrompt(topic string, facts []string, depth int) string {
	if depth < 2 {
		depth = 3
	}
	var sb strings.Builder
	sb.WriteString("Create a professional 8-12 slide business deck.\n\n")
	fmt.Fprintf(&sb, "Topic: %s\n", topic)
	sb.WriteString(factContext("Recent facts:", facts))
	sb.WriteString("\nRules:\n")
	sb.WriteString("- Each slide has 2-4 topics.\n")
	fmt.Fprintf(&sb, "- Each topic has: \"subtitle\", \"bullets\" (2-%d), \"sources\".\n", depth)
	sb.WriteString(`- Optionally include a small "chart" or "table" if relevant.
- Charts:
  - Must include BOTH "categories" and "values".
  - categories and values must have the same length.
  - Use 2-6 data points maximum.
- Tables:
  - Must include "headers" and 2-5 rows.
  - Keep rows short and numeric/textual.

Schema:
`)
	sb.WriteString(deckSchema)
	sb.WriteString("\n\nReturn ONLY valid JSON.")
	return sb.String()
}

// BuildPolishPrompt creates the user prompt for the polish pass around
// the draft deck JSON.
func BuildPolishPrompt(draftJSON string, facts []string) string {
	var sb strings.Builder
	sb.WriteString("Here is a draft slide deck in JSON.\n")
	sb.WriteString("Polish wording, ensure sources, and keep schema intact.\n")
	sb.WriteString(factContext("Web facts you may cite:", facts))
	sb.WriteString("\n")
	sb.WriteString(draftJSON)
	return sb.String()
}

func factContext(heading string, facts []string) string {
	if len(facts) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(heading)
	sb.WriteString("\n")
	for _, fact := range facts {
		sb.WriteString("- ")
		sb.WriteString(fact)
		sb.WriteString("\n")
	}
	return sb.String()
}
