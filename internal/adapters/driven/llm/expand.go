// Package llm holds helpers shared by the LLM service adapters.
package llm

import "strings"

// ParseExpandedQueries turns raw model output into an ordered query set for
// retrieval. The model is asked for one query per line, but real output
// drifts: numbering, bullets, blank lines, or the original question echoed
// back. The result always starts with the original question, contains no
// duplicates (case-insensitive), and holds at most n generated variants
// after the original.
func ParseExpandedQueries(raw, question string, n int) []string {
	queries := []string{question}
	seen := map[string]bool{strings.ToLower(strings.TrimSpace(question)): true}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = trimListMarker(line)
		if line == "" {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		queries = append(queries, line)
		if len(queries) > n {
			break
		}
	}

	return queries
}

// trimListMarker strips leading bullets or numbering like "- ", "* ",
// "1. ", "2)".
func trimListMarker(line string) string {
	trimmed := strings.TrimLeft(line, "-*• \t")
	// Numbered markers: digits followed by '.' or ')'.
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i > 0 && i < len(trimmed) && (trimmed[i] == '.' || trimmed[i] == ')') {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimSpace(trimmed)
}
