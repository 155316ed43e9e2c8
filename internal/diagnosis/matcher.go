// Package diagnosis holds the keyword symptom matcher, the static medicine
// recommender and the image analysis placeholder. All functions are pure.
package diagnosis

import (
	"sort"
	"strings"
)

// PlaceholderConfidence is recorded for every symptom check; no score is computed.
const PlaceholderConfidence = 0.75

// keywordDiseases maps a symptom keyword to the diseases it suggests.
var keywordDiseases = map[string][]string{
	"fever":    {"Common Cold", "Flu", "Malaria"},
	"headache": {"Migraine", "Tension Headache", "Cluster Headache"},
	"cough":    {"Common Cold", "Bronchitis", "Pneumonia"},
	"nausea":   {"Food Poisoning", "Gastritis", "Motion Sickness"},
}

// SplitSymptoms splits raw symptom text on commas without trimming, which is
// how the text is logged.
func SplitSymptoms(symptoms string) []string {
	return strings.Split(symptoms, ",")
}

// MatchDiseases returns the distinct diseases whose keyword occurs inside any
// comma-separated token of symptoms, case-insensitively. The result is sorted
// and never nil.
func MatchDiseases(symptoms string) []string {
	seen := map[string]struct{}{}
	for _, token := range strings.Split(strings.ToLower(symptoms), ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		for keyword, diseases := range keywordDiseases {
			if !strings.Contains(token, keyword) {
				continue
			}
			for _, d := range diseases {
				seen[d] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Keywords lists the symptom keywords the matcher understands, sorted.
func Keywords() []string {
	out := make([]string, 0, len(keywordDiseases))
	for k := range keywordDiseases {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
