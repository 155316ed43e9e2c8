package diagnosis

// Recommendation is a static treatment suggestion for one disease.
type Recommendation struct {
	Medicines   []string `json:"medicines"`
	Dosage      string   `json:"dosage"`
	Precautions string   `json:"precautions"`
}

// DefaultSeverity is assumed when the caller gives none.
const DefaultSeverity = "mild"

var recommendations = map[string]Recommendation{
	"Common Cold": {
		Medicines:   []string{"Paracetamol", "Cough Syrup"},
		Dosage:      "As per doctor prescription",
		Precautions: "Take with food, avoid alcohol",
	},
	"Fever": {
		Medicines:   []string{"Paracetamol", "Ibuprofen"},
		Dosage:      "Every 6-8 hours",
		Precautions: "Monitor temperature regularly",
	},
}

var fallbackRecommendation = Recommendation{
	Medicines:   []string{"Consult doctor"},
	Dosage:      "As prescribed",
	Precautions: "Follow medical advice",
}

// Recommend looks up disease by exact name. age, weight and severity are
// accepted for interface parity and do not change the result.
func Recommend(disease string, age int, weight float64, severity string) Recommendation {
	rec, ok := recommendations[disease]
	if !ok {
		rec = fallbackRecommendation
	}
	rec.Medicines = append([]string(nil), rec.Medicines...)
	return rec
}
