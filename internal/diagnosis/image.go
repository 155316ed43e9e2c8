package diagnosis

// ImageAnalysis is the result of inspecting an uploaded image.
type ImageAnalysis struct {
	Analysis    string   `json:"analysis"`
	Suggestions []string `json:"suggestions"`
}

// AnalyzeImage does not inspect data; it always returns the same placeholder.
func AnalyzeImage(_ []byte) ImageAnalysis {
	return ImageAnalysis{
		Analysis:    "Image analysis not implemented yet",
		Suggestions: []string{"Consult a healthcare professional for proper diagnosis"},
	}
}
