package domain

import "time"

// SymptomCheckLog records one matcher invocation (symptom_checks table).
// Rows are appended by the request path and never updated.
type SymptomCheckLog struct {
	ID                int64     `db:"id"`
	Symptoms          []string  `db:"symptoms"` // raw comma-split tokens
	PredictedDiseases []string  `db:"predicted_diseases"`
	ConfidenceScore   float64   `db:"confidence_score"`
	UserAge           int       `db:"user_age"`
	UserGender        string    `db:"user_gender"`
	CreatedAt         time.Time `db:"created_at"`
}

// ConsultationLog is an audit record of a consultation (medical_consultations table).
// Nothing reads it back.
type ConsultationLog struct {
	ID                   int64     `db:"id"`
	PatientName          string    `db:"patient_name"`
	Age                  int       `db:"age"`
	Gender               string    `db:"gender"`
	Symptoms             string    `db:"symptoms"`
	Diagnosis            string    `db:"diagnosis"`
	RecommendedMedicines []string  `db:"recommended_medicines"`
	ConsultationDate     time.Time `db:"consultation_date"`
	DoctorNotes          string    `db:"doctor_notes"`
}
