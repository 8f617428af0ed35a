package models

// IntentPrediction is the classifier's output for a normalized utterance.
type IntentPrediction struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Tense categorizes the main verb's tense in an utterance. Values are
// the Turkish labels used directly in reflective reply templates.
type Tense string

const (
	TenseFuture      Tense = "gelecek"
	TensePast        Tense = "geçmiş"
	TensePresent     Tense = "şimdiki"
	TenseNecessity   Tense = "gereklilik"
	TenseUnspecified Tense = "belirtilmemiş"
)

// Annotation is the morphological analyzer's summary of an utterance.
// It is informational context for the handlers and never alters control
// flow.
type Annotation struct {
	Verb       string `json:"verb"`
	Tense      Tense  `json:"tense"`
	IsQuestion bool   `json:"is_question"`
}

// DefaultAnnotation returns the rule-based minimum used when the
// morphological analyzer is unavailable.
func DefaultAnnotation(isQuestion bool) *Annotation {
	return &Annotation{
		Verb:       "belirsiz",
		Tense:      TenseUnspecified,
		IsQuestion: isQuestion,
	}
}
