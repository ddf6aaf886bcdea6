package labels

import "strings"

// Fixed enumerations for classifier output. The classifier prompt promises
// exactly these values; anything else is rejected at validation.
const (
	EmotionAnger   = "anger"
	EmotionSadness = "sadness"
	EmotionAnxiety = "anxiety"
	EmotionFear    = "fear"
	EmotionHappy   = "happy"
	EmotionNeutral = "neutral"

	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"

	SupportEmotional = "emotional"
	SupportPractical = "practical"
	SupportBoth      = "both"
)

var allowedEmotions = map[string]struct{}{
	EmotionAnger:   {},
	EmotionSadness: {},
	EmotionAnxiety: {},
	EmotionFear:    {},
	EmotionHappy:   {},
	EmotionNeutral: {},
}

var allowedIntensities = map[string]struct{}{
	IntensityLow:    {},
	IntensityMedium: {},
	IntensityHigh:   {},
}

var allowedSupportTypes = map[string]struct{}{
	SupportEmotional: {},
	SupportPractical: {},
	SupportBoth:      {},
}

// Label is a validated classification of a user utterance.
type Label struct {
	Emotion     string `json:"emotion"`
	Intensity   string `json:"intensity"`
	SupportType string `json:"support_type"`
	Comment     string `json:"comment"`
}

// Normalize lowercases and trims a raw label field value.
func Normalize(v any) string {
	s, _ := v.(string)
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks a parsed generic object against the fixed enumerations and
// returns nil when any required field is missing or out of enumeration. This
// is the only place that decides whether model output is trustworthy. The
// neutral⇒medium coercion is applied after membership checks, so a source
// claiming neutral/high still passes but comes out neutral/medium.
func Validate(obj map[string]any) *Label {
	if obj == nil {
		return nil
	}
	emotion := Normalize(obj["emotion"])
	intensity := Normalize(obj["intensity"])
	supportType := Normalize(obj["support_type"])
	comment, _ := obj["comment"].(string)

	if _, ok := allowedEmotions[emotion]; !ok {
		return nil
	}
	if _, ok := allowedIntensities[intensity]; !ok {
		return nil
	}
	if _, ok := allowedSupportTypes[supportType]; !ok {
		return nil
	}

	if emotion == EmotionNeutral {
		intensity = IntensityMedium
	}

	return &Label{
		Emotion:     emotion,
		Intensity:   intensity,
		SupportType: supportType,
		Comment:     strings.TrimSpace(comment),
	}
}
