package classify

import (
	"strings"

	"arenadb/pkg/labels"
)

// Keyword tables for the deterministic fallback path. Order matters: the
// first matching category wins, mirroring the tuned tables of the research
// scripts this replaces.
var emotionKeywords = []struct {
	emotion  string
	keywords []string
}{
	{labels.EmotionAnger, []string{"生气", "愤怒", "恼火", "气死", "讨厌", "被气"}},
	{labels.EmotionSadness, []string{"伤心", "难过", "失落", "心凉", "崩溃", "想哭"}},
	{labels.EmotionAnxiety, []string{"焦虑", "紧张", "担心", "慌", "压力"}},
	{labels.EmotionFear, []string{"害怕", "恐惧", "担心会发生", "害怕会"}},
	{labels.EmotionHappy, []string{"开心", "高兴", "喜悦", "激动", "满足"}},
	{labels.EmotionNeutral, []string{"嗯", "只是", "最近", "没有"}},
}

var highIntensityKeywords = []string{"撑不住", "快崩溃", "绝望", "要死", "受不了", "崩溃了"}

var lowIntensityKeywords = []string{"有点", "有些", "有一点", "有点儿", "稍微"}

var practicalKeywords = []string{"怎么办", "要不要", "怎样处理", "如何", "建议"}

var emotionalKeywords = []string{"想找人说", "想倾诉", "陪我", "听我说"}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// DetectEmotion returns the first keyword-matched emotion, default neutral.
func DetectEmotion(text string) string {
	t := strings.ToLower(text)
	for _, e := range emotionKeywords {
		if containsAny(t, e.keywords) {
			return e.emotion
		}
	}
	return labels.EmotionNeutral
}

// DetectIntensity matches the high set first, then the low set, else medium.
func DetectIntensity(text string) string {
	t := strings.ToLower(text)
	if containsAny(t, highIntensityKeywords) {
		return labels.IntensityHigh
	}
	if containsAny(t, lowIntensityKeywords) {
		return labels.IntensityLow
	}
	return labels.IntensityMedium
}

// DetectSupportType matches the practical set first, then the emotional set,
// else both.
func DetectSupportType(text string) string {
	t := strings.ToLower(text)
	if containsAny(t, practicalKeywords) {
		return labels.SupportPractical
	}
	if containsAny(t, emotionalKeywords) {
		return labels.SupportEmotional
	}
	return labels.SupportBoth
}

// Heuristic classifies the latest user utterance with no network access. It
// is fully deterministic and always succeeds; this is the required safety net
// when the model classifier is unreachable or returns unusable output.
func Heuristic(text string) labels.Label {
	emotion := DetectEmotion(text)
	intensity := DetectIntensity(text)
	if emotion == labels.EmotionNeutral {
		intensity = labels.IntensityMedium
	}
	return labels.Label{
		Emotion:     emotion,
		Intensity:   intensity,
		SupportType: DetectSupportType(text),
	}
}
