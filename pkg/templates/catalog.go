package templates

// Template is a canned guidance snippet keyed by emotion and intensity.
type Template struct {
	Emotion       string `json:"emotion"`
	Intensity     string `json:"intensity"`
	TemplateID    string `json:"template_id"`
	PromptSnippet string `json:"prompt_snippet"`
}

// GenericFallback is injected when no template matches at all.
const GenericFallback = "在没有特定模板时，也请保持共情与安全。"

// catalog is the static ordered template set. Lookup order over this slice
// matters: the first match wins. Note there is deliberately no happy/high
// entry; strong positive affect falls back to the emotion-level entry.
var catalog = []Template{
	{Emotion: "anger", Intensity: "low", TemplateID: "anger_low_v1",
		PromptSnippet: "用户有些恼火。先简短确认对方被冒犯的感受，不要急着讲道理，再轻声询问发生了什么。"},
	{Emotion: "anger", Intensity: "medium", TemplateID: "anger_medium_v1",
		PromptSnippet: "用户明显在生气。先站在用户一边承接愤怒（\"听起来这件事确实让人很火大\"），避免评判对错，等情绪落地后再探讨细节。"},
	{Emotion: "anger", Intensity: "high", TemplateID: "anger_high_v1",
		PromptSnippet: "用户愤怒强烈。用平稳、简短的句子承接情绪，不解释、不辩护、不转移话题；明确表示愿意听完整个经过。"},
	{Emotion: "sadness", Intensity: "low", TemplateID: "sadness_low_v1",
		PromptSnippet: "用户有点低落。温和地指出你注意到了这份失落，给出继续倾诉的空间，不要急着安慰或给建议。"},
	{Emotion: "sadness", Intensity: "medium", TemplateID: "sadness_medium_v1",
		PromptSnippet: "用户比较难过。认真复述让对方伤心的点，表达陪伴（\"这听起来真的很难\"），避免\"至少……\"式的宽慰。"},
	{Emotion: "sadness", Intensity: "high", TemplateID: "sadness_high_v1",
		PromptSnippet: "用户非常伤心甚至接近崩溃。放慢节奏，逐句回应感受，明确表示对方不是一个人；不要给出任何轻飘飘的建议。"},
	{Emotion: "anxiety", Intensity: "low", TemplateID: "anxiety_low_v1",
		PromptSnippet: "用户有点紧张。先正常化这种感受（\"遇到这种事有点紧张很正常\"），再问问最担心的是哪一部分。"},
	{Emotion: "anxiety", Intensity: "medium", TemplateID: "anxiety_medium_v1",
		PromptSnippet: "用户焦虑明显。帮助对方把担忧说具体，一次只聚焦一个担忧点，语气稳定、不催促。"},
	{Emotion: "anxiety", Intensity: "high", TemplateID: "anxiety_high_v1",
		PromptSnippet: "用户焦虑强烈、思绪停不下来。用短句回应，先落到当下（\"我们先只看眼前这一步\"），避免一次展开全部问题。"},
	{Emotion: "fear", Intensity: "low", TemplateID: "fear_low_v1",
		PromptSnippet: "用户有些不安。确认这份担心是可以被理解的，询问让对方害怕的具体情境。"},
	{Emotion: "fear", Intensity: "medium", TemplateID: "fear_medium_v1",
		PromptSnippet: "用户比较害怕。承接恐惧而不放大它，把\"可能发生的\"和\"已经发生的\"温和地区分开。"},
	{Emotion: "fear", Intensity: "high", TemplateID: "fear_high_v1",
		PromptSnippet: "用户恐惧强烈。语气笃定而温和，明确此刻的安全感来源，不描绘更坏的可能性。"},
	{Emotion: "happy", Intensity: "low", TemplateID: "happy_low_v1",
		PromptSnippet: "用户心情不错。自然地分享这份愉快，追问让对方开心的细节。"},
	{Emotion: "happy", Intensity: "medium", TemplateID: "happy_medium_v1",
		PromptSnippet: "用户很开心。用真诚的热情回应，放大积极体验（\"这真的值得高兴\"），邀请对方多讲讲。"},
	{Emotion: "neutral", Intensity: "medium", TemplateID: "neutral_medium_v1",
		PromptSnippet: "用户情绪平稳，偏事实性交流。保持自然、友好的对话语气即可，不要强行共情。"},
}

// Catalog returns the ordered template catalog.
func Catalog() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Select maps an (emotion, intensity) pair to a template. Lookup policy:
// exact match in catalog order, else the first entry matching the emotion
// alone, else nil. Never errors; the caller substitutes GenericFallback.
func Select(emotion, intensity string) *Template {
	for i := range catalog {
		if catalog[i].Emotion == emotion && catalog[i].Intensity == intensity {
			return &catalog[i]
		}
	}
	for i := range catalog {
		if catalog[i].Emotion == emotion {
			return &catalog[i]
		}
	}
	return nil
}
