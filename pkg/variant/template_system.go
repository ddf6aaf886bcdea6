package variant

import (
	"context"
	"fmt"
	"strings"

	"arenadb/pkg/classify"
	"arenadb/pkg/models"
	"arenadb/pkg/provider"
	"arenadb/pkg/templates"
)

// templateSystemMethod classifies the latest user utterance and injects an
// emotion-matched guidance template into the system prompt.
type templateSystemMethod struct{}

func init() { register(templateSystemMethod{}) }

func (templateSystemMethod) ID() string          { return "template_system" }
func (templateSystemMethod) DisplayName() string { return "Template System Method" }

func (templateSystemMethod) Build(ctx context.Context, mctx Context) (Result, error) {
	lastUser := latestUserMessage(mctx.Messages)

	outcome := callClassifier(ctx, mctx, lastUser)
	label := outcome.OrHeuristic(lastUser)

	tpl := templates.Select(label.Emotion, label.Intensity)
	snippet := templates.GenericFallback
	templateID := ""
	if tpl != nil {
		snippet = tpl.PromptSnippet
		templateID = tpl.TemplateID
	}

	systemContent := strings.Join([]string{
		personaPreamble,
		fmt.Sprintf("当前标签（供参考）：emotion=%s，intensity=%s，support_type=%s。",
			label.Emotion, label.Intensity, label.SupportType),
		"下面这一段是当前情绪场景下的回复策略提示，请尽可能遵循：",
		snippet,
		"以下是支持风格维度说明，请结合 support_type 调整语气与侧重：",
		supportTypeGuide,
	}, "\n\n")

	return Result{
		SystemPrompt: systemContent,
		Internal: map[string]any{
			"methodId":           "template_system",
			"emotion":            label.Emotion,
			"intensity":          label.Intensity,
			"support_type":       label.SupportType,
			"template_id":        templateID,
			"classifier_comment": label.Comment,
			"classifier_used":    outcome.OK(),
		},
	}, nil
}

func latestUserMessage(msgs []models.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == models.RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}

// callClassifier attempts one deterministic single-turn classification call.
// Every failure mode — missing client, network error, non-2xx, unusable
// output — collapses to Unavailable so the main chat flow never sees it.
func callClassifier(ctx context.Context, mctx Context, userInput string) classify.Outcome {
	if mctx.Client == nil || mctx.Client.Origin == "" {
		return classify.Unavailable()
	}
	if mctx.Model.Provider == "" || mctx.Model.Model == "" {
		return classify.Unavailable()
	}

	temperature := 0.0
	text, err := mctx.Client.Complete(ctx, mctx.Model.Provider, provider.ChatRequest{
		Model: mctx.Model.Model,
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: strings.TrimSpace(classifierSystemPrompt)},
			{Role: models.RoleUser, Content: fmt.Sprintf("用户输入：%s\n请直接输出 JSON。", userInput)},
		},
		Temperature: &temperature,
		Stream:      false,
	})
	if err != nil {
		return classify.Unavailable()
	}

	label := classify.ParseLabel(text)
	if label == nil {
		return classify.Unavailable()
	}
	return classify.Available(label)
}
