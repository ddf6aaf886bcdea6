package provider

import "strings"

// CompletionPath maps a provider name to its chat-completions path on the
// gateway. A small fixed table covers known OpenAI-compatible providers;
// anything else is routed through the generic per-provider pattern rather
// than rejected, so power users can address providers the gateway already
// knows about.
func CompletionPath(provider string) string {
	p := strings.ToLower(provider)
	switch p {
	case "openai":
		return "/api/openai/v1/chat/completions"
	case "xai":
		return "/api/xai/v1/chat/completions"
	case "moonshot":
		return "/api/moonshot/v1/chat/completions"
	case "siliconflow":
		return "/api/siliconflow/v1/chat/completions"
	case "302ai", "302.ai", "302":
		return "/api/302ai/v1/chat/completions"
	case "deepseek":
		// DeepSeek serves /chat/completions without the /v1 segment.
		return "/api/deepseek/chat/completions"
	default:
		return "/api/" + p + "/v1/chat/completions"
	}
}
