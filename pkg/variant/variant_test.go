package variant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arenadb/pkg/models"
	"arenadb/pkg/provider"
)

func TestResolveBaselineAndSystem(t *testing.T) {
	res, err := Resolve(context.Background(), Spec{Mode: ModeBaseline}, Context{})
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	if res.SystemPrompt != "" {
		t.Fatalf("baseline must resolve to empty prompt, got %q", res.SystemPrompt)
	}

	res, err = Resolve(context.Background(), Spec{Mode: ModeSystem, SystemPrompt: "  be terse  "}, Context{})
	if err != nil {
		t.Fatalf("system: %v", err)
	}
	if res.SystemPrompt != "be terse" {
		t.Fatalf("expected trimmed literal, got %q", res.SystemPrompt)
	}
}

func TestResolveUnknownMethod(t *testing.T) {
	_, err := Resolve(context.Background(), Spec{Mode: ModeMethod, MethodID: "nope"}, Context{})
	if !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
	if _, err := Resolve(context.Background(), Spec{Mode: "wild"}, Context{}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestSpecValidate(t *testing.T) {
	if err := (Spec{Mode: ModeBaseline}).Validate(); err != nil {
		t.Fatalf("baseline: %v", err)
	}
	if err := (Spec{Mode: ModeMethod}).Validate(); err == nil {
		t.Fatalf("method without id must fail validation")
	}
	if err := (Spec{Mode: "x"}).Validate(); err == nil {
		t.Fatalf("unknown mode must fail validation")
	}
}

func TestTemplateSystemFallsBackWhenClassifierUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	mctx := Context{
		Messages: []models.Message{{Role: models.RoleUser, Content: "有点紧张"}},
		Model:    models.ModelRef{Provider: "openai", Model: "gpt-x"},
		Client:   &provider.Client{Origin: srv.URL},
	}
	res, err := Resolve(context.Background(), Spec{Mode: ModeMethod, MethodID: "template_system"}, mctx)
	if err != nil {
		t.Fatalf("classifier failure must not surface: %v", err)
	}
	if res.Internal["classifier_used"] != false {
		t.Fatalf("expected heuristic path, internal=%v", res.Internal)
	}
	if res.Internal["emotion"] != "anxiety" || res.Internal["intensity"] != "low" {
		t.Fatalf("unexpected heuristic labels: %v", res.Internal)
	}
	if !strings.Contains(res.SystemPrompt, "emotion=anxiety") {
		t.Fatalf("labels missing from prompt: %q", res.SystemPrompt)
	}
}

func TestTemplateSystemUsesValidatedClassifierOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Temperature *float64         `json:"temperature"`
			Messages    []models.Message `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Temperature == nil || *req.Temperature != 0 {
			t.Errorf("classifier call must pin temperature to 0, got %v", req.Temperature)
		}
		if len(req.Messages) != 2 {
			t.Errorf("classifier call must be single-turn, got %d messages", len(req.Messages))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{
				"content": "推理中...\n{\"emotion\":\"sadness\",\"intensity\":\"high\",\"support_type\":\"emotional\",\"comment\":\"明显悲伤\"}",
			}}},
		})
	}))
	defer srv.Close()

	mctx := Context{
		Messages: []models.Message{
			{Role: models.RoleUser, Content: "最近怎么样"},
			{Role: models.RoleAssistant, Content: "还好"},
			{Role: models.RoleUser, Content: "我真的很难过"},
		},
		Model:  models.ModelRef{Provider: "openai", Model: "gpt-x"},
		Client: &provider.Client{Origin: srv.URL},
	}
	res, err := Resolve(context.Background(), Spec{Mode: ModeMethod, MethodID: "template_system"}, mctx)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Internal["classifier_used"] != true {
		t.Fatalf("expected classifier path, internal=%v", res.Internal)
	}
	if res.Internal["emotion"] != "sadness" || res.Internal["intensity"] != "high" {
		t.Fatalf("unexpected labels: %v", res.Internal)
	}
	if res.Internal["template_id"] != "sadness_high_v1" {
		t.Fatalf("unexpected template: %v", res.Internal["template_id"])
	}
	if res.Internal["classifier_comment"] != "明显悲伤" {
		t.Fatalf("comment not carried: %v", res.Internal)
	}
}

func TestTemplateSystemWithoutClient(t *testing.T) {
	mctx := Context{
		Messages: []models.Message{{Role: models.RoleUser, Content: "气死我了"}},
		Model:    models.ModelRef{Provider: "openai", Model: "gpt-x"},
	}
	res, err := Resolve(context.Background(), Spec{Mode: ModeMethod, MethodID: "template_system"}, mctx)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Internal["emotion"] != "anger" {
		t.Fatalf("expected heuristic anger, got %v", res.Internal)
	}
}
