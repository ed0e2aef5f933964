package generate

import (
	"strings"
	"testing"
)

func TestBuildDraftPrompt(t *testing.T) {
	p := BuildDraftPrompt("electric aviation", []string{"F1", "F2"}, 4)
	for _, want := range []string{
		"Topic: electric aviation",
		"- F1\n- F2\n",
		`"bullets" (2-4)`,
		`"categories": ["2019","2020","2021"]`,
		"Return ONLY valid JSON.",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("draft prompt missing %q", want)
		}
	}
}

func TestBuildDraftPrompt_NoFacts(t *testing.T) {
	p := BuildDraftPrompt("x", nil, 0)
	if strings.Contains(p, "Recent facts:") {
		t.Error("fact context should be omitted when there are no facts")
	}
	if !strings.Contains(p, `"bullets" (2-3)`) {
		t.Error("depth should default to 3")
	}
}

func TestBuildPolishPrompt(t *testing.T) {
	p := BuildPolishPrompt(`{"title":"T"}`, []string{"F1"})
	if !strings.Contains(p, "keep schema intact") {
		t.Error("polish prompt missing schema instruction")
	}
	if !strings.Contains(p, `{"title":"T"}`) {
		t.Error("polish prompt missing draft JSON")
	}
	if !strings.Contains(p, "Web facts you may cite:") {
		t.Error("polish prompt missing fact context")
	}
}
