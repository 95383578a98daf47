package llm

import (
	"strings"
	"testing"
)

func TestRewriteMessages(t *testing.T) {
	system, user := RewriteMessages("Jane Doe\nEngineer")

	if !strings.HasPrefix(system, "You are an expert resume writer.") {
		t.Fatalf("unexpected system message: %q", system)
	}
	if user != "Enhance this resume content for ATS optimization:\n\nJane Doe\nEngineer" {
		t.Fatalf("unexpected user message: %q", user)
	}
}

func TestCoachPrompt(t *testing.T) {
	got := CoachPrompt("resume body")

	if !strings.HasPrefix(got, "You are an expert career coach and resume optimizer.") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if !strings.HasSuffix(got, "better ATS compatibility:\n\nresume body") {
		t.Fatalf("unexpected suffix: %q", got)
	}
	if strings.Contains(got, resumePlaceholder) {
		t.Fatalf("placeholder not replaced")
	}
}
