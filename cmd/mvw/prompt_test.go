package main

import (
	"errors"
	"strings"
	"testing"

	"mvw/internal/review"
)

func TestPrompterStarDefaultOnEmpty(t *testing.T) {
	var out strings.Builder
	p := newTerminalPrompter(strings.NewReader("\n"), &out)

	star, err := p.Star(2.5)
	if err != nil {
		t.Fatalf("Star: %v", err)
	}
	if star != 2.5 {
		t.Errorf("empty input should keep the default, got %v", star)
	}
}

func TestPrompterStarRejectsOutOfRange(t *testing.T) {
	var out strings.Builder
	p := newTerminalPrompter(strings.NewReader("seven\n6\n4.5\n"), &out)

	star, err := p.Star(2.5)
	if err != nil {
		t.Fatalf("Star: %v", err)
	}
	if star != 4.5 {
		t.Errorf("expected the first valid entry, got %v", star)
	}
	if !strings.Contains(out.String(), "between 0.0 and 5.0") {
		t.Errorf("expected a range hint after bad input:\n%s", out.String())
	}
}

func TestPrompterReviewKeepsCurrentOnEmpty(t *testing.T) {
	var out strings.Builder
	p := newTerminalPrompter(strings.NewReader("\n"), &out)

	text, err := p.Review("old text")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if text != "old text" {
		t.Errorf("empty input should keep the current review, got %q", text)
	}
	if !strings.Contains(out.String(), "old text") {
		t.Errorf("current review should be shown before the prompt:\n%s", out.String())
	}
}

func TestPrompterAbortsOnEOF(t *testing.T) {
	var out strings.Builder
	p := newTerminalPrompter(strings.NewReader(""), &out)

	if _, err := p.Star(2.5); !errors.Is(err, review.ErrAborted) {
		t.Errorf("EOF should abort, got %v", err)
	}
}
