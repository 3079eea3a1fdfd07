package analysis

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractSnippetsWindowAndMarkers(t *testing.T) {
	messages := []Message{
		msg("Dana", "Is there vegetarian food available?"),
	}

	snippets := extractSnippets(messages, []string{"vegetarian"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 snippet, got %d", len(snippets))
	}
	s := snippets[0]
	if s.From != "Dana" {
		t.Errorf("From = %q, want Dana", s.From)
	}
	if !strings.HasPrefix(s.Text, "...") || !strings.HasSuffix(s.Text, "...") {
		t.Errorf("Snippet missing ellipsis markers: %q", s.Text)
	}
	if !strings.Contains(s.Text, "vegetarian") {
		t.Errorf("Snippet missing keyword: %q", s.Text)
	}
}

func TestExtractSnippetsClampsToBounds(t *testing.T) {
	// Match at the very start of a short message: the window would
	// extend past both ends of the string.
	snippets := extractSnippets([]Message{msg("Ana", "vegan?")}, []string{"vegan"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 snippet, got %d", len(snippets))
	}
	if snippets[0].Text != "...vegan?..." {
		t.Errorf("Snippet = %q, want %q", snippets[0].Text, "...vegan?...")
	}
}

func TestExtractSnippetsMultibyteCaseFolding(t *testing.T) {
	// Lower-casing 'İ' grows the string, so byte offsets computed on the
	// folded text do not line up with the original. The excerpt must
	// still carry the keyword and stay valid UTF-8.
	messages := []Message{
		msg("Ana", strings.Repeat("İ", 30) + " vegan option?"),
	}

	snippets := extractSnippets(messages, []string{"vegan"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 snippet, got %d", len(snippets))
	}
	if !strings.Contains(snippets[0].Text, "vegan") {
		t.Errorf("Snippet missing keyword: %q", snippets[0].Text)
	}
	if !utf8.ValidString(snippets[0].Text) {
		t.Errorf("Snippet is not valid UTF-8: %q", snippets[0].Text)
	}
}

func TestExtractSnippetsDeduplicates(t *testing.T) {
	// Identical text from two senders produces identical excerpts; only
	// the first occurrence survives.
	messages := []Message{
		msg("Ana", "any vegan food?"),
		msg("Ben", "any vegan food?"),
	}

	snippets := extractSnippets(messages, []string{"vegan"})

	if len(snippets) != 1 {
		t.Fatalf("Expected 1 deduplicated snippet, got %d", len(snippets))
	}
	if snippets[0].From != "Ana" {
		t.Errorf("From = %q, want first sender Ana", snippets[0].From)
	}
}

func TestExtractSnippetsCap(t *testing.T) {
	messages := []Message{
		msg("Ana", "first about vegan meals"),
		msg("Ben", "second about gluten free"),
		msg("Cat", "third about dessert choices"),
		msg("Dan", "fourth about the menu"),
		msg("Eve", "fifth about snack tables"),
	}

	snippets := extractSnippets(messages, []string{"vegan", "gluten", "dessert", "menu", "snack"})

	if len(snippets) != maxSnippets {
		t.Errorf("Expected %d snippets, got %d", maxSnippets, len(snippets))
	}
}

func TestExtractSnippetsNoMatches(t *testing.T) {
	snippets := extractSnippets([]Message{msg("Ana", "hello")}, []string{"vegan"})

	if len(snippets) != 0 {
		t.Errorf("Expected no snippets, got %d", len(snippets))
	}
	if snippets == nil {
		t.Error("Expected empty slice, not nil")
	}
}
