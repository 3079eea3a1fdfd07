package analysis

import "testing"

func TestClassifyTopicsOrdering(t *testing.T) {
	// food: 2 hits, logistics: 2 hits, timing: 1 hit. Equal counts fall
	// back to declaration order, so food sorts before logistics.
	messages := []Message{
		msg("Ana", "what food should we eat"),
		msg("Ben", "where is the venue parking"),
		msg("Cat", "when do we begin"),
	}

	ranked := classifyTopics(messages)

	want := []string{"food", "logistics", "timing"}
	if len(ranked) != len(want) {
		t.Fatalf("Expected %d topics, got %d", len(want), len(ranked))
	}
	for i, id := range want {
		if ranked[i].topic.id != id {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].topic.id, id)
		}
	}
	if ranked[0].hits != 2 || ranked[1].hits != 2 || ranked[2].hits != 1 {
		t.Errorf("Unexpected hit counts: %d, %d, %d", ranked[0].hits, ranked[1].hits, ranked[2].hits)
	}
}

func TestClassifyTopicsCountsHitsNotMessages(t *testing.T) {
	// One message with three food keywords contributes three hits
	ranked := classifyTopics([]Message{
		msg("Ana", "the food menu needs more drink options"),
	})

	if len(ranked) != 1 {
		t.Fatalf("Expected 1 topic, got %d", len(ranked))
	}
	if ranked[0].topic.id != "food" {
		t.Fatalf("Expected food, got %s", ranked[0].topic.id)
	}
	if ranked[0].hits != 3 {
		t.Errorf("hits = %d, want 3 (food, menu, drink)", ranked[0].hits)
	}
}

func TestClassifyTopicsEmptyInput(t *testing.T) {
	if ranked := classifyTopics(nil); len(ranked) != 0 {
		t.Errorf("Expected no topics for empty input, got %d", len(ranked))
	}
}

func TestClassifyTopicsCaseInsensitive(t *testing.T) {
	ranked := classifyTopics([]Message{
		msg("Ana", "FOOD AND PARKING QUESTIONS"),
	})

	ids := make(map[string]bool)
	for _, th := range ranked {
		ids[th.topic.id] = true
	}
	if !ids["food"] || !ids["logistics"] {
		t.Errorf("Expected food and logistics topics, got %v", ids)
	}
}
