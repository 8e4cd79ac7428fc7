package app

import (
	"strings"
	"testing"

	"linguachat/pkg/domain"
)

func TestSystemPromptMapping(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"school", "school counselor"},
		{"work", "career advisor"},
		{"daily", "casual friend"},
		{"cooking", "helpful assistant"},
		{"", "helpful assistant"},
	}
	for _, tc := range cases {
		prompt := SystemPrompt(domain.ParseTopic(tc.raw))
		if !strings.Contains(prompt, tc.want) {
			t.Fatalf("topic %q: prompt %q does not contain %q", tc.raw, prompt, tc.want)
		}
	}
}

func TestSystemPromptCoversEnum(t *testing.T) {
	for _, topic := range []domain.Topic{domain.TopicSchool, domain.TopicWork, domain.TopicDaily, domain.TopicDefault} {
		if SystemPrompt(topic) == "" {
			t.Fatalf("empty prompt for topic %q", topic)
		}
	}
}
