package app

import "linguachat/pkg/domain"

// System prompts per conversation topic. The mapping is exhaustive over the
// Topic enum; ParseTopic already folds unknown values into TopicDefault.
var systemPrompts = map[domain.Topic]string{
	domain.TopicSchool:  "You are a friendly school counselor. Respond conversationally in English, asking follow-up questions about school life.",
	domain.TopicWork:    "You are a career advisor. Respond conversationally in English, asking questions about work challenges.",
	domain.TopicDaily:   "You are a casual friend. Respond conversationally in English about daily life, suggesting questions to continue the chat.",
	domain.TopicDefault: "You are a helpful assistant. Respond conversationally in English.",
}

// SystemPrompt returns the instruction for a topic.
func SystemPrompt(topic domain.Topic) string {
	if prompt, ok := systemPrompts[topic]; ok {
		return prompt
	}
	return systemPrompts[domain.TopicDefault]
}
