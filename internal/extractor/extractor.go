package extractor

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"inmobot/internal/model"
)

// Extractor turns free conversation text into structured search criteria.
// Implementations never fail: anything they cannot recognise stays unset.
type Extractor interface {
	Extract(ctx context.Context, text string) model.Criteria
}

// ConversationText joins the user's messages, lower-cased. Assistant and
// system messages are left out so the model's own suggestions never leak
// into the criteria.
func ConversationText(messages []model.ChatMessage) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		if m.Role != model.RoleUser {
			continue
		}
		parts = append(parts, m.Content)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Extractor modes accepted by New
const (
	ModeRules = "rules"
	ModeModel = "model"
)

// New picks the extractor for mode. The model mode needs a completer; without
// one it falls back to the rules with a warning.
func New(mode string, completer Completer, logger *zap.Logger) Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	rules := NewRuleExtractor()
	if mode != ModeModel {
		return rules
	}
	if completer == nil {
		logger.Warn("model extractor requested without a model client, using rules")
		return rules
	}
	return NewModelExtractor(completer, rules, logger)
}
