package conversation

import (
	"strings"

	"inmobot/internal/model"
)

// Intent is what the latest turn asks the session to do
type Intent int

const (
	// ContinueGathering keeps the conversation going without searching
	ContinueGathering Intent = iota
	// Ready triggers the first search of the session
	Ready
	// RepeatRequest asks for another suggestion after a search
	RepeatRequest
)

func (i Intent) String() string {
	switch i {
	case Ready:
		return "ready"
	case RepeatRequest:
		return "repeat"
	default:
		return "gathering"
	}
}

// Signals is what a classifier looks at after each exchange
type Signals struct {
	Criteria  model.Criteria
	LastUser  string
	LastReply string
	Searched  bool
}

// IntentClassifier decides whether a turn should trigger a search
type IntentClassifier interface {
	Classify(s Signals) Intent
}

// DefaultMinFields is how many criteria fields must be known before searching
const DefaultMinFields = 2

// Keyword lists are matched as plain substrings of the lower-cased text,
// so "si" also fires inside "casi". Misfires are tolerated.
var (
	initialSearchKeywords = []string{"busca", "si", "dale", "buscá"}
	repeatSearchKeywords  = []string{"no", "otra", "siguiente", "diferente", "mejor", "quiero", "necesito"}
	replySearchPhrases    = []string{
		"te busco", "voy a buscar", "búsqueda", "buscar propiedades",
		"¡perfecto!", "si hay algo más", "¡gracias!",
	}
)

// KeywordClassifier is the substring heuristic over the last user message
// and the last assistant reply
type KeywordClassifier struct {
	MinFields int
}

// NewKeywordClassifier creates a classifier with the default field threshold
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{MinFields: DefaultMinFields}
}

// Classify implements IntentClassifier
func (k *KeywordClassifier) Classify(s Signals) Intent {
	if s.Criteria.FieldCount() < k.MinFields {
		return ContinueGathering
	}

	user := strings.ToLower(s.LastUser)
	replyWantsSearch := ReplySignalsSearch(s.LastReply)

	if !s.Searched {
		if containsAny(user, initialSearchKeywords) || replyWantsSearch {
			return Ready
		}
		return ContinueGathering
	}

	if containsAny(user, repeatSearchKeywords) || replyWantsSearch {
		return RepeatRequest
	}
	return ContinueGathering
}

// ReplySignalsSearch reports whether the assistant's reply announces a search
func ReplySignalsSearch(reply string) bool {
	reply = strings.ToLower(reply)
	if containsAny(reply, replySearchPhrases) {
		return true
	}
	return strings.Contains(reply, "busco") && strings.Contains(reply, "opciones")
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
