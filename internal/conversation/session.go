package conversation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"inmobot/internal/extractor"
	"inmobot/internal/model"
)

// Greeting opens every session
const Greeting = "¡Hola! Soy tu asistente inmobiliario. Para poder ayudarte a encontrar la propiedad perfecta, necesito conocer un poco más sobre lo que estás buscando.\n\n¿Qué tipo de propiedad te interesa? Por ejemplo: apartamento, casa, terreno, oficina, etc."

// SuggestionIntro introduces a property card
const SuggestionIntro = "¡Encontré una propiedad que podría interesarte! Mirá:"

// DefaultRankLimit is how many candidates each search asks for
const DefaultRankLimit = 5

// State is where a session stands in the search flow
type State int

const (
	Gathering State = iota
	ReadyToSearch
	Searched
)

func (s State) String() string {
	switch s {
	case ReadyToSearch:
		return "ready_to_search"
	case Searched:
		return "searched"
	default:
		return "gathering"
	}
}

// API is the part of the assistant HTTP API a session calls
type API interface {
	Chat(ctx context.Context, messages []model.ChatMessage) (string, error)
	UpsertProfile(ctx context.Context, req model.ProfileUpsertRequest) (string, error)
	Rank(ctx context.Context, req model.RankRequest) (*model.RankResponse, error)
}

// Turn is the outcome of one user message
type Turn struct {
	Reply          string
	Intent         Intent
	Criteria       model.Criteria
	Suggestion     *model.Suggestion
	Degraded       bool
	DegradedReason string
}

// Options configures a session. Zero values pick the defaults.
type Options struct {
	UserID     string
	Limit      int
	Extractor  extractor.Extractor
	Classifier IntentClassifier
	Logger     *zap.Logger
}

// Session drives one conversation. It lives in memory only and is not safe
// for concurrent use.
type Session struct {
	api        API
	extractor  extractor.Extractor
	classifier IntentClassifier
	userID     string
	limit      int
	logger     *zap.Logger

	history   []model.ChatMessage
	state     State
	profileID string
	shown     ShownSet
	last      *model.Suggestion
}

// NewSession creates a session talking to api
func NewSession(api API, opts Options) *Session {
	s := &Session{
		api:        api,
		extractor:  opts.Extractor,
		classifier: opts.Classifier,
		userID:     opts.UserID,
		limit:      opts.Limit,
		logger:     opts.Logger,
	}
	if s.extractor == nil {
		s.extractor = extractor.NewRuleExtractor()
	}
	if s.classifier == nil {
		s.classifier = NewKeywordClassifier()
	}
	if s.limit < 1 {
		s.limit = DefaultRankLimit
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Greeting returns the opening message
func (s *Session) Greeting() string {
	return Greeting
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// ProfileID returns the cached profile id, empty before the first search
func (s *Session) ProfileID() string {
	return s.profileID
}

// UserID returns the id the session registers profiles under
func (s *Session) UserID() string {
	return s.userID
}

// LastSuggestion returns the most recent card shown, if any
func (s *Session) LastSuggestion() (model.Suggestion, bool) {
	if s.last == nil {
		return model.Suggestion{}, false
	}
	return *s.last, true
}

// History returns a copy of the conversation so far
func (s *Session) History() []model.ChatMessage {
	out := make([]model.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// Send processes one user message. If the chat call fails nothing is
// recorded and the turn is nil. If the search fails the exchange is kept
// and the turn carries the reply alongside the error.
func (s *Session) Send(ctx context.Context, text string) (*Turn, error) {
	pending := append(s.History(), model.ChatMessage{Role: model.RoleUser, Content: text})

	reply, err := s.api.Chat(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("chat failed: %w", err)
	}

	s.history = append(pending, model.ChatMessage{Role: model.RoleAssistant, Content: reply})

	criteria := s.extractor.Extract(ctx, extractor.ConversationText(s.history))
	intent := s.classifier.Classify(Signals{
		Criteria:  criteria,
		LastUser:  text,
		LastReply: reply,
		Searched:  s.state == Searched,
	})

	turn := &Turn{Reply: reply, Intent: intent, Criteria: criteria}
	s.logger.Debug("turn classified",
		zap.String("intent", intent.String()),
		zap.Int("criteria_fields", criteria.FieldCount()),
	)

	if intent == ContinueGathering {
		return turn, nil
	}

	s.state = ReadyToSearch
	if err := s.search(ctx, criteria, turn); err != nil {
		return turn, err
	}
	return turn, nil
}

func (s *Session) search(ctx context.Context, criteria model.Criteria, turn *Turn) error {
	s.state = Searched

	if s.profileID == "" {
		id, err := s.api.UpsertProfile(ctx, model.ProfileUpsertRequest{
			UserID:      s.userID,
			ProfileText: s.profileText(),
			Filtros:     criteria.AsMap(),
		})
		if err != nil {
			return fmt.Errorf("profile upsert failed: %w", err)
		}
		s.profileID = id
		s.logger.Info("profile created", zap.String("profile_id", id))
	}

	limit := s.limit
	resp, err := s.api.Rank(ctx, model.RankRequest{ProfileID: s.profileID, Limit: &limit})
	if err != nil {
		return fmt.Errorf("rank failed: %w", err)
	}

	turn.Degraded = resp.Degraded
	turn.DegradedReason = resp.DegradedReason
	if pick, ok := s.shown.Pick(resp.Suggestions); ok {
		turn.Suggestion = &pick
		s.last = &pick
	}
	return nil
}

// ShownURLs returns the listing URLs suggested so far
func (s *Session) ShownURLs() []string {
	return s.shown.URLs()
}

func (s *Session) profileText() string {
	parts := make([]string, 0, len(s.history))
	for _, m := range s.history {
		if m.Role == model.RoleUser {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// Apology is the message shown in place of a failed turn
func Apology(err error) string {
	return fmt.Sprintf("Disculpá, hubo un error. %s", err.Error())
}
