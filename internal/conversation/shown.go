package conversation

import "inmobot/internal/model"

// ShownSet remembers which listing URLs were already suggested, in order
type ShownSet struct {
	urls []string
	seen map[string]bool
}

// Pick returns the first candidate not shown yet and records it. When every
// candidate was already shown the set restarts from the first candidate, so
// a suggestion is surfaced whenever any exists.
func (s *ShownSet) Pick(candidates []model.Suggestion) (model.Suggestion, bool) {
	if len(candidates) == 0 {
		return model.Suggestion{}, false
	}
	if s.seen == nil {
		s.seen = map[string]bool{}
	}

	for _, c := range candidates {
		if !s.seen[c.URL] {
			s.add(c.URL)
			return c, true
		}
	}

	first := candidates[0]
	s.urls = nil
	s.seen = map[string]bool{}
	s.add(first.URL)
	return first, true
}

// URLs returns the shown URLs, oldest first
func (s *ShownSet) URLs() []string {
	out := make([]string, len(s.urls))
	copy(out, s.urls)
	return out
}

func (s *ShownSet) add(url string) {
	s.urls = append(s.urls, url)
	s.seen[url] = true
}
