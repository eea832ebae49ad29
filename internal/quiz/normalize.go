package quiz

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// NormalizeOptions converts any stored representation of a question's
// options into the canonical ordered list. Accepted shapes:
//
//   - an object mapping letter keys to answer text: {"A": "..."}
//   - a JSON-encoded string of such an object (double-encoded rows)
//   - an array of {id,label,text} already in canonical form
//
// Anything unparseable yields nil; the caller drops the question rather
// than failing the load. Object keys are sorted by letter so the
// resulting order never depends on map iteration.
func NormalizeOptions(raw []byte) []Option {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	// Double-encoded rows: a JSON string holding the real payload.
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		trimmed = bytes.TrimSpace([]byte(s))
		if len(trimmed) == 0 {
			return nil
		}
	}

	switch trimmed[0] {
	case '[':
		var opts []Option
		if err := json.Unmarshal(trimmed, &opts); err != nil {
			return nil
		}
		return opts
	case '{':
		var m map[string]string
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
		})
		opts := make([]Option, 0, len(keys))
		for _, k := range keys {
			opts = append(opts, Option{
				ID:    strings.ToLower(k),
				Label: strings.ToUpper(k),
				Text:  m[k],
			})
		}
		return opts
	}
	return nil
}

// NormalizeQuestion applies option canonicalization to a freshly loaded
// row. The second return is false when the question has no usable
// options and must be excluded from the playable set.
func NormalizeQuestion(q Question, rawOptions []byte) (Question, bool) {
	q.Options = NormalizeOptions(rawOptions)
	q.CorrectOptionID = strings.ToLower(strings.TrimSpace(q.CorrectOptionID))
	if len(q.Options) == 0 {
		return Question{}, false
	}
	return q, true
}

// FillLabels derives missing display labels from option ids and
// lowercases ids in place. Applied to AI output before storage.
func FillLabels(opts []Option) []Option {
	for i := range opts {
		opts[i].ID = strings.ToLower(strings.TrimSpace(opts[i].ID))
		if opts[i].Label == "" {
			opts[i].Label = strings.ToUpper(opts[i].ID)
		}
	}
	return opts
}
