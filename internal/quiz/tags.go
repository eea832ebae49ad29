package quiz

import "sort"

// DeriveTags computes the filter vocabularies from the question
// collection. It is a pure function: callers recompute it wholesale
// whenever the collection changes instead of patching the stored
// snapshot.
func DeriveTags(questions []Question) Tags {
	years := distinctSorted(questions, func(q Question) string { return q.Year })
	// Most recent first.
	for i, j := 0, len(years)-1; i < j; i, j = i+1, j-1 {
		years[i], years[j] = years[j], years[i]
	}

	topics := map[string][]string{}
	for _, q := range questions {
		if q.Discipline == "" || q.Topic == "" {
			continue
		}
		if !contains(topics[q.Discipline], q.Topic) {
			topics[q.Discipline] = append(topics[q.Discipline], q.Topic)
		}
	}

	return Tags{
		Boards:         distinctSorted(questions, func(q Question) string { return q.Board }),
		Institutions:   distinctSorted(questions, func(q Question) string { return q.Institution }),
		ContestClasses: distinctSorted(questions, func(q Question) string { return q.ContestClass }),
		Positions:      distinctSorted(questions, func(q Question) string { return q.Position }),
		Disciplines:    distinctSorted(questions, func(q Question) string { return q.Discipline }),
		Years:          years,
		Topics:         topics,
	}
}

func distinctSorted(questions []Question, field func(Question) string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, q := range questions {
		v := field(q)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
