package waterpolo

import (
	"encoding/json"
	"sort"
)

// TeamIDSet is a set of team ids. On the wire (cache files) it is a list of
// unique ids with set semantics: membership is what matters, order is not
// guaranteed. It marshals sorted so cache files are deterministic.
type TeamIDSet map[string]struct{}

// NewTeamIDSet builds a set from the given ids.
func NewTeamIDSet(ids ...string) TeamIDSet {
	s := make(TeamIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s TeamIDSet) Add(id string) {
	s[id] = struct{}{}
}

func (s TeamIDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Intersect returns a new set with the ids present in both sets.
func (s TeamIDSet) Intersect(other TeamIDSet) TeamIDSet {
	out := make(TeamIDSet)
	for id := range s {
		if other.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members as a sorted slice.
func (s TeamIDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s TeamIDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *TeamIDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewTeamIDSet(ids...)
	return nil
}
