package domain

// SavedJobs is the set of bookmarked job ids, kept in the order they were saved.
type SavedJobs struct {
	ids []string
}

func NewSavedJobs(ids ...string) SavedJobs {
	var s SavedJobs
	for _, id := range ids {
		if id != "" && !s.Has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

func (s SavedJobs) Has(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle returns the updated set and whether id is saved after the call.
// The receiver is left untouched.
func (s SavedJobs) Toggle(id string) (SavedJobs, bool) {
	out := make([]string, 0, len(s.ids)+1)
	removed := false
	for _, v := range s.ids {
		if v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if !removed {
		out = append(out, id)
	}
	return SavedJobs{ids: out}, !removed
}

func (s SavedJobs) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s SavedJobs) Len() int { return len(s.ids) }
