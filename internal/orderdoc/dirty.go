package orderdoc

import "sort"

// DirtySet tracks which lines carry edits that the server has not
// confirmed yet. It stores line identity keys only; it never looks at
// field values. Marking is idempotent.
type DirtySet struct {
	keys map[string]struct{}
}

// NewDirtySet creates an empty dirty set.
func NewDirtySet() *DirtySet {
	return &DirtySet{keys: make(map[string]struct{})}
}

// Mark records the line as having unsaved edits.
func (s *DirtySet) Mark(key string) {
	s.keys[key] = struct{}{}
}

// Unmark removes the line from the set. This is bookkeeping only; the
// line's field values are left untouched.
func (s *DirtySet) Unmark(key string) {
	delete(s.keys, key)
}

// IsDirty reports whether the line has unsaved edits.
func (s *DirtySet) IsDirty(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of dirty lines.
func (s *DirtySet) Len() int {
	return len(s.keys)
}

// Keys returns the dirty line keys in a stable order.
func (s *DirtySet) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clear empties the set. Called once per successful save cycle, after
// reconciliation has replaced the document with server truth.
func (s *DirtySet) Clear() {
	s.keys = make(map[string]struct{})
}

func (s *DirtySet) snapshot() map[string]struct{} {
	cp := make(map[string]struct{}, len(s.keys))
	for k := range s.keys {
		cp[k] = struct{}{}
	}
	return cp
}

func (s *DirtySet) restore(snap map[string]struct{}) {
	s.keys = snap
}
