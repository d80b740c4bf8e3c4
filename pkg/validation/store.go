package validation

// errorStore maps field identity to its current message, in enumeration order.
// A field without an entry is valid.
type errorStore struct {
	order    []FieldID
	messages map[FieldID]string
}

func newErrorStore() *errorStore {
	return &errorStore{messages: make(map[FieldID]string)}
}

// set records the message for id, replacing any previous one.
func (s *errorStore) set(id FieldID, message string) {
	if _, ok := s.messages[id]; !ok {
		s.order = append(s.order, id)
	}
	s.messages[id] = message
}

func (s *errorStore) remove(id FieldID) {
	if _, ok := s.messages[id]; !ok {
		return
	}
	delete(s.messages, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *errorStore) get(id FieldID) (string, bool) {
	m, ok := s.messages[id]
	return m, ok
}

func (s *errorStore) len() int { return len(s.order) }

// list returns messages in the store's order.
func (s *errorStore) list() []string {
	out := make([]string, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.messages[id])
	}
	return out
}

// reorder sorts entries to follow ids; entries not listed keep their relative order at the end.
func (s *errorStore) reorder(ids []FieldID) {
	next := make([]FieldID, 0, len(s.order))
	seen := make(map[FieldID]bool, len(s.order))
	for _, id := range ids {
		if _, ok := s.messages[id]; ok && !seen[id] {
			next = append(next, id)
			seen[id] = true
		}
	}
	for _, id := range s.order {
		if !seen[id] {
			next = append(next, id)
		}
	}
	s.order = next
}
