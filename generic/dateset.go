package generic

// DateSet counts distinct calendar days. Adding the same day twice is a no-op,
// so two segments on one day count as one day.
type DateSet struct {
	keys map[string]struct{}
}

func NewDateSet() *DateSet {
	return &DateSet{keys: make(map[string]struct{})}
}

func (s *DateSet) Add(d Date) {
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
	s.keys[d.Key()] = struct{}{}
}

func (s *DateSet) Len() int { return len(s.keys) }
