package collector

import "context"

// StaticCollector emits literal text. It has no failure mode and is used
// for fixed notes such as the appendix catalog.
type StaticCollector struct {
	description string
	text        string
}

// NewStaticCollector creates a collector that always returns text.
func NewStaticCollector(description, text string) *StaticCollector {
	return &StaticCollector{description: description, text: text}
}

// Origin returns the rendered label.
func (s *StaticCollector) Origin() string {
	return s.description
}

// Kind returns KindNote.
func (s *StaticCollector) Kind() Kind {
	return KindNote
}

// Collect returns the literal text unchanged.
func (s *StaticCollector) Collect(_ context.Context) Result {
	return TextResult(s.description, s.text)
}
