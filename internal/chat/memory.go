package chat

import (
	"strings"
	"sync"
)

// DefaultHistoryDepth is how many exchanges the conversation memory
// retains.
const DefaultHistoryDepth = 5

// referenceMarkers are the anaphora cues that let a turn without an
// explicit entity inherit the previous one ("peki akbank", "onun fiyatı").
var referenceMarkers = []string{"peki", "ya", "onun", "bu", "o da", "aynısı", "ne kadar", "ne olur"}

// HasReference reports whether the utterance contains a back-reference
// cue.
func HasReference(text string) bool {
	lowered := turkishLower.String(text)
	for _, marker := range referenceMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// Exchange is one completed question/answer pair.
type Exchange struct {
	Question string
	Answer   string
}

// Memory is the per-session conversation state: the last resolved
// entity, the last dispatched intent and a bounded exchange history.
// Safe for concurrent use.
type Memory struct {
	mu         sync.Mutex
	lastEntity string
	lastIntent string
	history    []Exchange
	depth      int
}

// NewMemory creates a memory retaining up to depth exchanges.
func NewMemory(depth int) *Memory {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &Memory{depth: depth}
}

// Update records a completed turn. Empty entity or intent leaves the
// previous value in place.
func (m *Memory) Update(entity, intent, question, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entity != "" {
		m.lastEntity = entity
	}
	if intent != "" {
		m.lastIntent = intent
	}
	m.history = append(m.history, Exchange{Question: question, Answer: answer})
	if len(m.history) > m.depth {
		m.history = m.history[len(m.history)-m.depth:]
	}
}

// LastEntity returns the most recently resolved instrument code.
func (m *Memory) LastEntity() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastEntity
}

// LastIntent returns the most recently dispatched intent label.
func (m *Memory) LastIntent() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastIntent
}

// History returns a copy of the retained exchanges, oldest first.
func (m *Memory) History() []Exchange {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Exchange, len(m.history))
	copy(out, m.history)
	return out
}

// Reset clears all conversation state.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastEntity = ""
	m.lastIntent = ""
	m.history = nil
}
