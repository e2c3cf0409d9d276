package core

// HistoryManager records, per history pseudo-state, the configuration that
// was active under its parent region at the moment that region was last
// exited. Shallow history remembers only the direct active child; deep
// history remembers every active descendant. The interpreter is
// single-threaded, so unlike the teacher's HistoryManager this needs no
// mutex.
type HistoryManager struct {
	shallow map[string]string   // history state name -> active direct child name
	deep    map[string][]string // history state name -> active descendant names
}

// NewHistoryManager creates an empty HistoryManager.
func NewHistoryManager() *HistoryManager {
	return &HistoryManager{
		shallow: make(map[string]string),
		deep:    make(map[string][]string),
	}
}

// RecordShallow remembers activeChild as the region's active direct child
// when history is exited.
func (h *HistoryManager) RecordShallow(history string, activeChild string) {
	h.shallow[history] = activeChild
}

// RecordDeep remembers descendants as the region's full active descendant
// set when history is exited.
func (h *HistoryManager) RecordDeep(history string, descendants []string) {
	cp := make([]string, len(descendants))
	copy(cp, descendants)
	h.deep[history] = cp
}

// RestoreShallow returns the remembered direct child for history, if any.
func (h *HistoryManager) RestoreShallow(history string) (string, bool) {
	child, ok := h.shallow[history]
	return child, ok
}

// RestoreDeep returns the remembered descendant set for history, if any.
func (h *HistoryManager) RestoreDeep(history string) ([]string, bool) {
	descendants, ok := h.deep[history]
	if !ok {
		return nil, false
	}
	cp := make([]string, len(descendants))
	copy(cp, descendants)
	return cp, true
}

// Clear forgets any recorded memory for history.
func (h *HistoryManager) Clear(history string) {
	delete(h.shallow, history)
	delete(h.deep, history)
}

// Reset forgets all recorded history, used when the interpreter restarts.
func (h *HistoryManager) Reset() {
	h.shallow = make(map[string]string)
	h.deep = make(map[string][]string)
}
