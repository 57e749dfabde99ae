package session

// Display is the presentation collaborator the controller drives. Every
// method is a one-way notification; the controller never reads widget state
// beyond the current display text, which it owns.
type Display interface {
	SetDisplayText(text string)
	GetDisplayText() string
	SetPreviewText(text string)
	SetMemoryIndicator(set bool)
	AppendHistoryEntry(entry string)
	ClearHistory()
	FlashError()
	SetAllControlsEnabled(enabled, keepAllClearEnabled bool)
}

// maxHistory caps the retained history entries, most recent first.
const maxHistory = 50

// Recorder is an in-memory Display. The HTTP layer snapshots it after each
// command; tests assert against it directly.
type Recorder struct {
	display      string
	preview      string
	memory       bool
	history      []string
	flashes      int
	enabled      bool
	allClearOnly bool
}

// NewRecorder returns a Recorder with every control enabled.
func NewRecorder() *Recorder {
	return &Recorder{enabled: true}
}

func (r *Recorder) SetDisplayText(text string)  { r.display = text }
func (r *Recorder) GetDisplayText() string      { return r.display }
func (r *Recorder) SetPreviewText(text string)  { r.preview = text }
func (r *Recorder) SetMemoryIndicator(set bool) { r.memory = set }

func (r *Recorder) AppendHistoryEntry(entry string) {
	r.history = append([]string{entry}, r.history...)
	if len(r.history) > maxHistory {
		r.history = r.history[:maxHistory]
	}
}

func (r *Recorder) ClearHistory() { r.history = nil }

func (r *Recorder) FlashError() { r.flashes++ }

func (r *Recorder) SetAllControlsEnabled(enabled, keepAllClearEnabled bool) {
	r.enabled = enabled
	r.allClearOnly = !enabled && keepAllClearEnabled
}

// DisplayText returns the current display buffer.
func (r *Recorder) DisplayText() string { return r.display }

// PreviewText returns the pending-operation preview line.
func (r *Recorder) PreviewText() string { return r.preview }

// MemoryIndicator reports whether the memory register holds a value.
func (r *Recorder) MemoryIndicator() bool { return r.memory }

// History returns a copy of the retained entries, most recent first.
func (r *Recorder) History() []string {
	out := make([]string, len(r.history))
	copy(out, r.history)
	return out
}

// Flashes returns how many soft-rejection or error flashes were signalled.
func (r *Recorder) Flashes() int { return r.flashes }

// ControlsEnabled reports whether controls are enabled, and whether only
// all-clear remains usable.
func (r *Recorder) ControlsEnabled() (enabled, allClearOnly bool) {
	return r.enabled, r.allClearOnly
}
