// Package output defines the sink contract between the game core and
// the presentation layer. The core computes every observable effect
// exactly once and hands it to a Sink; rendering, CSS effects, audio,
// and the narrative takeover visuals live on the other side.
package output

// Style tags a terminal line so the presentation layer can render it.
type Style string

const (
	StyleSystem    Style = "system-response"
	StyleError     Style = "error-text"
	StyleWarning   Style = "warning-text"
	StyleSuccess   Style = "success-text"
	StyleFile      Style = "file-text"
	StyleHighlight Style = "highlight-text"
	StyleChat      Style = "chat-message"
)

// EntryKind classifies a listing entry for rendering.
type EntryKind string

const (
	EntryDirectory  EntryKind = "directory"
	EntryFile       EntryKind = "file"
	EntryExecutable EntryKind = "executable"
)

// ListingEntry is one name in an ls result.
type ListingEntry struct {
	Name string
	Kind EntryKind
}

// Sequence names a full-screen narrative takeover owned by the
// presentation layer. Sequences block ordinary command entry until they
// resolve; the trap sequence ends in a forced reload.
type Sequence string

const (
	// SequenceFBIWarning is the unsecured-connection trap: typed
	// warning lines, a countdown, and a forced reload.
	SequenceFBIWarning Sequence = "fbi_warning"
	// SequenceFinalTwist is the ending reveal.
	SequenceFinalTwist Sequence = "final_twist"
)

// Sink receives every observable effect the core produces.
type Sink interface {
	// Line appends one styled line to the terminal log.
	Line(style Style, text string)
	// Listing appends an ls result.
	Listing(entries []ListingEntry)
	// Clear empties the terminal log.
	Clear()
	// Chat posts a message to the chat panel.
	Chat(sender, body string)
	// Notify updates the unread chat counter shown in the taskbar.
	Notify(pending int)
	// Prompt replaces the terminal prompt.
	Prompt(text string)
	// PromptSecret replaces the prompt and masks the next input line.
	PromptSecret(text string)
	// VPNStatus updates the taskbar VPN indicator.
	VPNStatus(active bool)
	// OpenChat opens or toggles the chat panel.
	OpenChat()
	// Play starts a narrative takeover sequence.
	Play(seq Sequence)
}
