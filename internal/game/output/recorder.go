package output

// Recorder is a Sink that records everything it receives, for tests
// and for transcript capture.
type Recorder struct {
	Lines     []RecordedLine
	Listings  [][]ListingEntry
	Clears    int
	Chats     []RecordedChat
	Notifies  []int
	Prompts   []string
	Secrets   []string
	VPNStates []bool
	ChatOpens int
	Sequences []Sequence
}

// RecordedLine is one captured terminal line.
type RecordedLine struct {
	Style Style
	Text  string
}

// RecordedChat is one captured chat message.
type RecordedChat struct {
	Sender string
	Body   string
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) Line(style Style, text string) {
	r.Lines = append(r.Lines, RecordedLine{Style: style, Text: text})
}

func (r *Recorder) Listing(entries []ListingEntry) {
	r.Listings = append(r.Listings, entries)
}

func (r *Recorder) Clear() {
	r.Clears++
}

func (r *Recorder) Chat(sender, body string) {
	r.Chats = append(r.Chats, RecordedChat{Sender: sender, Body: body})
}

func (r *Recorder) Notify(pending int) {
	r.Notifies = append(r.Notifies, pending)
}

func (r *Recorder) Prompt(text string) {
	r.Prompts = append(r.Prompts, text)
}

func (r *Recorder) PromptSecret(text string) {
	r.Secrets = append(r.Secrets, text)
}

func (r *Recorder) VPNStatus(active bool) {
	r.VPNStates = append(r.VPNStates, active)
}

func (r *Recorder) OpenChat() {
	r.ChatOpens++
}

func (r *Recorder) Play(seq Sequence) {
	r.Sequences = append(r.Sequences, seq)
}

// LastLine returns the most recent recorded line, or a zero value when
// nothing has been written.
func (r *Recorder) LastLine() RecordedLine {
	if len(r.Lines) == 0 {
		return RecordedLine{}
	}
	return r.Lines[len(r.Lines)-1]
}
