package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/miragecorp/mirageos/internal/game"
	"github.com/miragecorp/mirageos/internal/game/output"
	"github.com/miragecorp/mirageos/internal/platform/id"
	"github.com/miragecorp/mirageos/internal/services/terminal/storage"
)

const (
	maxFramePayloadBytes   = 16 * 1024
	maxFramesPerSecond     = 40
	maxDecodeErrorsPerConn = 3

	maxInputRunes = 512
)

type wsFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wsError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type inputPayload struct {
	Line string `json:"line"`
}

type chatPayload struct {
	Body string `json:"body"`
}

type wifiPayload struct {
	Network string `json:"network"`
}

type linePayload struct {
	Style string `json:"style"`
	Text  string `json:"text"`
}

type listingPayload struct {
	Entries []listingEntry `json:"entries"`
}

type listingEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type chatMessagePayload struct {
	Sender string `json:"sender"`
	Body   string `json:"body"`
}

type notifyPayload struct {
	Pending int `json:"pending"`
}

type promptPayload struct {
	Text string `json:"text"`
}

type vpnPayload struct {
	Active bool `json:"active"`
}

type playPayload struct {
	Sequence string `json:"sequence"`
}

// wsPeer serializes frame writes. The run loop and the reader goroutine
// can both write error frames.
type wsPeer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func newWSPeer(encoder *json.Encoder) *wsPeer {
	return &wsPeer{encoder: encoder}
}

func (p *wsPeer) writeFrame(frame wsFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(frame)
}

func writeWSError(peer *wsPeer, code string, message string) error {
	return peer.writeFrame(wsFrame{
		Type:    "error",
		Payload: mustJSON(wsError{Code: code, Message: message}),
	})
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("terminal: marshal websocket frame payload: %v", err)
		return nil
	}
	return b
}

// wsSink renders game effects as server frames.
type wsSink struct {
	peer *wsPeer
}

var _ output.Sink = (*wsSink)(nil)

func (s *wsSink) send(frameType string, payload any) {
	frame := wsFrame{Type: frameType}
	if payload != nil {
		frame.Payload = mustJSON(payload)
	}
	if err := s.peer.writeFrame(frame); err != nil {
		log.Printf("terminal: write %s frame: %v", frameType, err)
	}
}

func (s *wsSink) Line(style output.Style, text string) {
	s.send("line", linePayload{Style: string(style), Text: text})
}

func (s *wsSink) Listing(entries []output.ListingEntry) {
	payload := listingPayload{Entries: make([]listingEntry, 0, len(entries))}
	for _, entry := range entries {
		payload.Entries = append(payload.Entries, listingEntry{
			Name: entry.Name,
			Kind: string(entry.Kind),
		})
	}
	s.send("listing", payload)
}

func (s *wsSink) Clear() {
	s.send("clear", nil)
}

func (s *wsSink) Chat(sender, body string) {
	s.send("chat", chatMessagePayload{Sender: sender, Body: body})
}

func (s *wsSink) Notify(pending int) {
	s.send("notify", notifyPayload{Pending: pending})
}

func (s *wsSink) Prompt(text string) {
	s.send("prompt", promptPayload{Text: text})
}

func (s *wsSink) PromptSecret(text string) {
	s.send("prompt_secret", promptPayload{Text: text})
}

func (s *wsSink) VPNStatus(active bool) {
	s.send("vpn", vpnPayload{Active: active})
}

func (s *wsSink) OpenChat() {
	s.send("open_chat", nil)
}

func (s *wsSink) Play(seq output.Sequence) {
	s.send("play", playPayload{Sequence: string(seq)})
}

// journalSink copies terminal lines and chat messages into the
// transcript store on their way to the peer. Write failures are logged
// and never block play.
type journalSink struct {
	output.Sink
	journal   storage.TranscriptStore
	sessionID string
}

func (s *journalSink) record(entry storage.Entry) {
	entry.SessionID = s.sessionID
	if err := s.journal.AppendEntry(context.Background(), entry); err != nil {
		log.Printf("terminal: transcript write failed: %v", err)
	}
}

func (s *journalSink) Line(style output.Style, text string) {
	s.record(storage.Entry{Kind: storage.KindLine, Actor: string(style), Body: text})
	s.Sink.Line(style, text)
}

func (s *journalSink) Chat(sender, body string) {
	s.record(storage.Entry{Kind: storage.KindChat, Actor: sender, Body: body})
	s.Sink.Chat(sender, body)
}

func newWSHandler(journal storage.TranscriptStore, chatSeed int64) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		handleWSConn(conn, journal, chatSeed)
	})
}

func handleWSConn(conn *websocket.Conn, journal storage.TranscriptStore, chatSeed int64) {
	defer func() {
		_ = conn.Close()
	}()

	sessionID, err := id.NewID()
	if err != nil {
		log.Printf("terminal: mint session id: %v", err)
		return
	}

	peer := newWSPeer(json.NewEncoder(conn))
	var sink output.Sink = &wsSink{peer: peer}

	var js *journalSink
	if journal != nil {
		js = &journalSink{Sink: sink, journal: journal, sessionID: sessionID}
		sink = js
	}

	inst := game.New(sink, game.Options{ChatSeed: chatSeed})
	log.Printf("terminal: session %s connected remote=%s", sessionID, conn.Request().RemoteAddr)
	inst.Start()

	frames := make(chan wsFrame)
	readDone := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go readFrames(conn, peer, frames, readDone, quit)

	ticker := time.NewTicker(game.TickInterval)
	defer ticker.Stop()

	windowStart := time.Now()
	framesInWindow := 0

	for {
		select {
		case <-readDone:
			log.Printf("terminal: session %s disconnected", sessionID)
			return
		case <-ticker.C:
			inst.Tick()
		case frame := <-frames:
			now := time.Now()
			if now.Sub(windowStart) >= time.Second {
				windowStart = now
				framesInWindow = 0
			}
			framesInWindow++
			if framesInWindow > maxFramesPerSecond {
				_ = writeWSError(peer, "RESOURCE_EXHAUSTED", "rate limit exceeded")
				return
			}
			dispatchFrame(inst, js, peer, frame)
		}
	}
}

// readFrames decodes client frames on a dedicated goroutine so the run
// loop can keep ticking while the connection idles.
func readFrames(conn *websocket.Conn, peer *wsPeer, frames chan<- wsFrame, done chan<- struct{}, quit <-chan struct{}) {
	defer close(done)

	decoder := json.NewDecoder(conn)
	decodeErrors := 0
	for {
		var frame wsFrame
		if err := decoder.Decode(&frame); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			decodeErrors++
			_ = writeWSError(peer, "INVALID_ARGUMENT", "invalid frame payload")
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		if len(frame.Payload) > maxFramePayloadBytes {
			_ = writeWSError(peer, "INVALID_ARGUMENT", "payload too large")
			continue
		}
		select {
		case frames <- frame:
		case <-quit:
			return
		}
	}
}

func dispatchFrame(inst *game.Instance, js *journalSink, peer *wsPeer, frame wsFrame) {
	switch frame.Type {
	case "input":
		var payload inputPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			_ = writeWSError(peer, "INVALID_ARGUMENT", "invalid input payload")
			return
		}
		if len([]rune(payload.Line)) > maxInputRunes {
			_ = writeWSError(peer, "INVALID_ARGUMENT", "input line too long")
			return
		}
		if js != nil {
			js.record(storage.Entry{Kind: storage.KindCommand, Body: payload.Line})
		}
		inst.HandleInput(payload.Line)
	case "chat":
		var payload chatPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			_ = writeWSError(peer, "INVALID_ARGUMENT", "invalid chat payload")
			return
		}
		if len([]rune(payload.Body)) > maxInputRunes {
			_ = writeWSError(peer, "INVALID_ARGUMENT", "chat message too long")
			return
		}
		inst.HandleChatMessage(payload.Body)
	case "vpn_toggle":
		inst.ToggleVPN()
	case "open_chat":
		inst.OpenChat()
	case "wifi":
		var payload wifiPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			_ = writeWSError(peer, "INVALID_ARGUMENT", "invalid wifi payload")
			return
		}
		inst.SelectWifi(payload.Network)
	default:
		_ = writeWSError(peer, "INVALID_ARGUMENT", "unsupported frame type")
	}
}
