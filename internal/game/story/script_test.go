package story

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/miragecorp/mirageos/internal/game/chat"
	"github.com/miragecorp/mirageos/internal/game/output"
	"github.com/miragecorp/mirageos/internal/game/session"
)

type scriptFixture struct {
	clock  *fakeClock
	sess   *session.Session
	sink   *output.Recorder
	sched  *Scheduler
	engine *Engine
	chats  []output.RecordedChat
}

func newScriptFixture(t *testing.T) *scriptFixture {
	t.Helper()
	f := &scriptFixture{
		clock: &fakeClock{now: time.Unix(0, 0)},
		sess:  session.New(),
		sink:  &output.Recorder{},
	}
	f.sched = NewScheduler(f.clock.Now)
	script := NewScript(f.sess, f.sink, f.sched, func(sender, body string) {
		f.chats = append(f.chats, output.RecordedChat{Sender: sender, Body: body})
	}, rand.New(rand.NewSource(1)))
	f.engine = NewEngine(f.sess, f.clock.Now, script.Events())
	return f
}

// tick advances the clock one second and runs one loop iteration.
func (f *scriptFixture) tick() {
	f.clock.Advance(time.Second)
	f.engine.Evaluate()
	f.sched.RunDue()
}

func TestEtcLogsHintAfterSixtySeconds(t *testing.T) {
	f := newScriptFixture(t)

	for i := 0; i < 59; i++ {
		f.tick()
	}
	if len(f.sink.Lines) != 0 {
		t.Fatalf("hint appeared early: %v", f.sink.Lines)
	}

	f.tick()
	line := f.sink.LastLine()
	if line.Style != output.StyleHighlight {
		t.Fatalf("hint style = %q", line.Style)
	}
	if !strings.Contains(line.Text, "/etc/logs") {
		t.Fatalf("hint text = %q", line.Text)
	}
}

func TestEtcLogsHintSkippedAfterProgress(t *testing.T) {
	f := newScriptFixture(t)
	f.sess.Advance(session.StageLocalRoot)

	for i := 0; i < 70; i++ {
		f.tick()
	}
	for _, line := range f.sink.Lines {
		if strings.Contains(line.Text, "/etc/logs") {
			t.Fatalf("stale hint fired after progression: %q", line.Text)
		}
	}
}

func TestRootHintViewedFiresImmediately(t *testing.T) {
	f := newScriptFixture(t)

	f.sess.Discover("/etc/logs/root_hint.txt")
	f.engine.Evaluate()

	line := f.sink.LastLine()
	if !strings.Contains(line.Text, "sudo su") {
		t.Fatalf("line = %q, want the sudo su nudge", line.Text)
	}
}

func TestProgressBeatsArriveAfterDelay(t *testing.T) {
	f := newScriptFixture(t)

	f.sess.Advance(session.StageLocalRoot)
	f.engine.Evaluate()
	if len(f.sink.Lines) != 0 {
		t.Fatalf("beat arrived with no delay: %v", f.sink.Lines)
	}

	f.tick()
	line := f.sink.LastLine()
	if !strings.Contains(line.Text, "/root and /admin") {
		t.Fatalf("line = %q", line.Text)
	}
}

func TestRemoteGuestBeatPostsFBIChat(t *testing.T) {
	f := newScriptFixture(t)
	f.sess.Advance(session.StageLocalRoot)
	f.sess.Advance(session.StageLocalAdmin)
	for i := 0; i < 5; i++ {
		f.tick()
	}

	f.sess.Advance(session.StageRemoteGuest)
	f.engine.Evaluate()
	base := len(f.chats)

	f.tick()
	f.tick()
	if len(f.chats) != base {
		t.Fatalf("chat arrived early: %v", f.chats[base:])
	}
	f.tick()
	if len(f.chats) != base+1 {
		t.Fatalf("chats = %v, want one more", f.chats[base:])
	}
	got := f.chats[len(f.chats)-1]
	if got.Sender != chat.PersonaFBI {
		t.Fatalf("sender = %q, want %q", got.Sender, chat.PersonaFBI)
	}
	if got.Body != "You really think this ends with him?" {
		t.Fatalf("body = %q", got.Body)
	}
}

func TestLocalRootBeatPostsAnonWarning(t *testing.T) {
	f := newScriptFixture(t)

	f.sess.Advance(session.StageLocalRoot)
	f.engine.Evaluate()

	f.tick()
	if len(f.chats) != 0 {
		t.Fatalf("chat arrived early: %v", f.chats)
	}
	f.tick()
	if len(f.chats) != 1 {
		t.Fatalf("chats = %v, want one", f.chats)
	}
	if f.chats[0] != (output.RecordedChat{Sender: chat.WarningLine.Sender, Body: chat.WarningLine.Body}) {
		t.Fatalf("chat = %v", f.chats[0])
	}
}

func TestVaultDiscoveryPostsAnonChat(t *testing.T) {
	f := newScriptFixture(t)

	f.sess.Discover("/root/vault/mirage_auth.bak")
	f.engine.Evaluate()
	if len(f.chats) != 0 {
		t.Fatalf("chat arrived early: %v", f.chats)
	}

	f.tick()
	if len(f.chats) != 1 {
		t.Fatalf("chats = %v, want one", f.chats)
	}
	if f.chats[0].Body != chat.DiscoveryLine.Body {
		t.Fatalf("body = %q", f.chats[0].Body)
	}
}

func TestRemoteRootBeatsPostBetrayalThenFinalWarning(t *testing.T) {
	f := newScriptFixture(t)
	f.sess.Advance(session.StageLocalRoot)
	f.sess.Advance(session.StageLocalAdmin)
	f.sess.ConnectRemote()
	for i := 0; i < 10; i++ {
		f.tick()
	}
	base := len(f.chats)

	f.sess.BecomeRoot()
	f.engine.Evaluate()

	f.tick()
	f.tick()
	if len(f.chats) != base+1 {
		t.Fatalf("chats after two ticks = %v", f.chats[base:])
	}
	if f.chats[base].Body != chat.BetrayalLine.Body {
		t.Fatalf("first beat = %v", f.chats[base])
	}
	f.tick()
	f.tick()
	if len(f.chats) != base+2 {
		t.Fatalf("chats after four ticks = %v", f.chats[base:])
	}
	last := f.chats[len(f.chats)-1]
	if last != (output.RecordedChat{Sender: chat.FinalWarningLine.Sender, Body: chat.FinalWarningLine.Body}) {
		t.Fatalf("final beat = %v", last)
	}
}

func TestAnonWarningAtTwoMinutesWhenStuck(t *testing.T) {
	f := newScriptFixture(t)

	for i := 0; i < 120; i++ {
		f.tick()
	}

	found := false
	for _, msg := range f.chats {
		if msg.Sender == chat.PersonaAnon && strings.Contains(msg.Body, "Stop digging") {
			found = true
		}
	}
	if !found {
		t.Fatalf("chats = %v, want the anon warning", f.chats)
	}
}

func TestProvideHintMatchesStagePool(t *testing.T) {
	f := newScriptFixture(t)
	script := NewScript(f.sess, f.sink, f.sched, nil, rand.New(rand.NewSource(1)))

	script.ProvideHint()
	line := f.sink.LastLine()
	if !strings.HasPrefix(line.Text, "HINT: ") {
		t.Fatalf("line = %q", line.Text)
	}
	body := strings.TrimPrefix(line.Text, "HINT: ")
	found := false
	for _, hint := range stageHints[session.StageLocalGuest] {
		if body == hint {
			found = true
		}
	}
	if !found {
		t.Fatalf("hint %q not in the local guest pool", body)
	}
}

func TestProvideHintTracksProgress(t *testing.T) {
	f := newScriptFixture(t)
	script := NewScript(f.sess, f.sink, f.sched, nil, rand.New(rand.NewSource(1)))

	f.sess.Advance(session.StageLocalRoot)
	f.sess.Advance(session.StageLocalAdmin)
	f.sess.ConnectRemote()
	f.sess.BecomeRoot()

	script.ProvideHint()
	body := strings.TrimPrefix(f.sink.LastLine().Text, "HINT: ")
	found := false
	for _, hint := range stageHints[session.StageRemoteRoot] {
		if body == hint {
			found = true
		}
	}
	if !found {
		t.Fatalf("hint %q not in the remote root pool", body)
	}
}
