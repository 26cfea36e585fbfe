// Package game assembles one player's session: filesystem shell, story
// engine, scheduler, and chat responder behind a single coordinator.
//
// An Instance is single-threaded by contract. The transport owns it from
// one goroutine: input frames, chat frames, and the tick all run through
// the same loop, so nothing here locks.
package game

import (
	"math/rand"
	"time"

	"github.com/miragecorp/mirageos/internal/platform/id"

	"github.com/miragecorp/mirageos/internal/game/chat"
	"github.com/miragecorp/mirageos/internal/game/output"
	"github.com/miragecorp/mirageos/internal/game/session"
	"github.com/miragecorp/mirageos/internal/game/shell"
	"github.com/miragecorp/mirageos/internal/game/story"
)

// TickInterval is the cadence the transport drives Tick at.
const TickInterval = time.Second

// Options tune an instance. The zero value is production behavior.
type Options struct {
	// Now overrides the clock, for tests.
	Now func() time.Time
	// ChatSeed seeds the responder and hint picks. Zero means a
	// time-based seed.
	ChatSeed int64
}

// Instance is one player's complete game.
type Instance struct {
	sess      *session.Session
	sink      output.Sink
	sched     *story.Scheduler
	engine    *story.Engine
	shell     *shell.Shell
	responder *chat.Responder
}

// New builds a game instance writing all effects to sink.
func New(sink output.Sink, opts Options) *Instance {
	seed := opts.ChatSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	inst := &Instance{
		sess:      session.New(),
		sink:      sink,
		sched:     story.NewScheduler(opts.Now),
		responder: chat.NewResponder(seed),
	}
	inst.shell = shell.New(inst.sess, sink, inst.sched)
	inst.shell.PostChat = inst.PostChat

	script := story.NewScript(inst.sess, sink, inst.sched, inst.PostChat,
		rand.New(rand.NewSource(seed)))
	inst.engine = story.NewEngine(inst.sess, opts.Now, script.Events())
	return inst
}

// Session exposes the live session state, for transports and journals.
func (inst *Instance) Session() *session.Session {
	return inst.sess
}

// Start renders the initial state: prompt, taskbar indicators, and the
// chatroom welcome.
func (inst *Instance) Start() {
	inst.sink.Prompt(inst.sess.Prompt())
	inst.sink.VPNStatus(inst.sess.VPNActive)

	welcome := session.ChatMessage{
		ID:        newMessageID(),
		Sender:    chat.PersonaSystem,
		Body:      chat.WelcomeBody,
		Timestamp: time.Now(),
	}
	inst.sess.AppendChat(welcome)
	inst.sink.Chat(welcome.Sender, welcome.Body)
}

// HandleInput interprets one terminal line and fires any story events
// the command unlocked.
func (inst *Instance) HandleInput(line string) {
	inst.shell.Execute(line)
	inst.engine.Evaluate()
}

// HandleChatMessage records the player's chat message and schedules the
// scripted reply.
func (inst *Instance) HandleChatMessage(body string) {
	if body == "" {
		return
	}

	inst.sess.AppendChat(session.ChatMessage{
		ID:        newMessageID(),
		Sender:    "You",
		Body:      body,
		Timestamp: time.Now(),
	})

	reply := inst.responder.Respond(body)
	inst.sched.After(reply.Delay, func() {
		inst.PostChat(reply.Sender, reply.Body)
	})
}

// PostChat delivers a story or responder message: chat log, unread
// counter, panel, and a terminal mirror for the named personas.
func (inst *Instance) PostChat(sender, body string) {
	inst.sess.AppendChat(session.ChatMessage{
		ID:        newMessageID(),
		Sender:    sender,
		Body:      body,
		Timestamp: time.Now(),
	})
	inst.sink.Chat(sender, body)
	inst.sink.Notify(inst.sess.AddNotification())

	if sender == chat.PersonaAnon || sender == chat.PersonaFBI {
		inst.sink.Line(output.StyleChat, "💬 "+sender+": "+body)
	}
}

// OpenChat clears the unread counter when the player opens the panel.
func (inst *Instance) OpenChat() {
	inst.sess.ClearNotifications()
	inst.sink.Notify(0)
}

// ToggleVPN flips the tunnel from the taskbar.
func (inst *Instance) ToggleVPN() {
	active, err := inst.sess.ToggleVPN()
	if err != nil {
		inst.sink.Line(output.StyleError, "VPN not configured. Run vpn_setup.sh as root.")
		return
	}

	inst.sink.VPNStatus(active)
	if active {
		inst.sink.Line(output.StyleSuccess, "VPN connected to MirageTunnel")
	} else {
		inst.sink.Line(output.StyleWarning, "VPN disconnected")
	}
}

// SelectWifi switches the taskbar WiFi network.
func (inst *Instance) SelectWifi(network string) {
	if network == "" {
		return
	}
	inst.sess.WifiNetwork = network
	inst.sink.Line(output.StyleSystem, "Connected to WiFi network: "+network)

	if network == "FBI-Surveillance-Van" {
		inst.sched.After(time.Second, func() {
			inst.sink.Line(output.StyleWarning, "WARNING: Suspicious network detected!")
		})
	}
}

// Tick advances time-based story events and releases due continuations.
// The transport calls it on TickInterval.
func (inst *Instance) Tick() {
	inst.engine.Evaluate()
	inst.sched.RunDue()
}

// Over reports whether the game has reached an ending.
func (inst *Instance) Over() bool {
	return inst.shell.Locked()
}

// newMessageID returns a fresh chat message identifier. IDs are
// cosmetic, so a generator failure degrades to an empty ID rather than
// failing the message.
func newMessageID() string {
	v, err := id.NewID()
	if err != nil {
		return ""
	}
	return v
}
