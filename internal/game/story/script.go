package story

import (
	"math/rand"
	"time"

	"github.com/miragecorp/mirageos/internal/game/chat"
	"github.com/miragecorp/mirageos/internal/game/output"
	"github.com/miragecorp/mirageos/internal/game/session"
	"github.com/miragecorp/mirageos/internal/game/vfs"
)

// Script binds the fixed narrative beats to one session. PostChat must
// append the message to the chat log, raise an unread notification, and
// mirror the line into the terminal.
type Script struct {
	Session  *session.Session
	Sink     output.Sink
	Sched    *Scheduler
	PostChat func(sender, body string)

	rng *rand.Rand
}

// NewScript wires a script to its session. A nil rng uses a time seed.
func NewScript(sess *session.Session, sink output.Sink, sched *Scheduler, postChat func(sender, body string), rng *rand.Rand) *Script {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Script{
		Session:  sess,
		Sink:     sink,
		Sched:    sched,
		PostChat: postChat,
		rng:      rng,
	}
}

// Events returns the narrative event table. Timed hints confirm the
// player is still stuck before they speak; progress beats arrive a
// moment after the transition so they read as a reaction.
func (sc *Script) Events() []*Event {
	return []*Event{
		{
			Name:    "etc_logs_hint",
			Kind:    TimeElapsed,
			Seconds: 60,
			Action: func() {
				if sc.Session.Progress() == session.StageLocalGuest {
					sc.Sink.Line(output.StyleHighlight, "HINT: Check the /etc/logs directory for useful information.")
				}
			},
		},
		{
			Name: "root_hint_found",
			Kind: FileViewed,
			Path: vfs.RootHintPath,
			Action: func() {
				sc.Sink.Line(output.StyleHighlight, `You found something interesting! Try "sudo su" with this password.`)
			},
		},
		{
			Name:  "local_root_reached",
			Kind:  ProgressReached,
			Stage: session.StageLocalRoot,
			Action: func() {
				sc.Sched.After(time.Second, func() {
					sc.Sink.Line(output.StyleHighlight, "New directories are now accessible. Try exploring /root and /admin")
				})
				sc.Sched.After(2*time.Second, func() {
					sc.PostChat(chat.WarningLine.Sender, chat.WarningLine.Body)
				})
			},
		},
		{
			Name: "vault_found",
			Kind: FileViewed,
			Path: vfs.VaultAuthPath,
			Action: func() {
				sc.Sched.After(time.Second, func() {
					sc.PostChat(chat.DiscoveryLine.Sender, chat.DiscoveryLine.Body)
				})
			},
		},
		{
			Name:  "local_admin_reached",
			Kind:  ProgressReached,
			Stage: session.StageLocalAdmin,
			Action: func() {
				sc.Sched.After(time.Second, func() {
					sc.Sink.Line(output.StyleHighlight, "VPN is now active. Check /root/vault for connection details.")
				})
			},
		},
		{
			Name:  "remote_guest_reached",
			Kind:  ProgressReached,
			Stage: session.StageRemoteGuest,
			Action: func() {
				sc.Sched.After(3*time.Second, func() {
					sc.PostChat(chat.PersonaFBI, "You really think this ends with him?")
				})
			},
		},
		{
			Name:  "remote_root_reached",
			Kind:  ProgressReached,
			Stage: session.StageRemoteRoot,
			Action: func() {
				sc.Sched.After(time.Second, func() {
					sc.Sink.Line(output.StyleHighlight, "Check the logs directory for encrypted files.")
				})
				sc.Sched.After(2*time.Second, func() {
					sc.PostChat(chat.BetrayalLine.Sender, chat.BetrayalLine.Body)
				})
				sc.Sched.After(4*time.Second, func() {
					sc.PostChat(chat.FinalWarningLine.Sender, chat.FinalWarningLine.Body)
				})
			},
		},
		{
			Name:    "anon_warning",
			Kind:    TimeElapsed,
			Seconds: 120,
			Action: func() {
				if sc.Session.Progress() == session.StageLocalGuest {
					sc.PostChat(chat.PersonaAnon, "He's watching. Stop digging.")
				}
			},
		},
	}
}

// Stage hint pools for the hint command.
var stageHints = map[session.Stage][]string{
	session.StageLocalGuest: {
		`Try exploring the file system with "ls" and "cd"`,
		`Check the contents of files with "cat"`,
		"Look for clues about how to gain higher access",
	},
	session.StageLocalRoot: {
		"You now have access to more directories",
		"Look for the admin directory",
		"Set up VPN for secure connections",
	},
	session.StageLocalAdmin: {
		"Look for connection details in the root directory",
		`Use the "connect" command with the IP address`,
		"Make sure VPN is ON before connecting",
	},
	session.StageRemoteGuest: {
		"Look for clues to gain higher access",
		"The password might be in your local system",
		"Remember to keep VPN active",
	},
	session.StageRemoteRoot: {
		"You now have access to sensitive logs",
		"Look for encrypted files",
		`Use "decrypt" command on encrypted files`,
	},
}

// ProvideHint prints one hint drawn from the current stage's pool.
func (sc *Script) ProvideHint() {
	hints, ok := stageHints[sc.Session.Progress()]
	if !ok || len(hints) == 0 {
		return
	}
	hint := hints[sc.rng.Intn(len(hints))]
	sc.Sink.Line(output.StyleHighlight, "HINT: "+hint)
}
