// Package shell implements the terminal command interpreter: parsing,
// the verb table, permission-aware filesystem commands, and the scripted
// escalation and ending flows.
package shell

import (
	"errors"
	"strings"

	apperrors "github.com/miragecorp/mirageos/internal/platform/errors"

	"github.com/miragecorp/mirageos/internal/game/output"
	"github.com/miragecorp/mirageos/internal/game/session"
	"github.com/miragecorp/mirageos/internal/game/story"
	"github.com/miragecorp/mirageos/internal/game/vfs"
)

// Root escalation secrets and the company server address. These are
// story data: the player digs them out of the filesystems.
const (
	localRootSecret  = "gr1tcore42"
	remoteRootSecret = "darknetR1P"
	remoteAddress    = "239.82.41.13"
)

type handler func(sh *Shell, args []string) error

var handlers = map[string]handler{
	"help":           (*Shell).runHelp,
	"ls":             (*Shell).runLs,
	"cd":             (*Shell).runCd,
	"cat":            (*Shell).runCat,
	"pwd":            (*Shell).runPwd,
	"clear":          (*Shell).runClear,
	"sudo":           (*Shell).runSudo,
	"whoami":         (*Shell).runWhoami,
	"./vpn_setup.sh": (*Shell).runVPNSetup,
	"connect":        (*Shell).runConnect,
	"decrypt":        (*Shell).runDecrypt,
	"open":           (*Shell).runOpen,
}

// Shell interprets one player's command input against their session.
// It is not safe for concurrent use; the owning run loop serializes
// calls.
type Shell struct {
	sess   *session.Session
	local  *vfs.Tree
	remote *vfs.Tree
	sink   output.Sink
	sched  *story.Scheduler

	// PostChat delivers a story chat message. The owner wires it to the
	// chat log and notification counter.
	PostChat func(sender, body string)

	awaitingSecret bool
	twistFired     bool
	locked         bool
}

// New returns a shell over the fixed local and company filesystems.
func New(sess *session.Session, sink output.Sink, sched *story.Scheduler) *Shell {
	return &Shell{
		sess:   sess,
		local:  vfs.LocalTree(),
		remote: vfs.RemoteTree(),
		sink:   sink,
		sched:  sched,
		PostChat: func(sender, body string) {
			sink.Chat(sender, body)
		},
	}
}

// Locked reports whether the shell has stopped accepting input. The
// trap and the ending both lock it; only a fresh session recovers.
func (sh *Shell) Locked() bool {
	return sh.locked
}

// Execute interprets one input line. Failures surface as styled
// terminal lines, never as returned errors.
func (sh *Shell) Execute(input string) {
	if sh.locked {
		return
	}

	if sh.awaitingSecret {
		sh.finishSudo(input)
		return
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	args := strings.Split(input, " ")
	verb := strings.ToLower(args[0])

	h, ok := handlers[verb]
	if !ok {
		sh.render(apperrors.New(apperrors.CodeUnknownCommand, "Command not found: "+verb))
		return
	}
	sh.render(h(sh, args[1:]))
}

// render writes a command failure to the terminal. Encrypted-file
// failures warn rather than report an error, matching how the game
// nudges the player toward the decrypt command.
func (sh *Shell) render(err error) {
	if err == nil {
		return
	}
	style := output.StyleError
	if apperrors.CodeOf(err) == apperrors.CodeEncrypted {
		style = output.StyleWarning
	}
	sh.sink.Line(style, errorMessage(err))
}

func errorMessage(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// tree returns the filesystem for the session's current host.
func (sh *Shell) tree() *vfs.Tree {
	if sh.sess.Host == session.HostRemote {
		return sh.remote
	}
	return sh.local
}

func (sh *Shell) user() string {
	return string(sh.sess.User)
}

func (sh *Shell) updatePrompt() {
	sh.sink.Prompt(sh.sess.Prompt())
}
