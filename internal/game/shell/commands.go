package shell

import (
	"strings"
	"time"

	apperrors "github.com/miragecorp/mirageos/internal/platform/errors"
	"github.com/miragecorp/mirageos/internal/platform/timeouts"

	"github.com/miragecorp/mirageos/internal/game/chat"
	"github.com/miragecorp/mirageos/internal/game/output"
	"github.com/miragecorp/mirageos/internal/game/session"
	"github.com/miragecorp/mirageos/internal/game/story"
	"github.com/miragecorp/mirageos/internal/game/vfs"
)

const helpText = `
Available commands:
  help                 - Show this help message
  ls [directory]       - List directory contents
  cd [directory]       - Change directory
  cat [file]           - View file contents
  pwd                  - Print working directory
  clear                - Clear terminal
  sudo [command]       - Execute command as superuser
  whoami              - Show current user
  connect [ip] [user]  - Connect to remote server
  decrypt [file]       - Decrypt encrypted files
  open [application]   - Open system applications
`

func (sh *Shell) runHelp(args []string) error {
	sh.sink.Line(output.StyleSystem, helpText)
	return nil
}

// listingOrder pins the well-known top-level directories ahead of
// everything else.
var listingOrder = []string{"home", "etc", "root", "admin"}

func (sh *Shell) runLs(args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	path := vfs.Resolve(target, sh.sess.Cwd)

	node, ok := sh.tree().Lookup(path)
	if !ok || node.Kind != vfs.KindDirectory {
		return apperrors.WithMetadata(apperrors.CodeNotFound,
			"ls: cannot access '"+path+"': No such directory",
			map[string]string{"path": path})
	}
	if !vfs.CanAccess(node, vfs.ModeRead, sh.user()) {
		return apperrors.WithMetadata(apperrors.CodePermissionDenied,
			"ls: cannot open directory '"+path+"': Permission denied",
			map[string]string{"path": path})
	}

	names := node.ChildNames()
	if len(names) == 0 {
		sh.sink.Line(output.StyleSystem, "Directory is empty.")
		return nil
	}

	isRoot := sh.sess.User == session.UserRoot
	pinned := make(map[string]bool, len(listingOrder))
	var entries []output.ListingEntry

	for _, name := range listingOrder {
		child, ok := node.Child(name)
		if !ok || (child.Hidden && !isRoot) {
			continue
		}
		pinned[name] = true
		entries = append(entries, output.ListingEntry{Name: name, Kind: output.EntryDirectory})
	}
	for _, name := range names {
		if pinned[name] {
			continue
		}
		child, _ := node.Child(name)
		if child.Hidden && !isRoot {
			continue
		}
		entries = append(entries, output.ListingEntry{Name: name, Kind: entryKind(child)})
	}

	sh.sink.Listing(entries)
	return nil
}

func entryKind(node *vfs.Node) output.EntryKind {
	switch {
	case node.Kind == vfs.KindDirectory:
		return output.EntryDirectory
	case node.Executable:
		return output.EntryExecutable
	default:
		return output.EntryFile
	}
}

func (sh *Shell) runCd(args []string) error {
	if len(args) == 0 || args[0] == "" {
		sh.sess.Cwd = sh.sess.HomeDir()
		sh.updatePrompt()
		return nil
	}

	target := args[0]
	path := vfs.Resolve(target, sh.sess.Cwd)

	node, ok := sh.tree().Lookup(path)
	if !ok || node.Kind != vfs.KindDirectory {
		return apperrors.WithMetadata(apperrors.CodeNotFound,
			"cd: "+target+": No such directory",
			map[string]string{"path": path})
	}
	if !vfs.CanAccess(node, vfs.ModeExec, sh.user()) {
		return apperrors.WithMetadata(apperrors.CodePermissionDenied,
			"cd: "+target+": Permission denied",
			map[string]string{"path": path})
	}

	sh.sess.Cwd = path
	sh.updatePrompt()
	return nil
}

func (sh *Shell) runCat(args []string) error {
	if len(args) == 0 || args[0] == "" {
		return apperrors.New(apperrors.CodeMissingOperand, "cat: missing file operand")
	}

	target := args[0]
	path := vfs.Resolve(target, sh.sess.Cwd)

	node, ok := sh.tree().Lookup(path)
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeNotFound,
			"cat: "+target+": No such file or directory",
			map[string]string{"path": path})
	}
	if node.Kind != vfs.KindFile {
		return apperrors.New(apperrors.CodeWrongType, "cat: "+target+": Is a directory")
	}
	if !vfs.CanAccess(node, vfs.ModeRead, sh.user()) {
		return apperrors.WithMetadata(apperrors.CodePermissionDenied,
			"cat: "+target+": Permission denied",
			map[string]string{"path": path})
	}
	if node.Encrypted {
		return apperrors.WithMetadata(apperrors.CodeEncrypted,
			"cat: "+target+": File is encrypted. Use 'decrypt' command.",
			map[string]string{"path": path})
	}

	sh.sink.Line(output.StyleFile, node.Content)
	sh.sess.Discover(path)
	return nil
}

func (sh *Shell) runPwd(args []string) error {
	sh.sink.Line(output.StyleSystem, sh.sess.Cwd)
	return nil
}

func (sh *Shell) runClear(args []string) error {
	sh.sink.Clear()
	return nil
}

func (sh *Shell) runSudo(args []string) error {
	if len(args) == 0 {
		return apperrors.New(apperrors.CodeMissingOperand, "sudo: no command specified")
	}
	if args[0] != "su" {
		return apperrors.New(apperrors.CodeUnknownCommand,
			"sudo: command not found: "+strings.Join(args, " "))
	}

	sh.awaitingSecret = true
	sh.sink.PromptSecret("[sudo] password for " + sh.user() + ":")
	return nil
}

// finishSudo consumes the next input line as the escalation password.
func (sh *Shell) finishSudo(secret string) {
	sh.awaitingSecret = false

	expected := localRootSecret
	if sh.sess.Host == session.HostRemote {
		expected = remoteRootSecret
	}

	if secret != expected {
		sh.updatePrompt()
		sh.render(apperrors.New(apperrors.CodeAuthenticationFailed, "> ACCESS DENIED"))
		return
	}

	sh.sess.BecomeRoot()
	sh.updatePrompt()
	sh.sink.Line(output.StyleSuccess, "Root access granted.")
}

func (sh *Shell) runWhoami(args []string) error {
	sh.sink.Line(output.StyleSystem, sh.user())
	return nil
}

func (sh *Shell) runVPNSetup(args []string) error {
	cwd := sh.sess.Cwd
	if cwd != vfs.VPNSetupDir && cwd != vfs.VPNSetupDir+"/" {
		return apperrors.New(apperrors.CodeNotFound, "./vpn_setup.sh: No such file or directory")
	}
	if sh.sess.User != session.UserRoot {
		return apperrors.New(apperrors.CodePermissionDenied, "./vpn_setup.sh: Permission denied")
	}

	sh.sink.Line(output.StyleSuccess, "> VPN connected to MirageTunnel")
	sh.sink.Line(output.StyleSuccess, "> IP spoof active")

	sh.sess.ActivateVPN()
	sh.sink.VPNStatus(true)
	return nil
}

func (sh *Shell) runConnect(args []string) error {
	serverInfo := strings.Join(args, " ")
	if !strings.Contains(serverInfo, remoteAddress) {
		return apperrors.New(apperrors.CodeInvalidAddress, "connect: Invalid server address")
	}

	if !sh.sess.VPNActive {
		// Connecting in the clear is the trap ending.
		sh.locked = true
		sh.sink.Play(output.SequenceFBIWarning)
		return nil
	}

	sh.sink.Line(output.StyleSuccess, "> Connected to MirageCorp Terminal (guest mode)")
	sh.sess.ConnectRemote()
	sh.updatePrompt()
	return nil
}

func (sh *Shell) runDecrypt(args []string) error {
	if len(args) == 0 || args[0] == "" {
		return apperrors.New(apperrors.CodeMissingOperand, "decrypt: missing file operand")
	}

	target := args[0]
	path := vfs.Resolve(target, sh.sess.Cwd)

	node, ok := sh.tree().Lookup(path)
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeNotFound,
			"decrypt: "+target+": No such file or directory",
			map[string]string{"path": path})
	}
	if node.Kind != vfs.KindFile {
		return apperrors.New(apperrors.CodeWrongType, "decrypt: "+target+": Is a directory")
	}
	if !node.Encrypted {
		return apperrors.New(apperrors.CodeNotEncrypted, "decrypt: "+target+": File is not encrypted")
	}
	if !vfs.CanAccess(node, vfs.ModeRead, sh.user()) {
		return apperrors.WithMetadata(apperrors.CodePermissionDenied,
			"decrypt: "+target+": Permission denied",
			map[string]string{"path": path})
	}

	sh.sink.Line(output.StyleSystem, "Decrypting file...")
	sh.sched.After(timeouts.DecryptReveal, func() {
		sh.sink.Line(output.StyleHighlight, node.Content)
		if path == vfs.IdentityPath && !sh.twistFired {
			sh.twistFired = true
			sh.runFinalTwist()
		}
	})
	return nil
}

// runFinalTwist plays the ending: the chat reveal beats, then the
// takeover sequence. The shell stops accepting input once it starts.
func (sh *Shell) runFinalTwist() {
	sh.locked = true
	sh.sink.Clear()
	sh.sched.RunSteps([]story.Step{
		{Delay: 3 * time.Second, Do: func() {
			sh.PostChat(chat.PersonaAnon, "You weren't tracing him.")
		}},
		{Delay: 2 * time.Second, Do: func() {
			sh.PostChat(chat.PersonaAnon, "You were becoming him.")
		}},
		{Delay: 2 * time.Second, Do: func() {
			sh.PostChat(chat.PersonaAnon, "Welcome to your new identity.")
			sh.sink.Play(output.SequenceFinalTwist)
		}},
	})
}

func (sh *Shell) runOpen(args []string) error {
	if len(args) == 0 || args[0] == "" {
		return apperrors.New(apperrors.CodeMissingOperand, "open: missing application name")
	}

	app := args[0]
	if strings.ToLower(app) != "chat" {
		return apperrors.New(apperrors.CodeUnknownApp, "open: "+app+": application not found")
	}

	sh.sess.ClearNotifications()
	sh.sink.Notify(0)
	sh.sink.OpenChat()
	return nil
}
