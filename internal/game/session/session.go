// Package session holds the per-player mutable game state and the
// progression state machine that gates story content.
//
// A Session lives for exactly one connection. It is never persisted:
// reloading the page starts the story over.
package session

import (
	"time"

	apperrors "github.com/miragecorp/mirageos/internal/platform/errors"
)

// User is the acting role on the current host.
type User string

const (
	// UserGuest is the unprivileged default role.
	UserGuest User = "guest"
	// UserRoot is the superuser role.
	UserRoot User = "root"
)

// Host selects which filesystem tree is active.
type Host string

const (
	// HostLocal is the player's own machine.
	HostLocal Host = "local"
	// HostRemote is the MirageCorp company server.
	HostRemote Host = "remote"
)

// DefaultWifiNetwork is the network the fiction starts on.
const DefaultWifiNetwork = "MirageNet"

// ErrVPNNotConfigured rejects VPN toggling before the setup script ran.
var ErrVPNNotConfigured = apperrors.New(apperrors.CodeVPNNotConfigured, "vpn has not been configured")

// ChatMessage is one entry in the append-only chat log.
type ChatMessage struct {
	ID        string
	Sender    string
	Body      string
	Timestamp time.Time
}

// Session is the whole mutable game state. Handlers mutate it directly;
// the per-connection run loop guarantees they never interleave.
type Session struct {
	User        User
	Host        Host
	Cwd         string
	VPNActive   bool
	WifiNetwork string

	progress      Stage
	discovered    map[string]struct{}
	messages      []ChatMessage
	notifications int
}

// New returns a session at the fixed starting state.
func New() *Session {
	return &Session{
		User:        UserGuest,
		Host:        HostLocal,
		Cwd:         "/home/guest",
		WifiNetwork: DefaultWifiNetwork,
		progress:    StageLocalGuest,
		discovered:  make(map[string]struct{}),
	}
}

// Progress returns the current story stage.
func (s *Session) Progress() Stage {
	return s.progress
}

// Advance moves progression to target if it is the immediate next stage.
// It reports whether the stage changed; repeats and regressions are
// no-ops.
func (s *Session) Advance(target Stage) bool {
	if !isAdvanceAllowed(s.progress, target) {
		return false
	}
	s.progress = target
	return true
}

// HomeDir is the default directory for the current user on the current
// host.
func (s *Session) HomeDir() string {
	if s.Host == HostRemote {
		return "/company/" + string(s.User)
	}
	return "/home/" + string(s.User)
}

// Prompt renders the terminal prompt for the current state.
func (s *Session) Prompt() string {
	marker := "$ "
	if s.User == UserRoot {
		marker = "# "
	}
	if s.Host == HostRemote {
		return "company:" + s.Cwd + marker
	}
	return s.Cwd + marker
}

// BecomeRoot promotes the current user and advances the stage that
// matches the active host. It reports whether progression moved.
func (s *Session) BecomeRoot() bool {
	s.User = UserRoot
	if s.Host == HostRemote {
		return s.Advance(StageRemoteRoot)
	}
	return s.Advance(StageLocalRoot)
}

// ActivateVPN marks the tunnel up and advances progression.
func (s *Session) ActivateVPN() bool {
	s.VPNActive = true
	return s.Advance(StageLocalAdmin)
}

// ToggleVPN flips the tunnel state from the taskbar. It is only
// available once the setup script has run.
func (s *Session) ToggleVPN() (bool, error) {
	if !s.progress.AtLeast(StageLocalAdmin) {
		return s.VPNActive, ErrVPNNotConfigured
	}
	s.VPNActive = !s.VPNActive
	return s.VPNActive, nil
}

// ConnectRemote switches the session to the company server as guest.
func (s *Session) ConnectRemote() bool {
	s.Host = HostRemote
	s.User = UserGuest
	s.Cwd = s.HomeDir()
	return s.Advance(StageRemoteGuest)
}

// Discover records that path was viewed. It reports whether the path is
// new, so file-viewed story events fire once.
func (s *Session) Discover(path string) bool {
	if _, seen := s.discovered[path]; seen {
		return false
	}
	s.discovered[path] = struct{}{}
	return true
}

// Discovered reports whether path has been viewed.
func (s *Session) Discovered(path string) bool {
	_, seen := s.discovered[path]
	return seen
}

// AppendChat adds a message to the chat log.
func (s *Session) AppendChat(msg ChatMessage) {
	s.messages = append(s.messages, msg)
}

// ChatLog returns a copy of the chat history.
func (s *Session) ChatLog() []ChatMessage {
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// AddNotification bumps the unread counter and returns the new value.
func (s *Session) AddNotification() int {
	s.notifications++
	return s.notifications
}

// ClearNotifications resets the unread counter when the chat panel opens.
func (s *Session) ClearNotifications() {
	s.notifications = 0
}

// PendingNotifications returns the unread counter.
func (s *Session) PendingNotifications() int {
	return s.notifications
}
