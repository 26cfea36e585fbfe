package session

import (
	"errors"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	s := New()

	if s.User != UserGuest {
		t.Fatalf("User = %q, want %q", s.User, UserGuest)
	}
	if s.Host != HostLocal {
		t.Fatalf("Host = %q, want %q", s.Host, HostLocal)
	}
	if s.Cwd != "/home/guest" {
		t.Fatalf("Cwd = %q, want %q", s.Cwd, "/home/guest")
	}
	if s.VPNActive {
		t.Fatal("expected VPN off")
	}
	if s.Progress() != StageLocalGuest {
		t.Fatalf("Progress = %q, want %q", s.Progress(), StageLocalGuest)
	}
	if s.WifiNetwork != DefaultWifiNetwork {
		t.Fatalf("WifiNetwork = %q, want %q", s.WifiNetwork, DefaultWifiNetwork)
	}
}

func TestAdvanceFollowsTotalOrder(t *testing.T) {
	s := New()

	if !s.Advance(StageLocalRoot) {
		t.Fatal("expected advance to local_root")
	}
	if s.Advance(StageLocalGuest) {
		t.Fatal("expected regression to be rejected")
	}
	if s.Advance(StageRemoteGuest) {
		t.Fatal("expected stage skip to be rejected")
	}
	if s.Advance(StageLocalRoot) {
		t.Fatal("expected repeat advance to be a no-op")
	}
	if s.Progress() != StageLocalRoot {
		t.Fatalf("Progress = %q, want %q", s.Progress(), StageLocalRoot)
	}
}

func TestAdvanceRejectsUnknownStage(t *testing.T) {
	s := New()
	if s.Advance(Stage("company_root")) {
		t.Fatal("expected unknown stage to be rejected")
	}
}

func TestStageAtLeast(t *testing.T) {
	if !StageRemoteGuest.AtLeast(StageLocalAdmin) {
		t.Fatal("expected remote_guest >= local_admin")
	}
	if StageLocalRoot.AtLeast(StageLocalAdmin) {
		t.Fatal("expected local_root < local_admin")
	}
	if StageLocalRoot.AtLeast(Stage("bogus")) {
		t.Fatal("expected comparison with unknown stage to fail")
	}
}

func TestBecomeRootPerHost(t *testing.T) {
	s := New()
	if !s.BecomeRoot() {
		t.Fatal("expected local root promotion to advance")
	}
	if s.User != UserRoot {
		t.Fatalf("User = %q, want %q", s.User, UserRoot)
	}
	if s.Progress() != StageLocalRoot {
		t.Fatalf("Progress = %q, want %q", s.Progress(), StageLocalRoot)
	}

	// Re-running the promotion must not move progression.
	if s.BecomeRoot() {
		t.Fatal("expected repeated promotion to be a progression no-op")
	}

	s.ActivateVPN()
	s.ConnectRemote()
	if !s.BecomeRoot() {
		t.Fatal("expected remote root promotion to advance")
	}
	if s.Progress() != StageRemoteRoot {
		t.Fatalf("Progress = %q, want %q", s.Progress(), StageRemoteRoot)
	}
}

func TestConnectRemoteResetsUserAndCwd(t *testing.T) {
	s := New()
	s.BecomeRoot()
	s.ActivateVPN()

	if !s.ConnectRemote() {
		t.Fatal("expected connect to advance")
	}
	if s.Host != HostRemote {
		t.Fatalf("Host = %q, want %q", s.Host, HostRemote)
	}
	if s.User != UserGuest {
		t.Fatalf("User = %q, want %q", s.User, UserGuest)
	}
	if s.Cwd != "/company/guest" {
		t.Fatalf("Cwd = %q, want %q", s.Cwd, "/company/guest")
	}
}

func TestToggleVPNRequiresSetup(t *testing.T) {
	s := New()

	if _, err := s.ToggleVPN(); !errors.Is(err, ErrVPNNotConfigured) {
		t.Fatalf("expected ErrVPNNotConfigured, got %v", err)
	}

	s.BecomeRoot()
	s.ActivateVPN()

	active, err := s.ToggleVPN()
	if err != nil {
		t.Fatalf("toggle vpn: %v", err)
	}
	if active {
		t.Fatal("expected toggle to turn VPN off")
	}
	active, err = s.ToggleVPN()
	if err != nil {
		t.Fatalf("toggle vpn: %v", err)
	}
	if !active {
		t.Fatal("expected toggle to turn VPN back on")
	}
}

func TestPrompt(t *testing.T) {
	s := New()
	if got := s.Prompt(); got != "/home/guest$ " {
		t.Fatalf("Prompt = %q", got)
	}

	s.BecomeRoot()
	s.Cwd = "/root/vault"
	if got := s.Prompt(); got != "/root/vault# " {
		t.Fatalf("Prompt = %q", got)
	}

	s.ActivateVPN()
	s.ConnectRemote()
	if got := s.Prompt(); got != "company:/company/guest$ " {
		t.Fatalf("Prompt = %q", got)
	}
}

func TestDiscoverIsOneShot(t *testing.T) {
	s := New()
	if !s.Discover("/etc/logs/root_hint.txt") {
		t.Fatal("expected first discovery to be new")
	}
	if s.Discover("/etc/logs/root_hint.txt") {
		t.Fatal("expected repeat discovery to report false")
	}
	if !s.Discovered("/etc/logs/root_hint.txt") {
		t.Fatal("expected path to be recorded")
	}
}

func TestNotificationsCounter(t *testing.T) {
	s := New()
	if got := s.AddNotification(); got != 1 {
		t.Fatalf("AddNotification = %d, want 1", got)
	}
	s.AddNotification()
	if got := s.PendingNotifications(); got != 2 {
		t.Fatalf("PendingNotifications = %d, want 2", got)
	}
	s.ClearNotifications()
	if got := s.PendingNotifications(); got != 0 {
		t.Fatalf("PendingNotifications = %d, want 0", got)
	}
}
