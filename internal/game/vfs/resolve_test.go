package vfs

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cwd   string
		want  string
	}{
		{"empty input returns cwd", "", "/home/guest", "/home/guest"},
		{"absolute input ignores cwd", "/etc/logs", "/home/guest", "/etc/logs"},
		{"absolute input is not normalized", "/etc//../logs", "/home/guest", "/etc//../logs"},
		{"dot returns cwd", ".", "/home/guest", "/home/guest"},
		{"dotdot pops a segment", "..", "/home/guest", "/home"},
		{"dotdot from single segment reaches root", "..", "/home", "/"},
		{"dotdot at root stays at root", "..", "/", "/"},
		{"relative joins onto cwd", "vault", "/root", "/root/vault"},
		{"relative at root avoids doubled slash", "home", "/", "/home"},
		{"nested relative", "logs/root_hint.txt", "/etc", "/etc/logs/root_hint.txt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.input, tc.cwd); got != tc.want {
				t.Fatalf("Resolve(%q, %q) = %q, want %q", tc.input, tc.cwd, got, tc.want)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	first := Resolve("vault", "/root")
	second := Resolve("vault", "/root")
	if first != second {
		t.Fatalf("expected identical results, got %q and %q", first, second)
	}
}
