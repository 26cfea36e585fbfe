package vfs

// Well-known paths referenced by the command handlers and story script.
const (
	LocalGuestHome  = "/home/guest"
	RemoteGuestHome = "/company/guest"

	RootHintPath   = "/etc/logs/root_hint.txt"
	VPNSetupDir    = "/admin/network"
	VaultDir       = "/root/vault"
	VaultAuthPath  = "/root/vault/mirage_auth.bak"
	IdentityPath   = "/company/root/logs/mirage_identity.sys"
	VPNSetupScript = "vpn_setup.sh"
)

// LocalTree builds the player's local machine filesystem.
func LocalTree() *Tree {
	guest := NewDir("rwxr-xr-x").
		Add("notes.txt", NewFile("rw-r--r--", "welcome_user = \"guest\"\ntry: sudo su")).
		Add("hint.log", NewFile("rw-r--r--", "Remember to check system logs for important information."))

	home := NewDir("rwxr-xr-x").Add("guest", guest)

	logs := NewDir("rwxr-xr-x").
		Add("root_hint.txt", NewFile("rw-r--r--", "root_pass = \"gr1tcore42\""))
	etc := NewDir("rwxr-xr-x").Add("logs", logs)

	vpnSetup := NewFile("rwxr-xr-x", "#!/bin/bash\n# VPN Setup Script\necho \"> VPN connected to MirageTunnel\"\necho \"> IP spoof active\"")
	vpnSetup.Executable = true
	network := NewDir("rwxr-xr-x").
		Add(VPNSetupScript, vpnSetup).
		Add("trace_blocker.pkg", NewFile("rw-r--r--", "Use a VPN, or else the FBI will catch you.\n ./vpn_setup.sh <-maybe try this"))
	admin := NewDir("rwxr-x---").Add("network", network)
	admin.Hidden = true // surfaces only once the player is root

	vault := NewDir("rwx------").
		Add("mirage_auth.bak", NewFile("rw-------", "root_pass: darknetR1P")).
		Add("targets.txt", NewFile("rw-------", "[ connect 239.82.41.13 **@MIRAGE_SYS** ]"))
	rootHome := NewDir("rwx------").Add("vault", vault)
	rootHome.Hidden = true

	root := NewDir("rwxr-xr-x").
		Add("home", home).
		Add("etc", etc).
		Add("admin", admin).
		Add("root", rootHome)

	return NewTree(root)
}

// RemoteTree builds the MirageCorp company server filesystem.
func RemoteTree() *Tree {
	guest := NewDir("rwxr-xr-x").
		Add("readme.txt", NewFile("rw-r--r--", "To access admin logs, run: sudo su")).
		Add("config.sys", NewFile("rw-r--r--", "System configuration file. Do not modify unless authorized."))

	identity := NewFile("rw-------", "[ FBI DATABASE LOG ]\n> CODENAME: MIRAGE\n> STATUS: ACTIVE THREAT")
	identity.Encrypted = true
	logs := NewDir("rwx------").Add("mirage_identity.sys", identity)
	rootHome := NewDir("rwx------").Add("logs", logs)
	rootHome.Hidden = true

	company := NewDir("rwxr-xr-x").
		Add("guest", guest).
		Add("root", rootHome)

	root := NewDir("rwxr-xr-x").Add("company", company)

	return NewTree(root)
}
