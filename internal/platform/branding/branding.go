// Package branding centralizes product naming used across surfaces.
package branding

// AppName is the user-facing product name.
const AppName = "MirageOS"

// CorpName is the in-fiction operator of the remote host.
const CorpName = "MirageCorp"

// Version is the in-fiction OS version shown in the terminal banner.
const Version = "2.91"
