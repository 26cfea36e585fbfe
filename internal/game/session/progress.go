package session

// Stage labels the player's position in the linear storyline.
type Stage string

const (
	// StageLocalGuest is the starting stage on the local machine.
	StageLocalGuest Stage = "local_guest"
	// StageLocalRoot is reached by authenticating as local root.
	StageLocalRoot Stage = "local_root"
	// StageLocalAdmin is reached by configuring the VPN as root.
	StageLocalAdmin Stage = "local_admin"
	// StageRemoteGuest is reached by connecting to the company server.
	StageRemoteGuest Stage = "remote_guest"
	// StageRemoteRoot is reached by authenticating as company root.
	StageRemoteRoot Stage = "remote_root"
)

var stageOrder = map[Stage]int{
	StageLocalGuest:  0,
	StageLocalRoot:   1,
	StageLocalAdmin:  2,
	StageRemoteGuest: 3,
	StageRemoteRoot:  4,
}

// Rank returns the stage's position in the storyline, or -1 for an
// unknown label.
func (s Stage) Rank() int {
	rank, ok := stageOrder[s]
	if !ok {
		return -1
	}
	return rank
}

// AtLeast reports whether s is other or a later stage.
func (s Stage) AtLeast(other Stage) bool {
	return s.Rank() >= other.Rank() && other.Rank() >= 0
}

// isAdvanceAllowed permits only the immediate next stage: progression
// never regresses and never skips.
func isAdvanceAllowed(from, to Stage) bool {
	fromRank, toRank := from.Rank(), to.Rank()
	if fromRank < 0 || toRank < 0 {
		return false
	}
	return toRank == fromRank+1
}
