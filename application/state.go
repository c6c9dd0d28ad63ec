package application

type State int

const (
	Idle State = iota
	Minting
	Ready
	Battling
	Healing
	Result
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Minting:
		return "MINTING"
	case Ready:
		return "READY"
	case Battling:
		return "BATTLING"
	case Healing:
		return "HEALING"
	case Result:
		return "RESULT"
	}
	return "UNKNOWN"
}

// inFlight reports whether reconciliation must leave the state alone.
func (s State) inFlight() bool {
	return s == Minting || s == Battling || s == Healing || s == Result
}

// NetworkStatus reflects the outcome and latency of the last refresh.
type NetworkStatus string

const (
	NetworkConnected    NetworkStatus = "connected"
	NetworkSlow         NetworkStatus = "slow"
	NetworkDisconnected NetworkStatus = "disconnected"
)
