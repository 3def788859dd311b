package blogcmd

// FeatureGates exposes runtime toggles read by the blog command handlers.
type FeatureGates struct {
	CommandsEnabled func() bool
}

func (g FeatureGates) commandsEnabled() bool {
	if g.CommandsEnabled == nil {
		return true
	}
	return g.CommandsEnabled()
}
