package markdowncmd

// FeatureGates exposes runtime feature toggles read by the handlers. Callers
// supply closures over adf.Config.Features so handlers stay decoupled from
// configuration.
type FeatureGates struct {
	CommandsEnabled func() bool
}

func (g FeatureGates) commandsEnabled() bool {
	if g.CommandsEnabled == nil {
		return true
	}
	return g.CommandsEnabled()
}
