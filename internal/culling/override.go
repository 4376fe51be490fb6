package culling

// OverrideFlags are host conditions that force every tile active
type OverrideFlags struct {
	Paused    bool
	InTransit bool
}

// Any reports whether at least one override is set
func (f OverrideFlags) Any() bool {
	return f.Paused || f.InTransit
}

// OverrideSource exposes the host signals behind the overrides
type OverrideSource interface {
	Paused() bool
	InTransit() bool
}

// OverrideFuncs adapts plain functions to OverrideSource. Nil funcs read as false.
type OverrideFuncs struct {
	PausedFn    func() bool
	InTransitFn func() bool
}

func (o OverrideFuncs) Paused() bool {
	return o.PausedFn != nil && o.PausedFn()
}

func (o OverrideFuncs) InTransit() bool {
	return o.InTransitFn != nil && o.InTransitFn()
}

// OverrideGate is a stateless facade over the host's override signals.
// Every Flags call polls the source, so a change applies to the next tile evaluated.
type OverrideGate struct {
	source OverrideSource
}

// NewOverrideGate wraps source. A nil source never overrides.
func NewOverrideGate(source OverrideSource) *OverrideGate {
	return &OverrideGate{source: source}
}

// Flags reads the current override state
func (g *OverrideGate) Flags() OverrideFlags {
	if g == nil || g.source == nil {
		return OverrideFlags{}
	}
	return OverrideFlags{
		Paused:    g.source.Paused(),
		InTransit: g.source.InTransit(),
	}
}
