package compose

// Progression group ids, one per kind of arrangement decision. Never reuse
// or renumber an id: that would change every existing seeded tune.
const (
	groupChorusBars = iota + 1
	groupBreakdownBars
	groupOutroBars
	groupChorusPolicy
	groupInstrument
	groupDrumFill
	groupHatPattern
	groupBassRhythm
)
