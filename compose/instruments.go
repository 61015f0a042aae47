package compose

import "github.com/datatune/datatune"

// General MIDI programs, 0-based.
const (
	acousticGrandPiano = 0
	vibraphone         = 11
	nylonGuitar        = 24
	fingerBass         = 33
	synthBass1         = 38
	harp               = 46
	flute              = 73
	sawLead            = 81
	newAgePad          = 88
	warmPad            = 89
)

// General MIDI percussion keys.
const (
	kick      = 36
	handClap  = 39
	snare     = 38
	closedHat = 42
	openHat   = 46
	crash     = 49
)

// palettes holds the melody instruments of each style. The first entry is
// the lead, used for every stream unless streams are heterogeneous.
var palettes = map[datatune.Style][]uint8{
	datatune.Plain:  {acousticGrandPiano, vibraphone, harp, nylonGuitar},
	datatune.Gentle: {newAgePad, harp, flute, vibraphone},
	datatune.House:  {sawLead, warmPad, vibraphone, fingerBass},
}

// scales holds the scale of each style.
var scales = map[datatune.Style]datatune.Scale{
	datatune.Plain:  datatune.Major,
	datatune.Gentle: datatune.MajorPentatonic,
	datatune.House:  datatune.MinorPentatonic,
}

// Pan positions for melody channels after the lead, which is centred.
var pans = []uint8{datatune.CentrePan, 40, 88, 24}

const (
	primaryOctave   = -1 // lowest note of the main stream is C3
	secondaryOctave = -2
	melodyOctaves   = 2 // every stream spans two octaves of its scale

	secondaryVolume = 80
	drumsVolume     = 90
	bassVolume      = 96
	bassChannel     = datatune.MaxStreams
)
