package segment

import (
	"sort"
	"strings"
)

// Mode identifies how a script was split into narration segments.
type Mode int

const (
	// ModeNone narrates the whole script as one segment.
	ModeNone Mode = iota
	// ModeDelimiter splits the script on a literal separator token.
	ModeDelimiter
	// ModeThemes derives segments from extracted salient phrases.
	ModeThemes
)

func (m Mode) String() string {
	switch m {
	case ModeDelimiter:
		return "delimiter"
	case ModeThemes:
		return "themes"
	default:
		return "none"
	}
}

// Segment is one narration unit. Index determines playback order.
type Segment struct {
	Index int
	Text  string
}

// Plan is the tagged result of segmenting a script. The mode travels with
// the segments so downstream stages never have to infer it from nil-ness.
type Plan struct {
	Mode     Mode
	Segments []Segment
}

// Unsegmented wraps the whole script in a single segment.
func Unsegmented(script string) Plan {
	return Plan{
		Mode:     ModeNone,
		Segments: []Segment{{Index: 0, Text: script}},
	}
}

// ByDelimiter splits the script on the literal delimiter. Empty substrings
// are kept, matching the playback order of a manually chaptered script.
func ByDelimiter(script, delimiter string) Plan {
	parts := strings.Split(script, delimiter)
	segments := make([]Segment, len(parts))
	for i, part := range parts {
		segments[i] = Segment{Index: i, Text: part}
	}
	return Plan{Mode: ModeDelimiter, Segments: segments}
}

// ByThemes builds a plan from extracted phrases. The extractor promises set
// semantics only, so phrases are sorted for a deterministic order.
func ByThemes(phrases []string) Plan {
	sorted := make([]string, len(phrases))
	copy(sorted, phrases)
	sort.Strings(sorted)

	segments := make([]Segment, len(sorted))
	for i, phrase := range sorted {
		segments[i] = Segment{Index: i, Text: phrase}
	}
	return Plan{Mode: ModeThemes, Segments: segments}
}
