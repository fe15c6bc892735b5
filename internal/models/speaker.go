package models

// Speaker identifies one of the two conversation participants.
type Speaker string

const (
	SpeakerKai Speaker = "Kai"
	SpeakerZoe Speaker = "Zoe"
)

// DefaultSpeaker is the coercion target for unrecognized speaker values in
// model output.
const DefaultSpeaker = SpeakerKai

// SpeakerProfile carries the presentation metadata clients render with.
type SpeakerProfile struct {
	Color    string `json:"color"`
	Gradient string `json:"gradient"`
}

// SpeakerProfiles is the lookup table for the closed speaker set.
var SpeakerProfiles = map[Speaker]SpeakerProfile{
	SpeakerKai: {Color: "#a855f7", Gradient: "linear-gradient(135deg, #a855f7, #7c3aed)"},
	SpeakerZoe: {Color: "#f43f5e", Gradient: "linear-gradient(135deg, #f43f5e, #be123c)"},
}

// ValidSpeaker reports whether raw matches a known speaker exactly.
func ValidSpeaker(raw string) bool {
	_, ok := SpeakerProfiles[Speaker(raw)]
	return ok
}
