package models

import (
	"fmt"
	"strings"
)

// Tone controls the register of the generated summary
type Tone string

// Length controls how verbose the generated summary is
type Length string

// Purpose controls how the generated summary is framed
type Purpose string

const (
	ToneCasual       Tone = "casual"
	ToneFormal       Tone = "formal"
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
)

const (
	LengthShort    Length = "short"
	LengthMedium   Length = "medium"
	LengthDetailed Length = "detailed"
)

const (
	PurposeTLDR      Purpose = "tldr"
	PurposeKeyPoints Purpose = "keypoints"
	PurposeExplainer Purpose = "explainer"
)

// Ordered value lists, in the order they are offered to the user
var (
	Tones    = []Tone{ToneCasual, ToneFormal, ToneProfessional, ToneFriendly}
	Lengths  = []Length{LengthShort, LengthMedium, LengthDetailed}
	Purposes = []Purpose{PurposeTLDR, PurposeKeyPoints, PurposeExplainer}
)

// Options parameterizes a summarization request. Every field always holds exactly one legal value.
type Options struct {
	Tone    Tone    `json:"tone"`
	Length  Length  `json:"length"`
	Purpose Purpose `json:"purpose"`
}

// DefaultOptions returns casual / medium / tldr
func DefaultOptions() Options {
	return Options{
		Tone:    ToneCasual,
		Length:  LengthMedium,
		Purpose: PurposeTLDR,
	}
}

// Validate reports the first field holding a value outside its enumeration
func (o Options) Validate() error {
	if !o.Tone.Valid() {
		return fmt.Errorf("invalid tone: %q (must be one of %s)", o.Tone, joinValues(Tones))
	}
	if !o.Length.Valid() {
		return fmt.Errorf("invalid length: %q (must be one of %s)", o.Length, joinValues(Lengths))
	}
	if !o.Purpose.Valid() {
		return fmt.Errorf("invalid purpose: %q (must be one of %s)", o.Purpose, joinValues(Purposes))
	}
	return nil
}

func (t Tone) Valid() bool    { return contains(Tones, t) }
func (l Length) Valid() bool  { return contains(Lengths, l) }
func (p Purpose) Valid() bool { return contains(Purposes, p) }

func (t Tone) String() string    { return string(t) }
func (l Length) String() string  { return string(l) }
func (p Purpose) String() string { return string(p) }

// Label returns the display name of the tone
func (t Tone) Label() string { return capitalize(string(t)) }

// Label returns the display name of the length
func (l Length) Label() string { return capitalize(string(l)) }

// Label returns the display name of the purpose
func (p Purpose) Label() string {
	switch p {
	case PurposeTLDR:
		return "TL;DR"
	case PurposeKeyPoints:
		return "Key Points"
	case PurposeExplainer:
		return "Explainer"
	default:
		return string(p)
	}
}

// ParseTone parses a tone case-insensitively
func ParseTone(s string) (Tone, error) {
	t := Tone(normalize(s))
	if !t.Valid() {
		return "", fmt.Errorf("invalid tone: %q (must be one of %s)", s, joinValues(Tones))
	}
	return t, nil
}

// ParseLength parses a length case-insensitively
func ParseLength(s string) (Length, error) {
	l := Length(normalize(s))
	if !l.Valid() {
		return "", fmt.Errorf("invalid length: %q (must be one of %s)", s, joinValues(Lengths))
	}
	return l, nil
}

// ParsePurpose parses a purpose case-insensitively. "TL;DR" and "key points" are accepted
// as spelled on screen.
func ParsePurpose(s string) (Purpose, error) {
	n := normalize(s)
	switch n {
	case "tl;dr":
		n = string(PurposeTLDR)
	case "key points", "key-points":
		n = string(PurposeKeyPoints)
	}
	p := Purpose(n)
	if !p.Valid() {
		return "", fmt.Errorf("invalid purpose: %q (must be one of %s)", s, joinValues(Purposes))
	}
	return p, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
