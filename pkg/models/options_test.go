package models

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, ToneCasual, opts.Tone)
	assert.Equal(t, LengthMedium, opts.Length)
	assert.Equal(t, PurposeTLDR, opts.Purpose)
	assert.NoError(t, opts.Validate())
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{name: "all valid", opts: Options{ToneFormal, LengthShort, PurposeExplainer}},
		{name: "bad tone", opts: Options{"sarcastic", LengthShort, PurposeTLDR}, wantErr: "invalid tone"},
		{name: "bad length", opts: Options{ToneFormal, "epic", PurposeTLDR}, wantErr: "invalid length"},
		{name: "bad purpose", opts: Options{ToneFormal, LengthShort, "highlights"}, wantErr: "invalid purpose"},
		{name: "zero value", opts: Options{}, wantErr: "invalid tone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParsePurpose_DisplaySpellings(t *testing.T) {
	for input, want := range map[string]Purpose{
		"TL;DR":      PurposeTLDR,
		"Key Points": PurposeKeyPoints,
		"key-points": PurposeKeyPoints,
		" explainer": PurposeExplainer,
	} {
		got, err := ParsePurpose(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Professional", ToneProfessional.Label())
	assert.Equal(t, "Detailed", LengthDetailed.Label())
	assert.Equal(t, "TL;DR", PurposeTLDR.Label())
	assert.Equal(t, "Key Points", PurposeKeyPoints.Label())
}

func TestOptionParsingProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every tone parses back from any casing", prop.ForAll(
		func(i int, upper bool) bool {
			tone := Tones[i]
			s := string(tone)
			if upper {
				s = strings.ToUpper(s)
			}
			got, err := ParseTone(s)
			return err == nil && got == tone
		},
		gen.IntRange(0, len(Tones)-1),
		gen.Bool(),
	))

	properties.Property("every length parses back", prop.ForAll(
		func(i int) bool {
			got, err := ParseLength(string(Lengths[i]))
			return err == nil && got == Lengths[i]
		},
		gen.IntRange(0, len(Lengths)-1),
	))

	properties.Property("unknown purposes are rejected", prop.ForAll(
		func(s string) bool {
			_, err := ParsePurpose("x" + s)
			return err != nil
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
