package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseDeadline_DateOnlyIsEndOfDay(t *testing.T) {
	got := ParseDeadline("2025-06-06")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 6, 6, 23, 59, 59, 0, time.UTC), *got)
}

func TestParseDeadline_ISOForms(t *testing.T) {
	want := time.Date(2025, 4, 15, 14, 30, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"2025-04-15T14:30:00Z":      want,
		"2025-04-15T14:30:00":       want,
		"2025-04-15T14:30":          want,
		"2025-04-15T14:30Z":         want,
		"2025-04-15T16:30:00+02:00": want,
		"2025-04-15T14:30:00.250Z":  want.Add(250 * time.Millisecond),
		" 2025-04-15T14:30:00Z ":    want,
	}
	for in, exp := range cases {
		t.Run(in, func(t *testing.T) {
			got := ParseDeadline(in)
			require.NotNil(t, got)
			assert.True(t, exp.Equal(*got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDeadline_AbsentAndMalformed(t *testing.T) {
	for _, in := range []string{
		"", "   ", "null", "NULL", "not specified", "Not Specified", "none",
		"next friday", "2025-13-01", "2025-02-30", "15/04/2025", "2025-04-15T25:00", "T", "{}",
	} {
		assert.Nil(t, ParseDeadline(in), "input %q", in)
	}
}

func TestParseDeadline_DateOnlyProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		y := rapid.IntRange(1970, 2200).Draw(rt, "year")
		m := rapid.IntRange(1, 12).Draw(rt, "month")
		d := rapid.IntRange(1, 28).Draw(rt, "day")

		got := ParseDeadline(fmt.Sprintf("%04d-%02d-%02d", y, m, d))
		if got == nil {
			rt.Fatalf("nil deadline for %04d-%02d-%02d", y, m, d)
		}
		want := time.Date(y, time.Month(m), d, 23, 59, 59, 0, time.UTC)
		if !got.Equal(want) {
			rt.Fatalf("got %s, want %s", got, want)
		}
	})
}

func TestParseDeadline_TimestampProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		y := rapid.IntRange(1970, 2200).Draw(rt, "year")
		mo := rapid.IntRange(1, 12).Draw(rt, "month")
		d := rapid.IntRange(1, 28).Draw(rt, "day")
		h := rapid.IntRange(0, 23).Draw(rt, "hour")
		mi := rapid.IntRange(0, 59).Draw(rt, "minute")
		sec := rapid.IntRange(0, 59).Draw(rt, "second")
		withSeconds := rapid.Bool().Draw(rt, "with_seconds")
		withZ := rapid.Bool().Draw(rt, "with_z")

		s := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d", y, mo, d, h, mi)
		if withSeconds {
			s += fmt.Sprintf(":%02d", sec)
		} else {
			sec = 0
		}
		if withZ {
			s += "Z"
		}

		got := ParseDeadline(s)
		if got == nil {
			rt.Fatalf("nil deadline for %q", s)
		}
		want := time.Date(y, time.Month(mo), d, h, mi, sec, 0, time.UTC)
		if !got.Equal(want) {
			rt.Fatalf("%q: got %s, want %s", s, got, want)
		}
	})
}

func TestParseDeadline_NeverPanics(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.String().Draw(rt, "input")
		_ = ParseDeadline(s)
	})
}
