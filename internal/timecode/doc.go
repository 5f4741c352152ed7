// Package timecode implements the user-facing timecode mini-language used to
// describe clip ranges and fades.
//
// A specification is a semicolon-separated list of segments. Each segment
// names a time range with an optional fade suffix:
//
//	"90"             whole range from 0 to 90 seconds
//	"1:00-2:30"      from 1:00 to 2:30
//	"-2:00"          from the file start to 2:00
//	"1:00-"          from 1:00 to the file end
//	"0:30-1:00@0.5"  with a 0.5 second fade in/out
//
// Individual time tokens accept plain seconds ("90"), unit suffixes ("90s",
// "5m", "1h"), and clock forms ("1:30", "01:02:03").
//
// The relative notation "sp" references chapter boundaries discovered in the
// source media: "1:00-sp" runs from 1:00 to the next split point, "sp-2:00"
// from the previous split point to 2:00. ResolveSplits rewrites these forms
// into concrete ranges so ParseSpec can consume the result unchanged.
package timecode
