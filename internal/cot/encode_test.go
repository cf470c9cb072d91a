package cot

import (
	"csvcot/internal/track"
	"encoding/xml"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func fixedEncoder() (encoder *Encoder) {
	encoder = NewEncoder("", "", 0)
	encoder.Now = func() time.Time {
		return time.Date(2026, 3, 4, 5, 6, 7, 890123000, time.UTC)
	}
	return
}

var fullKeys = track.DiscoveredKeys{
	track.RoleCallsign: "callsign",
	track.RoleLat:      "lat",
	track.RoleLon:      "lon",
	track.RoleAlt:      "alt",
	track.RoleSpeed:    "speed",
	track.RoleBearing:  "bearing",
}

func TestPosition(t *testing.T) {
	encoder := fixedEncoder()

	payload, err := encoder.Position(track.Row{
		"callsign": "A1",
		"lat":      "45.0",
		"lon":      "-93",
		"alt":      "100",
		"speed":    "10",
		"bearing":  "270",
	}, fullKeys, "TMIT1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := Header +
		`<event version="2.0" uid="A1" type="a-h-G-i-I" how="m-g" time="2026-03-04T05:06:07.890123Z" start="2026-03-04T05:06:07.890123Z" stale="2026-03-04T05:11:07.890123Z">` + "\n" +
		`  <point lat="45.0" lon="-93.0" hae="100.0" ce="10.0" le="10.0"></point>` + "\n" +
		`  <detail>` + "\n" +
		`    <uid DUID="A1"></uid>` + "\n" +
		`    <contact callsign="A1"></contact>` + "\n" +
		`    <track course="270.0" speed="5.14444"></track>` + "\n" +
		`  </detail>` + "\n" +
		`</event>`

	if string(payload) != expected {
		t.Errorf("\ngot:\n%s\nwant:\n%s", payload, expected)
	}
}

func TestPositionFields(t *testing.T) {
	encoder := fixedEncoder()

	tests := []struct {
		name           string
		row            track.Row
		keys           track.DiscoveredKeys
		expectErr      error
		expectCallsign string
		expectUID      string
		expectHae      string
		expectSpeed    string
	}{
		{
			name:           "blank callsign uses default",
			row:            track.Row{"callsign": "  ", "lat": "1", "lon": "2", "alt": "", "speed": "", "bearing": ""},
			keys:           fullKeys,
			expectCallsign: "TMIT1",
			expectUID:      "TMIT1",
			expectHae:      "0.0",
			expectSpeed:    "0.0",
		},
		{
			name:           "unresolved optional roles default to zero",
			row:            track.Row{"lat": "1.5", "lon": "2.5"},
			keys:           track.DiscoveredKeys{track.RoleLat: "lat", track.RoleLon: "lon"},
			expectCallsign: "TMIT1",
			expectUID:      "TMIT1",
			expectHae:      "0.0",
			expectSpeed:    "0.0",
		},
		{
			name:           "uid replaces spaces and dots",
			row:            track.Row{"callsign": "Alpha 1.2", "lat": "1", "lon": "2", "alt": "3.25", "speed": "1", "bearing": "0"},
			keys:           fullKeys,
			expectCallsign: "Alpha 1.2",
			expectUID:      "Alpha_1_2",
			expectHae:      "3.25",
			expectSpeed:    "0.514444",
		},
		{
			name:           "out of range altitude is infinite",
			row:            track.Row{"callsign": "A1", "lat": "1", "lon": "2", "alt": "1e400", "speed": "", "bearing": ""},
			keys:           fullKeys,
			expectCallsign: "A1",
			expectUID:      "A1",
			expectHae:      "inf",
			expectSpeed:    "0.0",
		},
		{
			name:      "empty latitude",
			row:       track.Row{"callsign": "A1", "lat": "", "lon": "2"},
			keys:      fullKeys,
			expectErr: ErrMissingCoordinate,
		},
		{
			name:      "latitude column absent",
			row:       track.Row{"callsign": "A1", "lon": "2"},
			keys:      fullKeys,
			expectErr: ErrMissingCoordinate,
		},
		{
			name:      "non numeric longitude",
			row:       track.Row{"lat": "1", "lon": "east"},
			keys:      fullKeys,
			expectErr: ErrInvalidNumber,
		},
		{
			name:      "non numeric speed",
			row:       track.Row{"lat": "1", "lon": "2", "speed": "fast"},
			keys:      fullKeys,
			expectErr: ErrInvalidNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := encoder.Position(tt.row, tt.keys, "TMIT1")
			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("expected error %v, got %v", tt.expectErr, err)
				}
				if payload != nil {
					t.Fatalf("expected no payload on failure, got %q", payload)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var event Event
			if err := xml.Unmarshal(payload, &event); err != nil {
				t.Fatalf("payload does not decode: %v", err)
			}
			if event.UID != tt.expectUID {
				t.Errorf("expected uid %q, got %q", tt.expectUID, event.UID)
			}
			if event.Detail.Contact == nil || event.Detail.Contact.Callsign != tt.expectCallsign {
				t.Errorf("expected callsign %q, got %+v", tt.expectCallsign, event.Detail.Contact)
			}
			if event.Point.Hae != tt.expectHae {
				t.Errorf("expected hae %q, got %q", tt.expectHae, event.Point.Hae)
			}
			if event.Detail.Track == nil || event.Detail.Track.Speed != tt.expectSpeed {
				t.Errorf("expected speed %q, got %+v", tt.expectSpeed, event.Detail.Track)
			}
			if event.Detail.Link != nil {
				t.Errorf("position event must not carry a link")
			}
		})
	}
}

func TestRemoval(t *testing.T) {
	encoder := fixedEncoder()

	payload, err := encoder.Removal("Alpha 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := Header +
		`<event version="2.0" uid="Alpha_1" type="t-x-c-c" how="h-e" time="2026-03-04T05:06:07.890123Z" start="2026-03-04T05:06:07.890123Z" stale="2026-03-04T05:06:08.890123Z">` + "\n" +
		`  <point lat="0.0" lon="0.0" hae="0.0" ce="9999999.0" le="9999999.0"></point>` + "\n" +
		`  <detail>` + "\n" +
		`    <link uid="Alpha_1" type="a-h-G-i-I" relation="t-d"></link>` + "\n" +
		`  </detail>` + "\n" +
		`</event>`

	if string(payload) != expected {
		t.Errorf("\ngot:\n%s\nwant:\n%s", payload, expected)
	}
}

func TestRemovalEscapesCallsign(t *testing.T) {
	encoder := fixedEncoder()

	payload, err := encoder.Removal(`O'Brien "x"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(payload), `"x"`) {
		t.Errorf("quote characters should be escaped: %s", payload)
	}

	var event Event
	if err := xml.Unmarshal(payload, &event); err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if event.UID != `O'Brien_"x"` {
		t.Errorf("unexpected decoded uid %q", event.UID)
	}
}

func TestCallsignFor(t *testing.T) {
	keys := track.DiscoveredKeys{track.RoleCallsign: "Name"}
	tests := []struct {
		name   string
		row    track.Row
		keys   track.DiscoveredKeys
		expect string
	}{
		{"present", track.Row{"Name": "Bravo"}, keys, "Bravo"},
		{"blank", track.Row{"Name": ""}, keys, "TMIT2"},
		{"column unresolved", track.Row{"Name": "Bravo"}, track.DiscoveredKeys{}, "TMIT2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CallsignFor(tt.row, tt.keys, "TMIT2"); got != tt.expect {
				t.Errorf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input  float64
		expect string
	}{
		{45, "45.0"},
		{-93, "-93.0"},
		{0, "0.0"},
		{5.14444, "5.14444"},
		{0.1, "0.1"},
		{9999999, "9999999.0"},
		{-12.345678, "-12.345678"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{5.14444e-08, "5.14444e-08"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.2345678901234569e+23, "1.2345678901234569e+23"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.input); got != tt.expect {
			t.Errorf("formatFloat(%v): expected %q, got %q", tt.input, tt.expect, got)
		}
	}
}
