package cot

import (
	"csvcot/internal/global"
	"csvcot/internal/track"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Encoder populated with the stock constants
func NewEncoder(positionType, removalType string, stale time.Duration) (encoder *Encoder) {
	if positionType == "" {
		positionType = global.DefaultPositionType
	}
	if removalType == "" {
		removalType = global.DefaultRemovalType
	}
	if stale <= 0 {
		stale = global.DefaultStaleWindow
	}
	encoder = &Encoder{
		PositionType: positionType,
		RemovalType:  removalType,
		Stale:        stale,
		RemovalStale: global.RemovalStaleWindow,
		KnotsToMS:    global.KnotsToMetersPerSecond,
		Uncertainty:  global.PositionUncertainty,
		Unknown:      global.UnknownUncertainty,
		Now:          time.Now,
	}
	return
}

// Callsign of the row, or the default when the column is unresolved or blank
func CallsignFor(row track.Row, keys track.DiscoveredKeys, defaultCallsign string) (callsign string) {
	callsign, ok := row.Get(keys, track.RoleCallsign)
	if !ok || strings.TrimSpace(callsign) == "" {
		callsign = defaultCallsign
	}
	return
}

// Event identifier derived from a callsign
func UIDFor(callsign string) (uid string) {
	uid = strings.NewReplacer(" ", "_", ".", "_").Replace(callsign)
	return
}

// Tells receivers to drop the track identified by callsign
func (encoder *Encoder) Removal(callsign string) (payload []byte, err error) {
	now := encoder.now()
	uid := UIDFor(callsign)
	unknown := formatFloat(encoder.Unknown)

	event := Event{
		Version: Version,
		UID:     uid,
		Type:    encoder.RemovalType,
		How:     HowHuman,
		Time:    formatTime(now),
		Start:   formatTime(now),
		Stale:   formatTime(now.Add(encoder.RemovalStale)),
		Point: Point{
			Lat: formatFloat(0),
			Lon: formatFloat(0),
			Hae: formatFloat(0),
			Ce:  unknown,
			Le:  unknown,
		},
		Detail: Detail{
			Link: &Link{
				UID:      uid,
				Type:     encoder.PositionType,
				Relation: LinkDrop,
			},
		},
	}

	payload, err = marshal(event)
	if err != nil {
		err = fmt.Errorf("failed encoding removal for %q: %w", callsign, err)
		return
	}
	return
}

// Position event for one data row
func (encoder *Encoder) Position(row track.Row, keys track.DiscoveredKeys, defaultCallsign string) (payload []byte, err error) {
	callsign := CallsignFor(row, keys, defaultCallsign)
	uid := UIDFor(callsign)

	lat, err := requiredNumber(row, keys, track.RoleLat)
	if err != nil {
		return
	}
	lon, err := requiredNumber(row, keys, track.RoleLon)
	if err != nil {
		return
	}
	alt, err := optionalNumber(row, keys, track.RoleAlt)
	if err != nil {
		return
	}
	speedKnots, err := optionalNumber(row, keys, track.RoleSpeed)
	if err != nil {
		return
	}
	bearing, err := optionalNumber(row, keys, track.RoleBearing)
	if err != nil {
		return
	}

	now := encoder.now()
	uncertainty := formatFloat(encoder.Uncertainty)

	event := Event{
		Version: Version,
		UID:     uid,
		Type:    encoder.PositionType,
		How:     HowGPS,
		Time:    formatTime(now),
		Start:   formatTime(now),
		Stale:   formatTime(now.Add(encoder.Stale)),
		Point: Point{
			Lat: formatFloat(lat),
			Lon: formatFloat(lon),
			Hae: formatFloat(alt),
			Ce:  uncertainty,
			Le:  uncertainty,
		},
		Detail: Detail{
			UID:     &DetailUID{Droid: uid},
			Contact: &Contact{Callsign: callsign},
			Track: &Track{
				Course: formatFloat(bearing),
				Speed:  formatFloat(speedKnots * encoder.KnotsToMS),
			},
		},
	}

	payload, err = marshal(event)
	if err != nil {
		err = fmt.Errorf("failed encoding position for %q: %w", callsign, err)
		return
	}
	return
}

func (encoder *Encoder) now() (now time.Time) {
	if encoder.Now == nil {
		now = time.Now()
	} else {
		now = encoder.Now()
	}
	now = now.UTC()
	return
}

func marshal(event Event) (payload []byte, err error) {
	body, err := xml.MarshalIndent(event, "", "  ")
	if err != nil {
		return
	}
	payload = make([]byte, 0, len(Header)+len(body))
	payload = append(payload, Header...)
	payload = append(payload, body...)
	return
}

func requiredNumber(row track.Row, keys track.DiscoveredKeys, role track.Role) (value float64, err error) {
	raw, ok := row.Get(keys, role)
	if !ok || strings.TrimSpace(raw) == "" {
		err = fmt.Errorf("%w: no %s value in column %q", ErrMissingCoordinate, role, keys[role])
		return
	}
	value, err = parseNumber(raw, role)
	return
}

// Absent or empty values are zero
func optionalNumber(row track.Row, keys track.DiscoveredKeys, role track.Role) (value float64, err error) {
	raw, ok := row.Get(keys, role)
	if !ok || raw == "" {
		return
	}
	value, err = parseNumber(raw, role)
	return
}

// Out of range values become +/-Inf instead of failing the row
func parseNumber(raw string, role track.Role) (value float64, err error) {
	value, err = strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if errors.Is(err, strconv.ErrRange) {
		err = nil
		return
	}
	if err != nil {
		err = fmt.Errorf("%w: %s value %q", ErrInvalidNumber, role, raw)
		return
	}
	return
}
