package cot

import (
	"encoding/xml"
	"errors"
	"time"
)

const (
	Version  string = "2.0"
	Header   string = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	HowGPS   string = "m-g" // machine generated, GPS derived
	HowHuman string = "h-e" // human entered
	LinkDrop string = "t-d"
)

var (
	ErrMissingCoordinate = errors.New("missing latitude or longitude")
	ErrInvalidNumber     = errors.New("invalid numerical value")
)

// Builds position and removal events for a single destination type pair
type Encoder struct {
	PositionType string
	RemovalType  string
	Stale        time.Duration // position lifetime
	RemovalStale time.Duration
	KnotsToMS    float64
	Uncertainty  float64 // ce and le of position events
	Unknown      float64 // ce and le of removal events
	Now          func() time.Time
}

type Event struct {
	XMLName xml.Name `xml:"event"`
	Version string   `xml:"version,attr"`
	UID     string   `xml:"uid,attr"`
	Type    string   `xml:"type,attr"`
	How     string   `xml:"how,attr"`
	Time    string   `xml:"time,attr"`
	Start   string   `xml:"start,attr"`
	Stale   string   `xml:"stale,attr"`
	Point   Point    `xml:"point"`
	Detail  Detail   `xml:"detail"`
}

type Point struct {
	Lat string `xml:"lat,attr"`
	Lon string `xml:"lon,attr"`
	Hae string `xml:"hae,attr"`
	Ce  string `xml:"ce,attr"`
	Le  string `xml:"le,attr"`
}

type Detail struct {
	UID     *DetailUID `xml:"uid,omitempty"`
	Contact *Contact   `xml:"contact,omitempty"`
	Track   *Track     `xml:"track,omitempty"`
	Link    *Link      `xml:"link,omitempty"`
}

type DetailUID struct {
	Droid string `xml:"DUID,attr"`
}

type Contact struct {
	Callsign string `xml:"callsign,attr"`
}

type Track struct {
	Course string `xml:"course,attr"`
	Speed  string `xml:"speed,attr"`
}

type Link struct {
	UID      string `xml:"uid,attr"`
	Type     string `xml:"type,attr"`
	Relation string `xml:"relation,attr"`
}
