package track

import "errors"

// Semantic column roles looked up in a track file header
type Role string

const (
	RoleLat       Role = "lat"
	RoleLon       Role = "lon"
	RoleAlt       Role = "alt"
	RoleSpeed     Role = "speed"
	RoleBearing   Role = "bearing"
	RoleCallsign  Role = "callsign"
	RoleTimestamp Role = "timestamp"
)

// Lookup order used when resolving a header
var Roles = []Role{RoleLat, RoleLon, RoleAlt, RoleSpeed, RoleBearing, RoleCallsign, RoleTimestamp}

// Candidate header names per role, in priority order
type AliasSet map[Role][]string

// Header name chosen for each role. Roles without a match are absent.
type DiscoveredKeys map[Role]string

// One data line keyed by header name
type Row map[string]string

var (
	ErrMissingHeader  = errors.New("required column not present in header")
	ErrColumnMismatch = errors.New("field count does not match header")
)
