package track

import (
	"fmt"
	"strings"
)

// Compiled-in aliases used when the configuration does not override a role
func DefaultAliases() (aliases AliasSet) {
	aliases = AliasSet{
		RoleLat:       {"Latitude (DD)", "Latitude", "lat", "LAT"},
		RoleLon:       {"Longitude (DD)", "Longitude", "lon", "LON"},
		RoleAlt:       {"Altitude (m)", "Altitude", "alt", "hae", "hAE"},
		RoleSpeed:     {"Speed (knots)", "Speed", "speed_knots", "knots"},
		RoleBearing:   {"Bearing (deg)", "Bearing", "heading", "hdg"},
		RoleCallsign:  {"callsign", "Callsign", "Unit_ID", "ID", "Name", "UID"},
		RoleTimestamp: {"timestamp (utc)", "timestamp", "Time (UTC)", "UTC", "DATETIME"},
	}
	return
}

// Overlays user supplied alias lists on the defaults. Empty overrides are ignored.
func MergeAliases(overrides map[string][]string) (aliases AliasSet, err error) {
	aliases = DefaultAliases()
	for name, list := range overrides {
		role := Role(strings.ToLower(strings.TrimSpace(name)))
		if _, known := aliases[role]; !known {
			err = fmt.Errorf("unknown column role %q", name)
			return
		}
		if len(list) == 0 {
			continue
		}
		aliases[role] = append([]string(nil), list...)
	}
	return
}

// Returns the first header (original casing) matching an alias case-insensitively.
// Alias order decides priority, not header order.
func ResolveColumn(headers []string, aliases []string) (header string, found bool) {
	lowered := make(map[string]string, len(headers))
	for _, h := range headers {
		key := strings.ToLower(h)
		if _, dup := lowered[key]; !dup {
			lowered[key] = h
		}
	}

	for _, alias := range aliases {
		header, found = lowered[strings.ToLower(alias)]
		if found {
			return
		}
	}
	return
}

// Resolves every role against the header. Latitude and longitude are mandatory.
func ResolveKeys(headers []string, aliases AliasSet) (keys DiscoveredKeys, err error) {
	keys = make(DiscoveredKeys, len(Roles))
	for _, role := range Roles {
		header, found := ResolveColumn(headers, aliases[role])
		if found {
			keys[role] = header
		}
	}

	var missing []string
	for _, role := range []Role{RoleLat, RoleLon} {
		if _, ok := keys[role]; !ok {
			missing = append(missing, string(role))
		}
	}
	if len(missing) > 0 {
		err = fmt.Errorf("%w: %s (headers: %s)", ErrMissingHeader,
			strings.Join(missing, ", "), strings.Join(headers, ", "))
		return
	}
	return
}
