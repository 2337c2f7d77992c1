package domain

import "sort"

// Capability names one console permission from the closed enumeration.
type Capability string

// The capability enumeration. Stored values must match these strings exactly.
const (
	CapMessages  Capability = "messages"
	CapBlog      Capability = "blog"
	CapProjects  Capability = "projects"
	CapTeam      Capability = "team"
	CapAwards    Capability = "awards"
	CapSettings  Capability = "settings"
	CapAnalytics Capability = "analytics"
	CapUsers     Capability = "users"
	CapServices  Capability = "services"
)

// AllCapabilities lists the enumeration in console order.
var AllCapabilities = []Capability{
	CapMessages, CapBlog, CapProjects, CapTeam, CapAwards,
	CapSettings, CapAnalytics, CapUsers, CapServices,
}

// ParseCapability returns the capability named by s. Unknown strings are
// rejected so that a stray stored value never grants anything.
func ParseCapability(s string) (Capability, bool) {
	c := Capability(s)
	switch c {
	case CapMessages, CapBlog, CapProjects, CapTeam, CapAwards,
		CapSettings, CapAnalytics, CapUsers, CapServices:
		return c, true
	}
	return "", false
}

// Grantable reports whether c may be granted as an explicit capability row.
// "users" is reachable only through the unrestricted flag.
func (c Capability) Grantable() bool {
	_, ok := ParseCapability(string(c))
	return ok && c != CapUsers
}

// GrantableCapabilities lists the capabilities offered by grant forms.
func GrantableCapabilities() []Capability {
	out := make([]Capability, 0, len(AllCapabilities)-1)
	for _, c := range AllCapabilities {
		if c.Grantable() {
			out = append(out, c)
		}
	}
	return out
}

// Label returns the console label for the capability.
func (c Capability) Label() string {
	switch c {
	case CapMessages:
		return "Messages"
	case CapBlog:
		return "Blog"
	case CapProjects:
		return "Projects"
	case CapTeam:
		return "Team"
	case CapAwards:
		return "Awards"
	case CapSettings:
		return "Settings"
	case CapAnalytics:
		return "Analytics"
	case CapUsers:
		return "Users"
	case CapServices:
		return "Services"
	}
	return string(c)
}

// Access is the resolved authorization snapshot of one principal.
type Access struct {
	IsUnrestricted bool
	Capabilities   map[Capability]bool
}

// NoAccess is the snapshot for anonymous callers and failed resolutions.
func NoAccess() Access {
	return Access{Capabilities: map[Capability]bool{}}
}

// UnrestrictedAccess materialises every capability for a super admin.
func UnrestrictedAccess() Access {
	caps := make(map[Capability]bool, len(AllCapabilities))
	for _, c := range AllCapabilities {
		caps[c] = true
	}
	return Access{IsUnrestricted: true, Capabilities: caps}
}

// RestrictedAccess builds a snapshot from stored capability strings. Values
// outside the enumeration are dropped.
func RestrictedAccess(stored []string) Access {
	a := NoAccess()
	for _, s := range stored {
		if c, ok := ParseCapability(s); ok {
			a.Capabilities[c] = true
		}
	}
	return a
}

// Has reports whether the snapshot includes capability c.
func (a Access) Has(c Capability) bool {
	if a.IsUnrestricted {
		return true
	}
	return a.Capabilities[c]
}

// IsAdmin reports whether the snapshot reaches any part of the console.
func (a Access) IsAdmin() bool {
	return a.IsUnrestricted || len(a.Capabilities) > 0
}

// List returns the held capabilities in enumeration order.
func (a Access) List() []Capability {
	out := make([]Capability, 0, len(a.Capabilities))
	for _, c := range AllCapabilities {
		if a.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Strings returns the held capabilities as sorted strings.
func (a Access) Strings() []string {
	caps := a.List()
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	sort.Strings(out)
	return out
}
