// Package auth resolves bearer credentials into principals with capability
// sets. Handlers compare capabilities as opaque strings; group and role
// structure never leaks past this package.
package auth

import "github.com/lamergameryt/entrypoint/internal/domain"

const (
	CapViewEvent   = "VIEW_EVENT"
	CapCreateEvent = "CREATE_EVENT"
	CapEditEvent   = "EDIT_EVENT"
)

var groupCapabilities = map[domain.Group][]string{
	domain.GroupUser:    {CapViewEvent},
	domain.GroupManager: {CapViewEvent, CapCreateEvent},
	domain.GroupAdmin:   {CapViewEvent, CapCreateEvent, CapEditEvent},
}

// CapabilitiesOf returns the capability names granted to a group. Unknown
// groups get no capabilities.
func CapabilitiesOf(group domain.Group) []string {
	caps := groupCapabilities[group]
	out := make([]string, len(caps))
	copy(out, caps)
	return out
}
