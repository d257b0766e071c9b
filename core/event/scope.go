package event

import (
	"strings"

	"github.com/apexdrive/console/core/identity"
)

// QueryScope constrains the backend event read to the actor's resolved
// scope. It never inspects event content.
type QueryScope struct {
	// Unrestricted applies no organization constraint.
	Unrestricted bool
	// OrgIDs restricts the read to hosting organizations in the set.
	OrgIDs []string
	// Empty short-circuits to an empty result without issuing the read.
	// Guards misconfigured accounts with no membership at all.
	Empty bool
}

// BuildQueryScope maps a resolution onto a query scope. Must be recomputed
// whenever impersonation state changes.
func BuildQueryScope(res identity.Resolution) QueryScope {
	if res.Unrestricted {
		return QueryScope{Unrestricted: true}
	}
	if len(res.OrgIDs) == 0 {
		return QueryScope{Empty: true}
	}
	return QueryScope{OrgIDs: res.OrgIDs}
}

// Key is a stable cache-key fragment for the scope.
func (s QueryScope) Key() string {
	if s.Unrestricted {
		return "all"
	}
	return strings.Join(s.OrgIDs, ",")
}
