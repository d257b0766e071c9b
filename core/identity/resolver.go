package identity

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/apexdrive/console/core"
)

var (
	ErrNotInternal  = errors.New("only internal staff may view as an organization")
	ErrNoOrg        = errors.New("an organization is required to impersonate")
	ErrInvalidState = errors.New("invalid impersonation state")
)

// StateStore persists the impersonation overlay across sessions.
// Implementations live under storage/local.
type StateStore interface {
	// Load returns the raw persisted entry, or nil when absent.
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

// Resolver resolves the effective data scope of an actor, applying the
// impersonation overlay when active. Safe for concurrent use.
type Resolver struct {
	store  StateStore
	logger core.Logger

	mu      sync.RWMutex
	imp     Impersonation
	version uint64
}

func NewResolver(store StateStore, logger core.Logger) *Resolver {
	r := &Resolver{store: store, logger: logger}
	r.imp = r.loadState()
	return r
}

// loadState reads the persisted overlay. A missing or malformed entry never
// surfaces as an error: it is cleared and treated as "not impersonating".
func (r *Resolver) loadState() Impersonation {
	data, err := r.store.Load()
	if err != nil {
		r.logger.Warn("reading impersonation state", err)
		return Impersonation{}
	}
	if data == nil {
		return Impersonation{}
	}

	var imp Impersonation
	if err = json.Unmarshal(data, &imp); err != nil || !imp.valid() {
		if err == nil {
			err = ErrInvalidState
		}
		r.logger.Warn("clearing malformed impersonation state", err)
		if cErr := r.store.Clear(); cErr != nil {
			r.logger.Error("clearing impersonation state", cErr)
		}
		return Impersonation{}
	}
	return imp
}

// Resolve computes the actor's effective scope under the current overlay.
//
// Impersonation always narrows the scope to exactly one organization, even
// for internal staff. Otherwise internal staff are unrestricted and client
// actors see the union of their direct and team organization memberships.
func (r *Resolver) Resolve(ident Identity) Resolution {
	r.mu.RLock()
	imp := r.imp
	r.mu.RUnlock()

	if imp.Active {
		return Resolution{OrgIDs: []string{imp.OrgID}, Impersonating: true}
	}
	if ident.Role.Internal() {
		return Resolution{Unrestricted: true}
	}
	return Resolution{OrgIDs: core.UniqueStrings(ident.OrgIDs, ident.TeamOrgIDs)}
}

// Impersonation returns a copy of the current overlay.
func (r *Resolver) Impersonation() Impersonation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.imp
}

// ScopeVersion increments every time the overlay toggles. In-flight reads
// capture it before fetching and discard their response if it moved.
func (r *Resolver) ScopeVersion() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// StartImpersonation activates the overlay for the given organization and
// persists it. The impersonated role is always client_admin.
func (r *Resolver) StartImpersonation(orgID string, current Role) error {
	if !current.Internal() {
		return ErrNotInternal
	}
	if orgID == "" {
		return ErrNoOrg
	}

	imp := Impersonation{
		Active:       true,
		OriginalRole: current,
		OrgID:        orgID,
		Role:         RoleClientAdmin,
	}
	data, err := json.Marshal(imp)
	if err != nil {
		return errors.Wrap(err, "marshalling impersonation state")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err = r.store.Save(data); err != nil {
		return errors.Wrap(err, "persisting impersonation state")
	}
	r.imp = imp
	r.version++
	return nil
}

// ExitImpersonation clears both the in-memory and the persisted overlay.
func (r *Resolver) ExitImpersonation() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Clear(); err != nil {
		return errors.Wrap(err, "clearing impersonation state")
	}
	r.imp = Impersonation{}
	r.version++
	return nil
}
