// Package session holds the per-browser portal session: who is signed in,
// whether that is known yet, and the durable keys that survive a reload.
package session

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/permission"
)

// Loading is the resolution state of the principal.
type Loading int

const (
	// LoadingNotStarted is the state before the bootstrap ran.
	LoadingNotStarted Loading = iota
	// LoadingInProgress means the principal is being resolved.
	LoadingInProgress
	// LoadingSettled means the principal, or its absence, is final.
	LoadingSettled
)

func (l Loading) String() string {
	switch l {
	case LoadingNotStarted:
		return "not_started"
	case LoadingInProgress:
		return "in_progress"
	case LoadingSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Group is the group a principal belongs to.
type Group struct {
	ID   int64
	Name string
}

// Principal is the authenticated user of a session.
// Its permission set is derived from exactly one group and never edited in place.
type Principal struct {
	ID          int64
	Name        string
	Email       string
	Group       Group
	Permissions permission.Set
}

// PrincipalFromUser builds a principal from a backend user record.
func PrincipalFromUser(u *api.User) *Principal {
	if u == nil {
		return nil
	}

	codes := u.Group.PermissionCodes()

	for _, code := range codes {
		if !permission.Known(code) {
			log.Warn().Int64("user", u.ID).Str("permission", code).Msg("backend granted an unknown permission code")
		}
	}

	return &Principal{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Group:       Group{ID: u.Group.ID, Name: u.Group.Name},
		Permissions: permission.NewSet(codes...),
	}
}

// Snapshot is a consistent view of the store handed to subscribers.
type Snapshot struct {
	Principal  *Principal
	Loading    Loading
	Generation uint64
}

// Store is the session store of one portal session.
//
// The identifier and credential keys in durable storage change together with
// the in-memory principal. Every principal mutation advances the generation so
// that a bootstrap started before it can detect it is stale.
type Store struct {
	mu         sync.RWMutex
	principal  *Principal
	loading    Loading
	generation uint64

	durable    Durable
	nav        Navigator
	loginRoute string

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewStore creates an empty store. nav receives the navigation to loginRoute on logout.
func NewStore(durable Durable, nav Navigator, loginRoute string) *Store {
	return &Store{
		durable:    durable,
		nav:        nav,
		loginRoute: loginRoute,
		subs:       make(map[int]func(Snapshot)),
	}
}

// Principal returns the current principal or nil.
func (s *Store) Principal() *Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.principal
}

// Loading returns the current loading state.
func (s *Store) Loading() Loading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// Settled reports whether the principal has been resolved.
func (s *Store) Settled() bool {
	return s.Loading() == LoadingSettled
}

// Generation returns the current generation.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.generation
}

// Snapshot returns principal, loading state and generation read together.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Principal: s.principal, Loading: s.loading, Generation: s.generation}
}

// SetPrincipal replaces the principal. A non-nil principal persists its id under
// the identifier key; nil removes both the identifier and the credential key.
func (s *Store) SetPrincipal(p *Principal) {
	s.mu.Lock()
	s.setPrincipalLocked(p)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

func (s *Store) setPrincipalLocked(p *Principal) {
	s.principal = p
	s.generation++

	if p == nil {
		s.removeKeysLocked()

		return
	}

	s.write(IdentifierKey, strconv.FormatInt(p.ID, 10))
}

// SetPrincipalFromLoginResult installs the principal of a successful login,
// persists its credential and settles loading.
func (s *Store) SetPrincipalFromLoginResult(res *api.LoginResult) {
	if res == nil {
		return
	}

	user := res.User
	if user.ID == 0 {
		user.ID = res.ID
	}

	s.mu.Lock()
	s.setPrincipalLocked(PrincipalFromUser(&user))
	s.write(CredentialKey, res.Token)
	s.loading = LoadingSettled
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// Logout clears the principal and both durable keys, marks loading in progress
// and requests a full navigation to the login route.
func (s *Store) Logout() {
	s.mu.Lock()
	s.principal = nil
	s.generation++
	s.loading = LoadingInProgress
	s.removeKeysLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)

	if s.nav != nil {
		s.nav.Navigate(s.loginRoute)
	}
}

// Token returns the persisted credential, "" when absent.
func (s *Store) Token() string {
	return s.read(CredentialKey)
}

// Identifier returns the persisted principal id, "" when absent.
func (s *Store) Identifier() string {
	return s.read(IdentifierKey)
}

// HasPermission reports whether the principal holds code.
func (s *Store) HasPermission(code string) bool {
	return permission.Has(s.permissions(), code)
}

// HasAnyPermission reports whether the principal holds at least one of codes.
func (s *Store) HasAnyPermission(codes []string) bool {
	return permission.HasAny(s.permissions(), codes)
}

// HasAllPermissions reports whether the principal holds every one of codes.
func (s *Store) HasAllPermissions(codes []string) bool {
	return permission.HasAll(s.permissions(), codes)
}

func (s *Store) permissions() permission.Set {
	p := s.Principal()
	if p == nil {
		return nil
	}

	if p.Permissions == nil {
		return permission.Set{}
	}

	return p.Permissions
}

// Subscribe registers fn to be called with a snapshot after every change.
// Calls happen outside the store lock, in the goroutine making the change.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()

		delete(s.subs, id)
	}
}

func (s *Store) publish(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))

	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// beginBootstrap marks loading in progress and returns the generation the
// bootstrap result is valid for.
func (s *Store) beginBootstrap() uint64 {
	s.mu.Lock()
	s.loading = LoadingInProgress
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)

	return snap.Generation
}

// settle marks loading settled unless gen is stale.
func (s *Store) settle(gen uint64) bool {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()

		return false
	}

	s.loading = LoadingSettled
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)

	return true
}

// resolve installs p and settles loading unless gen is stale.
func (s *Store) resolve(gen uint64, p *Principal) bool {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()

		return false
	}

	s.setPrincipalLocked(p)
	s.loading = LoadingSettled
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)

	return true
}

// reject clears the principal and both keys and settles loading unless gen is stale.
func (s *Store) reject(gen uint64) bool {
	return s.resolve(gen, nil)
}

func (s *Store) removeKeysLocked() {
	s.remove(IdentifierKey)
	s.remove(CredentialKey)
}

func (s *Store) read(key string) string {
	if s.durable == nil {
		return ""
	}

	v, err := s.durable.Get(key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("session storage read failed")

		return ""
	}

	return v
}

func (s *Store) write(key, value string) {
	if s.durable == nil {
		return
	}

	if err := s.durable.Set(key, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("session storage write failed")
	}
}

func (s *Store) remove(key string) {
	if s.durable == nil {
		return
	}

	if err := s.durable.Delete(key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("session storage delete failed")
	}
}
