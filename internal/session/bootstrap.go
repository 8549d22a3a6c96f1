package session

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/notify"
)

// DefaultExpiredMessage is shown when a persisted session can not be resumed.
const DefaultExpiredMessage = "Sessão expirada. Faça login novamente."

// Outcome describes how a bootstrap ended.
type Outcome int

const (
	// OutcomeEntryPoint settled without resolution on an unauthenticated route.
	OutcomeEntryPoint Outcome = iota
	// OutcomeAnonymous settled without a persisted identifier and redirected to login.
	OutcomeAnonymous
	// OutcomeResumed populated the principal from the backend.
	OutcomeResumed
	// OutcomeExpired cleared an identifier the backend did not accept.
	OutcomeExpired
	// OutcomeStale discarded a result because the store changed meanwhile.
	OutcomeStale
)

func (o Outcome) String() string {
	return [...]string{"entry_point", "anonymous", "resumed", "expired", "stale"}[o]
}

// UserFetcher loads a full user record by id.
type UserFetcher interface {
	GetUser(ctx context.Context, id int64) (*api.User, error)
}

// Routes are the routes the bootstrapper knows about.
type Routes struct {
	Login    string
	Recovery string
}

// EntryPoint reports whether path is an unauthenticated entry point: the route
// itself or a path below it, compared case-insensitively.
func (r Routes) EntryPoint(path string) bool {
	p := strings.TrimRight(strings.ToLower(path), "/")

	for _, route := range []string{r.Login, r.Recovery} {
		route = strings.TrimRight(strings.ToLower(route), "/")
		if route == "" {
			continue
		}

		if p == route || strings.HasPrefix(p, route+"/") {
			return true
		}
	}

	return false
}

// Bootstrapper reconciles durable storage with a live principal when a
// portal session is mounted.
type Bootstrapper struct {
	fetcher        UserFetcher
	notifier       notify.Notifier
	nav            Navigator
	routes         Routes
	expiredMessage string
}

// NewBootstrapper creates a bootstrapper. An empty expiredMessage uses DefaultExpiredMessage.
func NewBootstrapper(
	fetcher UserFetcher,
	notifier notify.Notifier,
	nav Navigator,
	routes Routes,
	expiredMessage string,
) *Bootstrapper {
	if expiredMessage == "" {
		expiredMessage = DefaultExpiredMessage
	}

	return &Bootstrapper{
		fetcher:        fetcher,
		notifier:       notifier,
		nav:            nav,
		routes:         routes,
		expiredMessage: expiredMessage,
	}
}

// Run bootstraps store for a session first seen at path.
func (b *Bootstrapper) Run(ctx context.Context, store *Store, path string) Outcome {
	gen := store.beginBootstrap()
	entry := b.routes.EntryPoint(path)
	rawID := store.Identifier()

	switch {
	case rawID == "" && !entry:
		if !store.settle(gen) {
			return OutcomeStale
		}

		b.navigate(b.routes.Login)

		return OutcomeAnonymous
	case entry:
		if !store.settle(gen) {
			return OutcomeStale
		}

		return OutcomeEntryPoint
	}

	user, err := b.fetch(ctx, rawID)
	if err == nil {
		if !store.resolve(gen, PrincipalFromUser(user)) {
			log.Debug().Str("id", rawID).Msg("discarding stale session resume")

			return OutcomeStale
		}

		return OutcomeResumed
	}

	log.Info().Err(err).Str("id", rawID).Str("reason", rejection(err)).Msg("persisted session rejected")

	if !store.reject(gen) {
		return OutcomeStale
	}

	if b.notifier != nil {
		b.notifier.Notify(notify.Warning(b.expiredMessage))
	}

	b.navigate(b.routes.Login)

	return OutcomeExpired
}

// rejection names why a persisted identifier could not be resumed.
func rejection(err error) string {
	switch {
	case errors.Is(err, ErrInvalidIdentifier):
		return "invalid identifier"
	case api.IsUnauthorized(err):
		return "credential rejected"
	case api.IsNotFound(err):
		return "unknown user"
	case api.StatusOf(err) != 0:
		return "backend error"
	default:
		return "unreachable"
	}
}

func (b *Bootstrapper) fetch(ctx context.Context, rawID string) (*api.User, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, ErrInvalidIdentifier
	}

	return b.fetcher.GetUser(ctx, id) //nolint:wrapcheck
}

func (b *Bootstrapper) navigate(path string) {
	if b.nav != nil {
		b.nav.Navigate(path)
	}
}
