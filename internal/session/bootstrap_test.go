package session

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/notify"
)

type fetcherFunc func(ctx context.Context, id int64) (*api.User, error)

func (f fetcherFunc) GetUser(ctx context.Context, id int64) (*api.User, error) {
	return f(ctx, id)
}

type countingFetcher struct {
	calls atomic.Int32
	user  *api.User
	err   error
}

func (c *countingFetcher) GetUser(_ context.Context, _ int64) (*api.User, error) {
	c.calls.Add(1)

	return c.user, c.err
}

var testRoutes = Routes{Login: "/login", Recovery: "/recuperar-senha"} //nolint:gochecknoglobals

func newBootstrapFixture(t *testing.T, fetcher UserFetcher) (*Bootstrapper, *Store, *KV, *PendingNavigator, *notify.Queue) {
	t.Helper()

	store, kv, nav := newTestStore(t)
	queue := notify.NewQueue(4)

	return NewBootstrapper(fetcher, queue, nav, testRoutes, ""), store, kv, nav, queue
}

func TestRoutes_EntryPoint(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/login", true},
		{"/LOGIN", true},
		{"/login/", true},
		{"/recuperar-senha", true},
		{"/Recuperar-Senha/token", true},
		{"/dashboard", false},
		{"/", false},
		{"/contratos/login", false},
		{"/loginfoo", false},
		{"/recuperar-senhaX", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, testRoutes.EntryPoint(tt.path))
		})
	}
}

func TestBootstrap_LookalikePathIsNotEntryPoint(t *testing.T) {
	b, store, _, nav, _ := newBootstrapFixture(t, &countingFetcher{})

	outcome := b.Run(context.Background(), store, "/loginfoo")

	assert.Equal(t, OutcomeAnonymous, outcome)

	target, ok := nav.Pending()
	require.True(t, ok)
	assert.Equal(t, "/login", target)
}

func TestBootstrap_NoIdentifierOnLogin(t *testing.T) {
	fetcher := &countingFetcher{}
	b, store, _, nav, queue := newBootstrapFixture(t, fetcher)

	outcome := b.Run(context.Background(), store, "/login")

	assert.Equal(t, OutcomeEntryPoint, outcome)
	assert.Equal(t, LoadingSettled, store.Loading())
	assert.Zero(t, fetcher.calls.Load(), "no network call on an entry point")

	_, navigated := nav.Take()
	assert.False(t, navigated)
	assert.Zero(t, queue.Len())
}

func TestBootstrap_IdentifierOnEntryPointSkipsResolution(t *testing.T) {
	fetcher := &countingFetcher{}
	b, store, kv, _, _ := newBootstrapFixture(t, fetcher)

	require.NoError(t, kv.Set(IdentifierKey, "7"))

	outcome := b.Run(context.Background(), store, "/recuperar-senha")

	assert.Equal(t, OutcomeEntryPoint, outcome)
	assert.True(t, store.Settled())
	assert.Nil(t, store.Principal())
	assert.Zero(t, fetcher.calls.Load())
}

func TestBootstrap_NoIdentifierOnProtectedRoute(t *testing.T) {
	fetcher := &countingFetcher{}
	b, store, _, nav, _ := newBootstrapFixture(t, fetcher)

	outcome := b.Run(context.Background(), store, "/contratos")

	assert.Equal(t, OutcomeAnonymous, outcome)
	assert.True(t, store.Settled())
	assert.Nil(t, store.Principal())
	assert.Zero(t, fetcher.calls.Load())

	target, ok := nav.Take()
	require.True(t, ok)
	assert.Equal(t, "/login", target)
}

func TestBootstrap_Resume(t *testing.T) {
	fetcher := &countingFetcher{user: &api.User{
		ID:   7,
		Name: "Ana",
		Group: api.Group{ID: 2, Name: "Gestores", Permissions: []api.Permission{
			{Code: "visualizar_contratos"}, {Code: "excluir_contrato"},
		}},
	}}
	b, store, kv, nav, queue := newBootstrapFixture(t, fetcher)

	require.NoError(t, kv.Set(IdentifierKey, "7"))
	require.NoError(t, kv.Set(CredentialKey, "T"))

	outcome := b.Run(context.Background(), store, "/contratos")

	assert.Equal(t, OutcomeResumed, outcome)
	assert.True(t, store.Settled())
	require.NotNil(t, store.Principal())
	assert.Equal(t, "Ana", store.Principal().Name)
	assert.True(t, store.HasAllPermissions([]string{"visualizar_contratos", "excluir_contrato"}))
	assert.Equal(t, "T", store.Token(), "credential survives the resume")
	assert.Equal(t, int32(1), fetcher.calls.Load())

	_, navigated := nav.Take()
	assert.False(t, navigated)
	assert.Zero(t, queue.Len())
}

func TestBootstrap_Failure(t *testing.T) {
	tests := []struct {
		name string
		id   string
		err  error
	}{
		{"unauthorized", "7", &api.Error{StatusCode: http.StatusUnauthorized}},
		{"not found", "7", &api.Error{StatusCode: http.StatusNotFound}},
		{"network", "7", context.DeadlineExceeded},
		{"garbage identifier", "abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &countingFetcher{err: tt.err}
			b, store, kv, nav, queue := newBootstrapFixture(t, fetcher)

			require.NoError(t, kv.Set(IdentifierKey, tt.id))
			require.NoError(t, kv.Set(CredentialKey, "T"))

			outcome := b.Run(context.Background(), store, "/dashboard")

			assert.Equal(t, OutcomeExpired, outcome)
			assert.True(t, store.Settled())
			assert.Nil(t, store.Principal())
			assert.Empty(t, get(t, kv, IdentifierKey))
			assert.Empty(t, get(t, kv, CredentialKey))

			target, ok := nav.Take()
			require.True(t, ok)
			assert.Equal(t, "/login", target)

			notes := queue.Drain()
			require.Len(t, notes, 1)
			assert.Equal(t, DefaultExpiredMessage, notes[0].Message)
		})
	}
}

func TestBootstrap_StaleResumeAfterLogout(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	fetcher := fetcherFunc(func(context.Context, int64) (*api.User, error) {
		close(started)
		<-release

		return &api.User{ID: 7, Name: "Ana"}, nil
	})

	b, store, kv, nav, _ := newBootstrapFixture(t, fetcher)

	require.NoError(t, kv.Set(IdentifierKey, "7"))
	require.NoError(t, kv.Set(CredentialKey, "T"))

	done := make(chan Outcome, 1)

	go func() {
		done <- b.Run(context.Background(), store, "/dashboard")
	}()

	<-started
	store.Logout()
	close(release)

	assert.Equal(t, OutcomeStale, <-done)
	assert.Nil(t, store.Principal(), "late resume does not repopulate the principal")
	assert.Empty(t, get(t, kv, IdentifierKey))
	assert.Empty(t, get(t, kv, CredentialKey))

	target, _ := nav.Take()
	assert.Equal(t, "/login", target)
}

func TestBootstrap_StaleFailureAfterLogin(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	fetcher := fetcherFunc(func(context.Context, int64) (*api.User, error) {
		close(started)
		<-release

		return nil, &api.Error{StatusCode: http.StatusUnauthorized}
	})

	b, store, kv, _, queue := newBootstrapFixture(t, fetcher)

	require.NoError(t, kv.Set(IdentifierKey, "7"))

	done := make(chan Outcome, 1)

	go func() {
		done <- b.Run(context.Background(), store, "/dashboard")
	}()

	<-started
	store.SetPrincipalFromLoginResult(loginResult("NEW", "a"))
	close(release)

	assert.Equal(t, OutcomeStale, <-done)
	require.NotNil(t, store.Principal())
	assert.Equal(t, "NEW", get(t, kv, CredentialKey), "fresh login keeps its credential")
	assert.Zero(t, queue.Len())
}

func TestRejection(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: ErrInvalidIdentifier, want: "invalid identifier"},
		{err: &api.Error{StatusCode: http.StatusUnauthorized}, want: "credential rejected"},
		{err: &api.Error{StatusCode: http.StatusNotFound}, want: "unknown user"},
		{err: &api.Error{StatusCode: http.StatusBadGateway}, want: "backend error"},
		{err: context.DeadlineExceeded, want: "unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, rejection(tt.err))
		})
	}
}
