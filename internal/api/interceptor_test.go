package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portal-prestadores/portal/internal/notify"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (n *navRecorder) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.paths = append(n.paths, path)
}

func (n *navRecorder) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]string(nil), n.paths...)
}

type fixture struct {
	client *Client
	queue  *notify.Queue
	nav    *navRecorder
	clock  *clock.Mock
	auth   chan string
}

func newFixture(t *testing.T, token string, handler http.HandlerFunc) *fixture {
	t.Helper()

	auth := make(chan string, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get("Authorization")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	f := &fixture{
		queue: notify.NewQueue(0),
		nav:   &navRecorder{},
		clock: clock.NewMock(),
		auth:  auth,
	}

	ic := NewInterceptor(http.DefaultTransport, staticToken(token), f.queue, f.nav, f.clock, InterceptorConfig{})

	client, err := New(srv.URL, WithTransport(ic))
	require.NoError(t, err)

	f.client = client

	return f
}

func forbidden(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"` + message + `"}`))
	}
}

func okJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestInterceptor_AttachesBearer(t *testing.T) {
	f := newFixture(t, "T", okJSON(`{"data":[]}`))

	_, err := f.client.ListContracts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer T", <-f.auth)
}

func TestInterceptor_LoginCallHasNoCredential(t *testing.T) {
	f := newFixture(t, "T", okJSON(`{"message":"ok","data":{"token":"N","id":1}}`))

	res, _, err := f.client.Login(context.Background(), "a@b.c", "x")
	require.NoError(t, err)
	assert.Equal(t, "N", res.Token)
	assert.Empty(t, <-f.auth)
}

func TestInterceptor_NoCredentialNoHeader(t *testing.T) {
	f := newFixture(t, "", okJSON(`{"data":[]}`))

	_, err := f.client.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, <-f.auth)
}

func TestInterceptor_ForbiddenBurstNotifiesOnce(t *testing.T) {
	f := newFixture(t, "T", forbidden("Proibido"))

	var wg sync.WaitGroup

	for i := 0; i < 2; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := f.client.ListContracts(context.Background())
			assert.True(t, IsForbidden(err))
			assert.Equal(t, "Proibido", MessageOf(err), "body must reach the caller")
		}()
	}

	wg.Wait()

	got := f.queue.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, notify.Error("Proibido"), got[0])

	f.clock.Add(DefaultCooldown)

	_, err := f.client.ListContracts(context.Background())
	require.Error(t, err)
	assert.Len(t, f.queue.Drain(), 1, "a 403 after the cooldown notifies again")
}

func TestInterceptor_ForbiddenWithoutMessageUsesFallback(t *testing.T) {
	f := newFixture(t, "T", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := f.client.ListUsers(context.Background())
	require.True(t, IsForbidden(err))

	got := f.queue.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, DefaultFallbackMessage, got[0].Message)
}

func TestInterceptor_SentinelSchedulesOneRedirect(t *testing.T) {
	f := newFixture(t, "T", forbidden(DefaultDeniedMessage))

	_, err := f.client.ListContracts(context.Background())
	require.True(t, IsForbidden(err))

	assert.Empty(t, f.nav.Paths(), "navigation must not be immediate")

	f.clock.Add(time.Second)
	assert.Empty(t, f.nav.Paths())

	f.clock.Add(DefaultRedirectDelay - time.Second)
	require.Eventually(t, func() bool { return len(f.nav.Paths()) == 1 }, time.Second, 5*time.Millisecond)

	f.clock.Add(time.Minute)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{DefaultRoute}, f.nav.Paths())
}

func TestInterceptor_OtherMessageNoRedirect(t *testing.T) {
	f := newFixture(t, "T", forbidden("Operação não permitida"))

	_, err := f.client.ListContracts(context.Background())
	require.True(t, IsForbidden(err))

	f.clock.Add(time.Minute)
	time.Sleep(20 * time.Millisecond)

	assert.Empty(t, f.nav.Paths())
	assert.Len(t, f.queue.Drain(), 1)
}

func TestInterceptor_OtherStatusesPropagate(t *testing.T) {
	f := newFixture(t, "T", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"falha interna"}`))
	})

	_, err := f.client.ListContracts(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, "falha interna", MessageOf(err))
	assert.Zero(t, f.queue.Len(), "only 403 is handled by the interceptor")
}

func TestInterceptor_ForbiddenLogKeepsBackendMessageApart(t *testing.T) {
	var buf bytes.Buffer

	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	f := newFixture(t, "T", forbidden("sem acesso ao contrato"))

	_, err := f.client.ListContracts(context.Background())
	require.Error(t, err)

	line := buf.String()
	require.NotEmpty(t, line)
	assert.Contains(t, line, `"backend_message":"sem acesso ao contrato"`)
	assert.Equal(t, 1, strings.Count(line, `"message":`))
}
