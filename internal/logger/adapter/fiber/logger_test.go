package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/portal-prestadores/portal/internal/logger/adapter/fiber"

	"github.com/portal-prestadores/portal/internal/logger"
)

type accessEntry struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	SID    string `json:"sid"`
	Error  string `json:"error"`
}

var consoleJSON = logger.Log{ //nolint:gochecknoglobals
	EnableAccessLogToConsole: true,
	Console:                  logger.Console{Enabled: true},
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		target string
		config adapter.Config
		want   *accessEntry
	}{
		{
			name:   "nothing enabled no output",
			target: "/",
		},
		{
			name:   "get root",
			target: "/",
			config: adapter.Config{Config: consoleJSON},
			want:   &accessEntry{IP: "0.0.0.0", Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:   "multiple slashes kept",
			target: "//dashboard",
			config: adapter.Config{Config: consoleJSON},
			want:   &accessEntry{IP: "0.0.0.0", Status: 404, URI: "//dashboard", Method: fiber.MethodGet, Host: "example.com", Error: "Cannot GET //dashboard"},
		},
		{
			name:   "query string kept",
			target: "/?pagina=2",
			config: adapter.Config{Config: consoleJSON},
			want:   &accessEntry{IP: "0.0.0.0", Status: 200, URI: "/?pagina=2", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:   "session id logged",
			target: "/sid",
			config: adapter.Config{Config: consoleJSON, SessionKey: "sid"},
			want:   &accessEntry{IP: "0.0.0.0", Status: 200, URI: "/sid", Method: fiber.MethodGet, Host: "example.com", SID: "abc"},
		},
		{
			name:   "chain error logged",
			target: "/fail",
			config: adapter.Config{Config: consoleJSON},
			want: &accessEntry{
				IP: "0.0.0.0", Status: 418, URI: "/fail", Method: fiber.MethodGet, Host: "example.com",
				Error: "I'm a teapot",
			},
		},
		{
			name:   "skipped path",
			target: "/metrics",
			config: adapter.Config{
				Config: logger.Log{
					EnableAccessLogToConsole: true,
					DisableCheckAlive:        true,
					Console:                  logger.Console{Enabled: true},
				},
				SkipPaths: []string{"/metrics"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := serve(t, tt.target, tt.config)

			if tt.want == nil {
				assert.Empty(t, output)

				return
			}

			require.NotEmpty(t, output)

			var got accessEntry
			require.NoError(t, json.Unmarshal([]byte(output), &got))
			assert.Equal(t, *tt.want, got)
		})
	}
}

func serve(t *testing.T, target string, cfg adapter.Config) string {
	t.Helper()

	stdout := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	app := fiber.New(fiber.Config{CaseSensitive: true, Immutable: true})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("sid", "abc")

		return c.Next()
	})
	app.Use(adapter.New(cfg))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/sid", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/fail", func(*fiber.Ctx) error { return fiber.ErrTeapot })

	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer

		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout

	require.NoError(t, err)

	return <-outC
}
