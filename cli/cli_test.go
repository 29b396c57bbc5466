package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"TodoAPI/config"
	"TodoAPI/utils/redislog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok", http.StatusOK, false},
		{"no content", http.StatusNoContent, false},
		{"server error", http.StatusServiceUnavailable, true},
		{"not found", http.StatusNotFound, true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			// GIVEN
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			// WHEN
			err := probe(context.Background(), srv.URL)

			// THEN
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProbe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	assert.Error(t, probe(context.Background(), url))
}

func TestHealthcheckCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"healthcheck", "--url", srv.URL + "/docs"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "ok\n", out.String())
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "Todo API 1.0.0\n", out.String())
}

func TestRootRegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range NewRootCommand().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "healthcheck", "audit", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestLogSettings(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", LogType: "file", LogFile: "/tmp/app.log", LogMaxSize: 5, LogMaxBackups: 2, LogMaxAge: 3}

	s := logSettings(cfg)

	assert.Equal(t, "debug", s.Level)
	assert.Equal(t, "file", s.Type)
	assert.Equal(t, "/tmp/app.log", s.FilePath)
	assert.Equal(t, 5, s.MaxSize)
	assert.Equal(t, 2, s.MaxBackups)
	assert.Equal(t, 3, s.MaxAge)
}

func TestWriteEntries(t *testing.T) {
	var out bytes.Buffer
	entries := []redislog.Entry{
		{Level: "info", Event: "task.created", UserID: "u1", Time: "2024-05-01T12:00:00Z"},
		{Level: "warn", Event: "auth.login_failed", Time: "2024-05-01T11:00:00Z"},
	}

	require.NoError(t, writeEntries(&out, entries))

	want := `{"level":"info","event":"task.created","user_id":"u1","time":"2024-05-01T12:00:00Z"}` + "\n" +
		`{"level":"warn","event":"auth.login_failed","time":"2024-05-01T11:00:00Z"}` + "\n"
	assert.Equal(t, want, out.String())
}
