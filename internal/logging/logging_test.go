package logging_test

import (
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/2beens/healthdash/internal/logging"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, logging.GetLevel("debug"))
	assert.Equal(t, logrus.ErrorLevel, logging.GetLevel("ERROR"))
	assert.Equal(t, logrus.FatalLevel, logging.GetLevel("fatal"))
	assert.Equal(t, logrus.InfoLevel, logging.GetLevel("Info"))
	assert.Equal(t, logrus.TraceLevel, logging.GetLevel("trace"))
	assert.Equal(t, logrus.WarnLevel, logging.GetLevel("warn"))
	assert.Equal(t, logrus.TraceLevel, logging.GetLevel("whatever"))
	assert.Equal(t, logrus.TraceLevel, logging.GetLevel(""))
}

func TestSetup_FileOutput(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)
	defer logrus.SetLevel(logrus.InfoLevel)

	logFile := filepath.Join(t.TempDir(), "service")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName: logFile,
		LogLevel:    "warn",
	})
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	logrus.Warnf("steps goal [%d] not reached", 10000)

	content, err := os.ReadFile(logFile + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(content), "steps goal [10000] not reached")
}

func TestSentryHook(t *testing.T) {
	var mu sync.Mutex
	var events []*sentry.Event

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn: "https://public@sentry.example.com/1",
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
			// never hit the network
			return nil
		},
	})
	require.NoError(t, err)

	hub := sentry.NewHub(client, sentry.NewScope())
	hook := logging.NewSentryHookWithHub(hub, []logrus.Level{logrus.ErrorLevel})
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	logger := logrus.New()
	logger.SetOutput(&discard{})
	logger.AddHook(hook)

	logger.Info("not forwarded")
	logger.WithError(errors.New("redis down")).
		WithField("date", "2023-10-07").
		Error("derive summary failed")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 1)
	assert.Equal(t, "derive summary failed", events[0].Message)
	assert.Equal(t, sentry.LevelError, events[0].Level)
	assert.Equal(t, "2023-10-07", events[0].Extra["date"])
	require.Len(t, events[0].Exception, 1)
	assert.Equal(t, "redis down", events[0].Exception[0].Value)
}

func TestSentryHook_NoClient(t *testing.T) {
	hook := logging.NewSentryHookWithHub(sentry.NewHub(nil, sentry.NewScope()), []logrus.Level{logrus.ErrorLevel})
	assert.Error(t, hook.Fire(logrus.NewEntry(logrus.New())))
}

func TestLogstashHook(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	hook, err := logging.NewLogstashHook(pc.LocalAddr().String(), "healthdash-test")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(&discard{})
	logger.AddHook(hook)
	logger.WithField("view", "calendar").Info("navigated")

	require.NoError(t, pc.SetReadDeadline(time.Now().Add(3*time.Second)))
	buf := make([]byte, 4096)
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)

	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(buf[:n], &msg))
	assert.Equal(t, "navigated", msg["message"])
	assert.Equal(t, "healthdash-test", msg["type"])
	assert.Equal(t, "calendar", msg["view"])
}

type discard struct{}

func (d *discard) Write(p []byte) (int, error) {
	return len(p), nil
}
