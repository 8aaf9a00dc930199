package test

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/2beens/healthdash/internal"
	"github.com/2beens/healthdash/internal/config"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	serverHost            = "127.0.0.1"
	settingsAllowedPerMin = 3
)

var testNow = time.Date(2023, time.October, 7, 18, 30, 0, 0, time.UTC)

// IntegrationTestSuite runs the whole service against a redis container.
type IntegrationTestSuite struct {
	suite.Suite

	dockerPool      *dockertest.Pool
	server          *internal.Server
	serverEndpoint  string
	metricsEndpoint string
	httpClient      *http.Client
	teardown        []func()
}

// In order for 'go test' to run this suite, we need to create
// a normal test function and pass our suite to suite.Run
func TestIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration suite skipped in short mode")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

// runs before all tests are executed
func (s *IntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	fmt.Println("setting up test suite...")

	s.teardown = make([]func(), 0)
	s.httpClient = &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   10 * time.Second,
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	var err error
	s.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		s.T().Skipf("could not create new dockertest pool: %s", err)
	}

	// uses pool to try to connect to Docker
	if err = s.dockerPool.Client.Ping(); err != nil {
		s.T().Skipf("could not ping dockertest pool: %s", err)
	}
	fmt.Println("dockertest pool ping successful")

	redisPort, err := s.redisSetup()
	if err != nil {
		s.cleanup()
		log.Fatalf("failed to setup redis: %s", err.Error())
	}
	fmt.Println("redis setup successful")

	cfg := getTestConfig(s.T(), redisPort)
	s.serverEndpoint = fmt.Sprintf("http://%s", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	s.metricsEndpoint = fmt.Sprintf("http://%s", net.JoinHostPort(cfg.PrometheusMetricsHost, cfg.PrometheusMetricsPort))

	s.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             "test-version-info",
			RedisPassword:           "",
			HoneycombTracingEnabled: false,
			Now: func() time.Time {
				return testNow
			},
		},
	)
	if err != nil {
		s.cleanup()
		log.Fatalf("new server: %s", err)
	}
	fmt.Println("server created")

	s.server.Serve(cfg.Host, cfg.Port)
	s.waitForServer()
	fmt.Println("server started")
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.cleanup()
}

func (s *IntegrationTestSuite) cleanup() {
	fmt.Println(" --> cleaning up test suite...")
	if s.server != nil {
		s.server.GracefulShutdown()
	}
	fmt.Println(" --> test suite server shut down")
	for _, teardown := range s.teardown {
		teardown()
	}
	fmt.Println(" --> test suite cleanup done")
}

func getTestConfig(t *testing.T, redisPort string) *config.Config {
	return &config.Config{
		Host:                           serverHost,
		Port:                           freePort(t),
		PrometheusMetricsHost:          serverHost,
		PrometheusMetricsPort:          strconv.Itoa(freePort(t)),
		LogLevel:                       "debug",
		RedisHost:                      "localhost",
		RedisPort:                      redisPort,
		SettingsRateLimitAllowedPerMin: settingsAllowedPerMin,
		LookbackDays:                   7,
		GeneratorSeed:                  21,
		CalendarCacheSizeMB:            1,
	}
}

func freePort(t *testing.T) int {
	l, err := net.Listen("tcp", net.JoinHostPort(serverHost, "0"))
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func (s *IntegrationTestSuite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		if err := redisResource.Close(); err != nil {
			fmt.Printf("redis teardown: %s\n", err)
		}
	})

	redisPort := redisResource.GetPort("6379/tcp")
	if err := s.dockerPool.Retry(func() error {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort("localhost", redisPort), time.Second)
		if err != nil {
			return err
		}
		return conn.Close()
	}); err != nil {
		return "", fmt.Errorf("connect to redis: %w", err)
	}

	return redisPort, nil
}

func (s *IntegrationTestSuite) waitForServer() {
	require.Eventually(s.T(), func() bool {
		resp, err := s.httpClient.Get(s.serverEndpoint + "/")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 100*time.Millisecond)
}

// do sends a request as the local test agent and returns the status and body.
func (s *IntegrationTestSuite) do(ctx context.Context, method, path string, body io.Reader) (int, []byte) {
	t := s.T()

	req, err := http.NewRequestWithContext(ctx, method, s.serverEndpoint+path, body)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBytes
}
