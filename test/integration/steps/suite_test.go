package steps

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/epiwatch/backend/config"
	"github.com/epiwatch/backend/internal/domain/entity"
	"github.com/epiwatch/backend/internal/infra/dependency"
	"github.com/epiwatch/backend/internal/integration/persistence/model"
	"github.com/epiwatch/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		Name:                "epiwatch-api",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"../features"},
			Tags:        tags,
			Concurrency: 1,
			Strict:      true,
			TestingT:    t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("feature suite failed")
	}
}

// scenario is the per-scenario state shared by every step.
type scenario struct {
	baseURL  string
	client   *http.Client
	store    *mock.Store
	headers  map[string]string
	response *apiResponse

	accessToken  string
	refreshToken string
	userID       uuid.UUID
	facilityID   uuid.UUID
	submissionID uuid.UUID
}

var (
	server struct {
		once sync.Once
		port int
		err  error
	}
	portOnce sync.Once
)

func serverPort() int {
	portOnce.Do(func() {
		listener, err := net.Listen("tcp", ":0")
		if err != nil {
			panic(err)
		}
		server.port = listener.Addr().(*net.TCPAddr).Port
		_ = listener.Close()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(server.port))
		_ = os.Setenv("ENV", "test")
	})
	return server.port
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	store, err := mock.SharedStore(model.All())
	if err != nil {
		panic(err)
	}
	s := &scenario{
		baseURL: fmt.Sprintf("http://localhost:%d", serverPort()),
		client:  &http.Client{Timeout: 10 * time.Second},
		store:   store,
	}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.reset(ctx)
	})

	ctx.Given(`^the API server is running$`, s.theAPIServerIsRunning)

	ctx.Given(`^a user exists with email "([^"]*)"$`, s.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, s.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user is logged in with valid tokens$`, s.theUserIsLoggedInWithValidTokens)
	ctx.Given(`^I am logged in as a "([^"]*)"$`, s.iAmLoggedInAsA)

	ctx.Given(`^a facility "([^"]*)" exists with population (\d+)$`, s.aFacilityExistsWithPopulation)
	ctx.Given(`^the facility has the contact "([^"]*)"$`, s.theFacilityHasTheContact)
	ctx.Given(`^a "([^"]*)" submission exists for "([^"]*)" with (\d+) cases and (\d+) deaths$`, s.aSubmissionExists)

	ctx.Given(`^the header is empty$`, s.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, s.theHeaderContainsTheKeyWith)

	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, s.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, s.iSendARequestToWithBody)
	ctx.When(`^the reminder job runs$`, s.theReminderJobRuns)

	ctx.Then(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, s.theResponseFieldShouldExist)

	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, s.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, s.theDbShouldContainObjectsInWithTheValues)
}

func (s *scenario) reset(ctx context.Context) error {
	s.headers = map[string]string{}
	s.response = nil
	s.accessToken, s.refreshToken = "", ""
	s.userID, s.facilityID, s.submissionID = uuid.Nil, uuid.Nil, uuid.Nil

	if err := s.store.Reset(); err != nil {
		return err
	}
	return mock.FlushRedis(ctx)
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Server.Port = serverPort()
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.BcryptCost = bcrypt.MinCost
	cfg.RateLimit.LoginAttempts = 1000
	cfg.Email.WorkerEnabled = false
	cfg.Reminder.Enabled = false
	cfg.Timeline.Timezone = "UTC"
	cfg.Timeline.DefaultGranularity = string(entity.GranularityWeek)
	cfg.Timeline.WindowSize = 0
	cfg.Timeline.StatusCache = "redis"
	return cfg
}

// theAPIServerIsRunning boots the server once per process and waits for its
// health check.
func (s *scenario) theAPIServerIsRunning() error {
	server.once.Do(func() {
		gin.SetMode(gin.TestMode)
		injector, err := dependency.NewInjector(testConfig(), s.store.Conn, mock.Redis())
		if err != nil {
			server.err = fmt.Errorf("wire server: %w", err)
			return
		}
		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", serverPort()),
			Handler: injector.Router.Setup("test"),
		}
		go func() { _ = srv.ListenAndServe() }()
	})
	if server.err != nil {
		return server.err
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := s.client.Get(s.baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return errors.New("server did not become healthy")
}
