package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/model"
	"talk-to-legends-be/internal/pkg/logger"
	"talk-to-legends-be/internal/pkg/ratelimit"
	"talk-to-legends-be/internal/pkg/serverutils"
	"talk-to-legends-be/internal/repository/memory"
	"talk-to-legends-be/internal/repository/unitofwork"
	"talk-to-legends-be/internal/service"
	"talk-to-legends-be/pkg/billing"
	"talk-to-legends-be/pkg/database"
	"talk-to-legends-be/pkg/events"
	"talk-to-legends-be/pkg/llm"
	"talk-to-legends-be/pkg/lock"
	"talk-to-legends-be/pkg/persona"
	"talk-to-legends-be/pkg/plan"
	"talk-to-legends-be/pkg/reply"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "controller-secret"

type downProvider struct{}

func (downProvider) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return "", errors.New("model loading")
}

func (downProvider) Generate(context.Context, string, ...llm.Option) (string, error) {
	return "", errors.New("model loading")
}

type stubSynthesizer struct{ calls int }

func (s *stubSynthesizer) Synthesize(context.Context, string, persona.VoiceProfile) ([]byte, error) {
	s.calls++
	return []byte("ID3-audio"), nil
}

type stubGateway struct {
	event *billing.Event
}

func (g *stubGateway) Name() string { return "stripe" }

func (g *stubGateway) EnsureCustomer(context.Context, billing.CustomerInput) (string, error) {
	return "cus_stub", nil
}

func (g *stubGateway) CreateCheckout(_ context.Context, in billing.CheckoutInput) (*billing.CheckoutSession, error) {
	return &billing.CheckoutSession{Id: "cs_stub", URL: "https://checkout.example/" + in.Plan}, nil
}

func (g *stubGateway) ParseEvent(_ context.Context, _ []byte, signature string) (*billing.Event, error) {
	switch {
	case signature == "":
		return nil, billing.ErrMissingSignature
	case signature != "valid":
		return nil, billing.ErrInvalidSignature
	}
	return g.event, nil
}

type testApp struct {
	app         *fiber.App
	factory     unitofwork.RepositoryFactory
	gateway     *stubGateway
	synthesizer *stubSynthesizer
}

type appOption func(*appSettings)

type appSettings struct {
	perMinute, burst int
}

func withRateLimit(perMinute, burst int) appOption {
	return func(s *appSettings) {
		s.perMinute, s.burst = perMinute, burst
	}
}

func newTestApp(t *testing.T, opts ...appOption) *testApp {
	t.Helper()
	settings := appSettings{perMinute: 600, burst: 100}
	for _, opt := range opts {
		opt(&settings)
	}

	db, err := database.NewSqliteDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logger.NewNopLogger()
	factory := unitofwork.NewRepositoryFactory(db)
	registry := persona.NewDefaultRegistry()
	recorder := &events.Recorder{}
	usage := service.NewUsageService(factory, time.UTC)
	orchestrator := reply.NewOrchestrator(registry, downProvider{}, nil, reply.NewFallbackSelector(registry), 0, log)
	synthesizer := &stubSynthesizer{}
	gateway := &stubGateway{}
	prices := map[plan.Tier]service.Price{plan.Pro: {Id: "price_pro"}, plan.Premium: {Id: "price_premium"}}

	auth := serverutils.NewJwtMiddleware(testSecret)
	throttle := ratelimit.New(settings.perMinute, settings.burst).Middleware()

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.NewErrorHandler(log)})
	api := app.Group("/api")
	NewAuthController(service.NewAuthService(factory, testSecret, time.Hour, log)).RegisterRoutes(api)
	NewUserController(service.NewUserService(factory), usage, auth).RegisterRoutes(api)
	NewConversationController(service.NewConversationService(factory, registry, usage, recorder, log), auth).RegisterRoutes(api)
	NewChatController(
		service.NewChatService(factory, registry, orchestrator, usage, lock.NewLocalLocker(), recorder, log),
		service.NewVoiceService(factory, registry, synthesizer, memory.NewAudioCacheRepository(time.Hour), log),
		auth, throttle,
	).RegisterRoutes(api)
	NewLegendRequestController(service.NewLegendRequestService(factory, recorder, log), auth).RegisterRoutes(api)
	NewBillingController(service.NewBillingService(factory, gateway, prices, "http://client.test", recorder, nil, log), auth).RegisterRoutes(api)
	NewCatalogController(service.NewCatalogService(registry)).RegisterRoutes(api)

	return &testApp{app: app, factory: factory, gateway: gateway, synthesizer: synthesizer}
}

// user inserts a user directly and returns it with a signed token.
func (a *testApp) user(t *testing.T, tier plan.Tier) (*entity.User, string) {
	t.Helper()
	id := uuid.New()
	u := &entity.User{Id: id, Email: id.String()[:8] + "@example.com", PasswordHash: "x", Plan: tier}
	require.NoError(t, a.factory.NewUnitOfWork(context.Background()).UserRepository().Create(context.Background(), u))
	token, err := serverutils.GenerateToken(testSecret, u.Id, time.Hour)
	require.NoError(t, err)
	return u, token
}

type call struct {
	method  string
	path    string
	token   string
	body    interface{}
	headers map[string]string
}

func (a *testApp) do(t *testing.T, c call) *http.Response {
	t.Helper()
	var body io.Reader
	switch b := c.body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type errorBody = serverutils.ErrorBody
