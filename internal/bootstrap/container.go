package bootstrap

import (
	"context"
	"log"
	"time"

	"talk-to-legends-be/internal/config"
	"talk-to-legends-be/internal/controller"
	"talk-to-legends-be/internal/pkg/logger"
	"talk-to-legends-be/internal/pkg/mailer"
	"talk-to-legends-be/internal/pkg/ratelimit"
	"talk-to-legends-be/internal/pkg/serverutils"
	"talk-to-legends-be/internal/repository/memory"
	"talk-to-legends-be/internal/repository/unitofwork"
	"talk-to-legends-be/internal/service"
	"talk-to-legends-be/pkg/billing"
	"talk-to-legends-be/pkg/billing/midtransgw"
	"talk-to-legends-be/pkg/billing/stripegw"
	"talk-to-legends-be/pkg/events"
	"talk-to-legends-be/pkg/llm"
	"talk-to-legends-be/pkg/llm/factory"
	"talk-to-legends-be/pkg/lock"
	"talk-to-legends-be/pkg/persona"
	"talk-to-legends-be/pkg/plan"
	"talk-to-legends-be/pkg/reply"
	"talk-to-legends-be/pkg/speech"

	pktNats "talk-to-legends-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	AuthController          controller.IAuthController
	UserController          controller.IUserController
	ConversationController  controller.IConversationController
	ChatController          controller.IChatController
	LegendRequestController controller.ILegendRequestController
	BillingController       controller.IBillingController
	CatalogController       controller.ICatalogController

	// Background Services (Exposed for main.go to run)
	NotificationConsumer service.INotificationConsumer

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	registry := persona.NewDefaultRegistry()
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// Domain events go to NATS when it is reachable.
	var publisher events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. Infrastructure
	locker := newLocker(cfg.App.RedisURL)

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
			cfg.App.ClientURL,
			sysLogger,
		)
	}

	primary := newProvider("primary", cfg.LLM.Primary, cfg.LLM)
	secondary := newProvider("secondary", cfg.LLM.Secondary, cfg.LLM)
	orchestrator := reply.NewOrchestrator(
		registry,
		primary,
		secondary,
		reply.NewFallbackSelector(registry),
		cfg.LLM.MinReplyLength,
		sysLogger,
	)

	gateway, prices := newGateway(cfg.Billing)
	log.Printf("[INFO] Using billing provider: %s", gateway.Name())

	synthesizer := speech.NewElevenLabsClient(cfg.Voice.ElevenLabsKey, cfg.Voice.BaseURL, cfg.Voice.Model)
	audioCache := memory.NewAudioCacheRepository(cfg.Voice.CacheTTL)

	// 4. Services
	usageService := service.NewUsageService(uowFactory, cfg.App.Location())
	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, cfg.Auth.TokenTTL, sysLogger)
	userService := service.NewUserService(uowFactory)
	conversationService := service.NewConversationService(uowFactory, registry, usageService, publisher, sysLogger)
	chatService := service.NewChatService(uowFactory, registry, orchestrator, usageService, locker, publisher, sysLogger)
	voiceService := service.NewVoiceService(uowFactory, registry, synthesizer, audioCache, sysLogger)
	legendRequestService := service.NewLegendRequestService(uowFactory, publisher, sysLogger)
	catalogService := service.NewCatalogService(registry)

	paymentFailed := service.NewPublisherService(pubSub, cfg.Billing.PaymentFailedTopic)
	billingService := service.NewBillingService(
		uowFactory,
		gateway,
		prices,
		cfg.App.ClientURL,
		publisher,
		paymentFailed,
		sysLogger,
	)
	c.NotificationConsumer = service.NewNotificationConsumer(pubSub, cfg.Billing.PaymentFailedTopic, emailService, sysLogger)

	// 5. Controllers
	auth := serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)
	throttle := ratelimit.New(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst).Middleware()

	c.AuthController = controller.NewAuthController(authService)
	c.UserController = controller.NewUserController(userService, usageService, auth)
	c.ConversationController = controller.NewConversationController(conversationService, auth)
	c.ChatController = controller.NewChatController(chatService, voiceService, auth, throttle)
	c.LegendRequestController = controller.NewLegendRequestController(legendRequestService, auth)
	c.BillingController = controller.NewBillingController(billingService, auth)
	c.CatalogController = controller.NewCatalogController(catalogService)

	return c
}

// Close releases the bus and broker connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

// newLocker uses Redis when configured so chat admission holds across instances.
func newLocker(redisURL string) lock.Locker {
	if redisURL == "" {
		return lock.NewLocalLocker()
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: redisURL}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-process locks", err)
		_ = rdb.Close()
		return lock.NewLocalLocker()
	}
	return lock.NewRedisLocker(rdb, "legends:lock:", 30*time.Second)
}

func newProvider(tier string, spec config.ProviderSpec, cfg config.LLMConfig) llm.LLMProvider {
	apiKey := cfg.HuggingFaceKey
	if spec.Provider == "openai" {
		apiKey = cfg.OpenAIKey
	}
	provider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider:    spec.Provider,
		Model:       spec.Model,
		BaseURL:     spec.BaseURL,
		APIKey:      apiKey,
		MaxTokens:   spec.MaxTokens,
		Temperature: spec.Temperature,
		TopP:        spec.TopP,
	})
	if err != nil {
		log.Printf("[WARN] %s LLM provider disabled: %v", tier, err)
		return nil
	}
	if provider == nil {
		log.Printf("[INFO] No %s LLM provider configured", tier)
		return nil
	}
	log.Printf("[INFO] Using %s LLM Provider: %s (%s)", tier, spec.Provider, spec.Model)
	return provider
}

func newGateway(cfg config.BillingConfig) (billing.Gateway, map[plan.Tier]service.Price) {
	if cfg.Provider == midtransgw.ProviderName {
		return midtransgw.New(cfg.MidtransServerKey, cfg.MidtransProduction), map[plan.Tier]service.Price{
			plan.Pro:     {Id: midtransgw.PriceID(string(plan.Pro)), Amount: cfg.ProAmount},
			plan.Premium: {Id: midtransgw.PriceID(string(plan.Premium)), Amount: cfg.PremiumAmount},
		}
	}
	return stripegw.New(cfg.StripeSecretKey, cfg.StripeWebhookSecret), map[plan.Tier]service.Price{
		plan.Pro:     {Id: cfg.ProPriceId},
		plan.Premium: {Id: cfg.PremiumPriceId},
	}
}
