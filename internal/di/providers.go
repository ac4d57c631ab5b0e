package di

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"RaptorExplorer/internal/domain/repository"
	domsvc "RaptorExplorer/internal/domain/service"
	"RaptorExplorer/internal/handler/api"
	internalrepo "RaptorExplorer/internal/repository"
	"RaptorExplorer/internal/service/autodev"
	"RaptorExplorer/internal/service/billing"
	"RaptorExplorer/internal/service/firebaseauth"
	"RaptorExplorer/internal/service/google"
	"RaptorExplorer/internal/service/ratelimit"
	"RaptorExplorer/internal/service/vinaudit"
	"RaptorExplorer/internal/usecase"
	"RaptorExplorer/pkg/cache"
	pkgch "RaptorExplorer/pkg/clickhouse"
	"RaptorExplorer/pkg/config"
	xhttp "RaptorExplorer/pkg/http"
	"RaptorExplorer/pkg/http/middleware"
	pkgkafka "RaptorExplorer/pkg/kafka"
	"RaptorExplorer/pkg/logger"
	"RaptorExplorer/pkg/metrics"
	"RaptorExplorer/pkg/server"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
)

const serviceName = "raptor-explorer"

// ProvideKafkaProducer creates the shared producer, or nil when nothing in
// the config publishes to Kafka.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.KafkaEnabled() {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithDelivery(cfg.Kafka.RequiredAcks, cfg.Kafka.Compression, cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithAutoCreateTopics(cfg.Kafka.Producer.AutoCreate),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideLogger builds the app logger and attaches the error collector when
// a collect topic is configured.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cfg.Logging.Output,
		Service: serviceName,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Logging.CollectTopic != "" && producer != nil {
		l.AddCollector(&logger.CollectionConfig{
			TimeInterval:   cfg.Logging.CollectInterval,
			CountThreshold: cfg.Logging.CollectThreshold,
			Topic:          cfg.Logging.CollectTopic,
			Service:        serviceName,
			Publisher:      producer,
		})
	}
	return l, nil
}

func ProvideMetrics() repository.Metrics {
	return metrics.New(nil)
}

// ProvideCache returns a Redis-backed layered cache when Redis is enabled
// and a process-local cache otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryCleanup(time.Minute)), nil
	}
	remote, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Redis.Host, cfg.Redis.Port),
		cache.WithRedisAuth(cfg.Redis.Password, cfg.Redis.DB),
		cache.WithRedisPoolSize(cfg.Redis.PoolSize),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(remote, cache.WithLayeredMemoryTTL(cfg.Redis.LocalTTL)), nil
}

func ProvideListingsProvider(cfg *config.Config, l *logger.Logger) repository.ListingsProvider {
	p := cfg.Providers.Listings
	return autodev.New(p.APIKey,
		autodev.WithBaseURL(p.BaseURL),
		autodev.WithTimeout(p.Timeout),
		autodev.WithLogger(l),
	)
}

func ProvideAggregateProvider(cfg *config.Config, l *logger.Logger) repository.AggregateProvider {
	p := cfg.Providers.Aggregate
	return vinaudit.New(p.APIKey,
		vinaudit.WithBaseURL(p.BaseURL),
		vinaudit.WithTimeout(p.Timeout),
		vinaudit.WithLogger(l),
	)
}

func ProvideMarketValueResolver(
	cfg *config.Config,
	listings repository.ListingsProvider,
	aggregate repository.AggregateProvider,
	m repository.Metrics,
	l *logger.Logger,
) domsvc.MarketValueResolver {
	return usecase.NewMarketValueResolver(listings, aggregate, m, l, usecase.ResolverOptions{
		ListingsEnabled:  cfg.Providers.Listings.Enabled,
		StrictMake:       cfg.Providers.Listings.StrictMake,
		ListingsTimeout:  cfg.Providers.Listings.Timeout,
		AggregateTimeout: cfg.Providers.Aggregate.Timeout,
	})
}

// ProvideFirebaseApp returns nil when no Firebase credentials are set.
func ProvideFirebaseApp(cfg *config.Config) (*firebase.App, error) {
	return firebaseauth.NewApp(context.Background(), firebaseauth.Config{
		ProjectID:       cfg.Firebase.ProjectID,
		ClientEmail:     cfg.Firebase.ClientEmail,
		PrivateKey:      cfg.Firebase.PrivateKey,
		CredentialsFile: cfg.Firebase.CredentialsFile,
	})
}

func ProvideTokenIssuer(app *firebase.App) (domsvc.TokenIssuer, error) {
	if app == nil {
		return firebaseauth.NewTokenIssuer(nil), nil
	}
	client, err := app.Auth(context.Background())
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return firebaseauth.NewTokenIssuer(client), nil
}

func ProvideFirestore(app *firebase.App) (*firestore.Client, error) {
	if app == nil {
		return nil, nil
	}
	client, err := app.Firestore(context.Background())
	if err != nil {
		return nil, fmt.Errorf("firestore: %w", err)
	}
	return client, nil
}

func ProvideEntitlementStore(client *firestore.Client) repository.EntitlementStore {
	return internalrepo.NewFirestoreEntitlements(client)
}

func ProvideIdentityProvider(cfg *config.Config) domsvc.IdentityProvider {
	g := cfg.Auth.Google
	return google.New(google.Config{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		RedirectURI:  g.RedirectURI,
		TokenURL:     g.TokenURL,
		Timeout:      g.Timeout,
	})
}

func ProvideAuthService(idp domsvc.IdentityProvider, tokens domsvc.TokenIssuer) domsvc.AuthService {
	return usecase.NewAuthUseCase(idp, tokens)
}

func ProvideBillingGateway(cfg *config.Config) domsvc.BillingGateway {
	return billing.NewGateway(cfg.Billing.SecretKey, cfg.Billing.WebhookSecret)
}

func ProvideBillingService(
	cfg *config.Config,
	gateway domsvc.BillingGateway,
	store repository.EntitlementStore,
	c cache.Service,
	m repository.Metrics,
	l *logger.Logger,
) domsvc.BillingService {
	b := cfg.Billing
	return usecase.NewBillingUseCase(gateway, store, c, m, l, usecase.BillingOptions{
		PriceID:         b.PriceID,
		BaseURL:         b.BaseURL,
		PortalReturnURL: b.PortalReturnURL,
		PriceCacheTTL:   b.PriceCacheTTL,
		DedupTTL:        b.WebhookDedupTTL,
	})
}

// ProvideClickHouseClient connects and creates the lookup table. It returns
// nil when analytics is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.Analytics.Enabled {
		return nil, nil
	}
	ch := cfg.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(ch.UseHTTP),
		pkgch.WithAsyncInsert(ch.AsyncInsert, ch.WaitForAsync),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
		pkgch.WithMaxExecutionTime(ch.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.LookupSchema(ch.Database, cfg.Analytics.Table)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

func ProvideLookupPublisher(cfg *config.Config, producer *pkgkafka.Producer) repository.LookupPublisher {
	if !cfg.Analytics.Enabled || producer == nil {
		return internalrepo.NopLookupPublisher{}
	}
	return internalrepo.NewKafkaLookupPublisher(producer, cfg.Kafka.LookupTopic)
}

func ProvideKafkaConsumer(cfg *config.Config, l *logger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Analytics.Enabled {
		return nil, nil
	}
	c := cfg.Kafka.Consumer
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(c.GroupID),
		pkgkafka.WithConsumerAutoOffsetReset(c.OffsetReset),
		pkgkafka.WithConsumerWorkers(c.Workers),
		pkgkafka.WithConsumerBufferSize(c.BufferSize),
		pkgkafka.WithConsumerRetry(c.RetryMax, c.BackoffMin, c.BackoffMax),
		pkgkafka.WithConsumerDLQ(c.DLQTopic),
		pkgkafka.WithConsumerFetch(c.MinBytes, c.MaxBytes),
		pkgkafka.WithConsumerLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.TraceHook())
	return consumer, nil
}

func ProvideLookupEventsHandler(cfg *config.Config, ch *pkgch.Client, m repository.Metrics, l *logger.Logger) *usecase.LookupEventsHandler {
	if ch == nil {
		return nil
	}
	table := cfg.ClickHouse.Database + "." + cfg.Analytics.Table
	return usecase.NewLookupEventsHandler(cfg.Kafka.LookupTopic, internalrepo.NewCHLookupStorage(ch, table, l), m)
}

func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillPerSec)
}

// ProvideHTTPHandler assembles the routes. The CORS gate wraps the vehicle
// and auth groups; the webhook stays outside it.
func ProvideHTTPHandler(
	cfg *config.Config,
	l *logger.Logger,
	resolver domsvc.MarketValueResolver,
	publisher repository.LookupPublisher,
	auth domsvc.AuthService,
	tokens domsvc.TokenIssuer,
	billingSvc domsvc.BillingService,
	limiter *ratelimit.Limiter,
) xhttp.Handler {
	cors := []echo.MiddlewareFunc{middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		Enforce:      cfg.CORS.Enforce,
		MaxAge:       cfg.CORS.MaxAge,
	})}

	route := []echo.MiddlewareFunc{api.RateLimit(limiter)}
	if cfg.Auth.RequireIDToken {
		route = append(route, api.RequireIDToken(tokens))
	}

	var owner domsvc.TokenIssuer
	if cfg.Auth.BindCustomTokenUID {
		owner = tokens
	}

	return xhttp.Handlers{
		api.NewVehicleEchoHandler(l, resolver, publisher, cors, route),
		api.NewAuthEchoHandler(l, auth, cors, owner),
		api.NewBillingEchoHandler(l, billingSvc),
	}
}

func ProvideHTTPServer(cfg *config.Config, l *logger.Logger, h xhttp.Handler) *xhttp.Server {
	s := cfg.Server
	return xhttp.NewServer(h,
		xhttp.WithHost(s.Host),
		xhttp.WithPort(s.Port),
		xhttp.WithTimeouts(s.ReadTimeout, s.WriteTimeout, s.ShutdownTimeout),
		xhttp.WithSlowRequest(s.SlowRequest),
		xhttp.WithTrustedProxies(s.TrustedProxies...),
		xhttp.WithLogger(l),
	)
}

// ProvideApp hands every long-lived client to the app so shutdown can close
// it. Closers run in reverse order, so the producer is registered first and
// closed last.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	srv *xhttp.Server,
	producer *pkgkafka.Producer,
	consumer *pkgkafka.Consumer,
	handler *usecase.LookupEventsHandler,
	ch *pkgch.Client,
	fs *firestore.Client,
	c cache.Service,
	limiter *ratelimit.Limiter,
) *server.App {
	opts := []server.Option{
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		server.WithBackground(func(done <-chan struct{}) { limiter.Run(time.Minute, done) }),
	}
	if producer != nil {
		opts = append(opts, server.WithCloser("kafka producer", producer.Close))
	}
	if ch != nil {
		opts = append(opts, server.WithCloser("clickhouse", ch.Close))
	}
	if fs != nil {
		opts = append(opts, server.WithCloser("firestore", fs.Close))
	}
	if closer, ok := c.(io.Closer); ok {
		opts = append(opts, server.WithCloser("cache", closer.Close))
	}
	if consumer != nil && handler != nil {
		opts = append(opts, server.WithConsumer(consumer, handler))
	}
	return server.New(l, srv, opts...)
}
