package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/klarrein/dashboard/internal/email"
	"github.com/klarrein/dashboard/internal/events"
	"github.com/klarrein/dashboard/internal/handlers"
	"github.com/klarrein/dashboard/internal/schedule"
	"github.com/klarrein/dashboard/internal/sessions"
	"github.com/klarrein/dashboard/internal/storage"
	"github.com/klarrein/dashboard/libs/auth"
	"github.com/klarrein/dashboard/libs/config"
	"github.com/klarrein/dashboard/libs/db"
	"github.com/klarrein/dashboard/libs/httpx"
	"github.com/klarrein/dashboard/libs/kafkax"
	otelx "github.com/klarrein/dashboard/libs/otel"
	"github.com/klarrein/dashboard/libs/runtime"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	service := config.String("SERVICE_NAME", "dashboard-server")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	redisAddr, err := config.RequiredString("REDIS_ADDR")
	if err != nil {
		panic(err)
	}
	redisDB := 0
	if v, err := strconv.Atoi(config.String("REDIS_DB", "0")); err == nil && v >= 0 {
		redisDB = v
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: config.String("REDIS_PASSWORD", ""),
		DB:       redisDB,
	})
	defer func() { _ = rdb.Close() }()

	brokers := config.String("KAFKA_BROKERS", "")
	checks := []runtime.ReadyCheck{
		{Name: "db", Check: db.ReadyCheck(pool)},
		{Name: "redis", Check: redisReadyCheck(rdb)},
	}
	if strings.TrimSpace(brokers) != "" {
		checks = append(checks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	}
	mux := runtime.NewBaseMuxWithReady(checks...)

	publisher := events.NewPublisher(brokers, logger)
	defer func() { _ = publisher.Close() }()

	workerRepo := storage.NewWorkerRepository(pool)
	clientRepo := storage.NewClientRepository(pool)
	userRepo := storage.NewUserRepository(pool)
	tokenStore := sessions.NewStore(rdb)

	var mailer email.Sender = email.LogSender{Logger: logger}
	if host := strings.TrimSpace(config.String("SMTP_HOST", "")); host != "" {
		mailer = email.NewSMTPSender(host, config.String("SMTP_PORT", "25"), config.String("SMTP_FROM", ""))
		logger.Info("smtp mailer enabled", "host", host)
	}

	jwtSecret := config.String("JWT_SECRET", "dev-secret")
	refreshTTLHours, err := strconv.Atoi(config.String("REFRESH_TTL_HOURS", "720"))
	if err != nil || refreshTTLHours <= 0 {
		refreshTTLHours = 720
	}
	refreshTTL := time.Duration(refreshTTLHours) * time.Hour
	resetBase := config.String("RESET_BASE_URL", "http://localhost:"+port)

	book := schedule.NewBook()
	if isTruthy(config.String("SEED_DEMO_DATA", "false")) {
		book = schedule.NewBook(schedule.DemoAppointments()...)
		logger.Info("seeded demo appointments", "count", book.Len())
	}

	authHandler := handlers.NewAuthHandler(userRepo, tokenStore, mailer, jwtSecret, refreshTTL, resetBase)
	calendarHandler := handlers.NewCalendarHandler(book, time.Now)
	appointmentHandler := handlers.NewAppointmentHandler(book, clientRepo, publisher)
	workerHandler := handlers.NewWorkerHandler(workerRepo, publisher)
	clientHandler := handlers.NewClientHandler(clientRepo, publisher)
	statsHandler := handlers.NewStatsHandler(book, workerRepo)

	mux.HandleFunc("/api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("/api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("/api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("/api/v1/auth/logout", authHandler.Logout)
	mux.HandleFunc("/api/v1/auth/reset", authHandler.ResetRequest)
	mux.HandleFunc("/api/v1/auth/reset/confirm", authHandler.ResetConfirm)
	mux.HandleFunc("/api/v1/auth/me", authHandler.Me)

	protect := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h, jwtSecret)
	}
	mux.Handle("/api/v1/calendar/view", protect(calendarHandler.View))
	mux.Handle("/api/v1/calendar/navigate", protect(calendarHandler.Navigate))
	mux.Handle("/api/v1/calendar/month", protect(calendarHandler.Month))
	mux.Handle("/api/v1/calendar/week", protect(calendarHandler.Week))
	mux.Handle("/api/v1/appointments", protect(route(map[string]http.HandlerFunc{
		http.MethodGet:  appointmentHandler.List,
		http.MethodPost: appointmentHandler.Create,
	})))
	mux.Handle("/api/v1/workers", protect(route(map[string]http.HandlerFunc{
		http.MethodGet:    workerHandler.List,
		http.MethodPost:   workerHandler.Create,
		http.MethodPut:    workerHandler.Update,
		http.MethodDelete: workerHandler.Delete,
	})))
	mux.Handle("/api/v1/clients", protect(route(map[string]http.HandlerFunc{
		http.MethodGet:    clientHandler.List,
		http.MethodPost:   clientHandler.Create,
		http.MethodPut:    clientHandler.Update,
		http.MethodDelete: clientHandler.Delete,
	})))
	mux.Handle("/api/v1/clients/detail", protect(clientHandler.Get))
	mux.Handle("/api/v1/stats", protect(statsHandler.Overview))

	bodyLimit := int64(1 << 20) // 1MB
	if v, err := strconv.Atoi(config.String("REQUEST_BODY_LIMIT_BYTES", "1048576")); err == nil && v > 0 {
		bodyLimit = int64(v)
	}
	requestTimeout := 10 * time.Second
	if v, err := strconv.Atoi(config.String("REQUEST_TIMEOUT_SECONDS", "10")); err == nil && v > 0 {
		requestTimeout = time.Duration(v) * time.Second
	}
	limitPerMinute := 120
	if v, err := strconv.Atoi(config.String("RATE_LIMIT_PER_MINUTE", "120")); err == nil && v > 0 {
		limitPerMinute = v
	}
	var rateLimitMW httpx.Middleware
	if isTruthy(config.String("RATE_LIMIT_IN_MEMORY", "false")) {
		rateLimitMW = httpx.NewRateLimiter(limitPerMinute, time.Minute).Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", limitPerMinute)
	} else {
		rl := httpx.NewRedisRateLimiter(rdb, limitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "rl"))
		rateLimitMW = rl.Middleware(logger, isTruthy(config.String("RATE_LIMIT_FAIL_OPEN", "true")))
		logger.Info("rate limiting enabled (redis)", "per_minute", limitPerMinute)
	}

	handler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins:   parseList(config.String("CORS_ALLOWED_ORIGINS", "")),
			AllowedMethods:   parseList(config.String("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")),
			AllowedHeaders:   parseList(config.String("CORS_ALLOWED_HEADERS", "Authorization,Content-Type,X-Request-Id")),
			AllowCredentials: isTruthy(config.String("CORS_ALLOW_CREDENTIALS", "false")),
			MaxAge:           10 * time.Minute,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithRecover(logger),
		httpx.WithBodyLimit(bodyLimit),
		httpx.WithTimeout(requestTimeout),
		rateLimitMW,
	)
	handler = otelhttp.NewHandler(handler, "dashboard")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

// route picks a handler by method for paths that serve several verbs.
// The handlers still enforce their own method on top.
func route(byMethod map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := byMethod[r.Method]
		if !ok {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func redisReadyCheck(rdb *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

func requireAuth(next http.HandlerFunc, jwtSecret string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") || len(strings.TrimSpace(authHeader)) <= len("Bearer ") {
			http.Error(w, "missing or invalid Authorization header", http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := auth.ParseAndVerifyHS256(token, jwtSecret)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		r.Header.Del("X-User-Id")
		r.Header.Del("X-Role")
		r.Header.Set("X-User-Id", claims.Sub)
		r.Header.Set("X-Role", claims.Role)
		next(w, r)
	})
}

func isTruthy(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func parseList(raw string) []string {
	items := strings.Split(raw, ",")
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
