package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/cancel_appointment"
	commitBookingHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/commit_booking"
	getAppointmentHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/get_available_slots"
	getBookingPoliciesHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/get_booking_policies"
	getStaffAppointmentsHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/get_staff_appointments"
	getStaffAvailabilityHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/get_staff_availability"
	markNoShowHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/mark_no_show"
	quoteBookingHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/quote_booking"
	updateBookingPoliciesHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/update_booking_policies"
	updateStaffAvailabilityHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/update_staff_availability"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/config"
	"github.com/m04kA/SMC-GroomingService/internal/engine/availability"
	"github.com/m04kA/SMC-GroomingService/internal/engine/booking"
	"github.com/m04kA/SMC-GroomingService/internal/engine/policy"
	"github.com/m04kA/SMC-GroomingService/internal/engine/pricing"
	appointmentRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/catalog"
	outboxRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/outbox"
	petRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/pet"
	policyRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/policy"
	staffRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-GroomingService/internal/integrations/eventbus"
	appointmentsService "github.com/m04kA/SMC-GroomingService/internal/service/appointments"
	policiesService "github.com/m04kA/SMC-GroomingService/internal/service/policies"
	"github.com/m04kA/SMC-GroomingService/internal/service/snapshot"
	staffService "github.com/m04kA/SMC-GroomingService/internal/service/staff"
	cancelAppointmentUC "github.com/m04kA/SMC-GroomingService/internal/usecase/cancel_appointment"
	commitBookingUC "github.com/m04kA/SMC-GroomingService/internal/usecase/commit_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-GroomingService/internal/usecase/get_available_slots"
	markNoShowUC "github.com/m04kA/SMC-GroomingService/internal/usecase/mark_no_show"
	quoteBookingUC "github.com/m04kA/SMC-GroomingService/internal/usecase/quote_booking"
	"github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroomingService/pkg/logger"
	"github.com/m04kA/SMC-GroomingService/pkg/metrics"
	"github.com/m04kA/SMC-GroomingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-GroomingService...")

	// Инициализируем метрики (если включены). nil коллектор безопасно передавать дальше.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	outboxRepository := outboxRepo.NewRepository(wrappedDB)
	petRepository := petRepo.NewRepository(wrappedDB)
	policyRepository := policyRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)

	// Движок расчета
	percentageBase, err := pricing.ParsePercentageBase(cfg.Booking.PercentageModifierBase)
	if err != nil {
		log.Fatal("Invalid percentage modifier base: %v", err)
	}
	resolver := pricing.NewResolver(pricing.WithPercentageBase(percentageBase))
	calculator := availability.NewCalculator(availability.WithGranularity(cfg.Booking.SlotGranularityMinutes))
	evaluator := policy.NewEvaluator()
	engine := booking.NewEngine(resolver, calculator, evaluator)
	log.Info("Booking engine initialized (granularity=%dm, percentage_base=%s, commit_attempts=%d)",
		cfg.Booking.SlotGranularityMinutes, percentageBase, cfg.Booking.CommitAttempts)

	// Сервисы
	loader := snapshot.NewLoader(
		policyRepository,
		staffRepository,
		appointmentRepository,
		catalogRepository,
		petRepository,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, loader, log)
	policiesSvc := policiesService.NewService(policyRepository, log)
	staffSvc := staffService.NewService(staffRepository, txMgr, log)

	// Use cases
	quoteBookingUseCase := quoteBookingUC.NewUseCase(loader, engine, metricsCollector, log)
	commitBookingUseCase := commitBookingUC.NewUseCase(
		loader,
		engine,
		appointmentRepository,
		outboxRepository,
		txMgr,
		metricsCollector,
		cfg.Booking.CommitAttempts,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(loader, calculator, evaluator, log)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		outboxRepository,
		loader,
		evaluator,
		txMgr,
		metricsCollector,
		log,
	)
	markNoShowUseCase := markNoShowUC.NewUseCase(
		appointmentRepository,
		outboxRepository,
		loader,
		evaluator,
		txMgr,
		metricsCollector,
		log,
	)

	// Handlers
	quoteBooking := quoteBookingHandler.NewHandler(quoteBookingUseCase, log)
	commitBooking := commitBookingHandler.NewHandler(commitBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	markNoShow := markNoShowHandler.NewHandler(markNoShowUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getStaffAppointments := getStaffAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getBookingPolicies := getBookingPoliciesHandler.NewHandler(policiesSvc, log)
	updateBookingPolicies := updateBookingPoliciesHandler.NewHandler(policiesSvc, log)
	getStaffAvailability := getStaffAvailabilityHandler.NewHandler(staffSvc, log)
	updateStaffAvailability := updateStaffAvailabilityHandler.NewHandler(staffSvc, log)

	// Rate limiting через Redis (если настроен)
	var (
		redisClient *redis.Client
		rateLimiter *middleware.RateLimiter
	)
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, rate limiter will fail open: %v", cfg.Redis.Addr, err)
		}
		cancel()

		rateLimiter = middleware.NewRateLimiter(
			middleware.NewRedisCounter(redisClient),
			cfg.RateLimit.Requests,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			cfg.RateLimit.KeyPrefix,
			log,
		)
		log.Info("Rate limiting enabled (%d requests per %ds)", cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
	}

	// Outbox relay в Kafka (если настроены брокеры)
	var (
		relay     *eventbus.Relay
		publisher *eventbus.Publisher
	)
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = eventbus.NewPublisher(eventbus.NewKafkaWriter(cfg.Kafka.Brokers), cfg.Kafka.TopicPrefix)
		relay = eventbus.NewRelay(outboxRepository, publisher, txMgr, metricsCollector, cfg.Outbox.BatchSize, log)
		if err := relay.Start(cfg.Outbox.Schedule); err != nil {
			log.Fatal("Failed to start outbox relay: %v", err)
		}
	} else {
		log.Warn("Kafka brokers are not configured, outbox events stay unpublished")
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты грумера на день
	api.Handle("/organizations/{orgId}/staff/{staffId}/available-slots",
		rateLimiter.Middleware(http.HandlerFunc(getAvailableSlots.Handle))).Methods(http.MethodGet)

	// Политики бронирования организации
	api.HandleFunc("/organizations/{orgId}/booking-policies", getBookingPolicies.Handle).Methods(http.MethodGet)

	// Недельное расписание сотрудника
	api.HandleFunc("/staff/{staffId}/availability", getStaffAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Запись ---
	protected.Handle("/organizations/{orgId}/quotes",
		rateLimiter.Middleware(http.HandlerFunc(quoteBooking.Handle))).Methods(http.MethodPost)
	protected.HandleFunc("/organizations/{orgId}/appointments", commitBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/no-show", markNoShow.Handle).Methods(http.MethodPost)

	// --- Управление (организация и сотрудники) ---
	protected.HandleFunc("/organizations/{orgId}/staff/{staffId}/appointments", getStaffAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/organizations/{orgId}/booking-policies", updateBookingPolicies.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/staff/{staffId}/availability", updateStaffAvailability.Handle).Methods(http.MethodPut)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if relay != nil {
		relay.Stop(shutdownCtx)
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close kafka writer: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
