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

	bookingFlowHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/booking_flow"
	findNextAvailableHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/find_next_available"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getBookingCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking_calendar"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	flowStore "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/flow"
	meetingTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/meetingtype"
	ruleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/rule"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/googlemeet"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/linkservice"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/meetinglink"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	schedulingService "github.com/m04kA/SMC-SchedulingService/internal/service/scheduling"
	bookingFlowUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/booking_flow"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	findNextAvailableUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/find_next_available"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("SMC_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Инициализируем метрики (если включены)
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	ruleRepository := ruleRepo.NewRepository(wrappedDB)
	meetingTypeRepository := meetingTypeRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Провайдеры ссылок на конференции
	links := meetinglink.NewRouter(log)

	if cfg.GoogleMeet.Enabled {
		meetClient, err := googlemeet.NewClient(ctx, googlemeet.Config{
			ClientID:     cfg.GoogleMeet.ClientID,
			ClientSecret: cfg.GoogleMeet.ClientSecret,
			RefreshToken: cfg.GoogleMeet.RefreshToken,
			CalendarID:   cfg.GoogleMeet.CalendarID,
			Timeout:      time.Duration(cfg.GoogleMeet.Timeout) * time.Second,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize Google Meet client: %v", err)
		}
		links.Register(domain.PlatformGoogleMeet, meetClient)
		log.Info("Google Meet links enabled (calendar=%s)", cfg.GoogleMeet.CalendarID)
	}

	if cfg.LinkService.Enabled {
		for _, platform := range cfg.LinkService.Platforms {
			client := linkservice.NewClient(
				cfg.LinkService.URL,
				platform,
				time.Duration(cfg.LinkService.Timeout)*time.Second,
				log,
			)
			links.Register(domain.Platform(platform), client)
		}
		log.Info("Link service enabled (url=%s, platforms=%v, timeout=%ds)",
			cfg.LinkService.URL, cfg.LinkService.Platforms, cfg.LinkService.Timeout)
	}

	// Ядро вычисления доступности
	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load host timezone: %v", err)
	}

	evaluator := availability.NewEvaluator(
		availability.ZeroAvailabilityPolicy(cfg.Scheduling.ZeroAvailabilityPolicy),
		&availability.RealTimeProvider{},
	)
	generator, err := availability.NewGenerator(availability.Config{
		EnvelopeStart:      types.TimeString(cfg.Scheduling.EnvelopeStart),
		EnvelopeEnd:        types.TimeString(cfg.Scheduling.EnvelopeEnd),
		GranularityMinutes: cfg.Scheduling.GranularityMinutes,
		HorizonDays:        cfg.Scheduling.HorizonDays,
		Location:           location,
	}, evaluator)
	if err != nil {
		log.Fatal("Failed to initialize slot generator: %v", err)
	}
	log.Info("Slot generator initialized (envelope=%s-%s, granularity=%dm, timezone=%s)",
		cfg.Scheduling.EnvelopeStart, cfg.Scheduling.EnvelopeEnd, cfg.Scheduling.GranularityMinutes, location)

	// Инициализируем use cases и сервисы
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		ruleRepository,
		txMgr,
		evaluator,
		metricsCollector,
		log,
	)

	schedulingSvc := schedulingService.NewService(
		ruleRepository,
		meetingTypeRepository,
		bookingRepository,
		createBookingUseCase,
		links,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		schedulingSvc,
		generator,
		metricsCollector,
		log,
	)
	findNextAvailableUseCase := findNextAvailableUC.NewUseCase(
		schedulingSvc,
		generator,
		cfg.Scheduling.HorizonDays,
		metricsCollector,
		log,
	)

	flows := flowStore.NewStore[*bookingFlowUC.Flow](time.Duration(cfg.Flows.TTLMinutes) * time.Minute)
	go flows.Run(ctx, time.Duration(cfg.Flows.CleanupIntervalSeconds)*time.Second)

	bookingFlowUseCase := bookingFlowUC.NewUseCase(
		schedulingSvc,
		getAvailableSlotsUseCase,
		findNextAvailableUseCase,
		evaluator,
		generator,
		flows,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	findNextAvailable := findNextAvailableHandler.NewHandler(findNextAvailableUseCase, log)
	bookingFlow := bookingFlowHandler.NewHandler(bookingFlowUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingCalendar := getBookingCalendarHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// ЗАПРОСЫ ДОСТУПНОСТИ
	// ============================================================

	// Слоты дня для типа встречи ({meetingTypeId}=custom для произвольной встречи)
	api.HandleFunc("/hosts/{hostId}/meeting-types/{meetingTypeId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Ближайший свободный слот
	api.HandleFunc("/hosts/{hostId}/meeting-types/{meetingTypeId}/next-available",
		findNextAvailable.Handle).Methods(http.MethodGet)

	// ============================================================
	// БРОНИРОВАНИЯ
	// ============================================================

	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/calendar.ics", getBookingCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// СЦЕНАРИЙ БРОНИРОВАНИЯ (изменяющие запросы ограничены по IP)
	// ============================================================

	flowRoutes := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		go limiter.Run(ctx, time.Minute)
		flowRoutes.Use(middleware.RateLimit(limiter))
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	flowRoutes.HandleFunc("/hosts/{hostId}/flows", bookingFlow.Start).Methods(http.MethodPost)
	flowRoutes.HandleFunc("/flows/{flowId}", bookingFlow.Get).Methods(http.MethodGet)
	flowRoutes.HandleFunc("/flows/{flowId}/date", bookingFlow.SelectDate).Methods(http.MethodPost)
	flowRoutes.HandleFunc("/flows/{flowId}/slot", bookingFlow.SelectSlot).Methods(http.MethodPost)
	flowRoutes.HandleFunc("/flows/{flowId}/details", bookingFlow.SubmitDetails).Methods(http.MethodPost)
	flowRoutes.HandleFunc("/flows/{flowId}/back", bookingFlow.Back).Methods(http.MethodPost)
	flowRoutes.HandleFunc("/flows/{flowId}/done", bookingFlow.Done).Methods(http.MethodPost)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи: очистку сценариев, лимитер и сбор метрик пула
	stop()
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully (active flows=%d)", flows.Len())
}
