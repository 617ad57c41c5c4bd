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

	addBlockedSlotHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/add_blocked_slot"
	createAppointmentHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/create_appointment"
	getAvailabilityHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/get_available_slots"
	getProviderAppointmentsHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/get_provider_appointments"
	getProviderServicesHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/get_provider_services"
	getServicesHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/get_services"
	getUserAppointmentsHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/get_user_appointments"
	healthHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/health"
	removeBlockedSlotHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/remove_blocked_slot"
	setWeeklyRuleHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/set_weekly_rule"
	updateAppointmentStatusHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/update_appointment_status"
	updateProviderServiceHandler "github.com/nailsrdv/NRDV-BookingService/internal/api/handlers/update_provider_service"
	"github.com/nailsrdv/NRDV-BookingService/internal/api/middleware"
	"github.com/nailsrdv/NRDV-BookingService/internal/config"
	"github.com/nailsrdv/NRDV-BookingService/internal/infra/migrate"
	appointmentRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/availability"
	catalogRepo "github.com/nailsrdv/NRDV-BookingService/internal/infra/storage/catalog"
	appointmentsService "github.com/nailsrdv/NRDV-BookingService/internal/service/appointments"
	availabilityService "github.com/nailsrdv/NRDV-BookingService/internal/service/availability"
	catalogService "github.com/nailsrdv/NRDV-BookingService/internal/service/catalog"
	createAppointmentUC "github.com/nailsrdv/NRDV-BookingService/internal/usecase/create_appointment"
	resolveSlotsUC "github.com/nailsrdv/NRDV-BookingService/internal/usecase/resolve_slots"
	"github.com/nailsrdv/NRDV-BookingService/pkg/logger"
	"github.com/nailsrdv/NRDV-BookingService/pkg/metrics"
	"github.com/nailsrdv/NRDV-BookingService/pkg/txmanager"
)

const dbStatsInterval = 15 * time.Second

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

	log.Info("Starting NRDV-BookingService...")
	log.Info("Configuration loaded from config.toml")

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
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции (если включены)
	if cfg.Migration.AutoMigrate {
		migrator, err := migrate.NewMigrator(db)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := migrator.Version(context.Background())
		if err != nil {
			log.Fatal("Failed to read schema version: %v", err)
		}
		log.Info("Database migrations applied, schema version=%d", version)
	}

	// Запускаем сбор статистики connection pool
	if cfg.Metrics.Enabled {
		go metricsCollector.CollectDBStats(db, dbStatsInterval, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Инициализируем репозитории
	catalogRepository := catalogRepo.NewRepository(db)
	availabilityRepository := availabilityRepo.NewRepository(db)
	appointmentRepository := appointmentRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		&availabilityService.RealTimeProvider{},
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		&appointmentsService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	resolveSlotsUseCase := resolveSlotsUC.NewUseCase(
		catalogRepository,
		availabilityRepository,
		appointmentRepository,
		cfg.Booking.DefaultGranularityMinutes,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		catalogRepository,
		availabilityRepository,
		appointmentRepository,
		txMgr,
		metricsOrNop(metricsCollector),
		cfg.Booking.AutoConfirm,
		log,
	)

	// Инициализируем handlers
	health := healthHandler.NewHandler(db)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	getProviderServices := getProviderServicesHandler.NewHandler(catalogSvc, log)
	updateProviderService := updateProviderServiceHandler.NewHandler(catalogSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	setWeeklyRule := setWeeklyRuleHandler.NewHandler(availabilitySvc, log)
	addBlockedSlot := addBlockedSlotHandler.NewHandler(availabilitySvc, log)
	removeBlockedSlot := removeBlockedSlotHandler.NewHandler(availabilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(resolveSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getProviderAppointments := getProviderAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check (публичный, без аутентификации)
	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Услуги мастера с учётом переопределений
	api.HandleFunc("/providers/{providerId}/services",
		getProviderServices.Handle).Methods(http.MethodGet)

	// Недельное расписание и блокировки мастера
	api.HandleFunc("/providers/{providerId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Свободные слоты для записи
	api.HandleFunc("/providers/{providerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID / X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Управление услугами мастера ---
	protected.HandleFunc("/providers/{providerId}/services/{serviceId}",
		updateProviderService.Handle).Methods(http.MethodPut)

	// --- Расписание мастера ---
	protected.HandleFunc("/providers/{providerId}/availability/{dayOfWeek}",
		setWeeklyRule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/blocked-slots",
		addBlockedSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/blocked-slots/{slotId}",
		removeBlockedSlot.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Смена статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status",
		updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Календарь мастера
	protected.HandleFunc("/providers/{providerId}/appointments",
		getProviderAppointments.Handle).Methods(http.MethodGet)

	// История записей клиента
	protected.HandleFunc("/users/{userId}/appointments",
		getUserAppointments.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
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

	log.Info("Server stopped gracefully")
}

// nopMetrics заглушка для выключенных метрик
type nopMetrics struct{}

func (nopMetrics) IncAppointmentsCreated(string) {}
func (nopMetrics) IncSlotConflicts()             {}

func metricsOrNop(m *metrics.Metrics) createAppointmentUC.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
