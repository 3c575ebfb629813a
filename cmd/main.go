package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-ReservationCore/internal/checkout"
	"github.com/m04kA/SMC-ReservationCore/internal/config"
	"github.com/m04kA/SMC-ReservationCore/internal/domain"
	paymentServiceClient "github.com/m04kA/SMC-ReservationCore/internal/integrations/paymentservice"
	salonServiceClient "github.com/m04kA/SMC-ReservationCore/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ReservationCore/internal/service/reservation"
	"github.com/m04kA/SMC-ReservationCore/internal/usecase/generate_calendar"
	getAvailableSlotsUC "github.com/m04kA/SMC-ReservationCore/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationCore/pkg/httpmetrics"
	"github.com/m04kA/SMC-ReservationCore/pkg/logger"
	"github.com/m04kA/SMC-ReservationCore/pkg/metrics"
)

func main() {
	// Секреты окружения (.env опционален)
	_ = godotenv.Load()

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

	log.Info("Starting SMC-ReservationCore...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)

		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, promhttp.Handler())
		go func() {
			log.Info("Prometheus metrics exposed at %s%s", cfg.Metrics.Addr, cfg.Metrics.Path)
			if err := http.ListenAndServe(cfg.Metrics.Addr, metricsMux); err != nil && err != http.ErrServerClosed {
				log.Error("Metrics server failed: %v", err)
			}
		}()
	}

	// Инициализируем интеграционных клиентов.
	// Исходящие запросы оборачиваются метриками per-target.
	salonClient := salonServiceClient.NewClient(
		cfg.SalonService.URL,
		cfg.Auth.Token,
		time.Duration(cfg.SalonService.Timeout)*time.Second,
		httpmetrics.Wrap(nil, metricsCollector, "salon-service"),
		log,
	)
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		cfg.Auth.Token,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		httpmetrics.Wrap(nil, metricsCollector, "payment-service"),
		log,
	)
	log.Info("Integration clients initialized (SalonService=%s timeout=%ds, PaymentService=%s timeout=%ds)",
		cfg.SalonService.URL, cfg.SalonService.Timeout, cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Use case каталога слотов
	slotCatalog := getAvailableSlotsUC.NewUseCase(salonClient, log)

	// Платежный виджет. В headless-окружении виджет нечем отрисовать:
	// адаптер сразу отвечает dismiss, и сессия падает обратно на оплату
	// в салоне. GUI-обвязка подставляет сюда реальный запуск виджета.
	widget := checkout.NewCallbackWidget(func(opts checkout.Options, onSuccess func(checkout.PaymentResult), onDismiss func(), onError func(error)) {
		log.Warn("Checkout widget is not available in headless mode (order=%s), dismissing", opts.OrderID)
		onDismiss()
	})

	hours := domain.OperatingHours{
		StartHour: cfg.Booking.OperatingStartHour,
		EndHour:   cfg.Booking.OperatingEndHour,
	}

	serviceID := os.Getenv("RESERVATION_SERVICE_ID")
	if serviceID == "" {
		log.Fatal("RESERVATION_SERVICE_ID is required")
	}

	session := reservation.NewService(
		reservation.Options{
			ServiceID:     serviceID,
			Hours:         hours,
			Currency:      cfg.Booking.Currency,
			RazorpayKeyID: cfg.Razorpay.KeyID,
			CustomerRef:   cfg.Auth.CustomerRef,
		},
		salonClient,
		paymentClient,
		widget,
		slotCatalog,
		log,
		metricsCollector,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down...")
		cancel()
	}()

	if err := runDemoSession(ctx, session, hours, log); err != nil {
		log.Error("Demo session failed: %v", err)
		os.Exit(1)
	}

	log.Info("Done")
}

// runDemoSession проводит сессию бронирования от календаря до
// подтверждения: ближайшая доступная дата, первый свободный час,
// оплата в салоне.
func runDemoSession(ctx context.Context, session *reservation.Service, hours domain.OperatingHours, log *logger.Logger) error {
	snap, err := session.Begin(ctx)
	if err != nil {
		return err
	}
	log.Info("Service: %s (%.2f)", snap.Service.Name, snap.Service.Price)

	// Сетка календаря текущего месяца: берём первую непрошедшую дату
	now := time.Now()
	grid := generate_calendar.Generate(now)
	for _, day := range grid {
		if !day.IsCurrentMonth || generate_calendar.IsPast(day.Date, now) {
			continue
		}

		snap, err = session.SelectDate(ctx, day.Date)
		if err != nil {
			return err
		}
		if snap.CatalogDegraded {
			log.Warn("Slot catalog degraded for %s", day.Date.Format(domain.DateFormat))
		}
		if len(snap.Candidates) > 0 {
			break
		}
	}
	if snap.Date == nil || len(snap.Candidates) == 0 {
		return fmt.Errorf("no selectable dates this month")
	}
	log.Info("Selected date %s: %d candidate slots", snap.SelectedDate().Format(domain.DateFormat), len(snap.Candidates))

	// Первый доступный час
	selected := false
	for _, candidate := range snap.Candidates {
		if !candidate.Available {
			continue
		}
		if _, err = session.SelectTime(ctx, candidate.Hour); err != nil {
			log.Warn("Slot %02d:00 rejected: %v", candidate.Hour, err)
			continue
		}
		selected = true
		break
	}
	if !selected {
		return fmt.Errorf("no free slots on %s", snap.SelectedDate().Format(domain.DateFormat))
	}

	phone := os.Getenv("RESERVATION_PHONE")
	if phone == "" {
		phone = "9000000000"
	}
	if _, err = session.SetPhone(phone); err != nil {
		return err
	}

	if _, err = session.InitiateCommit(ctx); err != nil {
		return err
	}

	snap, err = session.ChoosePayLater(ctx)
	if err != nil {
		return err
	}

	log.Info("Booking confirmed: id=%s, %s %s, pay at salon",
		snap.Booking.ID, snap.Booking.Date.Format(domain.DateFormat), snap.Slot.Display())

	return nil
}
