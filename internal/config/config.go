package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация клиента бронирования
type Config struct {
	Booking        BookingConfig        `toml:"booking"`
	SalonService   ServiceClientConfig  `toml:"salon_service"`
	PaymentService ServiceClientConfig  `toml:"payment_service"`
	Razorpay       RazorpayConfig       `toml:"razorpay"`
	Auth           AuthConfig           `toml:"auth"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
}

// BookingConfig параметры процесса бронирования
type BookingConfig struct {
	// Рабочие часы салона: слоты генерируются в интервале [start, end)
	OperatingStartHour int `toml:"operating_start_hour"`
	OperatingEndHour   int `toml:"operating_end_hour"`
	// Валюта платежей (ISO 4217)
	Currency string `toml:"currency"`
}

// ServiceClientConfig настройки клиента внешнего сервиса
type ServiceClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RazorpayConfig публичные параметры платежного виджета.
// Секретный ключ хранится только на бэкенде и здесь не появляется.
type RazorpayConfig struct {
	KeyID string `toml:"key_id"`
}

// AuthConfig параметры аутентификации клиента
type AuthConfig struct {
	// Токен, передаваемый бэкенду в заголовке Authorization
	Token string `toml:"token"`
	// Идентификатор клиента салона
	CustomerRef string `toml:"customer_ref"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Addr        string `toml:"addr"`
	Path        string `toml:"path"`
}

// Load загружает конфигурацию из toml-файла и применяет переопределения
// из переменных окружения (секреты и параметры окружения)
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %v", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Booking.OperatingStartHour == 0 && c.Booking.OperatingEndHour == 0 {
		c.Booking.OperatingStartHour = 9
		c.Booking.OperatingEndHour = 20
	}
	if c.Booking.Currency == "" {
		c.Booking.Currency = "INR"
	}
	if c.SalonService.Timeout == 0 {
		c.SalonService.Timeout = 10
	}
	if c.PaymentService.Timeout == 0 {
		c.PaymentService.Timeout = 15
	}
	// Платежные эндпоинты живут на том же бэкенде, что и бронирования
	if c.PaymentService.URL == "" {
		c.PaymentService.URL = c.SalonService.URL
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc-reservation-core"
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RESERVATION_AUTH_TOKEN"); v != "" {
		c.Auth.Token = v
	}
	if v := os.Getenv("RESERVATION_CUSTOMER_REF"); v != "" {
		c.Auth.CustomerRef = v
	}
	if v := os.Getenv("RAZORPAY_KEY_ID"); v != "" {
		c.Razorpay.KeyID = v
	}
}

func (c *Config) validate() error {
	if c.SalonService.URL == "" {
		return fmt.Errorf("config: salon_service.url is required")
	}
	if c.Booking.OperatingStartHour < 0 || c.Booking.OperatingEndHour > 24 ||
		c.Booking.OperatingStartHour >= c.Booking.OperatingEndHour {
		return fmt.Errorf("config: invalid operating hours %d..%d",
			c.Booking.OperatingStartHour, c.Booking.OperatingEndHour)
	}
	return nil
}
