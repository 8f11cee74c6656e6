package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGBookingDSN string `envconfig:"PG_BOOKING_DSN" required:"true"`
	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	// RabbitMQ for payment status events
	RabbitURL       string `envconfig:"RABBIT_URL" required:"true"`
	PaymentExchange string `envconfig:"PAYMENT_EXCHANGE" default:"payment.exchange"`
	PaymentQueue    string `envconfig:"BOOKING_PAYMENT_QUEUE" default:"booking.payment.q"`
	// Network
	HTTPAddr   string `envconfig:"HTTP_ADDR" default:":8080"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
