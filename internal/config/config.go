package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	Gateway Gateway `envPrefix:"GATEWAY_"`
	Auth    Auth    `envPrefix:"JWT_"`
	Payment Payment `envPrefix:"PAYMENT_"`
}

type Gateway struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
}

type Auth struct {
	UserSecret  string        `env:"USER_SECRET"`
	AdminSecret string        `env:"ADMIN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
}

type Payment struct {
	// USD to INR. There is no live quote source; the rate is fixed.
	ConversionRate string `env:"CONVERSION_RATE" envDefault:"87"`

	// retry budget for the purchase write after a verified payment
	RecordAttempts uint          `env:"RECORD_ATTEMPTS" envDefault:"5"`
	RecordDelay    time.Duration `env:"RECORD_DELAY" envDefault:"200ms"`
	RecordMaxDelay time.Duration `env:"RECORD_MAX_DELAY" envDefault:"2s"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
