// Package config loads service configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	RefData  RefDataConfig
	Carriers CarriersConfig
	Pricing  PricingConfig
	Audit    AuditConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	LogLevel        string
	LogPretty       bool
	RateLimit       int
	RateWindow      time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	IdempotencyTTL  time.Duration
	CORSOrigins     []string
	SwaggerUser     string
	SwaggerPass     string
}

// DatabaseConfig holds MongoDB configuration for quote metadata,
// the quotations ledger and the audit collection.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	AuditTTL     time.Duration
	Enabled      bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// RefDataConfig locates the SQLite reference store.
type RefDataConfig struct {
	// Path is the SQLite file; ":memory:" keeps tables in process.
	Path string
	// SeedFile, when set, replaces every table at startup.
	SeedFile string
}

// CarriersConfig holds live rating API settings.
type CarriersConfig struct {
	HTTPTimeout time.Duration

	BreakerFailureThreshold int
	BreakerSuccessThreshold int
	BreakerTimeout          time.Duration

	// QuoteCacheTTL keeps successful live quotes per lane; zero disables the cache.
	QuoteCacheTTL  time.Duration
	QuoteCacheSize int

	HeyPrimo  HeyPrimoConfig
	ExFreight ExFreightConfig
	JBHunt    JBHuntConfig
}

// HeyPrimoConfig holds LTL broker credentials. Empty credentials disable the adapter.
type HeyPrimoConfig struct {
	LoginURL string
	RateURL  string
	Username string
	Password string
	TokenTTL time.Duration
}

// ExFreightConfig holds LTL broker credentials. An empty token disables the adapter.
type ExFreightConfig struct {
	URL       string
	Token     string
	PartnerID string
}

// JBHuntConfig holds linehaul carrier credentials. Empty client credentials
// disable the adapter.
type JBHuntConfig struct {
	TokenURL     string
	QuoteURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	APIKey       string
	BillToCode   string
}

// PricingConfig holds the business constants used by the pricing engine.
type PricingConfig struct {
	LinehaulMarkup         float64
	DualTruckloadDivisor   float64
	FTL53Divisor           float64
	TruckloadWeightLbs     float64
	FTLWeightLbs           float64
	KgToLbs                float64
	USDToINR               float64
	MinimumLastMileUSD     float64
	HotCBMThreshold        float64
	ThreeWeekLowBand       float64
	ThreeWeekHighBand      float64
	PremiumPorts           []string
	SkipDestinations       []string
	DisplayPalletCostUSD   float64
	MultiDestOwnConsoleCBM float64
}

// AuditConfig selects and tunes the audit sink.
type AuditConfig struct {
	// Backend is one of "mongo", "kafka", "rabbitmq", "log" or "none".
	Backend      string
	BufferSize   int
	Workers      int
	WriteTimeout time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	RabbitMQURL      string
	RabbitMQExchange string
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			LogPretty:       getEnvBool("LOG_PRETTY", false),
			RateLimit:       getEnvInt("RATE_LIMIT", 100),
			RateWindow:      getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
			IdempotencyTTL:  getEnvDuration("IDEMPOTENCY_TTL", 10*time.Minute),
			CORSOrigins:     parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:     getEnv("SWAGGER_USER", ""),
			SwaggerPass:     getEnv("SWAGGER_PASS", ""),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "fba_quotes"),
			AuditTTL:                       getEnvDuration("MONGODB_AUDIT_TTL", 90*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		RefData: RefDataConfig{
			Path:     getEnv("REFDATA_PATH", "refdata.db"),
			SeedFile: getEnv("REFDATA_SEED_FILE", ""),
		},
		Carriers: CarriersConfig{
			HTTPTimeout:             getEnvDuration("CARRIER_HTTP_TIMEOUT", 20*time.Second),
			BreakerFailureThreshold: getEnvInt("CARRIER_BREAKER_FAILURE_THRESHOLD", 3),
			BreakerSuccessThreshold: getEnvInt("CARRIER_BREAKER_SUCCESS_THRESHOLD", 1),
			BreakerTimeout:          getEnvDuration("CARRIER_BREAKER_TIMEOUT", time.Minute),
			QuoteCacheTTL:           getEnvDuration("CARRIER_QUOTE_CACHE_TTL", 15*time.Minute),
			QuoteCacheSize:          getEnvInt("CARRIER_QUOTE_CACHE_SIZE", 1024),
			HeyPrimo: HeyPrimoConfig{
				LoginURL: getEnv("HEYPRIMO_LOGIN_URL", "https://heyprimo-api.shipprimus.com/api/v1/login"),
				RateURL:  getEnv("HEYPRIMO_RATE_URL", "https://heyprimo-api.shipprimus.com/applet/v1/rate/multiple"),
				Username: getEnv("HEYPRIMO_USERNAME", ""),
				Password: getEnv("HEYPRIMO_PASSWORD", ""),
				TokenTTL: getEnvDuration("HEYPRIMO_TOKEN_TTL", 50*time.Minute),
			},
			ExFreight: ExFreightConfig{
				URL:       getEnv("EXFREIGHT_URL", "https://exfreight.flipstone.com/api/v2/rating"),
				Token:     getEnv("EXFREIGHT_TOKEN", ""),
				PartnerID: getEnv("EXFREIGHT_PARTNER_ID", ""),
			},
			JBHunt: JBHuntConfig{
				TokenURL:     getEnv("JBHUNT_TOKEN_URL", "https://sso.jbhunt.com/auth/realms/security360/protocol/openid-connect/token"),
				QuoteURL:     getEnv("JBHUNT_QUOTE_URL", "https://api.jbhunt.com/pricing/quoting/v3/dynamic-quote"),
				ClientID:     getEnv("JBHUNT_CLIENT_ID", ""),
				ClientSecret: getEnv("JBHUNT_CLIENT_SECRET", ""),
				Scopes:       parseList(os.Getenv("JBHUNT_SCOPES")),
				APIKey:       getEnv("JBHUNT_API_KEY", ""),
				BillToCode:   getEnv("JBHUNT_BILL_TO_CODE", ""),
			},
		},
		Pricing: PricingConfig{
			LinehaulMarkup:         getEnvFloat("PRICING_LINEHAUL_MARKUP", 1.5),
			DualTruckloadDivisor:   getEnvFloat("PRICING_DUAL_TRUCKLOAD_DIVISOR", 21),
			FTL53Divisor:           getEnvFloat("PRICING_FTL53_DIVISOR", 48),
			TruckloadWeightLbs:     getEnvFloat("PRICING_TRUCKLOAD_WEIGHT_LBS", 45000),
			FTLWeightLbs:           getEnvFloat("PRICING_FTL_WEIGHT_LBS", 11024),
			KgToLbs:                getEnvFloat("PRICING_KG_TO_LBS", 2.205),
			USDToINR:               getEnvFloat("PRICING_USD_TO_INR", 88),
			MinimumLastMileUSD:     getEnvFloat("PRICING_MINIMUM_LAST_MILE_USD", 120),
			HotCBMThreshold:        getEnvFloat("PRICING_HOT_CBM_THRESHOLD", 50),
			ThreeWeekLowBand:       getEnvFloat("PRICING_THREE_WEEK_LOW_BAND", 15),
			ThreeWeekHighBand:      getEnvFloat("PRICING_THREE_WEEK_HIGH_BAND", 35),
			PremiumPorts:           parseListDefault(os.Getenv("PRICING_PREMIUM_PORTS"), []string{"USNYC", "USCHS"}),
			SkipDestinations:       parseList(os.Getenv("PRICING_SKIP_DESTINATIONS")),
			DisplayPalletCostUSD:   getEnvFloat("PRICING_DISPLAY_PALLET_COST_USD", 20),
			MultiDestOwnConsoleCBM: getEnvFloat("PRICING_MULTI_DEST_OWN_CONSOLE_CBM", 25),
		},
		Audit: AuditConfig{
			Backend:          strings.ToLower(getEnv("AUDIT_BACKEND", "log")),
			BufferSize:       getEnvInt("AUDIT_BUFFER_SIZE", 1000),
			Workers:          getEnvInt("AUDIT_WORKERS", 2),
			WriteTimeout:     getEnvDuration("AUDIT_WRITE_TIMEOUT", 5*time.Second),
			KafkaBrokers:     parseList(os.Getenv("KAFKA_BROKERS")),
			KafkaTopic:       getEnv("KAFKA_AUDIT_TOPIC", "fba-audit-events"),
			RabbitMQURL:      getEnv("RABBITMQ_URL", ""),
			RabbitMQExchange: getEnv("RABBITMQ_AUDIT_EXCHANGE", "fba.audit"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseListDefault(s string, defaults []string) []string {
	if list := parseList(s); len(list) > 0 {
		return list
	}
	return defaults
}

func parseCORSOrigins(s string) []string {
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	return append(defaults, parseList(s)...)
}
