package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Company       CompanyConfig
	Render        RenderConfig
	Export        ExportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"QUOTEHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"QUOTEHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QUOTEHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUOTEHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QUOTEHUB_DB_DSN"`
	Driver string `envconfig:"QUOTEHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"QUOTEHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"QUOTEHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"QUOTEHUB_DB_USER"`
	LegacyPassword string `envconfig:"QUOTEHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"QUOTEHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"QUOTEHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUOTEHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUOTEHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUOTEHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUOTEHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QUOTEHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"QUOTEHUB_REDIS_ADDR"`
	Password     string        `envconfig:"QUOTEHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUOTEHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUOTEHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUOTEHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUOTEHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUOTEHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUOTEHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"QUOTEHUB_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"QUOTEHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"QUOTEHUB_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"QUOTEHUB_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"QUOTEHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"QUOTEHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"QUOTEHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"QUOTEHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"QUOTEHUB_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"QUOTEHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"QUOTEHUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"QUOTEHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"QUOTEHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"QUOTEHUB_AUTO_MIGRATE" default:"false"`
}

// CompanyConfig feeds the letterhead of exported quotation documents.
type CompanyConfig struct {
	Name    string `envconfig:"QUOTEHUB_COMPANY_NAME" default:"QuoteHub"`
	Address string `envconfig:"QUOTEHUB_COMPANY_ADDRESS"`
	Phone   string `envconfig:"QUOTEHUB_COMPANY_PHONE"`
	Email   string `envconfig:"QUOTEHUB_COMPANY_EMAIL"`
	TaxID   string `envconfig:"QUOTEHUB_COMPANY_TAX_ID"`
	Footer  string `envconfig:"QUOTEHUB_COMPANY_FOOTER"`
}

type RenderConfig struct {
	PreviewWidth  int `envconfig:"QUOTEHUB_RENDER_PREVIEW_WIDTH" default:"360"`
	PreviewHeight int `envconfig:"QUOTEHUB_RENDER_PREVIEW_HEIGHT" default:"280"`
	RasterWidth   int `envconfig:"QUOTEHUB_RENDER_RASTER_WIDTH" default:"720"`
	RasterHeight  int `envconfig:"QUOTEHUB_RENDER_RASTER_HEIGHT" default:"560"`
}

type ExportConfig struct {
	QuotationValidityDays int `envconfig:"QUOTEHUB_EXPORT_VALIDITY_DAYS" default:"15"`
	SketchDPI             int `envconfig:"QUOTEHUB_EXPORT_SKETCH_DPI" default:"150"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
