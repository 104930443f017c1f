package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8000）

	DatabaseURL      string // DATABASE_URL（あれば最優先）
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	JWTSecret    string        // JWT署名シークレット
	JWTAlgorithm string        // HS256 / HS384 / HS512
	AccessTTL    time.Duration // access tokenの有効期限（1h）
	RefreshTTL   time.Duration // refresh tokenの有効期限（2日）
	// 失効リストに残す時間。access tokenの寿命と同じにする
	RevocationTTL time.Duration

	VerifySalt string        // メール認証リンク用salt
	ResetSalt  string        // パスワードリセット用salt
	LinkMaxAge time.Duration // リンクの有効期限

	RedisURL     string
	StoreTimeout time.Duration // redis / DB 呼び出しのタイムアウト

	BcryptCost int

	MailServer   string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
	MailFromName string

	GoEnv        string   // dev/prod
	LogLevel     string   // debug/info/warn/error
	Domain       string   // メールのリンクに使うドメイン
	AllowedHosts []string // Hostヘッダの許可リスト
	CORSOrigins  []string
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	mailPort, err := atoiDefault("MAIL_PORT", 587)
	if err != nil {
		return Config{}, err
	}
	bcryptCost, err := atoiDefault("BCRYPT_COST", 12)
	if err != nil {
		return Config{}, err
	}

	accessTTL, err := durationDefault("ACCESS_TOKEN_TTL", time.Hour)
	if err != nil {
		return Config{}, err
	}
	refreshTTL, err := durationDefault("REFRESH_TOKEN_TTL", 48*time.Hour)
	if err != nil {
		return Config{}, err
	}
	// 指定がなければaccess tokenと同じ
	revocationTTL, err := durationDefault("REVOCATION_TTL", accessTTL)
	if err != nil {
		return Config{}, err
	}
	linkMaxAge, err := durationDefault("LINK_MAX_AGE", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	storeTimeout, err := durationDefault("STORE_TIMEOUT", 2*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8000"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "bookly"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTAlgorithm:  getenv("JWT_ALGORITHM", "HS256"),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		RevocationTTL: revocationTTL,

		VerifySalt: getenv("VERIFY_SALT", "email-configuration"),
		ResetSalt:  getenv("RESET_SALT", "password-reset"),
		LinkMaxAge: linkMaxAge,

		RedisURL:     getenv("REDIS_URL", "redis://localhost:6379/0"),
		StoreTimeout: storeTimeout,

		BcryptCost: bcryptCost,

		MailServer:   os.Getenv("MAIL_SERVER"),
		MailPort:     mailPort,
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: getenv("MAIL_FROM_NAME", "Bookly"),

		GoEnv:        getenv("GO_ENV", "dev"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		Domain:       getenv("DOMAIN", "localhost:8000"),
		AllowedHosts: splitList(getenv("ALLOWED_HOSTS", "localhost,127.0.0.1,0.0.0.0")),
		CORSOrigins:  splitList(getenv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// 必須チェック
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("JWT_ALGORITHM must be one of HS256, HS384, HS512: got %q", c.JWTAlgorithm)
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	if c.RevocationTTL <= 0 {
		return fmt.Errorf("REVOCATION_TTL must be positive")
	}
	if c.VerifySalt == c.ResetSalt {
		return fmt.Errorf("VERIFY_SALT and RESET_SALT must differ")
	}
	return nil
}

// 本番環境かどうか
func (c Config) IsProduction() bool {
	return c.GoEnv == "prod" || c.GoEnv == "production"
}

// DSNを組み立てる（DATABASE_URLがあればそのまま）
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

// "1h" / "30m" 形式。数字だけなら秒として扱う
func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
