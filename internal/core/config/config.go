package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}
type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
	// 允许跨域的后台前端地址，空则放开所有
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

// LogFile 文件切割（lumberjack）
type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int `mapstructure:"access_token_ttl_min"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int    `mapstructure:"conn_max_lifetime_min"`
	AutoMigrate        bool   `mapstructure:"auto_migrate"`
	LogLevel           string `mapstructure:"log_level"`
}

type Cache struct {
	DashboardTTLSec int `mapstructure:"dashboard_ttl_sec"`
	Prefix          string
}

// Storage banner 图片等上传文件：local | supabase
type Storage struct {
	Driver      string
	LocalDir    string `mapstructure:"local_dir"`
	PublicURL   string `mapstructure:"public_url"`
	SupabaseURL string `mapstructure:"supabase_url"`
	SupabaseKey string `mapstructure:"supabase_key"`
	Bucket      string
}

type Orders struct {
	// 开启后订单状态按流转表校验；默认管理员可任意修改
	StrictTransitions bool `mapstructure:"strict_transitions"`
}

// Admin 启动时确保存在的初始管理员
type Admin struct {
	Email    string
	Password string
	Name     string
}

type Export struct {
	ImageTimeoutSec int   `mapstructure:"image_timeout_sec"`
	MaxImageBytes   int64 `mapstructure:"max_image_bytes"`
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	Cache   Cache
	Storage Storage
	Orders  Orders
	Admin   Admin
	Export  Export
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-shop-admin")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 30)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.max_size_mb", 100)
	v.SetDefault("log.file.max_backups", 7)
	v.SetDefault("log.file.max_age_days", 30)
	// 没有默认值的 key 也要登记，否则 AutomaticEnv 在 Unmarshal 时不会生效
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "go-shop-admin")
	v.SetDefault("jwt.access_token_ttl_min", 720)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:shop.db?_foreign_keys=on")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime_min", 30)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("db.log_level", "warn")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.dashboard_ttl_sec", 30)
	v.SetDefault("cache.prefix", "shop:")
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_dir", "./uploads")
	v.SetDefault("storage.public_url", "/uploads")
	v.SetDefault("storage.bucket", "uploads")
	v.SetDefault("storage.supabase_url", "")
	v.SetDefault("storage.supabase_key", "")
	v.SetDefault("orders.strict_transitions", false)
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.name", "Administrator")
	v.SetDefault("export.image_timeout_sec", 5)
	v.SetDefault("export.max_image_bytes", 5<<20)
}

// Load 读取 yaml + APP_ 前缀环境变量；配置文件缺失时只用默认值与环境变量
func Load(path string) *Config {
	c, err := LoadE(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return c
}

func LoadE(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		log.Printf("[config] %s not found, using defaults + env", path)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.JWT.Secret == "" {
		return nil, errors.New("jwt.secret is required (APP_JWT_SECRET)")
	}
	return &c, nil
}
