package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	MediaBackendLocal = "local"
	MediaBackendS3    = "s3"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Env         string            `yaml:"env" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	Storage     StorageConfig     `yaml:"storage"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Media       MediaConfig       `yaml:"media"`
	S3          S3Config          `yaml:"s3"`
	Redis       RedisConf         `yaml:"redis"`
	Admin       AdminConfig       `yaml:"admin"`
	Contact     ContactConfig     `yaml:"contact"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host" env:"HTTP_HOST"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"30s"`
}

type StorageConfig struct {
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env-default:"/uploads"`
	MaxSize int64  `yaml:"max_size" env-default:"52428800"`
}

type MediaConfig struct {
	Backend string        `yaml:"backend" env:"MEDIA_BACKEND" env-default:"local"`
	Timeout time.Duration `yaml:"timeout" env-default:"60s"`
}

type S3Config struct {
	Region        string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Bucket        string `yaml:"bucket" env:"S3_BUCKET"`
	Endpoint      string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKey     string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
}

type AdminConfig struct {
	PasswordHash   string        `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH" env-required:"true"`
	TokenSecret    string        `yaml:"token_secret" env:"ADMIN_TOKEN_SECRET" env-required:"true"`
	SessionTTL     time.Duration `yaml:"session_ttl" env-default:"24h"`
	SessionBackend string        `yaml:"session_backend" env:"ADMIN_SESSION_BACKEND" env-default:"memory"`
	CookieSecret   string        `yaml:"cookie_secret" env:"ADMIN_COOKIE_SECRET" env-required:"true"`
}

type ContactConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" env-default:"5"`
	Burst             int `yaml:"burst" env-default:"3"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err)
	}

	return cfg
}

// LoadPath читает YAML, переменные окружения перекрывают значения из файла
func LoadPath(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &LoadError{Path: configPath, Reason: "config file does not exist"}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, &LoadError{Path: configPath, Reason: "cannot read config: " + err.Error()}
	}

	switch cfg.Media.Backend {
	case MediaBackendLocal:
	case MediaBackendS3:
		if cfg.S3.Bucket == "" {
			return nil, &LoadError{Path: configPath, Reason: "s3.bucket is required for the s3 media backend"}
		}
	default:
		return nil, &LoadError{Path: configPath, Reason: "unknown media backend: " + cfg.Media.Backend}
	}

	switch cfg.Admin.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if cfg.Redis.RedisAddr == "" {
			return nil, &LoadError{Path: configPath, Reason: "redis.redis_addr is required for the redis session backend"}
		}
	default:
		return nil, &LoadError{Path: configPath, Reason: "unknown session backend: " + cfg.Admin.SessionBackend}
	}

	return &cfg, nil
}

type LoadError struct {
	Path   string
	Reason string
}

func (e *LoadError) Error() string {
	return e.Reason + ": " + e.Path
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
