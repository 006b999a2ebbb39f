package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Postgres   DBConfig
	Redis      RedisConfig
	S3         S3Config
	Logger     Logger
	Worker     WorkerConfig
	Scraper    ScraperConfig
	Copywriter CopywriterConfig
	TTS        TTSConfig
	Render     RenderConfig
	Storage    StorageConfig
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

type WorkerConfig struct {
	WorkerCount int
	MaxCPUUsage float64
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	TaskQueueKey  string
	StatusTTL     int
}

type S3Config struct {
	Endpoint       string
	Region         string
	AccessKey      string
	SecretKey      string
	ArchiveBucket  string
	ArchiveEnabled bool
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

type ScraperConfig struct {
	UserAgent      string
	TimeoutSeconds int
	MaxImages      int
}

type CopywriterConfig struct {
	Provider       string
	LMStudioURL    string
	OpenAIURL      string
	OpenAIKey      string
	Model          string
	TimeoutSeconds int
}

type TTSConfig struct {
	Endpoint       string
	Language       string
	TimeoutSeconds int
}

type RenderConfig struct {
	Orientation         string
	FontPath            string
	FontSize            float64
	SlideTimeoutSeconds int
	TimeoutSeconds      int
}

type StorageConfig struct {
	VideosDir string
	WorkDir   string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	log.Println(c.Server)
	return &c, nil
}
