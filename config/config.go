// Ininicializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	App     AppConfig     `mapstructure:"app"`
	Storage StorageConfig `mapstructure:"storage"`
	Office  OfficeConfig  `mapstructure:"office"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Worker  WorkerConfig  `mapstructure:"worker"`
}

type ServerConfig struct {
	AppVersion   string `json:"appVersion"`
	Host         string `json:"host" validate:"required"`
	Port         string `json:"port" validate:"required"`
	Timeout      time.Duration
	Idle_timeout time.Duration
	Env          string `json:"environment"`
	Mode         string `mapstructure:"mode"`
}

type AppConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	MaxUploadSizeMB int64  `mapstructure:"max_upload_size_mb"`
	MaxBatchFiles   int    `mapstructure:"max_batch_files"`
}

type StorageConfig struct {
	BasePath string `mapstructure:"base_path"`
}

type OfficeConfig struct {
	ServerURL string `mapstructure:"server_url"`
}

type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

type WorkerConfig struct {
	CleanupInterval int `mapstructure:"cleanup_interval"` // в минутах
	RetentionTime   int `mapstructure:"retention_time"`   // в минутах
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}
	return &c, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
