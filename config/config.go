package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr         string
	InsightsHTTPAddr string
	GatewayHTTPAddr  string
	StaticDir        string
	StorageBackend   string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	RedisHost string
	RedisPort string

	KafkaEnabled     bool
	KafkaBroker      string
	KafkaOrdersTopic string
	KafkaGroupID     string

	PublicBaseURL string
	AdminEmail    string
	AdminPassword string
	BcryptCost    int

	StorefrontSvcURL string
	InsightsSvcURL   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8081")
	v.SetDefault("INSIGHTS_HTTP_ADDR", ":8083")
	v.SetDefault("GATEWAY_HTTP_ADDR", ":8080")
	v.SetDefault("STATIC_DIR", "./web")
	v.SetDefault("STORAGE_BACKEND", BackendMemory)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "cafenine")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKER", "localhost:9092")
	v.SetDefault("KAFKA_ORDERS_TOPIC", "cafenine.orders")
	v.SetDefault("KAFKA_GROUP_ID", "insights-svc")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("ADMIN_EMAIL", "admin@cafenine.com")
	v.SetDefault("ADMIN_PASSWORD", "cafenine-admin")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("STOREFRONT_SVC_URL", "http://localhost:8081")
	v.SetDefault("INSIGHTS_SVC_URL", "http://localhost:8083")
}

// Load reads configuration from the environment and, when cfgFile is set, from
// that file. Environment variables win over the file.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		log.Println("Using config file:", v.ConfigFileUsed())
	}

	cfg := &Config{
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		InsightsHTTPAddr: v.GetString("INSIGHTS_HTTP_ADDR"),
		GatewayHTTPAddr:  v.GetString("GATEWAY_HTTP_ADDR"),
		StaticDir:        v.GetString("STATIC_DIR"),
		StorageBackend:   strings.ToLower(v.GetString("STORAGE_BACKEND")),
		DBHost:           v.GetString("DB_HOST"),
		DBPort:           v.GetString("DB_PORT"),
		DBName:           v.GetString("DB_NAME"),
		DBUser:           v.GetString("DB_USER"),
		DBPassword:       v.GetString("DB_PASSWORD"),
		RedisHost:        v.GetString("REDIS_HOST"),
		RedisPort:        v.GetString("REDIS_PORT"),
		KafkaEnabled:     v.GetBool("KAFKA_ENABLED"),
		KafkaBroker:      v.GetString("KAFKA_BROKER"),
		KafkaOrdersTopic: v.GetString("KAFKA_ORDERS_TOPIC"),
		KafkaGroupID:     v.GetString("KAFKA_GROUP_ID"),
		PublicBaseURL:    strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		AdminEmail:       v.GetString("ADMIN_EMAIL"),
		AdminPassword:    v.GetString("ADMIN_PASSWORD"),
		BcryptCost:       v.GetInt("BCRYPT_COST"),
		StorefrontSvcURL: v.GetString("STOREFRONT_SVC_URL"),
		InsightsSvcURL:   v.GetString("INSIGHTS_SVC_URL"),
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.AdminPassword == "cafenine-admin" {
		log.Println("[WARN] ADMIN_PASSWORD uses the default value, set your own outside local demos")
	}

	return cfg, nil
}

func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func MustInitPostgres(cfg *Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg *Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaOrdersTopic,
		GroupID: cfg.KafkaGroupID,
	})
}

// NewKafkaWriter hashes message keys so events from one branch stay on one partition.
func NewKafkaWriter(cfg *Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.KafkaOrdersTopic,
		Balancer: &kafka.Hash{},
	}
}
