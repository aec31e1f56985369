package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BACKEND_HUGGINGFACE = "huggingface"
	BACKEND_HUGOT       = "hugot"
	BACKEND_OPENAI      = "openai"
	BACKEND_VADER       = "vader"

	HISTORY_MEMORY   = "memory"
	HISTORY_VALKEY   = "valkey"
	HISTORY_DYNAMODB = "dynamodb"

	DEFAULT_MODEL_NAME = "poom-sci/WangchanBERTa-finetuned-sentiment"
)

type Settings struct {
	Env      string
	HTTPAddr string
	LogLevel string
	LogFile  string

	Backend         string
	ModelName       string
	HFAPIURL        string
	HFAPIToken      string
	HugotModelDir   string
	OpenAIAPIKey    string
	OpenAIModel     string
	CacheSize       int
	HealthcheckTick time.Duration

	HistoryBackend string
	HistoryLimit   int
	ValkeyAddr     string
	ValkeyPassword string
	ValkeyTLS      bool
	AWSRegion      string
	AWSEndpoint    string
	HistoryTable   string

	KafkaBroker  string
	KafkaTopic   string
	KafkaGroupID string

	BatchMaxLines int
	TextMaxChars  int
}

// Load reads Settings from the environment. Call LoadEnv first so .env values are visible.
func Load() Settings {
	return Settings{
		Env:      getEnv("APP_ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8501"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:  getEnv("LOG_FILE", ""),

		Backend:         strings.ToLower(getEnv("SENTIMENT_BACKEND", BACKEND_HUGGINGFACE)),
		ModelName:       getEnv("HF_MODEL_NAME", DEFAULT_MODEL_NAME),
		HFAPIURL:        getEnv("HF_API_URL", "https://api-inference.huggingface.co/models/"),
		HFAPIToken:      getEnv("HF_API_TOKEN", ""),
		HugotModelDir:   getEnv("HUGOT_MODEL_DIR", "./models"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		CacheSize:       getEnvInt("PREDICTION_CACHE_SIZE", 512),
		HealthcheckTick: getEnvDuration("HEALTHCHECK_INTERVAL", 15*time.Second),

		HistoryBackend: strings.ToLower(getEnv("HISTORY_BACKEND", HISTORY_MEMORY)),
		HistoryLimit:   getEnvInt("HISTORY_LIMIT", 100),
		ValkeyAddr:     getEnv("VALKEY_INIT_ADDRESS", "localhost:6379"),
		ValkeyPassword: getEnv("VALKEY_PASSWORD", ""),
		ValkeyTLS:      getEnv("VALKEY_TLS", "false") == "true",
		AWSRegion:      getEnv("AWS_REGION", "us-west-2"),
		AWSEndpoint:    getEnv("AWS_ENDPOINT", ""),
		HistoryTable:   getEnv("HISTORY_TABLE_NAME", "SentimentHistory"),

		KafkaBroker:  getEnv("KAFKA_BROKER", ""),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "sentiment-results"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "thaisenti-archiver"),

		BatchMaxLines: getEnvInt("BATCH_MAX_LINES", 50),
		TextMaxChars:  getEnvInt("TEXT_MAX_CHARS", 2000),
	}
}

func (s Settings) IsProduction() bool {
	return s.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvDuration accepts Go durations ("30s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
