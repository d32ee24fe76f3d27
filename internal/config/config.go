package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	RedisURL         string
	CoinGeckoBaseURL string
	LlamaBaseURL     string
	GeminiBaseURL    string
	GeminiAPIKey     string
	GeminiModel      string
	RequestTimeout   time.Duration
	StreamTimeout    time.Duration
	CacheTTLMarket   time.Duration
	CacheTTLTrending time.Duration
	CacheTTLFunding  time.Duration
	RateLimitPerMin  int
	DefaultLanguage  string
}

func Load() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		CoinGeckoBaseURL: getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
		LlamaBaseURL:     getEnv("LLAMA_BASE_URL", "https://api.llama.fi"),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		RequestTimeout:   getEnvDuration("REQUEST_TIMEOUT", 12*time.Second),
		StreamTimeout:    getEnvDuration("STREAM_TIMEOUT", 90*time.Second),
		CacheTTLMarket:   getEnvDuration("CACHE_TTL_MARKET", 20*time.Second),
		CacheTTLTrending: getEnvDuration("CACHE_TTL_TRENDING", 60*time.Second),
		CacheTTLFunding:  getEnvDuration("CACHE_TTL_FUNDING", 90*time.Second),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MIN", 120),
		DefaultLanguage:  getEnv("DEFAULT_LANGUAGE", "zh-TW"),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return time.Duration(i) * time.Second
}
