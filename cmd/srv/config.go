package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/moltfund/backend/config"
)

func loadConfigs() config.Configs {
	return config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "moltfund"),
			Password: getEnv("MYSQL_PASSWORD", "moltfund"),
			Database: getEnv("MYSQL_DATABASE", "moltfund"),
		},
		ApiServer: config.ServerConfigs{
			Host:           getEnv("API_HOST", "localhost"),
			Port:           getEnv("API_PORT", "8080"),
			AllowedOrigins: strings.Split(getEnv("API_ALLOWED_ORIGINS", "*"), ","),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getDurationEnv("ACCESS_TOKEN_DURATION", "24h"),
			},
			MagicLink: config.MagicLinkConfigs{
				Expiration: getDurationEnv("MAGIC_LINK_DURATION", "15m"),
				BaseURL:    getEnv("MAGIC_LINK_BASE_URL", "http://localhost:8080/verifyMagicLink"),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr:      getEnv("KAFKA_ADDRESS", "localhost:9092"),
			FeedTopic: getEnv("KAFKA_FEED_TOPIC", "feed_events"),
		},
		Poller: config.PollerConfigs{
			Interval:         getDurationEnv("POLLER_INTERVAL", "60s"),
			PageLimit:        getIntEnv("POLLER_PAGE_LIMIT", 50),
			BlockCypherToken: getEnv("BLOCKCYPHER_TOKEN", ""),
			HeliusAPIKey:     getEnv("HELIUS_API_KEY", ""),
			BaseRPC:          getEnv("BASE_RPC", "https://mainnet.base.org"),
			USDCBaseContract: getEnv("USDC_BASE_CONTRACT",
				"0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"),
			USDCScanSpan: int64(getIntEnv("USDC_SCAN_SPAN", 5000)),
		},
		PriceOracle: config.PriceOracleConfigs{
			CacheTTL: getDurationEnv("PRICE_CACHE_TTL", "60s"),
		},
		Email: config.EmailConfigs{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromEmail:      getEnv("EMAIL_FROM", "no-reply@moltfund.xyz"),
			FromName:       getEnv("EMAIL_FROM_NAME", "MoltFund"),
		},
		Campaign: config.CampaignConfigs{
			RequireApprovedKYC: getBoolEnv("CAMPAIGN_REQUIRE_APPROVED_KYC", true),
		},
		Prometheus: config.ServerConfigs{
			Host: getEnv("PROMETHEUS_HOST", "localhost"),
			Port: getEnv("PROMETHEUS_PORT", "9000"),
		},
	}
}

func getEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return def
}

func getIntEnv(key string, def int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}

	return value
}

func getBoolEnv(key string, def bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}

	return value
}

func getDurationEnv(key, def string) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		value, err = time.ParseDuration(def)
		if err != nil {
			panic(err)
		}
	}

	return value
}
