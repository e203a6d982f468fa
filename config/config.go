package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database    DatabaseConfigs
	ApiServer   ServerConfigs
	Auth        AuthConfigs
	Redis       RedisConfigs
	Kafka       KafkaConfigs
	Poller      PollerConfigs
	PriceOracle PriceOracleConfigs
	Email       EmailConfigs
	Campaign    CampaignConfigs
	Prometheus  ServerConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host           string
	Port           string
	AllowedOrigins []string
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
	MagicLink   MagicLinkConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type MagicLinkConfigs struct {
	Expiration time.Duration
	BaseURL    string
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr      string
	FeedTopic string
}

type PollerConfigs struct {
	Interval         time.Duration
	PageLimit        int
	BlockCypherToken string
	HeliusAPIKey     string
	BaseRPC          string
	USDCBaseContract string
	USDCScanSpan     int64
}

type PriceOracleConfigs struct {
	CacheTTL time.Duration
}

type EmailConfigs struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

type CampaignConfigs struct {
	RequireApprovedKYC bool
}
