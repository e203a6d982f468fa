package main

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/moltfund/backend/internal/client"
	"github.com/moltfund/backend/internal/domain"
	"github.com/moltfund/backend/internal/domain/feedhub"
	"github.com/moltfund/backend/internal/domain/milestone"
	"github.com/moltfund/backend/internal/domain/priceoracle"
	"github.com/moltfund/backend/internal/domain/statistic"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/migration"
	"github.com/moltfund/backend/pkg/api/blockcypher"
	"github.com/moltfund/backend/pkg/api/coingecko"
	"github.com/moltfund/backend/pkg/api/cryptocompare"
	"github.com/moltfund/backend/pkg/api/helius"
	"github.com/moltfund/backend/pkg/api/sendgrid"
	"github.com/moltfund/backend/pkg/authenticator"
	"github.com/moltfund/backend/pkg/blockchain/eth"
	"github.com/moltfund/backend/pkg/kafka"
	"github.com/moltfund/backend/pkg/logger"
	"github.com/moltfund/backend/pkg/pubsub"
	"github.com/moltfund/backend/pkg/router"
	"github.com/moltfund/backend/pkg/xcontext"
	"github.com/moltfund/backend/pkg/xredis"
)

type srv struct {
	ctx context.Context

	creatorRepo   repository.CreatorRepository
	campaignRepo  repository.CampaignRepository
	donationRepo  repository.DonationRepository
	agentRepo     repository.AgentRepository
	advocacyRepo  repository.AdvocacyRepository
	postRepo      repository.WarRoomPostRepository
	upvoteRepo    repository.UpvoteRepository
	feedEventRepo repository.FeedEventRepository
	magicLinkRepo repository.MagicLinkRepository

	authDomain      domain.AuthDomain
	campaignDomain  domain.CampaignDomain
	agentDomain     domain.AgentDomain
	advocacyDomain  domain.AdvocacyDomain
	warRoomDomain   domain.WarRoomDomain
	donationDomain  domain.DonationDomain
	feedDomain      domain.FeedDomain
	statisticDomain domain.StatisticDomain

	feedHub         feedhub.Hub
	oracle          priceoracle.Oracle
	milestoneEngine milestone.Engine
	leaderboard     statistic.Leaderboard

	emailCaller    client.EmailNotifierCaller
	transferCaller client.TransferFetcherCaller

	publisher   pubsub.Publisher
	redisClient xredis.Client

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	s.ctx = xcontext.WithConfigs(context.Background(), loadConfigs())
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadDatabase() {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadAuthenticator() {
	engine := authenticator.NewTokenEngine(xcontext.Configs(s.ctx).Auth.TokenSecret)
	s.ctx = xcontext.WithTokenEngine(s.ctx, engine)
}

func (s *srv) loadSnowFlake() {
	node, err := snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	s.publisher = kafka.NewPublisher("moltfund", []string{cfg.Kafka.Addr})
}

func (s *srv) loadEndpoints() {
	cfg := xcontext.Configs(s.ctx)
	s.emailCaller = client.NewEmailNotifierCaller(
		sendgrid.New(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName))

	ethClient, err := eth.DialClient(cfg.Poller.BaseRPC)
	if err != nil {
		panic(err)
	}

	s.transferCaller = client.NewTransferFetcherCaller(
		blockcypher.New(cfg.Poller.BlockCypherToken),
		helius.New(cfg.Poller.HeliusAPIKey),
		eth.NewUSDCScanner(ethClient, cfg.Poller.USDCBaseContract, cfg.Poller.USDCScanSpan),
	)
}

func (s *srv) loadRepos() {
	s.creatorRepo = repository.NewCreatorRepository()
	s.campaignRepo = repository.NewCampaignRepository()
	s.donationRepo = repository.NewDonationRepository()
	s.agentRepo = repository.NewAgentRepository()
	s.advocacyRepo = repository.NewAdvocacyRepository()
	s.postRepo = repository.NewWarRoomPostRepository()
	s.upvoteRepo = repository.NewUpvoteRepository()
	s.feedEventRepo = repository.NewFeedEventRepository()
	s.magicLinkRepo = repository.NewMagicLinkRepository()
}

func (s *srv) loadDomains() {
	s.feedHub = feedhub.NewHub(s.feedEventRepo, s.publisher)
	s.oracle = priceoracle.NewOracle(
		priceoracle.NewCoinGeckoStrategy(coingecko.New()),
		priceoracle.NewCryptoCompareStrategy(cryptocompare.New()),
	)
	s.milestoneEngine = milestone.NewEngine(
		s.campaignRepo, s.creatorRepo, s.emailCaller, s.feedHub)
	s.leaderboard = statistic.New(s.agentRepo, s.redisClient)

	s.authDomain = domain.NewAuthDomain(s.creatorRepo, s.magicLinkRepo, s.emailCaller)
	s.campaignDomain = domain.NewCampaignDomain(
		s.campaignRepo, s.creatorRepo, s.donationRepo, s.feedHub)
	s.agentDomain = domain.NewAgentDomain(s.agentRepo)
	s.advocacyDomain = domain.NewAdvocacyDomain(
		s.advocacyRepo, s.campaignRepo, s.creatorRepo, s.agentRepo, s.emailCaller, s.feedHub)
	s.warRoomDomain = domain.NewWarRoomDomain(
		s.postRepo, s.upvoteRepo, s.agentRepo, s.campaignRepo, s.feedHub, s.leaderboard)
	s.donationDomain = domain.NewDonationDomain(s.donationRepo, s.oracle)
	s.feedDomain = domain.NewFeedDomain(s.feedEventRepo, s.campaignRepo, s.agentRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.leaderboard)
}
