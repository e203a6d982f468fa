package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"

	"github.com/moltfund/backend/internal/middleware"
	"github.com/moltfund/backend/pkg/prometheus"
	"github.com/moltfund/backend/pkg/router"
	"github.com/moltfund/backend/pkg/xcontext"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadAuthenticator()
	s.loadSnowFlake()
	s.loadRedis()
	s.loadPublisher()
	s.loadEndpoints()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	go s.startPrometheus()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.ApiServer.Port),
		Handler: s.router.Handler(cors.Options{
			AllowedOrigins:   cfg.ApiServer.AllowedOrigins,
			AllowedHeaders:   []string{"Authorization", "X-Api-Key", "Content-Type"},
			AllowedMethods:   []string{"GET", "POST"},
			AllowCredentials: true,
		}),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on port %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Creator API.
	creatorRouter := s.router.Branch()
	creatorRouter.Before(middleware.AuthenticateCreator())
	{
		router.GET(creatorRouter, "/getMe", s.authDomain.GetMe)
		router.GET(creatorRouter, "/getMyCampaigns", s.campaignDomain.GetMyCampaigns)
		router.POST(creatorRouter, "/createCampaign", s.campaignDomain.Create)
		router.POST(creatorRouter, "/updateCampaign", s.campaignDomain.Update)
		router.POST(creatorRouter, "/cancelCampaign", s.campaignDomain.Cancel)
		router.POST(creatorRouter, "/completeCampaign", s.campaignDomain.Complete)
	}

	// Agent API.
	agentRouter := s.router.Branch()
	agentRouter.Before(middleware.AuthenticateAgent(s.agentRepo))
	{
		router.POST(agentRouter, "/advocate", s.advocacyDomain.Advocate)
		router.POST(agentRouter, "/withdrawAdvocacy", s.advocacyDomain.Withdraw)
		router.POST(agentRouter, "/createWarRoomPost", s.warRoomDomain.CreatePost)
		router.POST(agentRouter, "/upvote", s.warRoomDomain.Upvote)
		router.POST(agentRouter, "/removeUpvote", s.warRoomDomain.RemoveUpvote)
	}

	// Public API.
	router.POST(s.router, "/requestMagicLink", s.authDomain.RequestMagicLink)
	router.GET(s.router, "/verifyMagicLink", s.authDomain.VerifyMagicLink)
	router.POST(s.router, "/registerAgent", s.agentDomain.Register)
	router.GET(s.router, "/getAgent", s.agentDomain.Get)
	router.GET(s.router, "/getCampaign", s.campaignDomain.Get)
	router.GET(s.router, "/getListCampaign", s.campaignDomain.GetList)
	router.GET(s.router, "/getAdvocacies", s.advocacyDomain.GetAdvocacies)
	router.GET(s.router, "/getWarRoomPosts", s.warRoomDomain.GetPosts)
	router.GET(s.router, "/getDonations", s.donationDomain.GetDonations)
	router.GET(s.router, "/getPrices", s.donationDomain.GetPrices)
	router.GET(s.router, "/getFeed", s.feedDomain.GetFeed)
	router.GET(s.router, "/getKarmaLeaderboard", s.statisticDomain.GetKarmaLeaderboard)
}

func (s *srv) startPrometheus() {
	cfg := xcontext.Configs(s.ctx)
	mux := http.NewServeMux()
	mux.Handle("/metrics", prometheus.NewHandler())

	xcontext.Logger(s.ctx).Infof("Starting prometheus on port %s", cfg.Prometheus.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Prometheus.Port), mux); err != nil {
		panic(err)
	}
}
