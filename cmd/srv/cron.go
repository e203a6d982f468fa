package main

import (
	"github.com/urfave/cli/v2"

	"github.com/moltfund/backend/internal/domain/cron"
	"github.com/moltfund/backend/pkg/xcontext"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadSnowFlake()
	s.loadPublisher()
	s.loadEndpoints()
	s.loadRepos()
	s.loadDomains()

	poller := cron.NewBalancePollerCronJob(
		xcontext.Configs(s.ctx).Poller.Interval,
		s.campaignRepo,
		s.donationRepo,
		s.transferCaller,
		s.oracle,
		s.milestoneEngine,
		s.feedHub,
	)

	cron.NewCronJobManager().Start(s.ctx, poller)
	return nil
}
