package main

import (
	"github.com/urfave/cli/v2"

	"github.com/moltfund/backend/pkg/xcontext"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()

	xcontext.Logger(s.ctx).Infof("Migration completed")
	return nil
}
