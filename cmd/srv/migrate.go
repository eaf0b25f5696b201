package main

import (
	"github.com/pokequest-lab/backend/migration"
	"github.com/pokequest-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())

	if cctx.Bool("sql") {
		db, err := xcontext.DB(s.ctx).DB()
		if err != nil {
			return err
		}

		return migration.DoSqlMigration(db)
	}

	return migration.Migrate(s.ctx)
}
