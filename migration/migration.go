package migration

import "context"

var Migrators = map[string]func(context.Context) error{
	"auto": AutoMigrate,
}

func Migrate(ctx context.Context) error {
	return AutoMigrate(ctx)
}
