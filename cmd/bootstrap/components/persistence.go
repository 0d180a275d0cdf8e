package components

import (
	"salepoint/internal/infra/cache"
	"salepoint/internal/infra/db"
	"salepoint/internal/infra/readstore"
	"salepoint/internal/infra/uow"
	"salepoint/internal/pkg/config"
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/queries"
	"salepoint/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Sale
		fx.Annotate(
			readstore.NewSaleReadStore,
			fx.As(new(queries.SaleViewRepo)),
		),
		// Catalog, wrapped by the read-through cache
		readstore.NewCatalogReadStore,
		fx.Annotate(
			NewCatalogCache,
			fx.As(new(queries.CatalogViewRepo)),
			fx.As(new(commands.CatalogCache)),
		),
		// Expenditure
		fx.Annotate(
			readstore.NewExpenditureReadStore,
			fx.As(new(queries.ExpenditureViewRepo)),
		),
		// Submission
		fx.Annotate(
			readstore.NewSubmissionReadStore,
			fx.As(new(queries.SubmissionViewRepo)),
		),
		// Shift
		fx.Annotate(
			readstore.NewShiftReadStore,
			fx.As(new(queries.ShiftViewRepo)),
		),
		// Worker
		fx.Annotate(
			readstore.NewWorkerReadStore,
			fx.As(new(queries.WorkerViewRepo)),
		),
		// Report
		fx.Annotate(
			readstore.NewReportReadStore,
			fx.As(new(queries.ReportViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewCatalogCache(base *readstore.CatalogReadStore, rdb *redis.Client, cfg config.Config) *cache.CatalogCache {
	return cache.NewCatalogCache(base, rdb, cfg.Redis.CatalogTTL)
}
