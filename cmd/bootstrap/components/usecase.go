package components

import (
	"salepoint/internal/pkg/clock"
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewSaleUseCase,
		commands.NewCatalogUseCase,
		commands.NewExpenditureUseCase,
		commands.NewSubmissionUseCase,
		commands.NewShiftUseCase,
		commands.NewWorkerUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSaleQueries,
		queries.NewCatalogQueries,
		queries.NewExpenditureQueries,
		queries.NewSubmissionQueries,
		queries.NewShiftQueries,
		queries.NewWorkerQueries,
		queries.NewReportQueries,
	),
)
