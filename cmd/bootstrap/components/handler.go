package components

import (
	"salepoint/internal/handler"
	"salepoint/internal/handler/api"
	"salepoint/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewSaleHandler,
		api.NewCatalogHandler,
		api.NewExpenditureHandler,
		api.NewSubmissionHandler,
		api.NewShiftHandler,
		api.NewWorkerHandler,
		api.NewReportHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	sale *api.SaleHandler,
	catalog *api.CatalogHandler,
	expenditure *api.ExpenditureHandler,
	submission *api.SubmissionHandler,
	shift *api.ShiftHandler,
	worker *api.WorkerHandler,
	report *api.ReportHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        auth,
		Sale:        sale,
		Catalog:     catalog,
		Expenditure: expenditure,
		Submission:  submission,
		Shift:       shift,
		Worker:      worker,
		Report:      report,
	}
}
