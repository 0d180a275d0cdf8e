package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"salepoint/internal/domain/worker"
	"salepoint/internal/handler/api"
	"salepoint/internal/handler/middleware"
	"salepoint/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Sale        *api.SaleHandler
	Catalog     *api.CatalogHandler
	Expenditure *api.ExpenditureHandler
	Submission  *api.SubmissionHandler
	Shift       *api.ShiftHandler
	Worker      *api.WorkerHandler
	Report      *api.ReportHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.PrometheusMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	middleware.InitMetrics()

	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := authMiddleware.RequireRoleAtLeast(worker.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})
		}

		sales := apiGroup.Group("/sales")
		sales.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sales, []route{
				{Method: http.MethodPost, Path: "/complete", Handler: h.Sale.Complete},
				{Method: http.MethodGet, Path: "", Handler: h.Sale.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Sale.GetByID},
			})
		}

		products := apiGroup.Group("/products")
		products.Use(authMiddleware.RequireAuth())
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListProducts},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Catalog.GetProduct},
				{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreateProduct, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Catalog.UpdateProduct, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Catalog.DeleteProduct, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPatch, Path: "/:id/stock", Handler: h.Catalog.AdjustStock, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		services := apiGroup.Group("/services")
		services.Use(authMiddleware.RequireAuth())
		{
			addRoutes(services, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListServices},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Catalog.GetService},
				{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreateService, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Catalog.UpdateService, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Catalog.DeleteService, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		expenditures := apiGroup.Group("/expenditures")
		expenditures.Use(authMiddleware.RequireAuth())
		{
			addRoutes(expenditures, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Expenditure.Record},
				{Method: http.MethodGet, Path: "", Handler: h.Expenditure.List},
			})
		}

		submissions := apiGroup.Group("/submissions")
		submissions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(submissions, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Submission.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Submission.List, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Submission.Approve, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Submission.Reject, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		shifts := apiGroup.Group("/shifts")
		shifts.Use(authMiddleware.RequireAuth())
		{
			addRoutes(shifts, []route{
				{Method: http.MethodPost, Path: "/start", Handler: h.Shift.Start},
				{Method: http.MethodPost, Path: "/end", Handler: h.Shift.End},
				{Method: http.MethodGet, Path: "/current", Handler: h.Shift.Current},
			})
		}

		workers := apiGroup.Group("/workers")
		workers.Use(authMiddleware.RequireAuth(), adminOnly)
		{
			addRoutes(workers, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Worker.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Worker.List},
			})
		}

		reports := apiGroup.Group("/reports")
		reports.Use(authMiddleware.RequireAuth(), adminOnly)
		{
			addRoutes(reports, []route{
				{Method: http.MethodGet, Path: "/summary", Handler: h.Report.Summary},
				{Method: http.MethodGet, Path: "/balances", Handler: h.Report.WorkerBalances},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
