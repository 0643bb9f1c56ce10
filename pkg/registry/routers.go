package registry

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/ml-registry/model-registry/pkg/logging"
	"github.com/ml-registry/model-registry/pkg/metrics"
	"github.com/ml-registry/model-registry/pkg/registry/handler"
	"github.com/ml-registry/model-registry/pkg/registry/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
	"go.uber.org/zap"
)

var (
	apiVersionHeader = fizz.Header(
		"API-Version",
		"API version of the response",
		"",
	)

	requestIDHeader = fizz.Header(
		middleware.RequestIDHeader,
		"Identifier of the request, echoed from the request or generated",
		"",
	)

	notFoundResponse = fizz.Response(
		"404",
		"Not Found",
		nil,
		nil,
		nil,
	)

	conflictResponse = fizz.Response(
		"409",
		"Conflict",
		nil,
		nil,
		nil,
	)

	unprocessableResponse = fizz.Response(
		"422",
		"Validation Error",
		nil,
		nil,
		nil,
	)
)

// RouterConfig carries the settings the HTTP layer needs.
type RouterConfig struct {
	AppName     string
	Version     string
	APIPrefix   string
	CORSOrigins []string
	AuthEnabled bool
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
}

// Controllers groups the handlers served by the router.
type Controllers struct {
	Models     *handler.ModelsAPIController
	Statistics *handler.StatisticsController
	System     *handler.SystemController
}

func NewRouter(cfg RouterConfig, ctrl Controllers) *fizz.Fizz {
	SetupErrorHook()

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	g := gin.New()
	g.Use(middleware.RequestID())
	g.Use(logging.GinLogger(logger))
	g.Use(gin.Recovery())
	if cfg.Metrics != nil {
		g.Use(cfg.Metrics.Middleware())
	}
	if len(cfg.CORSOrigins) > 0 {
		g.Use(corsMiddleware(cfg.CORSOrigins))
	}
	g.Use(APIVersionMiddleware(cfg.Version))
	if cfg.Gatherer != nil {
		g.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	f := fizz.NewFromEngine(g)
	gen := f.Generator()
	gen.API().Components.Headers["API-Version"] = &openapi.HeaderOrRef{
		Header: &openapi.Header{
			Description: "API version of the response",
			Schema: &openapi.SchemaOrRef{
				Schema: &openapi.Schema{
					Type: "string",
				},
			},
		},
	}

	info := &openapi.Info{
		Title:       cfg.AppName,
		Description: "Registry of machine-learning models, their versions and deployment lifecycle",
		Version:     cfg.Version,
	}

	system := f.Group("", "System", "Service status")
	system.GET("/",
		[]fizz.OperationOption{fizz.Summary("Service information")},
		tonic.Handler(ctrl.System.Root, 200),
	)
	system.GET("/health",
		[]fizz.OperationOption{fizz.Summary("Health check")},
		tonic.Handler(ctrl.System.Health, 200),
	)

	root := f.Group(cfg.APIPrefix, "API v1", "Model registry routes")

	var readAccess, writeAccess []gin.HandlerFunc
	if cfg.AuthEnabled {
		readAccess = append(readAccess, middleware.RequireAccess(middleware.ScopeRead))
		writeAccess = append(writeAccess, middleware.RequireAccess(middleware.ScopeWrite))
	}

	read := root.Group("", "Models (read)", "Read-only endpoints", readAccess...)
	read.GET("/models",
		[]fizz.OperationOption{
			fizz.Summary("List models"),
			fizz.Description("Paginated listing with optional framework, status and free-text filters. The unpaginated total is returned in X-Total-Count."),
			apiVersionHeader,
			requestIDHeader,
			unprocessableResponse,
		},
		tonic.Handler(ctrl.Models.ListModels, 200),
	)
	read.GET("/models/:id",
		[]fizz.OperationOption{
			fizz.Summary("Get a model"),
			apiVersionHeader,
			requestIDHeader,
			notFoundResponse,
		},
		tonic.Handler(ctrl.Models.RetrieveModel, 200),
	)
	read.GET("/models/:id/versions",
		[]fizz.OperationOption{
			fizz.Summary("List the versions of a model"),
			apiVersionHeader,
			requestIDHeader,
			notFoundResponse,
		},
		tonic.Handler(ctrl.Models.ListVersions, 200),
	)
	read.GET("/stats",
		[]fizz.OperationOption{
			fizz.Summary("Dashboard statistics"),
			apiVersionHeader,
			requestIDHeader,
		},
		tonic.Handler(ctrl.Statistics.GetDashboardStats, 200),
	)

	write := root.Group("", "Models (write)", "Registering and changing models", writeAccess...)
	write.POST("/models",
		[]fizz.OperationOption{
			fizz.Summary("Register a model"),
			apiVersionHeader,
			requestIDHeader,
			conflictResponse,
			unprocessableResponse,
		},
		tonic.Handler(ctrl.Models.CreateModel, 201),
	)
	write.PUT("/models/:id",
		[]fizz.OperationOption{
			fizz.Summary("Update a model"),
			fizz.Description("Only the fields present in the body are changed."),
			apiVersionHeader,
			requestIDHeader,
			notFoundResponse,
			conflictResponse,
			unprocessableResponse,
		},
		tonic.Handler(ctrl.Models.UpdateModel, 200),
	)
	write.DELETE("/models/:id",
		[]fizz.OperationOption{
			fizz.Summary("Delete a model and all of its versions"),
			requestIDHeader,
			notFoundResponse,
		},
		tonic.Handler(ctrl.Models.DeleteModel, 204),
	)
	write.POST("/models/:id/deploy",
		[]fizz.OperationOption{
			fizz.Summary("Change the deployment status of a model"),
			fizz.Response("400", "Invalid status transition", nil, nil, nil),
			apiVersionHeader,
			requestIDHeader,
			notFoundResponse,
			unprocessableResponse,
		},
		tonic.Handler(ctrl.Models.DeployModel, 200),
	)
	write.POST("/models/:id/versions",
		[]fizz.OperationOption{
			fizz.Summary("Register a new version of a model"),
			apiVersionHeader,
			requestIDHeader,
			notFoundResponse,
			conflictResponse,
			unprocessableResponse,
		},
		tonic.Handler(ctrl.Models.CreateVersion, 201),
	)

	f.GET(cfg.APIPrefix+"/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			break
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "x-api-key", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{"X-Total-Count", "API-Version", middleware.RequestIDHeader}
	return cors.New(cfg)
}

type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}
