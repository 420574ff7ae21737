package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/maintain-ai/maintain-backend/internal/analysis"
	analysishttp "github.com/maintain-ai/maintain-backend/internal/analysis/http"
	"github.com/maintain-ai/maintain-backend/internal/analytics"
	analyticshttp "github.com/maintain-ai/maintain-backend/internal/analytics/http"
	httpapi "github.com/maintain-ai/maintain-backend/internal/api/http"
	"github.com/maintain-ai/maintain-backend/internal/api/http/middleware"
	"github.com/maintain-ai/maintain-backend/internal/auth"
	issueshttp "github.com/maintain-ai/maintain-backend/internal/issues/http"
	"github.com/maintain-ai/maintain-backend/internal/issues/service"
	"github.com/maintain-ai/maintain-backend/internal/storage/memory"
	technicianshttp "github.com/maintain-ai/maintain-backend/internal/technicians/http"
	usershttp "github.com/maintain-ai/maintain-backend/internal/users/http"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Store          *memory.Store
	Redis          *redis.Client
	AuthClient     *fbauth.Client
	Analyzer       *analysis.Analyzer
	Analytics      *analytics.Service
	IssueRateLimit int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:5173",
			"http://localhost:5174",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	api.Use(middleware.RequestID())
	api.Use(auth.Identity(dep.AuthClient))

	issueSvc := service.NewIssueService(dep.Store)
	createLimiter := middleware.IssueRateLimiter(dep.Redis, dep.IssueRateLimit)
	issueshttp.New(issueSvc).Register(api, createLimiter)

	usershttp.New(dep.Store).Register(api)
	technicianshttp.New(dep.Store).Register(api)
	analysishttp.New(dep.Analyzer).Register(api)
	analyticshttp.New(dep.Analytics).Register(api)

	httpapi.NewResetHandler(dep.Store).RegisterResetRoute(api)

	return r
}
