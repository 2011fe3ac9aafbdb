package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/marinv/contractor-pm/config"
	httpapi "github.com/marinv/contractor-pm/internal/api/http"
	"github.com/marinv/contractor-pm/internal/api/http/middleware"
	"github.com/marinv/contractor-pm/internal/api/http/routes"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	Services    *Services
	Pool        *pgxpool.Pool
	Redis       *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.Config.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-User-Email", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	hd := httpapi.HealthDeps{
		ServiceName:    dep.ServiceName,
		Version:        dep.Config.App.Version,
		SMTPConfigured: dep.Config.SMTP.Configured(),
	}
	if dep.Pool != nil {
		hd.DB = dep.Pool
	}
	if dep.Redis != nil {
		hd.Redis = redisPinger{c: dep.Redis}
	}
	httpapi.NewHealthHandler(hd).RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := middleware.NewUserRateLimiter(dep.Config.RateLimit.EmailPerMinute, dep.Config.RateLimit.EmailBurst)

	routes.RegisterV1(r, routes.V1Deps{
		Users:      dep.Services.Users,
		Projects:   dep.Services.Projects,
		Offers:     dep.Services.Offers,
		EmailLimit: limiter.Middleware(),
	})

	return r
}
