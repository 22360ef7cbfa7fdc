// Package server assembles the Fiber application: middleware, health probes
// and the /api route tree.
package server

import (
	"errors"
	"time"

	"github.com/fadilmartias/skillsync-api/internal/ai"
	"github.com/fadilmartias/skillsync-api/internal/auth"
	"github.com/fadilmartias/skillsync-api/internal/config"
	"github.com/fadilmartias/skillsync-api/internal/domain/fiber/handler"
	"github.com/fadilmartias/skillsync-api/internal/events"
	"github.com/fadilmartias/skillsync-api/internal/middleware"
	"github.com/fadilmartias/skillsync-api/internal/repository"
	"github.com/fadilmartias/skillsync-api/internal/storage"
	"github.com/fadilmartias/skillsync-api/internal/usecase"
	"github.com/fadilmartias/skillsync-api/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// BodyLimit leaves headroom above util.MaxResumeFileSize so oversized uploads
// reach the handler and get a 413 envelope instead of a bare fasthttp error.
const BodyLimit = 8 << 20

type Dependencies struct {
	Store     *repository.Store
	Gateway   *ai.Gateway
	Files     storage.ObjectStore
	Publisher events.Publisher
	Tokens    *auth.TokenIssuer
	Log       *zap.Logger

	// AccessLog toggles the fiber logger middleware. Tests turn it off.
	AccessLog bool
}

func New(cfg *config.AppConfig, deps Dependencies) *fiber.App {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Publisher == nil {
		deps.Publisher = events.Nop{}
	}

	app := fiber.New(fiber.Config{
		AppName:   cfg.Name,
		BodyLimit: BodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
		},
	})

	if deps.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !cfg.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return cfg.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			sqlDB, err := deps.Store.DB().DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(c.UserContext()) == nil
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(cfg.RateLimitMax, 1*time.Minute))

	app.Get("/", func(c *fiber.Ctx) error {
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "SkillSync API is running",
			Data: fiber.Map{
				"name":        cfg.Name,
				"environment": cfg.Env,
				"ai_provider": deps.Gateway.Provider(),
				"ai_enabled":  deps.Gateway.Configured(),
			},
		})
	})

	authUsecase := usecase.NewAuthUsecase(deps.Store, deps.Tokens)
	requireUser := middleware.RequireUser(authUsecase)

	api := app.Group("/api")
	handler.NewAuthHandler(authUsecase).RegisterRoutes(api, requireUser)
	handler.NewAssessmentHandler(usecase.NewAssessmentUsecase(deps.Store, deps.Gateway, deps.Publisher, deps.Log)).
		RegisterRoutes(api, requireUser)
	handler.NewCareerHandler(usecase.NewCareerUsecase(deps.Store, deps.Gateway, deps.Publisher, deps.Log)).
		RegisterRoutes(api, requireUser)
	handler.NewSkillHandler(usecase.NewSkillUsecase(deps.Gateway)).RegisterRoutes(api)
	handler.NewResumeHandler(usecase.NewResumeUsecase(deps.Store, deps.Gateway, deps.Files, deps.Publisher, deps.Log)).
		RegisterRoutes(api, requireUser)
	handler.NewChatHandler(usecase.NewChatUsecase(deps.Store, deps.Gateway)).RegisterRoutes(api, requireUser)
	handler.NewMarketHandler(usecase.NewMarketUsecase()).RegisterRoutes(api)

	return app
}
