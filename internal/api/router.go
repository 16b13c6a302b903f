package api

import (
	"os"
	"path/filepath"

	"cardsight/docs"
	"cardsight/internal/api/handlers"
	"cardsight/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	stmtHandler *handlers.StatementHandler,
	cfg *config.Config,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.Extract.MaxUploadBytes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	// Swagger - importing the docs package registers the doc via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Web UI
	webStaticPath := findWebStaticPath(appLogger)
	if webStaticPath != "" {
		appLogger.Info("Serving static files", zap.String("path", webStaticPath))
		app.Static("/static", webStaticPath)
	} else {
		appLogger.Warn("Web static directory not found, UI will not be served")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		if webStaticPath != "" {
			indexPath := filepath.Join(webStaticPath, "index.html")
			if fileExists(indexPath) {
				return c.SendFile(indexPath)
			}
		}
		return c.Status(fiber.StatusNotFound).
			SendString("Web interface not found. Please ensure web/static/index.html exists.")
	})

	// API routes
	statements := app.Group("/api/v1/statements")
	statements.Post("/parse", stmtHandler.ParseStatement)
	statements.Get("/:id", stmtHandler.GetStatement)
	statements.Delete("/:id", stmtHandler.DeleteStatement)
	statements.Get("/:id/export/json", stmtHandler.ExportJSON)
	statements.Get("/:id/export/csv", stmtHandler.ExportCSV)

	return app
}

// findWebStaticPath locates the web/static directory relative to the
// working directory.
func findWebStaticPath(logger *zap.Logger) string {
	paths := []string{
		"./web/static",
		"web/static",
		"../web/static",
		"../../web/static",
	}

	for _, path := range paths {
		if fileExists(filepath.Join(path, "index.html")) {
			logger.Debug("Found web static path", zap.String("path", path))
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
