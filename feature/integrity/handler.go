package integrity

import (
	"errors"

	"card-catalog/core/logger"
	"card-catalog/feature/catalog"
	"card-catalog/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/files", h.HandleFilesCheck)
	group.Get("/coverage", h.HandleCoverageCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Structure, Files, Coverage, Schema).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if missing, err := h.service.CheckFiles(ctx); err != nil {
		report["files"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["files"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if coverage, err := h.service.CheckCoverage(ctx); err != nil {
		report["coverage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["coverage"] = coverage
	}

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks if the catalog folder structure exists in the storage bucket. Optionally fixes missing folders.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleFilesCheck checks the catalog files.
// @Summary Check Catalog Files
// @Description Verify that sets.json and the card name list are present.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Files Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/files [get]
func (h *Handler) HandleFilesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	missing, err := h.service.CheckFiles(c.Context())
	if err != nil {
		l.Error("Files check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleCoverageCheck compares the card name list with the loaded catalog.
// @Summary Check Name Coverage
// @Description Report card names from the stored name list that the loaded catalog cannot resolve.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.CoverageReport "Coverage Report"
// @Failure 503 {object} map[string]string "Catalog Not Loaded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/coverage [get]
func (h *Handler) HandleCoverageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckCoverage(c.Context())
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, catalog.ErrNotLoaded) || errors.Is(err, ErrNoCatalog) {
			status = fiber.StatusServiceUnavailable
		}
		l.Error("Coverage check failed", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Coverage check completed",
		zap.Int("expected", report.Expected),
		zap.Int("found", report.Found))

	return c.JSON(report)
}

// HandleSchemaCheck checks the persisted catalog schema.
// @Summary Check Catalog Schema
// @Description Checks if the database tables match the catalog snapshot models.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting schema check")

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
