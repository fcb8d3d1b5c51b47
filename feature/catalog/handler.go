package catalog

import (
	"errors"

	"card-catalog/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/stats", h.HandleStats)
	group.Post("/load", h.HandleLoad)
	group.Get("/sets", h.HandleSets)
	group.Get("/sets/:code/printings", h.HandleSetPrintings)
	group.Get("/sets/:code/numbers/:number", h.HandlePrintingByNumber)
	group.Get("/cards", h.HandleCardByName)
	group.Get("/cards/:id", h.HandleCard)
	group.Get("/cards/:id/printings", h.HandleCardPrintings)
	group.Get("/printings/:id", h.HandlePrinting)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrNotLoaded):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, ErrLoadInProgress):
		status = fiber.StatusConflict
	default:
		logger.WithRayID(h.service.logger, c).Error("Catalog request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleStats returns entity counts and the last load report.
// @Summary Catalog Stats
// @Description Get entity counts of the current catalog and the report of the load that produced it.
// @Tags catalog
// @Produce json
// @Success 200 {object} StatsView "Stats"
// @Failure 503 {object} map[string]string "Catalog Not Loaded"
// @Router /catalog/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}

// HandleLoad reloads the catalog from storage.
// @Summary Load Catalog
// @Description Load the catalog from storage and swap it in when the load succeeds.
// @Tags catalog
// @Produce json
// @Success 200 {object} dispatch.Report "Load Report"
// @Failure 409 {object} map[string]string "Load In Progress"
// @Failure 500 {object} map[string]interface{} "Load Failed"
// @Router /catalog/load [post]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Catalog load requested")

	report, err := h.service.Load(c.Context())
	if err != nil {
		if errors.Is(err, ErrLoadInProgress) {
			return h.fail(c, err)
		}
		l.Error("Catalog load failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  err.Error(),
			"report": report,
		})
	}
	return c.JSON(report)
}

// HandleSets lists the sets of the catalog.
// @Summary List Sets
// @Tags catalog
// @Produce json
// @Success 200 {array} SetView "Sets"
// @Failure 503 {object} map[string]string "Catalog Not Loaded"
// @Router /catalog/sets [get]
func (h *Handler) HandleSets(c *fiber.Ctx) error {
	sets, err := h.service.Sets()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sets)
}

// HandleSetPrintings lists a set's printings in collector number order.
// @Summary List Set Printings
// @Tags catalog
// @Produce json
// @Param code path string true "Set Code (e.g. 'emn')"
// @Success 200 {array} PrintingView "Printings"
// @Failure 404 {object} map[string]string "Unknown Set"
// @Router /catalog/sets/{code}/printings [get]
func (h *Handler) HandleSetPrintings(c *fiber.Ctx) error {
	printings, err := h.service.SetPrintings(c.Params("code"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(printings)
}

// HandlePrintingByNumber returns the printing with a collector number in a set.
// @Summary Get Printing By Collector Number
// @Tags catalog
// @Produce json
// @Param code path string true "Set Code"
// @Param number path string true "Collector Number (e.g. '15a')"
// @Success 200 {object} PrintingView "Printing"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/sets/{code}/numbers/{number} [get]
func (h *Handler) HandlePrintingByNumber(c *fiber.Ctx) error {
	p, err := h.service.PrintingByNumber(c.Params("code"), c.Params("number"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

// HandleCardByName finds a card by its full name or one of its face names.
// @Summary Find Card By Name
// @Tags catalog
// @Produce json
// @Param name query string true "Card or face name"
// @Success 200 {object} CardView "Card"
// @Failure 400 {object} map[string]string "Missing Name"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/cards [get]
func (h *Handler) HandleCardByName(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name query parameter is required"})
	}
	card, err := h.service.CardByName(name)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(card)
}

// HandleCard returns a card by id.
// @Summary Get Card
// @Tags catalog
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} CardView "Card"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/cards/{id} [get]
func (h *Handler) HandleCard(c *fiber.Ctx) error {
	card, err := h.service.Card(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(card)
}

// HandleCardPrintings lists the printings of a card.
// @Summary List Card Printings
// @Tags catalog
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {array} PrintingView "Printings"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/cards/{id}/printings [get]
func (h *Handler) HandleCardPrintings(c *fiber.Ctx) error {
	printings, err := h.service.CardPrintings(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(printings)
}

// HandlePrinting returns a printing by its external id.
// @Summary Get Printing
// @Tags catalog
// @Produce json
// @Param id path string true "Printing ID"
// @Success 200 {object} PrintingView "Printing"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/printings/{id} [get]
func (h *Handler) HandlePrinting(c *fiber.Ctx) error {
	p, err := h.service.Printing(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}
