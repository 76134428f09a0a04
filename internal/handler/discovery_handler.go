package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"discovery-service/internal/engine"
	"discovery-service/internal/middleware"
	"discovery-service/pkg/logger"
	"discovery-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DiscoveryHandler serves the marketplace discovery API.
type DiscoveryHandler struct {
	engine          *engine.Engine
	defaultPageSize int
}

// NewDiscoveryHandler creates a discovery handler.
func NewDiscoveryHandler(e *engine.Engine, defaultPageSize int) *DiscoveryHandler {
	if defaultPageSize < 1 {
		defaultPageSize = 20
	}
	return &DiscoveryHandler{engine: e, defaultPageSize: defaultPageSize}
}

// SearchProducts handles ranked catalog search requests
func (h *DiscoveryHandler) SearchProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	opts, err := h.parseOptions(c)
	if err != nil {
		log.Warn("Invalid discovery request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	channel := string(opts.Channel)
	if channel == "" {
		channel = string(engine.ChannelWholesale)
	}
	prometheus.RecordDiscoveryRequest(channel, opts.ViewerID != nil)
	defer prometheus.TrackRanking(channel)(time.Now())

	page, err := h.engine.RankProducts(c.Request().Context(), *opts)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidOptions) {
			log.Warn("Rejected discovery options", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if errors.Is(err, engine.ErrRankingUnavailable) {
			prometheus.RankingUnavailableCounter.Inc()
			log.Error("Ranking unavailable", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "ranking temporarily unavailable"})
		}
		log.Error("Failed to rank products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to rank products"})
	}

	prometheus.CandidatesConsidered.Add(float64(page.TotalCount))
	prometheus.CandidatesReturned.Add(float64(len(page.Products)))
	log.Info("Discovery request served",
		zap.String("channel", channel),
		zap.Int("page", page.Page),
		zap.Int("total_count", page.TotalCount),
		zap.Int("returned", len(page.Products)))
	return c.JSON(http.StatusOK, page)
}

// ResolveSlot handles placement slot resolution requests
func (h *DiscoveryHandler) ResolveSlot(c echo.Context) error {
	log := logger.FromEcho(c)
	slot := c.Param("slot")

	placement, err := h.engine.ResolveSlot(c.Request().Context(), slot)
	if err != nil {
		if errors.Is(err, engine.ErrRankingUnavailable) {
			log.Error("Slot resolution unavailable", zap.String("slot", slot), zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "slot resolution temporarily unavailable"})
		}
		log.Error("Failed to resolve slot", zap.String("slot", slot), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve slot"})
	}

	prometheus.RecordSlotResolution(placement.Fallback)
	log.Info("Slot resolved",
		zap.String("slot", slot),
		zap.Int("entities", len(placement.EntityIDs)),
		zap.Bool("fallback", placement.Fallback))
	return c.JSON(http.StatusOK, placement)
}

// parseOptions builds engine search options from query parameters. Vetting
// of cross-field constraints stays in the engine; this only rejects values
// that do not parse at all.
func (h *DiscoveryHandler) parseOptions(c echo.Context) (*engine.SearchOptions, error) {
	opts := &engine.SearchOptions{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Channel:  engine.Channel(c.QueryParam("channel")),
		Page:     1,
		PageSize: h.defaultPageSize,
	}

	if viewerID, ok := middleware.GetViewerIDFromContext(c); ok {
		opts.ViewerID = &viewerID
	}

	if raw := c.QueryParam("verified_only"); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.New("verified_only must be a boolean")
		}
		opts.VerifiedOnly = verified
	}

	if raw := c.QueryParam("min_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("min_price must be a number")
		}
		opts.MinPrice = &price
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("max_price must be a number")
		}
		opts.MaxPrice = &price
	}

	if raw := c.QueryParam("moq"); raw != "" {
		moq, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("moq must be an integer")
		}
		opts.MOQ = &moq
	}
	if raw := c.QueryParam("moq_range"); raw != "" {
		moqRange, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("moq_range must be an integer")
		}
		opts.MOQRange = &moqRange
	}

	if raw := c.QueryParam("min_rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("min_rating must be a number")
		}
		opts.MinRating = rating
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("page must be an integer")
		}
		opts.Page = page
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("page_size must be an integer")
		}
		opts.PageSize = pageSize
	}

	return opts, nil
}
