package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-disaster-maps/internal/ingestion"
	"github.com/mr1hm/go-disaster-maps/internal/models"
	"github.com/mr1hm/go-disaster-maps/internal/observability"
	"github.com/mr1hm/go-disaster-maps/internal/render"
)

type FireSource interface {
	Load(ctx context.Context) (models.FireSeries, error)
}

type EarthquakeSource interface {
	Load(ctx context.Context) (models.EarthquakeSeries, error)
}

// PlotRenderer saves a plot and hands back the page it wrote.
type PlotRenderer interface {
	Render(ctx context.Context, p render.Plot) (string, []byte, error)
}

type Handler struct {
	fires    FireSource
	quakes   EarthquakeSource
	renderer PlotRenderer
	metrics  *observability.Metrics
}

func NewHandler(fires FireSource, quakes EarthquakeSource, renderer PlotRenderer, metrics *observability.Metrics) *Handler {
	return &Handler{
		fires:    fires,
		quakes:   quakes,
		renderer: renderer,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/fires", h.getFires)
	r.GET("/api/earthquakes", h.getEarthquakes)
	r.GET("/plots/fires", h.plotFires)
	r.GET("/plots/earthquakes", h.plotEarthquakes)
	r.GET("/health", h.health)
}

func (h *Handler) loadFires(c *gin.Context) (models.FireSeries, bool) {
	series, err := h.fires.Load(c.Request.Context())
	h.metrics.ObserveLoad("fire", series.Len(), series.Skipped, err)
	if err != nil {
		writeLoadError(c, err)
		return series, false
	}
	return series, true
}

func (h *Handler) loadEarthquakes(c *gin.Context) (models.EarthquakeSeries, bool) {
	series, err := h.quakes.Load(c.Request.Context())
	h.metrics.ObserveLoad("earthquake", series.Len(), series.Skipped, err)
	if err != nil {
		writeLoadError(c, err)
		return series, false
	}
	return series, true
}

func (h *Handler) getFires(c *gin.Context) {
	series, ok := h.loadFires(c)
	if !ok {
		return
	}
	writeGeoJSON(c, firesToGeoJSON(series))
}

func (h *Handler) getEarthquakes(c *gin.Context) {
	series, ok := h.loadEarthquakes(c)
	if !ok {
		return
	}
	writeGeoJSON(c, earthquakesToGeoJSON(series))
}

func (h *Handler) plotFires(c *gin.Context) {
	series, ok := h.loadFires(c)
	if !ok {
		return
	}
	h.servePlot(c, render.FirePlot(series))
}

func (h *Handler) plotEarthquakes(c *gin.Context) {
	series, ok := h.loadEarthquakes(c)
	if !ok {
		return
	}
	h.servePlot(c, render.EarthquakePlot(series))
}

func (h *Handler) servePlot(c *gin.Context, p render.Plot) {
	_, page, err := h.renderer.Render(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to render plot",
		})
		return
	}
	h.metrics.ObservePlot(p.Title)
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeGeoJSON(c *gin.Context, fc FeatureCollection) {
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim < len(fc.Features) {
			fc.Features = fc.Features[:lim]
		}
	}
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func writeLoadError(c *gin.Context, err error) {
	switch ingestion.KindOf(err) {
	case ingestion.KindTransport:
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream feed unavailable"})
	case ingestion.KindSchema:
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream feed malformed"})
	case ingestion.KindEmpty:
		c.JSON(http.StatusNotFound, gin.H{"error": "no data available"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load data"})
	}
}
