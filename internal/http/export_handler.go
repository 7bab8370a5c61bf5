package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"log/slog"

	"linklens/internal/dashboard"
	"linklens/internal/export"
	"linklens/internal/source"
)

// Chart names accepted by the image export's charts parameter.
const (
	chartTimeSeries   = "time_series"
	chartDestinations = "destinations"
	chartSources      = "sources"
)

// CSVExportAction serializes the snapshot as the requested delimited export
// type and serves it as a download.
func (h *Handler) CSVExportAction(c *fiber.Ctx) error {
	snapshot, err := h.fetcher.FetchSnapshot(c.Context())
	if err != nil {
		h.logger.Error("failed to fetch snapshot", slog.Any("error", err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to fetch data from collector",
			"code":  "COLLECTOR_UNAVAILABLE",
		})
	}

	exportType := c.Query("type", export.TypeEvents)
	text, err := export.Delimited(exportType, snapshot.Events, snapshot.Aggregates)
	if err != nil {
		return h.exportFailure(c, err)
	}

	filename := fmt.Sprintf("linklens-%s-%s.csv", exportType, uuid.NewString())
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendString(text)
}

// ImageExportAction renders the selected charts and serves the composed
// image. An export that would yield no drawable surface fails loudly; a
// blank artifact from a user-initiated export is a bug, not an empty state.
func (h *Handler) ImageExportAction(c *fiber.Ctx) error {
	snapshot, err := h.fetcher.FetchSnapshot(c.Context())
	if err != nil {
		h.logger.Error("failed to fetch snapshot", slog.Any("error", err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to fetch data from collector",
			"code":  "COLLECTOR_UNAVAILABLE",
		})
	}

	layout := c.Query("layout", export.LayoutGrid)
	surfaces := h.renderSurfaces(c.Query("charts"), snapshot)

	composed, err := export.Compose(surfaces, layout)
	if err != nil {
		return h.exportFailure(c, err)
	}
	data, err := export.EncodePNG(composed)
	if err != nil {
		h.logger.Error("failed to encode export image", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to encode export image",
			"code":  "EXPORT_ENCODING_ERROR",
		})
	}

	filename := fmt.Sprintf("linklens-charts-%s.png", uuid.NewString())
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// renderSurfaces renders the requested charts, defaulting to all of them.
// Charts that cannot render (no data) are logged and skipped; the compositor
// decides whether anything remains.
func (h *Handler) renderSurfaces(selection string, snapshot *source.Snapshot) []export.Surface {
	requested := []string{chartTimeSeries, chartDestinations, chartSources}
	if selection != "" {
		requested = strings.Split(selection, ",")
	}

	topK := h.cfg.DefaultTopK
	surfaces := make([]export.Surface, 0, len(requested))
	for _, name := range requested {
		var surface export.Surface
		var err error
		switch strings.TrimSpace(name) {
		case chartTimeSeries:
			surface, err = export.RenderTimeSeries(dashboard.BucketByDay(snapshot.Events, h.logger), "Events per day")
		case chartDestinations:
			surface, err = export.RenderDistribution(dashboard.BuildDestinationDistribution(snapshot.Aggregates, topK), "Top destinations")
		case chartSources:
			surface, err = export.RenderSourceBars(dashboard.BuildSourceSeries(snapshot.Aggregates), "Traffic sources")
		default:
			h.logger.Warn("ignoring unknown chart in export request", slog.String("chart", name))
			continue
		}
		if err != nil {
			h.logger.Warn("skipping chart that failed to render",
				slog.String("chart", name),
				slog.Any("error", err))
			continue
		}
		surfaces = append(surfaces, surface)
	}
	return surfaces
}

// exportFailure maps the reported export failures onto response codes.
func (h *Handler) exportFailure(c *fiber.Ctx, err error) error {
	var noSurfaces *export.NoSurfacesError
	if errors.As(err, &noSurfaces) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "no exportable chart surfaces",
			"code":  "NO_EXPORTABLE_SURFACES",
		})
	}
	var unsupported *export.UnsupportedError
	if errors.As(err, &unsupported) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": unsupported.Error(),
			"code":  "UNSUPPORTED_EXPORT",
		})
	}
	h.logger.Error("export failed", slog.Any("error", err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "export failed",
		"code":  "EXPORT_ERROR",
	})
}
