package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agrismart/agrismart-cli/internal/client/guard"
	"github.com/agrismart/agrismart-cli/internal/common"
)

// Dashboard shows the per-user activity counters.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.visit(guard.RouteDashboard) {
		return nil
	}

	stats, err := a.backend.DashboardStats(ctx)
	if err != nil {
		return a.reportErr("Could not load dashboard:", err)
	}

	fmt.Fprintf(a.out, "Disease scans:    %d\n", stats.DiseaseScans)
	fmt.Fprintf(a.out, "Irrigation plans: %d\n", stats.IrrigationPlans)
	fmt.Fprintf(a.out, "Products listed:  %d\n", stats.ProductsListed)
	fmt.Fprintf(a.out, "AI conversations: %d\n", stats.AIChats)
	return nil
}

// Weather shows current conditions and the short forecast for a location.
// When the server is unreachable the canned offline report is shown instead.
func (a *App) Weather(ctx context.Context, location string) error {
	if !a.visit(guard.RouteWeather) {
		return nil
	}
	if location == "" {
		if u, ok := a.session.User(); ok && u.Location != "" {
			location = u.Location
		} else {
			location = "Delhi"
		}
	}

	report, err := a.backend.Weather(ctx, location)
	if err != nil {
		if !errors.Is(err, common.ErrUnavailable) {
			return a.reportErr("Could not load weather:", err)
		}
		fmt.Fprintln(a.out, a.tr("server_unreachable"))
		report = a.fallback.Weather(location)
	}

	cur := report.Current
	fmt.Fprintf(a.out, "Weather for %s\n", location)
	fmt.Fprintf(a.out, "  %.1f°C (feels like %.1f°C), %s\n", cur.TempC(), cur.FeelsLikeC(), cur.Condition())
	fmt.Fprintf(a.out, "  humidity %.0f%%, wind %.1f m/s\n", cur.HumidityPct(), cur.Wind.Speed)

	for i, f := range report.Forecast.List {
		if i >= 5 {
			break
		}
		fmt.Fprintf(a.out, "  +%dh: %.1f°C, %s\n", (i+1)*3, f.TempC(), f.Condition())
	}
	return nil
}

// Detect uploads a crop image for disease classification. A missing file is
// caught before any network call.
func (a *App) Detect(ctx context.Context, path string) error {
	if !a.visit(guard.RouteDisease) {
		return nil
	}
	if path == "" {
		fmt.Fprintln(a.out, "Usage: detect <image file>")
		return common.ErrValidation
	}

	image, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(a.out, "Could not read image:", err)
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	det, err := a.backend.DetectDisease(ctx, filepath.Base(path), image)
	if err != nil {
		return a.reportErr("Detection failed:", err)
	}

	fmt.Fprintf(a.out, "Disease:    %s (%.0f%% confidence)\n", det.Disease, det.Confidence*100)
	fmt.Fprintf(a.out, "Treatment:  %s\n", det.Treatment)
	fmt.Fprintf(a.out, "Prevention: %s\n", det.PreventiveMeasures)
	return nil
}

// History lists past disease detections.
func (a *App) History(ctx context.Context) error {
	if !a.visit(guard.RouteDisease) {
		return nil
	}

	records, err := a.backend.DiseaseHistory(ctx)
	if err != nil {
		return a.reportErr("Could not load history:", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No detections yet.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(a.out, "#%d  %-30s %.0f%%  %s\n", r.ID, common.Truncate(r.DiseaseName, 30), r.Confidence*100, r.CreatedAt)
	}
	return nil
}
