package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/usecase/dto"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeCity - сводка по городу; недоступные значения печатаются как "unavailable"
func writeCity(w io.Writer, rec *domain.CityAggregateRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s (%s)\n", rec.Name, rec.INSEECode)
	fmt.Fprintf(tw, "Population\t%d\n", rec.Population)
	fmt.Fprintf(tw, "Surface (km²)\t%s\n", rec.SurfaceKm2)
	fmt.Fprintf(tw, "Densité (hab/km²)\t%s\n", rec.Density)
	fmt.Fprintf(tw, "Météo\t%s °C, %s\n", rec.Weather.CurrentTemperatureC, rec.Weather.WindSummary)
	for _, d := range rec.Weather.DailyForecast {
		fmt.Fprintf(tw, "  %s\t%.1f / %.1f °C, %.1f mm\n", d.Date, d.MinTempC, d.MaxTempC, d.PrecipitationMm)
	}

	counts := domain.CountPOIsByCategory(rec.POIs)
	parts := make([]string, 0, len(counts))
	for _, c := range domain.POICategories() {
		parts = append(parts, fmt.Sprintf("%s %d", c.Label(), counts[c]))
	}
	fmt.Fprintf(tw, "Points d'intérêt\t%s\n", strings.Join(parts, ", "))

	if rec.Housing != nil {
		fmt.Fprintf(tw, "Logement (%d)\tmaisons %g, appartements %g, %g €/m²\n",
			rec.Housing.Year, rec.Housing.HousesSold(), rec.Housing.ApartmentsSold(), rec.Housing.AvgPricePerM2())
	} else {
		fmt.Fprintf(tw, "Logement\t%s\n", domain.UnavailableText)
	}

	fmt.Fprintf(tw, "Revenu médian (€)\t%s\n", rec.SocioEconomic.MedianIncome)
	fmt.Fprintf(tw, "Taux de chômage (%%)\t%s\n", rec.SocioEconomic.UnemploymentRate)

	if len(rec.Transit) == 0 {
		fmt.Fprintf(tw, "Transports\t-\n")
	}
	for i, d := range rec.Transit {
		label := ""
		if i == 0 {
			label = "Transports"
		}
		fmt.Fprintf(tw, "%s\t%s\n", label, d.Label)
	}

	fmt.Fprintf(tw, "Sources\t%s\n", formatSources(rec.Sources))
	return tw.Flush()
}

// writeComparison - таблица метрик и POI для двух городов
func writeComparison(w io.Writer, cmp *dto.ComparisonResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "\t%s\t%s\n", cmp.CityA.Name, cmp.CityB.Name)
	for _, m := range cmp.Metrics {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Label, m.CityA, m.CityB)
	}
	for _, p := range cmp.POICounts {
		fmt.Fprintf(tw, "POI: %s\t%d\t%d\n", p.Label, p.CityA, p.CityB)
	}
	for _, f := range cmp.Forecast {
		fmt.Fprintf(tw, "Max %s (°C)\t%s\t%s\n", f.Date, f.CityA, f.CityB)
	}
	return tw.Flush()
}

func writeCities(w io.Writer, cities []domain.CommuneSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range cities {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.INSEECode, c.Name, c.Population)
	}
	fmt.Fprintf(tw, "%d cities\n", len(cities))
	return tw.Flush()
}

func writeHousingStatus(w io.Writer, status domain.HousingStatus) error {
	if status.DatasetMissing {
		_, err := fmt.Fprintln(w, "housing dataset missing")
		return err
	}
	years := make([]string, 0, len(status.Years))
	for _, y := range status.Years {
		years = append(years, fmt.Sprint(y))
	}
	_, err := fmt.Fprintf(w, "housing dataset loaded: %d rows, years %s\n", status.Rows, strings.Join(years, ", "))
	return err
}

func formatSources(sources map[string]domain.SourceStatus) string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, sources[name]))
	}
	return strings.Join(parts, " ")
}
