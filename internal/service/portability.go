package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Mixilino/coffee-management/internal/model"
)

var coffeeCSVHeader = []string{
	"id", "name", "seller",
	"boughtGrams", "usedGrams", "manualOffset", "remaining",
	"isActive", "isArchived", "archivedAt", "createdAt", "updatedAt",
}

var extractionCSVHeader = []string{
	"id", "coffeeId", "coffeeName", "coffeeSeller",
	"gramsIn", "grinderSetting", "timeSeconds", "yieldGrams", "ratio",
	"rating", "notes",
	"rec_adjustGrind", "rec_adjustTime", "rec_adjustDose", "rec_reason", "rec_severity",
	"date",
}

func WriteCoffeesCSV(w io.Writer, coffees []model.Coffee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(coffeeCSVHeader); err != nil {
		return fmt.Errorf("write coffee csv header: %w", err)
	}
	for _, c := range coffees {
		archivedAt := ""
		if c.ArchivedAt != nil {
			archivedAt = c.ArchivedAt.Format(time.RFC3339)
		}
		record := []string{
			c.ID, c.Name, c.Seller,
			formatFloat(c.BoughtGrams), formatFloat(c.UsedGrams), formatFloat(c.ManualOffset), formatFloat(c.Remaining),
			strconv.FormatBool(c.IsActive), strconv.FormatBool(c.IsArchived),
			archivedAt, c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write coffee csv row %s: %w", c.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCoffeesCSV reads a coffee export. Rows lacking an id or name are
// dropped; invalid numeric fields fall back to 0 rather than failing the
// whole import.
func ParseCoffeesCSV(r io.Reader) ([]model.Coffee, error) {
	rows, err := readCSVRows(r, "coffee")
	if err != nil {
		return nil, err
	}
	coffees := make([]model.Coffee, 0, len(rows))
	for _, row := range rows {
		if row["id"] == "" || row["name"] == "" {
			continue
		}
		coffees = append(coffees, model.Coffee{
			ID:           row["id"],
			Name:         row["name"],
			Seller:       normalizeSeller(row["seller"]),
			BoughtGrams:  parseFloatOrZero(row["boughtGrams"]),
			UsedGrams:    parseFloatOrZero(row["usedGrams"]),
			ManualOffset: parseFloatOrZero(row["manualOffset"]),
			Remaining:    parseFloatOrZero(row["remaining"]),
			IsActive:     row["isActive"] == "true",
			IsArchived:   row["isArchived"] == "true",
			ArchivedAt:   parseTimeOrNil(row["archivedAt"]),
			CreatedAt:    parseTimeOrNow(row["createdAt"]),
			UpdatedAt:    parseTimeOrNow(row["updatedAt"]),
		})
	}
	return coffees, nil
}

func WriteExtractionsCSV(w io.Writer, extractions []model.Extraction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(extractionCSVHeader); err != nil {
		return fmt.Errorf("write extraction csv header: %w", err)
	}
	for _, e := range extractions {
		rating := ""
		if e.Rating != nil {
			rating = strconv.Itoa(*e.Rating)
		}
		recGrind, recTime, recDose, recReason, recSeverity := "", "", "", "", ""
		if e.Recommendation != nil {
			recGrind = string(e.Recommendation.AdjustGrind)
			recTime = string(e.Recommendation.AdjustTime)
			recDose = string(e.Recommendation.AdjustDose)
			recReason = e.Recommendation.Reason
			recSeverity = string(e.Recommendation.Severity)
		}
		record := []string{
			e.ID, e.CoffeeID, e.CoffeeName, e.CoffeeSeller,
			formatFloat(e.GramsIn), e.GrinderSetting, strconv.Itoa(e.TimeSeconds), formatFloat(e.YieldGrams), formatFloat(e.Ratio),
			rating, e.Notes,
			recGrind, recTime, recDose, recReason, recSeverity,
			e.Date.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write extraction csv row %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseExtractionsCSV reads an extraction export. The nested recommendation
// is reconstructed only when rec_adjustGrind is non-empty; rating parses as
// absent on invalid input instead of 0.
func ParseExtractionsCSV(r io.Reader) ([]model.Extraction, error) {
	rows, err := readCSVRows(r, "extraction")
	if err != nil {
		return nil, err
	}
	extractions := make([]model.Extraction, 0, len(rows))
	for _, row := range rows {
		if row["id"] == "" || row["coffeeId"] == "" {
			continue
		}

		var rec *model.Recommendation
		if row["rec_adjustGrind"] != "" {
			severity := model.Severity(row["rec_severity"])
			if severity == "" {
				severity = model.SeverityMinor
			}
			rec = &model.Recommendation{
				AdjustGrind: model.GrindAdjustment(row["rec_adjustGrind"]),
				AdjustTime:  model.TimeAdjustment(row["rec_adjustTime"]),
				AdjustDose:  model.DoseAdjustment(row["rec_adjustDose"]),
				Reason:      row["rec_reason"],
				Severity:    severity,
			}
		}

		var rating *int
		if v, err := strconv.Atoi(strings.TrimSpace(row["rating"])); err == nil {
			rating = &v
		}

		extractions = append(extractions, model.Extraction{
			ID:             row["id"],
			CoffeeID:       row["coffeeId"],
			CoffeeName:     row["coffeeName"],
			CoffeeSeller:   normalizeSeller(row["coffeeSeller"]),
			GramsIn:        parseFloatOrZero(row["gramsIn"]),
			GrinderSetting: row["grinderSetting"],
			TimeSeconds:    parseIntOrZero(row["timeSeconds"]),
			YieldGrams:     parseFloatOrZero(row["yieldGrams"]),
			Ratio:          parseFloatOrZero(row["ratio"]),
			Rating:         rating,
			Notes:          row["notes"],
			Recommendation: rec,
			Date:           parseTimeOrNow(row["date"]),
		})
	}
	return extractions, nil
}

// readCSVRows parses header-keyed rows so column order does not matter.
func readCSVRows(r io.Reader, kind string) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s csv: %w", kind, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s csv has no header row", kind)
	}
	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[strings.TrimSpace(name)] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloatOrZero(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntOrZero(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

func parseTimeOrNil(v string) *time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &t
}

func parseTimeOrNow(v string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
	if err != nil {
		return time.Now()
	}
	return t
}
