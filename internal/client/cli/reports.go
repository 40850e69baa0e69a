package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avetikov/cityreport/internal/client/models"
)

// ListReports prints reports, optionally narrowed by "status=<s>" and
// "category=<c>" arguments.
func (a *App) ListReports(ctx context.Context, args []string) error {
	filter, err := parseReportFilter(args)
	if err != nil {
		return err
	}

	reports, err := a.client.ListReports(ctx, filter)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Fprintln(a.out, "No reports.")
		return nil
	}

	for _, r := range reports {
		fmt.Fprintf(a.out, "%s  [%-11s]  %-10s  %s\n", r.ID, r.Status, r.Category, r.Title)
	}
	return nil
}

// ShowReport prints one report in full.
func (a *App) ShowReport(ctx context.Context, id string) error {
	r, err := a.client.GetReport(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s: %s\n", r.ID, r.Title)
	fmt.Fprintf(a.out, "status: %s  category: %s  points: %d\n", r.Status, r.Category, r.Points)
	fmt.Fprintf(a.out, "location: %.5f, %.5f\n", r.Location.Latitude, r.Location.Longitude)
	if r.Description != "" {
		fmt.Fprintln(a.out, r.Description)
	}
	for _, u := range r.PhotoURLs {
		fmt.Fprintf(a.out, "photo: %s\n", u)
	}
	return nil
}

// SubmitReport prompts for a new report and submits it.
func (a *App) SubmitReport(ctx context.Context) error {
	var req models.NewReport
	var err error

	if req.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if req.Category, err = getSimpleText(a.reader, "Category (pothole, lighting, water, waste, other)", a.out); err != nil {
		return err
	}
	if req.Description, err = getMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}

	lat, err := getSimpleText(a.reader, "Latitude", a.out)
	if err != nil {
		return err
	}
	if req.Latitude, err = strconv.ParseFloat(lat, 64); err != nil {
		return fmt.Errorf("invalid latitude %q", lat)
	}

	lng, err := getSimpleText(a.reader, "Longitude", a.out)
	if err != nil {
		return err
	}
	if req.Longitude, err = strconv.ParseFloat(lng, 64); err != nil {
		return fmt.Errorf("invalid longitude %q", lng)
	}

	r, err := a.client.CreateReport(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Report %s submitted (status %s).\n", r.ID, r.Status)
	return nil
}

func parseReportFilter(args []string) (models.ReportFilter, error) {
	var filter models.ReportFilter
	for _, arg := range args {
		switch {
		case len(arg) > 7 && arg[:7] == "status=":
			status := models.ReportStatus(arg[7:])
			if !models.ValidReportStatus(status) {
				return filter, fmt.Errorf("unknown status %q", arg[7:])
			}
			filter.Status = status
		case len(arg) > 9 && arg[:9] == "category=":
			filter.Category = arg[9:]
		default:
			return filter, fmt.Errorf("unknown filter %q (want status=... or category=...)", arg)
		}
	}
	return filter, nil
}
