package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"nutrient-sync/core/reconcile"
	"nutrient-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Report is the record of one sync run.
type Report struct {
	RunID      string             `json:"run_id"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Variant    string             `json:"catalog_variant"`
	Override   bool               `json:"override"`
	DryRun     bool               `json:"dry_run"`
	Summary    reconcile.Summary  `json:"summary"`
	Results    []reconcile.Result `json:"results"`
}

// New builds a report from the per-food results of a run.
func New(runID, variant string, opts reconcile.Options, startedAt, finishedAt time.Time, results []reconcile.Result) *Report {
	return &Report{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Variant:    variant,
		Override:   opts.Override,
		DryRun:     opts.DryRun,
		Summary:    reconcile.Summarize(results),
		Results:    results,
	}
}

// Attention returns the results an operator should look at: failures and foods without an FDC ID.
func (r *Report) Attention() []reconcile.Result {
	var out []reconcile.Result
	for _, res := range r.Results {
		switch res.Outcome {
		case reconcile.OutcomeLookupFailed, reconcile.OutcomePushFailed, reconcile.OutcomeNoCrossRefID:
			out = append(out, res)
		}
	}
	return out
}

// Render writes the summary table, followed by a table of the foods needing attention.
func (r *Report) Render(w io.Writer) error {
	s := r.Summary
	rows := [][]string{
		{"Processed", strconv.Itoa(s.Total)},
		{"Updated", strconv.Itoa(s.Updated)},
		{"Not updated", strconv.Itoa(s.NotUpdated)},
		{"No FDC ID", strconv.Itoa(s.NoCrossRefID)},
		{"Already up to date", strconv.Itoa(s.AlreadyUpToDate)},
	}
	if r.DryRun {
		rows = append(rows, []string{"Would update", strconv.Itoa(s.WouldUpdate)})
	}
	if err := Table(w, []string{"Result", "Foods"}, rows, []tw.Align{tw.AlignLeft, tw.AlignRight}); err != nil {
		return err
	}

	attention := r.Attention()
	if len(attention) == 0 {
		return nil
	}

	rows = make([][]string, 0, len(attention))
	for _, res := range attention {
		fdcID := ""
		if res.CrossRefID != 0 {
			fdcID = strconv.Itoa(res.CrossRefID)
		}
		rows = append(rows, []string{strconv.Itoa(res.FoodID), res.Name, fdcID, string(res.Outcome), res.Error})
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return Table(w, []string{"ID", "Food", "FDC ID", "Outcome", "Error"}, rows,
		[]tw.Align{tw.AlignRight, tw.AlignLeft, tw.AlignRight, tw.AlignLeft, tw.AlignLeft})
}

// Key returns the object key the report is archived under.
func (r *Report) Key(prefix string) string {
	return storage.ObjectKey(prefix, r.RunID+".json")
}

// Archive uploads the report as JSON and returns its object key.
// The bucket is created on first use.
func (r *Report) Archive(ctx context.Context, client storage.Client, cfg storage.Config) (string, error) {
	body, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return "", err
	}

	key := r.Key(cfg.ReportPrefix)
	_, err = client.PutObject(ctx, cfg.Bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %q: %w", key, err)
	}
	return key, nil
}

// Table renders rows under headers with per-column alignment.
func Table(w io.Writer, headers []string, rows [][]string, align []tw.Align) error {
	config := tablewriter.Config{}
	if len(align) > 0 {
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	table.Header(header...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}
