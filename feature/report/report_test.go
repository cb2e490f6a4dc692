package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"nutrient-sync/core/reconcile"
	"nutrient-sync/core/storage"
	"nutrient-sync/core/storage/mocks"
	"nutrient-sync/feature/report"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleReport(dryRun bool) *report.Report {
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return report.New("run-1", "v2", reconcile.Options{DryRun: dryRun}, started, started.Add(time.Minute), []reconcile.Result{
		{FoodID: 1, Name: "Egg", CrossRefID: 12345, Outcome: reconcile.OutcomeUpdated, Properties: 3},
		{FoodID: 2, Name: "Tofu", Outcome: reconcile.OutcomeNoCrossRefID},
		{FoodID: 3, Name: "Bread", CrossRefID: 99, Outcome: reconcile.OutcomeLookupFailed, Error: "lookup of FDC ID 99 failed"},
		{FoodID: 4, Name: "Milk", Outcome: reconcile.OutcomeAlreadyUpToDate},
	})
}

func TestNew(t *testing.T) {
	r := sampleReport(false)

	assert.Equal(t, reconcile.Summary{Total: 4, Updated: 1, NotUpdated: 1, NoCrossRefID: 1, AlreadyUpToDate: 1}, r.Summary)

	attention := r.Attention()
	require.Len(t, attention, 2)
	assert.Equal(t, "Tofu", attention[0].Name)
	assert.Equal(t, "Bread", attention[1].Name)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport(false).Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "Already up to date")
	assert.Contains(t, out, "Bread")
	assert.Contains(t, out, "lookup_failed")
	assert.Contains(t, out, "Tofu")
	assert.NotContains(t, out, "Egg")
	assert.NotContains(t, out, "Would update")

	buf.Reset()
	require.NoError(t, sampleReport(true).Render(&buf))
	assert.Contains(t, buf.String(), "Would update")
}

func TestArchive(t *testing.T) {
	ctx := context.Background()
	cfg := storage.Config{Bucket: "nutrient-sync", ReportPrefix: "reports"}

	t.Run("Uploads", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "nutrient-sync").Return(true, nil)

		var uploaded report.Report
		client.On("PutObject", ctx, "nutrient-sync", "reports/run-1.json", mock.Anything, mock.Anything,
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/json" })).
			Run(func(args mock.Arguments) {
				body, err := io.ReadAll(args.Get(3).(io.Reader))
				require.NoError(t, err)
				assert.Equal(t, int64(len(body)), args.Get(4).(int64))
				require.NoError(t, json.Unmarshal(body, &uploaded))
			}).
			Return(minio.UploadInfo{}, nil)

		key, err := sampleReport(false).Archive(ctx, client, cfg)

		require.NoError(t, err)
		assert.Equal(t, "reports/run-1.json", key)
		assert.Equal(t, "run-1", uploaded.RunID)
		assert.Equal(t, 1, uploaded.Summary.Updated)
		assert.Len(t, uploaded.Results, 4)
		client.AssertExpectations(t)
	})

	t.Run("CreatesBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "nutrient-sync").Return(false, nil)
		client.On("MakeBucket", ctx, "nutrient-sync", mock.Anything).Return(nil)
		client.On("PutObject", ctx, "nutrient-sync", "reports/run-1.json", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		_, err := sampleReport(false).Archive(ctx, client, cfg)

		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("UploadFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "nutrient-sync").Return(true, nil)
		client.On("PutObject", ctx, "nutrient-sync", "reports/run-1.json", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("quota exceeded"))

		_, err := sampleReport(false).Archive(ctx, client, cfg)

		assert.ErrorContains(t, err, "quota exceeded")
	})
}
