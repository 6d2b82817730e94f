package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os/signal"
	"syscall"

	"cloud.google.com/go/pubsub"
	gcstorage "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gradsignal/traintrack/internal/config"
	"github.com/gradsignal/traintrack/internal/experiment"
	"github.com/gradsignal/traintrack/internal/logging"
	pubsubpub "github.com/gradsignal/traintrack/internal/publisher/pubsub"
	"github.com/gradsignal/traintrack/internal/server"
	"github.com/gradsignal/traintrack/internal/storage"
	"github.com/gradsignal/traintrack/internal/storage/gcs"
	"github.com/gradsignal/traintrack/internal/storage/local"
	"github.com/gradsignal/traintrack/track"
	"github.com/gradsignal/traintrack/track/metrics"
	"github.com/gradsignal/traintrack/track/sinks"
	"github.com/gradsignal/traintrack/train"
)

func newTrainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Run the demo training job with full telemetry wiring.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runTrain(ctx)
		},
	}
}

func runTrain(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	runID := uuid.New()
	logger = logging.WithRun(logger, runID)
	logger.Info("starting training run",
		zap.Int("epochs", cfg.Train.Epochs),
		zap.Int("batch_size", cfg.Train.BatchSize),
		zap.Int("samples", cfg.Train.Samples),
	)

	wiring, err := buildSinks(ctx, cfg, logger, runID)
	if err != nil {
		return err
	}
	defer wiring.close(ctx, logger)

	trainTracker, err := track.New(track.Config{
		LogEvery: cfg.Track.LogEvery,
		PreTag:   "train",
	}, wiring.loggers...)
	if err != nil {
		return err
	}
	validTracker, err := track.New(track.Config{
		Metrics:     []track.Metric{metrics.Accuracy, metrics.BrierScore},
		MetricNames: []string{"accuracy", "brier"},
		PreTag:      "valid",
	}, wiring.loggers...)
	if err != nil {
		return err
	}

	trainSrc, validSrc, err := buildDataset(cfg.Train)
	if err != nil {
		return err
	}

	model, err := train.NewLinearModel(cfg.Train.Features, cfg.Train.Seed)
	if err != nil {
		return err
	}
	opt, err := train.NewSGD(model, cfg.Train.LearningRate)
	if err != nil {
		return err
	}
	loss := train.BCEWithLogits{}

	// Epoch 0 measures baseline performance before any optimizer step.
	baseline, _, err := train.Evaluate(ctx, model, validSrc, loss, validTracker)
	if err != nil {
		return fmt.Errorf("baseline evaluation: %w", err)
	}
	if _, _, err := train.Evaluate(ctx, model, trainSrc, loss, trainTracker); err != nil {
		return fmt.Errorf("baseline evaluation: %w", err)
	}
	logger.Info("baseline", zap.Float64("valid_avg_loss", baseline))

	for epoch := 1; epoch <= cfg.Train.Epochs; epoch++ {
		trainLoss, err := train.Update(ctx, model, trainSrc, loss, opt, trainTracker)
		if err != nil {
			return fmt.Errorf("epoch %d update: %w", epoch, err)
		}
		validLoss, _, err := train.Evaluate(ctx, model, validSrc, loss, validTracker)
		if err != nil {
			return fmt.Errorf("epoch %d evaluation: %w", epoch, err)
		}
		logger.Info("epoch complete",
			zap.Int("epoch", epoch),
			zap.Float64("train_avg_loss", trainLoss),
			zap.Float64("valid_avg_loss", validLoss),
		)
	}
	return nil
}

// sinkWiring owns the sinks and the resources behind them.
type sinkWiring struct {
	loggers []track.Logger

	dashboard    *sinks.Dashboard
	recorder     experiment.Recorder
	pubsubClient *pubsub.Client
	gcsClient    *gcstorage.Client
	metricsSrv   *server.Server
}

func buildSinks(ctx context.Context, cfg config.Config, logger *zap.Logger, runID uuid.UUID) (*sinkWiring, error) {
	w := &sinkWiring{}
	w.loggers = append(w.loggers, sinks.NewLog(logger))

	provider, err := w.blobProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	w.dashboard, err = sinks.NewDashboard(provider, runID.String(), cfg.Track.FlushEvery)
	if err != nil {
		return nil, err
	}
	w.loggers = append(w.loggers, w.dashboard)

	if cfg.DB.DSN != "" {
		w.recorder, err = experiment.NewPostgresRecorder(ctx, experiment.PostgresConfig{
			DSN:   cfg.DB.DSN,
			Table: cfg.DB.Table,
		})
	} else {
		w.recorder = experiment.NewMemoryRecorder()
	}
	if err != nil {
		return nil, err
	}
	expSink, err := sinks.NewExperiment(w.recorder, runID)
	if err != nil {
		return nil, err
	}
	w.loggers = append(w.loggers, expSink)

	if cfg.Server.Enabled {
		reg := prometheus.NewRegistry()
		promSink, err := sinks.NewPrometheus(reg)
		if err != nil {
			return nil, err
		}
		w.loggers = append(w.loggers, promSink)
		w.metricsSrv = server.New(cfg.Server.Port, reg, logger)
		go func() {
			if err := w.metricsSrv.Start(); err != nil {
				logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	if cfg.PubSub.TopicName != "" {
		w.pubsubClient, err = pubsub.NewClient(ctx, cfg.PubSub.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("create pubsub client: %w", err)
		}
		streamSink, err := sinks.NewStream(pubsubpub.New(w.pubsubClient.Topic(cfg.PubSub.TopicName)), runID)
		if err != nil {
			return nil, err
		}
		w.loggers = append(w.loggers, streamSink)
	}

	return w, nil
}

// blobProvider selects the dashboard backend: GCS when a bucket is
// configured, the local runs directory otherwise.
func (w *sinkWiring) blobProvider(ctx context.Context, cfg config.Config) (storage.Provider, error) {
	if cfg.GCS.Bucket != "" {
		client, err := gcstorage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create gcs client: %w", err)
		}
		w.gcsClient = client
		return gcs.New(client, gcs.Config{Bucket: cfg.GCS.Bucket, Prefix: cfg.GCS.Prefix})
	}
	return local.New(local.Config{BaseDir: cfg.Track.RunsDir})
}

func (w *sinkWiring) close(ctx context.Context, logger *zap.Logger) {
	if w.dashboard != nil {
		if err := w.dashboard.Close(ctx); err != nil {
			logger.Warn("flush dashboard events", zap.Error(err))
		}
	}
	if w.recorder != nil {
		w.recorder.Close()
	}
	if w.pubsubClient != nil {
		if err := w.pubsubClient.Close(); err != nil {
			logger.Warn("close pubsub client", zap.Error(err))
		}
	}
	if w.gcsClient != nil {
		if err := w.gcsClient.Close(); err != nil {
			logger.Warn("close gcs client", zap.Error(err))
		}
	}
	if w.metricsSrv != nil {
		if err := w.metricsSrv.Shutdown(ctx); err != nil {
			logger.Warn("shutdown metrics server", zap.Error(err))
		}
	}
}

// buildDataset synthesizes a labeled dataset from a hidden linear truth and
// splits it 80/20 into train and validation sources.
func buildDataset(cfg config.TrainConfig) (*train.SliceSource, *train.SliceSource, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	truth := make([]float64, cfg.Features)
	for j := range truth {
		truth[j] = rng.NormFloat64()
	}

	inputs := make([][]float64, cfg.Samples)
	targets := make([]float64, cfg.Samples)
	for i := range inputs {
		x := make([]float64, cfg.Features)
		var dot float64
		for j := range x {
			x[j] = rng.NormFloat64()
			dot += truth[j] * x[j]
		}
		inputs[i] = x
		if dot+0.1*rng.NormFloat64() > 0 {
			targets[i] = 1
		}
	}

	split := cfg.Samples * 4 / 5
	if split == 0 || split == cfg.Samples {
		return nil, nil, fmt.Errorf("train.samples (%d) is too small to split", cfg.Samples)
	}
	trainSrc, err := train.NewSliceSource(inputs[:split], targets[:split], cfg.BatchSize)
	if err != nil {
		return nil, nil, err
	}
	validSrc, err := train.NewSliceSource(inputs[split:], targets[split:], cfg.BatchSize)
	if err != nil {
		return nil, nil, err
	}
	return trainSrc, validSrc, nil
}
