package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"

	"github.com/JanuszL/dali-grpc-client/dataset"
	"github.com/JanuszL/dali-grpc-client/preprocess"
	"github.com/JanuszL/dali-grpc-client/report"
	"github.com/JanuszL/dali-grpc-client/triton"
)

// The demo preloads at most this many images regardless of how many the
// directory holds; when more iterations are requested the batches cycle
// over them.
const maxPreloadedImages = 15

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx := context.Background()

	client, err := triton.Connect(ctx, cfg.URL, cfg.Verbose)
	if err != nil {
		log.Fatalf("channel creation failed: %v", err)
	}
	defer client.Close()

	log.Info("Loading images")
	images, err := dataset.Load(cfg.ImagePath(), maxPreloadedImages)
	if err != nil {
		log.Fatalf("loading images: %v", err)
	}
	stacked, err := dataset.Stack(images)
	if err != nil {
		log.Fatalf("stacking images: %v", err)
	}
	log.Infof("Images loaded: %d", stacked.Rows)

	batches := dataset.NewBatches(stacked, cfg.BatchSize, cfg.NIter)
	bar := progressbar.Default(int64(batches.Len()), "Inferring")

	var latencies []time.Duration
	for {
		rows, ok := batches.Next()
		if !ok {
			break
		}

		input := triton.Input{Name: cfg.InputName}
		if cfg.Preprocess {
			tensors := make([][]float32, 0, len(rows))
			var batchLatency time.Duration
			for _, row := range rows {
				tensor, elapsed, err := preprocess.Transform(row)
				if err != nil {
					log.Fatalf("preprocessing: %v", err)
				}
				tensors = append(tensors, tensor)
				batchLatency += elapsed
			}
			latencies = append(latencies, batchLatency)

			fp32, err := dataset.Stack(tensors)
			if err != nil {
				log.Fatalf("stacking preprocessed batch: %v", err)
			}
			input.Datatype = triton.DatatypeFP32
			input.Shape = []int64{int64(fp32.Rows), preprocess.TargetHeight, preprocess.TargetWidth, preprocess.Channels}
			input.Raw = triton.Float32Bytes(fp32.Data)
		} else {
			batch, err := dataset.Stack(rows)
			if err != nil {
				log.Fatalf("stacking batch: %v", err)
			}
			input.Datatype = triton.DatatypeUint8
			input.Shape = batch.Shape()
			input.Raw = batch.Data
		}

		scores, err := client.Infer(ctx, cfg.ModelName, input, cfg.OutputName)
		if err != nil {
			log.Fatalf("inference failed: %v", err)
		}
		preds, err := report.ArgMax(scores.Data, scores.Shape)
		if err != nil {
			log.Fatalf("reading scores: %v", err)
		}
		if cfg.Statistics {
			report.PrintPredictions(preds)
		}
		bar.Add(1)
	}
	bar.Finish()

	stats, err := client.ModelStatistics(ctx, cfg.ModelName)
	if err != nil {
		if errors.Is(err, triton.ErrStatisticsCount) {
			log.Debugf("%v", err)
			fmt.Println("FAILED: Inference Statistics")
			os.Exit(1)
		}
		log.Fatalf("fetching statistics: %v", err)
	}
	if cfg.Statistics {
		fmt.Println(stats.String())
	}
	if cfg.Preprocess {
		fmt.Println(report.LatencySummary(latencies))
	}
	fmt.Println("PASS: infer")
}
