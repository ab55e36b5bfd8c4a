package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"views-prediction-api/config"
	"views-prediction-api/logger"
	"views-prediction-api/models"
	"views-prediction-api/predictor"
	"views-prediction-api/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "predict: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	in := models.DefaultInput()
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Int64Var(&in.Likes, "likes", in.Likes, "number of likes")
	fs.Int64Var(&in.Comments, "comments", in.Comments, "number of comments")
	fs.StringVar(&in.Category, "category", in.Category, "video category label")
	fs.StringVar(&in.ChannelTitle, "channel", in.ChannelTitle, "channel name")
	fs.IntVar(&in.PublishHour, "hour", in.PublishHour, "publish hour (0-23)")
	fs.IntVar(&in.DayOfWeek, "day", in.DayOfWeek, "publish day (0=Monday .. 6=Sunday)")
	modelPath := fs.String("model", cfg.Model.Path, "model artifact path; empty uses the heuristic estimator")
	asJSON := fs.Bool("json", false, "print the full result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	model, err := predictor.Load(*modelPath, predictor.Options{
		ID:            cfg.Model.ID,
		RemoteURL:     cfg.Model.RemoteURL,
		RemoteTimeout: cfg.Model.RemoteTimeout,
	})
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	svc := services.NewPredictionService(model.ID, model, nil, logger.Nop())
	res, err := svc.Predict(ctx, in)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(out, res)
	return nil
}

func printResult(w io.Writer, res *models.PredictionResult) {
	s := res.Summary
	fmt.Fprintf(w, "Estimated Views: %s\n", res.FormattedViews)
	fmt.Fprintf(w, "Range: %s - %s\n", services.FormatCount(res.RangeLow), services.FormatCount(res.RangeHigh))
	fmt.Fprintf(w, "Timing: %s\n", res.TimingLabel)
	fmt.Fprintf(w, "Likes: %s  Comments: %s  Engagement: %s\n", s.Likes, s.Comments, s.EngagementRate)
	fmt.Fprintf(w, "Category: %s (%d)  Channel: %s\n", s.Category, s.CategoryID, s.ChannelTitle)
	fmt.Fprintf(w, "Published: %s on %s\n", s.PublishTime, s.Day)
	fmt.Fprintf(w, "Model: %s\n", res.Model)
	fmt.Fprintln(w, res.Insight)
}
