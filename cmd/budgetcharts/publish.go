package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budgetcharts/internal/amqp"
	"budgetcharts/internal/cli"
	"budgetcharts/internal/config"
	blog "budgetcharts/internal/log"
	"budgetcharts/internal/source"
	"budgetcharts/internal/worker"

	"github.com/spf13/cobra"
)

var (
	flagWatch    bool
	flagInterval time.Duration
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish chart bundles to the AMQP exchange",
	Long:  "Publish the chart bundle of a month once, or with --watch rebuild the current month on every interval and publish it when it changed.",
	Args:  cobra.NoArgs,
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Keep running and republish on every interval")
	publishCmd.Flags().DurationVar(&flagInterval, "interval", 0, "Watch interval (default PUBLISH_INTERVAL)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := loadApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	// Stdin is consumed by the first round, so every later one would fail.
	if flagWatch && a.cfg.Source == config.SourceFile && source.IsStdinPath(a.cfg.InputPath) {
		return errors.New("--watch needs a page data file: pass --input or set BUDGET_INPUT")
	}
	if a.cfg.AMQPURL == "" {
		return errors.New("AMQP_URL is required to publish")
	}

	logger := a.logger.WithComponent(blog.ComponentAMQP)
	client, err := amqp.NewClient(ctx, a.cfg.AMQPURL, a.cfg.AMQPExchange)
	if err != nil {
		return fmt.Errorf("connect to AMQP: %w", err)
	}
	defer client.Close()
	logger.Info("AMQP client initialized", blog.FieldExchange, a.cfg.AMQPExchange)

	interval := a.cfg.PublishInterval
	if cmd.Flags().Changed("interval") {
		interval = flagInterval
	}
	w := worker.NewPublishWorker(a.backend.Reader, client, a.appearance, a.cfg.AccountID, worker.DefaultResendAfter)

	if !flagWatch {
		published, err := w.PublishOnce(blog.NewContext(ctx, a.logger.WithComponent(blog.ComponentPublish)), a.query())
		if err != nil {
			return err
		}
		logger.Info("Publish complete", "published", published)
		return nil
	}

	if interval < time.Second {
		return fmt.Errorf("invalid interval %v: must be at least 1 second", interval)
	}
	logger.Info("Publish worker started", append(blog.NewFields().
		WithOperation(blog.OpStartup).
		ToSlice(), "interval", interval, blog.FieldAccountID, a.cfg.AccountID)...)

	runCtx, done := cli.GracefulShutdown(a.logger.Logger, 10*time.Second, nil)
	runCtx = blog.NewContext(runCtx, a.logger.WithComponent(blog.ComponentPublish))
	if err := w.Run(runCtx, interval); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	cli.WaitForShutdown(runCtx, done)
	return nil
}
