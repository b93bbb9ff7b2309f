package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/netsync/internal/capture"
	"github.com/vango-dev/netsync/internal/errors"
)

func captureCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Manage frame capture files",
	}
	cmd.AddCommand(captureUploadCmd(g))
	return cmd
}

func captureUploadCmd(g *globals) *cobra.Command {
	var (
		bucket string
		prefix string
		region string
		remove bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload capture files to S3",
		Long: `Upload checks that each file is a readable capture and stores it
under capture.prefix in capture.bucket. Credentials come from
AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.

Examples:
  netsync capture upload captures/*.nscap
  netsync capture upload session.nscap --bucket match-captures --delete`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			if bucket == "" {
				bucket = cfg.Capture.Bucket
			}
			if prefix == "" {
				prefix = cfg.Capture.Prefix
			}
			if region == "" {
				region = cfg.Capture.Region
			}
			if bucket == "" {
				return errors.New(errors.CodeUploadFailed).
					WithReason("no bucket configured").
					WithSuggestion("Set capture.bucket in netsync.json or pass --bucket")
			}

			up, err := capture.NewUploader(capture.UploaderConfig{
				Client: capture.NewS3Client(region),
				Bucket: bucket,
				Prefix: prefix,
				Logger: logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for _, path := range args {
				key, err := up.Upload(ctx, path)
				if err != nil {
					return err
				}
				success("%s → s3://%s/%s", path, bucket, key)
				if !remove {
					continue
				}
				if err := os.Remove(path); err != nil {
					warn("could not delete %s: %v", path, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default: capture.bucket)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Object key prefix (default: capture.prefix)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default: capture.region or AWS_REGION)")
	cmd.Flags().BoolVar(&remove, "delete", false, "Delete each file after a successful upload")

	return cmd
}
