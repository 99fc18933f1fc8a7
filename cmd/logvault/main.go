package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/frostline-io/logvault/internal/config"
	"github.com/frostline-io/logvault/internal/export"
	"github.com/frostline-io/logvault/internal/logstore"
	"github.com/frostline-io/logvault/internal/query"
	"github.com/frostline-io/logvault/internal/upload"
	"github.com/frostline-io/logvault/internal/window"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	app := &cli.App{
		Name:  "logvault",
		Usage: "export the previous UTC day's logs to cold storage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "date",
				Usage: "export this UTC day (YYYY-MM-DD) instead of yesterday",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "print the rendered query and exit without touching the network",
			},
		},
		Action: func(c *cli.Context) error {
			return runExport(c, log)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Error("export failed")
		os.Exit(1)
	}
}

func runExport(c *cli.Context, log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	w := window.Previous(time.Now())
	if date := c.String("date"); date != "" {
		w, err = window.ForDate(date)
		if err != nil {
			return err
		}
	}

	builder := query.Builder{
		Table:    cfg.LogStore.Table,
		NoiseApp: cfg.Export.NoiseApp,
	}

	if c.Bool("dry-run") {
		fmt.Fprintln(c.App.Writer, builder.Build(w))
		return nil
	}

	sink, err := newSink(c.Context, cfg.Upload)
	if err != nil {
		return err
	}

	client := logstore.NewClient(logstore.Config{
		URL:      cfg.LogStore.URL,
		Username: cfg.LogStore.Username,
		Password: cfg.LogStore.Password,
		Timeout:  cfg.LogStore.Timeout,
	})

	runner := export.NewRunner(log, client, sink, builder, export.Options{
		Prefix:    cfg.Export.Prefix,
		TmpDir:    cfg.Export.TmpDir,
		SkipEmpty: cfg.Export.SkipEmpty,
	})

	_, err = runner.Run(c.Context, w)
	return err
}

func newSink(ctx context.Context, cfg config.UploadConfig) (upload.Sink, error) {
	switch cfg.Backend {
	case upload.BackendDrive:
		return upload.NewDriveSink(ctx, upload.DriveConfig{
			FolderID:           cfg.Drive.FolderID,
			ClientID:           cfg.Drive.ClientID,
			ClientSecret:       cfg.Drive.ClientSecret,
			RefreshToken:       cfg.Drive.RefreshToken,
			ServiceAccountJSON: []byte(cfg.Drive.ServiceAccountJSON),
		})
	case upload.BackendS3:
		return upload.NewS3Sink(upload.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
			UseSSL:    cfg.S3.UseSSL,
		})
	default:
		return nil, fmt.Errorf("unsupported upload backend: %s", cfg.Backend)
	}
}
