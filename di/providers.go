package di

import (
	"carrental/config"
	"carrental/infras/otel"
	"carrental/infras/s3"
	"carrental/internal/export"
	"context"
)

// provideBucket leaves s3 exports disabled until a bucket is configured.
func provideBucket(ctx context.Context, cfg *config.Config, otel otel.Otel) (s3.S3, error) {
	if cfg.External.S3.BucketName == "" {
		return nil, nil
	}

	return s3.New(ctx, cfg, otel)
}

func provideSink(cfg *config.Config, bucket s3.S3) export.Sink {
	return export.NewSink(cfg.Export.Dir, bucket)
}
