package main

import (
	"net/http"

	"github.com/hishabkhata/hishab/internal/blob"
	"github.com/hishabkhata/hishab/internal/config"
	"github.com/hishabkhata/hishab/internal/logger"
	"github.com/hishabkhata/hishab/internal/server"
)

func main() {
	log := logger.New()
	cfg := config.Load()

	var storage blob.Storage
	if cfg.GCSBucket != "" {
		storage = blob.NewGCSStorage(cfg.GCSBucket)
		log.Info().Str("bucket", cfg.GCSBucket).Msg("Storing attachments in GCS")
	} else {
		dir, err := blob.NewDirStorage(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			log.Fatal().Err(err).Str("upload_dir", cfg.UploadDir).Msg("Failed to prepare upload storage")
		}
		storage = dir
		log.Info().Str("upload_dir", cfg.UploadDir).Msg("Storing attachments on disk")
	}

	srv := server.New(storage, cfg.ServerToken, log)

	log.Info().Str("port", cfg.Port).Msg("Dev server listening")
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
