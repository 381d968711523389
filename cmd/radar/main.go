package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/rixia6254/info-teacher-radar/internal/aggregate"
	"github.com/rixia6254/info-teacher-radar/internal/app"
	"github.com/rixia6254/info-teacher-radar/internal/artifact"
	"github.com/rixia6254/info-teacher-radar/internal/config"
	"github.com/rixia6254/info-teacher-radar/internal/fetch"
	"github.com/rixia6254/info-teacher-radar/internal/sources"
)

func main() {
	ctx := context.Background()

	// .env опционален: все переменные имеют дефолты.
	_ = godotenv.Load()

	rootCfg, err := config.LoadRoot("configs/radar.yaml")
	if err != nil {
		log.Fatalf("load radar config: %v", err)
	}

	srcCfg, err := config.LoadSources("configs/sources.yaml")
	if err != nil {
		log.Fatalf("load sources config: %v", err)
	}

	envCfg := config.LoadEnvConfig()
	radar := rootCfg.Radar
	if envCfg.RetentionDays > 0 {
		radar.RetentionDays = envCfg.RetentionDays
	}
	if envCfg.ArtifactPath != "" {
		radar.ArtifactPath = envCfg.ArtifactPath
	}

	fetcher := fetch.New(time.Duration(radar.FetchTimeoutSeconds) * time.Second)

	p := app.NewPipeline(app.PipelineDeps{
		Collectors: []app.Collector{
			sources.NewDirectFeedCollector(srcCfg.Feeds, fetcher, nil),
			sources.NewQueryFeedCollector(srcCfg.Queries, fetcher, nil),
			sources.NewPageCollector(srcCfg.Pages, fetcher, nil, radar.HarvestLimit),
		},
		Aggregator: aggregate.New(radar.RetentionDays, radar.MaxItems, nil),
		Writer:     artifact.NewStore(radar.ArtifactPath),
	})

	if err := p.Run(ctx); err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	log.Println("pipeline completed successfully")
}
