// Command seed bulk-loads rental listings from a JSONL file, embedding
// listing content in batches before upserting into the index.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/staylens/staylens/internal/config"
	dbRedis "github.com/staylens/staylens/internal/db/redis"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	logpkg "github.com/staylens/staylens/internal/logger"
	"github.com/staylens/staylens/internal/metrics"
	listingrepo "github.com/staylens/staylens/internal/repository/listing"
	openaiTransport "github.com/staylens/staylens/internal/transport/openai"
)

// seedRecord is one JSONL line of the source dataset.
type seedRecord struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	PropertyType    string   `json:"property_type"`
	RoomType        string   `json:"room_type"`
	Price           float64  `json:"price"`
	Bedrooms        int      `json:"bedrooms"`
	Bathrooms       float64  `json:"bathrooms"`
	Accommodates    int      `json:"accommodates"`
	InstantBookable bool     `json:"instant_bookable"`
	Amenities       []string `json:"amenities"`
	Address         struct {
		Street  string `json:"street"`
		Market  string `json:"market"`
		Country string `json:"country"`
	} `json:"address"`
	Host struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Superhost bool   `json:"superhost"`
	} `json:"host"`
	ReviewScores struct {
		Rating float64 `json:"rating"`
		Count  int     `json:"count"`
	} `json:"review_scores"`
}

func (r *seedRecord) toListing() *domlisting.Listing {
	return &domlisting.Listing{
		ID:              domlisting.CanonicalID(r.ID),
		Name:            r.Name,
		Description:     r.Description,
		PropertyType:    r.PropertyType,
		RoomType:        r.RoomType,
		Price:           r.Price,
		Bedrooms:        r.Bedrooms,
		Bathrooms:       r.Bathrooms,
		Accommodates:    r.Accommodates,
		InstantBookable: r.InstantBookable,
		Amenities:       r.Amenities,
		Address: domlisting.Address{
			Street:  r.Address.Street,
			Market:  r.Address.Market,
			Country: r.Address.Country,
		},
		Host: domlisting.Host{
			ID:        r.Host.ID,
			Name:      r.Host.Name,
			Superhost: r.Host.Superhost,
		},
		ReviewScores: domlisting.ReviewScores{
			Rating: r.ReviewScores.Rating,
			Count:  r.ReviewScores.Count,
		},
	}
}

func main() {
	file := flag.String("file", "listings.jsonl", "path to the JSONL listings file")
	batchSize := flag.Int("batch", 64, "listings embedded and upserted per batch")
	flag.Parse()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	metrics.RegisterEmbeddingMetrics()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	embedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		MaxRetries: cfg.Embedding.MaxRetries,
		Logger:     logger,
	})

	repo := listingrepo.New(store, cfg.Embedding.Dimensions).WithHNSW(listingrepo.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	})
	if err := repo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure listing index", zap.Error(err))
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal("Failed to open listings file", zap.Error(err))
	}
	defer f.Close()

	var (
		batch   []*domlisting.Listing
		total   int
		skipped int
		tokens  int
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		texts := make([]string, len(batch))
		for i, l := range batch {
			texts[i] = l.Content()
		}
		res, err := embedder.BatchEmbed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed batch: %w", err)
		}
		if len(res.Embeddings) != len(batch) {
			return fmt.Errorf("embed batch: got %d vectors for %d listings", len(res.Embeddings), len(batch))
		}
		for i, l := range batch {
			l.Vector = res.Embeddings[i]
		}
		if err := repo.UpsertMulti(ctx, batch); err != nil {
			return fmt.Errorf("upsert batch: %w", err)
		}
		total += len(batch)
		tokens += res.TotalTokens
		logger.Info("Batch ingested", zap.Int("count", len(batch)), zap.Int("total", total))
		batch = batch[:0]
		return nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec seedRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			logger.Warn("Skipping malformed line", zap.Int("line", line), zap.Error(err))
			skipped++
			continue
		}
		l := rec.toListing()
		if err := l.Validate(); err != nil {
			logger.Warn("Skipping invalid listing", zap.Int("line", line), zap.Error(err))
			skipped++
			continue
		}
		batch = append(batch, l)
		if len(batch) >= *batchSize {
			if err := flush(); err != nil {
				logger.Fatal("Ingestion failed", zap.Error(err))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Fatal("Failed to read listings file", zap.Error(err))
	}
	if err := flush(); err != nil {
		logger.Fatal("Ingestion failed", zap.Error(err))
	}

	indexed, err := repo.Count(ctx)
	if err != nil {
		logger.Warn("Failed to count indexed listings", zap.Error(err))
	}

	logger.Info("Seed complete",
		zap.Int("ingested", total),
		zap.Int("skipped", skipped),
		zap.Int("indexed", indexed),
		zap.Int("embedding_tokens", tokens),
	)
}
