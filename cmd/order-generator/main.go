package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/publika-insight/internal/config"
	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
	"github.com/SergeyBogomolovv/publika-insight/internal/handler"

	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
)

var (
	names        = []string{"Siti Rahma", "Budi Santoso", "Dewi Lestari", "Agus Wibowo", "Rina Kartika"}
	institutions = []string{"Universitas Indonesia", "Institut Teknologi Bandung", "Universitas Gadjah Mada", "Universitas Padjadjaran"}
	subjects     = []string{"Batik Classification", "Rice Yield Forecasting", "Coral Reef Monitoring", "Graph Coloring Bounds"}
)

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}

func generateSubmission() handler.OrderRequest {
	pkgs := entities.Packages()
	name := pick(names)
	req := handler.OrderRequest{
		FullName:     name,
		Email:        fmt.Sprintf("author%d@example.ac.id", rand.Intn(1000)),
		Institution:  pick(institutions),
		JournalTitle: "A Study of " + pick(subjects),
		Topic:        pick(entities.Topics()),
		Level:        pick(entities.Levels()),
		PackageID:    pkgs[rand.Intn(len(pkgs))].ID,
	}
	// каждая десятая заявка невалидна и должна уйти в DLQ
	if rand.Intn(10) == 0 {
		req.Email = "not-an-email"
	}
	return req
}

func main() {
	godotenv.Load()
	conf := config.New()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(conf.Kafka.Brokers...),
		Topic:                  conf.Kafka.SubmissionsTopic,
		AllowAutoTopicCreation: true,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			req := generateSubmission()
			data, err := json.Marshal(req)
			if err != nil {
				logger.Error("failed to marshal submission", slog.Any("error", err))
				continue
			}
			if err := writer.WriteMessages(ctx, kafka.Message{Value: data}); err != nil {
				logger.Error("failed to write submission", slog.Any("error", err))
				continue
			}
			logger.Info("submission generated", slog.String("email", req.Email), slog.String("package_id", req.PackageID))
		case <-ctx.Done():
			return
		}
	}
}
