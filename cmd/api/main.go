package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/terralens/terralens-backend/internal/ai"
	"github.com/terralens/terralens-backend/internal/config"
	"github.com/terralens/terralens-backend/internal/db"
	"github.com/terralens/terralens-backend/internal/model"
	"github.com/terralens/terralens-backend/internal/server"
	"github.com/terralens/terralens-backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(&model.User{}, &model.ScanEvent{}); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	ctx := context.Background()
	photos, err := storage.NewPhotoStore(ctx, cfg.StorageBucket, cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("photo store init error: %v", err)
	}
	if photos == nil {
		log.Printf("STORAGE_BUCKET not set; scan photo archiving disabled")
	}
	defer photos.Close()

	classifier := ai.NewGeminiClassifier(cfg.GeminiModel)

	srv, err := server.New(cfg, conn, classifier, photos)
	if err != nil {
		log.Fatalf("server init error: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
