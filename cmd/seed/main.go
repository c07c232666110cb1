// Seeds demo accounts and scan history for local development.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/terralens/terralens-backend/internal/config"
	"github.com/terralens/terralens-backend/internal/db"
	"github.com/terralens/terralens-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedUser struct {
	email string
	scans []seedScan
}

type seedScan struct {
	category string
	label    string
	conf     float64
	points   int
	age      time.Duration
}

var seedUsers = []seedUser{
	{"ananya@example.com", []seedScan{
		{"PLASTIC", "plastic_bottle", 0.94, 10, 72 * time.Hour},
		{"METAL", "soda_can", 0.88, 10, 48 * time.Hour},
		{"GLASS", "glass_jar", 0.91, 10, 24 * time.Hour},
	}},
	{"rahul@example.com", []seedScan{
		{"PAPER", "cardboard_box", 0.90, 10, 30 * time.Hour},
		{"PLASTIC", "plastic_bag", 0.85, 10, 6 * time.Hour},
	}},
	{"meera@example.com", nil},
}

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

	hashed, err := bcrypt.GenerateFromPassword([]byte("terralens-demo"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}
	pw := string(hashed)

	for _, su := range seedUsers {
		if err := seedOne(conn, su, pw); err != nil {
			log.Fatalf("seed %s: %v", su.email, err)
		}
		log.Printf("seeded %s with %d scans", su.email, len(su.scans))
	}
}

func seedOne(conn *gorm.DB, su seedUser, passwordHash string) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		user := &model.User{Email: su.email, PasswordHash: &passwordHash}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(user).Error; err != nil {
			return err
		}

		for i, sc := range su.scans {
			at := time.Now().UTC().Add(-sc.age)
			sum := sha256.Sum256([]byte(fmt.Sprintf("seed:%s:%d", su.email, i)))
			event := &model.ScanEvent{
				ID:          uuid.NewString(),
				UserEmail:   su.email,
				Category:    sc.category,
				RawLabel:    sc.label,
				Confidence:  sc.conf,
				ContentHash: hex.EncodeToString(sum[:]),
				Points:      sc.points,
				CreatedAt:   at,
			}
			ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(event)
			if ins.Error != nil {
				return ins.Error
			}
			if ins.RowsAffected == 0 {
				// already seeded on a previous run
				continue
			}
			res := tx.Model(&model.User{}).
				Where("email = ?", su.email).
				Updates(map[string]interface{}{
					"points":       gorm.Expr("points + ?", sc.points),
					"last_scan_at": at,
				})
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
}
