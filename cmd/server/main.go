package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	"pena.web.id/penablog/internal/server"
	"pena.web.id/penablog/pkg/database"
	"pena.web.id/penablog/pkg/password"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if os.Getenv("APP_ENV") == "development" {
		if err := seedSuperAdmin(db); err != nil {
			log.Fatalf("failed to seed super admin: %v", err)
		}
	}

	redisClient := connectRedis()

	srv := server.NewServer(db, redisClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	if err := srv.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Profile{},
		&entity.Settings{},
		&entity.Category{},
		&entity.Post{},
		&entity.PostTag{},
		&entity.Comment{},
		&entity.Like{},
		&entity.CommentLike{},
		&entity.Subscription{},
		&entity.Block{},
		&entity.Report{},
		&entity.Admin{},
		&entity.Log{},
	)
}

// seedSuperAdmin guarantees one super admin exists in development so the
// dashboard is reachable on a fresh database.
func seedSuperAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Admin{}).Where("is_super_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	pass := os.Getenv("SUPER_ADMIN_PASSWORD")
	if pass == "" {
		pass = "superadmin123"
	}
	hash, err := password.Hash(pass)
	if err != nil {
		return err
	}

	admin := &entity.Admin{
		AdminID:      "ADM-" + time.Now().Format("20060102") + "-0001",
		Username:     "superadmin",
		Email:        "superadmin@pena.web.id",
		PasswordHash: hash,
		Name:         "Super Admin",
		IsSuperAdmin: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Println("seeded development super admin")
	return nil
}

func connectRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, rate limiting and view dedupe disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable (%v), continuing without it", err)
		return nil
	}
	return client
}
