package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"aerocost/api/internal/config"
	"aerocost/api/internal/db"
	"aerocost/api/internal/db/repositories"
	"aerocost/api/internal/services"

	_ "github.com/joho/godotenv/autoload"
)

// create_admin creates the first admin account, or promotes an existing
// account and resets its password.
func main() {
	email := flag.String("email", "", "admin email (required)")
	name := flag.String("name", "Administrator", "display name")
	password := flag.String("password", "", "admin password, at least 8 characters (required)")
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config.yaml")
	flag.Parse()

	if strings.TrimSpace(*email) == "" || len(*password) < 8 {
		flag.Usage()
		os.Exit(2)
	}

	path := *configPath
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	orm, err := db.InitORM(cfg.Database, cfg.AppEnv)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(orm); err != nil {
		log.Fatalf("migrate db: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Token issuing is not needed here.
	userSvc := services.NewUserService(repositories.NewUserRepositoryGORM(orm), nil)
	user, created, err := userSvc.EnsureAdmin(ctx, strings.ToLower(strings.TrimSpace(*email)), *name, *password)
	if err != nil {
		log.Fatalf("ensure admin: %v", err)
	}

	if created {
		fmt.Println("Created admin:", user.Email, user.ID)
		return
	}
	fmt.Println("Promoted existing user to admin:", user.Email, user.ID)
}
