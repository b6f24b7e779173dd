package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"

	"meetconnect/internal/auth"
	"meetconnect/internal/cache"
	"meetconnect/internal/config"
	"meetconnect/internal/db"
	"meetconnect/internal/logger"
	"meetconnect/internal/model"
	"meetconnect/internal/repository"
	"meetconnect/internal/service"
)

// SeedResource is the catalogue entry shape accepted from RESOURCES_SEED_URL.
type SeedResource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	if err := config.LoadDotenv(*envFile); err != nil {
		log.Fatalf("load %s: %v", *envFile, err)
	}
	cfg := config.Load()
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Log.Sync()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.Options{})
	if err != nil {
		logger.Log.Fatalw("connect to database", "error", err)
	}
	if err := db.Migrate(gormDB, false); err != nil {
		logger.Log.Fatalw("run migrations", "error", err)
	}

	ctx := context.Background()

	catalogue := builtinCatalogue
	if url := os.Getenv("RESOURCES_SEED_URL"); url != "" {
		logger.Log.Infow("fetching resource catalogue", "url", url)
		catalogue, err = fetchResources(ctx, http.DefaultClient, url)
		if err != nil {
			logger.Log.Fatalw("fetch resources", "error", err)
		}
	}

	resourceService := service.NewResourceService(repository.NewResourceRepository(gormDB))
	written, err := resourceService.Import(ctx, toNewResources(catalogue))
	if err != nil {
		logger.Log.Fatalw("seed resources", "written", written, "error", err)
	}
	logger.Log.Infow("resources seeded", "count", written)

	email, password := os.Getenv("SEED_ADMIN_EMAIL"), os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Log.Infow("SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD unset, skipping admin account")
		return
	}
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	created, err := seedAdmin(ctx, repository.NewAccountRepository(gormDB), cacheClient, auth.NewPasswordHasher(0), email, password)
	if err != nil {
		logger.Log.Fatalw("seed admin", "error", err)
	}
	logger.Log.Infow("admin account ready", "email", model.NormalizeEmail(email), "created", created)
}

// fetchResources downloads a JSON array of catalogue entries.
func fetchResources(ctx context.Context, client *http.Client, url string) ([]SeedResource, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalogue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalogue returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var resources []SeedResource
	if err := json.Unmarshal(body, &resources); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	return resources, nil
}

// toNewResources drops entries without a title or URL and unknown categories.
func toNewResources(items []SeedResource) []service.NewResource {
	out := make([]service.NewResource, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.URL == "" {
			logger.Log.Warnw("skipping resource without title or url", "title", item.Title, "url", item.URL)
			continue
		}
		if item.Category != "" && !model.IsInterviewType(item.Category) {
			logger.Log.Warnw("skipping resource with unknown category", "url", item.URL, "category", item.Category)
			continue
		}
		out = append(out, service.NewResource{
			Title:       item.Title,
			URL:         item.URL,
			Category:    item.Category,
			Description: item.Description,
		})
	}
	return out
}

// profileCache is the part of the cache seedAdmin touches.
type profileCache interface {
	Delete(ctx context.Context, key string) error
}

// seedAdmin creates the admin account or promotes and re-keys an existing one.
// A promoted account's cached profile is dropped so the new role shows at once.
func seedAdmin(ctx context.Context, repo repository.AccountRepository, profiles profileCache, hasher *auth.PasswordHasher, email, password string) (created bool, err error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return false, err
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check admin %s: %w", email, err)
	}

	if existing != nil {
		existing.Role = model.RoleAdmin
		existing.Active = true
		existing.PasswordHash = hash
		if err := repo.Update(ctx, existing); err != nil {
			return false, fmt.Errorf("update admin %s: %w", email, err)
		}
		_ = profiles.Delete(ctx, service.ProfileCacheKey(existing.ID))
		return false, nil
	}

	admin := &model.Account{
		Name:         "Administrator",
		Email:        model.NormalizeEmail(email),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin %s: %w", email, err)
	}
	return true, nil
}
