package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"spotly/internal/shared/apperrors"
	"spotly/internal/shared/config"
	"spotly/internal/shared/database"
	"spotly/internal/spots"

	"github.com/joho/godotenv"
)

type Seeder struct {
	db      *database.DB
	service spots.Service
}

type seedSpot struct {
	name     string
	note     string
	firstAt  time.Time
	slots    int
	length   time.Duration
	capacity int
}

func main() {
	fmt.Println("🌱 Starting Spotly Database Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()
	cfg.Database.AutoMigrate = true

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:      db,
		service: spots.NewService(spots.NewRepository(db.GetSQL()), spots.RulesFromConfig(cfg.Reservation)),
	}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("\n🎉 Seeding completed! Try POST /api/v1/spots/Summer%20Fair/reserve")
}

// CleanDatabase removes all rows, children first
func (s *Seeder) CleanDatabase() error {
	for _, table := range []string{"tickets", "slots", "spots"} {
		if err := s.db.GetSQL().Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
		fmt.Printf("   🗑️  Cleaned %s\n", table)
	}
	return nil
}

func (s *Seeder) SeedAll(ctx context.Context) error {
	tomorrow := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)

	seeds := []seedSpot{
		{name: "Summer Fair", note: "Main gate opens at nine", firstAt: tomorrow.Add(9 * time.Hour), slots: 4, length: time.Hour, capacity: 50},
		{name: "Night Market", firstAt: tomorrow.Add(18 * time.Hour), slots: 3, length: 90 * time.Minute, capacity: 200},
		{name: "Museum/Late Opening", note: "Name contains a slash", firstAt: tomorrow.Add(20 * time.Hour), slots: 2, length: time.Hour, capacity: 25},
		{name: "Sold Out Gig", firstAt: tomorrow.Add(21 * time.Hour), slots: 1, length: 2 * time.Hour, capacity: 0},
	}

	for _, seed := range seeds {
		if err := s.seedSpot(ctx, seed); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedSpot(ctx context.Context, seed seedSpot) error {
	req := spots.CreateSpotRequest{Name: seed.name}
	if seed.note != "" {
		note := seed.note
		req.Note = &note
	}
	for i := 0; i < seed.slots; i++ {
		start := seed.firstAt.Add(time.Duration(i) * seed.length)
		capacity := seed.capacity
		req.Slots = append(req.Slots, spots.CreateSlotRequest{
			Start:    start,
			End:      start.Add(seed.length),
			Capacity: &capacity,
		})
	}

	spot, err := s.service.CreateSpot(ctx, req)
	if errors.Is(err, apperrors.ErrNameConflict) {
		fmt.Printf("   ⏭️  %s already exists\n", seed.name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed %q: %w", seed.name, err)
	}

	fmt.Printf("   ✅ %s (%s): %d slots x %d tickets\n", spot.Name, spot.ID, len(spot.Slots), seed.capacity)
	return nil
}
