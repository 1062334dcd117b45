//go:build ignore

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/auth"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
	"github.com/Vedant-Rajput22/hostel-complain-info/pkg/config"
	"github.com/Vedant-Rajput22/hostel-complain-info/pkg/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Admin account
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")

	if email == "" {
		email = "warden@" + cfg.College.Domain
	}
	if password == "" {
		password = "changeme123!"
	}
	if name == "" {
		name = "Warden"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	admin := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
		AuthProvider: models.ProviderLocal,
		Role:         models.RoleAdmin,
		Verified:     true,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}
	fmt.Printf("admin user: %s\n", email)

	// Sample mess timetable
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	menus := map[string]string{
		"Breakfast": "Poha, Tea",
		"Lunch":     "Dal, Rice, Roti, Sabzi",
		"Snacks":    "Samosa, Chai",
		"Dinner":    "Rajma, Rice, Roti",
	}
	for _, day := range days {
		for meal, items := range menus {
			entry := models.MessTimetableEntry{
				DayOfWeek: day,
				MealType:  meal,
				MenuItems: items,
				UpdatedAt: time.Now(),
			}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "day_of_week"}, {Name: "meal_type"}},
				DoNothing: true,
			}).Create(&entry).Error; err != nil {
				log.Fatalf("failed to seed mess timetable: %v", err)
			}
		}
	}
	fmt.Println("mess timetable seeded")

	// Sample bus routes
	var busCount int64
	db.Model(&models.BusTimetableEntry{}).Count(&busCount)
	if busCount == 0 {
		routes := []models.BusTimetableEntry{
			{RouteName: "Campus - Railway Station", StartTime: "08:00", EndTime: "08:45", Stops: `["Main Gate","Sitabuldi","Railway Station"]`},
			{RouteName: "Campus - Railway Station", StartTime: "17:30", EndTime: "18:15", Stops: `["Main Gate","Sitabuldi","Railway Station"]`},
			{RouteName: "Campus - City Centre", StartTime: "10:00", EndTime: "10:40", Stops: `["Main Gate","Medical Square","City Centre"]`},
		}
		for _, route := range routes {
			if err := db.Create(&route).Error; err != nil {
				log.Fatalf("failed to seed bus timetable: %v", err)
			}
		}
		fmt.Println("bus timetable seeded")
	}
}
