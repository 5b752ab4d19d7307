package database

import (
	"fmt"
	"log"

	"lsf/config"
	"lsf/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, runs migrations and seeds the
// initial records. Any failure here aborts startup.
func ConnectDb() {
	db, err := openDb()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := SeedDatabase(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	Database = DbInstance{Db: db}
}

// openDb selects the driver from configuration. SQLite is the default;
// Postgres and MySQL are available for deployments that outgrow it.
func openDb() (*gorm.DB, error) {
	cfg := config.AppConfig

	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DBName), &gorm.Config{})
	}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.PageContent{},
		&models.Module{},
		&models.StoredFile{},
	)
	if err != nil {
		return err
	}

	log.Println("Migrations completed successfully.")
	return nil
}

// SeedDatabase bootstraps the admin user, the home page content and the
// default modules. Each seed is a one-shot: once the record (or any module)
// exists, it is never touched again.
func SeedDatabase(db *gorm.DB) error {
	if err := seedAdminUser(db); err != nil {
		return err
	}
	if err := seedHomeContent(db); err != nil {
		return err
	}
	return seedDefaultModules(db)
}

func seedAdminUser(db *gorm.DB) error {
	cfg := config.AppConfig

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.SaltRound)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: cfg.AdminUsername,
		Password: string(hashed),
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user created: %s", cfg.AdminUsername)
	return nil
}

func seedHomeContent(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PageContent{}).Where("section = ?", "home").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	home := models.PageContent{
		Section:     "home",
		Title:       "Welcome to the Leadership Skills Formation program",
		Description: "Develop your leadership competencies through our comprehensive 3-module program designed for your teams.",
		Data:        `{"stats": [{"title": "3 Modules", "subtitle": "Complete Program"}, {"title": "6 Months", "subtitle": "July - December 2025"}, {"title": "Resources", "subtitle": "Learning Material"}]}`,
	}
	return db.Create(&home).Error
}

func seedDefaultModules(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Module{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaultModules := []models.Module{
		{
			Title:       "Leadership Fundamentals",
			Description: "Core concepts and fundamental principles of effective leadership",
			Topics: models.JSONList(
				"Definition and types of leadership",
				"Traits of the effective leader",
				"Self-knowledge and personal development",
				"Effective communication",
			),
			Objectives: models.JSONList(
				"Understand the fundamentals of leadership",
				"Identify your own leadership style",
				"Develop communication skills",
				"Create a personal development plan",
			),
			Duration:  "8 weeks",
			StartDate: "July 2025",
			EndDate:   "August 2025",
		},
		{
			Title:       "Team Communication",
			Description: "Advanced communication and teamwork techniques",
			Topics: models.JSONList(
				"Assertive communication",
				"Conflict management",
				"Group dynamics",
				"Effective feedback",
			),
			Objectives: models.JSONList(
				"Master assertive communication techniques",
				"Resolve conflicts constructively",
				"Facilitate effective team dynamics",
				"Deliver constructive feedback",
			),
			Duration:  "8 weeks",
			StartDate: "September 2025",
			EndDate:   "October 2025",
		},
		{
			Title:       "Strategic Leadership",
			Description: "Building strategic vision and decision making",
			Topics: models.JSONList(
				"Strategic thinking",
				"Decision making",
				"Change management",
				"Transformational leadership",
			),
			Objectives: models.JSONList(
				"Develop strategic thinking",
				"Improve decision making",
				"Lead change processes",
				"Apply transformational leadership",
			),
			Duration:  "8 weeks",
			StartDate: "November 2025",
			EndDate:   "December 2025",
		},
	}

	if err := db.Create(&defaultModules).Error; err != nil {
		return err
	}

	log.Println("Default modules created")
	return nil
}
