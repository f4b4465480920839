package cmd

import (
	"errors"
	"fmt"
	"log"

	userdm "github.com/barangay/docucheck/internal/core/datamodel/user"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with staff accounts",
	Long:  `Seed the database with staff accounts for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			for _, table := range []string{"audit_logs", "barangay_clearance", "certificate_of_indigency", "business_permit", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		accounts := []userdm.User{
			{Name: "secretary", PasswordHash: string(hash), Role: "staff", IsActive: true},
			{Name: "captain", PasswordHash: string(hash), Role: "admin", IsActive: true},
		}

		for _, account := range accounts {
			var existing userdm.User
			err := db.Where("name = ?", account.Name).First(&existing).Error
			if err == nil {
				fmt.Printf("user %s already exists, skipping\n", account.Name)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Fatalf("failed to check user %s: %v", account.Name, err)
			}

			if err := db.Create(&account).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", account.Name, err)
			}
			fmt.Printf("Seeded user: %s (role %s)\n", account.Name, account.Role)
		}

		fmt.Println("Seeding complete. Default password is \"password\"; change it before any real deployment.")
	},
}
