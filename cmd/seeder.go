package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/docconnect/docconnect/internal/core/datamodel/doctor"
	"github.com/docconnect/docconnect/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"webhook_events", "payments", "subscriptions", "chat_sessions", "credentials", "doctor_profiles", "profiles"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		seedProfile := func(email, fullName, role string) *user.Profile {
			var existing user.Profile
			err := db.Where("email = ?", email).First(&existing).Error
			if err == nil {
				fmt.Printf("%s user already exists: %s\n", role, email)
				return &existing
			}

			profile := &user.Profile{
				Email:        email,
				FullName:     fullName,
				Role:         role,
				PasswordHash: string(hash),
			}
			if err := db.Create(profile).Error; err != nil {
				log.Fatalf("failed to insert %s user: %v", role, err)
			}
			fmt.Printf("Seeded %s user: %s\n", role, email)
			return profile
		}

		seedProfile("admin@docconnect.test", "Ada Admin", user.RoleAdmin)
		seedProfile("patient@docconnect.test", "Chinedu Patient", user.RolePatient)
		verifiedDoc := seedProfile("dr.amaka@docconnect.test", "Dr. Amaka Obi", user.RoleDoctor)
		pendingDoc := seedProfile("dr.tunde@docconnect.test", "Dr. Tunde Bakare", user.RoleDoctor)

		oneTimeRate := int64(500000)      // 5,000 naira
		subscriptionRate := int64(1500000) // 15,000 naira
		state := "Lagos"
		city := "Ikeja"
		bio := "Consultant family physician with a focus on preventive care."

		seedDoctorProfile := func(p *user.Profile, slug, status string, withRates bool) {
			var existing doctor.DoctorProfile
			if err := db.Where("user_id = ?", p.ID).First(&existing).Error; err == nil {
				fmt.Println("doctor profile already exists:", slug)
				return
			}

			profile := &doctor.DoctorProfile{
				UserID:             p.ID,
				Slug:               slug,
				VerificationStatus: status,
				LocationState:      &state,
				LocationCity:       &city,
				Bio:                &bio,
				IsOnline:           status == doctor.VerificationVerified,
			}
			if withRates {
				profile.OneTimeRateKobo = &oneTimeRate
				profile.SubscriptionRateKobo = &subscriptionRate
			}
			if err := db.Create(profile).Error; err != nil {
				log.Fatalf("failed to insert doctor profile %s: %v", slug, err)
			}

			credential := &doctor.Credential{
				DoctorID: profile.ID,
				DocType:  "mdcn_license",
				FileURL:  "https://files.docconnect.test/credentials/" + slug + ".pdf",
				FileName: slug + ".pdf",
			}
			if status == doctor.VerificationVerified {
				credential.Status = doctor.CredentialApproved
			}
			if err := db.Create(credential).Error; err != nil {
				log.Fatalf("failed to insert credential for %s: %v", slug, err)
			}

			fmt.Println("Seeded doctor profile:", slug)
		}

		seedDoctorProfile(verifiedDoc, "dr-amaka-obi", doctor.VerificationVerified, true)
		seedDoctorProfile(pendingDoc, "dr-tunde-bakare", doctor.VerificationInReview, false)

		fmt.Println("Seed data loaded successfully")
	},
}
