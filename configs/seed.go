package configs

import (
	"log"

	"backend/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the first admin account from env credentials. Skipped
// when the account already exists or the credentials are not set.
func SeedAdmin(cfg *Config) error {
	db := DB()
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("username = ?", cfg.AdminUsername).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashed),
		FullName:     "Administrator",
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("seeded admin user", cfg.AdminUsername)
	return nil
}

// SeedSettings inserts the Email.* rows the mail sender reads, empty until
// an admin fills them in through the settings endpoints.
func SeedSettings() error {
	db := DB()

	defaults := []entity.Setting{
		{Key: "Email.SmtpServer", Value: "", Description: "SMTP server host", Category: "Email", IsActive: true},
		{Key: "Email.SmtpPort", Value: "587", Description: "SMTP server port", Category: "Email", IsActive: true},
		{Key: "Email.FromEmail", Value: "", Description: "Sender address", Category: "Email", IsActive: true},
		{Key: "Email.Password", Value: "", Description: "SMTP password", Category: "Email", IsActive: true},
		{Key: "Email.EnableSsl", Value: "true", Description: "Use STARTTLS", Category: "Email", IsActive: true},
	}

	for _, s := range defaults {
		var count int64
		db.Model(&entity.Setting{}).Where("key = ?", s.Key).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&s).Error; err != nil {
			return err
		}
	}
	return nil
}
