package database

import (
	"fmt"

	"lumina-backend/internal/domain"
	"lumina-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN (Supabase/Postgres pooler URL).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers
// (e.g. PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Property{})
}

// EnsureAdmin creates the seed admin account if no user with that email
// exists. A blank email or password is a no-op; a malformed email or a weak
// password fails startup rather than seeding an unusable account.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if !validation.IsValidEmail(email) {
		return fmt.Errorf("admin seed: invalid email %q", email)
	}
	if !validation.IsValidPassword(password) {
		return fmt.Errorf("admin seed: password must be 8+ chars with a letter, a number and a special character")
	}
	var count int64
	if err := db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&domain.User{Email: email, PasswordHash: string(hash)}).Error
}
