package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"pwdassist/internal/auth"
	"pwdassist/internal/config"
	"pwdassist/internal/db"
	"pwdassist/internal/model"
	"pwdassist/internal/repository"
)

type seedUser struct {
	fullName string
	username string
	email    string
	password string
	role     auth.Role
}

var demoUsers = []seedUser{
	{fullName: "Jane Doe", username: "jane", email: "jane@example.com", password: "secret1", role: auth.RoleIndividual},
	{fullName: "Helping Hands", username: "helpinghands", email: "contact@helpinghands.org", password: "secret1", role: auth.RoleNGO},
}

var demoStudents = []model.Student{
	{Name: "Aarav Kumar", Age: 12, DisabilityType: "visual impairment", CertificateFile: "aarav_cert.pdf"},
	{Name: "Meera Shah", Age: 15, DisabilityType: "hearing impairment", CertificateFile: "meera_cert.pdf"},
	{Name: "Rohan Patel", Age: 10, DisabilityType: "locomotor disability", CertificateFile: "rohan_cert.pdf"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Student{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	studentRepo := repository.NewStudentRepository(gormDB)
	ctx := context.Background()

	var ngoID uint
	created := 0
	for _, su := range demoUsers {
		existing, err := userRepo.FindByUsername(ctx, su.username)
		if err == nil {
			log.Printf("User %q already exists, skipping", su.username)
			if su.role == auth.RoleNGO {
				ngoID = existing.ID
			}
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Error checking user %q: %v", su.username, err)
		}

		hash, err := auth.HashPassword(su.password)
		if err != nil {
			log.Fatalf("Failed to hash password for %q: %v", su.username, err)
		}
		user := &model.User{
			FullName:     su.fullName,
			Username:     su.username,
			Email:        su.email,
			PasswordHash: hash,
			Role:         string(su.role),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %q: %v", su.username, err)
		}
		if su.role == auth.RoleNGO {
			ngoID = user.ID
		}
		created++
	}
	log.Printf("Users seeded: %d created", created)

	if ngoID == 0 {
		log.Println("No NGO account available, skipping students")
		return
	}

	existing, err := studentRepo.ListByNgo(ctx, ngoID)
	if err != nil {
		log.Fatalf("Failed to list students: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("NGO already has %d students, skipping", len(existing))
		return
	}

	for _, st := range demoStudents {
		st.NgoID = ngoID
		if err := studentRepo.Create(ctx, &st); err != nil {
			log.Fatalf("Failed to create student %q: %v", st.Name, err)
		}
	}
	log.Printf("Students seeded: %d created", len(demoStudents))

	log.Println("Seed completed successfully!")
}
