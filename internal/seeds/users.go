package seeds

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ducielo/rencontre-coeur-brise/internal/database"
	"github.com/ducielo/rencontre-coeur-brise/internal/models"
	"github.com/ducielo/rencontre-coeur-brise/internal/services"
)

var firstNames = []string{
	"Camille", "Léa", "Chloé", "Manon", "Inès",
	"Lucas", "Hugo", "Nathan", "Théo", "Louis",
	"Emma", "Jade", "Alice", "Sarah", "Zoé",
	"Gabriel", "Raphaël", "Arthur", "Jules", "Adam",
}

var cities = []string{"Paris", "Lyon", "Marseille", "Bordeaux", "Lille", "Nantes", "Toulouse"}

// Run resets the demo data: 20 users with photos, a web of likes with
// roughly every third pair mutual so matches exist out of the box.
func Run() error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{"notifications", "messages", "matches", "likes", "photos", "users"} {
		if err := database.DB.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users := make([]models.User, 0, len(firstNames))
	for i, name := range firstNames {
		gender := models.GenderFemale
		if i >= 5 && i < 10 || i >= 15 {
			gender = models.GenderMale
		}

		user := models.User{
			Email:       fmt.Sprintf("%s%d@example.com", name, i+1),
			Password:    string(hash),
			FirstName:   name,
			LastName:    "Demo",
			DateOfBirth: time.Date(1990+r.Intn(12), time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC),
			Gender:      gender,
			Location:    cities[r.Intn(len(cities))],
			Bio:         "Profil de démonstration",
			IsActive:    true,
			LastSeen:    time.Now().Add(-time.Duration(r.Intn(72)) * time.Hour),
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", name, err)
		}

		photo := models.Photo{
			UserID:    user.ID,
			URL:       fmt.Sprintf("https://i.pravatar.cc/400?u=%s", user.ID),
			IsPrimary: true,
		}
		if err := database.DB.Create(&photo).Error; err != nil {
			return fmt.Errorf("failed to create photo: %w", err)
		}

		users = append(users, user)
	}
	log.Printf("Created %d demo users", len(users))

	// Likes through the reconciler so mutual pairs become real matches.
	likes, matches := 0, 0
	for i, sender := range users {
		for j, receiver := range users {
			if i == j || r.Intn(100) >= 30 {
				continue
			}

			result, err := services.SendLike(database.Ctx, sender.ID, receiver.ID)
			if err != nil {
				return fmt.Errorf("failed to seed like: %w", err)
			}
			likes++
			if result.IsMatch {
				matches++
			}

			// Every third like is guaranteed mutual.
			if likes%3 == 0 {
				back, err := services.SendLike(database.Ctx, receiver.ID, sender.ID)
				if err != nil {
					return fmt.Errorf("failed to seed mutual like: %w", err)
				}
				likes++
				if back.IsMatch {
					matches++
				}
			}
		}
	}

	log.Printf("Seeded %d likes, %d matches", likes, matches)
	return nil
}
