package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"storefront-backend/config"
	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
	"storefront-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// Command flags
	createUser  = flag.Bool("create", false, "Create a new user")
	seedCatalog = flag.Bool("seed", false, "Seed the product catalog with random products")
	purgeTokens = flag.Bool("purge", false, "Delete expired revoked token rows")

	// User data flags
	email     = flag.String("email", "", "User's email")
	password  = flag.String("password", "", "User's password")
	firstName = flag.String("first-name", "", "User's first name")
	lastName  = flag.String("last-name", "", "User's last name")

	// Seed flags
	seedCount = flag.Int("count", 200, "Number of products to seed")
)

var productCategories = []string{
	"Electronics", "Clothing", "Home & Kitchen", "Sports & Outdoors",
	"Books", "Toys & Games", "Health & Beauty", "Automotive",
}

var productAdjectives = []string{
	"Premium", "Professional", "Deluxe", "Essential", "Advanced", "Classic",
	"Modern", "Compact", "Ultra", "Smart", "Eco-Friendly", "Portable",
}

var productNouns = []string{
	"Device", "Kit", "Set", "Bundle", "Collection", "System",
	"Tool", "Accessory", "Solution", "Package",
}

var productDescriptions = []string{
	"High-quality product designed for everyday use.",
	"Perfect for both professionals and enthusiasts.",
	"Innovative design meets exceptional functionality.",
	"Built to last with premium materials.",
	"Experience the difference with this outstanding product.",
	"Carefully crafted to meet your needs.",
	"The perfect addition to your collection.",
	"Engineered for performance and reliability.",
	"Exceptional value for money.",
	"Trusted by thousands of satisfied customers.",
}

func main() {
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := database.Initialize(&cfg.Database); err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		fmt.Printf("Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *createUser:
		runCreateUser()
	case *seedCatalog:
		runSeedCatalog()
	case *purgeTokens:
		runPurgeTokens()
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func runCreateUser() {
	if *email == "" || *password == "" {
		fmt.Println("Both -email and -password are required")
		os.Exit(1)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Email:     *email,
		Password:  string(hashedPassword),
		FirstName: *firstName,
		LastName:  *lastName,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	userRepo := repository.NewUserRepository(database.GetDB())
	if err := userRepo.CreateUser(user); err != nil {
		fmt.Printf("Failed to create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created user %s (%s)\n", user.Email, user.ID)
}

func runSeedCatalog() {
	productRepo := repository.NewProductRepository(database.GetDB())

	created := 0
	for i := 0; i < *seedCount; i++ {
		name := fmt.Sprintf("%s %s %s",
			pick(productAdjectives),
			pick(productCategories),
			pick(productNouns),
		)
		description := pick(productDescriptions)
		price := float64(rand.Intn(99000)+1000) / 100 // $10.00 - $999.99

		product := &models.Product{
			Name:        name,
			Description: &description,
			Price:       price,
		}

		if err := productRepo.CreateProduct(product); err != nil {
			fmt.Printf("Failed to create product: %v\n", err)
			os.Exit(1)
		}
		created++
	}

	fmt.Printf("Seeded %d products\n", created)
}

func runPurgeTokens() {
	revocationRepo := repository.NewRevocationRepository(database.GetDB())

	deleted, err := revocationRepo.DeleteExpired()
	if err != nil {
		fmt.Printf("Failed to purge revoked tokens: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Deleted %d expired revoked token rows\n", deleted)
}

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}
