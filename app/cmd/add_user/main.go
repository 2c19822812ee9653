package main

import (
	"fmt"
	"os"

	"github.com/matti7866/api-sub001/app/config"
	"github.com/matti7866/api-sub001/app/database"
	"github.com/matti7866/api-sub001/app/models"
	"github.com/matti7866/api-sub001/app/routes/auth"
)

// Bootstraps an admin user: go run ./app/cmd/add_user email password first last
func main() {
	if len(os.Args) < 5 {
		fmt.Println("Usage: add_user <email> <password> <first_name> <last_name>")
		return
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	hashed, err := auth.HashPassword(os.Args[2])
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		return
	}

	user := &models.User{
		Email:     os.Args[1],
		Password:  hashed,
		FirstName: os.Args[3],
		LastName:  os.Args[4],
	}

	if err := database.CreateUser(db, user, "admin"); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
