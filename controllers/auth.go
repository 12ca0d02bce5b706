package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tiara-mobile-zone/models"
	"tiara-mobile-zone/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// AuthController handles the two authentication flows: hashed user
// passwords and the seeded admin account.
type AuthController struct {
	UserCollection  *mongo.Collection
	AdminCollection *mongo.Collection
	DB              *mongo.Database
}

// NewAuthController creates a new AuthController
func NewAuthController(client *mongo.Client) *AuthController {
	db := client.Database(utils.DatabaseName)
	return &AuthController{
		UserCollection:  db.Collection("users"),
		AdminCollection: db.Collection("admin_users"),
		DB:              db,
	}
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type adminCredentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Success bool              `json:"success"`
	User    models.PublicUser `json:"user"`
	Token   string            `json:"token"`
}

// Signup handles user registration
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := utils.Validate.Struct(&creds); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := ac.UserCollection.CountDocuments(ctx, bson.M{"email": creds.Email})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	id, err := utils.NextSequence(ctx, ac.DB, "users")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error signing up")
		return
	}

	user := models.User{
		ID:        id,
		Email:     creds.Email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := ac.UserCollection.InsertOne(ctx, user); err != nil {
		// The unique email index may race a concurrent signup.
		if mongo.IsDuplicateKeyError(err) {
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error signing up")
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, utils.RoleUser)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Success: true,
		User:    models.PublicUser{ID: user.ID, Email: user.Email},
		Token:   token,
	})
}

// Login handles user authentication. The error message is identical for
// unknown email and wrong password, so it does not leak which emails
// are registered.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := ac.UserCollection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&user)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, utils.RoleUser)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Success: true,
		User:    models.PublicUser{ID: user.ID, Email: user.Email},
		Token:   token,
	})
}

// AdminLogin authenticates against the seeded admin account. The stored
// password is compared in clear text to match provisioning; success
// yields a server-issued expiring token instead of a client-side flag.
func (ac *AuthController) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var creds adminCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := utils.Validate.Struct(&creds); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var admin models.AdminUser
	err := ac.AdminCollection.FindOne(ctx, bson.M{"username": creds.Username}).Decode(&admin)
	if err != nil || admin.Password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}

	token, err := utils.GenerateJWT(admin.ID, admin.Username, utils.RoleAdmin)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}
