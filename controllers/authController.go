package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"carelink-be/config"
	"carelink-be/models"

	authUtils "carelink-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// Signup handles citizen registration. NGOs register through /api/ngo/register.
func Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		log.Println("Error checking existing user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User with this email already exists"})
		return
	}

	user := models.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := user.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
		return
	}

	result, err := userCollection.InsertOne(ctx, user)
	if err != nil {
		log.Println("Error inserting user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
		return
	}

	token, err := authUtils.GenerateToken(user.Email, "user")
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
		return
	}
	setAuthCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user": gin.H{
			"id":        result.InsertedID,
			"name":      user.Name,
			"email":     user.Email,
			"createdAt": user.CreatedAt,
		},
	})
}

// Login authenticates a user, an approved NGO, or the admin, depending on userType.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		UserType string `json:"userType" binding:"required,oneof=user ngo admin"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	if input.UserType == "admin" {
		loginAdmin(c, input.Email, input.Password)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if input.UserType == "ngo" {
		var ngo models.NGO
		err := config.GetCollection("ngos").FindOne(ctx, bson.M{"email": input.Email}).Decode(&ngo)
		if err != nil || !ngo.ComparePassword(input.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		if !ngo.IsApproved {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Your NGO registration is pending approval"})
			return
		}

		token, err := authUtils.GenerateToken(ngo.Email, "ngo")
		if err != nil {
			log.Println("Error generating token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
			return
		}
		setAuthCookie(c, token)

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Login successful",
			"userType": "ngo",
			"ngo":      ngo,
		})
		return
	}

	var user models.User
	err := config.GetCollection("users").FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil || !user.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, err := authUtils.GenerateToken(user.Email, "user")
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
		return
	}
	setAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Login successful",
		"userType": "user",
		"user":     user,
	})
}

// loginAdmin checks the configured admin credentials. With no ADMIN_EMAIL set,
// admin login is effectively disabled.
func loginAdmin(c *gin.Context, email, password string) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || email != adminEmail || password != adminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Admin Credentials"})
		return
	}

	token, err := authUtils.GenerateToken(email, "admin")
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
		return
	}
	setAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Login successful",
		"userType": "admin",
	})
}

// GetMe returns the identity behind the session cookie
func GetMe(c *gin.Context) {
	email, exists := c.Get("email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}
	userType, _ := c.Get("user_type")

	if userType == "admin" {
		c.JSON(http.StatusOK, gin.H{"success": true, "email": email, "userType": "admin"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if userType == "ngo" {
		var ngo models.NGO
		if err := config.GetCollection("ngos").FindOne(ctx, bson.M{"email": email}).Decode(&ngo); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "NGO not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "userType": "ngo", "ngo": ngo})
		return
	}

	var user models.User
	if err := config.GetCollection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "userType": "user", "user": user})
}

// Logout clears the session cookie
func Logout(c *gin.Context) {
	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	c.SetCookie("token", "", -1, "/", domain, environment == "production", true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// setAuthCookie writes the session JWT. In production the domain is left
// empty and SameSite=None so the cookie survives cross-origin requests from
// the hosted frontend.
func setAuthCookie(c *gin.Context, token string) {
	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	sameSite := http.SameSiteLaxMode
	if environment == "production" {
		domain = ""
		sameSite = http.SameSiteNoneMode
	}

	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		MaxAge:   72 * 3600,
		Path:     "/",
		Domain:   domain,
		Secure:   environment == "production",
		HttpOnly: true,
		SameSite: sameSite,
	}
	http.SetCookie(c.Writer, cookie)
}
