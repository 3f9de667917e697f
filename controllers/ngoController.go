package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"carelink-be/config"
	"carelink-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ngoRegistrationInput struct {
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=6"`
	NgoName            string `json:"ngoName" binding:"required"`
	RegistrationNumber string `json:"registrationNumber" binding:"required"`
	President          struct {
		Name    string `json:"name" binding:"required"`
		Contact string `json:"contact" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
	} `json:"president" binding:"required"`
	ResponsibleMembers []struct {
		Name     string `json:"name" binding:"required"`
		Position string `json:"position" binding:"required"`
		Contact  string `json:"contact" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
	} `json:"responsibleMembers" binding:"dive"`
	TotalMembers int    `json:"totalMembers" binding:"required,min=1"`
	Strength     string `json:"strength" binding:"required"`
	PastWorks    string `json:"pastWorks" binding:"required"`
	Location     string `json:"location" binding:"required"`
}

// RegisterNGO handles a full NGO registration. The record starts unapproved
// and stays invisible to login until an admin approves it.
func RegisterNGO(c *gin.Context) {
	var input ngoRegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if !models.ValidNGOStrength(input.Strength) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid strength"})
		return
	}

	if len(input.ResponsibleMembers) > models.MaxResponsibleMembers {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Exceeds the limit of 5 responsible members"})
		return
	}

	ngoCollection := config.GetCollection("ngos")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := ngoCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		log.Println("Error checking existing NGO:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "NGO with this email already exists"})
		return
	}

	count, err = ngoCollection.CountDocuments(ctx, bson.M{"registrationNumber": input.RegistrationNumber})
	if err != nil {
		log.Println("Error checking existing NGO:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "NGO with this registration number already exists"})
		return
	}

	members := make([]models.ResponsibleMember, 0, len(input.ResponsibleMembers))
	for _, m := range input.ResponsibleMembers {
		members = append(members, models.ResponsibleMember{
			Name:     m.Name,
			Position: m.Position,
			Contact:  m.Contact,
			Email:    m.Email,
		})
	}

	ngo := models.NGO{
		Email:              input.Email,
		Password:           input.Password,
		NgoName:            input.NgoName,
		RegistrationNumber: input.RegistrationNumber,
		President: models.President{
			Name:    input.President.Name,
			Contact: input.President.Contact,
			Email:   input.President.Email,
		},
		ResponsibleMembers: members,
		TotalMembers:       input.TotalMembers,
		Strength:           models.NGOStrength(input.Strength),
		PastWorks:          input.PastWorks,
		Location:           input.Location,
		IsApproved:         false,
		RegisteredAt:       time.Now(),
	}

	if err := ngo.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
		return
	}

	if _, err := ngoCollection.InsertOne(ctx, ngo); err != nil {
		log.Println("Error inserting NGO:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error during registration"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "NGO registered successfully. Please wait for admin approval.",
	})
}

// GetPendingNGOs lists registrations awaiting admin approval, newest first
func GetPendingNGOs(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "registeredAt", Value: -1}})

	cursor, err := config.GetCollection("ngos").Find(ctx, bson.M{"isApproved": false}, findOptions)
	if err != nil {
		log.Println("Error fetching pending NGOs:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching pending NGOs"})
		return
	}
	defer cursor.Close(ctx)

	var ngos []models.NGO
	if err := cursor.All(ctx, &ngos); err != nil {
		log.Println("Error decoding pending NGOs:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching pending NGOs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": ngos})
}

// ApproveNGO sets or clears the approval flag on an NGO registration
func ApproveNGO(c *gin.Context) {
	ngoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "NGO not found"})
		return
	}

	var input struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "approve field is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.GetCollection("ngos").UpdateOne(
		ctx,
		bson.M{"_id": ngoID},
		bson.M{"$set": bson.M{"isApproved": *input.Approve}},
	)
	if err != nil {
		log.Println("Error updating NGO approval status:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while updating NGO status"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "NGO not found"})
		return
	}

	message := "NGO rejected successfully"
	if *input.Approve {
		message = "NGO approved successfully"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
