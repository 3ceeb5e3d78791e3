package handlers

import (
	"log"
	"net/http"

	"server/auth"
	"server/models"

	"github.com/gin-gonic/gin"
)

// UserSync upserts the caller's profile from the verified identity. It is
// invoked by the client once after sign-in and is idempotent.
func UserSync(c *gin.Context, identity *auth.Identity) {
	created, err := models.SyncUser(identity.UserID, identity.Email, identity.Name)
	if err != nil {
		log.Printf("User sync failed for %s: %v", identity.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "user already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user saved"})
}
