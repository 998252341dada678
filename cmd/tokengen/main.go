// This is a **development token service**: it mints editor JWTs for a
// requested email and company slug so the protected endpoints can be
// exercised without the full login flow.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/openhire/pagebuilder/internal/builder/auth"
)

const (
	defaultPort   = "8081"
	defaultSecret = "jwt_secret"
)

// TokenResponse represents the response structure
type TokenResponse struct {
	Token string `json:"token"`
}

// tokenHandler generates an editor JWT and returns it in a JSON response.
// The email and slug query parameters name the identity to mint.
func tokenHandler(w http.ResponseWriter, r *http.Request) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = defaultSecret
	}

	email := r.URL.Query().Get("email")
	slug := r.URL.Query().Get("slug")
	if email == "" || slug == "" {
		http.Error(w, "email and slug query parameters are required", http.StatusBadRequest)
		return
	}

	manager := auth.NewJWTManager(secret, 24*time.Hour)
	token, err := manager.GenerateToken(uuid.New(), email, slug)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(TokenResponse{Token: token}); err != nil {
		http.Error(w, "Failed to encode token", http.StatusInternalServerError)
	}
}

func main() {
	port := os.Getenv("TOKENGEN_PORT")
	if port == "" {
		port = defaultPort
	}
	http.HandleFunc("/token", tokenHandler)

	log.Printf("Token service running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
