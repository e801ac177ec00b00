package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"carecompass.healthdata.org/hospitaldb"
	"carecompass.healthdata.org/internal/models"
)

func (api *RestAPI) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.badRequestResponse(w, r, "invalid json")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Email == "" || req.Password == "" {
		api.badRequestResponse(w, r, "email and password required")
		return
	}

	user, err := api.DB.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, hospitaldb.ErrUserNotFound) {
		api.sendUnauthorized(w, r, "invalid credentials")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		api.sendUnauthorized(w, r, "invalid credentials")
		return
	}

	token, err := api.createToken(user.ID, user.Email)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewOKResponse(models.AuthData{
		Message: "login successful",
		Email:   user.Email,
		Token:   token,
	})
	api.sendResponse(w, r, response)
}

// accountHandler returns the authenticated account, mostly so clients can
// verify a stored token is still valid.
func (api *RestAPI) accountHandler(w http.ResponseWriter, r *http.Request) {
	email := userEmail(r)
	if email == "" {
		api.sendUnauthorized(w, r, "")
		return
	}

	response := models.NewEntryResponse(models.AuthData{
		Message: "authenticated",
		Email:   email,
	})
	api.sendResponse(w, r, response)
}
