package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"carecompass.healthdata.org/hospitaldb"
	"carecompass.healthdata.org/internal/models"
	"carecompass.healthdata.org/internal/utils"
)

func (api *RestAPI) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.badRequestResponse(w, r, "invalid json")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	fieldErrors := make(map[string][]string)
	if err := utils.ValidateEmail(req.Email); err != nil {
		fieldErrors["email"] = append(fieldErrors["email"], err.Error())
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		fieldErrors["password"] = append(fieldErrors["password"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	ctx := r.Context()

	exists, err := api.DB.UserExists(ctx, req.Email)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if exists {
		api.badRequestResponse(w, r, "email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	err = api.DB.InsertUser(ctx, uuid.New().String(), req.Email, string(hash))
	if errors.Is(err, hospitaldb.ErrDuplicateEmail) {
		// Concurrent signup won the race after the existence check
		api.badRequestResponse(w, r, "email already registered")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.Logger.Info("account created", "email", req.Email)

	response := models.NewCreatedResponse(models.AuthData{
		Message: "signup successful",
		Email:   req.Email,
	})
	api.sendResponse(w, r, response)
}
