package handler

import (
	"net/http"
	"net/url"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/delivery/http/middleware"
	"immunization-tracker/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// childID reads the {id} path variable. It writes the error response itself
// and reports false when the id is not a UUID.
func childID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid child ID")
		return uuid.Nil, false
	}
	return id, true
}

// currentUser reads the operator id set by the auth middleware.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, false
	}
	return userID, true
}

func childFilterFromQuery(q url.Values) dto.ChildFilterRequest {
	return dto.ChildFilterRequest{
		Name:      q.Get("name"),
		Gender:    q.Get("gender"),
		Residence: q.Get("residence"),
		BornFrom:  q.Get("born_from"),
		BornTo:    q.Get("born_to"),
	}
}
