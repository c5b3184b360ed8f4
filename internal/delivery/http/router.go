package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"dancemeet/internal/delivery/http/controllers"
	"dancemeet/internal/delivery/http/middleware"
	"dancemeet/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Everything except login and the swagger UI requires a valid bearer token.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	socialController *controllers.SocialController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.Auth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.Handle("POST /auth/logout", auth(http.HandlerFunc(authController.Logout)))
	mux.Handle("GET /auth/session", auth(http.HandlerFunc(authController.Session)))

	// Profile
	mux.Handle("GET /profile", auth(http.HandlerFunc(authController.GetProfile)))
	mux.Handle("PATCH /profile", auth(http.HandlerFunc(authController.UpdateProfile)))

	// Events
	mux.Handle("GET /events", auth(http.HandlerFunc(eventController.List)))
	mux.Handle("POST /events", auth(http.HandlerFunc(eventController.Upsert)))
	mux.Handle("GET /events/{eventID}", auth(http.HandlerFunc(eventController.Get)))
	mux.Handle("POST /events/{eventID}/registration", auth(http.HandlerFunc(eventController.ToggleRegistration)))
	mux.Handle("POST /events/{eventID}/invitations", auth(http.HandlerFunc(eventController.Invite)))

	// Friends
	mux.Handle("GET /friends", auth(http.HandlerFunc(socialController.List)))
	mux.Handle("POST /friends", auth(http.HandlerFunc(socialController.Add)))
	mux.Handle("DELETE /friends/{memberID}", auth(http.HandlerFunc(socialController.Remove)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
