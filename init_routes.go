// Package main — HTTP route registration.
package main

import (
	"fmt"
	"net/http"

	"github.com/eralpk/chirp/handlers"
	"github.com/eralpk/chirp/middleware"
	"github.com/eralpk/chirp/pkg/token"
)

// initRoutes, tüm API endpoint'lerini mux'a bağlar.
//
// Refresh ve logout GET'tir ve auth middleware arkasında DEĞİLDİR:
// refresh'in derdi zaten access token'ın ölmüş olması, logout ise
// her durumda çalışmalı (token geçersiz olsa bile cookie'ler temizlenir).
func initRoutes(
	mux *http.ServeMux,
	authHandler *handlers.AuthHandler,
	sessionHandler *handlers.SessionHandler,
	codec *token.Codec,
) {
	authMw := middleware.Authenticate(codec)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw(handler)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok","service":"chirp"}`)
	})

	// Auth — public endpoint'ler
	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("GET /auth/refresh", authHandler.Refresh)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/verify/{code}", authHandler.VerifyEmail)
	mux.HandleFunc("POST /auth/password/forgot", authHandler.ForgotPassword)
	mux.HandleFunc("POST /auth/password/reset", authHandler.ResetPassword)

	// Protected endpoint'ler
	mux.Handle("GET /auth/user", auth(authHandler.Me))
	mux.Handle("GET /session", auth(sessionHandler.List))
	mux.Handle("DELETE /session/{id}", auth(sessionHandler.Delete))
}
