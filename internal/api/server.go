package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fastprodman/betpoa/internal/config"
)

// NewServer creates the *http.Server for the wallet API.
func NewServer(cfg config.HTTPConfig, svc Wallet) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           NewRouter(svc, cfg.CORSAllowedOrigins),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
