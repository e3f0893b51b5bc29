package server

import (
	"log/slog"
	"net/http"

	savesHandlers "uqm-starseed/internal/savestore/handlers"
	serverHandlers "uqm-starseed/internal/server/handlers"
	"uqm-starseed/internal/shared/database"
	"uqm-starseed/internal/shared/redis"
	starmapHandlers "uqm-starseed/internal/starmap/handlers"
)

type Routes struct {
	db       *database.DB
	rdb      *redis.Client
	previews starmapHandlers.Previewer
	seeder   starmapHandlers.Seeder
	saves    savesHandlers.SlotStore
	logger   *slog.Logger
}

func NewRoutes(db *database.DB, rdb *redis.Client, previews starmapHandlers.Previewer, seeder starmapHandlers.Seeder, saves savesHandlers.SlotStore, logger *slog.Logger) *Routes {
	return &Routes{
		db:       db,
		rdb:      rdb,
		previews: previews,
		seeder:   seeder,
		saves:    saves,
		logger:   logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.rdb)
	starmapHandler := starmapHandlers.NewStarmapHandler(r.previews, r.seeder)
	savesHandler := savesHandlers.NewSavesHandler(r.saves)

	mux.Handle("/api/server/health", healthHandler)

	// Starmap previews
	mux.HandleFunc("/api/starmap/{seed}", starmapHandler.GetPreview)
	mux.HandleFunc("/api/starmap/{seed}/verify", starmapHandler.GetVerify)
	mux.HandleFunc("/api/starmap/{seed}/stream", starmapHandler.Stream)

	// Save slots
	mux.HandleFunc("/api/saves", savesHandler.ListSaves)
	mux.HandleFunc("/api/saves/{id}", savesHandler.Slot)
	mux.HandleFunc("/api/saves/{id}/file", savesHandler.Download)

	logger.Info("Routes configured successfully",
		"starmap_endpoints", []string{"/api/starmap/{seed}", "/api/starmap/{seed}/verify", "/api/starmap/{seed}/stream"},
		"save_endpoints", []string{"/api/saves", "/api/saves/{id}", "/api/saves/{id}/file"},
	)

	return mux
}
