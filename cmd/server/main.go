package main

import (
	"log"
	"net/http"

	"infobus/internal/config"
	"infobus/internal/controllers"
	"infobus/internal/geo"
	"infobus/internal/logger"
	"infobus/internal/middleware"
	"infobus/internal/routes"
	"infobus/internal/services"
	"infobus/internal/store"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// External collaborators for route enrichment
	geocoder := geo.NewNominatimClient(config.GetEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"))
	router := geo.NewOSRMClient(config.GetEnv("ROUTER_BASE_URL", "https://router.project-osrm.org"))
	locality := config.GetEnv("GEOCODE_LOCALITY", "Indaiatuba, SP")

	routeStore := store.NewGormRouteStore(config.DB)
	placeCache := store.NewGormPlaceCache(config.DB)
	enricher := services.NewEnricher(geocoder, router, placeCache, locality)
	controllers.Setup(services.NewRouteService(routeStore, enricher))

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.GetEnv("HTTP_ADDR", "0.0.0.0:8080")
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
