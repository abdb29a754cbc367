package climate

import (
	"context"
	"database/sql"
	"net/http"

	"surfsup-server/internal/modules/climate/controller"
	"surfsup-server/internal/modules/climate/repository"
	"surfsup-server/internal/modules/climate/service"
	"surfsup-server/internal/modules/climate/store"
)

// LoadStore reads the whole dataset from db into an immutable Store.
func LoadStore(ctx context.Context, db *sql.DB) (*store.Store, error) {
	return store.Load(ctx, repository.NewRepository(db))
}

func RegisterFeature(mux *http.ServeMux, s *store.Store) {
	climateService := service.NewService(s)
	climateController := controller.NewClimateController(climateService)
	climateController.RegisterRoutes(mux)
}
