package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	appbasket "github.com/tu-usuario/activos-pro/internal/application/basket"
	apptransfer "github.com/tu-usuario/activos-pro/internal/application/transfer"
	"github.com/tu-usuario/activos-pro/internal/application/usecase"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
	"github.com/tu-usuario/activos-pro/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Manager     *appbasket.Manager
	Preflight   *appbasket.Preflight
	Completer   *appbasket.Completer
	Resolver    *appbasket.Resolver
	AssetRepo   repository.AssetRepository
	TransferUC  *apptransfer.UseCase
	WarehouseUC *usecase.WarehouseUseCase
	Metrics     *metrics.Metrics
	JWTSecret   string
}

// Router registra las rutas de la API. Todas las rutas de negocio requieren
// Bearer Token; las mutaciones del flujo exigen además rol de admin o
// bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", metricsMiddleware(deps.Metrics))

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	operators := RequireRole("admin", "bodeguero")

	// Baskets
	baskets := protected.Group("/baskets")
	basketHandler := NewBasketHandler(deps.Manager, deps.Preflight, deps.Completer)
	baskets.Post("/", operators, basketHandler.Create)
	baskets.Get("/", basketHandler.List)
	baskets.Get("/:id", basketHandler.GetByID)
	baskets.Delete("/:id", operators, basketHandler.Delete)
	baskets.Post("/:id/items", operators, basketHandler.AddItem)
	baskets.Put("/:id/items/:assetId", operators, basketHandler.UpdateItem)
	baskets.Delete("/:id/items/:assetId", operators, basketHandler.RemoveItem)
	baskets.Post("/:id/submit", operators, basketHandler.Submit)
	baskets.Post("/:id/cancel", operators, basketHandler.Cancel)
	baskets.Post("/:id/validate", basketHandler.Validate)
	baskets.Post("/:id/complete", operators, basketHandler.Complete)

	// Assets (resolución de escaneos y consulta)
	assets := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.Resolver, deps.AssetRepo)
	assets.Get("/resolve", operators, assetHandler.Resolve)
	assets.Get("/:id", assetHandler.GetByID)

	// Transfers (libro mayor, solo lectura)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Get("/:id/receipt", transferHandler.DownloadReceipt)
	baskets.Get("/:id/transfers", transferHandler.ListByBasket)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole("admin"), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
}

// metricsMiddleware cuenta cada petición por método, ruta y código. Usa la
// ruta registrada (con :params), no la URL cruda, para acotar la cardinalidad.
func metricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		m.HTTPRequests.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}
