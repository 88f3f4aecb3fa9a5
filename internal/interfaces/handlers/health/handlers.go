package health

import (
	"context"
	"time"

	"lumina-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// DBPinger abstracts the database ping for tests.
type DBPinger interface {
	Ping() error
}

// Handlers serves the JSON health view.
type Handlers struct {
	Rdb *redis.Client
	DB  DBPinger
}

// JSON GET /health/json — connection status plus the request stats recorded
// by the health marker middleware.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx := context.Background()

	redisStatus := "ok"
	if h.Rdb == nil {
		redisStatus = "not configured"
	} else if err := h.Rdb.Ping(ctx).Err(); err != nil {
		redisStatus = "error: " + err.Error()
	}

	dbStatus := "ok"
	if h.DB == nil {
		dbStatus = "not configured"
	} else if err := h.DB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	stats := fiber.Map{}
	if h.Rdb != nil {
		reqTotal, _ := h.Rdb.Get(ctx, middleware.KeyReqTotal).Int64()
		reqErrors, _ := h.Rdb.Get(ctx, middleware.KeyReqErrors).Int64()
		resTime, _ := h.Rdb.Get(ctx, middleware.KeyResTime).Float64()
		resCount, _ := h.Rdb.Get(ctx, middleware.KeyResCount).Int64()
		avgMs := 0.0
		if resCount > 0 {
			avgMs = resTime / float64(resCount)
		}
		stats = fiber.Map{
			"requests_total":  reqTotal,
			"requests_errors": reqErrors,
			"avg_response_ms": avgMs,
		}
	}

	return c.JSON(fiber.Map{
		"time":     time.Now(),
		"database": dbStatus,
		"redis":    redisStatus,
		"stats":    stats,
	})
}
