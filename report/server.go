package report

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.dedis.ch/onet/v3/log"

	"github.com/ldsec/platedrift/drift"
)

// NewRouter serves a finished analysis:
//
//	GET /         HTML charts
//	GET /summary  summary record as JSON
//	GET /samples  per-sample fitted values as JSON
//	GET /healthz  liveness
func NewRouter(res *drift.Result, bins int) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), accessLog)

	samples := Samples(res)

	engine.GET("/", func(c *gin.Context) {
		var buf bytes.Buffer
		if err := RenderHTML(&buf, res, bins); err != nil {
			log.Error(err)
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	})
	engine.GET("/summary", func(c *gin.Context) {
		c.JSON(http.StatusOK, res.Summary)
	})
	engine.GET("/samples", func(c *gin.Context) {
		c.JSON(http.StatusOK, samples)
	})
	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return engine
}

func accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	log.Lvlf3("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Lvl1("Serving report on", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
