// FILE: example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/sawlog"
	"github.com/lixenwraith/sawlog/compat"
)

func main() {
	logger, err := sawlog.NewBuilder().
		Output("/var/log/fasthttp/server.log").
		LevelString("info").
		Sanitize("txt").
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	// Create fasthttp adapter with custom severity detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultSeverity(sawlog.SeverityInfo),
		compat.WithSeverityDetector(customSeverityDetector),
	)

	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			requestHandler(logger, ctx)
		},
		Logger: fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	logger.Notice("starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Error("server stopped: %v", err)
	}
}

func requestHandler(logger *sawlog.Logger, ctx *fasthttp.RequestCtx) {
	// Request paths are attacker controlled, the txt sanitizer keeps them on one line
	logger.Info("%s %s from %s", ctx.Method(), ctx.Path(), ctx.RemoteAddr())
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customSeverityDetector(msg string) sawlog.Severity {
	if strings.Contains(msg, "connection cannot be served") {
		return sawlog.SeverityWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return sawlog.SeverityError
	}

	// Fall back to keyword detection
	return compat.DetectSeverity(msg)
}
