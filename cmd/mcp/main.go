package main

import (
	"flag"
	"log"

	"lesson-notes-be/internal/config"
	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/pkg/knowledge"
	"lesson-notes-be/pkg/render"

	"github.com/mark3labs/mcp-go/server"
)

func main() {
	httpAddr := flag.String("http", "", "HTTP server address (e.g., ':8080'); stdio when empty")
	flag.Parse()

	cfg := config.Load()
	// stdout belongs to the stdio transport, so logs go to the file only.
	toolLogger := logger.NewIsolatedLogger("logs/mcp.log")
	defer toolLogger.Sync()

	tools := &toolSet{
		documents: knowledge.NewLoader(cfg.Knowledge.Dir, toolLogger),
		renderer: render.NewRenderer(render.Options{
			MathCSSPath:   cfg.Export.MathCSSPath,
			WatermarkPath: cfg.Export.WatermarkPath,
		}, nil, toolLogger),
		maxChars: cfg.Knowledge.MaxChars,
	}

	s := newServer(tools)

	if *httpAddr != "" {
		log.Printf("Starting MCP server on HTTP address: %s", *httpAddr)
		if err := server.NewStreamableHTTPServer(s).Start(*httpAddr); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := server.ServeStdio(s); err != nil {
		log.Fatal(err)
	}
}
