// LazyIcons is a terminal UI for browsing vector icon glyphs and exporting
// them as multi-resolution .ico files.
//
// Usage:
//
//	lazyicons                        start the terminal UI
//	lazyicons list [query]           print matching glyph groups
//	lazyicons export NAME -o FILE    write one icon file
//	lazyicons export-all -o DIR      write every glyph
//	lazyicons inspect FILE           show the images inside an icon file
//
// Configuration is loaded from ~/.lazyicons/config.yaml
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/marjoballabani/lazyicons/pkg/app"
	"github.com/pkg/errors"
)

// Build information, set via ldflags during compilation:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=$(git rev-parse HEAD)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	buildInfo := &app.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	application, err := app.NewApp(buildInfo)
	if err != nil {
		log.Fatal(err)
	}

	if err := application.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, app.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
