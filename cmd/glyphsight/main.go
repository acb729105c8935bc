// glyphsight runs a single local viewer against a freshly generated map,
// without any networking. Build:
//
//	go build -o glyphsight ./cmd/glyphsight
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/glyphsight/glyphsight/geom"
	"github.com/glyphsight/glyphsight/internal/observatory"

	"github.com/gdamore/tcell/v2"
)

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	srv := observatory.NewServer(geom.Point{X: 60, Y: 40}, rng, logger)
	go srv.Run()

	id, color := srv.NextSessionID()
	sess := observatory.NewSession(id, "you", color, screen, observatory.DefaultRadius)
	srv.AddSession(sess)
	defer srv.RemoveSession(sess)

	srv.RunLoop(sess)
}
