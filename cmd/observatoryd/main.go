// observatoryd starts an SSH server where any number of clients connect and
// each gets their own field-of-view sweep over one shared map. Build:
//
//	go build -o observatoryd ./cmd/observatoryd
//
// Usage:
//
//	./observatoryd [--port 2222] [--key observatory_host_key] [--width 60] [--height 40]
//
// Connect from any terminal:
//
//	ssh -p 2222 localhost
package main

import (
	cryptorand "crypto/rand"
	"crypto/ed25519"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"log/slog"
	mathrand "math/rand"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/glyphsight/glyphsight/geom"
	"github.com/glyphsight/glyphsight/internal/observatory"
	internalssh "github.com/glyphsight/glyphsight/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

// allowedTerms is the set of TERM values accepted from SSH clients.
// Anything not in this set is replaced with "xterm-256color".
var allowedTerms = map[string]bool{
	"xterm-256color":        true,
	"xterm":                 true,
	"xterm-color":           true,
	"screen-256color":       true,
	"screen":                true,
	"tmux-256color":         true,
	"tmux":                  true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

const maxUsernameLen = 16

// sanitizeName cleans a username for display: strips non-printable runes and
// truncates to maxUsernameLen.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsPrint(r) && !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	runes := []rune(b.String())
	if len(runes) > maxUsernameLen {
		runes = runes[:maxUsernameLen]
	}
	return string(runes)
}

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "observatory_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	width := flag.Int("width", 60, "Map width")
	height := flag.Int("height", 40, "Map height")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	signer := loadOrCreateHostKey(*keyFile, logger)
	rng := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	srv := observatory.NewServer(geom.Point{X: *width, Y: *height}, rng, logger)

	go srv.Run()

	sshSrv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", *port),
		IdleTimeout: 10 * time.Minute,
		MaxTimeout:  4 * time.Hour,
		Handler: func(s gossh.Session) {
			handleSession(srv, s, logger)
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("observatory listening", "port", *port)
	log.Fatal(sshSrv.ListenAndServe())
}

// termMu serializes os.Setenv("TERM") around tcell screen creation.
// Multiple goroutines may create screens concurrently.
var termMu sync.Mutex

// handleSession is the gliderlabs SSH handler for one connection.
func handleSession(srv *observatory.Server, s gossh.Session, logger *slog.Logger) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}

	term := "xterm-256color"
	for _, env := range s.Environ() {
		if strings.HasPrefix(env, "TERM=") {
			candidate := env[5:]
			if allowedTerms[candidate] {
				term = candidate
			}
			break
		}
	}

	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	name := sanitizeName(s.User())
	if name == "" {
		name = sanitizeName(s.RemoteAddr().String())
	}
	if name == "" {
		name = "viewer"
	}

	sessID, color := srv.NextSessionID()
	sess := observatory.NewSession(sessID, name, color, screen, observatory.DefaultRadius)

	srv.AddSession(sess)
	defer srv.RemoveSession(sess)

	logger.Info("session started", "name", name, "remote", s.RemoteAddr().String())
	srv.RunLoop(sess)
}

// ─── host key ────────────────────────────────────────────────────────────────

func loadOrCreateHostKey(path string, logger *slog.Logger) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer
		}
	}

	logger.Info("generating new host key", "path", path)
	_, key, err := ed25519.GenerateKey(cryptorand.Reader)
	if err != nil {
		log.Fatalf("generate host key: %v", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Fatalf("create signer: %v", err)
	}
	if pemBlock, err := xssh.MarshalPrivateKey(key, "observatory host key"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0600)
	}
	return signer
}
