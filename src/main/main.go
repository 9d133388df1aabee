package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/codingABI/abiSnip/src/clipboard"
	"github.com/codingABI/abiSnip/src/eventloop"
	"github.com/codingABI/abiSnip/src/gate"
	"github.com/codingABI/abiSnip/src/hotkey"
	"github.com/codingABI/abiSnip/src/logutil"
	"github.com/codingABI/abiSnip/src/monitor"
	"github.com/codingABI/abiSnip/src/overlay"
	"github.com/codingABI/abiSnip/src/persist"
	"github.com/codingABI/abiSnip/src/screenshot"
	"github.com/codingABI/abiSnip/src/session"
	"github.com/codingABI/abiSnip/src/settings"
	"github.com/codingABI/abiSnip/src/tray"
)

const version = "1.0.0"

// Fixed localhost port used as a single-instance lock.
const instancePort = 51423

// normalizeFlagDashes maps GNU-style --flag to Go's -flag.
func normalizeFlagDashes() {
	for i := 1; i < len(os.Args); i++ {
		if strings.HasPrefix(os.Args[i], "--") && len(os.Args[i]) > 2 {
			os.Args[i] = os.Args[i][1:]
		}
	}
}

func main() {
	// DPI awareness must be set before any window or metrics call.
	enableDPIAwareness()

	// The tray loop needs the main OS thread on some platforms.
	runtime.LockOSThread()

	once := flag.Bool("once", false, "Capture the whole desktop once and exit")
	onlyClipboard := flag.Bool("ac", false, "Save to clipboard only, overriding settings")
	onlyFile := flag.Bool("af", false, "Save to file only, overriding settings")
	openFolder := flag.Bool("folder", false, "Open the screenshot folder and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")
	debug := flag.Bool("debug", false, "Write a debug log file")
	normalizeFlagDashes()
	flag.Parse()

	logutil.Setup(*debug)

	if *showVersion {
		fmt.Printf("abiSnip %s\n", version)
		return
	}

	cfg := settings.NewResolver(settings.NewStore())

	if *openFolder {
		dir, _ := cfg.Path(fallbackDir())
		if err := openPath(dir); err != nil {
			log.Fatalf("Opening %s failed: %v", dir, err)
		}
		return
	}

	if *once {
		if err := captureOnce(cfg, *onlyClipboard, *onlyFile); err != nil {
			log.Fatalf("One-shot capture failed: %v", err)
		}
		return
	}

	// Single-instance pre-flight: whoever binds the port is the
	// resident instance.
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", instancePort))
	if err != nil {
		fmt.Fprintf(os.Stderr, "abiSnip is already running\n")
		os.Exit(1)
	}
	defer listener.Close()

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
	}

	g := gate.New()
	ctrl := session.New(session.Options{
		Host:        overlay.NewHeadless(),
		Settings:    cfg,
		Gate:        g,
		FallbackDir: fallbackDir(),
	})
	loop := eventloop.New(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	// The system snipping tool may also claim PrintScreen; releasing
	// the key is a Windows registry tweak.
	releaseSnippingKey(cfg)

	hotkey.Listen(loop.Trigger)
	defer hotkey.Stop()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		tray.Quit()
	}()

	tray.Run(trayActions(loop, ctrl, cfg, g), func() tray.MenuState {
		return menuState(cfg, ctrl)
	}, func() {
		cancel()
		log.Printf("abiSnip exiting")
	})
}

func trayActions(loop *eventloop.Loop, ctrl *session.Controller, cfg *settings.Resolver, g *gate.Gate) tray.Actions {
	return tray.Actions{
		Capture: loop.Trigger,
		CaptureDelayed: func() {
			// Arming waits for any running session or dialog, the
			// delay itself runs unlocked.
			g.Acquire()
			g.Release()
			delay := cfg.Int(settings.ScreenshotDelay).Value
			loop.TriggerDelayed(time.Duration(delay) * time.Second)
		},
		OpenFolder: func() {
			dir, _ := cfg.Path(fallbackDir())
			if err := openPath(dir); err != nil {
				log.Printf("Opening %s failed: %v", dir, err)
			}
		},
		OpenLast: func() {
			if last := ctrl.LastResult().File; last != "" {
				if err := openPath(last); err != nil {
					log.Printf("Opening %s failed: %v", last, err)
				}
			}
		},
		ToggleClipboard: func() {
			toggle(cfg, settings.SaveToClipboard)
		},
		ToggleFile: func() {
			toggle(cfg, settings.SaveToFile)
		},
		ToggleDiagnostics: func() {
			toggle(cfg, settings.ShowDiagnostics)
		},
		About: func() {
			g.Acquire()
			defer g.Release()
			if err := openPath("https://github.com/codingABI/abiSnip"); err != nil {
				log.Printf("Opening project page failed: %v", err)
			}
		},
	}
}

func toggle(cfg *settings.Resolver, id settings.ID) {
	cur := cfg.Int(id)
	if cur.Locked {
		return
	}
	v := int64(1)
	if cur.Bool() {
		v = 0
	}
	if err := cfg.SetInt(id, v); err != nil {
		log.Printf("Saving setting failed: %v", err)
	}
}

func menuState(cfg *settings.Resolver, ctrl *session.Controller) tray.MenuState {
	clip := cfg.Int(settings.SaveToClipboard)
	file := cfg.Int(settings.SaveToFile)
	diag := cfg.Int(settings.ShowDiagnostics)
	return tray.MenuState{
		Delay:             int(cfg.Int(settings.ScreenshotDelay).Value),
		SaveToClipboard:   clip.Bool(),
		SaveToFile:        file.Bool(),
		Diagnostics:       diag.Bool(),
		ClipboardLocked:   clip.Locked,
		FileLocked:        file.Locked,
		DiagnosticsLocked: diag.Locked,
		HaveLast:          ctrl.LastResult().File != "",
	}
}

// captureOnce grabs all displays without an overlay and saves them.
func captureOnce(cfg *settings.Resolver, onlyClipboard, onlyFile bool) error {
	layout, err := monitor.Snapshot()
	if err != nil {
		return err
	}
	img, err := screenshot.Capture(layout.Virtual)
	if err != nil {
		return err
	}
	toClip := cfg.Int(settings.SaveToClipboard).Bool()
	toFile := cfg.Int(settings.SaveToFile).Bool()
	if onlyClipboard {
		toClip, toFile = true, false
	}
	if onlyFile {
		toClip, toFile = false, true
	}
	if toClip {
		if err := clipboard.Init(); err != nil {
			return err
		}
	}
	dir, _ := cfg.Path(fallbackDir())
	res, err := persist.Save(persist.Request{
		Image:       img,
		Region:      img.Bounds(),
		Dir:         dir,
		ToFile:      toFile,
		ToClipboard: toClip,
	})
	if err != nil {
		return err
	}
	if res.WroteFile {
		fmt.Println(res.File)
	}
	return nil
}

// fallbackDir is used when no screenshot directory is configured: the
// directory next to the executable, like a portable app.
func fallbackDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// openPath shows a file, folder or URL with the system handler.
func openPath(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
