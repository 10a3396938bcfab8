package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/cabi-host/host"
)

func main() {
	var (
		libName     = flag.String("lib", "", "Native library path or name (default: platform library name)")
		wasmFile    = flag.String("wasm", "", "Path to a wasm32 build of the library (instead of -lib)")
		useQuic     = flag.Bool("quic", false, "Select the QUIC transport")
		listenStr   = flag.String("listen", "", "Multiaddrs to listen on (comma-separated)")
		dialStr     = flag.String("dial", "", "Multiaddrs to dial (comma-separated)")
		wait        = flag.Duration("wait", 0, "Keep the node alive after dialing")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *libName != "" && *wasmFile != "" {
		fmt.Fprintln(os.Stderr, "Usage: p2p-ping [-lib name | -wasm file.wasm] [-quic] [-listen addrs] [-dial addrs] [-wait d]")
		fmt.Fprintln(os.Stderr, "       p2p-ping -i  (interactive mode)")
		os.Exit(1)
	}

	listens := splitAddrs(*listenStr)
	dials := splitAddrs(*dialStr)

	// With nothing to do and a terminal attached, fall through to the TUI.
	if *interactive || (len(listens) == 0 && len(dials) == 0 && term.IsTerminal(int(os.Stdin.Fd()))) {
		if err := runInteractive(*libName, *wasmFile, *useQuic, *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*libName, *wasmFile, *useQuic, listens, dials, *wait, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func splitAddrs(s string) []string {
	if s == "" {
		return nil
	}
	var addrs []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	return addrs
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func openLibrary(libName, wasmFile string, log *zap.Logger) (*host.Library, error) {
	if wasmFile != "" {
		data, err := os.ReadFile(wasmFile)
		if err != nil {
			return nil, fmt.Errorf("read wasm file: %w", err)
		}
		return host.OpenWASM(context.Background(), data, host.WithLogger(log))
	}
	return host.Open(libName, host.WithLogger(log))
}

// run drives one node through the full lifecycle. Every acquired resource is
// released on every exit path, in reverse acquisition order.
func run(libName, wasmFile string, useQuic bool, listens, dials []string, wait time.Duration, verbose bool) error {
	log := newLogger(verbose)
	defer func() { _ = log.Sync() }()

	lib, err := openLibrary(libName, wasmFile, log)
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()

	if err := lib.InitTracing(); err != nil {
		return err
	}

	node, err := lib.NewNode(useQuic)
	if err != nil {
		return err
	}
	defer func() { _ = node.Close() }()

	for _, addr := range listens {
		if err := node.Listen(addr); err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		fmt.Printf("listening on %s\n", addr)
	}
	for _, addr := range dials {
		if err := node.Dial(addr); err != nil {
			return fmt.Errorf("dial %s: %w", addr, err)
		}
		fmt.Printf("dialing %s\n", addr)
	}

	if wait > 0 {
		time.Sleep(wait)
	}
	return nil
}
