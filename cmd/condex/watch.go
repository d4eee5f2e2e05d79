package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/recera/condex/cmd/condex/internal/config"
	"github.com/recera/condex/internal/cache"
	"github.com/recera/condex/internal/compiler"
	"github.com/spf13/cobra"
)

type watchServer struct {
	cfg       *config.Config
	opts      compiler.Options
	watcher   *fsnotify.Watcher
	wsClients map[*websocket.Conn]bool
	wsMutex   sync.RWMutex
	upgrader  websocket.Upgrader
}

func newWatchCommand() *cobra.Command {
	var port int
	var host string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch template files and recompile on change",
		Long: `Watches the configured source directories, recompiles templates as they
change, and notifies connected live-reload clients over WebSocket.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port for the live-reload server (overrides condex.yml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind the live-reload server to")

	return cmd
}

func runWatch(host string, port int) error {
	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("⚠️  Failed to load %s: %v (using defaults)\n", config.ConfigFile, err)
		cfg = config.DefaultConfig()
	}

	// CLI takes precedence over condex.yml.
	if port == 0 {
		port = cfg.Watch.Port
	}
	if host == "" {
		host = cfg.Watch.Host
	}

	server := &watchServer{
		cfg:       cfg,
		opts:      compiler.Options{OutputSuffix: cfg.OutputSuffix},
		wsClients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Watch mode is a local development tool.
				return true
			},
		},
	}

	if cfg.Cache != nil && cfg.Cache.Enabled {
		compileCache, err := cache.New(cache.Config{Dir: cfg.Cache.Dir})
		if err != nil {
			log.Printf("⚠️  Failed to initialize compile cache: %v", err)
		} else {
			server.opts.Cache = compileCache
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	server.watcher = watcher

	if err := server.setupWatcher(); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}

	// Initial build.
	log.Println("🎨 Compiling templates...")
	if err := server.compileAll(); err != nil {
		log.Printf("⚠️  Template compilation warning: %v\n", err)
	}

	go server.watchFiles()

	mux := http.NewServeMux()
	mux.HandleFunc("/livereload", server.handleWebSocket)

	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("👀 Watching for changes, live reload at ws://%s/livereload (Ctrl+C to stop)\n", addr)

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\n🛑 Shutting down watcher...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *watchServer) setupWatcher() error {
	for _, dir := range s.cfg.SourceDirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && (strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules") {
				return filepath.SkipDir
			}
			if info.IsDir() {
				return s.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *watchServer) watchFiles() {
	debounceWindow := time.Duration(s.cfg.Watch.DebounceMS) * time.Millisecond
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	var pendingEvents []fsnotify.Event
	var mu sync.Mutex

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !s.isTemplateFile(event.Name) {
				continue
			}
			mu.Lock()
			pendingEvents = append(pendingEvents, event)
			mu.Unlock()
			debounce.Reset(debounceWindow)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Println("Watcher error:", err)

		case <-debounce.C:
			mu.Lock()
			events := pendingEvents
			pendingEvents = nil
			mu.Unlock()

			if len(events) > 0 {
				s.handleFileChanges(events)
			}
		}
	}
}

func (s *watchServer) isTemplateFile(path string) bool {
	if strings.HasSuffix(path, s.cfg.OutputSuffix) {
		return false
	}
	for _, ext := range s.cfg.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func (s *watchServer) handleFileChanges(events []fsnotify.Event) {
	seen := make(map[string]bool)
	for _, event := range events {
		if seen[event.Name] {
			continue
		}
		seen[event.Name] = true

		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			if s.opts.Cache != nil {
				s.opts.Cache.InvalidateBySource(event.Name)
			}
			continue
		}

		if _, err := compiler.ProcessFile(event.Name, s.opts); err != nil {
			log.Printf("❌ Failed to compile %s: %v\n", filepath.Base(event.Name), err)
			s.notifyClients("error", map[string]interface{}{
				"message": fmt.Sprintf("Template compilation failed: %v", err),
			})
			continue
		}
		log.Printf("✅ Compiled %s\n", filepath.Base(event.Name))
		s.notifyClients("reload", map[string]interface{}{
			"target": event.Name,
		})
	}
}

func (s *watchServer) compileAll() error {
	for _, dir := range s.cfg.SourceDirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if _, err := compiler.ProcessDirectory(dir, s.cfg.Extensions, s.opts); err != nil {
			return fmt.Errorf("failed to process templates in %s: %w", dir, err)
		}
	}
	return nil
}

func (s *watchServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch msg["type"] {
		case "HELLO":
			conn.WriteJSON(map[string]interface{}{
				"type": "ACK",
			})
		default:
			log.Printf("Unknown WebSocket message type: %v", msg["type"])
		}
	}
}

func (s *watchServer) notifyClients(msgType string, data map[string]interface{}) {
	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()

	message := map[string]interface{}{
		"type": strings.ToUpper(msgType),
	}
	for k, v := range data {
		message[k] = v
	}

	for client := range s.wsClients {
		if err := client.WriteJSON(message); err != nil {
			log.Printf("Failed to send message to client: %v", err)
		}
	}
}
