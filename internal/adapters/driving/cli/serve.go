package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/redline/internal/core/domain"
	"github.com/custodia-labs/redline/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the edit/search API and the /ws notification channel",
	Long: `Starts an HTTP server. Subscribers connect to /ws and receive a
"page changed" event after every persisted edit so they can refetch.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8375", "listen address")
	rootCmd.AddCommand(serveCmd)
}

// editRequest is the body of POST /pages/{id}/edits. Either the two
// snapshots or a serialized patch must be present.
type editRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
	Patch  string `json:"patch"`
	Editor string `json:"editor"`
}

func runServe(cmd *cobra.Command, _ []string) error {
	if deps.Sync == nil || deps.Search == nil || deps.Pages == nil {
		return errors.New("serve requires sync, search and page store")
	}
	if deps.Hub == nil {
		return errors.New("notification hub not configured")
	}

	addr := serveAddr
	if !cmd.Flags().Changed("addr") && deps.Config != nil {
		if configured := deps.Config.GetString("server.addr"); configured != "" {
			addr = configured
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go deps.Hub.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("GET /ws", deps.Hub)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /pages/{id}", handleGetPage)
	mux.HandleFunc("POST /pages/{id}/edits", handlePostEdit)
	mux.HandleFunc("GET /search", handleSearch)

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	cmd.Printf("Listening on %s\n", addr)
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func handleGetPage(w http.ResponseWriter, r *http.Request) {
	page, err := deps.Pages.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"id":       page.ID,
		"title":    page.Title,
		"content":  page.Content,
		"revision": page.Revision,
	})
}

func handlePostEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	pageID := r.PathValue("id")
	var result domain.EditResult
	var err error
	if req.Patch != "" {
		result, err = deps.Sync.ApplyPatch(r.Context(), pageID, req.Patch, req.Editor)
	} else {
		result, err = deps.Sync.ApplyEdit(r.Context(), pageID, req.Before, req.After, req.Editor)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"saved":    result.Saved,
		"applied":  result.Applied,
		"rejected": result.Rejected(),
		"revision": result.Revision,
	})
}

func handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := deps.Search.Search(r.Context(), r.URL.Query().Get("q"), domain.SearchOptions{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, results)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "page not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrMalformedPatch):
		http.Error(w, "malformed patch", http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
