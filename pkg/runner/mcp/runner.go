package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/logging"
	"tableflip.dev/mindful/pkg/profile"
	"tableflip.dev/mindful/pkg/store"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	Persistence store.Persistence
	Journal     *journal.Store
	Gate        *locker.Gate
	Profile     *profile.Profile
	Log         logging.Logger
	Name        string
	Version     string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("mcp runner requires persistence")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log := r.Log
	if log == nil {
		log = logging.Nop()
	}
	log = log.With("component", "mcp")

	if err := r.defaults(log); err != nil {
		return err
	}

	name := r.Name
	if name == "" {
		name = "mindful"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and write journal entries via MCP. Locked entries need the locker password."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Journal, r.Gate, r.Profile)
	registerResources(srv, svc)
	registerTools(srv, svc)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	r.follow(ctx, log)

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

func (r *Runner) defaults(log logging.Logger) error {
	var err error
	if r.Journal == nil {
		if r.Journal, err = journal.New(r.Persistence, journal.WithLogger(log), journal.WithStrict()); err != nil {
			return err
		}
	}
	if r.Gate == nil {
		if r.Gate, err = locker.New(r.Persistence, locker.WithLogger(log)); err != nil {
			return err
		}
	}
	if r.Profile == nil {
		r.Profile = profile.New(r.Persistence)
	}
	return nil
}

// follow reloads cached state when another process writes the store.
func (r Runner) follow(ctx context.Context, log logging.Logger) {
	events, err := r.Persistence.Watch(ctx)
	if err != nil {
		log.Warn(ctx, "store watch unavailable, changes from other processes will not be seen", "err", err)
		return
	}
	go func() {
		for ev := range events {
			switch ev.Key {
			case "":
				r.Journal.Reload(ctx)
				r.Gate.Reload(ctx)
			case store.KeyEntries:
				r.Journal.Reload(ctx)
			case store.KeyLockerSecret:
				r.Gate.Reload(ctx)
			default:
				continue
			}
			log.Debug(ctx, "reloaded after store change", "key", ev.Key)
		}
	}()
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	if (r.HTTPServerCert != "" && r.HTTPServerKey == "") || (r.HTTPServerCert == "" && r.HTTPServerKey != "") {
		return errors.New("both http tls cert and key must be provided")
	}

	handler := server.NewStreamableHTTPServer(srv)

	path := r.HTTPEndpointPath
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8080"
	}

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	httpSrv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.HTTPServerCert != "" && r.HTTPServerKey != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
