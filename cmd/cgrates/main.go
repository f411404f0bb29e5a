// Command cgrates sends one operation to a CGRateS JSON-RPC endpoint and
// prints the result as JSON.
//
//	cgrates --config cgrates.yaml --op getAccount --params '{"Tenant":"cgrates.org","Account":"1001"}'
//	cgrates --list
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/juju/gnuflag"

	"github.com/volodya-nrg/cgrates/pkg/cgrates"
	"github.com/volodya-nrg/cgrates/pkg/logger"
)

const serviceName = "cgrates-cli"

var version = "dev" // -ldflags "-X main.version=..."

const (
	exitOK = iota
	exitFailure
	exitUsage
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

type flags struct {
	configPath string
	endpoint   string
	operation  string
	params     string
	id         string
	list       bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	f := flags{}

	fs := gnuflag.NewFlagSet(serviceName, gnuflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to yaml config")
	fs.StringVar(&f.endpoint, "endpoint", "", "JSON-RPC endpoint, overrides config")
	fs.StringVar(&f.operation, "op", "", "operation name, see --list")
	fs.StringVar(&f.params, "params", "{}", "operation params as JSON object")
	fs.StringVar(&f.id, "id", "", "correlation id, generated when empty")
	fs.BoolVar(&f.list, "list", false, "print supported operations and exit")

	if err := fs.Parse(true, args); err != nil {
		return exitUsage
	}

	if f.list {
		for _, name := range cgrates.Names() {
			op, _ := cgrates.Lookup(name)
			_, _ = fmt.Fprintf(stdout, "%s\t%s\n", name, op.Method)
		}
		return exitOK
	}

	if f.operation == "" {
		_, _ = fmt.Fprintln(stderr, "--op is required")
		return exitUsage
	}

	cfg, err := loadConfig(f.configPath, getenv)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitFailure
	}

	if f.endpoint != "" {
		cfg.Endpoint = f.endpoint
	}

	lg, err := logger.NewLogger(serviceName, version, cfg.Log.Level, cfg.Log.File)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitFailure
	}
	defer func() {
		if err = lg.Close(); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
		}
	}()

	if f.id == "" {
		f.id = uuid.NewString()
	}

	ctx = logger.WithOperation(logger.WithTraceID(ctx, f.id), f.operation)

	result, err := call(ctx, cfg, f)
	if err != nil {
		logCallError(ctx, err)
		return exitFailure
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal result", slog.String("error", err.Error()))
		return exitFailure
	}

	_, _ = fmt.Fprintln(stdout, string(out))

	return exitOK
}

func call(ctx context.Context, cfg config, f flags) (any, error) {
	params := cgrates.Params{}
	if err := json.Unmarshal([]byte(f.params), &params); err != nil {
		return nil, fmt.Errorf("failed to parse params: %w", err)
	}

	clientCfg, err := cgrates.NewConfig(cfg.Endpoint, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create client config: %w", err)
	}

	var httpTransport *http.Transport

	if cfg.TLS.Enabled {
		httpTransport, err = cgrates.NewTLSTransport(cfg.TLS.CA, cfg.TLS.Cert, cfg.TLS.Key)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	cl := cgrates.NewClient(clientCfg, cgrates.NewHTTPTransport(clientCfg.Timeout(), httpTransport))
	defer func() {
		_ = cl.Close()
	}()

	slog.DebugContext(ctx, "sending request", slog.String("endpoint", clientCfg.Endpoint()))

	return cl.Call(ctx, f.operation, params, f.id)
}

func logCallError(ctx context.Context, err error) {
	var (
		vErr   *cgrates.ValidationError
		trErr  *cgrates.TransportError
		pErr   *cgrates.ProtocolError
		rpcErr *cgrates.RPCError
		attrs  = []any{slog.String("error", err.Error())}
	)

	switch {
	case errors.As(err, &vErr):
		attrs = append(attrs, slog.String("kind", "validation"), slog.String("field", vErr.Field))
	case errors.As(err, &trErr):
		attrs = append(attrs, slog.String("kind", "transport"))
	case errors.As(err, &pErr):
		attrs = append(attrs, slog.String("kind", "protocol"), slog.Int("status_code", pErr.StatusCode))
	case errors.As(err, &rpcErr):
		attrs = append(attrs, slog.String("kind", "rpc"))
	}

	slog.ErrorContext(ctx, "failed to call operation", attrs...)
}
