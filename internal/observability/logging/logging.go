package logging

import (
	"context"
	"io"
	"log/slog"
)

// Module names the component a log line comes from.
type Module string

type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Config struct {
	Service       ServiceInfo
	Environment   Environment
	DefaultModule Module
	Level         slog.Leveler
	GCPProjectID  string
}

type moduleKey struct{}

// WithModule overrides the module stamped on logs written with ctx.
func WithModule(ctx context.Context, m Module) context.Context {
	return context.WithValue(ctx, moduleKey{}, m)
}

func ModuleFrom(ctx context.Context) (Module, bool) {
	m, ok := ctx.Value(moduleKey{}).(Module)
	return m, ok && m != ""
}

// New builds a JSON logger writing to w with service, environment, module
// and trace attributes on every record.
func New(w io.Writer, cfg Config) *slog.Logger {
	level := cfg.Level
	if level == nil {
		level = slog.LevelInfo
	}

	base := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	h := &contextHandler{
		Handler:       base,
		defaultModule: cfg.DefaultModule,
		projectID:     cfg.GCPProjectID,
	}

	return slog.New(h).With(
		slog.Group("service",
			slog.String("name", cfg.Service.Name),
			slog.String("version", cfg.Service.Version),
			slog.String("revision", cfg.Service.Revision),
		),
		slog.String("env", string(cfg.Environment)),
	)
}

type contextHandler struct {
	slog.Handler
	defaultModule Module
	projectID     string
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	module := h.defaultModule
	if m, ok := ModuleFrom(ctx); ok {
		module = m
	}
	if module != "" {
		r.AddAttrs(slog.String("module", string(module)))
	}
	r.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), defaultModule: h.defaultModule, projectID: h.projectID}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), defaultModule: h.defaultModule, projectID: h.projectID}
}
