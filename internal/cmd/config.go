package cmd

import (
	"fmt"
	"strings"

	"github.com/jimezsa/suitlink/internal/config"
)

type ConfigCmd struct {
	Init InitConfigCmd `cmd:"" help:"Write the default config file."`
	Path PathConfigCmd `cmd:"" help:"Print config directory."`
	Show ShowConfigCmd `cmd:"" help:"Print the effective configuration."`
}

type InitConfigCmd struct{}

type PathConfigCmd struct{}

type ShowConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	paths, err := config.Init()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigDir)
		return nil
	}
	ctx.UI.Infof("Created: %s", strings.Join(paths, ", "))
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.ConfigDir)
	return err
}

func (c *ShowConfigCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	lines := []string{
		fmt.Sprintf("base_url: %s", cfg.BaseURL),
		fmt.Sprintf("timeout_seconds: %d", cfg.TimeoutSeconds),
		fmt.Sprintf("default_limit: %d", cfg.DefaultLimit),
		fmt.Sprintf("search_debounce_ms: %d", cfg.SearchDebounceMS),
		fmt.Sprintf("count_concurrency: %d", cfg.CountConcurrency),
		fmt.Sprintf("session_cookie: %s", cfg.SessionCookie),
		fmt.Sprintf("proxy: %s", firstNonEmpty(cfg.Proxy, "-")),
		fmt.Sprintf("max_resume_mb: %d", cfg.MaxResumeMB),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(ctx.Out, line); err != nil {
			return err
		}
	}
	return nil
}
