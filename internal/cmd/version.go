package cmd

import "fmt"

type VersionCmd struct{}

func (v *VersionCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, map[string]string{"version": ctx.Version, "api": ctx.Config.BaseURL})
	}
	_, err := fmt.Fprintf(ctx.Out, "%s\napi: %s\n", ctx.Version, ctx.Config.BaseURL)
	return err
}
