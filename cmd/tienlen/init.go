package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lox/tienlen/internal/config"
	"github.com/pterm/pterm"
)

type InitCmd struct {
	Force bool `short:"f" help:"Overwrite an existing config file"`
}

func (c *InitCmd) Run(g *Globals) error {
	if _, err := os.Stat(g.Config); err == nil && !c.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite it", g.Config)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := config.WriteDefault(g.Config); err != nil {
		return err
	}
	pterm.Success.Printfln("Wrote %s", g.Config)
	return nil
}
