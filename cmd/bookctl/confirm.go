package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// promptConfirmer asks on stdin. Without a terminal and without --yes it declines.
type promptConfirmer struct {
	in          *bufio.Scanner
	out         io.Writer
	assumeYes   bool
	interactive bool
}

func (p *promptConfirmer) Confirm(ctx context.Context, prompt string) bool {
	if p.assumeYes {
		return true
	}
	if !p.interactive {
		log.Warn().Msg("stdin is not a terminal; pass --yes to confirm")
		return false
	}
	if ctx.Err() != nil {
		return false
	}

	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	if !p.in.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(p.in.Text())) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
