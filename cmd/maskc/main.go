/*
 * main.go, part of gomask.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Command maskc checks atom masks: it shows how they are tokenized and
// parsed, and points at the errors in the ones that don't compile.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	mask "github.com/rmera/gomask"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "maskc",
		Usage: "Tokenize and compile atom masks",
		Description: `Checks atom masks without evaluating them.

Examples:
  maskc tokens ':1-10 & @CA'
  maskc parse --tree ':1 < 5.0 COM(:2-3)' '!@H*'`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level (panic, fatal, error, warn, info, debug, trace)",
				Value:   "info",
				EnvVars: []string{"MASKC_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			lvl, err := logrus.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			logrus.SetLevel(lvl)
			logrus.SetOutput(c.App.ErrWriter)
			return nil
		},
		Commands: []*cli.Command{
			tokensCommand(),
			parseCommand(),
		},
	}
}

func tokensCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "Print the tokens of a mask",
		ArgsUsage: "<mask>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("tokens takes exactly one mask", 2)
			}
			text := c.Args().First()
			toks, err := mask.Tokenize(text)
			if err != nil {
				return cli.Exit(mask.Diagnostic(text, err), 1)
			}
			for _, t := range toks {
				fmt.Fprintf(c.App.Writer, "%d\t%s\n", t.Pos, t)
			}
			logrus.WithField("tokens", len(toks)).Debug("mask tokenized")
			return nil
		},
	}
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Compile masks and print them in canonical form",
		ArgsUsage: "<mask>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "tree",
				Aliases: []string{"t"},
				Usage:   "Print the selection tree instead",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("parse needs at least one mask", 2)
			}
			failed := 0
			for _, text := range c.Args().Slice() {
				m, err := mask.Compile(text)
				if err != nil {
					fmt.Fprintln(c.App.ErrWriter, mask.Diagnostic(text, err))
					failed++
					continue
				}
				logrus.WithFields(logrus.Fields{
					"mask":              text,
					"needs_coordinates": m.NeedsCoordinates(),
				}).Debug("mask compiled")
				if c.Bool("tree") {
					printTree(c.App.Writer, m.Root(), 0)
					continue
				}
				fmt.Fprintln(c.App.Writer, m)
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d masks failed to compile", failed, c.NArg()), 1)
			}
			return nil
		},
	}
}

// printTree writes the selection tree rooted at n, one node per line.
func printTree(w io.Writer, n mask.Node, depth int) {
	ind := strings.Repeat("  ", depth)
	switch n := n.(type) {
	case *mask.Not:
		fmt.Fprintf(w, "%sNOT\n", ind)
		printTree(w, n.X, depth+1)
	case *mask.And:
		fmt.Fprintf(w, "%sAND\n", ind)
		printTree(w, n.L, depth+1)
		printTree(w, n.R, depth+1)
	case *mask.Or:
		fmt.Fprintf(w, "%sOR\n", ind)
		printTree(w, n.L, depth+1)
		printTree(w, n.R, depth+1)
	case *mask.ResidueSelector:
		fmt.Fprintf(w, "%sRESIDUES %s\n", ind, items(n.Items))
	case *mask.AtomSelector:
		fmt.Fprintf(w, "%sATOMS %s\n", ind, items(n.Items))
	case *mask.TypeSelector:
		fmt.Fprintf(w, "%sTYPES %s\n", ind, items(n.Items))
	case *mask.DistancePredicate:
		scope := "atoms"
		if n.Scope == mask.ResidueScope {
			scope = "residues"
		}
		fmt.Fprintf(w, "%sDISTANCE %s %s %g %s\n", ind, scope, n.Op, n.Cutoff, n.Ref.Kind)
		printTree(w, n.Candidates, depth+1)
		if n.Ref.Sub != nil {
			fmt.Fprintf(w, "%s  REFERENCE\n", ind)
			printTree(w, n.Ref.Sub, depth+2)
		}
	}
}

func items(its []mask.Item) string {
	s := make([]string, len(its))
	for i, it := range its {
		s[i] = it.String()
	}
	return strings.Join(s, ",")
}
