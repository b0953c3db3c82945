// Package main is the framegraphctl CLI: load a declarative frame-tree
// document, print its structure, and query transforms between two of its
// frames.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Ruckus-Robotics/rfl/referenceframe"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()

	app := &cli.App{
		Name:  "framegraphctl",
		Usage: "inspect and query declarative reference-frame trees",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				dbg, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				sugar = dbg.Sugar()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "tree",
				Usage:     "print a frame config's tree structure",
				ArgsUsage: "<config.json>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("tree requires exactly one argument: the config file path")
					}
					cfg, err := loadConfigFile(c.Args().Get(0))
					if err != nil {
						return err
					}
					root, byID, err := referenceframe.BuildTree(cfg)
					if err != nil {
						return err
					}
					sugar.Infow("loaded frame tree", "frameCount", len(byID), "root", root.Name())
					printSubtree(root, byID, 0)
					return nil
				},
			},
			{
				Name:      "transform",
				Usage:     "print the transform between two frames in a config, optionally applied to a point",
				ArgsUsage: "<config.json> <from> <to>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "point",
						Usage: "comma-separated x,y,z point to transform from <from> into <to>",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 3 {
						return errors.New("transform requires three arguments: config file, from-frame id, to-frame id")
					}
					cfg, err := loadConfigFile(c.Args().Get(0))
					if err != nil {
						return err
					}
					_, byID, err := referenceframe.BuildTree(cfg)
					if err != nil {
						return err
					}
					fromID, toID := c.Args().Get(1), c.Args().Get(2)
					from, ok := byID[fromID]
					if !ok {
						return errors.Errorf("unknown frame id %q", fromID)
					}
					to, ok := byID[toID]
					if !ok {
						return errors.Errorf("unknown frame id %q", toID)
					}

					tr, err := from.TransformTo(to)
					if err != nil {
						return err
					}

					if ptStr := c.String("point"); ptStr != "" {
						p, err := parsePoint(ptStr)
						if err != nil {
							return err
						}
						out := tr.TransformPoint(p)
						fmt.Printf("%.6f %.6f %.6f\n", out.X, out.Y, out.Z)
						return nil
					}

					m := tr.Matrix4()
					for row := 0; row < 4; row++ {
						fmt.Printf("%.6f %.6f %.6f %.6f\n", m[row*4], m[row*4+1], m[row*4+2], m[row*4+3])
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		sugar.Errorw("framegraphctl failed", "error", err)
		os.Exit(1)
	}
}

func loadConfigFile(path string) (*referenceframe.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close() //nolint:errcheck

	cfg, err := referenceframe.LoadConfig(f)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func printSubtree(node *referenceframe.FrameNode, byID map[string]*referenceframe.FrameNode, depth int) {
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), node.Name())
	for _, candidate := range byID {
		if candidate.ParentFrame() == node {
			printSubtree(candidate, byID, depth+1)
		}
	}
}

func parsePoint(s string) (r3.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vector{}, errors.Errorf("point %q must be x,y,z", s)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "parsing point component %q", p)
		}
		vals[i] = v
	}
	return r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}
