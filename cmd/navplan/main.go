// Command navplan plans a route from a JSON request and prints the path and
// motion commands.
//
//	navplan [flags] [request.json]
//
// A grid request looks like {"grid": [[0,1],[0,0]], "start": {"row":0,"col":0}, "goal": {"row":1,"col":1}}.
// With -direct the request is {"from": {"x":0,"y":0}, "to": {"x":3,"y":4}}.
// The request is read from stdin when no file is given.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/beka-birhanu/vinom-nav/config"
	"github.com/beka-birhanu/vinom-nav/infrastruture/executor"
	"github.com/beka-birhanu/vinom-nav/maze"
	"github.com/beka-birhanu/vinom-nav/nav"
	"github.com/beka-birhanu/vinom-nav/service"
	"gonum.org/v1/gonum/spatial/r2"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type request struct {
	Grid  maze.Grid         `json:"grid"`
	Start maze.CellPosition `json:"start"`
	Goal  maze.CellPosition `json:"goal"`
	From  point             `json:"from"`
	To    point             `json:"to"`
}

type output struct {
	Path     maze.Path           `json:"path,omitempty"`
	Commands []nav.MotionCommand `json:"commands"`
	Executed *int                `json:"executed,omitempty"`
}

func main() {
	defaults := nav.DefaultConfig()
	direct := flag.Bool("direct", false, "plan a straight line route from \"from\" to \"to\"")
	execute := flag.Bool("execute", false, "run the commands on the simulated executor")
	scale := flag.Float64("time-scale", 1, "simulated executor time scale")
	turnTime := flag.Duration("turn-time", defaults.TurnTime, "duration of a 90 degree turn")
	moveTime := flag.Duration("move-time", defaults.MoveTime, "duration of a one cell move")
	settle := flag.Duration("settle", defaults.SettleDelay, "pause between commands")
	flag.Parse()

	logger := log.New(os.Stderr, config.ColorBlue+"[NAVPLAN]"+config.ColorReset+" ", log.LstdFlags)

	cfg := defaults
	cfg.TurnTime, cfg.MoveTime, cfg.SettleDelay = *turnTime, *moveTime, *settle

	req, err := readRequest(flag.Arg(0))
	if err != nil {
		logger.Fatalf("%s[ERROR]%s reading request: %v", config.LogErrorColor, config.LogColorReset, err)
	}

	var plan service.Plan
	if *direct {
		plan, err = service.PlanDirectRoute(r2.Vec{X: req.From.X, Y: req.From.Y}, r2.Vec{X: req.To.X, Y: req.To.Y}, cfg)
	} else {
		plan, err = service.PlanGridRoute(req.Grid, req.Start, req.Goal, cfg)
	}
	switch {
	case errors.Is(err, service.ErrUnreachable):
		logger.Printf("%s[WARN]%s %v", config.LogWarnColor, config.LogColorReset, err)
	case err != nil:
		logger.Fatalf("%s[ERROR]%s planning: %v", config.LogErrorColor, config.LogColorReset, err)
	}

	out := output{Path: plan.Path, Commands: plan.Commands}
	if *execute && len(plan.Commands) > 0 {
		sim := executor.NewSimulated(logger, *scale)
		executed, err := service.NewDispatcher(sim, cfg.SettleDelay, logger).Dispatch(context.Background(), plan.Commands)
		if err != nil {
			logger.Printf("%s[ERROR]%s executing: %v", config.LogErrorColor, config.LogColorReset, err)
		}
		out.Executed = &executed
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Fatalf("%s[ERROR]%s writing output: %v", config.LogErrorColor, config.LogColorReset, err)
	}
}

func readRequest(name string) (*request, error) {
	var in io.Reader = os.Stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	var req request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", describe(name), err)
	}
	return &req, nil
}

func describe(name string) string {
	if name == "" || name == "-" {
		return "stdin"
	}
	return name
}
