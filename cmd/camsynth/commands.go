package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/camsynth/internal/config"
	"github.com/Faultbox/camsynth/internal/constraints"
	"github.com/Faultbox/camsynth/internal/logger"
	"github.com/Faultbox/camsynth/internal/motion"
	"github.com/Faultbox/camsynth/internal/pipeline"
	"github.com/Faultbox/camsynth/internal/preview"
	"github.com/Faultbox/camsynth/internal/request"
)

// errInvalid marks a request that was rejected, as opposed to a failure to
// run at all.
var errInvalid = errors.New("request rejected")

func exitCode(err error) int {
	if errors.Is(err, errInvalid) || errors.Is(err, pipeline.ErrRejected) {
		return 2
	}
	return 1
}

// env is what every subcommand needs after flag parsing.
type env struct {
	cfg  *config.Config
	log  *zap.Logger
	pipe *pipeline.Pipeline
}

func (e *env) close() {
	_ = e.log.Sync()
}

// setup parses args with the common flags, loads config and builds the
// logger and pipeline.
func setup(fs *flag.FlagSet, args []string) (*env, error) {
	var flags config.Flags
	flags.Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(&flags)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	log.Debug("Config loaded", zap.Any("config", cfg))

	pipe, err := pipeline.New(cfg, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, pipe: pipe}, nil
}

func cmdAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	e, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer e.close()

	if fs.NArg() < 1 {
		return errors.New("usage: camsynth analyze <request.yaml>")
	}
	req, err := request.Read(fs.Arg(0))
	if err != nil {
		return err
	}

	a, err := e.pipe.Analyze(req.Scene)
	if err != nil {
		return err
	}
	return writeYAML(os.Stdout, a)
}

func cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	e, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer e.close()

	if fs.NArg() < 1 {
		return errors.New("usage: camsynth validate <request.yaml>")
	}
	req, err := request.Read(fs.Arg(0))
	if err != nil {
		return err
	}

	res, err := e.pipe.Validate(req)
	if res != nil && res.Validation != nil {
		if werr := writeYAML(os.Stdout, res.Validation); werr != nil {
			return werr
		}
	}
	return err
}

func cmdProcess(args []string) error {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	output := fs.String("o", "", "Write the result to this file instead of stdout")
	e, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer e.close()

	if fs.NArg() < 1 {
		return errors.New("usage: camsynth process [-o result.yaml] <request.yaml>")
	}
	req, err := request.Read(fs.Arg(0))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	doc := request.NewResultDocument(e.pipe.Run(ctx, req))
	if *output != "" {
		if err := request.WriteResult(*output, doc); err != nil {
			return err
		}
		fmt.Printf("%s: %s -> %s\n", doc.RequestID, doc.Status, *output)
	} else if err := writeYAML(os.Stdout, doc); err != nil {
		return err
	}

	return statusErr(doc)
}

func cmdBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	outDir := fs.String("out", "results", "Directory for result files")
	e, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer e.close()

	if fs.NArg() < 1 {
		return errors.New("usage: camsynth batch [-out dir] <request.yaml>...")
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return err
	}

	paths := fs.Args()
	reqs := make([]pipeline.Request, 0, len(paths))
	for _, p := range paths {
		req, err := request.Read(p)
		if err != nil {
			return err
		}
		if req.ID == "" {
			req.ID = baseName(p)
		}
		reqs = append(reqs, req)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	items, batchErr := e.pipe.RunBatch(ctx, reqs)

	counts := make(map[request.Status]int)
	for i, it := range items {
		doc := request.NewResultDocument(it.Result, it.Err)
		counts[doc.Status]++

		out := filepath.Join(*outDir, baseName(paths[i])+".result.yaml")
		if err := request.WriteResult(out, doc); err != nil {
			return err
		}
		fmt.Printf("  %-24s %-10s %s\n", doc.RequestID, doc.Status, out)
	}

	fmt.Printf("\n%d requests: %d ok, %d degenerate, %d rejected, %d failed\n",
		len(items), counts[request.StatusOK], counts[request.StatusDegenerate],
		counts[request.StatusRejected], counts[request.StatusFailed])

	if batchErr != nil {
		return batchErr
	}
	if counts[request.StatusRejected]+counts[request.StatusFailed] > 0 {
		return fmt.Errorf("%w: %d of %d requests did not produce a path", errInvalid,
			counts[request.StatusRejected]+counts[request.StatusFailed], len(items))
	}
	return nil
}

func cmdPlot(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	outDir := fs.String("out", "plots", "Directory for PNG files")
	e, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer e.close()

	if fs.NArg() < 1 {
		return errors.New("usage: camsynth plot [-out dir] <request.yaml>")
	}
	path := fs.Arg(0)
	req, err := request.Read(path)
	if err != nil {
		return err
	}

	res, err := e.pipe.Run(context.Background(), req)
	if err != nil {
		return err
	}

	name := baseName(path)
	files, err := preview.Render(preview.Scene{
		Title:     name,
		Path:      res.Outcome.Path,
		Waypoints: req.Commands,
		Object:    &res.Analysis.Object.BoundingBox,
	}, *outDir, name)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

func cmdFrame(args []string) error {
	fs := flag.NewFlagSet("frame", flag.ExitOnError)
	count := fs.Int("n", 4, "Number of waypoints around the object")
	duration := fs.Float64("duration", 2, "Seconds per waypoint")
	e, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer e.close()

	if fs.NArg() < 2 || *count < 1 {
		return errors.New("usage: camsynth frame [-n 4] [-duration 2] <request.yaml> <out.yaml>")
	}
	req, err := request.Read(fs.Arg(0))
	if err != nil {
		return err
	}

	a, err := e.pipe.Analyze(req.Scene)
	if err != nil {
		return err
	}

	req.Commands = orbitTour(a, *count, *duration)
	start := constraints.FrameObject(a, 0).Orientation()
	req.InitialOrientation = &start

	if err := request.Write(fs.Arg(1), req); err != nil {
		return err
	}
	fmt.Printf("Wrote %d waypoints to %s\n", len(req.Commands), fs.Arg(1))
	return nil
}

func cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.String("save", "", `Write the effective config to this path ("user" for the user config dir)`)
	e, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer e.close()

	switch *save {
	case "":
		return writeYAML(os.Stdout, e.cfg)
	case "user":
		if err := e.cfg.Save(); err != nil {
			return err
		}
		fmt.Println(filepath.Join(config.ConfigDir(), "config.yaml"))
		return nil
	default:
		if err := e.cfg.SaveTo(*save); err != nil {
			return err
		}
		fmt.Println(*save)
		return nil
	}
}

func statusErr(doc request.ResultDocument) error {
	switch doc.Status {
	case request.StatusRejected:
		return fmt.Errorf("%w: %s", errInvalid, doc.Error)
	case request.StatusFailed:
		return errors.New(doc.Error)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// orbitTour returns n waypoints evenly spaced in yaw around the object, each
// taking duration seconds.
func orbitTour(a constraints.EnvironmentalAnalysis, n int, duration float64) []motion.CameraCommand {
	cmds := make([]motion.CameraCommand, n)
	for i := range cmds {
		yaw := 2 * math.Pi * float64(i) / float64(n)
		cmds[i] = constraints.FrameObject(a, yaw).Command(duration)
		cmds[i].Easing = motion.EasingEaseInOut
	}
	return cmds
}
