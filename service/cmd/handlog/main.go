// Command handlog builds, inspects, saves and loads encoded Riichi hand
// records.
//
//	handlog deal [--seed N] [--wind south] [--hanba 3] [--steps 10] [--out FILE]
//	handlog inspect FILE
//	handlog diag FILE
//	handlog save FILE
//	handlog load [--out FILE] ID
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/jason-s-yu/riichi/engine"
	"github.com/jason-s-yu/riichi/service/internal/cache"
	"github.com/jason-s-yu/riichi/service/internal/codec"
	"github.com/jason-s-yu/riichi/service/internal/config"
	"github.com/jason-s-yu/riichi/service/internal/database"
	"github.com/jason-s-yu/riichi/service/internal/logging"
	"github.com/jason-s-yu/riichi/service/internal/recorder"
)

const usage = `usage: handlog <command> [flags] [args]

commands:
  deal     shuffle and deal a hand, optionally with synthetic steps
  inspect  decode a hand record and replay its steps
  diag     print the CBOR diagnostic notation of a hand record
  save     store a hand record in the configured database
  load     fetch a hand record by id
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "handlog:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "deal":
		return runDeal(rest, stdout)
	case "inspect":
		return runInspect(rest, stdout)
	case "diag":
		return runDiag(rest, stdout)
	case "save":
		return runSave(ctx, rest, stdout)
	case "load":
		return runLoad(ctx, rest, stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q\n%s", cmd, usage)
}

func runDeal(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("deal", pflag.ContinueOnError)
	seed := flags.Uint64("seed", 1, "shuffle seed; 0 keeps the set unshuffled")
	wind := flags.String("wind", "east", "prevailing wind")
	hanba := flags.Uint8("hanba", 0, "hanba count")
	repeat := flags.Uint8("repeat", 0, "repeat count")
	riichi := flags.Uint8("riichi", 0, "unclaimed riichi sticks")
	steps := flags.Int("steps", 0, "draw/discard/chii the first N live wall tiles; -1 for the whole wall")
	out := flags.StringP("out", "o", "", "write CBOR to FILE instead of hex to stdout")
	if err := flags.Parse(args); err != nil {
		return err
	}

	w, err := parseWind(*wind)
	if err != nil {
		return err
	}
	tiles := engine.FullSet()
	if *seed != 0 {
		engine.Shuffle(tiles, *seed)
	}
	init, err := engine.Deal(tiles)
	if err != nil {
		return err
	}
	init.PrevailingWind = w
	init.HanbaCount = *hanba
	init.RepeatCount = *repeat
	init.UnclaimedRiichiCount = *riichi

	n := *steps
	if n < 0 || n > len(init.LiveWall) {
		n = len(init.LiveWall)
	}
	h := engine.NewHandFrom(init.Clone())
	for _, tile := range init.LiveWall[:n] {
		h.Draw(tile).Discard(tile).Act(engine.ActionCallChiiOrDeclareKan, tile)
	}

	data, err := codec.MarshalHand(h)
	if err != nil {
		return err
	}
	if *out != "" {
		return os.WriteFile(*out, data, 0o644)
	}
	_, err = fmt.Fprintln(stdout, hex.EncodeToString(data))
	return err
}

func runInspect(args []string, stdout io.Writer) error {
	h, err := readHand(args)
	if err != nil {
		return err
	}
	return printHand(stdout, h)
}

func runDiag(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.New("diag: expected one FILE")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	diag, err := codec.Diagnose(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, diag)
	return err
}

func runSave(ctx context.Context, args []string, stdout io.Writer) error {
	h, err := readHand(args)
	if err != nil {
		return err
	}
	r, closeFn, err := openRecorder(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	id, err := r.Save(ctx, h)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, id)
	return err
}

func runLoad(ctx context.Context, args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("load", pflag.ContinueOnError)
	out := flags.StringP("out", "o", "", "write CBOR to FILE instead of printing the replay")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("load: expected one ID")
	}
	id, err := uuid.Parse(flags.Arg(0))
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	r, closeFn, err := openRecorder(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	h, err := r.Load(ctx, id)
	if err != nil {
		return err
	}
	if *out != "" {
		data, err := codec.MarshalHand(h)
		if err != nil {
			return err
		}
		return os.WriteFile(*out, data, 0o644)
	}
	return printHand(stdout, h)
}

func readHand(args []string) (*engine.Hand, error) {
	if len(args) != 1 {
		return nil, errors.New("expected one FILE")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	return codec.UnmarshalHand(data)
}

func printHand(w io.Writer, h *engine.Hand) error {
	init, steps := h.Parts()
	fmt.Fprintf(w, "wind %s  repeat %d  hanba %d  riichi %d\n",
		init.PrevailingWind, init.RepeatCount, init.HanbaCount, init.UnclaimedRiichiCount)
	for i, seat := range init.Hands() {
		fmt.Fprintf(w, "%-5s %v\n", engine.Wind(i), seat)
	}
	fmt.Fprintf(w, "dead  %v\n", init.DeadWall)
	fmt.Fprintf(w, "live  %d tiles\n", len(init.LiveWall))

	for step, err := range engine.Replay(steps) {
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%4d %-7s %s\n", step.Index, step.Mode, step)
	}
	return nil
}

func parseWind(s string) (engine.Wind, error) {
	for w := engine.WindEast; w <= engine.WindNorth; w++ {
		if w.String() == s {
			return w, nil
		}
	}
	return engine.WindEast, fmt.Errorf("unknown wind %q", s)
}

func openRecorder(ctx context.Context) (*recorder.Recorder, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, errors.New("RIICHI_DATABASE_URL is not set")
	}

	pool, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	store := database.New(pool)
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	closers := []func(){pool.Close}

	var hc recorder.Cache
	if cfg.RedisAddr != "" {
		client, err := cache.Dial(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("running without cache")
		} else {
			hc = cache.New(client, cfg.CacheTTL)
			closers = append(closers, func() { client.Close() })
		}
	}

	log.WithFields(logrus.Fields{"compression": cfg.Compression, "cache": hc != nil}).Debug("recorder ready")
	closeFn := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return recorder.New(store, hc, cfg.Compression, log), closeFn, nil
}
