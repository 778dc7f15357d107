package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/message"

	"github.com/pwiecz/squad_leader/config"
	"github.com/pwiecz/squad_leader/data"
	"github.com/pwiecz/squad_leader/i18n"
	"github.com/pwiecz/squad_leader/lib"
	"github.com/pwiecz/squad_leader/losdb"
	"github.com/pwiecz/squad_leader/telemetry"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
var seed = flag.Int64("seed", 0, "if specified, use given seed to initialize random number generator. Otherwise, a random seed will be used")
var locale = flag.String("locale", "", "language of the feedback, overrides SQUAD_LOCALE")
var tables = flag.String("tables", "", "effect tables file, overrides SQUAD_TABLES")

// Step refused by the session, passed to the printer like any other feedback.
type refusal struct {
	step int
	err  error
}

func (r refusal) Entity() lib.EntityID { return "" }
func (r refusal) Key() string          { return string(lib.ReasonOf(r.err)) }
func (r refusal) Args() []interface{}  { return nil }
func (r refusal) String() string       { return r.err.Error() }

func main() {
	flag.Parse()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Cannot read configuration (%v)", err)
	}
	scenarioFile := cfg.Scenario
	var scriptFile string
	switch len(flag.Args()) {
	case 0:
	case 1:
		scenarioFile = flag.Arg(0)
	case 2:
		scenarioFile, scriptFile = flag.Arg(0), flag.Arg(1)
	default:
		log.Fatalf("Usage: %s [flags] <scenario> [script]\n", os.Args[0])
	}
	if scenarioFile == "" {
		log.Fatalf("Usage: %s [flags] <scenario> [script]\n", os.Args[0])
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	source := rand.NewSource(time.Now().UnixNano())
	if cfg.Seed != 0 {
		source = rand.NewSource(cfg.Seed)
	}
	// Using flag.Visit we can distinguish between flag being set to its default value
	// from flag not being set by the user.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			source = rand.NewSource(*seed)
		case "locale":
			cfg.Locale = *locale
		case "tables":
			cfg.Tables = *tables
		}
	})

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Cannot create logger (%v)", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, "squad_leader", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Cannot set up tracing (%v)", err)
	}
	defer shutdown(ctx)

	scenario, err := data.LoadScenario(os.DirFS(filepath.Dir(scenarioFile)), filepath.Base(scenarioFile))
	if err != nil {
		log.Fatalf("Cannot load scenario %s (%v)", scenarioFile, err)
	}
	effects, err := data.DefaultTables()
	if cfg.Tables != "" {
		effects, err = data.LoadTables(os.DirFS(filepath.Dir(cfg.Tables)), filepath.Base(cfg.Tables))
	}
	if err != nil {
		log.Fatalf("Cannot load effect tables (%v)", err)
	}

	options := lib.DefaultOptions()
	options.Terrain = effects.Terrain
	options.Tables = effects.Effects
	options.Logger = logger
	if cfg.LOSDB != "" {
		options.LOS, err = lineOfSight(ctx, cfg.LOSDB, scenario, &options, logger)
		if err != nil {
			log.Fatalf("Cannot prepare line of sight table (%v)", err)
		}
	}

	game, err := lib.NewGameState(rand.New(source), scenario, options)
	if err != nil {
		log.Fatalf("Cannot start scenario %s (%v)", scenarioFile, err)
	}
	logger.Info("session started",
		zap.String("session", game.ID()),
		zap.String("scenario", scenario.Name),
		zap.Int("hexes", game.Map().Len()))

	printer := i18n.Printer(cfg.Locale)
	if scriptFile == "" {
		printScore(game.Score(), printer)
		return
	}
	script, err := data.LoadScript(os.DirFS(filepath.Dir(scriptFile)), filepath.Base(scriptFile))
	if err != nil {
		log.Fatalf("Cannot load script %s (%v)", scriptFile, err)
	}

	sync := lib.NewMessageSync()
	errs := make(chan error, 1)
	go func() {
		err := script.Run(ctx, game, func(result data.StepResult) bool {
			if result.Err != nil {
				return sync.SendUpdate(refusal{result.Step, result.Err})
			}
			return sync.SendUpdates(result.Messages)
		})
		errs <- err
		sync.Close()
	}()
	for {
		msg, ok := sync.GetUpdate()
		if !ok {
			break
		}
		if r, ok := msg.(refusal); ok {
			fmt.Printf("%d: %s\n", r.step, lib.Explain(r.err, printer))
			continue
		}
		fmt.Println(lib.Localize(msg, printer))
	}
	if err := <-errs; err != nil {
		log.Fatalf("Cannot run script %s (%v)", scriptFile, err)
	}
	printScore(game.Score(), printer)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if cfg.LogDev {
		zapConfig = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build()
}

// Reuses the table stored for the scenario map, computing and storing it
// when there is none.
func lineOfSight(ctx context.Context, path string, scenario *lib.Scenario, options *lib.Options, logger *zap.Logger) (*lib.LOSTable, error) {
	hexes, err := lib.NewHexMap(scenario.Hexes, options.Terrain, options.HindranceThreshold)
	if err != nil {
		return nil, err
	}
	store, err := losdb.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	table, err := store.Load(ctx, hexes.Fingerprint())
	if err == nil {
		logger.Debug("line of sight table loaded", zap.String("fingerprint", hexes.Fingerprint()))
		return table, nil
	}
	if !errors.Is(err, losdb.ErrNotFound) {
		return nil, err
	}
	start := time.Now()
	table = lib.PrecomputeLOS(hexes)
	if err := store.Save(ctx, table); err != nil {
		return nil, err
	}
	logger.Info("line of sight table computed",
		zap.String("fingerprint", table.Fingerprint()),
		zap.Int("hexes", hexes.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return table, nil
}

func printScore(score lib.Score, printer *message.Printer) {
	for _, side := range []lib.Side{lib.SideA, lib.SideB} {
		fmt.Println(printer.Sprintf("score.losses", side, score.MenLost[side], score.LeadersLost[side], score.VehiclesLost[side]))
	}
	winner, advantage := score.WinningSideAndAdvantage()
	if advantage == 0 {
		fmt.Println(printer.Sprintf("score.draw"))
		return
	}
	fmt.Println(printer.Sprintf("score.winner", winner, advantage))
}
