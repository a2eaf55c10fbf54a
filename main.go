// Command catbot replays a recorded Catbot sensor log through the
// Catbot environment, driving it with a random agent, and saves the
// per-episode returns, lengths and state visits along with plots of
// the returns and of the robot's trajectory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/catbotrl/catbot/agent/random"
	"github.com/catbotrl/catbot/environment/catbot"
	"github.com/catbotrl/catbot/environment/envconfig"
	"github.com/catbotrl/catbot/experiment"
	"github.com/catbotrl/catbot/experiment/checkpointer"
	"github.com/catbotrl/catbot/experiment/tracker"
	"github.com/catbotrl/catbot/experiment/trackers"
	"github.com/catbotrl/catbot/sensorlog"
	"github.com/catbotrl/catbot/utils/progressbar"
)

func main() {
	configFile := flag.String("config", "", "environment config file "+
		"(.json, .yaml or .yml); defaults are used if empty")
	logFile := flag.String("log", "", "sensor log to replay (JSON lines)")
	seed := flag.Uint64("seed", 192382, "random seed")
	steps := flag.Uint("steps", 0, "number of steps to run; 0 replays "+
		"the whole log")
	outDir := flag.String("out", "runs", "directory to save run data in")
	checkpoint := flag.Int("checkpoint", 0, "checkpoint returns every "+
		"N steps; 0 disables checkpointing")
	window := flag.Int("window", 10, "moving average window of the "+
		"return plot")
	debug := flag.Bool("debug", false, "print per-step reward terms")
	flag.Parse()

	if err := run(*configFile, *logFile, *seed, *steps, *outDir,
		*checkpoint, *window, *debug); err != nil {
		log.Fatal(err)
	}
}

func run(configFile, logFile string, seed uint64, steps uint,
	outDir string, checkpoint, window int, debug bool) error {
	if logFile == "" {
		return fmt.Errorf("run: a sensor log must be given with -log")
	}

	envConf := envconfig.Default()
	if configFile != "" {
		var err error
		if envConf, err = envconfig.Load(configFile); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}

	records, err := readLog(logFile)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if steps == 0 {
		steps = uint(len(records))
	}

	runID := uuid.New()
	dir := filepath.Join(outDir, runID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	log.Printf("run %v: replaying %d records from %v into %v", runID,
		len(records), logFile, dir)

	if err := envConf.Save(filepath.Join(dir, "config.yaml")); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	sensors := catbot.NewSensors()
	player := sensorlog.NewPlayer(records, sensors)
	if err := player.Prime(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	returns := trackers.NewReturn(filepath.Join(dir, "returns.bin"))
	lengths := trackers.NewEpisodeLength(filepath.Join(dir, "lengths.bin"))
	visits := trackers.NewStateVisits(filepath.Join(dir, "visits.bin"))
	trajectory := trackers.NewTrajectory(sensors,
		filepath.Join(dir, "trajectory.png"))

	var checkpointers []checkpointer.Checkpointer
	if checkpoint > 0 {
		c, err := checkpointer.NewNStep(checkpoint, returns,
			checkpointer.FilenameEnumerator(0,
				filepath.Join(dir, "returns-checkpoint"), "bin"))
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		checkpointers = append(checkpointers, c)
	}

	expConf := experiment.Config{
		Type:      experiment.OnlineExp,
		MaxSteps:  steps,
		EnvConf:   envConf,
		AgentConf: random.Config{},
	}
	exp, env, err := expConf.CreateExp(seed, sensors, player,
		[]tracker.Tracker{returns, lengths, visits, trajectory},
		checkpointers)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if debug {
		env.Debug = os.Stderr
	}
	log.Println(env)

	bar := progressbar.New(os.Stdout, 50, int(steps))
	exp.SetProgress(bar)

	err = exp.Run()
	bar.Close()
	if errors.Is(err, sensorlog.ErrExhausted) {
		log.Printf("run %v: sensor log exhausted", runID)
	} else if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if err := exp.Save(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if len(returns.Returns()) > 0 {
		err := tracker.PlotReturns(returns.Returns(), window,
			filepath.Join(dir, "returns.png"))
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}

	log.Printf("returns | %v", tracker.Summarize(returns.Returns()))
	log.Printf("episodes: %d finished, %d fell | %d distinct states",
		len(lengths.Lengths()), lengths.Falls(), visits.Distinct())
	return nil
}

func readLog(filename string) ([]sensorlog.Record, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("readLog: %w", err)
	}
	defer f.Close()

	records, err := sensorlog.Read(f)
	if err != nil {
		return nil, fmt.Errorf("readLog: %v: %w", filename, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("readLog: %v: no records", filename)
	}
	return records, nil
}
