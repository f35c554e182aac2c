package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/keskad/ds/pkgs/config"
	"github.com/keskad/ds/pkgs/ds"
	"github.com/keskad/ds/pkgs/output"
)

// DSApp is the controller level between the CLI and the connection engine:
// everything needed to carry out a single CLI invocation. Prints are
// allowed only via the Printer interface.
type DSApp struct {
	Config  *config.Configuration
	station *ds.Station

	Debug bool
	P     output.Printer
}

// Initialize reads configuration and sets the logging level; it runs after
// argument parsing so flags like --debug are already applied.
func (app *DSApp) Initialize() error {
	if app.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.Debug("Reading configuration files")
	cfg, cfgErr := config.NewConfig()
	app.Config = cfg
	if cfgErr != nil {
		return fmt.Errorf("cannot initialize app: %s", cfgErr)
	}
	return nil
}

// connect builds the Station from configuration, preferring an explicit
// address override over team-derived addressing.
func (app *DSApp) connect() error {
	if app.station != nil {
		return nil
	}

	alliance, err := parseAlliance(app.Config.Server.Alliance)
	if err != nil {
		return err
	}

	opt := ds.WithLogrus(logrus.StandardLogger())

	if app.Config.Server.Address != "" {
		app.station = ds.New(app.Config.Server.Address, alliance, app.Config.Server.Team, opt)
		return nil
	}

	station, err := ds.NewTeam(app.Config.Server.Team, alliance, opt)
	if err != nil {
		return fmt.Errorf("cannot connect: %s", err)
	}
	app.station = station
	return nil
}

func parseAlliance(spec string) (ds.Alliance, error) {
	if len(spec) < 4 {
		return 0, fmt.Errorf("invalid alliance %q: expected e.g. 'red1' or 'blue3'", spec)
	}
	color, posStr := spec[:len(spec)-1], spec[len(spec)-1:]
	pos, err := strconv.ParseUint(posStr, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid alliance position in %q: %w", spec, err)
	}

	switch color {
	case "red":
		return ds.NewRedAlliance(uint8(pos))
	case "blue":
		return ds.NewBlueAlliance(uint8(pos))
	default:
		return 0, fmt.Errorf("invalid alliance color %q: must be 'red' or 'blue'", color)
	}
}

// ConnectAction establishes the connection engine and blocks only long
// enough to confirm the configuration parses.
func (app *DSApp) ConnectAction() error {
	if err := app.connect(); err != nil {
		return err
	}
	app.P.Printf("connecting (team %d, alliance %s)\n", app.Config.Server.Team, app.station.Alliance())
	return nil
}

func (app *DSApp) EnableAction() error {
	if err := app.connect(); err != nil {
		return err
	}
	app.station.Enable()
	return nil
}

func (app *DSApp) DisableAction() error {
	if err := app.connect(); err != nil {
		return err
	}
	app.station.Disable()
	return nil
}

func (app *DSApp) EstopAction() error {
	if err := app.connect(); err != nil {
		return err
	}
	app.station.Estop()
	app.P.Printf("emergency stop latched\n")
	return nil
}

func (app *DSApp) SetTeamAction(team uint32) error {
	if err := app.connect(); err != nil {
		return err
	}
	return app.station.SetTeamNumber(team)
}

func (app *DSApp) SetAllianceAction(spec string) error {
	if err := app.connect(); err != nil {
		return err
	}
	alliance, err := parseAlliance(spec)
	if err != nil {
		return err
	}
	app.station.SetAlliance(alliance)
	return nil
}

func (app *DSApp) SetModeAction(mode string) error {
	if err := app.connect(); err != nil {
		return err
	}

	switch mode {
	case "teleop":
		app.station.SetMode(ds.ModeTeleop)
	case "test":
		app.station.SetMode(ds.ModeTest)
	case "auto", "autonomous":
		app.station.SetMode(ds.ModeAuto)
	default:
		return fmt.Errorf("invalid mode %q: must be 'teleop', 'test', or 'auto'", mode)
	}
	return nil
}

func (app *DSApp) RestartCodeAction() error {
	if err := app.connect(); err != nil {
		return err
	}
	app.station.RestartCode()
	return nil
}

func (app *DSApp) RestartRoboRIOAction() error {
	if err := app.connect(); err != nil {
		return err
	}
	app.station.RestartRoboRIO()
	return nil
}

// MatchAction builds and delivers a MatchInfo TCP tag, and a GameData tag
// when a game-specific message is supplied — from explicit flags, falling
// back to the optional sidecar config when a value is left unset.
func (app *DSApp) MatchAction(competition string, matchType string, gameData string) error {
	if err := app.connect(); err != nil {
		return err
	}

	if competition == "" && app.Config.Match != nil {
		competition = app.Config.Match.Competition
	}
	if matchType == "" && app.Config.Match != nil {
		matchType = app.Config.Match.MatchType
	}
	if gameData == "" && app.Config.Match != nil {
		gameData = app.Config.Match.GameData
	}

	mt, err := parseMatchType(matchType)
	if err != nil {
		return err
	}

	app.station.QueueTCP(ds.MatchInfo{Competition: competition, MatchType: mt})
	if gameData != "" {
		if err := app.station.SetGameSpecificMessage(gameData); err != nil {
			return err
		}
	}

	app.P.Printf("sent match info: competition=%s type=%s\n", competition, mt)
	return nil
}

func parseMatchType(s string) (ds.MatchType, error) {
	switch s {
	case "", "none":
		return ds.MatchTypeNone, nil
	case "practice":
		return ds.MatchTypePractice, nil
	case "qual", "qualifications":
		return ds.MatchTypeQualifications, nil
	case "elim", "eliminations":
		return ds.MatchTypeEliminations, nil
	default:
		return 0, fmt.Errorf("invalid match type %q", s)
	}
}

// StatusAction prints a snapshot of the connection's current state,
// waiting briefly for the first UDP round trip to settle telemetry.
func (app *DSApp) StatusAction() error {
	if err := app.connect(); err != nil {
		return err
	}

	time.Sleep(100 * time.Millisecond)

	trace := app.station.Trace()
	app.P.Printf("mode=%s enabled=%v estopped=%v ds_mode=%s\n",
		app.station.Mode(), app.station.Enabled(), app.station.Estopped(), app.station.DSMode())
	app.P.Printf("rio: code_started=%v connected=%v battery=%.2fV\n",
		trace.IsCodeStarted(), trace.IsConnected(), app.station.BatteryVoltage())
	return nil
}

// Close tears down the connection engine, if one was established.
func (app *DSApp) Close() {
	if app.station != nil {
		app.station.Close()
	}
}
