// Command-line entry point for the station load-tracking tool.
//
// The station keeps its working data in a local SQLite file. The optional
// remote backends (Postgres mirror, ClickHouse export, NATS feed) are
// enabled through the config file and are never required for local work.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	fake "github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"loadtrack/internal/config"
	"loadtrack/internal/events"
	"loadtrack/internal/fatigue"
	"loadtrack/internal/loadout"
	"loadtrack/internal/logger"
	"loadtrack/internal/model"
	"loadtrack/internal/postflight"
	"loadtrack/internal/session"
	"loadtrack/internal/store"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "loadtrack - commands:")
	fmt.Fprintln(w, "  init       - create the station database")
	fmt.Fprintln(w, "  seed       - fill the database with demonstration data")
	fmt.Fprintln(w, "  lifestatus - print a launcher's life aggregate")
	fmt.Fprintln(w, "  fatigue    - print the fatigue report for a launcher")
	fmt.Fprintln(w, "  pending    - list an aircraft's missions awaiting post-flight data")
	fmt.Fprintln(w, "  load       - replace a mission's stored loadout")
	fmt.Fprintln(w, "  record     - enter post-flight data for a mission")
	fmt.Fprintln(w, "  export     - ship recorded data to the analytics warehouse")
	fmt.Fprintln(w, "  sync       - push life aggregates to the shared office database")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  loadtrack init [-config station.yaml]")
	fmt.Fprintln(w, "  loadtrack seed [-config station.yaml] [-aircraft 3] [-missions 20]")
	fmt.Fprintln(w, "  loadtrack lifestatus -serial SN [-config station.yaml]")
	fmt.Fprintln(w, "  loadtrack fatigue -part PN -serial SN [-config station.yaml]")
	fmt.Fprintln(w, "  loadtrack pending -aircraft SERIAL [-config station.yaml]")
	fmt.Fprintln(w, "  loadtrack load -mission ID -assign \"TIP 1=weapon/W-AIM9/SN-1;O/B 3=launcher/L-LAU7/SN-2\" [-operator NAME]")
	fmt.Fprintln(w, "  loadtrack record -mission ID [-gmax G] [-gmin G] [-alt FT] [-speed KT] [-fired \"TIP 1,FWD 9\"] [-operator NAME]")
	fmt.Fprintln(w, "  loadtrack export [-config station.yaml]")
	fmt.Fprintln(w, "  loadtrack sync [-config station.yaml]")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "init":
		runInit(os.Args[2:])
	case "seed":
		runSeed(os.Args[2:])
	case "lifestatus":
		runLifeStatus(os.Args[2:])
	case "fatigue":
		runFatigue(os.Args[2:])
	case "pending":
		runPending(os.Args[2:])
	case "load":
		runLoad(os.Args[2:])
	case "record":
		runRecord(os.Args[2:])
	case "export":
		runExport(os.Args[2:])
	case "sync":
		runSync(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

// setup loads the config, builds the logger and opens the station
// database. All subcommands start here.
func setup(configPath string) (config.Config, *zap.Logger, *store.Store) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	s, err := store.Open(cfg.SQLitePath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	return cfg, log, s
}

func runInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	_ = fs.Parse(args)

	cfg, log, s := setup(*configPath)
	defer func() { _ = s.Close() }()
	log.Info("station database ready", zap.String("path", cfg.SQLitePath))
}

func runSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	nAircraft := fs.Int("aircraft", 3, "Aircraft to create")
	nMissions := fs.Int("missions", 20, "Missions to create")
	_ = fs.Parse(args)

	_, log, s := setup(*configPath)
	defer func() { _ = s.Close() }()

	weapons := []model.Weapon{
		{PartNumber: "W-AIM9", Nomenclature: "AIM-9 Sidewinder", Manufacturer: fake.Company()},
		{PartNumber: "W-AIM120", Nomenclature: "AIM-120 AMRAAM", Manufacturer: fake.Company()},
		{PartNumber: "W-IRIST", Nomenclature: "IRIS-T", Manufacturer: fake.Company()},
	}
	for _, w := range weapons {
		mass := fake.Float64Range(80, 160)
		w.MassKg = &mass
		if err := s.InsertWeapon(w); err != nil {
			log.Warn("seed weapon", zap.String("part_number", w.PartNumber), zap.Error(err))
		}
	}

	launchers := []model.Launcher{
		{PartNumber: "L-LAU7", Nomenclature: "LAU-7", Manufacturer: fake.Company(), LifeHours: 8000},
		{PartNumber: "L-LAU129", Nomenclature: "LAU-129", Manufacturer: fake.Company(), LifeHours: 10000},
	}
	for _, l := range launchers {
		if err := s.InsertLauncher(l); err != nil {
			log.Warn("seed launcher", zap.String("part_number", l.PartNumber), zap.Error(err))
		}
	}

	var tails []string
	for i := 0; i < *nAircraft; i++ {
		serial := fmt.Sprintf("MM%d", 7001+i)
		tails = append(tails, serial)
		if err := s.InsertAircraft(model.Aircraft{Serial: serial}); err != nil {
			log.Warn("seed aircraft", zap.String("serial", serial), zap.Error(err))
		}
	}

	for i := 0; i < *nMissions; i++ {
		m := &model.Mission{
			Aircraft:     tails[fake.IntRange(0, len(tails)-1)],
			FlightNumber: i + 1,
			Date:         fake.DateRange(time.Now().AddDate(0, -6, 0), time.Now()),
			Departure:    fmt.Sprintf("%02d:%02d", fake.IntRange(6, 12), fake.IntRange(0, 59)),
		}
		dep, _ := time.Parse(model.TimeLayout, m.Departure)
		m.Arrival = dep.Add(time.Duration(fake.IntRange(30, 180)) * time.Minute).Format(model.TimeLayout)
		if err := s.InsertMission(m); err != nil {
			log.Warn("seed mission", zap.Int("flight_number", m.FlightNumber), zap.Error(err))
		}
	}

	log.Info("seeded demonstration data",
		zap.Int("aircraft", *nAircraft),
		zap.Int("missions", *nMissions))
}

func runLifeStatus(args []string) {
	fs := flag.NewFlagSet("lifestatus", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	serial := fs.String("serial", "", "Launcher serial number")
	_ = fs.Parse(args)

	if *serial == "" {
		fmt.Fprintln(os.Stderr, "-serial is required")
		os.Exit(2)
	}

	_, _, s := setup(*configPath)
	defer func() { _ = s.Close() }()

	st, err := s.LauncherLifeStatus(*serial)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read life status: %v\n", err)
		os.Exit(1)
	}
	if st == nil {
		fmt.Printf("Launcher %s has no mission history\n", *serial)
		return
	}
	fmt.Printf("%s (%s, s/n %s)\n", st.Nomenclature, st.PartNumber, st.Serial)
	fmt.Printf("  missions:       %d (%d fired, %d not fired)\n", st.Missions, st.MissionsFired, st.MissionsNotFired)
	fmt.Printf("  flight hours:   %.1f\n", st.FlightHours)
	fmt.Printf("  residual life:  %.1f%%\n", st.ResidualLifePct)
}

func runFatigue(args []string) {
	fs := flag.NewFlagSet("fatigue", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	part := fs.String("part", "", "Launcher part number")
	serial := fs.String("serial", "", "Launcher serial number")
	_ = fs.Parse(args)

	if *part == "" || *serial == "" {
		fmt.Fprintln(os.Stderr, "-part and -serial are required")
		os.Exit(2)
	}

	_, _, s := setup(*configPath)
	defer func() { _ = s.Close() }()

	l, err := s.LauncherByPartNumber(*part)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to look up launcher: %v\n", err)
		os.Exit(1)
	}
	if l == nil {
		fmt.Fprintf(os.Stderr, "Unknown launcher part number %q\n", *part)
		os.Exit(1)
	}

	m := fatigue.NewSimulated(rand.New(rand.NewSource(time.Now().UnixNano())))
	r := m.Report(l, *serial)
	fmt.Printf("Pylon %s on %s\n", r.PylonID, r.AircraftType)
	fmt.Printf("  launcher:      %s (%s, s/n %s)\n", r.Launcher, r.PartNumber, r.Serial)
	fmt.Printf("  flight hours:  %.0f\n", r.FlightHours)
	fmt.Printf("  fatigue index: %.2f\n", r.Index)
}

func runPending(args []string) {
	fs := flag.NewFlagSet("pending", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	aircraft := fs.String("aircraft", "", "Aircraft serial number")
	_ = fs.Parse(args)

	if *aircraft == "" {
		fmt.Fprintln(os.Stderr, "-aircraft is required")
		os.Exit(2)
	}

	_, _, s := setup(*configPath)
	defer func() { _ = s.Close() }()

	missions, err := s.PendingMissions(*aircraft)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list pending missions: %v\n", err)
		os.Exit(1)
	}
	if len(missions) == 0 {
		fmt.Printf("No missions of %s are awaiting post-flight data\n", *aircraft)
		return
	}
	for _, m := range missions {
		fmt.Printf("flight %d on %s  %s-%s\n", m.FlightNumber, m.Date.Format(model.DateLayout), m.Departure, m.Arrival)
	}
}

// parseAssignments reads "POS=kind/part/serial" entries separated by
// semicolons. Position codes contain spaces and slashes ("O/B 3"), so
// kind, part number and serial are slash-separated on the right of "=".
func parseAssignments(arg string) (*loadout.Loadout, error) {
	l := loadout.New()
	for _, entry := range strings.Split(arg, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		pos, rest, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("malformed assignment %q", entry)
		}
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed assignment %q, want POS=kind/part/serial", entry)
		}
		a := loadout.Assignment{
			Kind:       loadout.Kind(strings.TrimSpace(parts[0])),
			PartNumber: strings.TrimSpace(parts[1]),
			Serial:     strings.TrimSpace(parts[2]),
		}
		if err := l.Assign(strings.TrimSpace(pos), a); err != nil {
			return nil, fmt.Errorf("assign %q: %w", entry, err)
		}
	}
	return l, nil
}

func runLoad(args []string) {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	missionID := fs.Int64("mission", 0, "Mission id")
	assignSpec := fs.String("assign", "", "Semicolon-separated POS=kind/part/serial assignments")
	operator := fs.String("operator", "", "Operator username")
	_ = fs.Parse(args)

	if *missionID == 0 {
		fmt.Fprintln(os.Stderr, "-mission is required")
		os.Exit(2)
	}

	l, err := parseAssignments(*assignSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad -assign: %v\n", err)
		os.Exit(2)
	}

	cfg, log, s := setup(*configPath)
	defer func() { _ = s.Close() }()

	var pub *events.Publisher
	if cfg.NATS.Enabled {
		pub, err = events.Connect(cfg.NATS.URL)
		if err != nil {
			log.Warn("event feed unavailable", zap.Error(err))
		} else {
			defer pub.Close()
		}
	}

	sess := session.New(model.User{Username: *operator})
	rec := postflight.NewRecorder(s, pub, sess, log)
	if err := rec.SaveLoadout(*missionID, l); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save loadout: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %d assignments for mission %d\n", l.Len(), *missionID)
}

func runRecord(args []string) {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	missionID := fs.Int64("mission", 0, "Mission id")
	gmax := fs.Float64("gmax", 0, "Max G-load")
	gmin := fs.Float64("gmin", 0, "Min G-load")
	alt := fs.Int("alt", 0, "Average altitude (ft)")
	speed := fs.Int("speed", 0, "Max speed (kt)")
	firedList := fs.String("fired", "", "Comma-separated fired positions")
	operator := fs.String("operator", "", "Operator username")
	_ = fs.Parse(args)

	if *missionID == 0 {
		fmt.Fprintln(os.Stderr, "-mission is required")
		os.Exit(2)
	}

	cfg, log, s := setup(*configPath)
	defer func() { _ = s.Close() }()

	var pub *events.Publisher
	if cfg.NATS.Enabled {
		var err error
		pub, err = events.Connect(cfg.NATS.URL)
		if err != nil {
			log.Warn("event feed unavailable", zap.Error(err))
		} else {
			defer pub.Close()
		}
	}

	sess := session.New(model.User{Username: *operator})
	rec := postflight.NewRecorder(s, pub, sess, log)

	l, err := s.LoadLoadout(*missionID)
	if err != nil && !errors.Is(err, store.ErrNoLoadoutTables) {
		fmt.Fprintf(os.Stderr, "Failed to load loadout: %v\n", err)
		os.Exit(1)
	}
	fired := loadout.NewFiredStatus()
	if *firedList != "" {
		for _, pos := range strings.Split(*firedList, ",") {
			pos = strings.TrimSpace(pos)
			if err := fired.Toggle(l, pos); err != nil {
				fmt.Fprintf(os.Stderr, "Cannot mark %q fired: %v\n", pos, err)
				os.Exit(1)
			}
		}
	}

	rd := &model.RecordedData{GLoadMax: *gmax, GLoadMin: *gmin, AvgAltitude: *alt, MaxSpeed: *speed}
	if err := rec.Record(*missionID, rd, fired); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to record: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Recorded flight %d of %s: %s\n", rd.FlightNumber, rd.Aircraft, rd.MissileStatus)
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	_ = fs.Parse(args)

	cfg, log, s := setup(*configPath)
	defer func() { _ = s.Close() }()

	if !cfg.ClickHouse.Enabled {
		fmt.Fprintln(os.Stderr, "ClickHouse export is not enabled in the config")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ch, err := store.OpenClickHouse(ctx, store.ClickHouseConfig{
		Host:     cfg.ClickHouse.Host,
		Port:     cfg.ClickHouse.Port,
		Database: cfg.ClickHouse.Database,
		User:     cfg.ClickHouse.User,
		Password: cfg.ClickHouse.Password,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to ClickHouse: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.CreateSchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create warehouse schema: %v\n", err)
		os.Exit(1)
	}

	records, err := s.AllRecordedData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read recorded data: %v\n", err)
		os.Exit(1)
	}
	var batch []model.RecordedData
	for _, rd := range records {
		if !rd.Processed {
			batch = append(batch, rd)
		}
	}
	if err := ch.ExportRecordedData(ctx, batch); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to export: %v\n", err)
		os.Exit(1)
	}
	for _, rd := range batch {
		if err := s.MarkProcessed(rd.ID); err != nil {
			log.Warn("mark processed", zap.Int64("id", rd.ID), zap.Error(err))
		}
	}
	log.Info("exported recorded data", zap.Int("records", len(batch)))
}

func runSync(args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file path")
	_ = fs.Parse(args)

	cfg, log, s := setup(*configPath)
	defer func() { _ = s.Close() }()

	if !cfg.Postgres.Enabled {
		fmt.Fprintln(os.Stderr, "Postgres sync is not enabled in the config")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := store.OpenPostgres(ctx, store.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		Database: cfg.Postgres.Database,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to Postgres: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.CreateSchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create mirror schema: %v\n", err)
		os.Exit(1)
	}

	statuses, err := s.LauncherLifeStatuses()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read life statuses: %v\n", err)
		os.Exit(1)
	}
	for _, st := range statuses {
		if err := pg.SyncLifeStatus(ctx, st); err != nil {
			log.Warn("sync life status", zap.String("serial", st.Serial), zap.Error(err))
		}
	}
	log.Info("synced life aggregates", zap.Int("launchers", len(statuses)))
}
