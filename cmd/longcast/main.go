// Package main provides the CLI entrypoint for longcast.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/longcast/internal/backup"
	"github.com/verte-zerg/longcast/internal/config"
	"github.com/verte-zerg/longcast/internal/dashui"
	"github.com/verte-zerg/longcast/internal/model"
	"github.com/verte-zerg/longcast/internal/session"
	"github.com/verte-zerg/longcast/internal/stats"
	"github.com/verte-zerg/longcast/internal/store"
	"github.com/verte-zerg/longcast/internal/trend"
	"github.com/verte-zerg/longcast/internal/tui"
)

const (
	defaultChartHeight = 10
	defaultSort        = stats.SortDateDesc
)

var (
	startLocation   string
	startTechnique  string
	startLeadWeight string
	startRodModel   string
	startRodLength  float64
	startRodRating  string
	startReel       string
	startLine       string
	startWind       string
	startWindDir    string
	startTemp       float64
	startHumidity   int
	startNotes      string
	startAt         string
	startNoUI       bool

	castNote     string
	castWind     string
	castWindDir  string
	castTemp     float64
	castHumidity int

	endForce bool

	sessionsTechnique string
	sessionsDays      int
	sessionsSort      string

	statsChartHeight int
	statsChartWidth  int

	profileName     string
	profileSurname  string
	profileAge      int
	profileSex      string
	profileHeight   float64
	profileWeight   float64
	profileLevel    string
	profileGoal     float64
	profileGround   string

	exportOut string

	clearForce   bool
	clearScratch bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "longcast",
		Short:         "Long-distance casting practice tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRootCmd,
	}

	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newCastCmd())
	rootCmd.AddCommand(newEndCmd())
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

// The root command resumes the active session when one exists, otherwise
// opens the dashboard.
func runRootCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	tracker := session.New(st)
	active, err := tracker.Active(context.Background())
	if err != nil {
		return err
	}
	if active != nil {
		return runSessionUI(tracker, active)
	}

	filters := dashui.Filters{SortKey: defaultSort}
	applyStringConfig(cmd, "", &filters.SortKey, fileCfg.History.Sort)
	applyIntConfig(cmd, "", &filters.Days, fileCfg.History.Days)
	program := tea.NewProgram(dashui.NewModel(st, filters), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a training session",
		Args:  cobra.NoArgs,
		RunE:  runStartCmd,
	}
	cmd.Flags().StringVar(&startLocation, "location", "", "training ground")
	cmd.Flags().StringVar(&startTechnique, "technique", "", "casting technique")
	cmd.Flags().StringVar(&startLeadWeight, "lead-weight", "", "lead weight descriptor")
	cmd.Flags().StringVar(&startRodModel, "rod-model", "", "rod model")
	cmd.Flags().Float64Var(&startRodLength, "rod-length", 0, "rod length in meters")
	cmd.Flags().StringVar(&startRodRating, "rod-rating", "", "rod casting weight rating")
	cmd.Flags().StringVar(&startReel, "reel", "", "reel")
	cmd.Flags().StringVar(&startLine, "line", "", "line")
	cmd.Flags().StringVar(&startWind, "wind", "", "wind conditions")
	cmd.Flags().StringVar(&startWindDir, "wind-direction", "", "wind direction")
	cmd.Flags().Float64Var(&startTemp, "temperature", 0, "temperature in °C")
	cmd.Flags().IntVar(&startHumidity, "humidity", 0, "relative humidity in %")
	cmd.Flags().StringVar(&startNotes, "notes", "", "session notes")
	cmd.Flags().StringVar(&startAt, "at", "", "start time (2006-01-02T15:04), default now")
	cmd.Flags().BoolVar(&startNoUI, "no-ui", false, "start without opening the session UI")
	return cmd
}

func runStartCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "location", &startLocation, fileCfg.Session.Location)
	applyStringConfig(cmd, "technique", &startTechnique, fileCfg.Session.Technique)
	applyStringConfig(cmd, "lead-weight", &startLeadWeight, fileCfg.Session.LeadWeight)
	applyStringConfig(cmd, "rod-model", &startRodModel, fileCfg.Session.RodModel)
	applyStringConfig(cmd, "reel", &startReel, fileCfg.Session.Reel)
	applyStringConfig(cmd, "line", &startLine, fileCfg.Session.Line)

	params := model.SessionParams{
		Location:      startLocation,
		Technique:     startTechnique,
		LeadWeight:    startLeadWeight,
		RodModel:      startRodModel,
		RodRating:     startRodRating,
		Reel:          startReel,
		Line:          startLine,
		Wind:          startWind,
		WindDirection: startWindDir,
		Notes:         startNotes,
	}
	if cmd.Flags().Changed("rod-length") {
		params.RodLength = &startRodLength
	}
	if cmd.Flags().Changed("temperature") {
		params.Temperature = &startTemp
	}
	if cmd.Flags().Changed("humidity") {
		params.Humidity = &startHumidity
	}
	if startAt != "" {
		startedAt, err := time.ParseInLocation("2006-01-02T15:04", startAt, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
		params.StartedAt = startedAt
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	tracker := session.New(st)
	started, err := tracker.Start(context.Background(), params)
	if err != nil {
		return err
	}
	fmt.Printf("Session started at %s\n", started.StartedAt.Format("15:04"))
	if startNoUI {
		return nil
	}
	return runSessionUI(tracker, &started)
}

func runSessionUI(tracker *session.Tracker, active *model.Session) error {
	uiModel := tui.NewModel(tracker, active)
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run session UI: %w", err)
	}
	if m, ok := final.(*tui.Model); ok && m.Ended() {
		fmt.Println("Session ended and saved to history.")
	}
	return nil
}

func newCastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cast <distance>",
		Short: "Record a cast in the active session",
		Args:  cobra.ExactArgs(1),
		RunE:  runCastCmd,
	}
	cmd.Flags().StringVar(&castNote, "note", "", "cast note")
	cmd.Flags().StringVar(&castWind, "wind", "", "updated wind conditions")
	cmd.Flags().StringVar(&castWindDir, "wind-direction", "", "updated wind direction")
	cmd.Flags().Float64Var(&castTemp, "temperature", 0, "updated temperature in °C")
	cmd.Flags().IntVar(&castHumidity, "humidity", 0, "updated relative humidity in %")
	return cmd
}

func runCastCmd(cmd *cobra.Command, args []string) error {
	distance, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid distance %q: %w", args[0], err)
	}

	override := model.WeatherOverride{}
	if cmd.Flags().Changed("wind") {
		override.Wind = &castWind
	}
	if cmd.Flags().Changed("wind-direction") {
		override.WindDirection = &castWindDir
	}
	if cmd.Flags().Changed("temperature") {
		override.Temperature = &castTemp
	}
	if cmd.Flags().Changed("humidity") {
		override.Humidity = &castHumidity
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	cast, err := session.New(st).RecordCast(context.Background(), distance, castNote, override)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded %.1fm at %s\n", cast.Distance, cast.Timestamp.Format("15:04:05"))
	return nil
}

func newEndCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "end",
		Short: "End the active session",
		Args:  cobra.NoArgs,
		RunE:  runEndCmd,
	}
	cmd.Flags().BoolVar(&endForce, "force", false, "end even when no casts were recorded")
	return cmd
}

func runEndCmd(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ended, err := session.New(st).End(context.Background(), endForce)
	if err != nil {
		if err == session.ErrEmptySession {
			return fmt.Errorf("%w (use --force to end anyway)", err)
		}
		return err
	}
	fmt.Printf("Session ended: %d casts", len(ended.Casts))
	if ended.Stats != nil {
		fmt.Printf(", mean %.1fm, max %.1fm, min %.1fm", ended.Stats.Mean, ended.Stats.Max, ended.Stats.Min)
	}
	fmt.Println()
	return nil
}

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List completed sessions",
		Args:  cobra.NoArgs,
		RunE:  runSessionsCmd,
	}
	cmd.Flags().StringVar(&sessionsTechnique, "technique", "", "filter by technique")
	cmd.Flags().IntVar(&sessionsDays, "days", 0, "limit to sessions from the last N days")
	cmd.Flags().StringVar(&sessionsSort, "sort", defaultSort, "sort key (date-desc|date-asc|distance-desc|distance-asc)")
	cmd.AddCommand(newSessionsDeleteCmd())
	return cmd
}

func runSessionsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "sort", &sessionsSort, fileCfg.History.Sort)
	applyIntConfig(cmd, "days", &sessionsDays, fileCfg.History.Days)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	sessions, err := st.LoadSessions(context.Background())
	if err != nil {
		return err
	}
	listed := stats.Sort(stats.Filter(sessions, stats.FilterOptions{
		Technique: sessionsTechnique,
		Days:      sessionsDays,
	}), sessionsSort)
	if len(listed) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	rows := make([][]string, 0, len(listed))
	for _, s := range listed {
		meanText, maxText := "--", "--"
		if s.Stats != nil {
			meanText = fmt.Sprintf("%.1fm", s.Stats.Mean)
			maxText = fmt.Sprintf("%.1fm", s.Stats.Max)
		}
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.StartedAt.Format("02/01/2006 15:04"),
			s.Location,
			s.Technique,
			strconv.Itoa(len(s.Casts)),
			meanText,
			maxText,
		})
	}
	headers := []string{"ID", "Date", "Location", "Technique", "Casts", "Mean", "Max"}
	for _, line := range stats.FormatTable(headers, rows, map[int]bool{4: true, 5: true, 6: true}) {
		fmt.Println(line)
	}
	return nil
}

func newSessionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session from history",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id %q: %w", args[0], err)
			}
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)
			if err := session.New(st).DeleteSession(context.Background(), id); err != nil {
				return err
			}
			fmt.Println("Session deleted.")
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show overall statistics and the trend chart",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsChartHeight, "height", defaultChartHeight, "chart height in rows")
	cmd.Flags().IntVar(&statsChartWidth, "width", 0, "chart width in columns (default: terminal width)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "height", &statsChartHeight, fileCfg.Chart.Height)
	applyIntConfig(cmd, "width", &statsChartWidth, fileCfg.Chart.Width)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	sessions, err := st.LoadSessions(context.Background())
	if err != nil {
		return err
	}

	overall, ok := stats.Overall(sessions)
	if !ok {
		fmt.Println("No casts recorded yet.")
		return nil
	}
	fmt.Printf("Average distance: %.1f m\n", overall.MeanDistance)
	fmt.Printf("Record distance:  %.1f m\n", overall.RecordDistance)
	fmt.Printf("Total casts:      %d\n", overall.TotalCasts)
	if improvement := stats.Improvement(sessions); improvement != nil {
		sign := ""
		if *improvement > 0 {
			sign = "+"
		}
		fmt.Printf("Improvement:      %s%.1f%%\n", sign, *improvement)
	} else {
		fmt.Println("Improvement:      -- (need two sessions with casts)")
	}
	fmt.Println()

	width := statsChartWidth
	height := statsChartHeight
	if width <= 0 {
		width, _ = trend.AutoSize()
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	chart := trend.Build(sessions, width, height)
	if chart.Empty {
		fmt.Println("No sessions to chart.")
		return nil
	}
	fmt.Println("Average distance per session")
	return trend.Render(os.Stdout, chart)
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the saved profile",
		Args:  cobra.NoArgs,
		RunE:  runProfileShowCmd,
	}
	cmd.AddCommand(newProfileSetCmd())
	return cmd
}

func runProfileShowCmd(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	profile, err := st.LoadProfile(context.Background())
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Println("No profile saved. Use: longcast profile set")
		return nil
	}
	fmt.Printf("Name:            %s %s\n", profile.Name, profile.Surname)
	if profile.Age > 0 {
		fmt.Printf("Age:             %d\n", profile.Age)
	}
	if profile.Sex != "" {
		fmt.Printf("Sex:             %s\n", profile.Sex)
	}
	if profile.Level != "" {
		fmt.Printf("Level:           %s\n", profile.Level)
	}
	if profile.TrainingGround != "" {
		fmt.Printf("Training ground: %s\n", profile.TrainingGround)
	}
	if profile.GoalDistance != nil {
		fmt.Printf("Goal distance:   %.1f m\n", *profile.GoalDistance)
	}
	if bmi, category, ok := stats.BMI(profile.WeightKg, profile.HeightCm); ok {
		fmt.Printf("BMI:             %.1f (%s)\n", bmi, category)
	}
	return nil
}

func newProfileSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the profile (overwrites the previous one)",
		Args:  cobra.NoArgs,
		RunE:  runProfileSetCmd,
	}
	cmd.Flags().StringVar(&profileName, "name", "", "first name")
	cmd.Flags().StringVar(&profileSurname, "surname", "", "surname")
	cmd.Flags().IntVar(&profileAge, "age", 0, "age in years")
	cmd.Flags().StringVar(&profileSex, "sex", "", "sex")
	cmd.Flags().Float64Var(&profileHeight, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&profileWeight, "weight", 0, "weight in kg")
	cmd.Flags().StringVar(&profileLevel, "level", "", "skill level")
	cmd.Flags().Float64Var(&profileGoal, "goal", 0, "goal distance in meters")
	cmd.Flags().StringVar(&profileGround, "training-ground", "", "usual training ground")
	return cmd
}

func runProfileSetCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	profile := model.Profile{
		Name:           profileName,
		Surname:        profileSurname,
		Age:            profileAge,
		Sex:            profileSex,
		HeightCm:       profileHeight,
		WeightKg:       profileWeight,
		Level:          profileLevel,
		TrainingGround: profileGround,
	}
	if cmd.Flags().Changed("goal") {
		profile.GoalDistance = &profileGoal
	}
	if err := st.SaveProfile(context.Background(), profile); err != nil {
		return err
	}
	fmt.Println("Profile saved.")
	return nil
}

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [category]",
		Short: "List remembered values for a field category",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSuggestCmd,
	}
}

func runSuggestCmd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	suggestions, err := st.LoadSuggestions(context.Background())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		categories := make([]string, 0, len(suggestions))
		for category := range suggestions {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", category, len(suggestions[category]))
		}
		return nil
	}
	values := suggestions[args[0]]
	if len(values) == 0 {
		return fmt.Errorf("no suggestions for category %q", args[0])
	}
	for _, value := range values {
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data to a JSON backup file",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", "", "output directory (default: data dir exports)")
	return cmd
}

func runExportCmd(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	sessions, err := st.LoadSessions(ctx)
	if err != nil {
		return err
	}
	profile, err := st.LoadProfile(ctx)
	if err != nil {
		return err
	}
	suggestions, err := st.LoadSuggestions(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	snapshot := backup.Export(backup.State{
		Sessions:    sessions,
		Profile:     profile,
		Suggestions: suggestions,
	}, now)
	blob, err := backup.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	outDir := exportOut
	if outDir == "" {
		outDir = config.DefaultExportDir()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	outPath := filepath.Join(outDir, backup.Filename(now))
	if err := os.WriteFile(outPath, blob, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	fmt.Printf("Exported %d sessions to %s\n", len(sessions), outPath)
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a backup file, replacing current data",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(_ *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	state, err := backup.Import(raw)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	if err := st.SaveSessions(ctx, state.Sessions); err != nil {
		return err
	}
	if state.Profile != nil {
		if err := st.SaveProfile(ctx, *state.Profile); err != nil {
			return err
		}
	}
	if err := st.SaveSuggestions(ctx, state.Suggestions); err != nil {
		return err
	}
	fmt.Printf("Imported %d sessions.\n", len(state.Sessions))
	return nil
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete stored data, or just the active session",
		Args:  cobra.NoArgs,
		RunE:  runClearCmd,
	}
	cmd.Flags().BoolVar(&clearForce, "force", false, "confirm deleting everything")
	cmd.Flags().BoolVar(&clearScratch, "scratch", false, "discard only the active session, keeping history")
	return cmd
}

func runClearCmd(_ *cobra.Command, _ []string) error {
	if clearScratch {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(st)
		if err := session.New(st).Abandon(context.Background()); err != nil {
			return err
		}
		fmt.Println("Active session discarded.")
		return nil
	}
	if !clearForce {
		return fmt.Errorf("this deletes all sessions, the profile, and suggestions; re-run with --force")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)
	if err := st.ClearAll(context.Background()); err != nil {
		return err
	}
	fmt.Println("All data deleted.")
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# longcast configuration
# Uncomment a value to enable it. CLI flags override config values.

[session]
# location = "Beach"      # Default training ground
# technique = "Pendulum"  # Default technique
# lead-weight = "150g"    # Default lead weight
# rod-model = ""          # Default rod model
# reel = ""               # Default reel
# line = ""               # Default line

[chart]
# height = %d             # Trend chart height in rows
# width = 0               # Trend chart width (0 = terminal width)

[history]
# sort = %q       # Session list order
# days = 0                # Limit history to the last N days
`, defaultChartHeight, defaultSort)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd != nil && name != "" && cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd != nil && name != "" && cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
