package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/asciiart/internal/analysis"
	"github.com/san-kum/asciiart/internal/art"
	"github.com/san-kum/asciiart/internal/config"
	"github.com/san-kum/asciiart/internal/filter"
	"github.com/san-kum/asciiart/internal/format"
	"github.com/san-kum/asciiart/internal/script"
	"github.com/san-kum/asciiart/internal/session"
	"github.com/san-kum/asciiart/internal/storage"
	"github.com/san-kum/asciiart/internal/tui"
)

const defaultConfigPath = ".asciiart/config.yaml"

var (
	cfg        *config.Config
	configFile string
	logLevel   string

	width     int
	height    int
	preset    string
	layerName string

	blank      string
	showLayers bool

	brushChar string
	thickness int
	filled    bool
	layerIdx  int
	selection string

	axis     string
	outChar  string
	speed    float64
	phase    float64
	strength int
	whole    bool

	outPath string
	top     int
	docName string
	theme   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "asciiart",
		Short:         "layered ascii art editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	newCmd := &cobra.Command{
		Use:   "new [file]",
		Short: "create an empty canvas",
		Args:  cobra.ExactArgs(1),
		RunE:  newCanvas,
	}
	newCmd.Flags().IntVar(&width, "width", 0, "canvas width")
	newCmd.Flags().IntVar(&height, "height", 0, "canvas height")
	newCmd.Flags().StringVar(&preset, "preset", "", "use a size preset")
	newCmd.Flags().StringVar(&layerName, "layer", "Background", "name of the first layer")

	showCmd := &cobra.Command{
		Use:   "show [file]",
		Short: "print the composed canvas",
		Args:  cobra.ExactArgs(1),
		RunE:  showCanvas,
	}
	showCmd.Flags().StringVar(&blank, "blank", "", "glyph for transparent cells")
	showCmd.Flags().BoolVar(&showLayers, "layers", false, "list layers instead of the image")

	importCmd := &cobra.Command{
		Use:   "import [text file] [art file]",
		Short: "convert plain text into a layered art file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  importText,
	}

	exportCmd := &cobra.Command{
		Use:   "export [art file] [file]",
		Short: "write a canvas in the format chosen by the target extension",
		Args:  cobra.ExactArgs(2),
		RunE:  exportArt,
	}

	drawCmd := &cobra.Command{
		Use:   "draw [file] [tool] [x0] [y0] [x1] [y1]",
		Short: "apply a drawing tool",
		Long:  "apply a drawing tool between two canvas points\n\ntools: " + strings.Join(session.ToolNames(), ", "),
		Args:  cobra.RangeArgs(4, 6),
		RunE:  drawTool,
	}
	drawCmd.Flags().StringVar(&brushChar, "char", "", "brush character")
	drawCmd.Flags().IntVar(&thickness, "thickness", 0, "brush thickness")
	drawCmd.Flags().BoolVar(&filled, "filled", false, "fill rectangles and circles")
	drawCmd.Flags().IntVar(&layerIdx, "layer", -1, "layer index (default top)")
	drawCmd.Flags().StringVar(&selection, "select", "", "restrict drawing to x,y,w,h")

	filterCmd := &cobra.Command{
		Use:   "filter [file] [name]",
		Short: "apply a filter",
		Long:  "apply a filter to one layer or the whole canvas\n\nfilters: " + strings.Join(filter.Names(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE:  applyFilter,
	}
	filterCmd.Flags().StringVar(&axis, "axis", "x", "axis (x or y)")
	filterCmd.Flags().StringVar(&outChar, "char", "#", "outline character")
	filterCmd.Flags().Float64Var(&speed, "speed", 0.5, "wave speed")
	filterCmd.Flags().Float64Var(&phase, "phase", 0, "wave phase")
	filterCmd.Flags().IntVar(&strength, "strength", 1, "wave strength")
	filterCmd.Flags().BoolVar(&whole, "whole", false, "apply to every layer")
	filterCmd.Flags().IntVar(&layerIdx, "layer", -1, "layer index (default top)")

	runCmd := &cobra.Command{
		Use:   "run [script...]",
		Short: "run yaml drawing scripts",
		Long:  "run yaml drawing scripts; with several scripts --out names a directory",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScript,
	}
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result to a file")

	statsCmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "density and glyph statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  showStats,
	}
	statsCmd.Flags().IntVar(&top, "top", 10, "number of glyphs to list")

	copyCmd := &cobra.Command{
		Use:   "copy [file]",
		Short: "copy the composed canvas to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE:  copyCanvas,
	}
	copyCmd.Flags().StringVar(&blank, "blank", "", "glyph for transparent cells")

	viewCmd := &cobra.Command{
		Use:   "view [file]",
		Short: "open the terminal editor",
		Args:  cobra.ExactArgs(1),
		RunE:  viewCanvas,
	}
	viewCmd.Flags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(tui.ThemeNames(), ", ")+")")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list canvas size presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%s\n", name, p.Width, p.Height, p.Description)
			}
			return w.Flush()
		},
	}

	paletteCmd := &cobra.Command{
		Use:   "palette [file]",
		Short: "validate and print a palette",
		Args:  cobra.ExactArgs(1),
		RunE:  showPalette,
	}
	paletteCmd.Flags().StringVarP(&outPath, "out", "o", "", "convert the palette to another file")

	rootCmd.AddCommand(newCmd, showCmd, importCmd, exportCmd, drawCmd, filterCmd, runCmd,
		statsCmd, copyCmd, viewCmd, presetsCmd, paletteCmd, libraryCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads the config and installs the logger. An explicit --config
// must exist; the default path is optional.
func setup(cmd *cobra.Command) error {
	path := configFile
	if path == "" {
		path = defaultConfigPath
	}
	loaded, err := config.Load(path)
	switch {
	case err == nil:
		cfg = loaded
	case configFile == "" && errors.Is(err, os.ErrNotExist):
		cfg = config.DefaultConfig()
	default:
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	art.SetLogger(logger)
	return nil
}

// glyphFlag parses a flag that names exactly one drawable character.
func glyphFlag(flag, value string) (rune, error) {
	r := []rune(value)
	if len(r) != 1 {
		return 0, fmt.Errorf("%s needs a single character, got %q", flag, value)
	}
	if err := art.CheckGlyph(r[0]); err != nil {
		return 0, fmt.Errorf("%s: %w", flag, err)
	}
	return r[0], nil
}

func sessionOptions(path string) session.Options {
	return session.Options{
		HistoryCapacity: cfg.History.Capacity,
		Brush:           cfg.BrushRune(),
		Thickness:       cfg.Brush.Thickness,
		Path:            path,
	}
}

func openSession(path string) (*session.Session, error) {
	c, err := format.ReadArtFile(path)
	if err != nil {
		return nil, err
	}
	return session.New(c, sessionOptions(path))
}

func blankRune() rune {
	if blank != "" {
		return []rune(blank)[0]
	}
	return cfg.BlankRune()
}

func selectLayer(sess *session.Session, idx int) error {
	if idx < 0 {
		return nil
	}
	return sess.SelectLayer(idx)
}

func newCanvas(cmd *cobra.Command, args []string) error {
	w, h := cfg.Canvas.Width, cfg.Canvas.Height
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		w, h = p.Width, p.Height
	}
	if cmd.Flags().Changed("width") {
		w = width
	}
	if cmd.Flags().Changed("height") {
		h = height
	}

	c, err := art.NewCanvas(w, h)
	if err != nil {
		return err
	}
	l, err := art.NewLayer(layerName, w, h)
	if err != nil {
		return err
	}
	if err := c.AddLayer(l); err != nil {
		return err
	}
	if err := format.WriteArtFile(args[0], c); err != nil {
		return err
	}
	fmt.Printf("created %s (%dx%d)\n", args[0], w, h)
	return nil
}

func showCanvas(cmd *cobra.Command, args []string) error {
	c, err := format.ReadArtFile(args[0])
	if err != nil {
		return err
	}
	if !showLayers {
		fmt.Print(c.Render(blankRune()))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tVISIBLE\tBOUNDS")
	for i, l := range c.Layers() {
		fmt.Fprintf(w, "%d\t%s\t%v\t%s\n", i, l.Name(), l.Visible(), l.Bounds())
	}
	return w.Flush()
}

func importText(cmd *cobra.Command, args []string) error {
	src := args[0]
	dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".aaf"
	if len(args) > 1 {
		dst = args[1]
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	c, err := format.ReadText(f, name)
	if err != nil {
		return fmt.Errorf("import %s: %w", src, err)
	}
	if err := format.WriteArtFile(dst, c); err != nil {
		return err
	}
	fmt.Printf("imported %s -> %s (%dx%d)\n", src, dst, c.Width(), c.Height())
	return nil
}

func exportArt(cmd *cobra.Command, args []string) error {
	c, err := format.ReadArtFile(args[0])
	if err != nil {
		return err
	}
	return format.WriteArtFile(args[1], c)
}

func parseInts(values []string) ([]int, error) {
	out := make([]int, len(values))
	for i, v := range values {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", v)
		}
		out[i] = n
	}
	return out, nil
}

func drawTool(cmd *cobra.Command, args []string) error {
	path, toolName := args[0], args[1]
	coords, err := parseInts(args[2:])
	if err != nil {
		return err
	}
	if len(coords) == 3 {
		return fmt.Errorf("need both x1 and y1")
	}
	from := art.Pt(coords[0], coords[1])
	to := from
	if len(coords) == 4 {
		to = art.Pt(coords[2], coords[3])
	}

	sess, err := openSession(path)
	if err != nil {
		return err
	}
	if err := selectLayer(sess, layerIdx); err != nil {
		return err
	}
	if brushChar != "" {
		if sess.Brush, err = glyphFlag("--char", brushChar); err != nil {
			return err
		}
	}
	if thickness > 0 {
		sess.Thickness = thickness
	}
	if selection != "" {
		r, err := parseInts(strings.Split(selection, ","))
		if err != nil || len(r) != 4 {
			return fmt.Errorf("--select needs x,y,w,h")
		}
		if err := sess.SetSelection(art.NewRect(r[0], r[1], r[2], r[3])); err != nil {
			return err
		}
	}

	tool, err := session.ToolByName(toolName, sess.Brush, filled)
	if err != nil {
		return err
	}
	n, err := sess.Apply(tool, from, to)
	if err != nil {
		return err
	}
	if err := format.WriteArtFile(path, sess.Canvas()); err != nil {
		return err
	}
	fmt.Printf("%s: %d cells changed\n", tool.Name(), n)
	return nil
}

func applyFilter(cmd *cobra.Command, args []string) error {
	path := args[0]
	ax, err := filter.ParseAxis(axis)
	if err != nil {
		return err
	}
	ch, err := glyphFlag("--char", outChar)
	if err != nil {
		return err
	}
	params := map[string]float64{
		"axis":     float64(ax),
		"char":     float64(ch),
		"speed":    speed,
		"phase":    phase,
		"strength": float64(strength),
	}
	f, err := filter.New(args[1], params)
	if err != nil {
		return err
	}

	sess, err := openSession(path)
	if err != nil {
		return err
	}
	if err := selectLayer(sess, layerIdx); err != nil {
		return err
	}
	if err := sess.ApplyFilter(f, whole); err != nil {
		return err
	}
	return format.WriteArtFile(path, sess.Canvas())
}

func runScript(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return runScripts(cmd, args)
	}
	s, err := script.Load(args[0])
	if err != nil {
		return err
	}
	sess, err := script.NewSession(s, sessionOptions(outPath))
	if err != nil {
		return err
	}
	if err := script.Run(cmd.Context(), s, sess); err != nil {
		return err
	}
	if outPath == "" {
		fmt.Print(sess.Canvas().Render(cfg.BlankRune()))
		return nil
	}
	if err := format.WriteArtFile(outPath, sess.Canvas()); err != nil {
		return err
	}
	fmt.Printf("%s: %d steps -> %s\n", s.Name, len(s.Steps), outPath)
	return nil
}

func runScripts(cmd *cobra.Command, paths []string) error {
	scripts := make([]*script.Script, len(paths))
	for i, path := range paths {
		s, err := script.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if s.Name == "" {
			s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		scripts[i] = s
	}
	if outPath != "" {
		if err := os.MkdirAll(outPath, 0755); err != nil {
			return err
		}
	}

	failed := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCRIPT\tSTEPS\tRESULT")
	for i, r := range script.RunAll(cmd.Context(), scripts, sessionOptions("")) {
		status := "ok"
		if r.Err == nil && outPath != "" {
			r.Err = format.WriteArtFile(filepath.Join(outPath, r.Script.Name+".aaf"), r.Session.Canvas())
		}
		if r.Err != nil {
			status = r.Err.Error()
			failed++
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", paths[i], len(r.Script.Steps), status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scripts failed", failed, len(paths))
	}
	return nil
}

func showStats(cmd *cobra.Command, args []string) error {
	c, err := format.ReadArtFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("size: %dx%d\n", c.Width(), c.Height())
	fmt.Printf("layers: %d\n", c.LayerCount())
	fmt.Printf("coverage: %.1f%%\n", analysis.Coverage(c)*100)

	cols := analysis.ColumnDensity(c)
	if period := analysis.DominantPeriod(cols); period > 0 {
		fmt.Printf("column period: %d\n", period)
	}
	fmt.Println()

	plots := []struct {
		data    []float64
		caption string
	}{
		{analysis.RowDensity(c), "row density"},
		{cols, "column density"},
	}
	for _, p := range plots {
		if len(p.data) < 2 {
			continue
		}
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	bins := analysis.Sorted(analysis.Histogram(c))
	if len(bins) > top {
		bins = bins[:top]
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GLYPH\tCOUNT")
	for _, b := range bins {
		fmt.Fprintf(w, "%q\t%d\n", b.Rune, b.Count)
	}
	return w.Flush()
}

func copyCanvas(cmd *cobra.Command, args []string) error {
	c, err := format.ReadArtFile(args[0])
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(c.Render(blankRune())); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	fmt.Printf("copied %dx%d to clipboard\n", c.Width(), c.Height())
	return nil
}

func viewCanvas(cmd *cobra.Command, args []string) error {
	path := args[0]
	var sess *session.Session
	var err error
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		if _, err := format.Detect(path); err != nil {
			return err
		}
		sess, err = session.NewBlank(cfg.Canvas.Width, cfg.Canvas.Height, sessionOptions(path))
	} else {
		sess, err = openSession(path)
	}
	if err != nil {
		return err
	}

	name := theme
	if name == "" {
		name = cfg.Display.Theme
	}
	return tui.Run(sess, tui.Options{
		Theme: name,
		Blank: cfg.BlankRune(),
		Save: func(s *session.Session) error {
			return format.WriteArtFile(s.Path, s.Canvas())
		},
	})
}

func showPalette(cmd *cobra.Command, args []string) error {
	p, err := format.ReadPalette(args[0])
	if err != nil {
		return err
	}
	if outPath != "" {
		return format.WritePalette(outPath, p)
	}

	fmt.Printf("palette: %s (%d characters)\n", p.Name, len(p.Characters))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tCHAR\tCODE")
	for i, r := range p.Characters {
		fmt.Fprintf(w, "%d\t%c\tU+%04X\n", i, r, r)
	}
	return w.Flush()
}

func libraryCommand() *cobra.Command {
	libCmd := &cobra.Command{
		Use:   "library",
		Short: "manage the document library",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored documents",
		RunE:  listDocuments,
	}

	saveCmd := &cobra.Command{
		Use:   "save [file]",
		Short: "store an art file",
		Args:  cobra.ExactArgs(1),
		RunE:  saveDocument,
	}
	saveCmd.Flags().StringVar(&docName, "name", "", "document name (default file name)")

	loadCmd := &cobra.Command{
		Use:   "load [id or name] [file]",
		Short: "write a stored document to a file",
		Args:  cobra.ExactArgs(2),
		RunE:  loadDocument,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id or name]",
		Short: "remove a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(func(st *storage.Store) error {
				return st.Delete(cmd.Context(), args[0])
			})
		},
	}

	libCmd.AddCommand(listCmd, saveCmd, loadCmd, deleteCmd)
	return libCmd
}

func withLibrary(fn func(*storage.Store) error) error {
	st := storage.New(cfg.Library)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func listDocuments(cmd *cobra.Command, args []string) error {
	return withLibrary(func(st *storage.Store) error {
		entries, err := st.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no documents found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSIZE\tLAYERS\tUPDATED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\n",
				e.ID,
				e.Name,
				e.Width, e.Height,
				e.Layers,
				e.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	})
}

func saveDocument(cmd *cobra.Command, args []string) error {
	c, err := format.ReadArtFile(args[0])
	if err != nil {
		return err
	}
	name := docName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	return withLibrary(func(st *storage.Store) error {
		id, err := st.Save(cmd.Context(), name, c)
		if err != nil {
			return err
		}
		fmt.Printf("saved %s as %s\n", name, id)
		return nil
	})
}

func loadDocument(cmd *cobra.Command, args []string) error {
	return withLibrary(func(st *storage.Store) error {
		c, e, err := st.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := format.WriteArtFile(args[1], c); err != nil {
			return err
		}
		fmt.Printf("loaded %s -> %s\n", e.Name, args[1])
		return nil
	})
}
