package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldviz/internal/anim"
	"github.com/san-kum/fieldviz/internal/config"
	"github.com/san-kum/fieldviz/internal/encode"
	"github.com/san-kum/fieldviz/internal/frame"
	"github.com/san-kum/fieldviz/internal/lattice"
	"github.com/san-kum/fieldviz/internal/preview"
	"github.com/san-kum/fieldviz/internal/render"
	"github.com/san-kum/fieldviz/internal/storage"
	"github.com/san-kum/fieldviz/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	// render options
	field     string
	kind      string
	cmap      string
	vmin      float64
	vmax      float64
	clim      float64
	stride    int
	scale     float64
	maxLength float64
	latex     bool
	// output
	outPath     string
	previewCols int
	previewRows int
	// animation
	metaFile  string
	frameDir  string
	pattern   string
	numFrames int
	duration  float64
	useTUI    bool
)

// main wires the fieldviz commands and exits with status 1 when a command
// fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "fieldviz",
		Short:        "render 2D field simulation frames",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fieldviz", "render history directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	plotCmd := &cobra.Command{
		Use:   "plot [frame file]",
		Short: "render one frame file",
		Args:  cobra.ExactArgs(1),
		RunE:  plotFrame,
	}
	addRenderFlags(plotCmd)
	plotCmd.Flags().StringVar(&outPath, "out", "", "output image (.png, .svg, .pdf, .jpg); terminal preview when empty")
	plotCmd.Flags().IntVar(&previewCols, "cols", 72, "preview width in characters")
	plotCmd.Flags().IntVar(&previewRows, "rows", 24, "preview height in characters")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "render a sequence of frame files into an animation",
		Args:  cobra.NoArgs,
		RunE:  animate,
	}
	addRenderFlags(animateCmd)
	animateCmd.Flags().StringVar(&metaFile, "meta", "", "simulation metadata (json or yaml)")
	animateCmd.Flags().StringVar(&frameDir, "dir", ".", "directory holding the frame files")
	animateCmd.Flags().StringVar(&pattern, "pattern", "", "frame file pattern with one %d verb (default from metadata)")
	animateCmd.Flags().IntVar(&numFrames, "frames", 0, "frame count (default numSteps from metadata)")
	animateCmd.Flags().Float64Var(&duration, "duration", config.DefaultDuration, "animation length in seconds")
	animateCmd.Flags().StringVar(&outPath, "out", "", "output (.avi, .gif, or a directory of PNG frames)")
	animateCmd.Flags().BoolVar(&useTUI, "tui", false, "show an interactive progress view")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list rendered animations",
		RunE:  listRuns,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "plot per-frame statistics of a rendered animation",
		Args:  cobra.ExactArgs(1),
		RunE:  plotStats,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list render presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tCMAP\tVMIN\tVMAX\tSTRIDE\tSCALE\tMAXLEN")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%g\t%g\n",
					name, p.Kind, p.ColorMap, optional(p.VMin), optional(p.VMax), p.Stride, p.Scale, p.MaxLength)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return config.Save(args[0], cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	rootCmd.AddCommand(plotCmd, animateCmd, runsCmd, statsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "start from a render preset")
	cmd.Flags().StringVar(&field, "field", "E", "name of the primary field")
	cmd.Flags().StringVar(&kind, "kind", string(render.KindVector), "plot kind (scalar, vector, magnetic-direct, magnetic)")
	cmd.Flags().StringVar(&cmap, "cmap", config.DefaultColorMap, "color map")
	cmd.Flags().Float64Var(&vmin, "vmin", 0, "lower color bound (default from data)")
	cmd.Flags().Float64Var(&vmax, "vmax", 0, "upper color bound (default from data)")
	cmd.Flags().Float64Var(&clim, "clim", 0, "symmetric color bound, sets vmin=-clim and vmax=clim")
	cmd.Flags().IntVar(&stride, "stride", config.DefaultStride, "draw every Nth arrow")
	cmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "arrow scale, data units per arrow length")
	cmd.Flags().Float64Var(&maxLength, "max-length", config.DefaultMaxLength, "arrow length cap for the magnetic kind")
	cmd.Flags().BoolVar(&latex, "latex", false, "typeset labels with LaTeX")
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolve layers config file, preset and flags, in that order. Flags only
// override when set on the command line.
func resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("field") || cfg.Animation.Field == "" {
		cfg.Animation.Field = field
	}
	if flags.Changed("kind") {
		cfg.Render.Kind = kind
	}
	if flags.Changed("cmap") {
		cfg.Render.ColorMap = cmap
	}
	if flags.Changed("clim") {
		cfg.Render.VMin, cfg.Render.VMax = render.Bound(-clim), render.Bound(clim)
	}
	if flags.Changed("vmin") {
		cfg.Render.VMin = render.Bound(vmin)
	}
	if flags.Changed("vmax") {
		cfg.Render.VMax = render.Bound(vmax)
	}
	if flags.Changed("stride") {
		cfg.Render.Stride = stride
	}
	if flags.Changed("scale") {
		cfg.Render.Scale = scale
	}
	if flags.Changed("max-length") {
		cfg.Render.MaxLength = maxLength
	}
	if flags.Changed("latex") {
		cfg.Style.LaTeX = latex
	}
	if flags.Changed("duration") {
		cfg.Animation.Duration = duration
	}
	if flags.Changed("pattern") {
		cfg.Animation.Pattern = pattern
	}
	if flags.Changed("out") {
		cfg.Animation.Output = outPath
	}

	render.Setup(cfg.RenderStyle())
	return cfg, nil
}

func plotFrame(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	k, err := render.ParseKind(cfg.Render.Kind)
	if err != nil {
		return err
	}

	f, err := frame.Read(args[0], cfg.Animation.Field)
	if err != nil {
		return err
	}
	l, err := lattice.New(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	opts := cfg.Options()
	opts.Title = filepath.Base(args[0])

	if outPath == "" {
		out, err := preview.Frame(k, l, opts, previewCols, previewRows)
		if err != nil {
			return err
		}
		fmt.Println(tui.Title.Render(opts.Title) + "  " +
			tui.Subtle.Render(fmt.Sprintf("%s %dx%d", k, l.Cols(), l.Rows())))
		fmt.Print(out)
		return nil
	}

	fig, err := render.Render(k, l, opts)
	if err != nil {
		return err
	}
	w, h := figureSize(cfg)
	if err := render.Save(outPath, fig, w, h); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func figureSize(cfg *config.Config) (vg.Length, vg.Length) {
	return vg.Length(cfg.Style.Width) * vg.Inch, vg.Length(cfg.Style.Height) * vg.Inch
}

func animate(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	k, err := render.ParseKind(cfg.Render.Kind)
	if err != nil {
		return err
	}

	frames := numFrames
	format := cfg.Animation.Pattern
	if metaFile != "" {
		meta, err := config.LoadMetadata(metaFile)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("frames") {
			frames = meta.NumSteps
		}
		if format == "" {
			format = meta.FramePattern(frameDir)
		}
	}
	if format == "" {
		return errors.New("no frame pattern: pass --meta or --pattern")
	}

	fps, err := anim.FrameRate(frames, cfg.Animation.Duration)
	if err != nil {
		return err
	}
	loader, err := frame.NewPattern(format, cfg.Animation.Field)
	if err != nil {
		return err
	}

	w, h := figureSize(cfg)
	surface := render.NewSurface(w, h, cfg.Style.DPI)
	output := cfg.Animation.Output
	enc, err := encode.New(output, surface.Bounds(), fps)
	if err != nil {
		return err
	}

	a, err := anim.New(anim.Config{
		Frames:   frames,
		Duration: cfg.Animation.Duration,
		Kind:     k,
		Options:  cfg.Options(),
	}, loader, surface, enc)
	if err != nil {
		return errors.Join(err, enc.Abort())
	}
	rec := &storage.Recorder{}
	a.AddObserver(rec)

	fmt.Printf("rendering %d frames of %s at %.2f fps...\n", frames, loader.Path(0), fps)
	start := time.Now()

	if useTUI {
		_, err = tui.Run(a, output)
	} else {
		a.AddObserver(anim.ObserverFunc(func(s anim.Stats) {
			fmt.Printf("\r  %s frame %d/%d", tui.Spinner(s.Index), s.Index+1, frames)
		}))
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = a.Run(ctx)
		fmt.Println()
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Field:    cfg.Animation.Field,
		Kind:     string(k),
		Pattern:  format,
		Output:   output,
		Frames:   frames,
		Duration: cfg.Animation.Duration,
		FPS:      fps,
		ColorMap: cfg.Render.ColorMap,
		VMin:     cfg.Render.VMin,
		VMax:     cfg.Render.VMax,
	}, rec.Stats)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("output: %s\n", output)
	if len(rec.Stats) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series(rec.Stats, func(s anim.Stats) float64 { return s.Max }),
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption(cfg.Animation.Field+" max per frame")))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFIELD\tKIND\tTIME\tFRAMES\tFPS\tOUTPUT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\t%s\n",
			run.ID,
			run.Field,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.FPS,
			run.Output,
		)
	}

	return w.Flush()
}

func plotStats(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	stats, err := st.LoadStats(runID)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("field: %s (%s)\n", meta.Field, meta.Kind)
	fmt.Printf("frames: %d at %.2f fps\n\n", len(stats), meta.FPS)

	plots := []struct {
		caption string
		value   func(anim.Stats) float64
	}{
		{meta.Field + " min", func(s anim.Stats) float64 { return s.Min }},
		{meta.Field + " max", func(s anim.Stats) float64 { return s.Max }},
	}
	if meta.Kind != string(render.KindScalar) {
		plots = append(plots, struct {
			caption string
			value   func(anim.Stats) float64
		}{"peak vector magnitude", func(s anim.Stats) float64 { return s.PeakVector }})
	}

	for _, p := range plots {
		fmt.Println(asciigraph.Plot(series(stats, p.value),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		))
		fmt.Println()
	}
	return nil
}

func series(stats []anim.Stats, value func(anim.Stats) float64) []float64 {
	data := make([]float64, len(stats))
	for i, s := range stats {
		data[i] = value(s)
	}
	return data
}

func optional(v *float64) string {
	if v == nil {
		return "auto"
	}
	return fmt.Sprintf("%g", *v)
}
