package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"gopmove/conlog"
	"gopmove/cvar"
	"gopmove/cvars"
	"gopmove/filesystem"
	"gopmove/pmove"
	"gopmove/scenario"
)

var CLI struct {
	Debug bool `help:"Enable debug logging and set developer 1."`

	Run struct {
		Files   []string          `arg:"" name:"files" help:"Scenario files to replay." type:"existingfile"`
		BaseDir string            `name:"basedir" help:"Game base directory holding the materials file."`
		Game    string            `help:"Mod directory searched before the base game."`
		Exec    []string          `help:"Config files with cvar settings." type:"existingfile"`
		Set     map[string]string `help:"Cvar overrides as name=value."`
		Frames  bool              `help:"Print every frame."`
	} `cmd:"" help:"Replay scenarios as server and client and compare them."`

	Materials struct {
		BaseDir string   `arg:"" name:"basedir" help:"Game base directory." type:"existingdir"`
		Names   []string `arg:"" optional:"" help:"Material names to look up."`
	} `cmd:"" help:"Load the materials file and look up names."`

	Hulls struct {
	} `cmd:"" help:"Print the player hull bounds."`

	Cvars struct {
	} `cmd:"" help:"List the movement cvars and their values."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func loadMaterials(basedir, game string) (*pmove.TextureTable, error) {
	if basedir == "" {
		return nil, nil
	}
	filesystem.UseBaseDir(basedir)
	if game != "" {
		filesystem.UseGameDir(game)
	}
	return scenario.LoadMaterials(scenario.MaterialsFile)
}

func runCommand() error {
	for _, name := range CLI.Run.Exec {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = cvar.Exec(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	for k, v := range CLI.Run.Set {
		if err := cvar.Set(k, v); err != nil {
			return err
		}
	}
	textures, err := loadMaterials(CLI.Run.BaseDir, CLI.Run.Game)
	if err != nil {
		return err
	}
	defer filesystem.Close()

	failed := false
	for _, name := range CLI.Run.Files {
		sc, err := scenario.LoadFile(name)
		if err != nil {
			return err
		}
		rep, err := scenario.Run(sc, textures)
		if err != nil {
			return err
		}
		if CLI.Run.Frames {
			printFrames(rep)
		}
		last := rep.Frames[len(rep.Frames)-1]
		fmt.Printf("%s: %d ticks, %d divergences, final origin %v digest %016x, %d draws, sounds %s\n",
			rep.Name, len(rep.Frames), rep.Divergences, last.Origin, last.Digest, last.Draws, rep.Precache)
		if rep.Divergences > 0 {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("client prediction diverged")
	}
	return nil
}

func printFrames(rep *scenario.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
	fmt.Fprintln(w, "tick\torigin\tvelocity\tground\twater\tmove\tdigest\tbody\tsounds")
	for _, f := range rep.Frames {
		mark := ""
		if f.Diverged() {
			mark = "!"
		}
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%d\t%d\t%v\t%016x%s\t%s\t%s\n",
			f.Tick, f.Origin, f.Velocity, f.OnGround, f.WaterLevel, f.MoveType,
			f.Digest, mark, f.Body, strings.Join(f.Sounds, " "))
	}
	w.Flush()
}

func materialsCommand() error {
	textures, err := loadMaterials(CLI.Materials.BaseDir, "")
	if err != nil {
		return err
	}
	defer filesystem.Close()
	fmt.Printf("%d materials\n", textures.Len())
	for _, n := range CLI.Materials.Names {
		fmt.Printf("%s\t%c\n", n, textures.Find(pmove.StripTexturePrefix(n)))
	}
	return nil
}

func hullsCommand() {
	for h := 0; ; h++ {
		mins, maxs, ok := pmove.HullBounds(h)
		if !ok {
			return
		}
		fmt.Printf("hull %d: %v %v\n", h, mins, maxs)
	}
}

func cvarsCommand() {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
	for _, cv := range cvar.Sorted() {
		f := ""
		if cv.Archive() {
			f += "*"
		}
		if cv.ServerInfo() {
			f += "s"
		}
		if cv.Notify() {
			f += "n"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t(default %s)\n", f, cv.Name(), cv, cv.Default())
	}
	w.Flush()
}

func main() {
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	conlog.SetLogger(slog.Default())

	ctx := kong.Parse(&CLI,
		kong.Name("gopmove"),
		kong.Description("player movement replays"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		level.Set(slog.LevelDebug)
		cvars.Developer.SetByString("1")
		conlog.Warnf("debug logging enabled")
	}

	switch ctx.Command() {
	case "run <files>":
		if err := runCommand(); err != nil {
			writeError(err)
		}
	case "materials <basedir>", "materials <basedir> <names>":
		if err := materialsCommand(); err != nil {
			writeError(err)
		}
	case "hulls":
		hullsCommand()
	case "cvars":
		cvarsCommand()
	}
}
