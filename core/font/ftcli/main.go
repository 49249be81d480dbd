package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/ftfont/core"
	"github.com/npillmayer/ftfont/core/font/ftfont"
	"github.com/npillmayer/ftfont/core/locate/resources"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'ftfont'
func tracer() tracing.Trace {
	return tracing.Select("ftfont")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font families to load, comma-separated")
	size := flag.Int("size", 16, "Font size in points")
	appkey := flag.String("appkey", "", "Application key for caching the system font list")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.ftfont":           *tlevel,
		"trace.ftfont.engine":    *tlevel,
		"trace.ftfont.font":      "Error",
		"trace.ftfont.registry":  "Error",
		"trace.ftfont.resources": *tlevel,
		core.ConfAppKey:          *appkey,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	core.Configure(conf)
	pterm.Info.Println("Welcome to the font CLI") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up REPL
	repl, err := readline.New("ft > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname, *size); err != nil { // font name provided by flag
		core.UserError(err)
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font   *ftfont.Font
	family string
	size   int
	repl   *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, args := parseCommand(line)
		quit, err := intp.execute(cmd, args)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func parseCommand(line string) (string, []string) {
	fields := strings.Fields(line)
	return strings.ToLower(fields[0]), fields[1:]
}

func (intp *Intp) execute(cmd string, args []string) (bool, error) {
	tracer().Debugf("cmd = %s %v", cmd, args)
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "font":
		family := strings.Join(args, " ")
		return false, intp.loadFont(family, intp.size)
	case "size":
		if len(args) == 0 {
			pterm.Printfln("font size is %gpt", intp.font.PtSize())
			return false, nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, core.WrapError(err, core.EINVALID, "font size not numeric: %s", args[0])
		}
		return false, intp.loadFont(intp.family, n)
	case "metrics":
		intp.showMetrics(strings.Join(args, " "))
	case "bold", "italic", "underline":
		on, err := onOff(args)
		if err != nil {
			return false, err
		}
		switch cmd {
		case "bold":
			intp.font.SetBold(on)
		case "italic":
			intp.font.SetItalic(on)
		case "underline":
			intp.font.SetUnderline(on)
		}
		pterm.Printfln("bold=%v, italic=%v, underline=%v",
			intp.font.Bold(), intp.font.Italic(), intp.font.Underline())
	case "render":
		if len(args) < 2 {
			return false, core.Error(core.EINVALID, "usage: render <text> <file.png>")
		}
		text := strings.Join(args[:len(args)-1], " ")
		return false, intp.render(text, args[len(args)-1])
	case "fonts":
		prefix := ""
		if len(args) > 0 {
			prefix = args[0]
		}
		listFonts(prefix)
	case "match":
		if len(args) == 0 {
			return false, core.Error(core.EINVALID, "usage: match <family>")
		}
		if path, ok := ftfont.MatchFont(strings.Join(args, " "), false, false); ok {
			pterm.Printfln("%s", path)
		} else {
			pterm.Printfln("no such font installed")
		}
	default:
		help()
	}
	return false, nil
}

func onOff(args []string) (bool, error) {
	if len(args) == 0 {
		return false, core.Error(core.EINVALID, "expected 'on' or 'off'")
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, core.Error(core.EINVALID, "expected 'on' or 'off', got %s", args[0])
}

func (intp *Intp) loadFont(family string, size int) error {
	f, err := ftfont.SysFont(family, size, false, false, nil)
	if err != nil {
		return err
	}
	if intp.font != nil {
		intp.font.Close()
	}
	intp.font, intp.family, intp.size = f, family, size
	pterm.Info.Printfln("using font %s at %gpt", f.Name(), f.PtSize())
	return nil
}

func (intp *Intp) showMetrics(text string) {
	f := intp.font
	pterm.Printfln("ascent=%d, descent=%d, height=%d, line size=%d",
		f.Ascent(), f.Descent(), f.Height(), f.LineSize())
	if text == "" {
		return
	}
	w, h, err := f.Size(text)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Printfln("text size = %d x %d", w, h)
	metrics, err := f.Metrics(text)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	data := pterm.TableData{{"char", "min x", "max x", "min y", "max y", "advance"}}
	for i, r := range []rune(text) {
		m := metrics[i]
		if m == nil {
			data = append(data, []string{string(r), "-", "-", "-", "-", "-"})
			continue
		}
		data = append(data, []string{string(r),
			strconv.Itoa(m.MinX), strconv.Itoa(m.MaxX),
			strconv.Itoa(m.MinY), strconv.Itoa(m.MaxY),
			strconv.FormatFloat(m.AdvanceX, 'f', 2, 64)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) render(text, filename string) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		return core.Error(core.EINVALID, "output file must be a PNG file: %s", filename)
	}
	img, err := intp.font.Render(text, true, color.Black, color.White)
	if err != nil {
		return err
	}
	out, err := os.Create(filename)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", filename)
	}
	if err = png.Encode(out, img); err != nil {
		out.Close()
		return core.WrapError(err, core.EINTERNAL, "cannot encode image")
	}
	if err = out.Close(); err != nil {
		return err
	}
	pterm.Info.Printfln("rendered %d x %d pixels to %s", img.Bounds().Dx(), img.Bounds().Dy(), filename)
	return nil
}

func listFonts(prefix string) {
	var families []string
	if prefix == "" {
		families = ftfont.GetFonts()
	} else {
		families = resources.FontsWithPrefix(prefix)
	}
	if len(families) == 0 {
		pterm.Printfln("no font families found")
		return
	}
	data := pterm.TableData{{"family", "regular font file"}}
	for _, family := range families {
		path, _ := ftfont.MatchFont(family, false, false)
		data = append(data, []string{family, path})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	font <families>          load the first installed of comma-separated families
	size [points]            show or change the font size
	metrics [text]           show font metrics, and metrics of text
	render <text> <file.png> render text into a PNG file
	bold|italic|underline on|off
	fonts [prefix]           list installed font families
	match <family>           show the font file for a family
	quit`)
}
