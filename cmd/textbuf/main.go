package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"go.uber.org/zap"
	"golang.org/x/term"
	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/textbuf"
	"github.com/wippyai/textbuf/buffer"
	"github.com/wippyai/textbuf/gate"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to the text file to inspect")
		from        = flag.String("from", "utf8", "Input encoding: ansi|utf8|utf16le|utf16be|utf32le|utf32be|wide2|wide4")
		codePage    = flag.String("codepage", "", "Code page for ansi input: windows1252|iso8859-1|iso8859-5|koi8r")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log library internals to stderr")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		gate.SetLogger(logger.Named("gate"))
		buffer.SetLogger(logger.Named("buffer"))
	}

	if !gate.Init(lic("textbuf"), lic("cli"), lic("cli@wippy.ai"), lic("TB-CLI")) {
		fmt.Fprintln(os.Stderr, "Error: library initialization failed")
		os.Exit(1)
	}
	defer gate.Uninit()

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: textbuf -file <path> [-from encoding] [-codepage name]")
		fmt.Fprintln(os.Stderr, "       textbuf -i  (interactive mode)")
		os.Exit(1)
	}

	if err := inspect(*file, *from, *codePage); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func lic(s string) []uint32 {
	out := make([]uint32, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = uint32(s[i])
	}
	return out
}

// inputSpec describes one supported -from value.
type inputSpec struct {
	make   func() *buffer.Container
	insert func(c *buffer.Container, data []byte, cm *charmap.Charmap) error
	width  int
}

var inputs = map[string]inputSpec{
	"ansi": {
		make:  func() *buffer.Container { return buffer.NewUTF8(0) },
		width: 1,
		insert: func(c *buffer.Container, data []byte, cm *charmap.Charmap) error {
			return c.InsertAnsiCharmap(0, data, len(data), cm, true)
		},
	},
	"utf8": {
		make:  func() *buffer.Container { return buffer.NewUTF8(0) },
		width: 1,
		insert: func(c *buffer.Container, data []byte, _ *charmap.Charmap) error {
			return c.InsertUTF8(0, data, len(data), true)
		},
	},
	"utf16le": {
		make:  func() *buffer.Container { return buffer.NewUTF16(0, textbuf.EndianLittle) },
		width: 2,
		insert: func(c *buffer.Container, data []byte, _ *charmap.Charmap) error {
			return c.InsertUTF16(0, data, len(data)/2, textbuf.EndianLittle, true)
		},
	},
	"utf16be": {
		make:  func() *buffer.Container { return buffer.NewUTF16(0, textbuf.EndianBig) },
		width: 2,
		insert: func(c *buffer.Container, data []byte, _ *charmap.Charmap) error {
			return c.InsertUTF16(0, data, len(data)/2, textbuf.EndianBig, true)
		},
	},
	"utf32le": {
		make:  func() *buffer.Container { return buffer.NewUTF32(0, textbuf.EndianLittle) },
		width: 4,
		insert: func(c *buffer.Container, data []byte, _ *charmap.Charmap) error {
			return c.InsertUTF32(0, data, len(data)/4, textbuf.EndianLittle, true)
		},
	},
	"utf32be": {
		make:  func() *buffer.Container { return buffer.NewUTF32(0, textbuf.EndianBig) },
		width: 4,
		insert: func(c *buffer.Container, data []byte, _ *charmap.Charmap) error {
			return c.InsertUTF32(0, data, len(data)/4, textbuf.EndianBig, true)
		},
	},
	"wide2": {
		make:  func() *buffer.Container { return buffer.NewWide(0, 2) },
		width: 2,
		insert: func(c *buffer.Container, data []byte, _ *charmap.Charmap) error {
			return c.InsertWide(0, data, len(data)/2, 2, true)
		},
	},
	"wide4": {
		make:  func() *buffer.Container { return buffer.NewWide(0, 4) },
		width: 4,
		insert: func(c *buffer.Container, data []byte, _ *charmap.Charmap) error {
			return c.InsertWide(0, data, len(data)/4, 4, true)
		},
	},
}

var codePages = map[string]*charmap.Charmap{
	"":           nil, // plain Latin-1
	"windows1252": charmap.Windows1252,
	"iso8859-1":   charmap.ISO8859_1,
	"iso8859-5":   charmap.ISO8859_5,
	"koi8r":       charmap.KOI8R,
}

func inspect(file, from, codePage string) error {
	spec, ok := inputs[from]
	if !ok {
		return fmt.Errorf("unknown encoding %q", from)
	}
	cm, ok := codePages[codePage]
	if !ok {
		return fmt.Errorf("unknown code page %q", codePage)
	}
	if codePage != "" && from != "ansi" {
		return fmt.Errorf("-codepage only applies to -from ansi")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	if rem := len(data) % spec.width; rem != 0 {
		return fmt.Errorf("%d trailing bytes do not form a %d-byte unit", rem, spec.width)
	}

	c := spec.make()
	defer c.Destroy()
	if err := spec.insert(c, data, cm); err != nil {
		return fmt.Errorf("content rejected: %w", err)
	}

	s := c.String()
	st := newStyles(term.IsTerminal(int(os.Stdout.Fd())))

	fmt.Println(st.title.Render("textbuf") + " " + file)
	fmt.Printf("%s %s\n", st.label.Render("encoding:"), from)
	fmt.Printf("%s %d\n", st.label.Render("bytes:"), len(data))
	fmt.Printf("%s %d\n", st.label.Render("units:"), c.Size())
	fmt.Printf("%s %d\n", st.label.Render("symbols:"), c.Length())
	fmt.Printf("%s %d\n", st.label.Render("graphemes:"), uniseg.GraphemeClusterCount(s))
	fmt.Printf("%s %d\n", st.label.Render("display width:"), runewidth.StringWidth(s))

	fmt.Println()
	fmt.Println(st.title.Render("sizes in other encodings"))
	for _, conv := range []struct {
		name string
		dst  *buffer.Container
	}{
		{"utf8", buffer.NewUTF8(0)},
		{"utf16", buffer.NewUTF16(0, textbuf.EndianLittle)},
		{"utf32", buffer.NewUTF32(0, textbuf.EndianLittle)},
	} {
		if err := conv.dst.InsertString(0, c, true); err != nil {
			return fmt.Errorf("convert to %s: %w", conv.name, err)
		}
		fmt.Printf("%s %d units, %d bytes\n",
			st.label.Render(conv.name+":"), conv.dst.Size(), conv.dst.Size()*conv.dst.UnitWidth())
		conv.dst.Destroy()
	}
	return nil
}

// styles render plain text when stdout is not a terminal.
type styles struct {
	title lipgloss.Style
	label lipgloss.Style
}

func newStyles(tty bool) styles {
	if !tty {
		return styles{title: lipgloss.NewStyle(), label: lipgloss.NewStyle()}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")),
	}
}
