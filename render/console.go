package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/cbtree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/uax/uax14"
	"golang.org/x/term"
)

// Tree is the read-only view of a tree which renderers need. Both *cbtree.Tree
// and *cbtree.Heap implement it.
type Tree interface {
	IsEmpty() bool
	EachLevel(func(level int, values []int) error) error
	Walk(func(value int, path []cbtree.Side) error) error
}

// Config configures console output.
type Config struct {
	LineWidth int            // wrap levels longer than this; 0 means no wrapping
	Context   *uax11.Context // context for measuring display width
}

// Console outputs trees to a console with a fixed width font.
type Console struct {
	config *Config
	colors map[cbtree.Side]*color.Color
	root   *color.Color
}

// NewConsole creates a console renderer. If config is nil, a configuration
// without line wrapping is used. colors maps child sides to colors for the
// side markers; it may be nil, in which case a default palette is used.
func NewConsole(config *Config, colors map[cbtree.Side]*color.Color) *Console {
	c := &Console{config: config}
	if c.config == nil {
		c.config = &Config{}
	}
	if c.config.Context == nil {
		c.config.Context = uax11.LatinContext
	}
	if colors == nil {
		c.colors = makeDefaultPalette()
	} else {
		c.colors = colors
	}
	c.root = color.New(color.Bold)
	return c
}

func makeDefaultPalette() map[cbtree.Side]*color.Color {
	palette := map[cbtree.Side]*color.Color{
		cbtree.Left:  color.New(color.FgBlue),
		cbtree.Right: color.New(color.FgRed),
	}
	return palette
}

// PrintLevelOrder prints the levels of a tree to stdout, using a
// configuration derived from the terminal.
func PrintLevelOrder(tree Tree) error {
	return NewConsole(ConfigFromTerminal(), nil).PrintLevelOrder(tree, os.Stdout)
}

// RenderTree draws a tree to stdout.
func RenderTree(tree Tree) error {
	return NewConsole(ConfigFromTerminal(), nil).RenderTree(tree, os.Stdout)
}

// PrintLevelOrder writes a header line for every level of the tree, followed
// by the values of the level, each preceded by a blank. An empty tree
// produces no output.
func (c *Console) PrintLevelOrder(tree Tree, w io.Writer) error {
	return tree.EachLevel(func(level int, values []int) error {
		if _, err := fmt.Fprintf(w, "level: %d\n", level); err != nil {
			return err
		}
		var row strings.Builder
		for _, v := range values {
			fmt.Fprintf(&row, " %d", v)
		}
		for _, line := range c.wrap(row.String()) {
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// RenderTree writes an outline of the tree, one node per line. The root is
// written as "root:v _", every other node as "╰–– l:v" or "╰–– r:v", indented
// below its parent. Sub-trees of left children are connected by a bar.
func (c *Console) RenderTree(tree Tree, w io.Writer) error {
	if tree.IsEmpty() {
		_, err := io.WriteString(w, "The tree is empty\n")
		return err
	}
	var prefix strings.Builder
	return tree.Walk(func(value int, path []cbtree.Side) error {
		if len(path) == 0 {
			_, err := c.root.Fprintf(w, "root:%d _\n", value)
			return err
		}
		prefix.Reset()
		prefix.WriteString("      ")
		for _, s := range path[:len(path)-1] {
			if s == cbtree.Left {
				prefix.WriteString("  |   ")
			} else {
				prefix.WriteString("      ")
			}
		}
		side := path[len(path)-1]
		if _, err := io.WriteString(w, prefix.String()+"  ╰–– "); err != nil {
			return err
		}
		var err error
		if col, ok := c.colors[side]; ok {
			_, err = col.Fprint(w, side.String()+":")
		} else {
			_, err = io.WriteString(w, side.String()+":")
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%d\n", value)
		return err
	})
}

var setupGraphemes sync.Once

/*
First fit, as in Wikipedia:

	1. |  SpaceLeft := LineWidth
	2. |  for each Word in Text
	3. |      if (Width(Word) + SpaceWidth) > SpaceLeft
	4. |           insert line break before Word in Text
	5. |           SpaceLeft := LineWidth - Width(Word)
	6. |      else
	7. |           SpaceLeft := SpaceLeft - (Width(Word) + SpaceWidth)
*/
func (c *Console) wrap(row string) []string {
	linewidth := c.config.LineWidth
	if linewidth <= 0 || len(row) <= linewidth {
		return []string{row}
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(bufio.NewReader(strings.NewReader(row)))
	var lines []string
	var line strings.Builder
	spaceleft := linewidth
	for segmenter.Next() {
		frag := string(segmenter.Bytes())
		fraglen := uax11.StringWidth(grapheme.StringFromString(frag), c.config.Context)
		if fraglen >= spaceleft && line.Len() > 0 {
			lines = append(lines, strings.TrimRight(line.String(), " "))
			tracer().Debugf("render: wrap after %d en", linewidth-spaceleft)
			line.Reset()
			spaceleft = linewidth
		}
		line.WriteString(frag)
		spaceleft -= fraglen
	}
	if line.Len() > 0 {
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return lines
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a console Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{Context: uax11.ContextFromEnvironment()}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		w, _, err := term.GetSize(fd)
		if err != nil {
			config.LineWidth = 65
		} else {
			if w > 65 {
				config.LineWidth = w - 10
			} else if w > 30 {
				config.LineWidth = w - 5
			} else if w > 10 {
				config.LineWidth = w
			} else {
				config.LineWidth = 10
			}
		}
	} else {
		config.LineWidth = 65
	}
	tracer().P("render", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}
