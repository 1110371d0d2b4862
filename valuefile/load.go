package valuefile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/guiguan/caster"
	"github.com/npillmayer/cbtree"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
)

// subscriberCapacity is the buffer size of the channel values are published to.
const subscriberCapacity = 64

// valueFile represents an OS file which will be loaded as a tree.
type valueFile struct {
	path string         // file name
	info os.FileInfo    // result from Stat(path)
	file *os.File       // file handle
	cast *caster.Caster // broadcaster for async loading
}

// loadDone is the last message published for a file.
type loadDone struct {
	count int   // number of values published
	err   error // I/O or syntax error, if any
}

// Load reads a value file and appends its values, in order, to a new tree.
//
// Opening of the file is done synchronously. Reading and parsing happen in a
// background goroutine; Load returns when all values have been appended, when
// reading fails, or when ctx is cancelled.
func Load(ctx context.Context, name string) (*cbtree.Tree, error) {
	tree := &cbtree.Tree{}
	err := load(ctx, name, func(v int) error {
		return tree.Push(v)
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// LoadHeap reads a value file and creates a heap from its values.
func LoadHeap(ctx context.Context, name string) (*cbtree.Heap, error) {
	values, err := ReadValues(ctx, name)
	if err != nil {
		return nil, err
	}
	return cbtree.NewHeap(values...), nil
}

// ReadValues reads all values of a value file, in order.
func ReadValues(ctx context.Context, name string) ([]int, error) {
	var values []int
	err := load(ctx, name, func(v int) error {
		values = append(values, v)
		return nil
	})
	return values, err
}

func load(ctx context.Context, name string, consume func(int) error) error {
	vf, err := openFile(name)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel() // stops the loader if we return early
	// subscribe before anything is published
	sub, ok := vf.cast.Sub(ctx, subscriberCapacity)
	if !ok {
		vf.file.Close()
		return fmt.Errorf("cannot subscribe to loader of %s", name)
	}
	go loadAllValues(ctx, vf)
	for msg := range sub {
		switch m := msg.(type) {
		case int:
			if err := consume(m); err != nil {
				return err
			}
		case loadDone:
			tracer().Debugf("valuefile: %d values loaded from %s", m.count, vf.path)
			return m.err
		}
	}
	// channel closed before completion
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("loading of %s ended prematurely", name)
}

// openFile opens an OS file and collect some useful information on it,
// checking for error conditions.
func openFile(name string) (*valueFile, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", cbtree.ErrIllegalArguments, name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	vf := &valueFile{
		path: name,
		info: fi,
		file: file,
		cast: caster.New(nil), // we will broadcast values as soon as they are parsed
	}
	return vf, nil
}

// --- Loading goroutine -----------------------------------------------------

// loadAllValues segments the file at line break opportunities and
// publishes every number found in a segment. UAX#14 does not allow breaks
// within a number (nor between a sign and its digits), so a segment boundary
// always ends a pending number. It finishes with a loadDone message and
// closes the broadcaster.
func loadAllValues(ctx context.Context, vf *valueFile) {
	defer vf.cast.Close()
	defer vf.file.Close()
	tracer().Debugf("valuefile: loading %s (%d bytes)", vf.path, vf.info.Size())
	tok := tokenizer{publish: func(v int) { vf.cast.Pub(v) }}
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(bufio.NewReader(vf.file))
	for segmenter.Next() {
		if ctx.Err() != nil {
			tok.err = ctx.Err()
			break
		}
		tok.segment(string(segmenter.Bytes()))
		if tok.err != nil {
			break
		}
	}
	tok.flush()
	vf.cast.Pub(loadDone{count: tok.count, err: tok.err})
}

// tokenizer splits segments into numbers. Inside a segment, numbers are
// delimited by white space, commas and comments.
type tokenizer struct {
	pending   strings.Builder
	inComment bool
	line      int
	count     int
	err       error
	publish   func(int)
}

// segment tokenizes a line break segment. A comment started in a segment
// extends to the next newline, which may be in a later segment.
func (tok *tokenizer) segment(frag string) {
	tok.feed(frag)
	tok.flush()
}

func (tok *tokenizer) feed(frag string) {
	for _, r := range frag {
		if tok.err != nil {
			return
		}
		switch {
		case r == '\n':
			tok.flush()
			tok.inComment = false
			tok.line++
		case tok.inComment:
		case r == '#':
			tok.flush()
			tok.inComment = true
		case unicode.IsSpace(r) || r == ',':
			tok.flush()
		default:
			tok.pending.WriteRune(r)
		}
	}
}

func (tok *tokenizer) flush() {
	if tok.pending.Len() == 0 || tok.err != nil {
		return
	}
	s := tok.pending.String()
	tok.pending.Reset()
	v, err := strconv.Atoi(s)
	if err != nil {
		tok.err = fmt.Errorf("%w: line %d: not a number: %q", cbtree.ErrIllegalArguments, tok.line+1, s)
		return
	}
	tok.count++
	tok.publish(v)
}
