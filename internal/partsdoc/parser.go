// Package partsdoc converts hand-written markdown parts lists (ST*.md files)
// into CSV rows.
//
// A document is read line by line through a small state machine:
//
//	SeekingItemStart --heading--> ReadingDescription
//	ReadingDescription --field line--> ReadingFields
//	any --heading--> ReadingDescription (the current item is flushed)
//
// An item starts at a markdown heading, optionally numbered ("### 12. Filtro").
// Free text after the heading is the description. Field lines look like
// "- **Clave:** valor" or "- Clave: valor".
package partsdoc

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"agrofleet/internal/core/types"
)

// State is the parser state.
type State int

const (
	SeekingItemStart State = iota
	ReadingDescription
	ReadingFields
)

func (s State) String() string {
	switch s {
	case SeekingItemStart:
		return "SeekingItemStart"
	case ReadingDescription:
		return "ReadingDescription"
	case ReadingFields:
		return "ReadingFields"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Item is one part parsed from a document.
type Item struct {
	File        string
	Number      int // 0 when the heading has no number
	Name        string
	Description string
	Code        string
	Quantity    string
	Price       decimal.NullDecimal
	Notes       []string

	fields int
}

// HasFields reports whether at least one field line was read for the item.
func (it Item) HasFields() bool { return it.fields > 0 }

var headingRe = regexp.MustCompile(`^#{1,4}\s+(?:(\d+)\s*[.)\-:]\s*)?(.+?)\s*#*$`)

// Parser holds the state of one document.
type Parser struct {
	file  string
	state State
	cur   *Item
	items []Item
}

// NewParser creates a parser for the document named file.
func NewParser(file string) *Parser {
	return &Parser{file: file}
}

// State returns the current state.
func (p *Parser) State() State { return p.state }

// Parse reads a whole document.
func Parse(r io.Reader, file string) ([]Item, error) {
	p := NewParser(file)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.Feed(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return p.Finish(), nil
}

// Feed processes one line.
func (p *Parser) Feed(line string) {
	text := strings.TrimSpace(line)

	if m := headingRe.FindStringSubmatch(text); m != nil {
		p.flush()
		num, _ := strconv.Atoi(m[1])
		p.cur = &Item{File: p.file, Number: num, Name: strings.Trim(m[2], "* ")}
		p.state = ReadingDescription
		return
	}

	if p.state == SeekingItemStart || text == "" {
		return
	}

	if key, value, ok := fieldLine(text); ok {
		p.state = ReadingFields
		p.cur.fields++
		p.cur.set(key, value)
		return
	}

	switch p.state {
	case ReadingDescription:
		p.cur.Description = joinText(p.cur.Description, stripBullet(text))
	case ReadingFields:
		p.cur.Notes = append(p.cur.Notes, stripBullet(text))
	}
}

// Finish flushes the last item and returns every item read.
func (p *Parser) Finish() []Item {
	p.flush()
	p.state = SeekingItemStart
	items := p.items
	p.items = nil
	return items
}

// flush keeps the current item if it looks like a part: it is numbered or
// has field lines. Plain headings are document or section titles.
func (p *Parser) flush() {
	if p.cur == nil {
		return
	}
	if p.cur.Number > 0 || p.cur.HasFields() {
		p.items = append(p.items, *p.cur)
	}
	p.cur = nil
}

// fieldLine splits "- **Clave:** valor" and "- Clave: valor".
func fieldLine(text string) (key, value string, ok bool) {
	if !strings.HasPrefix(text, "- ") && !strings.HasPrefix(text, "* ") {
		return "", "", false
	}
	body := strings.ReplaceAll(strings.TrimSpace(text[2:]), "**", "")
	key, value, found := strings.Cut(body, ":")
	key = strings.TrimSpace(key)
	if !found || key == "" || len(key) > 40 {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

func (it *Item) set(key, value string) {
	switch normalizeKey(key) {
	case "codigo", "cod", "codigo de pieza", "numero de parte", "n de parte", "part number", "referencia":
		it.Code = value
	case "cantidad", "cant", "unidades":
		it.Quantity = value
	case "precio", "precio unitario", "costo":
		if value == "" {
			return
		}
		d, err := types.ParseLocalized(value)
		if err != nil {
			it.Notes = append(it.Notes, "precio="+value)
			return
		}
		it.Price = decimal.NullDecimal{Decimal: d, Valid: true}
	case "descripcion":
		it.Description = joinText(it.Description, value)
	case "nombre":
		if value != "" {
			it.Name = value
		}
	case "notas", "nota", "observaciones":
		if value != "" {
			it.Notes = append(it.Notes, value)
		}
	default:
		it.Notes = append(it.Notes, strings.ToLower(key)+"="+value)
	}
}

var keyReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
	"°", "", "º", "", ".", "",
)

func normalizeKey(key string) string {
	k := keyReplacer.Replace(strings.ToLower(strings.TrimSpace(key)))
	return strings.Join(strings.Fields(k), " ")
}

func stripBullet(text string) string {
	for _, p := range []string{"- ", "* "} {
		if strings.HasPrefix(text, p) {
			return strings.TrimSpace(text[len(p):])
		}
	}
	return text
}

func joinText(a, b string) string {
	switch {
	case b == "":
		return a
	case a == "":
		return b
	}
	return a + " " + b
}
