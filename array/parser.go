package array

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/internal/options"
	"github.com/arloliu/mdarr/section"
)

// DefaultMaxDimensions is the default nesting limit of ParseLiteral.
const DefaultMaxDimensions = 32

// ParseConfig holds literal parser settings.
type ParseConfig struct {
	maxDims int
}

// ParseOption configures ParseLiteral.
type ParseOption = options.Option[*ParseConfig]

// WithMaxDimensions limits how deeply a literal may nest.
func WithMaxDimensions(n int) ParseOption {
	return options.New(func(c *ParseConfig) error {
		if n < 1 || n > section.MaxDimensions {
			return fmt.Errorf("%w: max dimensions %d", errs.ErrOutOfRange, n)
		}
		c.maxDims = n

		return nil
	})
}

type bound struct {
	lower, upper int32
}

// frame is one open sub-array during parsing.
type frame struct {
	entry    int
	start    int
	items    int
	children int
	elements bool
}

type parser struct {
	text   string
	pos    int
	cfg    ParseConfig
	b      *Builder
	bounds []bound
	stack  []frame
	// leafDepth is the depth holding elements, 0 until the first element is seen.
	leafDepth int
	maxDepth  int
}

// ParseLiteral parses array literal text into a packed array of type t.
//
// The grammar is an optional bounds header followed by a brace-delimited body:
//
//	[lower:upper]...={item, item, ...}
//
// where an item is a nested body, a scalar or null. Scalars may be quoted with
// '"' and use '\' to escape the next character; unquoted null is case-insensitive.
// Each header pair caps the item count of every sub-array in its dimension, so
// ragged bodies are accepted.
//
// Returns:
//   - Array: The packed array
//   - error: ErrSyntax, ErrInconsistentDimension, ErrOutOfBoundsStructure,
//     ErrInvalidHeader, ErrTypeMismatch, ErrOutOfRange or ErrUnsupportedType
func ParseLiteral(text string, t format.ElementType, opts ...ParseOption) (Array, error) {
	cfg := &ParseConfig{maxDims: DefaultMaxDimensions}
	if err := options.Apply(cfg, opts...); err != nil {
		return Array{}, err
	}

	b, err := NewBuilder(t)
	if err != nil {
		return Array{}, err
	}
	defer b.Release()

	p := &parser{text: text, cfg: *cfg, b: b}
	if err := p.parse(); err != nil {
		return Array{}, err
	}

	return b.Build(), nil
}

func (p *parser) syntaxError(msg string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", errs.ErrSyntax, fmt.Sprintf(msg, args...), p.pos)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.text) && isSpace(p.text[p.pos]) {
		p.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func (p *parser) parse() error {
	p.skipSpace()
	if p.pos == len(p.text) {
		return p.syntaxError("empty literal")
	}

	if p.text[p.pos] == '[' {
		if err := p.parseHeader(); err != nil {
			return err
		}
		p.skipSpace()
	}

	if p.pos == len(p.text) || p.text[p.pos] != '{' {
		return p.syntaxError("expected '{'")
	}

	if err := p.parseBody(); err != nil {
		return err
	}

	p.skipSpace()
	if p.pos != len(p.text) {
		return p.syntaxError("unexpected trailing text %q", p.text[p.pos:])
	}

	if p.bounds != nil {
		if len(p.bounds) != p.maxDepth {
			return fmt.Errorf("%w: header declares %d dimensions, literal has %d",
				errs.ErrOutOfBoundsStructure, len(p.bounds), p.maxDepth)
		}
		starts := make([]int32, len(p.bounds))
		for i, bd := range p.bounds {
			starts[i] = bd.lower
		}
		p.b.SetStartIndices(starts)
	}

	return nil
}

// parseHeader parses "[lower:upper]" pairs followed by '='.
func (p *parser) parseHeader() error {
	for {
		p.skipSpace()
		if p.pos == len(p.text) {
			return fmt.Errorf("%w: unterminated header", errs.ErrInvalidHeader)
		}
		if p.text[p.pos] == '=' {
			if len(p.bounds) == 0 {
				return fmt.Errorf("%w: empty header", errs.ErrInvalidHeader)
			}
			p.pos++

			return nil
		}
		if p.text[p.pos] != '[' {
			return fmt.Errorf("%w: expected '[' or '=' at offset %d", errs.ErrInvalidHeader, p.pos)
		}
		p.pos++

		end := strings.IndexByte(p.text[p.pos:], ']')
		if end < 0 {
			return fmt.Errorf("%w: missing ']'", errs.ErrInvalidHeader)
		}
		pair := p.text[p.pos : p.pos+end]
		p.pos += end + 1

		lo, hi, ok := strings.Cut(pair, ":")
		if !ok {
			return fmt.Errorf("%w: %q is not a lower:upper pair", errs.ErrInvalidHeader, pair)
		}
		lower, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 32)
		if err != nil {
			return fmt.Errorf("%w: lower bound %q", errs.ErrInvalidHeader, lo)
		}
		upper, err := strconv.ParseInt(strings.TrimSpace(hi), 10, 32)
		if err != nil {
			return fmt.Errorf("%w: upper bound %q", errs.ErrInvalidHeader, hi)
		}
		if lower > upper {
			return fmt.Errorf("%w: lower bound %d exceeds upper bound %d", errs.ErrInvalidHeader, lower, upper)
		}
		p.bounds = append(p.bounds, bound{lower: int32(lower), upper: int32(upper)})
	}
}

// parseBody scans from the opening '{' of the root to its matching '}'.
func (p *parser) parseBody() error {
	// expectItem is set after '{' and ','; afterComma distinguishes the two.
	expectItem, afterComma := false, false

	for {
		p.skipSpace()
		if p.pos == len(p.text) {
			return p.syntaxError("unbalanced braces")
		}

		c := p.text[p.pos]
		switch {
		case c == '{':
			if len(p.stack) > 0 && !expectItem {
				return p.syntaxError("missing ',' before '{'")
			}
			if err := p.openLevel(); err != nil {
				return err
			}
			p.pos++
			expectItem, afterComma = true, false

		case c == '}':
			if afterComma {
				return p.syntaxError("trailing ','")
			}
			if err := p.closeLevel(); err != nil {
				return err
			}
			p.pos++
			if len(p.stack) == 0 {
				return nil
			}
			expectItem = false

		case c == ',':
			if expectItem {
				return p.syntaxError("unexpected ','")
			}
			p.pos++
			expectItem, afterComma = true, true

		default:
			if !expectItem {
				return p.syntaxError("missing ','")
			}
			if err := p.element(); err != nil {
				return err
			}
			expectItem, afterComma = false, false
		}
	}
}

func (p *parser) openLevel() error {
	depth := len(p.stack) + 1
	if depth > p.cfg.maxDims {
		return fmt.Errorf("%w: nesting exceeds %d dimensions", errs.ErrOutOfBoundsStructure, p.cfg.maxDims)
	}
	if p.bounds != nil && depth > len(p.bounds) {
		return fmt.Errorf("%w: nesting exceeds %d declared dimensions", errs.ErrOutOfBoundsStructure, len(p.bounds))
	}
	if p.leafDepth != 0 && depth > p.leafDepth {
		return fmt.Errorf("%w: sub-array at offset %d is deeper than elements", errs.ErrInconsistentDimension, p.pos)
	}

	if depth > 1 {
		parent := &p.stack[depth-2]
		if parent.elements {
			return fmt.Errorf("%w: sub-array mixed with elements at offset %d", errs.ErrInconsistentDimension, p.pos)
		}
		parent.items++
		parent.children++
	}

	slot := p.b.Slots()
	idx := p.b.AddEntry(depth, section.Entry{Offset: uint32(slot)}) //nolint:gosec
	p.stack = append(p.stack, frame{entry: idx, start: slot})
	p.maxDepth = max(p.maxDepth, depth)

	return nil
}

func (p *parser) closeLevel() error {
	depth := len(p.stack)
	f := p.stack[depth-1]

	if p.bounds != nil {
		bd := p.bounds[depth-1]
		if limit := int(bd.upper) - int(bd.lower) + 1; f.items > limit {
			return fmt.Errorf("%w: dimension %d has %d items, header allows %d",
				errs.ErrOutOfBoundsStructure, depth, f.items, limit)
		}
	}

	e := p.b.Entry(depth, f.entry)
	e.Length = uint32(p.b.Slots() - f.start)
	e.ChildCount = uint32(f.children)
	p.stack = p.stack[:depth-1]

	return nil
}

func (p *parser) element() error {
	depth := len(p.stack)
	f := &p.stack[depth-1]

	if f.children > 0 {
		return fmt.Errorf("%w: element mixed with sub-arrays at offset %d", errs.ErrInconsistentDimension, p.pos)
	}
	if p.leafDepth == 0 {
		if depth < p.maxDepth {
			return fmt.Errorf("%w: element at offset %d is shallower than sub-arrays", errs.ErrInconsistentDimension, p.pos)
		}
		p.leafDepth = depth
	} else if depth != p.leafDepth {
		return fmt.Errorf("%w: element at offset %d is at dimension %d, expected %d",
			errs.ErrInconsistentDimension, p.pos, depth, p.leafDepth)
	}

	start := p.pos
	token, quoted, err := p.scanToken()
	if err != nil {
		return err
	}

	f.items++
	f.elements = true

	if !quoted && strings.EqualFold(token, "null") {
		p.b.AppendNull()
		return nil
	}

	if err := p.b.AppendText(token); err != nil {
		return fmt.Errorf("%w (offset %d)", err, start)
	}

	return nil
}

// scanToken reads one quoted or unquoted scalar token and leaves pos after it.
func (p *parser) scanToken() (string, bool, error) {
	var sb strings.Builder

	if p.text[p.pos] == '"' {
		p.pos++
		for p.pos < len(p.text) {
			c := p.text[p.pos]
			switch c {
			case '\\':
				if p.pos+1 == len(p.text) {
					return "", false, p.syntaxError("dangling escape")
				}
				sb.WriteByte(p.text[p.pos+1])
				p.pos += 2
			case '"':
				p.pos++
				return sb.String(), true, nil
			default:
				sb.WriteByte(c)
				p.pos++
			}
		}

		return "", false, p.syntaxError("unterminated quoted element")
	}

	// Trailing whitespace is trimmed, but escaped whitespace is kept.
	keep := 0
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		if c == ',' || c == '}' || c == '{' || c == '"' {
			break
		}
		if c == '\\' {
			if p.pos+1 == len(p.text) {
				return "", false, p.syntaxError("dangling escape")
			}
			sb.WriteByte(p.text[p.pos+1])
			p.pos += 2
			keep = sb.Len()

			continue
		}
		sb.WriteByte(c)
		p.pos++
		if !isSpace(c) {
			keep = sb.Len()
		}
	}

	return sb.String()[:keep], false, nil
}
