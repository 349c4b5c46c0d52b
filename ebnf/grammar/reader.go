package grammar

import (
	"fmt"
	"sort"
	"strconv"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/vhotmar/mff-vector-drawing-sub001/input"
	"github.com/vhotmar/mff-vector-drawing-sub001/parse"
	"github.com/vhotmar/mff-vector-drawing-sub001/parse/complete"
)

type text = input.String

// Error codes carried by parse.UserKind.
const (
	codeName = iota + 1
	codeEquals
	codePeriod
	codeTerm
	codeRangeEnd
	codeParen
	codeBracket
	codeBrace
	codeString
	codeComment
)

var messages = map[int]string{
	codeName:     "expected production name",
	codeEquals:   "expected '='",
	codePeriod:   "expected '.'",
	codeTerm:     "expected term",
	codeRangeEnd: "expected token after '…'",
	codeParen:    "expected ')'",
	codeBracket:  "expected ']'",
	codeBrace:    "expected '}'",
	codeString:   "invalid string literal",
	codeComment:  "comment not terminated",
}

// expect relabels a recoverable failure of p as the user kind code, placed
// at the input p was given.
func expect[O any](p parse.Parser[text, O], code int) parse.Parser[text, O] {
	kind := parse.UserKind(code)
	return func(in text) parse.Result[text, O] {
		r := p(in)
		if r.Err != nil && r.Err.Recoverable() {
			return parse.Fail[text, O](parse.NewError(in, kind))
		}
		return r
	}
}

var (
	lineComment = parse.Ignore(parse.Pair(
		complete.Tag(text("//")),
		complete.TakeTill[text](parse.IsNewline[rune]),
	))
	blockComment = parse.Ignore(parse.Preceded(
		complete.Tag(text("/*")),
		parse.Cut(expect(parse.ManyTill(complete.AnyToken[text], complete.Tag(text("*/"))), codeComment)),
	))
	// blank skips white space and comments.
	blank = parse.Ignore(parse.Many0(parse.Alt(
		parse.Ignore(complete.MultiSpace1[text]),
		lineComment,
		blockComment,
	)))

	identifier = parse.Recognize(parse.Pair(
		complete.Satisfy[text](isLetter),
		complete.TakeWhile[text](func(c rune) bool { return isLetter(c) || unicode.IsDigit(c) }),
	))

	interpreted = parse.Recognize(parse.Delimited(
		complete.Char[text]('"'),
		parse.Many0(parse.Alt(
			parse.Preceded(complete.Char[text]('\\'), complete.AnyToken[text]),
			complete.NoneOf(text("\"\\\n")),
		)),
		parse.Cut(expect(complete.Char[text]('"'), codeString)),
	))
	raw = parse.Recognize(parse.Delimited(
		complete.Char[text]('`'),
		complete.TakeTill[text](func(c rune) bool { return c == '`' }),
		parse.Cut(expect(complete.Char[text]('`'), codeString)),
	))
)

func isLetter(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

// literal matches a Go string literal and returns its value. A literal
// that does not unquote is fatal.
func literal(in text) parse.Result[text, string] {
	r := parse.Alt(interpreted, raw)(in)
	if r.Err != nil {
		return parse.Fail[text, string](r.Err)
	}
	s, err := strconv.Unquote(string(r.Output))
	if err != nil {
		return parse.Fail[text, string](parse.NewFailure(in, parse.UserKind(codeString)))
	}
	return parse.Ok(r.Rest, s)
}

func punct(c rune, code int) parse.Parser[text, rune] {
	return parse.Preceded(blank, expect(complete.Char[text](c), code))
}

type reader struct {
	filename string
	src      text
	lines    []int

	expression parse.Parser[text, Expression]
	production parse.Parser[text, *Production]
}

func newReader(filename, src string) *reader {
	r := &reader{filename: filename, src: text(src), lines: []int{0}}
	for i, c := range []byte(src) {
		if c == '\n' {
			r.lines = append(r.lines, i+1)
		}
	}
	r.build()
	return r
}

// pos converts the position of at within the source to a scanner position.
func (r *reader) pos(at text) scanner.Position {
	off := r.src.Offset(at)
	line := sort.Search(len(r.lines), func(i int) bool { return r.lines[i] > off })
	start := r.lines[line-1]
	return scanner.Position{
		Filename: r.filename,
		Offset:   off,
		Line:     line,
		Column:   utf8.RuneCountInString(string(r.src[start:off])) + 1,
	}
}

// at returns the current position without consuming input.
func (r *reader) at(in text) parse.Result[text, scanner.Position] {
	return parse.Ok(in, r.pos(in))
}

func (r *reader) build() {
	expr := parse.Lazy(func() parse.Parser[text, Expression] { return r.expression })

	name := parse.Map(parse.Preceded(blank, parse.Pair(r.at, identifier)),
		func(t parse.Tuple[scanner.Position, text]) Expression {
			return &Name{StringPos: t.First, String: string(t.Second)}
		})

	lit := parse.Pair(r.at, literal)
	rangeEnd := parse.Cut(parse.Preceded(blank, expect(lit, codeRangeEnd)))
	tokenOrRange := parse.Map(
		parse.Pair(parse.Preceded(blank, lit), parse.Opt(parse.Preceded(punct('…', codeRangeEnd), rangeEnd))),
		func(t parse.Tuple[parse.Tuple[scanner.Position, string], parse.Maybe[parse.Tuple[scanner.Position, string]]]) Expression {
			begin := &Token{StringPos: t.First.First, String: t.First.Second}
			if !t.Second.Valid {
				return begin
			}
			end := &Token{StringPos: t.Second.Value.First, String: t.Second.Value.Second}
			return &Range{Begin: begin, End: end}
		})

	enclosed := func(open, closing rune, code int, build func(scanner.Position, Expression) Expression) parse.Parser[text, Expression] {
		return parse.Map(
			parse.Pair(
				parse.Preceded(blank, parse.Pair(r.at, complete.Char[text](open))),
				parse.Cut(parse.Terminated(expr, punct(closing, code))),
			),
			func(t parse.Tuple[parse.Tuple[scanner.Position, rune], Expression]) Expression {
				return build(t.First.First, t.Second)
			})
	}

	term := parse.Alt(
		name,
		tokenOrRange,
		enclosed('(', ')', codeParen, func(p scanner.Position, body Expression) Expression {
			return &Group{Lparen: p, Body: body}
		}),
		enclosed('[', ']', codeBracket, func(p scanner.Position, body Expression) Expression {
			return &Option{Lbrack: p, Body: body}
		}),
		enclosed('{', '}', codeBrace, func(p scanner.Position, body Expression) Expression {
			return &Repetition{Lbrace: p, Body: body}
		}),
	)

	sequence := parse.Map(parse.Preceded(blank, expect(parse.Many1(term), codeTerm)),
		func(list []Expression) Expression {
			if len(list) == 1 {
				return list[0]
			}
			return Sequence(list)
		})

	// An empty alternative stays in the list as nil and matches nothing.
	emptyOr := parse.Map(parse.Opt(sequence), func(m parse.Maybe[Expression]) Expression { return m.Value })
	r.expression = parse.Map(
		parse.Pair(sequence, parse.Many0(parse.Preceded(punct('|', codeTerm), emptyOr))),
		func(t parse.Tuple[Expression, []Expression]) Expression {
			if len(t.Second) == 0 {
				return t.First
			}
			return append(Alternative{t.First}, t.Second...)
		})

	production := parse.Map(
		parse.Pair(
			parse.Preceded(blank, parse.Pair(r.at, expect(identifier, codeName))),
			parse.Cut(parse.Delimited(punct('=', codeEquals), parse.Opt(r.expression), punct('.', codePeriod))),
		),
		func(t parse.Tuple[parse.Tuple[scanner.Position, text], parse.Maybe[Expression]]) *Production {
			return &Production{
				Name: &Name{StringPos: t.First.First, String: string(t.First.Second)},
				Expr: t.Second.Value,
			}
		})
	r.production = parse.Trace("production", production, log)
}

func (r *reader) read() (Grammar, error) {
	g := make(Grammar)
	var errs ErrorList
	in := r.src
	for {
		b := blank(in)
		if b.Err != nil {
			errs = append(errs, r.diagnostic(b.Err))
			break
		}
		in = b.Rest
		if in.Len() == 0 {
			break
		}

		res := r.production(in)
		if res.Err != nil {
			errs = append(errs, r.diagnostic(res.Err))
			in = resync(res.Err.Input)
			continue
		}
		in = res.Rest

		p := res.Output
		if prev, dup := g[p.Name.String]; dup {
			errs = append(errs, &Error{
				Pos: p.Name.StringPos,
				Msg: fmt.Sprintf("%s declared already at %s", p.Name.String, posString(prev.Name.StringPos)),
			})
			continue
		}
		g[p.Name.String] = p
	}
	log.Debugf("read %d productions from %s with %d errors", len(g), r.filename, len(errs))
	return g, errs.Err()
}

// resync skips past the next '.' so reading can continue with the
// following production.
func resync(at text) text {
	rest, _, found := at.SplitAtPosition(func(c rune) bool { return c == '.' })
	if !found {
		return rest
	}
	rest, _ = rest.TakeSplit(1)
	return rest
}

func (r *reader) diagnostic(err *parse.Error[text]) *Error {
	pos := r.pos(err.Input)
	code, ok := err.Kind.User()
	if !ok {
		return &Error{Pos: pos, Msg: fmt.Sprintf("unexpected %s, found %s", err.Kind, found(err.Input))}
	}
	msg := messages[code]
	if code == codeComment || code == codeString {
		return &Error{Pos: pos, Msg: msg}
	}
	return &Error{Pos: pos, Msg: fmt.Sprintf("%s, found %s", msg, found(err.Input))}
}

func found(at text) string {
	c, _, ok := at.Next()
	if !ok {
		return "EOF"
	}
	return strconv.QuoteRune(c)
}
