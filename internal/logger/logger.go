// Package logger provides diagnostic plumbing shared by every stage of the
// compiler: source spans, messages, and a sink that the evaluator and CLI
// both write through.
//
// The style mirrors a clang-style diagnostic format: every message carries
// the span of source text it refers to, the line it occurred on, and
// (for evaluator errors) a stack of secondary notes.
package logger

import (
	"sort"
	"strings"
)

// Loc is a 0-based byte offset into a Source's Contents.
type Loc struct {
	Start int32
}

// Range is a span of source text, starting at Loc and extending Len bytes.
type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 { return r.Loc.Start + r.Len }

// RangeFromLocs builds a Range spanning from the start of "start" to the end
// of "end". Both must refer to the same Source.
func RangeFromLocs(start Loc, end Range) Range {
	return Range{Loc: start, Len: end.End() - start.Start}
}

// Source is one input stylesheet. Index identifies it uniquely within a
// compilation; PrettyPath is used in diagnostics and source maps.
type Source struct {
	Index      uint32
	KeyPath    string // canonical URL, e.g. "file:///a/b.scss"
	PrettyPath string
	Contents   string
}

func (s *Source) TextForRange(r Range) string {
	return s.Contents[r.Loc.Start : r.Loc.Start+r.Len]
}

// LineAndColumn converts a byte offset into a 1-based line and 0-based
// column, along with the full text of that line (for printing a caret).
func (s *Source) LineAndColumn(offset int32) (line int, column int, lineText string) {
	line = 1
	lineStart := int32(0)
	for i := int32(0); i < offset && int(i) < len(s.Contents); i++ {
		if s.Contents[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	column = int(offset - lineStart)
	lineEnd := int32(len(s.Contents))
	if idx := strings.IndexByte(s.Contents[lineStart:], '\n'); idx >= 0 {
		lineEnd = lineStart + int32(idx)
	}
	lineText = s.Contents[lineStart:lineEnd]
	return
}

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Debug
	Note
)

func (k MsgKind) String() string {
	switch k {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Debug:
		return "debug"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// MsgLocation is a fully-resolved, renderable location: used once a Range
// has been looked up against its Source.
type MsgLocation struct {
	File     string
	Line     int
	Column   int
	Length   int
	LineText string
}

type MsgData struct {
	Text     string
	Location *MsgLocation
}

// Msg is one diagnostic: an error, warning, debug message, or a secondary
// note attached to one of those.
type Msg struct {
	Kind  MsgKind
	Data  MsgData
	Notes []MsgData

	// Stack holds the Sass call-stack frames active when this message was
	// produced, innermost call first. Empty for top-level messages.
	Stack []StackFrame
}

type StackFrame struct {
	Description string // e.g. "mixin \"button\""
	Location    *MsgLocation
}

// Log aggregates messages produced during one compilation.
type Log struct {
	msgs []Msg
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) AddMsg(msg Msg) {
	l.msgs = append(l.msgs, msg)
}

func (l *Log) AddError(source *Source, r Range, text string) {
	l.AddMsg(Msg{Kind: Error, Data: dataFor(source, r, text)})
}

func (l *Log) AddWarning(source *Source, r Range, text string) {
	l.AddMsg(Msg{Kind: Warning, Data: dataFor(source, r, text)})
}

func (l *Log) AddDebug(source *Source, r Range, text string) {
	l.AddMsg(Msg{Kind: Debug, Data: dataFor(source, r, text)})
}

func dataFor(source *Source, r Range, text string) MsgData {
	data := MsgData{Text: text}
	if source != nil {
		line, col, lineText := source.LineAndColumn(r.Loc.Start)
		data.Location = &MsgLocation{
			File:     source.PrettyPath,
			Line:     line,
			Column:   col,
			Length:   int(r.Len),
			LineText: lineText,
		}
	}
	return data
}

func (l *Log) HasErrors() bool {
	for _, msg := range l.msgs {
		if msg.Kind == Error {
			return true
		}
	}
	return false
}

func (l *Log) Done() []Msg {
	msgs := make([]Msg, len(l.msgs))
	copy(msgs, l.msgs)
	sort.Stable(sortableMsgs(msgs))
	return msgs
}

type sortableMsgs []Msg

func (a sortableMsgs) Len() int      { return len(a) }
func (a sortableMsgs) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a sortableMsgs) Less(i, j int) bool {
	ai, aj := a[i].Data.Location, a[j].Data.Location
	if ai == nil || aj == nil {
		return ai == nil && aj != nil
	}
	if ai.File != aj.File {
		return ai.File < aj.File
	}
	if ai.Line != aj.Line {
		return ai.Line < aj.Line
	}
	return ai.Column < aj.Column
}
