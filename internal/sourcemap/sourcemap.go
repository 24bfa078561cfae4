// Package sourcemap builds source-map v3 mappings for the CSS the
// serializer emits. The VLQ codec and chunk-building strategy are adapted
// from a production JavaScript/CSS bundler's source map package: mappings
// are accumulated as relative deltas while printing, then joined into one
// "mappings" string.
package sourcemap

import (
	"strconv"
	"strings"

	"github.com/go-sass/sass/internal/logger"
)

// Mapping is one fully-resolved (not yet delta-encoded) entry.
type Mapping struct {
	GeneratedLine   int32
	GeneratedColumn int32
	SourceIndex     int32
	OriginalLine    int32
	OriginalColumn  int32
}

// SourceMap is the in-memory representation of a standard source-map v3
// document (spec §6.3). "Names" is always empty: this compiler never emits
// named mappings.
type SourceMap struct {
	Sources        []string
	SourcesContent []string
	Mappings       []Mapping
}

var base64 = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")

func encodeVLQ(encoded []byte, value int32) []byte {
	var vlq int32
	if value < 0 {
		vlq = ((-value) << 1) | 1
	} else {
		vlq = value << 1
	}
	for {
		digit := vlq & 31
		vlq >>= 5
		if vlq != 0 {
			digit |= 32
		}
		encoded = append(encoded, base64[digit])
		if vlq == 0 {
			break
		}
	}
	return encoded
}

// DecodeVLQ decodes a single VLQ value starting at "start", returning the
// value and the index just past it. Used by tests that round-trip mappings.
func DecodeVLQ(encoded []byte, start int) (int32, int) {
	shift := uint(0)
	var vlq int32
	for {
		b := encoded[start]
		index := int32(-1)
		for i, c := range base64 {
			if c == b {
				index = int32(i)
				break
			}
		}
		if index < 0 {
			break
		}
		vlq |= (index & 31) << shift
		start++
		shift += 5
		if index&32 == 0 {
			break
		}
	}
	value := vlq >> 1
	if vlq&1 != 0 {
		value = -value
	}
	return value, start
}

// Builder accumulates mappings while the printer walks the CSS tree and
// produces the delta-encoded "mappings" field on demand.
type Builder struct {
	sourceIndexForSource map[uint32]int32
	sources              []string
	sourcesContent       []string
	mappings             []Mapping
}

func NewBuilder() *Builder {
	return &Builder{sourceIndexForSource: make(map[uint32]int32)}
}

// AddSource registers a logger.Source the printer may reference and returns
// its index within this builder's Sources slice, registering it at most
// once.
func (b *Builder) AddSource(source *logger.Source, embedContent bool) int32 {
	if idx, ok := b.sourceIndexForSource[source.Index]; ok {
		return idx
	}
	idx := int32(len(b.sources))
	b.sourceIndexForSource[source.Index] = idx
	b.sources = append(b.sources, source.PrettyPath)
	if embedContent {
		b.sourcesContent = append(b.sourcesContent, source.Contents)
	} else {
		b.sourcesContent = append(b.sourcesContent, "")
	}
	return idx
}

// AddMapping records one target/source position pair. Every mapping is
// recorded here; Encode later drops a mapping whose generated line already
// has an entry for the same source line.
func (b *Builder) AddMapping(m Mapping) {
	b.mappings = append(b.mappings, m)
}

func (b *Builder) Mappings() []Mapping { return b.mappings }

// Encode renders the accumulated mappings as a VLQ "mappings" string.
func (b *Builder) Encode() string {
	var j strings.Builder
	prevGeneratedColumn := int32(0)
	prevSourceIndex := int32(0)
	prevOriginalLine := int32(0)
	prevOriginalColumn := int32(0)

	lastLine := int32(0)
	lastSourceLineSeen := map[int32]bool{}

	for _, m := range b.mappings {
		if m.GeneratedLine != lastLine {
			for i := lastLine; i < m.GeneratedLine; i++ {
				j.WriteByte(';')
			}
			lastLine = m.GeneratedLine
			prevGeneratedColumn = 0
			lastSourceLineSeen = map[int32]bool{}
		}

		// Collapse duplicate entries that map the same target line back to
		// the same source line (spec §4.5: "redundant duplicate lines are
		// collapsed").
		if lastSourceLineSeen[m.OriginalLine] {
			continue
		}
		if len(lastSourceLineSeen) > 0 {
			j.WriteByte(',')
		}
		lastSourceLineSeen[m.OriginalLine] = true

		buf := make([]byte, 0, 24)
		buf = encodeVLQ(buf, m.GeneratedColumn-prevGeneratedColumn)
		buf = encodeVLQ(buf, m.SourceIndex-prevSourceIndex)
		buf = encodeVLQ(buf, m.OriginalLine-prevOriginalLine)
		buf = encodeVLQ(buf, m.OriginalColumn-prevOriginalColumn)
		j.Write(buf)

		prevGeneratedColumn = m.GeneratedColumn
		prevSourceIndex = m.SourceIndex
		prevOriginalLine = m.OriginalLine
		prevOriginalColumn = m.OriginalColumn
	}
	return j.String()
}

// JSON renders the full source-map v3 document.
func (b *Builder) JSON(file string) string {
	var sb strings.Builder
	sb.WriteString(`{`)
	sb.WriteString(`"version":3,`)
	if file != "" {
		sb.WriteString(`"file":`)
		sb.WriteString(strconv.Quote(file))
		sb.WriteString(",")
	}
	sb.WriteString(`"sources":[`)
	for i, s := range b.sources {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(strconv.Quote(s))
	}
	sb.WriteString(`],`)

	hasContent := false
	for _, c := range b.sourcesContent {
		if c != "" {
			hasContent = true
			break
		}
	}
	if hasContent {
		sb.WriteString(`"sourcesContent":[`)
		for i, c := range b.sourcesContent {
			if i > 0 {
				sb.WriteString(",")
			}
			if c == "" {
				sb.WriteString("null")
			} else {
				sb.WriteString(strconv.Quote(c))
			}
		}
		sb.WriteString(`],`)
	}

	sb.WriteString(`"names":[],`)
	sb.WriteString(`"mappings":`)
	sb.WriteString(strconv.Quote(b.Encode()))
	sb.WriteString(`}`)
	return sb.String()
}

// LineColumnOffset tracks a cursor's position in generated output using
// UTF-16 code unit columns, matching the source-map spec's column unit.
type LineColumnOffset struct {
	Lines   int32
	Columns int32
}

func (o *LineColumnOffset) AdvanceString(text string) {
	columns := o.Columns
	for _, r := range text {
		if r == '\n' {
			o.Lines++
			columns = 0
		} else if r >= 0x10000 {
			columns += 2
		} else {
			columns++
		}
	}
	o.Columns = columns
}
