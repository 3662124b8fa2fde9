package decoder

import (
	"fmt"
	"strconv"
	"strings"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/charset"
	"github.com/ericlevine/pdf417go/internal"
)

// Mode latches and control codewords.
const (
	textLatch         = 900
	byteLatch         = 901
	numericLatch      = 902
	shiftToByte       = 913
	macroTerminator   = 922
	macroOptional     = 923
	byteLatch6        = 924
	eciUserDefined    = 925
	eciGeneral        = 926
	eciCharset        = 927
	macroControlBlock = 928

	maxNumericCodewords = 15
	segmentIndexLength  = 2
)

// Macro PDF417 optional field designators.
const (
	fieldFileName = iota
	fieldSegmentCount
	fieldTimestamp
	fieldSender
	fieldAddressee
	fieldFileSize
	fieldChecksum
)

// Text compaction sub-mode switches.
const (
	tcPL  = 25
	tcLL  = 27
	tcAS  = 27
	tcML  = 28
	tcAL  = 28
	tcPS  = 29
	tcPAL = 29
)

const (
	mixedChars = "0123456789&\r\t,:#-.$/+%*=^"
	punctChars = ";<>@[\\]_`~!\r\t,:\n-.$/\"|*()?{}'"
)

// ResultMetadata describes one segment of a Macro PDF417 sequence.
// Numeric fields that were not present are -1.
type ResultMetadata struct {
	SegmentIndex int
	FileID       string
	OptionalData []int
	LastSegment  bool
	SegmentCount int
	FileName     string
	Sender       string
	Addressee    string
	Timestamp    int64
	FileSize     int64
	Checksum     int
}

func newResultMetadata() *ResultMetadata {
	return &ResultMetadata{SegmentCount: -1, Timestamp: -1, FileSize: -1, Checksum: -1}
}

// DecodeBitStream interprets corrected codewords. codewords[0] is the
// symbol length descriptor; data runs from index 1 up to it.
func DecodeBitStream(codewords []int, ecLevel, fallbackCharset string) (*internal.DecoderResult, error) {
	if len(codewords) == 0 || codewords[0] < 1 || codewords[0] > len(codewords) {
		return nil, fmt.Errorf("pdf417: bad length descriptor: %w", pdf417go.ErrFormat)
	}
	s := &stream{
		cw:       codewords,
		pos:      1,
		end:      codewords[0],
		fallback: fallbackCharset,
	}
	s.out = newTextSink(fallbackCharset)

	err := s.text()
	for err == nil && s.pos < s.end {
		code := s.next()
		switch code {
		case textLatch:
			err = s.text()
		case byteLatch, byteLatch6:
			err = s.bytes(code)
		case numericLatch:
			err = s.numeric()
		case shiftToByte:
			err = s.shiftedByte()
		case eciCharset:
			err = s.eci()
		case eciGeneral:
			s.pos += 2
		case eciUserDefined:
			s.pos++
		case macroControlBlock:
			err = s.macro()
		case macroOptional, macroTerminator:
			err = fmt.Errorf("pdf417: macro field %d outside a control block: %w", code, pdf417go.ErrFormat)
		default:
			// Symbols that start without a mode latch are in text mode.
			s.pos--
			err = s.text()
		}
	}
	if err != nil {
		return nil, err
	}

	text := s.out.String()
	if text == "" && s.meta == nil {
		return nil, fmt.Errorf("pdf417: symbol holds no data: %w", pdf417go.ErrFormat)
	}
	result := internal.NewDecoderResult(nil, text, s.out.segments, ecLevel)
	if s.meta != nil {
		result.Other = s.meta
	}
	return result, nil
}

type stream struct {
	cw       []int
	pos, end int
	fallback string
	out      *textSink
	meta     *ResultMetadata
}

func (s *stream) next() int {
	c := s.cw[s.pos]
	s.pos++
	return c
}

func (s *stream) shiftedByte() error {
	if s.pos >= s.end {
		return fmt.Errorf("pdf417: byte shift at end of data: %w", pdf417go.ErrFormat)
	}
	s.out.writeByte(byte(s.next()))
	return nil
}

func (s *stream) eci() error {
	if s.pos >= s.end {
		return fmt.Errorf("pdf417: ECI without a value: %w", pdf417go.ErrFormat)
	}
	e, err := charset.ByValue(s.next())
	if err != nil {
		return fmt.Errorf("pdf417: %v: %w", err, pdf417go.ErrFormat)
	}
	s.out.setCharset(e.Name)
	return nil
}

// text decodes text compaction until a codeword that starts another mode.
func (s *stream) text() error {
	var t textDecoder
	for s.pos < s.end {
		code := s.next()
		if code < textLatch {
			s.out.writeText(t.push(code / 30))
			s.out.writeText(t.push(code % 30))
			continue
		}
		switch code {
		case textLatch:
			t = textDecoder{}
		case shiftToByte:
			if err := s.shiftedByte(); err != nil {
				return err
			}
		case eciCharset:
			if err := s.eci(); err != nil {
				return err
			}
		case byteLatch, byteLatch6, numericLatch,
			macroControlBlock, macroOptional, macroTerminator:
			s.pos--
			return nil
		}
	}
	return nil
}

// bytes decodes byte compaction. Five codewords carry six bytes; under 901
// only when more data follows them, under 924 always. Anything left over
// is one byte per codeword.
func (s *stream) bytes(mode int) error {
	var segment []byte
	defer func() {
		if len(segment) > 0 {
			s.out.segments = append(s.out.segments, segment)
		}
	}()
	for s.pos < s.end {
		code := s.cw[s.pos]
		if code == eciCharset {
			s.pos++
			if err := s.eci(); err != nil {
				return err
			}
			continue
		}
		if code >= textLatch {
			return nil
		}

		n := 0
		for n < 5 && s.pos+n < s.end && s.cw[s.pos+n] < textLatch {
			n++
		}
		followed := s.pos+5 < s.end && s.cw[s.pos+5] < textLatch
		if n == 5 && (mode == byteLatch6 || followed) {
			var v int64
			for i := 0; i < 5; i++ {
				v = 900*v + int64(s.next())
			}
			for shift := 40; shift >= 0; shift -= 8 {
				b := byte(v >> uint(shift))
				s.out.writeByte(b)
				segment = append(segment, b)
			}
			continue
		}
		for i := 0; i < n; i++ {
			b := byte(s.next())
			s.out.writeByte(b)
			segment = append(segment, b)
		}
	}
	return nil
}

// numeric decodes numeric compaction in groups of up to 15 codewords.
func (s *stream) numeric() error {
	group := make([]int, 0, maxNumericCodewords)
	flush := func() error {
		if len(group) == 0 {
			return nil
		}
		digits, err := decodeBase900toBase10(group)
		if err != nil {
			return err
		}
		s.out.writeString(digits)
		group = group[:0]
		return nil
	}
	for s.pos < s.end {
		code := s.cw[s.pos]
		if code >= textLatch && code != numericLatch {
			break
		}
		s.pos++
		if code == numericLatch {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		group = append(group, code)
		if len(group) == maxNumericCodewords {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

// decodeBase900toBase10 converts a numeric compaction group to its digits.
// Encoders prefix every group with a 1 so leading zeros survive; the prefix
// is checked and dropped.
func decodeBase900toBase10(codewords []int) (string, error) {
	// Little-endian decimal digits; 15 codewords need at most 45.
	digits := make([]byte, 0, 3*maxNumericCodewords)
	for _, c := range codewords {
		carry := c
		for i := range digits {
			v := int(digits[i])*900 + carry
			digits[i] = byte(v % 10)
			carry = v / 10
		}
		for carry > 0 {
			digits = append(digits, byte(carry%10))
			carry /= 10
		}
	}
	n := len(digits)
	if n == 0 || digits[n-1] != 1 {
		return "", fmt.Errorf("pdf417: numeric group lacks its leading 1: %w", pdf417go.ErrFormat)
	}
	var b strings.Builder
	b.Grow(n - 1)
	for i := n - 2; i >= 0; i-- {
		b.WriteByte('0' + digits[i])
	}
	return b.String(), nil
}

// macro decodes a Macro PDF417 control block.
func (s *stream) macro() error {
	md := newResultMetadata()
	s.meta = md

	if s.pos+segmentIndexLength > s.end {
		return fmt.Errorf("pdf417: truncated macro segment index: %w", pdf417go.ErrFormat)
	}
	index, err := decodeBase900toBase10(s.cw[s.pos : s.pos+segmentIndexLength])
	if err != nil {
		return err
	}
	s.pos += segmentIndexLength
	if index != "" {
		if md.SegmentIndex, err = strconv.Atoi(index); err != nil {
			return fmt.Errorf("pdf417: segment index %q: %w", index, pdf417go.ErrFormat)
		}
	}

	var fileID strings.Builder
	for s.pos < s.end && s.cw[s.pos] != macroTerminator && s.cw[s.pos] != macroOptional {
		fmt.Fprintf(&fileID, "%03d", s.next())
	}
	if fileID.Len() == 0 {
		return fmt.Errorf("pdf417: macro block without file id: %w", pdf417go.ErrFormat)
	}
	md.FileID = fileID.String()

	optionalStart := -1
	if s.pos < s.end && s.cw[s.pos] == macroOptional {
		optionalStart = s.pos + 1
	}

	for s.pos < s.end {
		switch s.next() {
		case macroOptional:
			if s.pos >= s.end {
				return fmt.Errorf("pdf417: macro field without designator: %w", pdf417go.ErrFormat)
			}
			if err := s.optionalField(md, s.next()); err != nil {
				return err
			}
		case macroTerminator:
			md.LastSegment = true
		default:
			return fmt.Errorf("pdf417: unexpected codeword in macro block: %w", pdf417go.ErrFormat)
		}
	}

	if optionalStart >= 0 {
		n := s.pos - optionalStart
		if md.LastSegment {
			n--
		}
		if n > 0 {
			md.OptionalData = append([]int(nil), s.cw[optionalStart:optionalStart+n]...)
		}
	}
	return nil
}

func (s *stream) optionalField(md *ResultMetadata, field int) error {
	var err error
	switch field {
	case fieldFileName:
		md.FileName, err = s.capture(s.text)
	case fieldSender:
		md.Sender, err = s.capture(s.text)
	case fieldAddressee:
		md.Addressee, err = s.capture(s.text)
	case fieldSegmentCount:
		var n int64
		n, err = s.captureNumber()
		md.SegmentCount = int(n)
	case fieldChecksum:
		var n int64
		n, err = s.captureNumber()
		md.Checksum = int(n)
	case fieldTimestamp:
		md.Timestamp, err = s.captureNumber()
	case fieldFileSize:
		md.FileSize, err = s.captureNumber()
	default:
		err = fmt.Errorf("pdf417: unknown macro field %d: %w", field, pdf417go.ErrFormat)
	}
	return err
}

// capture runs a compaction mode into a fresh sink and returns its text.
func (s *stream) capture(mode func() error) (string, error) {
	saved := s.out
	s.out = newTextSink(s.fallback)
	defer func() { s.out = saved }()
	if err := mode(); err != nil {
		return "", err
	}
	return s.out.String(), nil
}

func (s *stream) captureNumber() (int64, error) {
	digits, err := s.capture(s.numeric)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("pdf417: macro number %q: %w", digits, pdf417go.ErrFormat)
	}
	return n, nil
}

// textSink accumulates decoded bytes and converts them to UTF-8 one
// character set run at a time.
type textSink struct {
	done     strings.Builder
	pending  []byte
	charset  string
	fallback string
	segments [][]byte
}

func newTextSink(fallback string) *textSink {
	return &textSink{fallback: fallback}
}

func (t *textSink) writeByte(b byte) { t.pending = append(t.pending, b) }

func (t *textSink) writeString(s string) { t.pending = append(t.pending, s...) }

// writeText appends a text compaction character; 0 means none.
func (t *textSink) writeText(c byte) {
	if c != 0 {
		t.pending = append(t.pending, c)
	}
}

func (t *textSink) setCharset(name string) {
	t.flush()
	t.charset = name
}

func (t *textSink) flush() {
	if len(t.pending) == 0 {
		return
	}
	name := t.charset
	if name == "" {
		name = charset.Guess(t.pending, t.fallback)
	}
	t.done.WriteString(charset.Decode(t.pending, name))
	t.pending = t.pending[:0]
}

func (t *textSink) String() string {
	t.flush()
	return t.done.String()
}

type textMode int

const (
	modeAlpha textMode = iota
	modeLower
	modeMixed
	modePunct
	modeAlphaShift
	modePunctShift
)

// textDecoder tracks the text compaction sub-mode across values.
type textDecoder struct {
	mode  textMode
	prior textMode
}

func (t *textDecoder) shift(to textMode) {
	t.prior = t.mode
	t.mode = to
}

// push consumes one base-30 value and returns the character it encodes,
// or 0 for a mode switch.
func (t *textDecoder) push(v int) byte {
	switch t.mode {
	case modeAlpha:
		switch {
		case v < 26:
			return byte('A' + v)
		case v == 26:
			return ' '
		case v == tcLL:
			t.mode = modeLower
		case v == tcML:
			t.mode = modeMixed
		case v == tcPS:
			t.shift(modePunctShift)
		}
	case modeLower:
		switch {
		case v < 26:
			return byte('a' + v)
		case v == 26:
			return ' '
		case v == tcAS:
			t.shift(modeAlphaShift)
		case v == tcML:
			t.mode = modeMixed
		case v == tcPS:
			t.shift(modePunctShift)
		}
	case modeMixed:
		switch {
		case v < tcPL:
			return mixedChars[v]
		case v == tcPL:
			t.mode = modePunct
		case v == 26:
			return ' '
		case v == tcLL:
			t.mode = modeLower
		case v == tcAL:
			t.mode = modeAlpha
		case v == tcPS:
			t.shift(modePunctShift)
		}
	case modePunct:
		if v < tcPAL {
			return punctChars[v]
		}
		t.mode = modeAlpha
	case modeAlphaShift:
		t.mode = t.prior
		switch {
		case v < 26:
			return byte('A' + v)
		case v == 26:
			return ' '
		}
	case modePunctShift:
		t.mode = t.prior
		if v < tcPAL {
			return punctChars[v]
		}
		t.mode = modeAlpha
	}
	return 0
}
