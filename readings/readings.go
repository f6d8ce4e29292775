// Package readings parses multi-channel temperature logs.
//
// A log is plain text, one sample per line. The k-th number on a line is the
// reading of channel k at that sample, so a line such as
//
//	45.0 47.5 44.0 46.0
//
// contributes one value to each of four channels. Text around the numbers is
// ignored. Files may be UTF-8 or UTF-16; see Parse for how the encoding is
// chosen.
package readings

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"regexp"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/YuminosukeSato/corefit/pkg/errors"
	"github.com/YuminosukeSato/corefit/polyfit"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Channels holds one series of readings per channel, in sample order.
// Channels may differ in length when lines carry different numbers of values.
type Channels [][]float64

// Len returns the number of channels.
func (c Channels) Len() int { return len(c) }

// Samples returns the length of the longest channel.
func (c Channels) Samples() int {
	n := 0
	for _, ch := range c {
		if len(ch) > n {
			n = len(ch)
		}
	}
	return n
}

// Parse reads a temperature log from r.
//
// Input starting with a byte order mark is decoded according to it. Input
// without one is read as UTF-8 when it is valid UTF-8 free of NUL bytes, and
// otherwise as UTF-16 (big-endian when the first byte is NUL, little-endian
// otherwise). The UTF-16 guess raises a DataConversionWarning.
func Parse(r io.Reader) (Channels, error) {
	const op = "readings.Parse"

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	text, err := decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: decode input", op)
	}

	var channels Channels
	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; sc.Scan(); line++ {
		for k, field := range numberPattern.FindAllString(sc.Text(), -1) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.NewValueError(op,
					"line "+strconv.Itoa(line)+": "+err.Error())
			}
			for len(channels) <= k {
				channels = append(channels, nil)
			}
			channels[k] = append(channels[k], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, op)
	}
	return channels, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (Channels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open readings %q", path)
	}
	defer f.Close()

	channels, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", path)
	}
	return channels, nil
}

func decode(raw []byte) ([]byte, error) {
	if hasBOM(raw) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
		return out, err
	}
	// NUL never appears in a text log but fills every other byte of
	// UTF-16 encoded ASCII, which is otherwise valid UTF-8.
	if utf8.Valid(raw) && bytes.IndexByte(raw, 0) < 0 {
		return raw, nil
	}

	endian, name := unicode.LittleEndian, "utf-16le"
	if len(raw) > 0 && raw[0] == 0 {
		endian, name = unicode.BigEndian, "utf-16be"
	}
	errors.Warn(errors.NewDataConversionWarning("bytes", name, "input is not UTF-8 text and has no byte order mark"))
	return unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
}

func hasBOM(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(b, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(b, []byte{0xFE, 0xFF})
}

// Points turns a channel into time-stamped points: sample i is placed at
// x = i·sampleRate.
func Points(channel []float64, sampleRate float64) []polyfit.Point {
	points := make([]polyfit.Point, len(channel))
	for i, v := range channel {
		points[i] = polyfit.Point{X: float64(i) * sampleRate, Y: v}
	}
	return points
}
