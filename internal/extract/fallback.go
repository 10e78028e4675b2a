package extract

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"io"
	"strings"
	"unicode"
)

// scrapePDF is the degraded recovery path for PDFs the primary parser cannot
// handle. It inflates encoded content streams, pulls literal parenthesized
// strings out of them and out of the raw bytes, strips non-printable
// characters and collapses whitespace. Best effort only; returns "" when
// nothing recoverable is found.
func scrapePDF(data []byte) string {
	var collected []string

	for _, stream := range rawStreams(data) {
		if inflated, ok := inflate(stream); ok {
			collected = append(collected, literalStrings(inflated)...)
			continue
		}
		collected = append(collected, literalStrings(stream)...)
	}

	// Uncompressed PDFs keep text objects directly in the body.
	collected = append(collected, literalStrings(data)...)

	joined := strings.Join(collected, " ")
	return collapseWhitespace(stripNonPrintable(joined))
}

// rawStreams returns the byte ranges between stream/endstream keywords.
func rawStreams(data []byte) [][]byte {
	var out [][]byte
	rest := data
	for {
		start := bytes.Index(rest, []byte("stream"))
		if start < 0 {
			return out
		}
		body := rest[start+len("stream"):]
		body = bytes.TrimLeft(body, "\r\n")
		end := bytes.Index(body, []byte("endstream"))
		if end < 0 {
			return out
		}
		out = append(out, body[:end])
		rest = body[end+len("endstream"):]
	}
}

func inflate(data []byte) ([]byte, bool) {
	if r, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
		out, err := io.ReadAll(io.LimitReader(r, 8<<20))
		r.Close()
		if err == nil && len(out) > 0 {
			return out, true
		}
	}
	r := flate.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(io.LimitReader(r, 8<<20))
	r.Close()
	if err == nil && len(out) > 0 {
		return out, true
	}
	return nil, false
}

// literalStrings extracts PDF literal string objects: parenthesized runs
// with backslash escapes and balanced nested parentheses.
func literalStrings(data []byte) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	for i := 0; i < len(data); i++ {
		ch := data[i]
		if depth == 0 {
			if ch == '(' {
				depth = 1
				cur.Reset()
			}
			continue
		}
		switch ch {
		case '\\':
			if i+1 < len(data) {
				i++
				switch data[i] {
				case 'n':
					cur.WriteByte('\n')
				case 't':
					cur.WriteByte('\t')
				case 'r', 'f', 'b':
					cur.WriteByte(' ')
				default:
					cur.WriteByte(data[i])
				}
			}
		case '(':
			depth++
			cur.WriteByte(ch)
		case ')':
			depth--
			if depth == 0 {
				if s := strings.TrimSpace(cur.String()); s != "" {
					out = append(out, s)
				}
			} else {
				cur.WriteByte(ch)
			}
		default:
			cur.WriteByte(ch)
		}
	}
	return out
}

func stripNonPrintable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
