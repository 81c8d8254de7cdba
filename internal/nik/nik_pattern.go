package nik

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	placeholderPrefix   = "{prefix}"
	placeholderSequence = "{sequence}"

	// Sentinel legacy yang disimpan admin lama di kolom format_pattern.
	sentinelPrefixSequence = "PREFIX + SEQUENCE"
)

type patternKind int

const (
	// patternConcat: prefix langsung disambung sequence ter-padding.
	// Dipakai untuk sentinel "PREFIX + SEQUENCE" dan untuk pattern kosong
	// atau tidak dikenal (default).
	patternConcat patternKind = iota
	// patternTemplate: format_pattern berisi {prefix} dan {sequence}.
	patternTemplate
)

// nikPattern is the resolved form of a config's format_pattern. Resolution
// happens once per load, not per formatted NIK.
type nikPattern struct {
	kind     patternKind
	template string
	prefix   string
	length   int
}

func resolvePattern(cfg *DepartmentNikConfig) nikPattern {
	p := nikPattern{
		prefix: cfg.Prefix,
		length: cfg.SequenceLength,
	}

	raw := strings.TrimSpace(cfg.FormatPattern)
	if strings.Contains(raw, placeholderPrefix) && strings.Contains(raw, placeholderSequence) {
		p.kind = patternTemplate
		p.template = raw
		return p
	}

	// Sentinel maupun pattern tak dikenal jatuh ke concat default.
	p.kind = patternConcat
	return p
}

// Format renders the NIK for an issued sequence value.
func (p nikPattern) Format(sequence int64) string {
	padded := fmt.Sprintf("%0*d", p.length, sequence)

	switch p.kind {
	case patternTemplate:
		out := strings.ReplaceAll(p.template, placeholderPrefix, p.prefix)
		return strings.ReplaceAll(out, placeholderSequence, padded)
	default:
		return p.prefix + padded
	}
}

// Regexp builds the exact-match expression accepting any NIK this pattern
// can produce, with the given prefix substituted in.
func (p nikPattern) Regexp(prefix string) (*regexp.Regexp, error) {
	digits := fmt.Sprintf(`\d{%d}`, p.length)

	var expr string
	switch p.kind {
	case patternTemplate:
		expr = regexp.QuoteMeta(p.template)
		expr = strings.ReplaceAll(expr, regexp.QuoteMeta(placeholderPrefix), regexp.QuoteMeta(prefix))
		expr = strings.ReplaceAll(expr, regexp.QuoteMeta(placeholderSequence), digits)
	default:
		expr = regexp.QuoteMeta(prefix) + digits
	}

	return regexp.Compile("^" + expr + "$")
}
