package view

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is shown on screen for an absent value.
const Placeholder = "—"

const dateLayout = "2006-01-02"

// Formatter renders cells for screen and CSV. Dates are shown in its location.
type Formatter struct {
	loc     *time.Location
	printer *message.Printer
}

// NewFormatter returns a Formatter using en-US grouping and loc (UTC when nil).
func NewFormatter(loc *time.Location) Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return Formatter{loc: loc, printer: message.NewPrinter(language.AmericanEnglish)}
}

// Location is the calendar dates are rendered in.
func (f Formatter) Location() *time.Location {
	if f.loc == nil {
		return time.UTC
	}
	return f.loc
}

func (f Formatter) p() *message.Printer {
	if f.printer == nil {
		return message.NewPrinter(language.AmericanEnglish)
	}
	return f.printer
}

// Cell renders the value of col in row for display.
func (f Formatter) Cell(row Row, col Column) string {
	v, ok := row.Value(col.Key)
	if !ok {
		return Placeholder
	}
	return f.Format(v, col.Kind)
}

// Format renders a present value. Values that do not parse under kind are shown raw.
func (f Formatter) Format(v any, kind Kind) string {
	if v == nil {
		return Placeholder
	}
	switch kind {
	case KindNumber:
		return f.formatNumber(v)
	case KindPercent:
		d, ok := Decimal(v)
		if !ok {
			return Raw(v)
		}
		return CanonicalPercent(d).StringFixed(2) + "%"
	case KindDate:
		if s, isString := v.(string); isString && s == "" {
			return Placeholder
		}
		t, ok := ParseDate(v, f.Location())
		if !ok {
			return Raw(v)
		}
		return t.In(f.Location()).Format(dateLayout)
	default:
		return Raw(v)
	}
}

func (f Formatter) formatNumber(v any) string {
	d, ok := Decimal(v)
	if !ok {
		return Raw(v)
	}
	if d.IsInteger() {
		n := d.BigInt()
		if !n.IsInt64() {
			return groupDigits(n.String())
		}
		return f.p().Sprintf("%v", number.Decimal(n.Int64()))
	}
	return f.p().Sprintf("%v", number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(3)))
}

// CSVValue renders the export form of a value: absent is empty, percents are canonical
// without a suffix at full precision, dates are YYYY-MM-DD.
func (f Formatter) CSVValue(row Row, col Column) string {
	v, ok := row.Value(col.Key)
	if !ok {
		return ""
	}
	switch col.Kind {
	case KindNumber:
		if d, ok := Decimal(v); ok {
			return d.String()
		}
		return Raw(v)
	case KindPercent:
		if d, ok := Decimal(v); ok {
			return CanonicalPercent(d).String()
		}
		return Raw(v)
	case KindDate:
		if t, ok := ParseDate(v, f.Location()); ok {
			return t.In(f.Location()).Format(dateLayout)
		}
		return Raw(v)
	default:
		return Raw(v)
	}
}

// groupDigits inserts thousands separators into an integer too large for int64.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
