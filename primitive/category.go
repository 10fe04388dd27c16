package primitive

// CategoryEnum selects which textual representations a cell may use for a kind.
// Categories combine as bit flags.
type CategoryEnum int

const (
	CategoryTextNumber  CategoryEnum = 1 << iota // base 10 integers and decimal floats
	CategoryStrictBool                           // true, false, 1, 0, t, f as accepted by strconv.ParseBool
	CategoryTextualBool                          // yes, no, on, off, y, n
	CategoryDatetime                             // layouts from the converter options, RFC3339Nano first
	CategoryTimestamp                            // integer Unix seconds into time.Time
	CategoryDuration                             // 2h45m style durations
	CategorySeconds                              // float seconds into time.Duration

	CategoryAll  = (1 << iota) - 1 // all categories combined
	CategoryNone = 0               // no categories selected

	// CategoryStandard is what the converter accepts unless configured otherwise.
	CategoryStandard = CategoryTextNumber | CategoryStrictBool | CategoryDatetime | CategoryDuration
)

// Has reports whether every category in other is enabled in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}

// Accepts reports whether c enables at least one textual form for kind k.
func (c CategoryEnum) Accepts(k KindEnum) bool {
	switch {
	case k == KindString || k == KindCustom:
		return true
	case k.IsNumber():
		return c.Has(CategoryTextNumber)
	case k == KindBool:
		return c&(CategoryStrictBool|CategoryTextualBool) != 0
	case k == KindTime:
		return c&(CategoryDatetime|CategoryTimestamp) != 0
	case k == KindDuration:
		return c&(CategoryDuration|CategorySeconds) != 0
	default:
		return false
	}
}
