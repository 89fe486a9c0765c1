package orderform

// Option is one entry of a select control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Select mirrors a <select> element: its options and the selected value.
type Select struct {
	Options []Option
	Value   string
}

// NewSelect returns a select with a copy of opts and nothing selected.
func NewSelect(opts []Option) Select {
	return Select{Options: append([]Option(nil), opts...)}
}

// Append adds opt to the end of the option list. If an option with the same
// value already exists it is not duplicated. When selected is true the option
// becomes the current value.
func (s *Select) Append(opt Option, selected bool) {
	if !s.Has(opt.Value) {
		s.Options = append(s.Options, opt)
	}
	if selected {
		s.Value = opt.Value
	}
}

// Has reports whether value is one of the options.
func (s *Select) Has(value string) bool {
	for _, o := range s.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Label returns the label for value, or "" if it is not an option.
func (s *Select) Label(value string) string {
	for _, o := range s.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return ""
}

// Selected reports whether a non-empty value is selected.
func (s *Select) Selected() bool {
	return s.Value != ""
}

// Cycle moves the selection by delta positions, wrapping around. The empty
// "no selection" slot sits before the first option.
func (s *Select) Cycle(delta int) {
	n := len(s.Options) + 1
	pos := 0
	for i, o := range s.Options {
		if o.Value == s.Value {
			pos = i + 1
			break
		}
	}
	pos = ((pos+delta)%n + n) % n
	if pos == 0 {
		s.Value = ""
		return
	}
	s.Value = s.Options[pos-1].Value
}
