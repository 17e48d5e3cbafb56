package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pulsehq/pulse/internal/dates"
)

// periodValue is a pflag.Value restricted to a subset of report periods,
// so commands can reject e.g. daily stats at flag-parse time.
type periodValue struct {
	target  *dates.Period
	allowed []dates.Period
}

var _ pflag.Value = (*periodValue)(nil)

func newPeriodValue(target *dates.Period, allowed ...dates.Period) *periodValue {
	return &periodValue{target: target, allowed: allowed}
}

func (v *periodValue) String() string {
	if v.target == nil {
		return ""
	}
	return v.target.String()
}

func (v *periodValue) Set(s string) error {
	p, err := dates.ParsePeriod(s)
	if err != nil {
		return err
	}
	for _, a := range v.allowed {
		if p == a {
			*v.target = p
			return nil
		}
	}
	return fmt.Errorf("period %q not supported here, use one of: %s", s, v.choices())
}

func (v *periodValue) Type() string { return "period" }

func (v *periodValue) choices() string {
	names := make([]string, len(v.allowed))
	for i, a := range v.allowed {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}
