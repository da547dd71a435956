package cli

import (
	"github.com/spf13/pflag"

	"github.com/clangoi/judotimer/internal/domain"
)

// tabataFlags are the tabata configuration flags shared by run and the
// sequence commands.
type tabataFlags struct {
	work    int
	rest    int
	cycles  int
	sets    int
	setRest int
}

func (f *tabataFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.work, "work", 0, "work phase length in seconds")
	fs.IntVar(&f.rest, "rest", 0, "rest phase length in seconds")
	fs.IntVar(&f.cycles, "cycles", 0, "work phases per set")
	fs.IntVar(&f.sets, "sets", 0, "number of sets")
	fs.IntVar(&f.setRest, "set-rest", 0, "rest between sets in seconds")
}

// apply overlays the flags the user set on base. It reports whether any
// flag was set.
func (f *tabataFlags) apply(fs *pflag.FlagSet, base domain.TabataConfig) (domain.TabataConfig, bool) {
	changed := false
	for _, field := range []struct {
		name   string
		target *int
		value  int
	}{
		{"work", &base.WorkSeconds, f.work},
		{"rest", &base.RestSeconds, f.rest},
		{"cycles", &base.CyclesPerSet, f.cycles},
		{"sets", &base.TotalSets, f.sets},
		{"set-rest", &base.RestBetweenSetsSeconds, f.setRest},
	} {
		if fs.Changed(field.name) {
			*field.target = field.value
			changed = true
		}
	}
	return base, changed
}
