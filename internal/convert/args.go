package convert

import (
	"flag"
	"strings"

	"gni.dev/bpmagick/internal/dbg/trace32"
)

type Args struct {
	Stores     stringList
	Extensions string
	KeepGoing  bool
}

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// CreateArgs registers the flags shared by every subcommand.
func CreateArgs(f *flag.FlagSet) *Args {
	var args Args
	f.Var(&args.Stores, "store", "state store glob, may be repeated (default: VS Code workspace storage)")
	return &args
}

// CreateEmitArgs registers the flags of the t32 subcommand.
func CreateEmitArgs(f *flag.FlagSet) *Args {
	args := CreateArgs(f)
	f.StringVar(&args.Extensions, "ext", strings.Join(trace32.DefaultExtensions, ","), "comma separated list of accepted source extensions")
	f.BoolVar(&args.KeepGoing, "keep-going", false, "skip breakpoints outside any function instead of failing")
	return args
}

func (a *Args) ExtensionList() []string {
	var exts []string
	for _, e := range strings.Split(a.Extensions, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}
