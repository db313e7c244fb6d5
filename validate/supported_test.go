package validate

import (
	"sort"
	"strings"
	"testing"

	"github.com/femnad/modgate/entity"
)

type fixedSource map[string]entity.Metadata

func (f fixedSource) Lookup(module string) (entity.Metadata, bool) {
	m, ok := f[module]
	return m, ok
}

func (f fixedSource) Names() []string {
	var names []string
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var source = fixedSource{
	"stdlib": {
		Name: "puppetlabs-stdlib",
		OperatingSystemSupport: []entity.OSSupport{
			{OperatingSystem: "Debian"},
			{OperatingSystem: "RedHat", OperatingSystemRelease: []string{">= 7"}},
			{OperatingSystem: "Rocky", OperatingSystemRelease: []string{">= 8.6"}},
			{OperatingSystem: "Ubuntu", OperatingSystemRelease: []string{"14.04", "16.04", "18.04"}},
		},
	},
}

func osFact(name, major, full string) entity.OSFact {
	return entity.OSFact{Name: name, Release: entity.Release{Major: major, Full: full}}
}

func boolPtr(b bool) *bool {
	return &b
}

func withRelease(match entity.ReleaseMatch) entity.Rule {
	return entity.Rule{Options: entity.RuleOptions{ReleaseMatch: match}}
}

func TestIsSupported(t *testing.T) {
	supported := osFact("Ubuntu", "14", "14.04")
	blacklisted := osFact("Ubuntu", "14", "14.999")
	oldMajor := osFact("Ubuntu", "1", "1.01")

	type args struct {
		module  string
		fact    entity.OSFact
		options entity.Options
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "Supported OS with default matching",
			args: args{module: "stdlib", fact: supported},
			want: true,
		},
		{
			name: "Supported OS with full matching",
			args: args{module: "stdlib", fact: supported, options: entity.Options{
				OSValidation: withRelease(entity.MatchFull),
			}},
			want: true,
		},
		{
			name: "Supported OS with major matching",
			args: args{module: "stdlib", fact: supported, options: entity.Options{
				OSValidation: withRelease(entity.MatchMajor),
			}},
			want: true,
		},
		{
			name: "Blacklisted by name only",
			args: args{module: "stdlib", fact: blacklisted, options: entity.Options{
				Blacklist: []entity.BlacklistEntry{{Name: "Ubuntu"}},
			}},
		},
		{
			name: "Blacklisted with full matching",
			args: args{module: "stdlib", fact: blacklisted, options: entity.Options{
				Blacklist:           []entity.BlacklistEntry{{Name: "Ubuntu", Releases: []string{"14.999"}}},
				BlacklistValidation: withRelease(entity.MatchFull),
			}},
		},
		{
			name: "Blacklisted with major matching",
			args: args{module: "stdlib", fact: blacklisted, options: entity.Options{
				Blacklist:           []entity.BlacklistEntry{{Name: "Ubuntu", Releases: []string{"14.999"}}},
				BlacklistValidation: withRelease(entity.MatchMajor),
			}},
		},
		{
			name: "Blacklisted but disabled globally",
			args: args{module: "stdlib", fact: blacklisted, options: entity.Options{
				Enable:              boolPtr(false),
				Blacklist:           []entity.BlacklistEntry{{Name: "Ubuntu", Releases: []string{"14.999"}}},
				BlacklistValidation: withRelease(entity.MatchFull),
			}},
			want: true,
		},
		{
			name: "Blacklisted but blacklist validation disabled",
			args: args{module: "stdlib", fact: blacklisted, options: entity.Options{
				Blacklist: []entity.BlacklistEntry{{Name: "Ubuntu", Releases: []string{"14.999"}}},
				BlacklistValidation: entity.Rule{
					Enable:  boolPtr(false),
					Options: entity.RuleOptions{ReleaseMatch: entity.MatchFull},
				},
			}},
			want: true,
		},
		{
			name: "Unsupported full release with full matching",
			args: args{module: "stdlib", fact: blacklisted, options: entity.Options{
				OSValidation: withRelease(entity.MatchFull),
			}},
		},
		{
			name: "Unsupported full release with major matching",
			args: args{module: "stdlib", fact: blacklisted, options: entity.Options{
				OSValidation: withRelease(entity.MatchMajor),
			}},
			want: true,
		},
		{
			name: "Unsupported full release with no release matching",
			args: args{module: "stdlib", fact: blacklisted, options: entity.Options{
				OSValidation: withRelease(entity.MatchNone),
			}},
			want: true,
		},
		{
			name: "Unsupported full release disabled globally",
			args: args{module: "stdlib", fact: blacklisted, options: entity.Options{
				Enable:       boolPtr(false),
				OSValidation: withRelease(entity.MatchFull),
			}},
			want: true,
		},
		{
			name: "Unsupported full release with OS validation disabled",
			args: args{module: "stdlib", fact: blacklisted, options: entity.Options{
				OSValidation: entity.Rule{
					Enable:  boolPtr(false),
					Options: entity.RuleOptions{ReleaseMatch: entity.MatchFull},
				},
			}},
			want: true,
		},
		{
			name: "Unsupported major release",
			args: args{module: "stdlib", fact: oldMajor, options: entity.Options{
				OSValidation: withRelease(entity.MatchMajor),
			}},
		},
		{
			name: "Unsupported OS",
			args: args{module: "stdlib", fact: entity.OSFact{Name: "Bob"}},
		},
		{
			name: "Unsupported OS disabled globally",
			args: args{module: "stdlib", fact: entity.OSFact{Name: "Bob"}, options: entity.Options{
				Enable: boolPtr(false),
			}},
			want: true,
		},
		{
			name: "Blacklist still applies with OS validation disabled",
			args: args{module: "stdlib", fact: supported, options: entity.Options{
				OSValidation: entity.Rule{Enable: boolPtr(false)},
				Blacklist:    []entity.BlacklistEntry{{Name: "Ubuntu"}},
			}},
		},
		{
			name: "Disabling blacklist doesn't make an unsupported OS supported",
			args: args{module: "stdlib", fact: entity.OSFact{Name: "Bob"}, options: entity.Options{
				BlacklistValidation: entity.Rule{Enable: boolPtr(false)},
			}},
		},
		{
			name: "Full blacklist ignores major only equality",
			args: args{module: "stdlib", fact: blacklisted, options: entity.Options{
				Blacklist:           []entity.BlacklistEntry{{Name: "Ubuntu", Releases: []string{"14.04"}}},
				BlacklistValidation: withRelease(entity.MatchFull),
			}},
			want: true,
		},
		{
			name: "Major blacklist ignores full release differences",
			args: args{module: "stdlib", fact: supported, options: entity.Options{
				Blacklist:           []entity.BlacklistEntry{{Name: "Ubuntu", Releases: []string{"14.10"}}},
				BlacklistValidation: withRelease(entity.MatchMajor),
			}},
		},
		{
			name: "Major blacklist with a different major",
			args: args{module: "stdlib", fact: supported, options: entity.Options{
				Blacklist:           []entity.BlacklistEntry{{Name: "Ubuntu", Releases: []string{"16.04"}}},
				BlacklistValidation: withRelease(entity.MatchMajor),
			}},
			want: true,
		},
		{
			name: "Blacklist of another OS",
			args: args{module: "stdlib", fact: supported, options: entity.Options{
				Blacklist: []entity.BlacklistEntry{{Name: "Debian"}},
			}},
			want: true,
		},
		{
			name: "Blacklist release list",
			args: args{module: "stdlib", fact: osFact("Debian", "8", "8.11"), options: entity.Options{
				Blacklist: []entity.BlacklistEntry{
					{Name: "Debian", Releases: []string{"7", "8"}},
				},
			}},
		},
		{
			name: "OS without declared releases",
			args: args{module: "stdlib", fact: osFact("Debian", "12", "12.5"), options: entity.Options{
				OSValidation: withRelease(entity.MatchFull),
			}},
			want: true,
		},
		{
			name: "Release floor satisfied",
			args: args{module: "stdlib", fact: osFact("RedHat", "8", "8.4")},
			want: true,
		},
		{
			name: "Release floor not satisfied",
			args: args{module: "stdlib", fact: osFact("RedHat", "6", "6.10")},
		},
		{
			name: "Full release floor satisfied",
			args: args{module: "stdlib", fact: osFact("Rocky", "9", "9.2"), options: entity.Options{
				OSValidation: withRelease(entity.MatchFull),
			}},
			want: true,
		},
		{
			name: "Full release below floor",
			args: args{module: "stdlib", fact: osFact("Rocky", "8", "8.5"), options: entity.Options{
				OSValidation: withRelease(entity.MatchFull),
			}},
		},
		{
			name: "Unknown module",
			args: args{module: "apache", fact: supported},
		},
		{
			name: "Unknown module disabled globally",
			args: args{module: "apache", fact: supported, options: entity.Options{Enable: boolPtr(false)}},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSupported(source, tt.args.module, tt.args.fact, tt.args.options)
			if got != tt.want {
				verdict := Evaluate(source, tt.args.module, tt.args.fact, tt.args.options)
				t.Errorf("IsSupported() = %v, want %v (%s)", got, tt.want, verdict)
			}
		})
	}
}

func TestEvaluate_Verdict(t *testing.T) {
	verdict := Evaluate(source, "stdlib", osFact("Bob", "1", "1.0"), entity.Options{
		Blacklist: []entity.BlacklistEntry{{Name: "Bob"}},
	})
	if verdict.Supported || verdict.Bypassed {
		t.Errorf("Evaluate() = %+v, want unsupported and not bypassed", verdict)
	}
	if len(verdict.Failures) != 2 {
		t.Errorf("Evaluate() failures = %v, want one per failed check", verdict.Failures)
	}

	verdict = Evaluate(source, "stdlib", osFact("Bob", "1", "1.0"), entity.Options{Enable: boolPtr(false)})
	if !verdict.Supported || !verdict.Bypassed {
		t.Errorf("Evaluate() = %+v, want a bypassed verdict", verdict)
	}
}

func TestEvaluate_NilSource(t *testing.T) {
	if IsSupported(nil, "stdlib", osFact("Ubuntu", "14", "14.04"), entity.Options{}) {
		t.Errorf("IsSupported() with no metadata source should be false")
	}
}

func TestEvaluate_UnknownModuleListsAvailable(t *testing.T) {
	verdict := Evaluate(source, "apache", osFact("Ubuntu", "14", "14.04"), entity.Options{})
	if verdict.Supported {
		t.Fatalf("Evaluate() for an unknown module should be unsupported")
	}
	if len(verdict.Failures) != 1 || !strings.Contains(verdict.Failures[0], "available modules: [stdlib]") {
		t.Errorf("Evaluate() failures = %v, want the available modules listed", verdict.Failures)
	}
}

func TestEvaluate_BlacklistFailure(t *testing.T) {
	tests := []struct {
		name      string
		blacklist []entity.BlacklistEntry
		match     entity.ReleaseMatch
		want      string
	}{
		{
			name:      "Name only entry after a release entry",
			blacklist: []entity.BlacklistEntry{{Name: "Ubuntu", Releases: []string{"16.04"}}, {Name: "Ubuntu"}},
			want:      "Ubuntu is blacklisted",
		},
		{
			name:      "Release entry under name only matching",
			blacklist: []entity.BlacklistEntry{{Name: "Ubuntu", Releases: []string{"16.04"}}},
			match:     entity.MatchNone,
			want:      "Ubuntu is blacklisted",
		},
		{
			name:      "Matching release entry",
			blacklist: []entity.BlacklistEntry{{Name: "Debian"}, {Name: "Ubuntu", Releases: []string{"14.04"}}},
			match:     entity.MatchFull,
			want:      "Ubuntu 14.04 is blacklisted by Ubuntu",
		},
		{
			name:      "No matching entry",
			blacklist: []entity.BlacklistEntry{{Name: "Debian"}, {Name: "Ubuntu", Releases: []string{"16.04"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkBlacklist(input{
				fact:    osFact("Ubuntu", "14", "14.04"),
				options: entity.Options{Blacklist: tt.blacklist, BlacklistValidation: withRelease(tt.match)},
			})
			if tt.want == "" && got != "" {
				t.Errorf("checkBlacklist() = %q, want no failure", got)
			}
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("checkBlacklist() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}
