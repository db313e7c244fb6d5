package entity

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/femnad/modgate/internal"
)

type ReleaseMatch string

const (
	MatchNone  ReleaseMatch = "none"
	MatchMajor ReleaseMatch = "major"
	MatchFull  ReleaseMatch = "full"

	DefaultReleaseMatch = MatchMajor
)

var releaseMatches = []ReleaseMatch{MatchNone, MatchMajor, MatchFull}

func (m *ReleaseMatch) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	match := ReleaseMatch(s)
	if !internal.Contains(releaseMatches, match) {
		return fmt.Errorf("line %d: invalid release_match %q, expected one of %v", node.Line, s, releaseMatches)
	}

	*m = match
	return nil
}

type RuleOptions struct {
	ReleaseMatch ReleaseMatch `yaml:"release_match,omitempty"`
}

// Rule toggles one validation check and sets how versions are compared for it.
type Rule struct {
	Enable  *bool       `yaml:"enable,omitempty"`
	Options RuleOptions `yaml:"options,omitempty"`
}

func (r Rule) Enabled() bool {
	return r.Enable == nil || *r.Enable
}

func (r Rule) Match() ReleaseMatch {
	if r.Options.ReleaseMatch == "" {
		return DefaultReleaseMatch
	}
	return r.Options.ReleaseMatch
}

// Options controls an OS support evaluation. The zero value enables every check.
type Options struct {
	Enable              *bool            `yaml:"enable,omitempty"`
	OSValidation        Rule             `yaml:"os_validation,omitempty"`
	Blacklist           Blacklist        `yaml:"blacklist,omitempty"`
	BlacklistValidation Rule             `yaml:"blacklist_validation,omitempty"`
}

func (o Options) Enabled() bool {
	return o.Enable == nil || *o.Enable
}

// Effective returns a copy with every default spelled out.
func (o Options) Effective() Options {
	enabled := func(b bool) *bool { return &b }
	return Options{
		Enable: enabled(o.Enabled()),
		OSValidation: Rule{
			Enable:  enabled(o.OSValidation.Enabled()),
			Options: RuleOptions{ReleaseMatch: o.OSValidation.Match()},
		},
		Blacklist: o.Blacklist,
		BlacklistValidation: Rule{
			Enable:  enabled(o.BlacklistValidation.Enabled()),
			Options: RuleOptions{ReleaseMatch: o.BlacklistValidation.Match()},
		},
	}
}

// DecodeOptions strictly decodes options, rejecting unknown keys and mistyped values.
func DecodeOptions(r io.Reader) (Options, error) {
	var o Options
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err := decoder.Decode(&o)
	if errors.Is(err, io.EOF) {
		return Options{}, nil
	}
	if err != nil {
		return Options{}, fmt.Errorf("error decoding validation options: %w", err)
	}

	return o, nil
}

func ParseOptions(in []byte) (Options, error) {
	return DecodeOptions(bytes.NewReader(in))
}
