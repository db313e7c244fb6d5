package entity

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BlacklistEntry is either a bare OS name, covering every release, or a single
// key mapping of an OS name to one or more releases.
type BlacklistEntry struct {
	Name     string
	Releases []string
}

func (b BlacklistEntry) HasReleases() bool {
	return len(b.Releases) > 0
}

// Blacklist rejects null entries, which the decoder would otherwise skip
// without calling BlacklistEntry's unmarshaler.
type Blacklist []BlacklistEntry

func (b *Blacklist) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: blacklist must be a list", node.Line)
	}

	var entries Blacklist
	for _, item := range node.Content {
		if item.Kind == yaml.ScalarNode && isEmpty(item) {
			return fmt.Errorf("line %d: blacklist entry must not be empty", item.Line)
		}
		var entry BlacklistEntry
		if err := item.Decode(&entry); err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	*b = entries
	return nil
}

func isEmpty(node *yaml.Node) bool {
	return node.ShortTag() == "!!null" || node.Value == ""
}

func (b *BlacklistEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if isEmpty(node) {
			return fmt.Errorf("line %d: blacklist entry must not be empty", node.Line)
		}
		*b = BlacklistEntry{Name: node.Value}
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: blacklist entry must have exactly one OS name, got %d", node.Line, len(node.Content)/2)
		}
	default:
		return fmt.Errorf("line %d: blacklist entry must be an OS name or a mapping of OS name to releases", node.Line)
	}

	key, value := node.Content[0], node.Content[1]
	if key.Kind != yaml.ScalarNode || isEmpty(key) {
		return fmt.Errorf("line %d: blacklist OS name must be a non-empty string", key.Line)
	}

	var releases []string
	switch value.Kind {
	case yaml.ScalarNode:
		if isEmpty(value) {
			return fmt.Errorf("line %d: releases for %s must not be empty, use a bare name to blacklist every release", value.Line, key.Value)
		}
		releases = []string{value.Value}
	case yaml.SequenceNode:
		if len(value.Content) == 0 {
			return fmt.Errorf("line %d: releases for %s must not be empty, use a bare name to blacklist every release", value.Line, key.Value)
		}
		for _, release := range value.Content {
			if release.Kind == yaml.ScalarNode && isEmpty(release) {
				return fmt.Errorf("line %d: empty release for %s", release.Line, key.Value)
			}
		}
		if err := value.Decode(&releases); err != nil {
			return fmt.Errorf("line %d: invalid releases for %s: %w", value.Line, key.Value, err)
		}
	default:
		return fmt.Errorf("line %d: releases for %s must be a string or a list of strings", value.Line, key.Value)
	}

	*b = BlacklistEntry{Name: key.Value, Releases: releases}
	return nil
}

func (b BlacklistEntry) MarshalYAML() (interface{}, error) {
	switch len(b.Releases) {
	case 0:
		return b.Name, nil
	case 1:
		return map[string]string{b.Name: b.Releases[0]}, nil
	default:
		return map[string][]string{b.Name: b.Releases}, nil
	}
}
