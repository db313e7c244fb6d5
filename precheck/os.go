package precheck

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	marecmd "github.com/femnad/mare/cmd"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/femnad/modgate/entity"
	"github.com/femnad/modgate/internal"
)

const (
	quote          = `"`
	singleQuote    = `'`
	osIdField      = "ID"
	osVersionField = "VERSION_ID"
	lsbReleaseCmd  = "lsb_release -rs"

	FactOSName    = "os.name"
	FactOSMajor   = "os.release.major"
	FactOSRelease = "os.release.full"
)

// osNames maps os-release IDs to the names used in module metadata.
var osNames = map[string]string{
	"almalinux": "AlmaLinux",
	"amzn":      "Amazon",
	"centos":    "CentOS",
	"fedora":    "Fedora",
	"ol":        "OracleLinux",
	"opensuse":  "OpenSuSE",
	"rhel":      "RedHat",
	"rocky":     "Rocky",
	"sles":      "SLES",
}

func removeQuotes(s string) string {
	for _, q := range []string{quote, singleQuote} {
		if len(s) >= 2 && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func readOSRelease(file string) (map[string]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fields := make(map[string]string)
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanLines)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		field, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("unexpected line in %s: %s", file, line)
		}

		fields[field] = removeQuotes(value)
	}

	return fields, scanner.Err()
}

// OSName converts an os-release ID to its metadata spelling.
func OSName(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if name, ok := osNames[id]; ok {
		return name
	}
	return cases.Title(language.English).String(id)
}

func lsbRelease() (string, error) {
	out, err := marecmd.Run(marecmd.Input{Command: lsbReleaseCmd})
	if err != nil {
		return "", fmt.Errorf("error running %s: %w", lsbReleaseCmd, err)
	}
	return strings.TrimSpace(out.Stdout), nil
}

func releaseFromVersion(version string) entity.Release {
	major, _, _ := strings.Cut(version, ".")
	return entity.Release{Major: major, Full: version}
}

// ReadOSFact builds the os fact of the current host from an os-release file.
func ReadOSFact(file string) (entity.OSFact, error) {
	fields, err := readOSRelease(file)
	if err != nil {
		return entity.OSFact{}, err
	}

	id := fields[osIdField]
	if id == "" {
		return entity.OSFact{}, fmt.Errorf("unable to locate %s field in %s", osIdField, file)
	}

	version := fields[osVersionField]
	if version == "" {
		internal.Log.Debugf("No %s field in %s, falling back to lsb_release", osVersionField, file)
		version, err = lsbRelease()
		if err != nil {
			return entity.OSFact{}, errors.Join(fmt.Errorf("unable to determine OS release"), err)
		}
	}

	return entity.OSFact{Name: OSName(id), Release: releaseFromVersion(version)}, nil
}

// ApplyOverrides replaces fact fields with host fact values. Overriding only the
// full release also updates the major release.
func ApplyOverrides(fact entity.OSFact, overrides map[string]string) entity.OSFact {
	if name, ok := overrides[FactOSName]; ok {
		fact.Name = name
	}
	if full, ok := overrides[FactOSRelease]; ok {
		fact.Release = releaseFromVersion(full)
	}
	if major, ok := overrides[FactOSMajor]; ok {
		fact.Release.Major = major
	}
	return fact
}
