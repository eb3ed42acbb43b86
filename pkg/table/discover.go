package table

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"rackmond/pkg/log"
)

// ErrNoRackID is returned when a filename yields no rack identifier.
// Such files are unusable and skipped entirely; there is no guessing
// beyond the documented pattern list.
var ErrNoRackID = errors.New("no rack identifier in filename")

// rackIDPatterns are tried in order against the lowercased filename.
var rackIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`rack[_\s-]*(\d+)`),
	regexp.MustCompile(`r(\d+)`),
	regexp.MustCompile(`server[_\s-]*(\d+)`),
	regexp.MustCompile(`node[_\s-]*(\d+)`),
	regexp.MustCompile(`(\d+)[_\s-]*rack`),
	regexp.MustCompile(`(\d+)[_\s-]*server`),
}

var bareNumberPattern = regexp.MustCompile(`\d+`)

// ExtractRackID extracts the rack number from a filename. It tries the
// documented patterns first and falls back to the first bare number
// anywhere in the name.
func ExtractRackID(filename string) (int, error) {
	lower := strings.ToLower(filename)

	for _, pattern := range rackIDPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		id, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		return id, nil
	}

	if match := bareNumberPattern.FindString(filename); match != "" {
		if id, err := strconv.Atoi(match); err == nil {
			return id, nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrNoRackID, filename)
}

// DiscoverRacks lists the *.csv files in dir and groups them by rack id.
// Filenames are sorted so that "first file wins" is deterministic across
// reloads. Files without an extractable rack id are dropped.
func DiscoverRacks(dir string) (map[int][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	racks := make(map[int][]string)
	for _, name := range names {
		id, err := ExtractRackID(name)
		if err != nil {
			log.Warn().Str("file", name).Msg("Could not extract rack number from filename")
			continue
		}
		racks[id] = append(racks[id], name)
	}

	return racks, nil
}
