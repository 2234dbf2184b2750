package eicjet

import (
	"fmt"
	"strings"

	"github.com/decibelcooper/eicjet/region"
)

// RegionFlags collects repeated name=value flags, such as
// -files forward=fwd.txt. The first Set discards any default values.
type RegionFlags struct {
	Values  map[region.ID][]string
	beenSet bool
}

func (f *RegionFlags) Set(valueStr string) error {
	name, value, ok := strings.Cut(valueStr, "=")
	if !ok || value == "" {
		return fmt.Errorf("expected region=value, got %q", valueStr)
	}
	id, err := region.Parse(strings.TrimSpace(name))
	if err != nil {
		return err
	}

	if !f.beenSet || f.Values == nil {
		f.beenSet = true
		f.Values = make(map[region.ID][]string)
	}

	f.Values[id] = append(f.Values[id], value)
	return nil
}

func (f *RegionFlags) String() string {
	var parts []string
	for _, id := range region.All {
		for _, v := range f.Values[id] {
			parts = append(parts, strings.ToLower(id.String())+"="+v)
		}
	}
	return strings.Join(parts, ",")
}

// IsSet reports whether the flag appeared on the command line.
func (f *RegionFlags) IsSet() bool {
	return f.beenSet
}
