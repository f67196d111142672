package tariff

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/vanrota/vanrota/core/model"
)

// Entry is one priced service. Primary-table entries carry per-vehicle
// prices; secondary-table entries carry a flat per-sale price.
type Entry struct {
	Prices map[model.VehicleClass]float64 `json:"prices,omitempty"`
	Flat   float64                        `json:"flat,omitempty"`
}

// PriceFor resolves the per-vehicle price for an entry, falling back to the
// small-car price when the requested class is absent.
func (e Entry) PriceFor(class model.VehicleClass) (float64, bool) {
	if p, ok := e.Prices[class]; ok {
		return p, true
	}
	if p, ok := e.Prices[model.VehicleSmallCar]; ok {
		return p, true
	}
	return 0, false
}

// Table is a read-only price list keyed by canonical service key.
type Table struct {
	Name    string
	Entries map[string]Entry
}

// DefaultPrices is the fixed fallback applied when neither table matches.
var DefaultPrices = map[model.VehicleClass]float64{
	model.VehicleSmallCar: 200,
	model.VehicleVan15:    300,
	model.VehicleVan18:    350,
	model.VehicleMinibus:  500,
	model.VehicleBus:      800,
}

// LoadTable reads a tariff table from a YAML or JSON file. The file maps the
// canonical service key either to a number (flat price) or to a map of
// vehicle class to price.
func LoadTable(name, path string) (*Table, error) {
	k := koanf.New(".")
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported tariff format: %s", path)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("load tariff table %s: %w", name, err)
	}

	entries := make(map[string]Entry)
	for key, raw := range k.Raw() {
		entry, err := parseEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("tariff table %s, key %q: %w", name, key, err)
		}
		entries[strings.ToUpper(strings.TrimSpace(key))] = entry
	}
	return &Table{Name: name, Entries: entries}, nil
}

func parseEntry(raw any) (Entry, error) {
	switch v := raw.(type) {
	case float64:
		return Entry{Flat: v}, nil
	case int:
		return Entry{Flat: float64(v)}, nil
	case map[string]any:
		prices := make(map[model.VehicleClass]float64, len(v))
		for class, pv := range v {
			vc := model.VehicleClass(class)
			if !vc.IsValid() {
				return Entry{}, fmt.Errorf("unknown vehicle class %q", class)
			}
			switch p := pv.(type) {
			case float64:
				prices[vc] = p
			case int:
				prices[vc] = float64(p)
			default:
				return Entry{}, fmt.Errorf("price for %q is not numeric", class)
			}
		}
		return Entry{Prices: prices}, nil
	default:
		return Entry{}, fmt.Errorf("entry is neither a price nor a price map")
	}
}
