package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vanrota/vanrota/core/model"
)

type TripDef struct {
	ID          int    `yaml:"id"`
	Description string `yaml:"description"`
	Time        string `yaml:"time,omitempty"`
	Pax         int    `yaml:"pax"`
	Pickup      string `yaml:"pickup,omitempty"`
	SaleRef     string `yaml:"sale_ref,omitempty"`
	Client      string `yaml:"client,omitempty"`
}

func (d TripDef) ToModel() (model.Trip, error) {
	tm, err := model.ParseClock(d.Time)
	if err != nil {
		return model.Trip{}, err
	}
	return model.Trip{
		ID:          d.ID,
		Description: d.Description,
		Time:        tm,
		Pax:         d.Pax,
		Pickup:      d.Pickup,
		SaleRef:     d.SaleRef,
		Client:      d.Client,
	}, nil
}

type Expected struct {
	Groups      int `yaml:"groups"`
	Allocated   int `yaml:"allocated"`
	Unallocated int `yaml:"unallocated"`
}

type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Trips       []TripDef `yaml:"trips"`
	Expected    Expected  `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
