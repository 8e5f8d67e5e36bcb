package main

import (
	"io"

	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/commands"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Categories []categoryEntry `yaml:"categories"`
	Vehicles   []vehicleEntry  `yaml:"vehicles"`
}

type categoryEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	IconClass   string `yaml:"icon_class"`
}

type vehicleEntry struct {
	Name         string `yaml:"name"`
	Category     string `yaml:"category"`
	Type         string `yaml:"vehicle_type"`
	Brand        string `yaml:"brand"`
	Model        string `yaml:"model"`
	Year         int    `yaml:"year"`
	FuelType     string `yaml:"fuel_type"`
	Transmission string `yaml:"transmission"`
	Seats        int    `yaml:"seats"`
	PricePerDay  string `yaml:"price_per_day"`
	PricePerHour string `yaml:"price_per_hour"`
	Description  string `yaml:"description"`
	FeatureList  string `yaml:"features"`
	Mileage      string `yaml:"mileage"`
	Color        string `yaml:"color"`
	Available    *bool  `yaml:"is_available"`
}

// loadCatalog decodes a YAML catalog. Vehicles are available unless the
// entry says otherwise. Features and availability are mapped by hand since
// their YAML shape differs from the command input.
func loadCatalog(r io.Reader) (commands.SeedCatalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return commands.SeedCatalog{}, errs.Wrap(err, "decode catalog")
	}

	catalog := commands.SeedCatalog{
		Categories: make([]commands.CategoryInput, 0, len(file.Categories)),
		Vehicles:   make([]commands.SeedVehicle, 0, len(file.Vehicles)),
	}
	for _, c := range file.Categories {
		var in commands.CategoryInput
		if err := copier.Copy(&in, &c); err != nil {
			return commands.SeedCatalog{}, errs.Wrapf(err, "category %q", c.Name)
		}
		catalog.Categories = append(catalog.Categories, in)
	}
	for _, v := range file.Vehicles {
		var in commands.VehicleInput
		if err := copier.CopyWithOption(&in, &v, copier.Option{IgnoreEmpty: true}); err != nil {
			return commands.SeedCatalog{}, errs.Wrapf(err, "vehicle %q", v.Name)
		}
		in.Features = vehicle.ParseFeatures(v.FeatureList)
		in.IsAvailable = v.Available == nil || *v.Available
		catalog.Vehicles = append(catalog.Vehicles, commands.SeedVehicle{Category: v.Category, VehicleInput: in})
	}
	return catalog, nil
}
