package convert

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Temperature unit names.
const (
	Celsius    = "Celsius (°C)"
	Fahrenheit = "Fahrenheit (°F)"
	Kelvin     = "Kelvin (K)"
)

// CategoryTemperature is the one non-linear category.
const CategoryTemperature = "Temperature"

// ErrUnknownUnit is returned for a category or unit that is not defined.
var ErrUnknownUnit = errors.New("unknown unit")

// ErrNotANumber is returned when a value cannot be parsed.
var ErrNotANumber = errors.New("not a valid number")

// Unit is a named unit and its factor to the category's base unit.
// Temperature units carry no factor.
type Unit struct {
	Name   string
	Factor float64
}

// Category groups units that convert into each other.
type Category struct {
	Name  string
	Units []Unit
}

// Categories in display order.
var Categories = []Category{
	{
		Name: "Length",
		Units: []Unit{
			{"Meter (m)", 1.0},
			{"Kilometer (km)", 1000.0},
			{"Centimeter (cm)", 0.01},
			{"Millimeter (mm)", 0.001},
			{"Mile (mi)", 1609.34},
			{"Yard (yd)", 0.9144},
			{"Foot (ft)", 0.3048},
			{"Inch (in)", 0.0254},
		},
	},
	{
		Name: "Liquid Volume",
		Units: []Unit{
			{"Liter (L)", 1.0},
			{"Milliliter (mL)", 0.001},
			{"Cubic Meter (m³)", 1000.0},
			{"US Gallon (gal)", 3.78541},
			{"Imperial Gallon (gal)", 4.54609},
			{"US Quart (qt)", 0.946353},
			{"US Pint (pt)", 0.473176},
		},
	},
	{
		Name: "Weight",
		Units: []Unit{
			{"Kilogram (kg)", 1.0},
			{"Gram (g)", 0.001},
			{"Milligram (mg)", 0.000001},
			{"Metric Ton (t)", 1000.0},
			{"Pound (lb)", 0.453592},
			{"Ounce (oz)", 0.0283495},
		},
	},
	{
		Name: "Speed",
		Units: []Unit{
			{"Meter/second (m/s)", 1.0},
			{"Kilometer/hour (km/h)", 1 / 3.6},
			{"Miles/hour (mph)", 0.44704},
			{"Foot/second (ft/s)", 0.3048},
			{"Knot (kn)", 0.514444},
		},
	},
	{
		Name: CategoryTemperature,
		Units: []Unit{
			{Name: Celsius},
			{Name: Fahrenheit},
			{Name: Kelvin},
		},
	},
}

// CategoryByName returns the named category.
func CategoryByName(name string) (Category, error) {
	for _, c := range Categories {
		if c.Name == name {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: category %q", ErrUnknownUnit, name)
}

// Unit returns the named unit of the category.
func (c Category) Unit(name string) (Unit, error) {
	for _, u := range c.Units {
		if u.Name == name {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("%w: %q in %s", ErrUnknownUnit, name, c.Name)
}

// UnitNames returns the unit names of a category in table order.
func (c Category) UnitNames() []string {
	names := make([]string, len(c.Units))
	for i, u := range c.Units {
		names[i] = u.Name
	}
	return names
}

// ConvertUnit converts value between two units of the named category.
func ConvertUnit(category string, value float64, from, to string) (float64, error) {
	c, err := CategoryByName(category)
	if err != nil {
		return 0, err
	}
	in, err := c.Unit(from)
	if err != nil {
		return 0, err
	}
	out, err := c.Unit(to)
	if err != nil {
		return 0, err
	}

	if c.Name == CategoryTemperature {
		return convertTemperature(value, in.Name, out.Name)
	}
	return value * in.Factor / out.Factor, nil
}

// convertTemperature pivots through Celsius.
func convertTemperature(value float64, from, to string) (float64, error) {
	var celsius float64
	switch from {
	case Celsius:
		celsius = value
	case Fahrenheit:
		celsius = (value - 32) * 5 / 9
	case Kelvin:
		celsius = value - 273.15
	default:
		return 0, fmt.Errorf("%w: input temperature unit %q", ErrUnknownUnit, from)
	}

	switch to {
	case Celsius:
		return celsius, nil
	case Fahrenheit:
		return celsius*9/5 + 32, nil
	case Kelvin:
		return celsius + 273.15, nil
	}
	return 0, fmt.Errorf("%w: output temperature unit %q", ErrUnknownUnit, to)
}

// ParseValue parses a user-entered number.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyInput
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return v, nil
}

// FormatValue renders a converted value with six decimals.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
