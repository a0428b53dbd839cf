package packing

import "shipping-rates/pkg/units"

// dhlExpressBoxes are the standard DHL Express box definitions, dimensions
// in cm and weights in kg.
var dhlExpressBoxes = []Box{
	{ID: "dhl_express_box_1", Name: "DHL Express Box 1", Length: 33.7, Width: 32.2, Height: 5.2, BoxWeight: 0.3, MaxWeight: 25, Enabled: true},
	{ID: "dhl_express_box_2", Name: "DHL Express Box 2", Length: 33.7, Width: 32.2, Height: 10, BoxWeight: 0.4, MaxWeight: 25, Enabled: true},
	{ID: "dhl_express_box_3", Name: "DHL Express Box 3", Length: 45.8, Width: 41.7, Height: 19.1, BoxWeight: 0.9, MaxWeight: 30, Enabled: true},
	{ID: "dhl_express_box_4", Name: "DHL Express Box 4", Length: 40.4, Width: 32.4, Height: 28.0, BoxWeight: 1.2, MaxWeight: 30, Enabled: true},
	{ID: "dhl_express_box_5", Name: "DHL Express Box 5", Length: 47.2, Width: 32.4, Height: 33.0, BoxWeight: 1.5, MaxWeight: 30, Enabled: true},
	{ID: "dhl_express_tube", Name: "DHL Express Tube", Length: 96.0, Width: 19.0, Height: 12.0, BoxWeight: 0.5, MaxWeight: 20, Enabled: true},
}

// DefaultBoxes returns the standard carrier boxes converted into the
// configured units. Stores without custom boxes can ship with these.
func DefaultBoxes(dimensionUnit, weightUnit string) []Box {
	boxes := make([]Box, 0, len(dhlExpressBoxes))
	for _, box := range dhlExpressBoxes {
		box.Length = units.ConvertDimension(box.Length, units.Centimeter, dimensionUnit)
		box.Width = units.ConvertDimension(box.Width, units.Centimeter, dimensionUnit)
		box.Height = units.ConvertDimension(box.Height, units.Centimeter, dimensionUnit)
		box.BoxWeight = units.ConvertWeight(box.BoxWeight, units.Kilogram, weightUnit)
		box.MaxWeight = units.ConvertWeight(box.MaxWeight, units.Kilogram, weightUnit)
		boxes = append(boxes, box)
	}
	return boxes
}
