// Package packing turns cart contents into physical parcel descriptions
// under one of three strategies: one parcel per line item, bin packing into
// configured boxes, or a single weight-only parcel. Virtual goods never
// reach the carrier, and a parcel whose formatted weight rounds to zero is
// dropped rather than quoted.
package packing

import (
	"sort"
	"strconv"

	"shipping-rates/internal/models"
	"shipping-rates/pkg/logger"
	"shipping-rates/pkg/units"
)

// Strategy selects how cart contents become parcels.
type Strategy string

const (
	PerItem     Strategy = "per_item"
	BoxPacking  Strategy = "box_packing"
	WeightBased Strategy = "weight_based"
)

// Settings is the externally supplied packing configuration.
type Settings struct {
	Method Strategy `mapstructure:"method"`

	// Carrier units the parcels are expressed in.
	WeightUnit    string `mapstructure:"weight_unit"`
	DimensionUnit string `mapstructure:"dimension_unit"`

	// Units the store's product data is expressed in.
	StoreWeightUnit    string `mapstructure:"store_weight_unit"`
	StoreDimensionUnit string `mapstructure:"store_dimension_unit"`

	InsuredValue  bool   `mapstructure:"insured_value"`
	StoreCurrency string `mapstructure:"store_currency"`

	Boxes []Box `mapstructure:"boxes"`
}

// Builder applies the configured strategy to a cart.
type Builder struct {
	cfg    Settings
	packer BinPacker
	log    *logger.Logger
}

// NewBuilder creates a package builder. A nil packer falls back to the
// built-in first-fit packer.
func NewBuilder(cfg Settings, packer BinPacker, log *logger.Logger) *Builder {
	if packer == nil {
		packer = NewFirstFitPacker()
	}
	return &Builder{cfg: cfg, packer: packer, log: log.WithComponent("packing")}
}

// Build produces the parcel list for the cart. An empty result means there
// is nothing to ship; the caller reports that instead of quoting an empty
// shipment.
func (b *Builder) Build(cart models.Cart) []models.PackageRequest {
	switch b.cfg.Method {
	case BoxPacking:
		return b.boxShipping(cart)
	case WeightBased:
		return b.weightBasedShipping(cart)
	default:
		return b.perItemShipping(cart)
	}
}

// perItemShipping builds one parcel per shippable line item. Dimensions are
// converted and then assigned largest-first so the carrier always receives
// length >= width >= height.
func (b *Builder) perItemShipping(cart models.Cart) []models.PackageRequest {
	var requests []models.PackageRequest

	for _, item := range cart.Items {
		product := item.Product
		if !product.NeedsShipping() {
			continue
		}

		weight := units.FormatMeasurement(b.convertWeight(product.Weight))
		if weight == 0 {
			b.log.Debug("dropping zero-weight item", "product", product.ID)
			continue
		}

		length, width, height := b.sortedDimensions(product)
		hasDimensions := length > 0 && width > 0 && height > 0

		requests = append(requests, b.newPackageRequest(length, width, height, hasDimensions, weight, product.Price))
	}

	return requests
}

// boxShipping packs the packable items into the enabled boxes via the
// injected bin packer. With no boxes configured it falls back to per-item
// packing so a misconfigured store still quotes something.
func (b *Builder) boxShipping(cart models.Cart) []models.PackageRequest {
	boxes := b.enabledBoxes()
	if len(boxes) == 0 {
		b.log.Warn("box packing selected but no boxes are enabled, falling back to per-item packing")
		return b.perItemShipping(cart)
	}

	items := b.packableItems(cart)
	if len(items) == 0 {
		return nil
	}

	var requests []models.PackageRequest
	for _, packed := range b.packer.Pack(items, boxes) {
		weight := units.FormatMeasurement(packed.Weight)
		if weight == 0 {
			continue
		}

		hasDimensions := packed.Length > 0 && packed.Width > 0 && packed.Height > 0
		requests = append(requests, b.newPackageRequest(packed.Length, packed.Width, packed.Height, hasDimensions, weight, packed.Value))
	}

	return requests
}

// weightBasedShipping sums weight across all shippable items and emits a
// single weight-only parcel, or nothing when the total rounds to zero.
func (b *Builder) weightBasedShipping(cart models.Cart) []models.PackageRequest {
	var total float64
	for _, item := range cart.Items {
		if !item.Product.NeedsShipping() {
			continue
		}
		total += item.Product.Weight * float64(item.Quantity)
	}

	weight := units.FormatMeasurement(b.convertWeight(total))
	if weight == 0 {
		return nil
	}

	return []models.PackageRequest{{
		Weight: models.PackageWeight{
			Value:             formatNumber(weight),
			UnitOfMeasurement: b.cfg.WeightUnit,
		},
	}}
}

// packableItems converts the shippable cart lines into packer input,
// skipping items with neither a usable weight nor a full dimension set.
func (b *Builder) packableItems(cart models.Cart) []PackItem {
	var items []PackItem
	for _, item := range cart.Items {
		product := item.Product
		if !product.NeedsShipping() {
			continue
		}

		length, width, height := b.sortedDimensions(product)
		weight := units.FormatMeasurement(b.convertWeight(product.Weight))
		hasDimensions := length > 0 && width > 0 && height > 0

		if weight == 0 && !hasDimensions {
			continue
		}

		items = append(items, PackItem{
			Length:   length,
			Width:    width,
			Height:   height,
			Weight:   weight,
			Value:    product.Price,
			Quantity: item.Quantity,
		})
	}
	return items
}

// enabledBoxes returns the configured boxes that are enabled, with their
// measurements formatted.
func (b *Builder) enabledBoxes() []Box {
	var boxes []Box
	for _, box := range b.cfg.Boxes {
		if !box.Enabled {
			continue
		}
		box.Length = units.FormatMeasurement(box.Length)
		box.Width = units.FormatMeasurement(box.Width)
		box.Height = units.FormatMeasurement(box.Height)
		box.BoxWeight = units.FormatMeasurement(box.BoxWeight)
		box.MaxWeight = units.FormatMeasurement(box.MaxWeight)
		boxes = append(boxes, box)
	}
	return boxes
}

// sortedDimensions converts a product's dimensions to the carrier unit and
// returns them largest-first.
func (b *Builder) sortedDimensions(product models.Product) (length, width, height float64) {
	dims := []float64{
		units.FormatMeasurement(b.convertDimension(product.Length)),
		units.FormatMeasurement(b.convertDimension(product.Width)),
		units.FormatMeasurement(b.convertDimension(product.Height)),
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(dims)))
	return dims[0], dims[1], dims[2]
}

func (b *Builder) newPackageRequest(length, width, height float64, hasDimensions bool, weight, value float64) models.PackageRequest {
	request := models.PackageRequest{
		Weight: models.PackageWeight{
			Value:             formatNumber(weight),
			UnitOfMeasurement: b.cfg.WeightUnit,
		},
	}

	if hasDimensions {
		request.Dimensions = &models.PackageDimensions{
			Length:            formatNumber(units.RoundDimension(length)),
			Width:             formatNumber(units.RoundDimension(width)),
			Height:            formatNumber(units.RoundDimension(height)),
			UnitOfMeasurement: b.cfg.DimensionUnit,
		}
	}

	if b.cfg.InsuredValue && value > 0 {
		request.DeclaredValue = &models.DeclaredValue{
			Value:        formatNumber(units.FormatMeasurement(value)),
			CurrencyCode: b.cfg.StoreCurrency,
		}
	}

	return request
}

func (b *Builder) convertWeight(value float64) float64 {
	return units.ConvertWeight(value, b.cfg.StoreWeightUnit, b.cfg.WeightUnit)
}

func (b *Builder) convertDimension(value float64) float64 {
	return units.ConvertDimension(value, b.cfg.StoreDimensionUnit, b.cfg.DimensionUnit)
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
