package packing

import "sort"

// Box is one shippable box definition: internal dimensions, tare weight and
// maximum payload, all in the carrier's configured units.
type Box struct {
	ID        string  `mapstructure:"id"`
	Name      string  `mapstructure:"name"`
	Length    float64 `mapstructure:"length"`
	Width     float64 `mapstructure:"width"`
	Height    float64 `mapstructure:"height"`
	BoxWeight float64 `mapstructure:"box_weight"`
	MaxWeight float64 `mapstructure:"max_weight"`
	Enabled   bool    `mapstructure:"enabled"`
}

// PackItem is one packable unit group handed to the bin packer.
type PackItem struct {
	Length   float64
	Width    float64
	Height   float64
	Weight   float64
	Value    float64
	Quantity int
}

// PackedBox is one filled box coming back from the packer: outer dimensions
// plus the packed contents' weight (including tare) and value.
type PackedBox struct {
	Length float64
	Width  float64
	Height float64
	Weight float64
	Value  float64
}

// BinPacker is the pluggable bin-packing capability. The optimizer's
// internals are out of scope here; FirstFitPacker is a deliberately simple
// default.
type BinPacker interface {
	Pack(items []PackItem, boxes []Box) []PackedBox
}

// FirstFitPacker places each item unit into the first open box with room,
// opening the smallest box that fits otherwise. Items too large or too heavy
// for every box ship as their own parcel.
type FirstFitPacker struct{}

func NewFirstFitPacker() *FirstFitPacker {
	return &FirstFitPacker{}
}

type openBox struct {
	box    Box
	weight float64 // payload, excluding tare
	value  float64
}

func (p *FirstFitPacker) Pack(items []PackItem, boxes []Box) []PackedBox {
	sorted := make([]Box, len(boxes))
	copy(sorted, boxes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Length*sorted[i].Width*sorted[i].Height <
			sorted[j].Length*sorted[j].Width*sorted[j].Height
	})

	var open []*openBox
	var oversize []PackedBox

	for _, item := range items {
		for unit := 0; unit < item.Quantity; unit++ {
			if placed := place(open, item); placed {
				continue
			}
			if box, ok := smallestFit(sorted, item); ok {
				open = append(open, &openBox{box: box, weight: item.Weight, value: item.Value})
				continue
			}
			// No box holds this item; it travels as-is.
			oversize = append(oversize, PackedBox{
				Length: item.Length,
				Width:  item.Width,
				Height: item.Height,
				Weight: item.Weight,
				Value:  item.Value,
			})
		}
	}

	packed := make([]PackedBox, 0, len(open)+len(oversize))
	for _, ob := range open {
		packed = append(packed, PackedBox{
			Length: ob.box.Length,
			Width:  ob.box.Width,
			Height: ob.box.Height,
			Weight: ob.weight + ob.box.BoxWeight,
			Value:  ob.value,
		})
	}
	return append(packed, oversize...)
}

func place(open []*openBox, item PackItem) bool {
	for _, ob := range open {
		if !fitsDimensions(ob.box, item) {
			continue
		}
		if ob.box.MaxWeight > 0 && ob.weight+item.Weight > ob.box.MaxWeight {
			continue
		}
		ob.weight += item.Weight
		ob.value += item.Value
		return true
	}
	return false
}

func smallestFit(sorted []Box, item PackItem) (Box, bool) {
	for _, box := range sorted {
		if !fitsDimensions(box, item) {
			continue
		}
		if box.MaxWeight > 0 && item.Weight > box.MaxWeight {
			continue
		}
		return box, true
	}
	return Box{}, false
}

// fitsDimensions compares sorted dimensions so item orientation does not
// matter. Items without dimensions fit any box.
func fitsDimensions(box Box, item PackItem) bool {
	if item.Length == 0 && item.Width == 0 && item.Height == 0 {
		return true
	}
	b := sortedDesc(box.Length, box.Width, box.Height)
	i := sortedDesc(item.Length, item.Width, item.Height)
	return i[0] <= b[0] && i[1] <= b[1] && i[2] <= b[2]
}

func sortedDesc(a, b, c float64) [3]float64 {
	dims := []float64{a, b, c}
	sort.Sort(sort.Reverse(sort.Float64Slice(dims)))
	return [3]float64{dims[0], dims[1], dims[2]}
}
