package model

import (
	"fmt"

	"github.com/google/uuid"
)

// CargoSpec represents a declared cargo item type with a quantity.
// Dimensions are integer centimetres; Length and Width are interchangeable
// under vertical-axis rotation, Height is fixed (items are never tipped).
type CargoSpec struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Length      int     `json:"length"` // cm, along the container length axis when not rotated
	Width       int     `json:"width"`  // cm, lateral
	Height      int     `json:"height"` // cm, vertical
	Weight      float64 `json:"weight"` // kg per unit
	Quantity    int     `json:"quantity"`
	Unstackable bool    `json:"unstackable"` // nothing may rest on top of this item
	Tag         string  `json:"tag,omitempty"`
}

func NewCargoSpec(name string, l, w, h int, weight float64, qty int) CargoSpec {
	return CargoSpec{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   l,
		Width:    w,
		Height:   h,
		Weight:   weight,
		Quantity: qty,
	}
}

// Validate reports caller errors. Non-positive dimensions or quantities are
// bugs in the calling code, not operational conditions.
func (c CargoSpec) Validate() error {
	if c.Length <= 0 || c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("cargo %q: dimensions must be positive, got %dx%dx%d", c.Name, c.Length, c.Width, c.Height)
	}
	if c.Quantity < 1 {
		return fmt.Errorf("cargo %q: quantity must be at least 1, got %d", c.Name, c.Quantity)
	}
	if c.Weight < 0 {
		return fmt.Errorf("cargo %q: weight must not be negative, got %g", c.Name, c.Weight)
	}
	return nil
}

// UnitVolume returns the volume of one unit in cubic metres.
func (c CargoSpec) UnitVolume() float64 {
	return float64(c.Length) * float64(c.Width) * float64(c.Height) / 1e6
}

// Box is a single unit occurrence expanded from a CargoSpec. Boxes are
// immutable once created and consumed when placed.
type Box struct {
	ID          string  `json:"id"`
	SpecID      string  `json:"spec_id"`
	Name        string  `json:"name"`
	Length      int     `json:"length"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Weight      float64 `json:"weight"`
	Unstackable bool    `json:"unstackable"`
}

// Volume returns the box volume in cubic metres.
func (b Box) Volume() float64 {
	return float64(b.Length) * float64(b.Width) * float64(b.Height) / 1e6
}

// BaseArea returns the unrotated footprint area in square centimetres.
func (b Box) BaseArea() int {
	return b.Length * b.Width
}

// ExpandBoxes flattens cargo specs into their unit boxes. Box IDs are
// derived from the spec ID and copy index so that repeated runs over the
// same input produce identical results.
func ExpandBoxes(specs []CargoSpec) []Box {
	var boxes []Box
	for _, s := range specs {
		for i := 0; i < s.Quantity; i++ {
			boxes = append(boxes, Box{
				ID:          fmt.Sprintf("%s-%d", s.ID, i+1),
				SpecID:      s.ID,
				Name:        s.Name,
				Length:      s.Length,
				Width:       s.Width,
				Height:      s.Height,
				Weight:      s.Weight,
				Unstackable: s.Unstackable,
			})
		}
	}
	return boxes
}

// ContainerSpec describes one intermodal container type by its practical
// safe-loading interior, door opening, and payload limit.
type ContainerSpec struct {
	Type       string  `json:"type"`
	Length     int     `json:"length"` // cm interior; the door is at x = Length
	Width      int     `json:"width"`  // cm interior, lateral
	Height     int     `json:"height"` // cm interior, vertical
	DoorWidth  int     `json:"door_width"`
	DoorHeight int     `json:"door_height"`
	MaxWeight  float64 `json:"max_weight"` // kg payload cap
}

// InteriorVolume returns the interior volume in cubic metres.
func (c ContainerSpec) InteriorVolume() float64 {
	return float64(c.Length) * float64(c.Width) * float64(c.Height) / 1e6
}

// Containers is the built-in container catalogue. Dimensions are practical
// safe-loading values, intentionally conservative versus nominal ISO specs.
var Containers = []ContainerSpec{
	{Type: "20GP", Length: 580, Width: 235, Height: 239, DoorWidth: 234, DoorHeight: 228, MaxWeight: 28000},
	{Type: "40GP", Length: 1185, Width: 235, Height: 239, DoorWidth: 234, DoorHeight: 228, MaxWeight: 28000},
	{Type: "40HQ", Length: 1185, Width: 235, Height: 269, DoorWidth: 234, DoorHeight: 258, MaxWeight: 28500},
}

// GetContainer returns the catalogue entry for the given type name.
func GetContainer(containerType string) (ContainerSpec, bool) {
	for _, c := range Containers {
		if c.Type == containerType {
			return c, true
		}
	}
	return ContainerSpec{}, false
}

// ContainerTypes returns the catalogue type names in catalogue order.
func ContainerTypes() []string {
	names := make([]string, len(Containers))
	for i, c := range Containers {
		names[i] = c.Type
	}
	return names
}

// PackSettings holds the engine tuning constants. The defaults are the
// published constants contract; callers may tighten individual thresholds.
type PackSettings struct {
	OperationBuffer       int     `json:"operation_buffer"`        // cm kept clear of walls and ceiling
	ForkliftLiftMargin    int     `json:"forklift_lift_margin"`    // cm overhead clearance for the lift
	ForkliftWidth         int     `json:"forklift_width"`          // cm chassis width
	ForkliftMastHeight    int     `json:"forklift_mast_height"`    // cm vertical extent of the mast
	ForkliftChassisHeight int     `json:"forklift_chassis_height"` // cm; items starting above this do not obstruct
	SideShift             int     `json:"side_shift"`              // cm lateral mast displacement either way
	WallBuffer            int     `json:"wall_buffer"`             // cm chassis clearance from the walls
	SupportThreshold      float64 `json:"support_threshold"`       // hard minimum supported base fraction
	OverhangThreshold     float64 `json:"overhang_threshold"`      // scoring: penalise support below this fraction
	SingleSupportMin      float64 `json:"single_support_min"`      // scoring: penalise when no single supporter is this large
	ZoneSize              int     `json:"zone_size"`               // cm lateral zone width for terraced stacking
	GridSize              int     `json:"grid_size"`               // cm spatial index bucket width
	AdhesionBonus         float64 `json:"adhesion_bonus"`          // score reward for same-spec adjacency
	FlushBonus            float64 `json:"flush_bonus"`             // score reward for level layer tops
	YieldInterval         int     `json:"yield_interval"`          // commits between cooperative yields
}

func DefaultSettings() PackSettings {
	return PackSettings{
		OperationBuffer:       2,
		ForkliftLiftMargin:    15,
		ForkliftWidth:         110,
		ForkliftMastHeight:    160,
		ForkliftChassisHeight: 140,
		SideShift:             60,
		WallBuffer:            2,
		SupportThreshold:      0.70,
		OverhangThreshold:     0.85,
		SingleSupportMin:      0.90,
		ZoneSize:              150,
		GridSize:              50,
		AdhesionBonus:         50,
		FlushBonus:            200,
		YieldInterval:         5,
	}
}

// Placement is the committed location of one box inside a container.
// Coordinates are the minimum corner: x grows toward the door, y is
// vertical, z is lateral. Placements are immutable once committed.
type Placement struct {
	BoxID       string  `json:"box_id"`
	SpecID      string  `json:"spec_id"`
	Name        string  `json:"name"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Z           int     `json:"z"`
	Length      int     `json:"length"` // oriented x extent
	Width       int     `json:"width"`  // oriented z extent
	Height      int     `json:"height"`
	Rotated     bool    `json:"rotated"` // length/width swapped relative to the spec
	Sequence    int     `json:"sequence"`
	Container   int     `json:"container"`
	Weight      float64 `json:"weight"`
	Unstackable bool    `json:"unstackable"`
}

// Top returns the y coordinate of the placement's upper face.
func (p Placement) Top() int {
	return p.Y + p.Height
}

// Volume returns the placement volume in cubic metres.
func (p Placement) Volume() float64 {
	return float64(p.Length) * float64(p.Width) * float64(p.Height) / 1e6
}

// FootprintArea returns the (x, z) projection area in square centimetres.
func (p Placement) FootprintArea() int {
	return p.Length * p.Width
}

// PackResult is the outcome of loading one container.
type PackResult struct {
	Container         ContainerSpec `json:"container"`
	Placements        []Placement   `json:"placements"`
	Unplaced          []Box         `json:"unplaced,omitempty"`
	UsedVolume        float64       `json:"used_volume"`        // m³
	VolumeUtilization float64       `json:"volume_utilization"` // percent of interior volume
	TotalWeight       float64       `json:"total_weight"`       // kg
	WeightUtilization float64       `json:"weight_utilization"` // percent of payload cap
}

// ComputeStats fills the utilisation figures from the committed placements.
func (pr *PackResult) ComputeStats() {
	pr.UsedVolume = 0
	pr.TotalWeight = 0
	for _, p := range pr.Placements {
		pr.UsedVolume += p.Volume()
		pr.TotalWeight += p.Weight
	}
	if iv := pr.Container.InteriorVolume(); iv > 0 {
		pr.VolumeUtilization = pr.UsedVolume / iv * 100.0
	}
	if pr.Container.MaxWeight > 0 {
		pr.WeightUtilization = pr.TotalWeight / pr.Container.MaxWeight * 100.0
	}
}

// Shipment is the ordered list of container results of one planning run.
// The placements of all results plus the residual of the last result equal
// the input cargo as multisets of boxes.
type Shipment struct {
	Results []PackResult `json:"results"`
}

// PlacedCount returns the total number of committed placements.
func (s Shipment) PlacedCount() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Placements)
	}
	return n
}

// Residual returns the boxes that were not placed in any container.
func (s Shipment) Residual() []Box {
	if len(s.Results) == 0 {
		return nil
	}
	return s.Results[len(s.Results)-1].Unplaced
}

// TotalWeight returns the loaded weight across all containers in kg.
func (s Shipment) TotalWeight() float64 {
	var w float64
	for _, r := range s.Results {
		w += r.TotalWeight
	}
	return w
}

// TotalVolumeUtilization returns overall volume usage across all containers
// as a percentage.
func (s Shipment) TotalVolumeUtilization() float64 {
	var used, interior float64
	for _, r := range s.Results {
		used += r.UsedVolume
		interior += r.Container.InteriorVolume()
	}
	if interior == 0 {
		return 0
	}
	return used / interior * 100.0
}

// Mode selects the container-selection strategy of the shipment planner.
type Mode string

const (
	ModeSmartMix Mode = "SMART_MIX" // choose the container type per iteration by simulation
	ModeUniform  Mode = "UNIFORM"   // repeat a single container type
	ModePlan     Mode = "PLAN"      // explicit container sequence
)

// Strategy is the tagged strategy selector passed to the planner.
type Strategy struct {
	Mode          Mode     `json:"mode"`
	ContainerType string   `json:"container_type,omitempty"` // UNIFORM
	Plan          []string `json:"plan,omitempty"`           // PLAN
}

func SmartMix() Strategy {
	return Strategy{Mode: ModeSmartMix}
}

func Uniform(containerType string) Strategy {
	return Strategy{Mode: ModeUniform, ContainerType: containerType}
}

func FixedPlan(containerTypes ...string) Strategy {
	return Strategy{Mode: ModePlan, Plan: containerTypes}
}
