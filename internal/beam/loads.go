package beam

import (
	"fmt"
	"strings"
)

// LoadKind identifies a load variant
type LoadKind int

const (
	Point LoadKind = iota
	UDL
	UVL
	Moment
)

func (k LoadKind) String() string {
	switch k {
	case Point:
		return "POINT"
	case UDL:
		return "UDL"
	case UVL:
		return "UVL"
	case Moment:
		return "MOMENT"
	}
	return fmt.Sprintf("LoadKind(%d)", int(k))
}

// ParseLoadKind accepts the names used in input files (case-insensitive)
func ParseLoadKind(s string) (LoadKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "POINT":
		return Point, nil
	case "UDL":
		return UDL, nil
	case "UVL":
		return UVL, nil
	case "MOMENT":
		return Moment, nil
	}
	return 0, fmt.Errorf("%w: unknown load type %q", ErrInvalidLoad, s)
}

// Category is the load source used to pick factors from a load combination
type Category string

const (
	Dead       Category = "D"
	Live       Category = "L"
	RoofLive   Category = "Lr"
	Wind       Category = "W"
	Earthquake Category = "E"
	Rain       Category = "R"
)

// ParseCategory maps an input string to a Category; empty means dead load
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "D", "DEAD":
		return Dead, nil
	case "L", "LIVE":
		return Live, nil
	case "LR", "ROOF":
		return RoofLive, nil
	case "W", "WIND":
		return Wind, nil
	case "E", "EARTHQUAKE":
		return Earthquake, nil
	case "R", "RAIN":
		return Rain, nil
	}
	return "", fmt.Errorf("%w: unknown load category %q", ErrInvalidLoad, s)
}

// Load is implemented by PointLoad, MomentLoad, UniformLoad and VaryingLoad.
//
// Magnitudes are in kN (point), kN·m (moment) and kN/m (distributed).
// Positive forces act downward and positive moments act clockwise.
type Load interface {
	Name() string
	Kind() LoadKind
	// Extent returns the loaded interval; start == end for concentrated loads
	Extent() (start, end float64)
	Category() Category

	scaled(factor float64) Load
}

// PointLoad is a concentrated force
type PointLoad struct {
	ID        string
	Magnitude float64
	Position  float64
	Cat       Category
}

// MomentLoad is a concentrated couple
type MomentLoad struct {
	ID        string
	Magnitude float64
	Position  float64
	Cat       Category
}

// UniformLoad is a constant intensity over [Start, End]
type UniformLoad struct {
	ID         string
	Magnitude  float64
	Start, End float64
	Cat        Category
}

// VaryingLoad varies linearly from StartMagnitude at Start to EndMagnitude at End
type VaryingLoad struct {
	ID             string
	StartMagnitude float64
	EndMagnitude   float64
	Start, End     float64
	Cat            Category
}

// NewPointLoad creates a concentrated force
func NewPointLoad(id string, magnitude, position float64) (PointLoad, error) {
	if !finite(magnitude) || !finite(position) || position < 0 {
		return PointLoad{}, fmt.Errorf("%w: point load %q (P=%g, x=%g)", ErrInvalidLoad, id, magnitude, position)
	}
	return PointLoad{ID: id, Magnitude: magnitude, Position: position, Cat: Dead}, nil
}

// NewMomentLoad creates a concentrated couple
func NewMomentLoad(id string, magnitude, position float64) (MomentLoad, error) {
	if !finite(magnitude) || !finite(position) || position < 0 {
		return MomentLoad{}, fmt.Errorf("%w: moment %q (M=%g, x=%g)", ErrInvalidLoad, id, magnitude, position)
	}
	return MomentLoad{ID: id, Magnitude: magnitude, Position: position, Cat: Dead}, nil
}

// NewUniformLoad creates a UDL over [start, end]
func NewUniformLoad(id string, magnitude, start, end float64) (UniformLoad, error) {
	if err := checkSpan(id, start, end); err != nil {
		return UniformLoad{}, err
	}
	if !finite(magnitude) {
		return UniformLoad{}, fmt.Errorf("%w: UDL %q has intensity %g", ErrInvalidLoad, id, magnitude)
	}
	return UniformLoad{ID: id, Magnitude: magnitude, Start: start, End: end, Cat: Dead}, nil
}

// NewVaryingLoad creates a UVL over [start, end]
func NewVaryingLoad(id string, startMagnitude, endMagnitude, start, end float64) (VaryingLoad, error) {
	if err := checkSpan(id, start, end); err != nil {
		return VaryingLoad{}, err
	}
	if !finite(startMagnitude) || !finite(endMagnitude) {
		return VaryingLoad{}, fmt.Errorf("%w: UVL %q has intensities %g..%g", ErrInvalidLoad, id, startMagnitude, endMagnitude)
	}
	return VaryingLoad{
		ID:             id,
		StartMagnitude: startMagnitude,
		EndMagnitude:   endMagnitude,
		Start:          start,
		End:            end,
		Cat:            Dead,
	}, nil
}

func checkSpan(id string, start, end float64) error {
	if !finite(start) || !finite(end) || start < 0 || end <= start {
		return fmt.Errorf("%w: load %q spans [%g, %g]", ErrInvalidLoad, id, start, end)
	}
	return nil
}

func (l PointLoad) Name() string { return l.ID }
func (l PointLoad) Kind() LoadKind { return Point }
func (l PointLoad) Extent() (float64, float64) { return l.Position, l.Position }
func (l PointLoad) Category() Category { return orDead(l.Cat) }
func (l MomentLoad) Name() string { return l.ID }
func (l MomentLoad) Kind() LoadKind { return Moment }
func (l MomentLoad) Extent() (float64, float64) { return l.Position, l.Position }
func (l MomentLoad) Category() Category { return orDead(l.Cat) }
func (l UniformLoad) Name() string { return l.ID }
func (l UniformLoad) Kind() LoadKind { return UDL }
func (l UniformLoad) Extent() (float64, float64) { return l.Start, l.End }
func (l UniformLoad) Category() Category { return orDead(l.Cat) }
func (l VaryingLoad) Name() string { return l.ID }
func (l VaryingLoad) Kind() LoadKind { return UVL }
func (l VaryingLoad) Extent() (float64, float64) { return l.Start, l.End }
func (l VaryingLoad) Category() Category { return orDead(l.Cat) }

func (l PointLoad) scaled(f float64) Load {
	l.Magnitude *= f
	return l
}

func (l MomentLoad) scaled(f float64) Load {
	l.Magnitude *= f
	return l
}

func (l UniformLoad) scaled(f float64) Load {
	l.Magnitude *= f
	return l
}

func (l VaryingLoad) scaled(f float64) Load {
	l.StartMagnitude *= f
	l.EndMagnitude *= f
	return l
}

// Intensity returns the distributed intensity at x (kN/m), zero outside the loaded span
func (l UniformLoad) Intensity(x float64) float64 {
	if x < l.Start || x > l.End {
		return 0
	}
	return l.Magnitude
}

// Intensity returns the linearly interpolated intensity at x (kN/m), zero outside the loaded span
func (l VaryingLoad) Intensity(x float64) float64 {
	if x < l.Start || x > l.End {
		return 0
	}
	t := (x - l.Start) / (l.End - l.Start)
	return l.StartMagnitude + t*(l.EndMagnitude-l.StartMagnitude)
}

// Resultant returns the total vertical force of a load (kN, downward positive)
func Resultant(l Load) float64 {
	switch v := l.(type) {
	case PointLoad:
		return v.Magnitude
	case UniformLoad:
		return v.Magnitude * (v.End - v.Start)
	case VaryingLoad:
		return (v.StartMagnitude + v.EndMagnitude) / 2 * (v.End - v.Start)
	}
	return 0
}

// Scale returns a copy of the load with every magnitude multiplied by factor
func Scale(l Load, factor float64) Load {
	return l.scaled(factor)
}

// WithCategory returns a copy of the load assigned to the given category
func WithCategory(l Load, c Category) Load {
	switch v := l.(type) {
	case PointLoad:
		v.Cat = c
		return v
	case MomentLoad:
		v.Cat = c
		return v
	case UniformLoad:
		v.Cat = c
		return v
	case VaryingLoad:
		v.Cat = c
		return v
	}
	return l
}

func orDead(c Category) Category {
	if c == "" {
		return Dead
	}
	return c
}
