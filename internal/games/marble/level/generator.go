package level

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeebo/xxh3"

	"github.com/vovakirdan/marble-run/internal/games/marble/obstacle"
)

// DefaultSpacing is the distance between block centres.
const DefaultSpacing = 4.0

// Boundary wall geometry.
const (
	wallOffsetX   = 2.15
	wallThickness = 0.3
	wallHeight    = 1.7
	wallCenterY   = 0.65
	wallWidth     = 4.0
	farWallInset  = 2.15
)

// Speed range of spinner blocks before the random sign is applied.
const (
	minSpinnerSpeed = 0.5
	maxSpinnerSpeed = 1.5
)

var (
	// ErrNoObstacleTypes is returned when the type set is empty.
	ErrNoObstacleTypes = errors.New("level: no obstacle types")
	// ErrNegativeBlockCount is returned for a block count below zero.
	ErrNegativeBlockCount = errors.New("level: negative block count")
	// ErrUnknownObstacleType is returned when the type set holds a type that
	// cannot fill a course slot.
	ErrUnknownObstacleType = errors.New("level: unknown obstacle type")
)

// Generator produces layouts. The type sequence depends only on the seed;
// phases and spinner speeds come from PhaseSource, which is time-seeded
// unless the caller fixes it for replays.
type Generator struct {
	Spacing     float64
	PhaseSource rand.Source
}

// NewGenerator returns a generator with default spacing and a time-seeded
// phase source.
func NewGenerator() *Generator {
	return &Generator{
		Spacing:     DefaultSpacing,
		PhaseSource: rand.NewSource(time.Now().UnixNano()),
	}
}

// NewReplayGenerator returns a generator whose phases are fixed by
// phaseSeed, so the whole layout is reproducible.
func NewReplayGenerator(phaseSeed int64) *Generator {
	return &Generator{
		Spacing:     DefaultSpacing,
		PhaseSource: rand.NewSource(phaseSeed),
	}
}

// Generate builds a layout with a default generator.
func Generate(blockCount int, seed float64, types []obstacle.Type) (Layout, error) {
	return NewGenerator().Generate(blockCount, seed, types)
}

// SeedSource derives the integer source seed of the type stream from a
// float layout seed.
func SeedSource(seed float64) int64 {
	var buf [8]byte
	bits := math.Float64bits(seed)
	for i := range buf {
		buf[i] = byte(bits >> (8 * i))
	}
	return int64(xxh3.Hash(buf[:]))
}

// Generate builds a layout of blockCount obstacles drawn from types.
func (g *Generator) Generate(blockCount int, seed float64, types []obstacle.Type) (Layout, error) {
	if blockCount < 0 {
		return Layout{}, fmt.Errorf("%w: %d", ErrNegativeBlockCount, blockCount)
	}
	if len(types) == 0 {
		return Layout{}, ErrNoObstacleTypes
	}
	for _, t := range types {
		if !t.Placeable() {
			return Layout{}, fmt.Errorf("%w: %s", ErrUnknownObstacleType, t)
		}
	}

	spacing := g.Spacing
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	phases := g.PhaseSource
	if phases == nil {
		phases = rand.NewSource(time.Now().UnixNano())
	}
	phaseRng := rand.New(phases)
	typeRng := rand.New(rand.NewSource(SeedSource(seed)))

	layout := Layout{
		Seed:       seed,
		BlockCount: blockCount,
		Spacing:    spacing,
		Start: ObstacleSpec{
			Type:  obstacle.Start,
			Index: -1,
		},
		Obstacles: make([]ObstacleSpec, 0, blockCount),
	}

	for i := 0; i < blockCount; i++ {
		t := types[int(math.Floor(typeRng.Float64()*float64(len(types))))]
		spec := ObstacleSpec{
			Type:        t,
			Index:       i,
			Position:    mgl64.Vec3{0, 0, -float64(i+1) * spacing},
			RandomPhase: phaseRng.Float64() * 2 * math.Pi,
		}
		if t == obstacle.Spinner {
			spec.Speed = spinnerSpeed(phaseRng)
		}
		layout.Obstacles = append(layout.Obstacles, spec)
	}

	layout.End = ObstacleSpec{
		Type:     obstacle.Goal,
		Index:    blockCount,
		Position: mgl64.Vec3{0, 0, -float64(blockCount+1) * spacing},
	}
	layout.Walls = boundaries(blockCount+2, spacing)

	return layout, nil
}

func spinnerSpeed(r *rand.Rand) float64 {
	speed := minSpinnerSpeed + r.Float64()*(maxSpinnerSpeed-minSpinnerSpeed)
	if r.Float64() < 0.5 {
		speed = -speed
	}
	return speed
}

// boundaries encloses a course of length blocks: two side walls along the
// whole course and a far wall behind the goal.
func boundaries(length int, spacing float64) []Wall {
	depth := float64(length) * spacing
	centerZ := -depth/2 + spacing/2

	return []Wall{
		{
			Center: mgl64.Vec3{wallOffsetX, wallCenterY, centerZ},
			Size:   mgl64.Vec3{wallThickness, wallHeight, depth},
		},
		{
			Center: mgl64.Vec3{-wallOffsetX, wallCenterY, centerZ},
			Size:   mgl64.Vec3{wallThickness, wallHeight, depth},
		},
		{
			Center: mgl64.Vec3{0, wallCenterY, -depth + farWallInset},
			Size:   mgl64.Vec3{wallWidth, wallHeight, wallThickness},
		},
	}
}

// ParseTypes resolves a list of block names into slot types.
func ParseTypes(names []string) ([]obstacle.Type, error) {
	types := make([]obstacle.Type, 0, len(names))
	for _, name := range names {
		t, err := obstacle.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownObstacleType, name)
		}
		if !t.Placeable() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownObstacleType, name)
		}
		types = append(types, t)
	}
	return types, nil
}
