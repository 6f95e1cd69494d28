// Package sampler generates the synthetic death records the whole
// dashboard is built from. Generation runs once per dataset; records
// are immutable afterwards.
package sampler

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/hadefuwa/osrs-wilderness/internal/domain/model"
)

const (
	// hotspotProbability is the chance a record is attributed to a
	// hotspot instead of a uniform position on the plane.
	hotspotProbability = 0.8

	minLevel      = 1
	maxLevel      = 126
	maxWealthLost = 100_000_000
)

// Records are timestamped uniformly within calendar year 2024.
var (
	yearStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd   = time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// Sampler generates death records over a fixed hotspot table from a
// dedicated random source, so a given seed always yields the same
// sequence.
type Sampler struct {
	rng      *rand.Rand
	seed     int64
	hotspots []model.HotspotRegion
}

// New returns a Sampler over the given hotspot table. Seed 0 falls
// back to the wall clock, matching the unseeded behavior of the
// original dashboard; pass a fixed seed for reproducible output.
func New(seed int64, hotspots []model.HotspotRegion) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		hotspots: hotspots,
	}
}

// Seed returns the effective seed, resolved if 0 was passed to New.
func (s *Sampler) Seed() int64 {
	return s.seed
}

// Hotspots returns the hotspot table the sampler draws from.
func (s *Sampler) Hotspots() []model.HotspotRegion {
	return s.hotspots
}

// Generate produces exactly count records in generation order. It
// never fails; count 0 yields an empty slice.
func (s *Sampler) Generate(count int) []model.DeathRecord {
	records := make([]model.DeathRecord, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, s.next())
	}
	return records
}

func (s *Sampler) next() model.DeathRecord {
	x, y, label := s.samplePosition()
	id := s.sampleID()
	ts := s.sampleTimestamp()

	// The attribute fields below are drawn independently from each
	// other and from the position. In particular HourOfDay and
	// DayOfWeek are not derived from ts; the original dashboard drew
	// them separately and the charts' statistical shape depends on it.
	return model.DeathRecord{
		ID:          id,
		X:           x,
		Y:           y,
		Timestamp:   ts,
		PlayerLevel: minLevel + s.rng.Intn(maxLevel),
		CombatLevel: minLevel + s.rng.Intn(maxLevel),
		WealthLost:  s.rng.Int63n(maxWealthLost),
		HourOfDay:   s.rng.Intn(24),
		DayOfWeek:   s.rng.Intn(7),
		Hotspot:     label,
	}
}

// samplePosition picks either a point inside a uniformly chosen
// hotspot disc or a uniform point on the plane, and clamps the result
// to the plane. Hotspots near the edge can spill past the bounds,
// which is what the clamp is for.
func (s *Sampler) samplePosition() (float64, float64, string) {
	if len(s.hotspots) > 0 && s.rng.Float64() < hotspotProbability {
		h := s.hotspots[s.rng.Intn(len(s.hotspots))]
		// sqrt keeps the distribution uniform over the disc area
		// instead of clustering toward the center.
		r := h.Radius * math.Sqrt(s.rng.Float64())
		theta := s.rng.Float64() * 2 * math.Pi
		x := clamp(h.X + r*math.Cos(theta))
		y := clamp(h.Y + r*math.Sin(theta))
		return x, y, h.Name
	}
	x := clamp(s.rng.Float64() * model.PlaneSize)
	y := clamp(s.rng.Float64() * model.PlaneSize)
	return x, y, model.UnassignedLabel
}

func (s *Sampler) sampleTimestamp() time.Time {
	span := yearEnd.Unix() - yearStart.Unix()
	return time.Unix(yearStart.Unix()+s.rng.Int63n(span+1), 0).UTC()
}

// sampleID derives the record ID from the seeded source so that
// generated datasets are byte-for-byte reproducible per seed.
func (s *Sampler) sampleID() string {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > model.PlaneSize {
		return model.PlaneSize
	}
	return v
}
