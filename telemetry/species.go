package telemetry

import "log/slog"

// AnimalRecord is a value snapshot of an individual, kept for "longest
// lived" tracking after the animal itself is gone.
type AnimalRecord struct {
	ID         uint32
	Age        uint32
	Generation uint32
	Energy     float32
	Valid      bool
}

// longerLived reports whether r should replace best.
func (r AnimalRecord) longerLived(best AnimalRecord) bool {
	return !best.Valid || r.Age > best.Age
}

// SpeciesStats holds running counters for one species. Everything except
// Population only ever grows.
type SpeciesStats struct {
	Population    int
	Reproductions int
	Deaths        int
	MaxGeneration uint32

	// Longest-lived individual alive at the last finalize
	Oldest AnimalRecord
	// Longest-lived individual that has died so far
	OldestDeceased AnimalRecord
}

// RecordBirth counts a reproduction and tracks the child's generation.
func (s *SpeciesStats) RecordBirth(generation uint32) {
	s.Population++
	s.Reproductions++
	s.MaxGeneration = max(s.MaxGeneration, generation)
}

// RecordSeed counts a founder placed at seeding time.
func (s *SpeciesStats) RecordSeed(generation uint32) {
	s.Population++
	s.MaxGeneration = max(s.MaxGeneration, generation)
}

// RecordDeath counts a death and updates the longest-lived deceased record.
func (s *SpeciesStats) RecordDeath(r AnimalRecord) {
	s.Population--
	s.Deaths++
	r.Valid = true
	if r.longerLived(s.OldestDeceased) {
		s.OldestDeceased = r
	}
}

// ResetOldest clears the live record before a finalize scan.
func (s *SpeciesStats) ResetOldest() {
	s.Oldest = AnimalRecord{}
}

// ObserveLive updates the longest-lived live record.
func (s *SpeciesStats) ObserveLive(r AnimalRecord) {
	r.Valid = true
	if r.longerLived(s.Oldest) {
		s.Oldest = r
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s SpeciesStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("population", s.Population),
		slog.Int("reproductions", s.Reproductions),
		slog.Int("deaths", s.Deaths),
		slog.Int("max_generation", int(s.MaxGeneration)),
		slog.Int("oldest_age", int(s.Oldest.Age)),
		slog.Int("oldest_deceased_age", int(s.OldestDeceased.Age)),
	)
}
