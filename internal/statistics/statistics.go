package statistics

import (
	"fmt"
	"math"
	"sort"
)

// MaxSeats is the largest table the statistics track
const MaxSeats = 4

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Seed      int64 // RNG seed for this game (for replay)
	Seats     int   // Number of players at the table
	Winner    int   // Seat index of the winner, 0-based
	Leader    int   // Seat that held the lowest card and opened
	Rounds    int   // Rounds played, including the final one
	Plays     int   // Accepted plays across all rounds
	CardsLeft []int // Cards each seat still held when the game ended
}

// SeatStats tracks statistics for a specific seat
type SeatStats struct {
	Games     int
	Wins      int
	Opened    int // games this seat led the first round
	CardsLeft int // total cards stranded in losing games
}

// Statistics tracks simulation statistics. Round counts feed the
// distribution helpers; everything else is tallied per seat.
type Statistics struct {
	Games      int
	SumRounds  float64
	SumRounds2 float64   // Sum of squares for variance calculation
	Values     []float64 // Round counts for median/percentile calculation
	Plays      int

	OpenerWins  int // games won by the seat that held the lowest card
	SeatResults [MaxSeats]SeatStats
}

// Mean returns the mean number of rounds per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumRounds / float64(s.Games)
}

// Variance returns the sample variance of rounds per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumRounds2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of rounds per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	rounds := float64(result.Rounds)
	s.Games++
	s.SumRounds += rounds
	s.SumRounds2 += rounds * rounds
	s.Values = append(s.Values, rounds)
	s.Plays += result.Plays

	if result.Winner == result.Leader {
		s.OpenerWins++
	}

	for seat := 0; seat < result.Seats && seat < MaxSeats; seat++ {
		ss := &s.SeatResults[seat]
		ss.Games++
		if seat == result.Winner {
			ss.Wins++
		}
		if seat == result.Leader {
			ss.Opened++
		}
		if seat < len(result.CardsLeft) {
			ss.CardsLeft += result.CardsLeft[seat]
		}
	}
}

// Median returns the median number of rounds
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the round count at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the share of games a seat won
func (s *Statistics) WinRate(seat int) float64 {
	if seat < 0 || seat >= MaxSeats {
		return 0
	}
	ss := s.SeatResults[seat]
	if ss.Games == 0 {
		return 0
	}
	return float64(ss.Wins) / float64(ss.Games)
}

// OpenerWinRate returns the share of games won by the opening seat
func (s *Statistics) OpenerWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.OpenerWins) / float64(s.Games)
}

// Validate checks that the tallies agree with each other
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	wins, opened := 0, 0
	for seat := range s.SeatResults {
		wins += s.SeatResults[seat].Wins
		opened += s.SeatResults[seat].Opened
	}
	if wins != s.Games {
		return fmt.Errorf("seat wins total (%d) does not match games count (%d)", wins, s.Games)
	}
	if opened != s.Games {
		return fmt.Errorf("seat openings total (%d) does not match games count (%d)", opened, s.Games)
	}
	if s.OpenerWins > s.Games {
		return fmt.Errorf("opener wins (%d) exceed games count (%d)", s.OpenerWins, s.Games)
	}

	return nil
}
