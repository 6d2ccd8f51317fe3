package statistics

import (
	"fmt"
	"math"
)

// TrialResult is the outcome of one simulated round as seen by the
// aggregator.
type TrialResult struct {
	Payoff  float64 // Signed payoff per unit bet, already scaled for doubles
	Natural bool    // Round was settled by a blackjack before any decision
}

// Statistics accumulates trial payoffs for one decision cell.
type Statistics struct {
	Trials   int
	Sum      float64
	SumSq    float64 // Sum of squares for variance calculation
	Wins     int
	Losses   int
	Pushes   int
	Naturals int // Trials settled by a blackjack (included or not, see Skipped)
	Skipped  int // Natural trials left out of the mean
}

// Mean returns the arithmetic mean payoff per trial
func (s *Statistics) Mean() float64 {
	if s.Trials == 0 {
		return 0
	}
	return s.Sum / float64(s.Trials)
}

// Variance returns the sample variance of the payoffs
func (s *Statistics) Variance() float64 {
	if s.Trials < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumSq - float64(s.Trials)*mean*mean) / float64(s.Trials-1)
	if v < 0 {
		// rounding on near-constant samples
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Trials == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Trials))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add records a trial. Natural trials are counted but only enter the mean
// when includeNaturals is set.
func (s *Statistics) Add(result TrialResult, includeNaturals bool) {
	if result.Natural {
		s.Naturals++
		if !includeNaturals {
			s.Skipped++
			return
		}
	}

	p := result.Payoff
	s.Trials++
	s.Sum += p
	s.SumSq += p * p

	switch {
	case p > 0:
		s.Wins++
	case p < 0:
		s.Losses++
	default:
		s.Pushes++
	}
}

// Merge folds other into s. Used to join per-task results.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Trials += other.Trials
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Naturals += other.Naturals
	s.Skipped += other.Skipped
}

// Validate checks the counters are consistent with each other
func (s *Statistics) Validate() error {
	if s.Trials < 0 {
		return fmt.Errorf("invalid trial count: %d", s.Trials)
	}
	if s.Wins+s.Losses+s.Pushes != s.Trials {
		return fmt.Errorf("outcome counts (%d wins, %d losses, %d pushes) do not add up to %d trials",
			s.Wins, s.Losses, s.Pushes, s.Trials)
	}
	if s.Skipped > s.Naturals {
		return fmt.Errorf("skipped naturals (%d) exceed naturals seen (%d)", s.Skipped, s.Naturals)
	}
	if s.SumSq < 0 {
		return fmt.Errorf("negative sum of squares: %f", s.SumSq)
	}
	return nil
}
