package generator

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/trade-analyzer/internal/types"
	"github.com/rxtech-lab/trade-analyzer/pkg/errors"
	"github.com/shopspring/decimal"
)

// firstTicket is the ticket number of the first generated deal.
const firstTicket = 1_000_000

// Generator generates synthetic closed deals for trying the analyzer
// without a terminal export.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a new Generator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Config configures how deals are generated.
type Config struct {
	// Symbol is the traded symbol (e.g., "USDJPY")
	Symbol string `validate:"required"`
	// Count is the number of deals to generate
	Count int `validate:"gt=0"`
	// End is the latest possible deal time
	End time.Time `validate:"required"`
	// Period is how far before End deals are spread
	Period time.Duration `validate:"gt=0"`
	// BasePrice is the center of the entry price range
	BasePrice float64 `validate:"gt=0"`
	// PriceRange is the maximum distance of an entry price from BasePrice
	PriceRange float64 `validate:"gte=0"`
	// Volumes are the lot sizes a deal picks from
	Volumes []float64 `validate:"min=1,dive,gt=0"`
	// WinProbability is the chance that a deal is a win (0.0 to 1.0)
	WinProbability float64 `validate:"gte=0,lte=1"`
	// WinPips bounds the pips gained by a winning deal
	WinPips [2]float64
	// LossPips bounds the pips lost by a losing deal (negative values)
	LossPips [2]float64
	// PipValue is the profit of one pip at one lot
	PipValue float64 `validate:"gt=0"`
	// CommissionPerLot is charged per lot, recorded as a negative commission
	CommissionPerLot float64 `validate:"gte=0"`
}

// DefaultConfig returns the USDJPY sample configuration: 100 deals over
// the last 90 days with a win rate around 55%.
func DefaultConfig() Config {
	return Config{
		Symbol:           "USDJPY",
		Count:            100,
		End:              time.Now().UTC().Truncate(time.Second),
		Period:           90 * 24 * time.Hour,
		BasePrice:        149.50,
		PriceRange:       5,
		Volumes:          []float64{0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0},
		WinProbability:   0.55,
		WinPips:          [2]float64{10, 100},
		LossPips:         [2]float64{-50, -5},
		PipValue:         1000,
		CommissionPerLot: 300,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeGeneratorConfig, "invalid generator configuration", err)
	}

	if c.WinPips[0] <= 0 || c.WinPips[1] < c.WinPips[0] {
		return errors.Newf(errors.ErrCodeGeneratorConfig, "win pips range %v must be positive and ordered", c.WinPips)
	}

	if c.LossPips[1] >= 0 || c.LossPips[1] < c.LossPips[0] {
		return errors.Newf(errors.ErrCodeGeneratorConfig, "loss pips range %v must be negative and ordered", c.LossPips)
	}

	if c.Period < time.Hour {
		return errors.Newf(errors.ErrCodeGeneratorConfig, "period %s is shorter than one hour", c.Period)
	}

	return nil
}

// Generate creates Count deals ordered by time. Tickets follow generation
// order, so they are not sorted once the deals are ordered by time.
func (g *Generator) Generate(config Config) ([]types.TradeRecord, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	start := config.End.Add(-config.Period)
	hours := int(config.Period / time.Hour)
	deals := make([]types.TradeRecord, 0, config.Count)

	for i := 0; i < config.Count; i++ {
		// deals land on whole hours after start
		dealTime := start.Add(time.Duration(1+g.rng.Intn(hours)) * time.Hour)
		dealType := types.DealType(g.rng.Intn(2))
		price := config.BasePrice + g.uniform(-config.PriceRange, config.PriceRange)
		volume := config.Volumes[g.rng.Intn(len(config.Volumes))]

		var pips float64
		if g.rng.Float64() < config.WinProbability {
			pips = g.uniform(config.WinPips[0], config.WinPips[1])
		} else {
			pips = g.uniform(config.LossPips[0], config.LossPips[1])
		}

		profit := decimal.NewFromFloat(pips * volume * config.PipValue).Round(2)
		commission := decimal.NewFromFloat(volume * config.CommissionPerLot).Neg()

		deals = append(deals, types.TradeRecord{
			Ticket:     int64(firstTicket + i),
			Time:       dealTime,
			Type:       dealType,
			Entry:      0,
			Magic:      0,
			PositionID: int64(firstTicket + i),
			Reason:     0,
			Volume:     volume,
			Price:      price,
			Commission: commission,
			Swap:       decimal.Zero,
			Profit:     profit,
			Fee:        decimal.Zero,
			Symbol:     config.Symbol,
			Comment:    fmt.Sprintf("Trade_%d", i+1),
			ExternalID: "",
		})
	}

	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].Time.Before(deals[j].Time)
	})

	return deals, nil
}

// uniform returns a float in [low, high).
func (g *Generator) uniform(low, high float64) float64 {
	return low + g.rng.Float64()*(high-low)
}
