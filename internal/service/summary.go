package service

import (
	"sort"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
)

// SummaryOptions holds the currency rate and last-mile floor.
type SummaryOptions struct {
	USDToINR           float64
	MinimumLastMileUSD float64
}

// DestinationSummary is one row of the per-destination table.
type DestinationSummary struct {
	Destination      string             `json:"destination"`
	FBACode          string             `json:"fba_code"`
	POL              string             `json:"pol"`
	POD              string             `json:"pod"`
	Category         string             `json:"category"`
	ConsoleType      model.ConsoleType  `json:"console_type"`
	ServiceModes     model.ServiceModes `json:"service_modes"`
	LastMileType     model.RateType     `json:"last_mile_type"`
	LastMileCarrier  string             `json:"last_mile_carrier"`
	LastMileProvider string             `json:"last_mile_provider"`
	CBM              float64            `json:"cbm"`
	Pallets          int                `json:"pallets"`
	TotalUSD         float64            `json:"total_usd"`
	TotalINR         float64            `json:"total_inr"`
	PerCBMUSD        float64            `json:"per_cbm_usd"`
	PerCBMINR        float64            `json:"per_cbm_inr"`
}

// ChargeHeadRow is one aggregated charge head of a (port, category,
// console) group.
type ChargeHeadRow struct {
	Port        string            `json:"port"`
	Category    string            `json:"category"`
	ConsoleType model.ConsoleType `json:"console_type"`
	ChargeHead  string            `json:"charge_head"`
	USD         float64           `json:"usd"`
	INR         float64           `json:"inr"`
	USDPerCBM   float64           `json:"usd_per_cbm"`
	INRPerCBM   float64           `json:"inr_per_cbm"`
}

// Summary is the two-table view of a composition.
type Summary struct {
	Destinations []DestinationSummary `json:"destinations"`
	ChargeHeads  []ChargeHeadRow      `json:"charge_heads"`
}

type summaryGroup struct {
	port     string
	category string
	console  model.ConsoleType
}

// Summarize turns landed costs into the destination and charge-head tables.
// Output is ordered by destination then console type so it is stable.
func Summarize(results model.LandedCosts, opts SummaryOptions) Summary {
	if opts.USDToINR <= 0 {
		opts.USDToINR = 88
	}
	out := Summary{Destinations: []DestinationSummary{}, ChargeHeads: []ChargeHeadRow{}}

	var groups []summaryGroup
	amounts := map[summaryGroup]map[string]float64{}
	volumes := map[summaryGroup]float64{}

	for _, b := range orderedBreakdowns(results) {
		out.Destinations = append(out.Destinations, DestinationSummary{
			Destination:      b.Destination,
			FBACode:          b.FBACode,
			POL:              b.POL,
			POD:              b.FPOD,
			Category:         b.Category,
			ConsoleType:      b.ConsoleType,
			ServiceModes:     b.ServiceModes,
			LastMileType:     b.Selected.RateType,
			LastMileCarrier:  b.Selected.CarrierName,
			LastMileProvider: b.Selected.ServiceProvider,
			CBM:              b.CBM,
			Pallets:          b.Pallets,
			TotalUSD:         b.Total,
			TotalINR:         b.Total * opts.USDToINR,
			PerCBMUSD:        b.TotalPerCBM,
			PerCBMINR:        b.TotalPerCBM * opts.USDToINR,
		})

		g := summaryGroup{port: b.FPOD, category: b.Category, console: b.ConsoleType}
		if _, ok := amounts[g]; !ok {
			groups = append(groups, g)
			amounts[g] = map[string]float64{}
		}
		for _, h := range b.Heads() {
			amounts[g][h.Head] += h.Amount
		}
		volumes[g] += b.CBM
	}

	for _, g := range groups {
		for _, head := range model.ChargeHeads {
			usd := amounts[g][head]
			if head == model.HeadLastMile && usd > 0 && usd < opts.MinimumLastMileUSD {
				usd = opts.MinimumLastMileUSD
			}
			perCBM := model.DivideCBM(usd, volumes[g])
			out.ChargeHeads = append(out.ChargeHeads, ChargeHeadRow{
				Port:        g.port,
				Category:    g.category,
				ConsoleType: g.console,
				ChargeHead:  head,
				USD:         usd,
				INR:         usd * opts.USDToINR,
				USDPerCBM:   perCBM,
				INRPerCBM:   perCBM * opts.USDToINR,
			})
		}
	}
	return out
}

func orderedBreakdowns(results model.LandedCosts) []*model.ChargeBreakdown {
	dests := make([]string, 0, len(results))
	for d := range results {
		dests = append(dests, d)
	}
	sort.Strings(dests)

	var out []*model.ChargeBreakdown
	for _, d := range dests {
		consoles := make([]string, 0, len(results[d]))
		for c := range results[d] {
			consoles = append(consoles, string(c))
		}
		sort.Strings(consoles)
		for _, c := range consoles {
			out = append(out, results[d][model.ConsoleType(c)])
		}
	}
	return out
}
