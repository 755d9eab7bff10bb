package service

import "github.com/guttosm/fba-quote-service/internal/domain/model"

// Classification is the demand class of one FBA destination.
type Classification struct {
	Category     model.DemandCategory `json:"category"`
	Eligible     model.ServiceModes   `json:"eligible_services"`
	Consolidator string               `json:"consolidator,omitempty"`
	Coast        string               `json:"coast,omitempty"`
	Loadability  float64              `json:"loadability"`
	Rule         string               `json:"rule"`
}

// FBAClassifier derives the demand category and eligible last-mile modes of
// a destination. A nil location means the FBA code is unknown.
type FBAClassifier interface {
	Classify(loc *model.FBALocation, cbm float64, requested model.ServiceModes) Classification
}

// ClassifierConfig holds the classification thresholds.
type ClassifierConfig struct {
	HotCBMThreshold float64
	LowBand         float64
	HighBand        float64
}

// DefaultClassifierConfig returns the calibrated thresholds.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{HotCBMThreshold: 50, LowBand: 15, HighBand: 35}
}

type classifyInput struct {
	loc       *model.FBALocation
	cbm       float64
	requested model.ServiceModes
	threeWeek float64
}

type classifierRule struct {
	name  string
	match func(in classifyInput) bool
	apply func(in classifyInput) Classification
}

// FBAClassifierImpl evaluates an ordered rule table; the first match wins.
type FBAClassifierImpl struct {
	cfg   ClassifierConfig
	rules []classifierRule
}

// NewFBAClassifier creates a classifier.
func NewFBAClassifier(cfg ClassifierConfig) FBAClassifier {
	c := &FBAClassifierImpl{cfg: cfg}
	c.rules = c.ruleTable()
	return c
}

func (c *FBAClassifierImpl) ruleTable() []classifierRule {
	return []classifierRule{
		{
			name:  "unknown_code",
			match: func(in classifyInput) bool { return in.loc == nil },
			apply: func(in classifyInput) Classification {
				return Classification{
					Category: model.CategoryNonHot,
					Eligible: orDefault(in.requested, model.RateFTL, model.RateFTL53, model.RateLTL),
				}
			},
		},
		{
			name: "preset_hot",
			match: func(in classifyInput) bool {
				return model.ParseDemandCategory(in.loc.PresetBucket) == model.CategoryHot
			},
			apply: func(in classifyInput) Classification {
				return located(in, model.CategoryHot, orDefault(in.requested, model.RateDrayage))
			},
		},
		{
			name:  "hot_volume",
			match: func(in classifyInput) bool { return in.cbm >= c.cfg.HotCBMThreshold },
			apply: func(in classifyInput) Classification {
				out := located(in, model.CategoryHot, model.NewServiceModes(model.RateDrayage))
				out.Loadability = in.cbm
				return out
			},
		},
		{
			name:  "steady_lane",
			match: func(in classifyInput) bool { return in.threeWeek > c.cfg.LowBand && in.threeWeek <= c.cfg.HighBand },
			apply: func(in classifyInput) Classification {
				return located(in, model.CategoryNonHot, orDefault(in.requested, model.RateFTL, model.RateFTL53))
			},
		},
		{
			name:  "busy_lane",
			match: func(in classifyInput) bool { return in.threeWeek > c.cfg.HighBand },
			apply: func(in classifyInput) Classification {
				return located(in, model.CategoryNonHot, orDefault(in.requested, model.RateFTL53))
			},
		},
		{
			name:  "quiet_lane",
			match: func(classifyInput) bool { return true },
			apply: func(in classifyInput) Classification {
				return located(in, model.CategoryNonHot, orDefault(in.requested, model.RateFTL, model.RateFTL53, model.RateLTL))
			},
		},
	}
}

// Classify implements FBAClassifier.
func (c *FBAClassifierImpl) Classify(loc *model.FBALocation, cbm float64, requested model.ServiceModes) Classification {
	in := classifyInput{loc: loc, cbm: cbm, requested: requested}
	if loc != nil {
		in.threeWeek = weeklyAverage(loc.Last3Weeks, 3)
	}
	for _, r := range c.rules {
		if r.match(in) {
			out := r.apply(in)
			out.Rule = r.name
			return out
		}
	}
	return Classification{Category: model.CategoryNonHot}
}

func located(in classifyInput, category model.DemandCategory, eligible model.ServiceModes) Classification {
	return Classification{
		Category:     category,
		Eligible:     eligible,
		Consolidator: in.loc.Consolidator,
		Coast:        in.loc.Coast,
		Loadability:  in.loc.Loadability,
	}
}

func orDefault(requested model.ServiceModes, fallback ...model.RateType) model.ServiceModes {
	if len(requested) > 0 {
		return model.NewServiceModes(requested...)
	}
	return model.NewServiceModes(fallback...)
}

// weeklyAverage returns total/weeks, or 0 when weeks is not positive.
func weeklyAverage(total float64, weeks int) float64 {
	if weeks <= 0 {
		return 0
	}
	return total / float64(weeks)
}
