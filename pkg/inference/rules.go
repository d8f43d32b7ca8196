package inference

import (
	"regexp"
	"strconv"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
)

// Sentinel front-derailleur values written by drivetrain detection.
const (
	FrontDerailleur1x = "1x, geen voorderailleur"
	FrontDerailleur2x = "2x systeem, voorderailleur aanwezig"
)

// WideRangeTeethDelta is the cassette tooth spread at and above which a
// cassette implies a single-chainring drivetrain.
const WideRangeTeethDelta = 30

// DefaultRules returns the built-in rule table. Order is priority: within
// one target field the first matching rule wins.
func DefaultRules() []Rule {
	return concat(chainRules(), frameFitRules(), bottomBracketRules(), drivetrainRules())
}

// chainRules predict the chain from the rear-derailleur tier, speed-matched
// against the cassette.
func chainRules() []Rule {
	sram := func(tier string) Predicate {
		return All(
			SpecContains(catalog.FieldRearDerailleur, "sram"),
			SpecContains(catalog.FieldRearDerailleur, tier),
		)
	}
	shimano := func(tiers ...string) Predicate {
		return All(
			SpecContains(catalog.FieldRearDerailleur, "shimano"),
			SpecContains(catalog.FieldRearDerailleur, tiers...),
		)
	}
	cassette := func(speeds ...string) Predicate {
		return SpecContains(catalog.FieldCassette, speeds...)
	}

	return []Rule{
		{Name: "chain-sram-apex-12", Target: catalog.FieldChain,
			When: All(sram("apex"), cassette("12")), Value: Static("SRAM Apex, 12-speed")},
		{Name: "chain-sram-apex", Target: catalog.FieldChain,
			When: sram("apex"), Value: Static("SRAM PC-1130, 11-speed")},
		{Name: "chain-sram-rival-13", Target: catalog.FieldChain,
			When: All(sram("rival"), cassette("13")), Value: Static("SRAM Rival, 13-speed")},
		{Name: "chain-sram-rival", Target: catalog.FieldChain,
			When: sram("rival"), Value: Static("SRAM Rival, 12-speed")},
		{Name: "chain-sram-force-13", Target: catalog.FieldChain,
			When: All(sram("force"), cassette("13")), Value: Static("SRAM Force E1, 12/13-speed")},
		{Name: "chain-sram-force", Target: catalog.FieldChain,
			When: sram("force"), Value: Static("SRAM Force, 12-speed")},
		{Name: "chain-sram-red", Target: catalog.FieldChain,
			When: sram("red"), Value: Static("SRAM RED D1, 12-speed")},
		{Name: "chain-shimano-ultegra-xt", Target: catalog.FieldChain,
			When: shimano("ultegra", "xt"), Value: Static("Shimano XT M8100, 12-speed")},
		{Name: "chain-shimano-105", Target: catalog.FieldChain,
			When: shimano("105"), Value: Static("Shimano SLX M7100, 12-speed")},
		{Name: "chain-shimano-cues", Target: catalog.FieldChain,
			When: shimano("cues"), Value: Static("Shimano CN-LG500, 10-speed")},
		{Name: "chain-cassette-11", Target: catalog.FieldChain,
			When: cassette("11"), Value: Static("SRAM PC-1130, 11-speed")},
		{Name: "chain-cassette-12", Target: catalog.FieldChain,
			When: cassette("12"), Value: Static("Shimano SLX M7100, 12-speed")},
		{Name: "chain-cassette-10", Target: catalog.FieldChain,
			When: cassette("10"), Value: Static("Shimano CN-LG500, 10-speed")},
	}
}

// frameFitRules predict the riding position from the product-line family,
// falling back to the category.
func frameFitRules() []Rule {
	return []Rule{
		{Name: "framefit-endurance-family", Target: catalog.FieldFrameFit,
			When: ModelContains("domane", "checkpoint"), Value: Static("Endurance")},
		{Name: "framefit-race-family", Target: catalog.FieldFrameFit,
			When: ModelContains("madone", "émonda", "emonda"), Value: Static("H1.5 Race")},
		{Name: "framefit-triathlon-family", Target: catalog.FieldFrameFit,
			When: ModelContains("speed concept"), Value: Static("Triatlon")},
		{Name: "framefit-cyclocross-family", Target: catalog.FieldFrameFit,
			When: ModelContains("boone"), Value: Static("H1.5 Race")},
		{Name: "framefit-fitness-family", Target: catalog.FieldFrameFit,
			When: ModelContains("fx"), Value: Static("Comfort")},
		{Name: "framefit-category-performance", Target: catalog.FieldFrameFit,
			When: CategoryContains("performance"), Value: Static("H1.5 Race")},
		{Name: "framefit-category-gravel", Target: catalog.FieldFrameFit,
			When: CategoryContains("gravel", "cyclocross"), Value: Static("Endurance")},
		{Name: "framefit-category-fitness", Target: catalog.FieldFrameFit,
			When: CategoryContains("fitness"), Value: Static("Comfort")},
		{Name: "framefit-category-triathlon", Target: catalog.FieldFrameFit,
			When: CategoryContains("triathlon"), Value: Static("Triatlon")},
	}
}

// bottomBracketRules predict the bottom bracket from the product-line family
// and trim level.
func bottomBracketRules() []Rule {
	return []Rule{
		{Name: "bb-sram-dub-axs", Target: catalog.FieldBottomBracket,
			When: All(
				ModelContains("slr", "sl 6", "sl 7", "sl 8", "sl 9"),
				ModelContains("axs"),
			),
			Value: Static("SRAM DUB, T47 met schroefdraad, interne lagers")},
		{Name: "bb-sram-dub-wide-gravel", Target: catalog.FieldBottomBracket,
			When: All(ModelContains("checkpoint"), ModelContains("alr", "sl")),
			Value: Static("SRAM DUB Wide, T47 met schroefdraad, interne lagers")},
		{Name: "bb-praxis-t47", Target: catalog.FieldBottomBracket,
			When:  ModelContains("domane", "émonda", "emonda", "madone"),
			Value: Static("Praxis, T47 met schroefdraad, interne lagers")},
		{Name: "bb-shimano-pressfit-fitness", Target: catalog.FieldBottomBracket,
			When: ModelContains("fx"), Value: Static("Shimano RS500, 86 mm, PressFit")},
		{Name: "bb-shimano-bsa-entry", Target: catalog.FieldBottomBracket,
			When: ModelContains("al 2", "al 4", "al 5"), Value: Static("Shimano RS501 BSA")},
	}
}

// drivetrainRules classify the drivetrain as 2x or 1x and fill the front
// derailleur with the matching sentinel. The 2x check runs first: a crankset
// with a double-chainring tooth pattern is never classified as 1x.
func drivetrainRules() []Rule {
	doubleChainring := Any(
		SpecMatches(catalog.FieldCrankset, `\d+/\d+`),
		SpecMatches(catalog.FieldCrankset, `\d+x\d+`),
	)
	singleChainring := Any(
		SpecMatches(catalog.FieldCrankset, `apex 1\b`),
		SpecMatches(catalog.FieldCrankset, `force.*\b1\b`),
		SpecMatches(catalog.FieldCrankset, `narrow-wide`),
		singleRingTeeth(),
	)
	onexDerailleur := Any(
		SpecMatches(catalog.FieldRearDerailleur, `apex 1\b`),
		SpecMatches(catalog.FieldRearDerailleur, `xplr`),
		SpecMatches(catalog.FieldRearDerailleur, `grx.*1x`),
	)

	return []Rule{
		{Name: "drivetrain-2x", Target: catalog.FieldFrontDerailleur,
			When: doubleChainring, Value: Static(FrontDerailleur2x)},
		{Name: "drivetrain-1x", Target: catalog.FieldFrontDerailleur,
			When: All(
				Not(doubleChainring),
				Any(singleChainring, wideRangeCassette(), onexDerailleur),
			),
			Value: Static(FrontDerailleur1x)},
	}
}

var (
	cassetteRangeRe = regexp.MustCompile(`(\d+)-(\d+)`)
	singleTeethRe   = regexp.MustCompile(`(?i)\b(\d+)t\b`)
)

// wideRangeCassette matches cassettes whose tooth spread implies a
// single-chainring drivetrain.
func wideRangeCassette() Predicate {
	return func(r *catalog.Record) bool {
		m := cassetteRangeRe.FindStringSubmatch(r.Spec(catalog.FieldCassette).Value)
		if m == nil {
			return false
		}
		low, _ := strconv.Atoi(m[1])
		high, _ := strconv.Atoi(m[2])
		return high-low >= WideRangeTeethDelta
	}
}

// singleRingTeeth matches a lone chainring size in the road/gravel 1x range.
func singleRingTeeth() Predicate {
	return func(r *catalog.Record) bool {
		m := singleTeethRe.FindStringSubmatch(r.Spec(catalog.FieldCrankset).Value)
		if m == nil {
			return false
		}
		teeth, _ := strconv.Atoi(m[1])
		return teeth >= 38 && teeth <= 46
	}
}

func concat(tables ...[]Rule) []Rule {
	var out []Rule
	for _, t := range tables {
		out = append(out, t...)
	}
	return out
}
