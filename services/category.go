package services

import (
	"strings"

	"stockfolio/models"
)

// categoryRule maps an industry keyword to a sector. Rules are evaluated in
// order; the first match wins, so more specific keywords must come first.
type categoryRule struct {
	keyword string
	sector  models.Sector
}

var industryRules = []categoryRule{
	{"software", models.SectorTechnology},
	{"semiconductor", models.SectorTechnology},
	{"technology", models.SectorTechnology},
	{"bank", models.SectorFinancial},
	{"finance", models.SectorFinancial},
	{"insurance", models.SectorFinancial},
	{"energy", models.SectorEnergy},
	{"oil", models.SectorEnergy},
	{"gas", models.SectorEnergy},
	{"health", models.SectorHealthcare},
	{"biotech", models.SectorHealthcare},
	{"pharma", models.SectorHealthcare},
	{"industrial", models.SectorIndustrials},
	{"manufacturing", models.SectorIndustrials},
	{"real estate", models.SectorRealEstate},
	{"media", models.SectorCommunication},
	{"telecom", models.SectorCommunication},
	{"consumer", models.SectorConsumer},
	{"retail", models.SectorConsumer},
}

// yahooSectors maps sector names as reported by the profile endpoint onto
// the closed sector set.
var yahooSectors = map[string]models.Sector{
	"Technology":             models.SectorTechnology,
	"Financial Services":     models.SectorFinancial,
	"Energy":                 models.SectorEnergy,
	"Healthcare":             models.SectorHealthcare,
	"Industrials":            models.SectorIndustrials,
	"Consumer Cyclical":      models.SectorConsumer,
	"Consumer Defensive":     models.SectorConsumer,
	"Real Estate":            models.SectorRealEstate,
	"Communication Services": models.SectorCommunication,
}

// MapSector classifies a profile sector string. Unrecognized non-empty
// values fall through to the keyword rules and finally to SectorOther;
// empty input is SectorUnknown.
func MapSector(sector string) models.Sector {
	if sector == "" {
		return models.SectorUnknown
	}
	if s, ok := yahooSectors[sector]; ok {
		return s
	}
	if s := MapIndustry(sector); s != models.SectorUnknown {
		return s
	}
	return models.SectorOther
}

// MapIndustry classifies a free-text industry string via the ordered
// keyword rules. Unresolvable inputs map to SectorUnknown.
func MapIndustry(industry string) models.Sector {
	if industry == "" {
		return models.SectorUnknown
	}
	lower := strings.ToLower(industry)
	for _, rule := range industryRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.sector
		}
	}
	return models.SectorUnknown
}
