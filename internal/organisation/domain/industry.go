package domain

import "strings"

type Industry string

const (
	IndustryTransportAndLogistics        Industry = "Transport and Logistics"
	IndustryEducation                    Industry = "Education"
	IndustrySales                        Industry = "Sales"
	IndustryScienceAndPharmaceuticals    Industry = "Science and Pharmaceuticals"
	IndustrySocialCare                   Industry = "Social care"
	IndustryRetail                       Industry = "Retail"
	IndustryRecruitmentAndHR             Industry = "Recruitment and HR"
	IndustryPublicServices               Industry = "Public services"
	IndustryPropertyAndConstruction      Industry = "Property and Construction"
	IndustryMediaAndInternet             Industry = "Media and Internet"
	IndustryMarketingAdvertisingAndPR    Industry = "Marketing, Advertising and PR"
	IndustryLeisureSportsAndTourism      Industry = "Leisure, Sports and Tourism"
	IndustryLawEnforcementAndSecurity    Industry = "Law Enforcement and Security"
	IndustryLaw                          Industry = "Law"
	IndustryInformationTechnology        Industry = "I.T"
	IndustryHospitality                  Industry = "Hospitality"
	IndustryEngineeringAndManufacturing  Industry = "Engineering and Manufacturing"
	IndustryEnergyAndUtilities           Industry = "Energy and Utilities"
	IndustryCreativeArtsAndDesign        Industry = "Creative Arts and Design"
	IndustryCharityAndVoluntaryWork      Industry = "Charity and Voluntary Work"
	IndustryBusinessConsultingManagement Industry = "Business, Consulting and Management"
	IndustryAccountancyBankingFinance    Industry = "Accountancy, Banking and Finance"
)

// IndustryAll is the filter sentinel meaning no industry constraint.
const IndustryAll = "All"

// industryKeys maps the enum key names clients send to stored labels.
var industryKeys = map[string]Industry{
	"TRANSPORT_AND_LOGISTICS":        IndustryTransportAndLogistics,
	"EDUCATION":                      IndustryEducation,
	"SALES":                          IndustrySales,
	"SCIENCE_AND_PHARMACEUTICALS":    IndustryScienceAndPharmaceuticals,
	"SOCIAL_CARE":                    IndustrySocialCare,
	"RETAIL":                         IndustryRetail,
	"RECRUITMENT_AND_HR":             IndustryRecruitmentAndHR,
	"PUBLIC_SERVICES":                IndustryPublicServices,
	"PROPERTY_AND_CONSTRUCTION":      IndustryPropertyAndConstruction,
	"MEDIA_AND_INTERNET":             IndustryMediaAndInternet,
	"MARKETING_ADVERTISING_AND_PR":   IndustryMarketingAdvertisingAndPR,
	"LEISURE_SPORTS_AND_TOURISM":     IndustryLeisureSportsAndTourism,
	"LAW_ENFORCEMENT_AND_SECURITY":   IndustryLawEnforcementAndSecurity,
	"LAW":                            IndustryLaw,
	"INFORMATION_TECHONOLOGY":        IndustryInformationTechnology,
	"INFORMATION_TECHNOLOGY":         IndustryInformationTechnology,
	"HOSPITALITY":                    IndustryHospitality,
	"ENGINEERING_AND_MANUFACTURING":  IndustryEngineeringAndManufacturing,
	"ENERGY_AND_UTILITIES":           IndustryEnergyAndUtilities,
	"CREATIVE_ARTS_AND_DESIGN":       IndustryCreativeArtsAndDesign,
	"CHARITY_AND_VOLUNTARY_WORK":     IndustryCharityAndVoluntaryWork,
	"BUSINESS_CONSULTING_MANAGEMENT": IndustryBusinessConsultingManagement,
	"BUSINSS_CONSULTING_MANAGEMENT":  IndustryBusinessConsultingManagement,
	"ACCOUNTANCY_BANKING_FINANCE":    IndustryAccountancyBankingFinance,
}

// Industries lists every stored industry label.
func Industries() []Industry {
	return []Industry{
		IndustryTransportAndLogistics,
		IndustryEducation,
		IndustrySales,
		IndustryScienceAndPharmaceuticals,
		IndustrySocialCare,
		IndustryRetail,
		IndustryRecruitmentAndHR,
		IndustryPublicServices,
		IndustryPropertyAndConstruction,
		IndustryMediaAndInternet,
		IndustryMarketingAdvertisingAndPR,
		IndustryLeisureSportsAndTourism,
		IndustryLawEnforcementAndSecurity,
		IndustryLaw,
		IndustryInformationTechnology,
		IndustryHospitality,
		IndustryEngineeringAndManufacturing,
		IndustryEnergyAndUtilities,
		IndustryCreativeArtsAndDesign,
		IndustryCharityAndVoluntaryWork,
		IndustryBusinessConsultingManagement,
		IndustryAccountancyBankingFinance,
	}
}

// ParseIndustry accepts either a stored label or its key name. An empty
// value or the All sentinel yields ("", true), meaning no constraint.
func ParseIndustry(raw string) (Industry, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, IndustryAll) {
		return "", true
	}
	if industry, ok := industryKeys[strings.ToUpper(raw)]; ok {
		return industry, true
	}
	for _, industry := range Industries() {
		if strings.EqualFold(string(industry), raw) {
			return industry, true
		}
	}
	return "", false
}
