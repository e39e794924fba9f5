package estimate

import "strings"

// AITag is a validated AI-solution tag. Unrecognized input maps to TagUnknown
// rather than failing, which lowers confidence downstream.
type AITag string

const (
	TagNLP            AITag = "nlp"
	TagComputerVision AITag = "computer_vision"
	TagML             AITag = "ml"
	TagPrediction     AITag = "prediction"
	TagRecommendation AITag = "recommendation"
	TagGenerativeAI   AITag = "generative_ai"
	TagSpeech         AITag = "speech"
	TagAutomation     AITag = "automation"
	TagUnknown        AITag = "unknown"
)

// IndustryTag is a validated target-industry tag.
type IndustryTag string

const (
	IndustryHealthcare    IndustryTag = "healthcare"
	IndustryFinance       IndustryTag = "finance"
	IndustryFintech       IndustryTag = "fintech"
	IndustryRetail        IndustryTag = "retail"
	IndustryManufacturing IndustryTag = "manufacturing"
	IndustryEducation     IndustryTag = "education"
	IndustryGovernment    IndustryTag = "government"
	IndustryLogistics     IndustryTag = "logistics"
	IndustryUnknown       IndustryTag = "unknown"
)

var aiAliases = map[string]AITag{
	"nlp":                TagNLP,
	"natural_language":   TagNLP,
	"text":               TagNLP,
	"computer_vision":    TagComputerVision,
	"cv":                 TagComputerVision,
	"vision":             TagComputerVision,
	"ml":                 TagML,
	"machine_learning":   TagML,
	"prediction":         TagPrediction,
	"predictive":         TagPrediction,
	"forecasting":        TagPrediction,
	"recommendation":     TagRecommendation,
	"recommendations":    TagRecommendation,
	"generative_ai":      TagGenerativeAI,
	"genai":              TagGenerativeAI,
	"llm":                TagGenerativeAI,
	"speech":             TagSpeech,
	"voice":              TagSpeech,
	"automation":         TagAutomation,
	"process_automation": TagAutomation,
}

var industryAliases = map[string]IndustryTag{
	"healthcare":    IndustryHealthcare,
	"health":        IndustryHealthcare,
	"medical":       IndustryHealthcare,
	"finance":       IndustryFinance,
	"financial":     IndustryFinance,
	"banking":       IndustryFinance,
	"fintech":       IndustryFintech,
	"retail":        IndustryRetail,
	"ecommerce":     IndustryRetail,
	"e-commerce":    IndustryRetail,
	"manufacturing": IndustryManufacturing,
	"education":     IndustryEducation,
	"edtech":        IndustryEducation,
	"government":    IndustryGovernment,
	"public_sector": IndustryGovernment,
	"logistics":     IndustryLogistics,
	"supply_chain":  IndustryLogistics,
}

// TagProfile is the parsed, validated view of the opportunity's tag fields.
type TagProfile struct {
	AI         map[AITag]bool
	Industries map[IndustryTag]bool
	// UnknownCount is the number of input tags that matched no alias.
	UnknownCount int
}

// ParseTags normalizes raw tag strings into typed sets. Unrecognized tags
// are counted, not rejected.
func ParseTags(aiTags, industryTags []string) TagProfile {
	p := TagProfile{
		AI:         make(map[AITag]bool),
		Industries: make(map[IndustryTag]bool),
	}
	for _, raw := range aiTags {
		key := normalizeTag(raw)
		if key == "" {
			continue
		}
		if tag, ok := aiAliases[key]; ok {
			p.AI[tag] = true
		} else {
			p.UnknownCount++
		}
	}
	for _, raw := range industryTags {
		key := normalizeTag(raw)
		if key == "" {
			continue
		}
		if tag, ok := industryAliases[key]; ok {
			p.Industries[tag] = true
		} else {
			p.UnknownCount++
		}
	}
	return p
}

// HasAI reports whether any recognized AI tag is present.
func (p TagProfile) HasAI() bool {
	return len(p.AI) > 0
}

// HasHeavyAI reports tags that historically estimate worst.
func (p TagProfile) HasHeavyAI() bool {
	return p.AI[TagComputerVision] || p.AI[TagGenerativeAI] || p.AI[TagSpeech]
}

// Regulated reports whether a compliance-sensitive industry is targeted.
func (p TagProfile) Regulated() bool {
	return p.Industries[IndustryHealthcare] || p.Industries[IndustryFinance] ||
		p.Industries[IndustryFintech] || p.Industries[IndustryGovernment]
}

func normalizeTag(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
