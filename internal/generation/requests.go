package generation

// Choices offered for the enumerated request fields, in display order.
var (
	ProductTones = []string{"Professional", "Witty & Fun", "Sleek & Modern", "Informative"}

	SocialPlatforms = []string{
		"Instagram/Facebook (Visual & direct)",
		"TikTok (Casual & trendy)",
		"LinkedIn (Professional & polished)",
	}

	EmailTones = []string{"Direct & Urgent", "Empathetic & Helpful", "Curious & Intriguing"}
)

// Validation tag names for the enumerated fields. The generation package does
// not validate; presentation layers register these with their validator using
// ChoiceRules.
const (
	RuleProductTone    = "product_tone"
	RuleSocialPlatform = "social_platform"
	RuleEmailTone      = "email_tone"
)

// ChoiceRules maps each enum validation tag to its allowed values.
func ChoiceRules() map[string][]string {
	return map[string][]string{
		RuleProductTone:    ProductTones,
		RuleSocialPlatform: SocialPlatforms,
		RuleEmailTone:      EmailTones,
	}
}

// ProductCopyRequest carries the fields of the product page copy flow.
type ProductCopyRequest struct {
	ProductName string `json:"product_name" form:"product_name" validate:"required"`
	Description string `json:"description"  form:"description"  validate:"required"`
	Audience    string `json:"audience"     form:"audience"     validate:"required"`
	Tone        string `json:"tone"         form:"tone"         validate:"required,product_tone"`
}

// Values maps the request onto the product copy placeholders.
func (r ProductCopyRequest) Values() map[string]string {
	return map[string]string{
		PlaceholderTone:               r.Tone,
		PlaceholderProductName:        r.ProductName,
		PlaceholderTargetAudience:     r.Audience,
		PlaceholderProductDescription: r.Description,
	}
}

// SocialCopyRequest carries the fields of the social ad copy flow.
type SocialCopyRequest struct {
	Description string `json:"description" form:"description" validate:"required"`
	Audience    string `json:"audience"    form:"audience"    validate:"required"`
	Platform    string `json:"platform"    form:"platform"    validate:"required,social_platform"`
}

// Values maps the request onto the social copy placeholders.
func (r SocialCopyRequest) Values() map[string]string {
	return map[string]string{
		PlaceholderPlatform:           r.Platform,
		PlaceholderTargetAudience:     r.Audience,
		PlaceholderProductDescription: r.Description,
	}
}

// EmailSubjectsRequest carries the fields of the email subject line flow.
type EmailSubjectsRequest struct {
	Benefit   string `json:"benefit"    form:"benefit"    validate:"required"`
	PainPoint string `json:"pain_point" form:"pain_point" validate:"required"`
	Tone      string `json:"tone"       form:"tone"       validate:"required,email_tone"`
}

// Values maps the request onto the email subject placeholders.
func (r EmailSubjectsRequest) Values() map[string]string {
	return map[string]string{
		PlaceholderProductBenefit: r.Benefit,
		PlaceholderPainPoint:      r.PainPoint,
		PlaceholderTone:           r.Tone,
	}
}
