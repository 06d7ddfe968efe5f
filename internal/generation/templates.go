package generation

import (
	"fmt"
	"sort"
)

// Flow names. Each names one registered template.
const (
	FlowProductCopy   = "product_copy"
	FlowSocialCopy    = "social_copy"
	FlowEmailSubjects = "email_subjects"
)

// DefaultModel is the model identifier used when configuration does not override it.
const DefaultModel = "gemini-2.5-flash"

// Sampling temperatures per flow. Flows whose value is lexical variety run hotter.
const (
	ProductCopyTemperature   float32 = 0.7
	SocialCopyTemperature    float32 = 0.8
	EmailSubjectsTemperature float32 = 0.9
)

// Placeholder names used by the built-in templates.
const (
	PlaceholderTone               = "tone"
	PlaceholderProductName        = "product_name"
	PlaceholderTargetAudience     = "target_audience"
	PlaceholderProductDescription = "product_description"
	PlaceholderPlatform           = "platform"
	PlaceholderProductBenefit     = "product_benefit"
	PlaceholderPainPoint          = "pain_point"
)

const productCopyScaffold = `
You are a highly skilled, conversion-focused **AI Marketing Copywriter** named SellWise.
Your primary goal is to generate compelling, structured marketing copy for a product page.

Your response MUST be formatted strictly using **Markdown headings and bullet points** as follows:

# Product Headline
- A short, attention-grabbing headline (maximum 10 words) focused on the main benefit.

## Product Body Copy
- A 2-3 paragraph summary (maximum 100 words) that immediately addresses a pain point and positions the product as the unique solution. The copy must be persuasive and engaging.

### Key SEO/Benefit Bullet Points
- Generate exactly 5 compelling bullet points.
- Each bullet point must focus on a key feature AND translate it into a specific user benefit.
- Integrate relevant keywords naturally (based on the product name/description).
- Use a maximum of 15 words per bullet point.

---
**INPUT PARAMETERS:**
- Tone: {{.tone}}
- Product: {{.product_name}}
- Audience: {{.target_audience}}
- Description/Features: {{.product_description}}
---
`

const productCopyTask = `Generate the full product copy suite for the product: {{.product_name}}.`

const socialCopyScaffold = `
You are a rapid, direct-response **AI Social Media Copywriter** named SellWise.
Your goal is to generate short, viral, and high-impact ad copy suitable for platforms like Instagram, Facebook, or TikTok.
The copy must immediately grab attention and clearly lead to a call-to-action.

Your response MUST be formatted strictly using **Markdown headings and a numbered list** as follows:

# Primary Ad Hook (Max 2 sentences)
- A punchy, urgent opening line that uses an emoji and addresses a common audience pain point.

## Ad Body Copy (Max 50 words)
- A brief, benefit-driven paragraph explaining how the product solves the pain point. Keep it concise for a mobile screen.

### Strong Call-to-Action Options (Generate exactly 5)
1. Generate an urgent CTA (e.g., "Shop Now").
2. Generate a benefit-focused CTA (e.g., "Claim Your Focus").
3. Generate a scarcity CTA (e.g., "Limited Stock").
4. Generate a discovery CTA (e.g., "Learn More").
5. Generate a curiosity CTA (e.g., "See Why Thousands Switched").

---
**INPUT PARAMETERS:**
- Platform: {{.platform}}
- Target Audience: {{.target_audience}}
- Description/Features: {{.product_description}}
---
`

const socialCopyTask = `Generate the social media ad copy and CTA options based on the parameters provided.`

const emailSubjectsScaffold = `
You are a highly efficient **AI Email Marketing Specialist** named SellWise.
Your task is to generate 8 high-open-rate subject lines for a product or service.
The primary strategy is to focus on a **clear pain point** or a **curiosity gap** related to the product's main benefit.

Your response MUST be formatted strictly as a **numbered list** of exactly 8 subject lines.
The subject lines should be short, impactful, and designed to maximize the email open rate.
For variety, ensure you include:
1.  One subject line using an emoji.
2.  One subject line posing a clear question.
3.  One subject line that creates urgency or scarcity.
4.  One subject line focused on a direct benefit (no pain point).

---
**INPUT PARAMETERS:**
- Product Benefit: {{.product_benefit}}
- Pain Point: {{.pain_point}}
- Tone: {{.tone}}
---
`

const emailSubjectsTask = `Generate the 8 high-converting email subject lines based on the pain point and benefit provided.`

// DefaultTemplateSpecs returns the specs of the three built-in flows, all
// bound to model. An empty model selects DefaultModel.
func DefaultTemplateSpecs(model string) []TemplateSpec {
	if model == "" {
		model = DefaultModel
	}
	return []TemplateSpec{
		{
			Name:        FlowProductCopy,
			Model:       model,
			Temperature: ProductCopyTemperature,
			Scaffold:    productCopyScaffold,
			Task:        productCopyTask,
			Placeholders: []string{
				PlaceholderTone,
				PlaceholderProductName,
				PlaceholderTargetAudience,
				PlaceholderProductDescription,
			},
		},
		{
			Name:        FlowSocialCopy,
			Model:       model,
			Temperature: SocialCopyTemperature,
			Scaffold:    socialCopyScaffold,
			Task:        socialCopyTask,
			Placeholders: []string{
				PlaceholderPlatform,
				PlaceholderTargetAudience,
				PlaceholderProductDescription,
			},
		},
		{
			Name:        FlowEmailSubjects,
			Model:       model,
			Temperature: EmailSubjectsTemperature,
			Scaffold:    emailSubjectsScaffold,
			Task:        emailSubjectsTask,
			Placeholders: []string{
				PlaceholderProductBenefit,
				PlaceholderPainPoint,
				PlaceholderTone,
			},
		},
	}
}

// Registry holds compiled templates by flow name. It is immutable after
// construction.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry compiles every spec. Duplicate names are rejected.
func NewRegistry(specs ...TemplateSpec) (*Registry, error) {
	r := &Registry{templates: make(map[string]*Template, len(specs))}
	for _, spec := range specs {
		if _, dup := r.templates[spec.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate template %q", ErrInvalidTemplate, spec.Name)
		}
		t, err := NewTemplate(spec)
		if err != nil {
			return nil, err
		}
		r.templates[spec.Name] = t
	}
	return r, nil
}

// DefaultRegistry compiles the three built-in flows for model.
func DefaultRegistry(model string) (*Registry, error) {
	return NewRegistry(DefaultTemplateSpecs(model)...)
}

// Get returns the template registered under name.
func (r *Registry) Get(name string) (*Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return t, nil
}

// Names returns the registered flow names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
