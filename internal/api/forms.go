package api

import "github.com/phrazzld/sellwise/internal/generation"

type fieldKind int

const (
	fieldInput fieldKind = iota
	fieldTextArea
	fieldSelect
)

// formField describes one input of a flow's form. Name matches the request
// struct's form and json tags.
type formField struct {
	Name        string
	Label       string
	Placeholder string
	Kind        fieldKind
	Rows        int
	Options     []string
}

func (f formField) IsTextArea() bool { return f.Kind == fieldTextArea }

func (f formField) IsSelect() bool { return f.Kind == fieldSelect }

// flowForm holds the page copy for one tab.
type flowForm struct {
	Flow    string
	Tab     string
	Header  string
	Intro   string
	Action  string
	Submit  string
	Warning string
	Success string
	Fields  []formField
}

var flowForms = []flowForm{
	{
		Flow:    generation.FlowProductCopy,
		Tab:     "📝 Product Page Copy",
		Header:  "Generate High-Converting Product Page Copy",
		Intro:   "Enter the details of your product to generate a compelling Headline, Body Text, and SEO-focused Bullet Points.",
		Action:  "/product-copy",
		Submit:  "Generate Copy with Gemini ✨",
		Warning: "Please fill in the Product Name, Description, and Target Audience fields.",
		Success: "✅ Generated Product Copy",
		Fields: []formField{
			{
				Name:        "product_name",
				Label:       "Product Name (e.g., 'Eco-Friendly Bamboo Toothbrush')",
				Placeholder: "A short, catchy name for your product",
			},
			{
				Name:        "description",
				Label:       "Detailed Product Description / Features",
				Placeholder: "List 3-5 core features, materials, and key benefits. Be descriptive!",
				Kind:        fieldTextArea,
				Rows:        6,
			},
			{
				Name:        "audience",
				Label:       "Target Audience",
				Placeholder: "e.g., 'Young professionals interested in sustainability'",
			},
			{
				Name:    "tone",
				Label:   "Select the Tone of Voice",
				Kind:    fieldSelect,
				Options: generation.ProductTones,
			},
		},
	},
	{
		Flow:    generation.FlowSocialCopy,
		Tab:     "📱 Social Ad Copy",
		Header:  "Generate Short Social Media Ad Copy",
		Intro:   "Generate punchy ad copy and multiple Call-to-Action options for maximum engagement.",
		Action:  "/social-copy",
		Submit:  "Generate Social Ad Copy 🚀",
		Warning: "Please fill in the Product's Core Selling Points and Target Audience.",
		Success: "✅ Generated Social Ad Copy & CTAs",
		Fields: []formField{
			{
				Name:        "description",
				Label:       "Product's Core Selling Points / Features",
				Placeholder: "Focus on 1-2 major benefits. E.g., 'Silent keys & long battery'",
				Kind:        fieldTextArea,
				Rows:        4,
			},
			{
				Name:        "audience",
				Label:       "Target Audience / Buyer Persona",
				Placeholder: "e.g., 'Busy professionals stressed by office noise'",
			},
			{
				Name:    "platform",
				Label:   "Target Social Platform",
				Kind:    fieldSelect,
				Options: generation.SocialPlatforms,
			},
		},
	},
	{
		Flow:    generation.FlowEmailSubjects,
		Tab:     "📧 Email Subject Lines",
		Header:  "Generate 'Pain Point' Email Subject Lines",
		Intro:   "Get 8 subject lines designed to increase open rates by immediately addressing a customer's problem.",
		Action:  "/email-subjects",
		Submit:  "Generate Subject Lines 📧",
		Warning: "Please fill in the Main Product Benefit and Key Customer Pain Point.",
		Success: "✅ 8 High-Impact Subject Lines",
		Fields: []formField{
			{
				Name:        "benefit",
				Label:       "Main Product Benefit/Solution",
				Placeholder: "e.g., 'Eliminates background typing noise'",
			},
			{
				Name:        "pain_point",
				Label:       "Key Customer Pain Point / Problem Solved",
				Placeholder: "e.g., 'Distraction from coworkers' noisy mechanical keyboards'",
				Kind:        fieldTextArea,
				Rows:        4,
			},
			{
				Name:    "tone",
				Label:   "Select Email Tone",
				Kind:    fieldSelect,
				Options: generation.EmailTones,
			},
		},
	},
}

// formFor returns the form for flow, falling back to the first tab.
func formFor(flow string) flowForm {
	for _, f := range flowForms {
		if f.Flow == flow {
			return f
		}
	}
	return flowForms[0]
}
