package generation_test

import (
	"strings"
	"testing"

	"github.com/phrazzld/sellwise/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bambooValues() map[string]string {
	return generation.ProductCopyRequest{
		ProductName: "Bamboo Toothbrush",
		Description: "biodegradable handle, soft bristles",
		Audience:    "eco-conscious shoppers",
		Tone:        "Witty & Fun",
	}.Values()
}

func mustTemplate(t *testing.T, flow string) *generation.Template {
	t.Helper()
	registry, err := generation.DefaultRegistry("")
	require.NoError(t, err, "default templates must compile")
	tmpl, err := registry.Get(flow)
	require.NoError(t, err)
	return tmpl
}

func TestNewTemplate_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    generation.TemplateSpec
		wantErr string
	}{
		{
			name:    "empty name",
			spec:    generation.TemplateSpec{Model: "m", Scaffold: "{{.a}}", Placeholders: []string{"a"}},
			wantErr: "name cannot be empty",
		},
		{
			name:    "empty model",
			spec:    generation.TemplateSpec{Name: "t", Scaffold: "{{.a}}", Placeholders: []string{"a"}},
			wantErr: "model cannot be empty",
		},
		{
			name:    "no placeholders",
			spec:    generation.TemplateSpec{Name: "t", Model: "m", Scaffold: "static"},
			wantErr: "no placeholders declared",
		},
		{
			name:    "duplicate placeholder",
			spec:    generation.TemplateSpec{Name: "t", Model: "m", Scaffold: "{{.a}}", Placeholders: []string{"a", "a"}},
			wantErr: "duplicate placeholder",
		},
		{
			name:    "undeclared placeholder in scaffold",
			spec:    generation.TemplateSpec{Name: "t", Model: "m", Scaffold: "{{.a}} {{.b}}", Placeholders: []string{"a"}},
			wantErr: "scaffold references an undeclared placeholder",
		},
		{
			name:    "undeclared placeholder in task",
			spec:    generation.TemplateSpec{Name: "t", Model: "m", Scaffold: "{{.a}}", Task: "{{.z}}", Placeholders: []string{"a"}},
			wantErr: "task references an undeclared placeholder",
		},
		{
			name:    "declared but unused",
			spec:    generation.TemplateSpec{Name: "t", Model: "m", Scaffold: "{{.a}}", Placeholders: []string{"a", "b"}},
			wantErr: `placeholder "b" is declared but never used`,
		},
		{
			name:    "invalid syntax",
			spec:    generation.TemplateSpec{Name: "t", Model: "m", Scaffold: "{{.a", Placeholders: []string{"a"}},
			wantErr: "failed to parse scaffold",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := generation.NewTemplate(tc.spec)
			require.Error(t, err)
			assert.Nil(t, tmpl)
			assert.ErrorIs(t, err, generation.ErrInvalidTemplate)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestBind_ProductCopyExample(t *testing.T) {
	t.Parallel()

	tmpl := mustTemplate(t, generation.FlowProductCopy)
	prompt, err := tmpl.Bind(bambooValues())
	require.NoError(t, err)

	for _, want := range []string{"Bamboo Toothbrush", "eco-conscious shoppers", "Witty & Fun", "biodegradable handle, soft bristles"} {
		assert.Contains(t, prompt.SystemInstruction, want)
	}

	// Scaffold text survives binding untouched.
	for _, want := range []string{
		"# Product Headline\n- A short, attention-grabbing headline (maximum 10 words) focused on the main benefit.",
		"## Product Body Copy\n- A 2-3 paragraph summary (maximum 100 words)",
		"### Key SEO/Benefit Bullet Points\n- Generate exactly 5 compelling bullet points.",
		"- Use a maximum of 15 words per bullet point.",
		"- Tone: Witty & Fun\n- Product: Bamboo Toothbrush\n- Audience: eco-conscious shoppers\n- Description/Features: biodegradable handle, soft bristles\n---\n",
	} {
		assert.Contains(t, prompt.SystemInstruction, want)
	}

	assert.Equal(t, "Generate the full product copy suite for the product: Bamboo Toothbrush.", prompt.Task)
	assert.Equal(t, generation.DefaultModel, prompt.Model)
	assert.Equal(t, float32(0.7), prompt.Temperature)
}

func TestBind_NoPlaceholderSyntaxRemains(t *testing.T) {
	t.Parallel()

	values := map[string]map[string]string{
		generation.FlowProductCopy: bambooValues(),
		generation.FlowSocialCopy: generation.SocialCopyRequest{
			Description: "Silent keys & long battery",
			Audience:    "Busy professionals stressed by office noise",
			Platform:    "TikTok (Casual & trendy)",
		}.Values(),
		generation.FlowEmailSubjects: generation.EmailSubjectsRequest{
			Benefit:   "Eliminates background typing noise",
			PainPoint: "Distraction from coworkers' noisy mechanical keyboards",
			Tone:      "Curious & Intriguing",
		}.Values(),
	}

	for flow, vals := range values {
		t.Run(flow, func(t *testing.T) {
			t.Parallel()

			tmpl := mustTemplate(t, flow)
			prompt, err := tmpl.Bind(vals)
			require.NoError(t, err)

			assert.NotContains(t, prompt.SystemInstruction, "{{")
			assert.NotContains(t, prompt.SystemInstruction, "}}")
			assert.NotContains(t, prompt.Task, "{{")
			for _, v := range vals {
				assert.Contains(t, prompt.SystemInstruction, v)
			}
		})
	}
}

func TestBind_DiffersOnlyInSubstitutedRegion(t *testing.T) {
	t.Parallel()

	tmpl := mustTemplate(t, generation.FlowEmailSubjects)

	first := map[string]string{"product_benefit": "AAAA", "pain_point": "BBBB", "tone": "Direct & Urgent"}
	second := map[string]string{"product_benefit": "AAAA", "pain_point": "CCCCCC", "tone": "Direct & Urgent"}

	p1, err := tmpl.Bind(first)
	require.NoError(t, err)
	p2, err := tmpl.Bind(second)
	require.NoError(t, err)

	require.NotEqual(t, p1.SystemInstruction, p2.SystemInstruction)

	before1, after1, found1 := strings.Cut(p1.SystemInstruction, "BBBB")
	before2, after2, found2 := strings.Cut(p2.SystemInstruction, "CCCCCC")
	require.True(t, found1)
	require.True(t, found2)
	assert.Equal(t, before1, before2, "text before the substituted value must be identical")
	assert.Equal(t, after1, after2, "text after the substituted value must be identical")
	assert.Equal(t, p1.Task, p2.Task)
}

func TestBind_ValuesInsertedVerbatim(t *testing.T) {
	t.Parallel()

	tmpl := mustTemplate(t, generation.FlowSocialCopy)
	raw := `<b>"quoted" & {{.platform}} {braces} 🚀</b>`

	prompt, err := tmpl.Bind(map[string]string{
		"platform":            "LinkedIn (Professional & polished)",
		"target_audience":     raw,
		"product_description": "desc",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt.SystemInstruction, "- Target Audience: "+raw+"\n")
}

func TestBind_EmptyValuesAreBound(t *testing.T) {
	t.Parallel()

	tmpl := mustTemplate(t, generation.FlowEmailSubjects)
	prompt, err := tmpl.Bind(map[string]string{"product_benefit": "", "pain_point": "", "tone": ""})
	require.NoError(t, err)
	assert.Contains(t, prompt.SystemInstruction, "- Product Benefit: \n")
}

func TestBind_Rejects(t *testing.T) {
	t.Parallel()

	tmpl := mustTemplate(t, generation.FlowSocialCopy)

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()
		_, err := tmpl.Bind(map[string]string{"platform": "x", "target_audience": "y"})
		assert.ErrorIs(t, err, generation.ErrUnboundPlaceholder)
		assert.Contains(t, err.Error(), "product_description")
	})

	t.Run("nil values", func(t *testing.T) {
		t.Parallel()
		_, err := tmpl.Bind(nil)
		assert.ErrorIs(t, err, generation.ErrUnboundPlaceholder)
	})

	t.Run("unexpected argument", func(t *testing.T) {
		t.Parallel()
		_, err := tmpl.Bind(map[string]string{
			"platform":            "x",
			"target_audience":     "y",
			"product_description": "z",
			"tone":                "Professional",
		})
		assert.ErrorIs(t, err, generation.ErrUnexpectedArgument)
		assert.Contains(t, err.Error(), "tone")
	})
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	registry, err := generation.DefaultRegistry("gemini-custom")
	require.NoError(t, err)

	assert.Equal(t, []string{
		generation.FlowEmailSubjects,
		generation.FlowProductCopy,
		generation.FlowSocialCopy,
	}, registry.Names())

	temperatures := map[string]float32{
		generation.FlowProductCopy:   0.7,
		generation.FlowSocialCopy:    0.8,
		generation.FlowEmailSubjects: 0.9,
	}
	for flow, want := range temperatures {
		tmpl, err := registry.Get(flow)
		require.NoError(t, err)
		assert.Equal(t, want, tmpl.Temperature(), flow)
		assert.Equal(t, "gemini-custom", tmpl.Model(), flow)
	}

	_, err = registry.Get("newsletter")
	assert.ErrorIs(t, err, generation.ErrUnknownTemplate)
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	spec := generation.TemplateSpec{Name: "t", Model: "m", Scaffold: "{{.a}}", Placeholders: []string{"a"}}
	_, err := generation.NewRegistry(spec, spec)
	assert.ErrorIs(t, err, generation.ErrInvalidTemplate)
}

func TestScaffoldHeadings(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		generation.FlowProductCopy: {
			"# Product Headline\n",
			"## Product Body Copy\n",
			"### Key SEO/Benefit Bullet Points\n",
		},
		generation.FlowSocialCopy: {
			"# Primary Ad Hook (Max 2 sentences)\n",
			"## Ad Body Copy (Max 50 words)\n",
			"### Strong Call-to-Action Options (Generate exactly 5)\n",
			"1. Generate an urgent CTA",
			"2. Generate a benefit-focused CTA",
			"3. Generate a scarcity CTA",
			"4. Generate a discovery CTA",
			"5. Generate a curiosity CTA",
		},
		generation.FlowEmailSubjects: {
			"**numbered list** of exactly 8 subject lines.",
			"1.  One subject line using an emoji.",
			"2.  One subject line posing a clear question.",
			"3.  One subject line that creates urgency or scarcity.",
			"4.  One subject line focused on a direct benefit (no pain point).",
		},
	}

	for flow, headings := range tests {
		scaffold := mustTemplate(t, flow).Scaffold()
		for _, h := range headings {
			assert.Contains(t, scaffold, h, flow)
		}
	}
}
