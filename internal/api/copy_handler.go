package api

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/sellwise/internal/api/shared"
	"github.com/phrazzld/sellwise/internal/generation"
	"github.com/phrazzld/sellwise/internal/platform/logger"
)

// PageTitle is shown in the browser tab and as the page heading.
const PageTitle = "💡 SellWise: AI Marketing Copy Generator"

//go:embed templates/*.html
var templateFS embed.FS

// CopyGenerator is the generation surface the handlers depend on.
// *generation.Service satisfies it.
type CopyGenerator interface {
	GenerateProductCopy(ctx context.Context, req generation.ProductCopyRequest) generation.Result
	GenerateSocialCopy(ctx context.Context, req generation.SocialCopyRequest) generation.Result
	GenerateEmailSubjects(ctx context.Context, req generation.EmailSubjectsRequest) generation.Result
}

// GenerationResponse is the JSON body returned by the /api endpoints.
// A failed generation still returns 200 with Failure populated and Markdown
// holding the rendered error text.
type GenerationResponse struct {
	Flow      string              `json:"flow"`
	Model     string              `json:"model"`
	RequestID string              `json:"request_id"`
	Markdown  string              `json:"markdown"`
	Failure   *generation.Failure `json:"failure,omitempty"`
}

// CopyHandler serves the form page, the form submissions and the JSON API.
type CopyHandler struct {
	generator CopyGenerator
	validator *validator.Validate
	page      *template.Template
}

// tabView is the state of one tab on a rendered page.
type tabView struct {
	Form    flowForm
	Active  bool
	Values  map[string]string
	Warning string
	Error   string
	Output  template.HTML
}

type pageData struct {
	Title string
	Tabs  []tabView
}

// NewCopyHandler creates a CopyHandler and parses the embedded page template.
func NewCopyHandler(generator CopyGenerator) (*CopyHandler, error) {
	if generator == nil {
		return nil, errors.New("copy generator cannot be nil")
	}

	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	return &CopyHandler{
		generator: generator,
		validator: shared.NewValidator(),
		page:      page,
	}, nil
}

// Index handles GET / and shows the tab named by the "tab" query parameter.
func (h *CopyHandler) Index(w http.ResponseWriter, r *http.Request) {
	active := formFor(r.URL.Query().Get("tab"))
	h.render(w, r, http.StatusOK, tabView{Form: active, Values: defaultValues(active)})
}

// SubmitProductCopy handles POST /product-copy.
func (h *CopyHandler) SubmitProductCopy(w http.ResponseWriter, r *http.Request) {
	submitForm(h, w, r, generation.FlowProductCopy, func(v url.Values) generation.ProductCopyRequest {
		return generation.ProductCopyRequest{
			ProductName: v.Get("product_name"),
			Description: v.Get("description"),
			Audience:    v.Get("audience"),
			Tone:        v.Get("tone"),
		}
	}, h.generator.GenerateProductCopy)
}

// SubmitSocialCopy handles POST /social-copy.
func (h *CopyHandler) SubmitSocialCopy(w http.ResponseWriter, r *http.Request) {
	submitForm(h, w, r, generation.FlowSocialCopy, func(v url.Values) generation.SocialCopyRequest {
		return generation.SocialCopyRequest{
			Description: v.Get("description"),
			Audience:    v.Get("audience"),
			Platform:    v.Get("platform"),
		}
	}, h.generator.GenerateSocialCopy)
}

// SubmitEmailSubjects handles POST /email-subjects.
func (h *CopyHandler) SubmitEmailSubjects(w http.ResponseWriter, r *http.Request) {
	submitForm(h, w, r, generation.FlowEmailSubjects, func(v url.Values) generation.EmailSubjectsRequest {
		return generation.EmailSubjectsRequest{
			Benefit:   v.Get("benefit"),
			PainPoint: v.Get("pain_point"),
			Tone:      v.Get("tone"),
		}
	}, h.generator.GenerateEmailSubjects)
}

// ProductCopyAPI handles POST /api/product-copy.
func (h *CopyHandler) ProductCopyAPI(w http.ResponseWriter, r *http.Request) {
	serveJSON(h, w, r, h.generator.GenerateProductCopy)
}

// SocialCopyAPI handles POST /api/social-copy.
func (h *CopyHandler) SocialCopyAPI(w http.ResponseWriter, r *http.Request) {
	serveJSON(h, w, r, h.generator.GenerateSocialCopy)
}

// EmailSubjectsAPI handles POST /api/email-subjects.
func (h *CopyHandler) EmailSubjectsAPI(w http.ResponseWriter, r *http.Request) {
	serveJSON(h, w, r, h.generator.GenerateEmailSubjects)
}

// submitForm parses a form submission, validates it and either re-renders the
// tab with a warning or runs the flow and renders its result.
func submitForm[T any](
	h *CopyHandler,
	w http.ResponseWriter,
	r *http.Request,
	flow string,
	parse func(url.Values) T,
	run func(context.Context, T) generation.Result,
) {
	log := logger.FromContextOrDefault(r.Context(), nil)
	form := formFor(flow)

	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, tabView{
			Form:    form,
			Values:  defaultValues(form),
			Warning: "Invalid form submission.",
		})
		return
	}

	values := submittedValues(form, r.PostForm)
	req := parse(r.PostForm)

	if err := h.validator.Struct(req); err != nil {
		log.Debug("form validation failed", "flow", flow, "error", err.Error())
		warning := form.Warning
		if !missingRequired(err) {
			warning = strings.Join(shared.ValidationMessages(err), "; ")
		}
		h.render(w, r, http.StatusUnprocessableEntity, tabView{Form: form, Values: values, Warning: warning})
		return
	}

	result := run(r.Context(), req)

	view := tabView{Form: form, Values: values}
	if result.OK() {
		view.Output = RenderMarkdown(result.Markdown())
	} else {
		view.Error = result.Markdown()
	}
	h.render(w, r, http.StatusOK, view)
}

// serveJSON decodes and validates a JSON request, runs the flow and writes a
// GenerationResponse.
func serveJSON[T any](
	h *CopyHandler,
	w http.ResponseWriter,
	r *http.Request,
	run func(context.Context, T) generation.Result,
) {
	var req T
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, err)
		return
	}

	result := run(r.Context(), req)

	shared.RespondWithJSON(w, r, http.StatusOK, GenerationResponse{
		Flow:      result.Flow,
		Model:     result.Model,
		RequestID: result.RequestID.String(),
		Markdown:  result.Markdown(),
		Failure:   result.Failure,
	})
}

// render writes the page with active as the selected tab. Other tabs show
// their default values.
func (h *CopyHandler) render(w http.ResponseWriter, r *http.Request, status int, active tabView) {
	data := pageData{Title: PageTitle}
	for _, f := range flowForms {
		if f.Flow == active.Form.Flow {
			active.Active = true
			data.Tabs = append(data.Tabs, active)
			continue
		}
		data.Tabs = append(data.Tabs, tabView{Form: f, Values: defaultValues(f)})
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		logger.FromContextOrDefault(r.Context(), nil).Error("failed to render page",
			slog.String("flow", active.Form.Flow),
			slog.String("error", err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// defaultValues preselects the first option of every select field.
func defaultValues(form flowForm) map[string]string {
	values := make(map[string]string, len(form.Fields))
	for _, f := range form.Fields {
		if f.IsSelect() && len(f.Options) > 0 {
			values[f.Name] = f.Options[0]
		}
	}
	return values
}

// submittedValues keeps what the user typed so the form can be re-rendered.
func submittedValues(form flowForm, posted url.Values) map[string]string {
	values := defaultValues(form)
	for _, f := range form.Fields {
		if v, ok := posted[f.Name]; ok && len(v) > 0 {
			values[f.Name] = v[0]
		}
	}
	return values
}
