package httpx

// Page identifiers used in templates and navigation.
const (
	PageHome           = "home"
	PageAds            = "ads"
	PageAdoptions      = "adoptions"
	PageAdoption       = "adoption"
	PageReportForm     = "report-form"
	PageReports        = "reports"
	PageDashboard      = "dashboard"
	PageNGO            = "ngo"
	PageLogin          = "login"
	PageRegister       = "register"
	PageError          = "error"
	defaultContentTmpl = "home-content"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
	StaticPathFromRoot   = "frontend/static"
)

// Cookie and route defaults.
const (
	DefaultSessionCookie = "straycare.sid"
	DefaultLoginPath     = "/auth/login/local"
	oauthStateCookie     = "straycare.oauth_state"
	oauthNonceCookie     = "straycare.oauth_nonce"
	oauthCookieMaxAge    = 600

	msgSomethingWrong = "Something went wrong."
	msgOnlyLocal      = "Only public users can access this."
	msgOnlyNGO        = "Only NGOs can access this."
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageHome:       "home-content",
	PageAds:        "ads-content",
	PageAdoptions:  "adoptions-content",
	PageAdoption:   "adoption-content",
	PageReportForm: "report-form-content",
	PageReports:    "reports-content",
	PageDashboard:  "dashboard-content",
	PageNGO:        "ngo-content",
	PageLogin:      "login-content",
	PageRegister:   "register-content",
	PageError:      "error-content",
}

// ContentTemplateFor returns the content template for the given page.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(page string) string {
	if name, ok := contentTemplates[page]; ok {
		return name
	}
	return defaultContentTmpl
}
