package web

// CheckRequest is the body of POST /api/check and POST /api/embedded.
type CheckRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// CheckResult reports the flagged words found in a text.
type CheckResult struct {
	Language string   `json:"language"`
	Flagged  bool     `json:"flagged"`
	Words    []string `json:"words"`
}

// SearchResult reports whether a single term is flagged.
type SearchResult struct {
	Language string `json:"language"`
	Term     string `json:"term"`
	Found    bool   `json:"found"`
}

// TermsResult lists the loaded terms for a language.
type TermsResult struct {
	Language string   `json:"language"`
	Resolved string   `json:"resolved"`
	Fallback bool     `json:"fallback"`
	Count    int      `json:"count"`
	Terms    []string `json:"terms"`
}

// HealthResult is returned by GET /api/health.
type HealthResult struct {
	Status    string   `json:"status"`
	Uptime    string   `json:"uptime"`
	Default   string   `json:"default_language"`
	Languages []string `json:"languages"`
}

// ErrorResult is the body of every non-2xx response.
type ErrorResult struct {
	Error string `json:"error"`
}
