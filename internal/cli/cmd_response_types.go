package cli

type AddSiteResponse struct {
	URL   string `json:"url"`
	Added bool   `json:"added"`
}

type ImportResult struct {
	URL   string `json:"url"`
	Added bool   `json:"added"`
	Error string `json:"error,omitempty"`
}

type ImportReport struct {
	File     string         `json:"file"`
	Total    int            `json:"total"`
	Added    int            `json:"added"`
	Existing int            `json:"existing"`
	Failed   int            `json:"failed"`
	Results  []ImportResult `json:"results"`
}

type SaveResponse struct {
	Report
	SavedTo  string `json:"saved_to,omitempty"`
	Articles int    `json:"saved_articles,omitempty"`
}
