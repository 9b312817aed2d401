package unsplash

// searchResponse is the envelope of the /search/photos endpoint.
type searchResponse struct {
	Results []apiPhoto `json:"results"`
}

// apiPhoto is one photo result; only the regular-size URL is used.
type apiPhoto struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}
