package cdf

// viewReference identifies a data-model view.
type viewReference struct {
	Type       string `json:"type"`
	Space      string `json:"space"`
	ExternalID string `json:"externalId"`
	Version    string `json:"version"`
}

type sourceSelector struct {
	Source viewReference `json:"source"`
}

type prefixFilter struct {
	Prefix struct {
		Property []string `json:"property"`
		Value    string   `json:"value"`
	} `json:"prefix"`
}

type listInstancesRequest struct {
	InstanceType string           `json:"instanceType"`
	Sources      []sourceSelector `json:"sources"`
	Limit        int              `json:"limit"`
	Cursor       string           `json:"cursor,omitempty"`
	Filter       *prefixFilter    `json:"filter,omitempty"`
}

// node is a data-model instance; properties are grouped by space then "View/version".
type node struct {
	InstanceType string                               `json:"instanceType"`
	Space        string                               `json:"space"`
	ExternalID   string                               `json:"externalId"`
	Properties   map[string]map[string]map[string]any `json:"properties"`
}

type listInstancesResponse struct {
	Items      []node `json:"items"`
	NextCursor string `json:"nextCursor"`
}

type rawRow struct {
	Key             string         `json:"key"`
	Columns         map[string]any `json:"columns"`
	LastUpdatedTime int64          `json:"lastUpdatedTime"`
}

type listRowsResponse struct {
	Items      []rawRow `json:"items"`
	NextCursor string   `json:"nextCursor"`
}
