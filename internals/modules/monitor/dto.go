package monitor

type CreateMonitorRequest struct {
	Url             string   `json:"url"`
	IntervalSeconds *int     `json:"interval_seconds"`
	Tags            []string `json:"tags"`
}

type ListMonitorsResponse struct {
	Items []Monitor `json:"items"`
}

type DeleteMonitorResponse struct {
	Deleted bool `json:"deleted"`
}
