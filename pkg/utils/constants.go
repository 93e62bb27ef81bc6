package utils

const (
	MonitorCreated   = "monitor created successfully"
	MonitorsListed   = "monitors retrieved"
	MonitorRetrieved = "monitor retrieved"
	MonitorDeleted   = "monitor deleted successfully"
	MonitorNotFound  = "monitor not found"
)
