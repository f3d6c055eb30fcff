package health

type healthResponse struct {
	Status    string `json:"status" example:"ok" enum:"ok,unhealthy"`
	Timestamp string `json:"timestamp" example:"2026-01-01T12:00:00Z"` // RFC3339
	Uptime    string `json:"uptime" example:"2h30m45s"`
}
