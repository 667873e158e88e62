package docsearch

import "context"

// Health reports engine reachability and cluster state. It never fails.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	return HealthStatus{
		Status:        string(report.Status),
		Connection:    string(report.Engine.Connection),
		Driver:        report.Engine.Driver,
		ClusterStatus: report.Engine.ClusterStatus,
		Version:       report.Engine.Version,
		Error:         report.Engine.Error,
	}
}
