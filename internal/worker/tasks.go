package worker

const (
	TypeNoShowSweep = "maintenance:no_show_sweep"

	QueueMaintenance = "maintenance"
)
