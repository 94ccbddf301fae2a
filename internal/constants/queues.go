package constants

// Queue priority constants for job processing
const (
	QueueCritical = "critical" // readings pushed by external collectors
	QueueDefault  = "default"  // scheduled collection
	QueueLow      = "low"
)

// QueueWeights are the asynq priority weights per queue
var QueueWeights = map[string]int{
	QueueCritical: 6,
	QueueDefault:  3,
	QueueLow:      1,
}

// GetAllQueues returns all valid queue names, highest priority first
func GetAllQueues() []string {
	return []string{QueueCritical, QueueDefault, QueueLow}
}

// IsValidQueue checks if queue name is valid
func IsValidQueue(queue string) bool {
	_, ok := QueueWeights[queue]
	return ok
}
