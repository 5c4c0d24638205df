// Package kafka publishes appeal lifecycle events to Kafka.
package kafka

// Topic names, exclusive of the configured environment prefix.
const (
	TopicAppealEvents      = "appeal-events"
	TopicCalibrationEvents = "calibration-events"
)

// SchemaVersion is stamped into every envelope so consumers can handle
// payload evolution.
const SchemaVersion = "1.0"

// topicFor routes an event type onto its topic.
func topicFor(eventType string) string {
	switch eventType {
	case "appeal.calibration_completed":
		return TopicCalibrationEvents
	default:
		return TopicAppealEvents
	}
}
