package types

// Stage is a point reached by the release workflow. Stages only move forward.
type Stage string

const (
	StageBuilt         Stage = "built"
	StageTagged        Stage = "tagged"
	StagePublished     Stage = "published"
	StagePublishFailed Stage = "publish_failed"
	StageNotified      Stage = "notified"
	StageNotifySkipped Stage = "notify_skipped"
)
