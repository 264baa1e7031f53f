package constants

import "time"

// Reminder scheduling
const (
	// ReminderWindow is the cutoff for promoting an event to invite fan-out.
	// Events due further out than this are only marked Scheduled.
	ReminderWindow = 25 * time.Hour

	// ReminderLockTTL bounds how long a per-user job lock may be held.
	ReminderLockTTL = 10 * time.Minute
)

// Records store
const (
	// RecordsWriteBatchLimit is the maximum number of records the store
	// accepts per create/update call.
	RecordsWriteBatchLimit = 10

	// SubscriberUpsertChunkSize is how many candidate subscribers are
	// processed per batched lookup/write cycle.
	SubscriberUpsertChunkSize = 10
)

// Records store table names
const (
	TableUsers       = "users"
	TableEvents      = "events"
	TableSubscribers = "subscribers"
	TableInvites     = "invites"
)

// Payments provider
const (
	// PaymentsPageSize is the page size used for subscription and
	// checkout-session listings.
	PaymentsPageSize = 100
)

// Background jobs
const (
	TaskReminderRun = "reminder:run"
	TaskSyncRun     = "sync:run"

	QueueDefault = "default"
)

// Auth
const (
	TokenExpiry       = 30 * 24 * time.Hour
	TokenRefreshSkew  = 5 * time.Minute
	AuthContextKey    = "userEmail"
	RequestIDHeader   = "X-Request-ID"
	AuthHeaderName    = "Authorization"
	AuthHeaderPrefix  = "Bearer "
	ConferencingGrant = "refresh_token"
)
