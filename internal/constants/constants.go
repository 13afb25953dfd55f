package constants

// 订单状态常量（WooCommerce 回调）
const (
	OrderStatusCompleted  = "completed"
	OrderStatusProcessing = "processing"
	OrderStatusRefunded   = "refunded"
	OrderStatusCancelled  = "cancelled"
)

// 忠诚度计划类型常量
const (
	ProgramKindStamps = "stamps"
	ProgramKindPoints = "points"
	ProgramKindNone   = "none"
)

// WhatsApp 消息任务状态常量
const (
	JobStatusPending   = "pending"
	JobStatusScheduled = "scheduled"
	JobStatusSent      = "sent"
	JobStatusFailed    = "failed"
)

// WhatsApp 消息类型常量
const (
	MessageTypeText     = "text"
	MessageTypeImage    = "image"
	MessageTypeVideo    = "video"
	MessageTypeDocument = "document"
)

// 通知事件类型常量
const (
	NotificationEventDrawWinner   = "draw_winner"
	NotificationEventStampEarned  = "stamp_earned"
	NotificationEventPointsEarned = "points_earned"
	NotificationEventFollowup     = "followup"
	NotificationEventBlast        = "blast"
)

// 队列名称常量
const (
	QueueDefault = "default"
	QueueBlast   = "blast"
)

// 异步任务类型常量
const (
	TaskNotificationSend = "notification:send"
	TaskBlastSend        = "blast:send"
)

// 群发消息间隔（秒），对应 OnSend 的限速要求
const (
	BlastIntervalShortSeconds = 30
	BlastIntervalLongSeconds  = 60
)
