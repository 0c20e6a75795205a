package a2a

/*
MessageSendParams is the parameter object of the message/send and
message/stream methods.
*/
type MessageSendParams struct {
	Message       Message            `json:"message"`
	Configuration *SendConfiguration `json:"configuration,omitempty"`
	Metadata      map[string]any     `json:"metadata,omitempty"`
}

/*
SendConfiguration carries optional client preferences for a send.
*/
type SendConfiguration struct {
	AcceptedOutputModes []string                `json:"acceptedOutputModes,omitempty"`
	HistoryLength       *int                    `json:"historyLength,omitempty"`
	PushNotification    *PushNotificationConfig `json:"pushNotificationConfig,omitempty"`
	Blocking            bool                    `json:"blocking,omitempty"`
}

/*
TaskIDParams is the base parameter object for task-id addressed methods.
*/
type TaskIDParams struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

/*
TaskQueryParams is the parameter object of tasks/get.
*/
type TaskQueryParams struct {
	TaskIDParams
	HistoryLength *int `json:"historyLength,omitempty"`
}

/*
PushNotificationConfig is where and how a server would deliver push
notifications for a task. The runtime accepts and echoes configs but does
not deliver.
*/
type PushNotificationConfig struct {
	URL            string              `json:"url"`
	ID             string              `json:"id,omitempty"`
	Token          *string             `json:"token,omitempty"`
	Authentication *AuthenticationInfo `json:"authentication,omitempty"`
}

type AuthenticationInfo struct {
	Schemes     []string `json:"schemes"`
	Credentials *string  `json:"credentials,omitempty"`
}

/*
TaskPushNotificationConfig binds a push notification config to a task.
*/
type TaskPushNotificationConfig struct {
	ID                     string                 `json:"id"`
	PushNotificationConfig PushNotificationConfig `json:"pushNotificationConfig"`
}
