package accesstoken

// Grant описывает одну возможность (capability), выдаваемую токеном.
//
// Key — имя поля внутри claims "grants", Payload — его содержимое.
// Payload содержит только заданные (непустые) атрибуты: отсутствие поля,
// а не null, означает "не задано".
type Grant interface {
	Key() string
	Payload() map[string]any
}

// Ключи грантов в claims.
const (
	IPMessagingGrantKey   = "ip_messaging"
	ConversationsGrantKey = "rtc"
)

// IPMessagingGrantOptions — параметры гранта для сервиса сообщений.
type IPMessagingGrantOptions struct {
	ServiceSID        string
	EndpointID        string
	DeploymentRoleSID string
	PushCredentialSID string
}

// IPMessagingGrant даёт клиенту доступ к сервису сообщений
// от имени пользователя на конкретном устройстве (EndpointID).
type IPMessagingGrant struct {
	ServiceSID        string
	EndpointID        string
	DeploymentRoleSID string
	PushCredentialSID string
}

// NewIPMessagingGrant создаёт грант из опций. Никогда не падает:
// незаданные поля просто остаются пустыми.
func NewIPMessagingGrant(opts IPMessagingGrantOptions) IPMessagingGrant {
	return IPMessagingGrant(opts)
}

// Key возвращает ключ гранта в claims.
func (g IPMessagingGrant) Key() string {
	return IPMessagingGrantKey
}

// Payload возвращает поля гранта в wire-формате (snake_case).
func (g IPMessagingGrant) Payload() map[string]any {
	p := make(map[string]any, 4)
	setIfNotEmpty(p, "service_sid", g.ServiceSID)
	setIfNotEmpty(p, "endpoint_id", g.EndpointID)
	setIfNotEmpty(p, "deployment_role_sid", g.DeploymentRoleSID)
	setIfNotEmpty(p, "push_credential_sid", g.PushCredentialSID)
	return p
}

// ConversationsGrantOptions — параметры гранта профиля разговоров.
type ConversationsGrantOptions struct {
	ConfigurationProfileSID string
}

// ConversationsGrant привязывает клиента к профилю конфигурации разговоров.
type ConversationsGrant struct {
	ConfigurationProfileSID string
}

// NewConversationsGrant создаёт грант из опций.
func NewConversationsGrant(opts ConversationsGrantOptions) ConversationsGrant {
	return ConversationsGrant(opts)
}

// Key возвращает ключ гранта в claims.
func (g ConversationsGrant) Key() string {
	return ConversationsGrantKey
}

// Payload возвращает поля гранта в wire-формате.
func (g ConversationsGrant) Payload() map[string]any {
	p := make(map[string]any, 1)
	setIfNotEmpty(p, "configuration_profile_sid", g.ConfigurationProfileSID)
	return p
}

func setIfNotEmpty(p map[string]any, key, value string) {
	if value != "" {
		p[key] = value
	}
}
