package tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/accesstoken"
)

func TestIPMessagingGrant_EmptyPayload(t *testing.T) {
	g := accesstoken.NewIPMessagingGrant(accesstoken.IPMessagingGrantOptions{})

	p := g.Payload()
	require.NotNil(t, p)
	require.Empty(t, p)
	require.Equal(t, "ip_messaging", g.Key())
}

func TestIPMessagingGrant_OnlyEndpoint(t *testing.T) {
	g := accesstoken.NewIPMessagingGrant(accesstoken.IPMessagingGrantOptions{EndpointID: "TwilioChat:alice:phone1"})

	require.Equal(t, map[string]any{"endpoint_id": "TwilioChat:alice:phone1"}, g.Payload())
}

func TestIPMessagingGrant_AllFields(t *testing.T) {
	g := accesstoken.NewIPMessagingGrant(accesstoken.IPMessagingGrantOptions{
		ServiceSID:        "IS1",
		EndpointID:        "ep",
		DeploymentRoleSID: "RL1",
		PushCredentialSID: "CR1",
	})

	require.Equal(t, map[string]any{
		"service_sid":         "IS1",
		"endpoint_id":         "ep",
		"deployment_role_sid": "RL1",
		"push_credential_sid": "CR1",
	}, g.Payload())
}

func TestConversationsGrant(t *testing.T) {
	empty := accesstoken.NewConversationsGrant(accesstoken.ConversationsGrantOptions{})
	require.Equal(t, "rtc", empty.Key())
	require.Empty(t, empty.Payload())

	g := accesstoken.NewConversationsGrant(accesstoken.ConversationsGrantOptions{ConfigurationProfileSID: "VS1"})
	require.Equal(t, map[string]any{"configuration_profile_sid": "VS1"}, g.Payload())
}

func TestGrant_KeysAreUnique(t *testing.T) {
	var grants []accesstoken.Grant = []accesstoken.Grant{
		accesstoken.IPMessagingGrant{},
		accesstoken.ConversationsGrant{},
	}
	require.NotEqual(t, grants[0].Key(), grants[1].Key())
}
