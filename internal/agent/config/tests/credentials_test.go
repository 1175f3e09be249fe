package tests

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-chat-token/internal/agent/config"
	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/accesstoken"
)

func mintToken(t *testing.T, now time.Time, ttl time.Duration) string {
	t.Helper()

	at, err := accesstoken.New("AC1", "SK1", []byte("s3cr3t"), ttl)
	require.NoError(t, err)
	at.Identity = "alice"
	at.Now = func() time.Time { return now }

	token, err := at.ToJWT("")
	require.NoError(t, err)
	return token
}

func TestDefaultPath_UnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := config.DefaultPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".chattoken", "credentials.json"), p)
}

func TestLoad_MissingFile_Empty(t *testing.T) {
	creds, err := config.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.NotNil(t, creds)
	require.Empty(t, creds.Identity)
	require.Empty(t, creds.Token)
	require.True(t, creds.ExpiresAt.IsZero())
}

func TestLoad_CorruptFile_Error(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(p, []byte("{oops"), 0o600))

	_, err := config.Load(p)
	require.Error(t, err)
	require.Contains(t, err.Error(), p)
}

func TestSave_CreatesNestedDirAndPrivateFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "dir", "credentials.json")
	exp := time.Unix(1_700_003_600, 0).UTC()

	require.NoError(t, config.Save(p, &config.Credentials{Identity: "alice", Token: "a.b.c", ExpiresAt: exp}))

	got, err := config.Load(p)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Identity)
	require.Equal(t, "a.b.c", got.Token)
	require.True(t, exp.Equal(got.ExpiresAt))

	if runtime.GOOS != "windows" {
		st, err := os.Stat(p)
		require.NoError(t, err)
		require.Zero(t, st.Mode().Perm()&0o077, "group/other must have no access")
	}
}

func TestFromToken_ReadsExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	token := mintToken(t, now, 30*time.Minute)

	creds, err := config.FromToken("alice", token)
	require.NoError(t, err)
	require.Equal(t, "alice", creds.Identity)
	require.Equal(t, token, creds.Token)
	require.Equal(t, now.Add(30*time.Minute).Unix(), creds.ExpiresAt.Unix())
}

func TestFromToken_Garbage(t *testing.T) {
	_, err := config.FromToken("alice", "not-a-jwt")
	require.Error(t, err)
}

func TestCredentials_Expired(t *testing.T) {
	exp := time.Unix(1_700_003_600, 0)

	cases := []struct {
		name  string
		creds config.Credentials
		now   time.Time
		want  bool
	}{
		{"no token", config.Credentials{}, exp.Add(-time.Hour), true},
		{"unknown expiry", config.Credentials{Token: "t"}, exp.Add(time.Hour), false},
		{"before exp", config.Credentials{Token: "t", ExpiresAt: exp}, exp.Add(-time.Second), false},
		{"at exp", config.Credentials{Token: "t", ExpiresAt: exp}, exp, true},
		{"after exp", config.Credentials{Token: "t", ExpiresAt: exp}, exp.Add(time.Second), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.creds.Expired(tc.now))
		})
	}
}
