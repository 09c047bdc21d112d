package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/plantnet/plantnet-api/internal/core/service"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoutesCommand(t *testing.T) {
	out, err := execute(t, "routes")
	require.NoError(t, err)

	want := [][2]string{
		{"POST", "/orders"},
		{"GET", "/users"},
		{"PATCH", "/users/role/:id"},
		{"POST", "/create-payment-intent"},
		{"GET", "/logout"},
	}
	listed := map[[2]string]bool{}
	for _, line := range strings.Split(out, "\n") {
		if f := strings.Fields(line); len(f) >= 2 {
			listed[[2]string{f[0], f[1]}] = true
		}
	}
	for _, w := range want {
		assert.True(t, listed[w], "missing route %s %s", w[0], w[1])
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "cli-secret")
	t.Setenv("SESSION_TTL", "1h")

	out, err := execute(t, "--env-file", t.TempDir()+"/absent.env", "token", "--email", "alice@example.com")
	require.NoError(t, err)

	token := strings.TrimSpace(out)
	require.Len(t, strings.Split(token, "."), 3)

	sessions := service.NewSessionService("cli-secret", time.Hour, nil, zerolog.Nop())
	session, err := sessions.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", session.Email)
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	_, err := execute(t, "--env-file", t.TempDir()+"/absent.env", "token", "--email", "alice@example.com")
	assert.Error(t, err)
}

func TestRunIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reports database once", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)
		var out bytes.Buffer
		require.NoError(mt, runIndexes(context.Background(), mt.DB, &out))
		assert.Equal(mt, "indexes ensured on "+mt.DB.Name()+"\n", out.String())
	})

	mt.Run("prints nothing on failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))
		var out bytes.Buffer
		require.Error(mt, runIndexes(context.Background(), mt.DB, &out))
		assert.Empty(mt, out.String())
	})
}
